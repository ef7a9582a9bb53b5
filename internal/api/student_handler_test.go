package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/service"
	"lfmachado/gym-app/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubStudentService returns canned results. With validate set it runs the
// real field rules first, like the production service does.
type stubStudentService struct {
	validate      bool
	createStudent *domain.Student
	createErr     error
	listStudents  []domain.Student
	deleteErr     error
}

func (s *stubStudentService) Create(ctx context.Context, trainerID primitive.ObjectID, name, email, phone string) (*domain.Student, error) {
	if s.validate {
		if err := validation.ValidateStudent(name, email, phone); err != nil {
			return nil, err
		}
	}
	return s.createStudent, s.createErr
}

func (s *stubStudentService) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	return s.listStudents, nil
}

func (s *stubStudentService) SoftDelete(ctx context.Context, trainerID, studentID primitive.ObjectID) error {
	return s.deleteErr
}

// withTrainerID injects the auth context the middleware would normally set.
func withTrainerID(trainerID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, trainerID.Hex())
		c.Next()
	}
}

func studentRouter(svc service.StudentService, trainerID primitive.ObjectID) *gin.Engine {
	handler := NewStudentHandler(svc)
	router := gin.New()
	group := router.Group("/", withTrainerID(trainerID))
	group.POST("/students", handler.CreateStudent)
	group.GET("/students", handler.ListStudents)
	group.DELETE("/students/:studentId", handler.DeleteStudent)
	return router
}

func TestCreateStudent_ValidationMessagePassesThrough(t *testing.T) {
	svc := &stubStudentService{
		createErr: &validation.RuleError{Message: "O nome deve ter pelo menos 3 caracteres"},
	}
	router := studentRouter(svc, primitive.NewObjectID())

	body := `{"name":"Al","email":"ana@exemplo.com"}`
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp["error"] != "O nome deve ter pelo menos 3 caracteres" {
		t.Errorf("error = %q, want the validation message verbatim", resp["error"])
	}
}

// The rule messages are ordered: a request missing a later field must get
// that field's message, not the first rule's.
func TestCreateStudent_MissingFieldGetsItsOwnRuleMessage(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"name only", `{"name":"Alice"}`, "O email é obrigatório"},
		{"empty body", `{}`, "O nome é obrigatório"},
		{"bad email", `{"name":"Alice","email":"alice@"}`, "Email inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := studentRouter(&stubStudentService{validate: true}, primitive.NewObjectID())
			req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if resp["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp["error"], tt.wantMsg)
			}
		})
	}
}

func TestCreateStudent_Success(t *testing.T) {
	student := &domain.Student{
		ID:    primitive.NewObjectID(),
		Name:  "Ana Souza",
		Email: "ana@exemplo.com",
		Phone: "(11) 98888-7777",
	}
	router := studentRouter(&stubStudentService{createStudent: student}, primitive.NewObjectID())

	body := `{"name":"Ana Souza","email":"ana@exemplo.com","phone":"(11) 98888-7777"}`
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var resp StudentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.ID != student.ID.Hex() || resp.Name != "Ana Souza" {
		t.Errorf("response = %+v, want the created student", resp)
	}
}

func TestDeleteStudent(t *testing.T) {
	tests := []struct {
		name       string
		studentID  string
		deleteErr  error
		wantStatus int
	}{
		{"success", primitive.NewObjectID().Hex(), nil, http.StatusNoContent},
		{"bad id", "not-hex", nil, http.StatusBadRequest},
		{"not found", primitive.NewObjectID().Hex(), service.ErrStudentNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := studentRouter(&stubStudentService{deleteErr: tt.deleteErr}, primitive.NewObjectID())
			req := httptest.NewRequest(http.MethodDelete, "/students/"+tt.studentID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestListStudents(t *testing.T) {
	students := []domain.Student{
		{ID: primitive.NewObjectID(), Name: "Ana Souza", Email: "ana@exemplo.com"},
		{ID: primitive.NewObjectID(), Name: "Bruno Lima", Email: "bruno@exemplo.com"},
	}
	router := studentRouter(&stubStudentService{listStudents: students}, primitive.NewObjectID())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp []StudentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("got %d students, want 2", len(resp))
	}
}
