package api

import (
	"errors"
	"net/http"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/metrics"
	"lfmachado/gym-app/internal/service"
	"lfmachado/gym-app/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// --- DTOs ---

// CreateStudentRequest carries the registration fields. No binding tags:
// missing fields must reach validation.ValidateStudent so the response
// message names the first violated rule, in rule order.
type CreateStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type StudentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// CreateStudent registers a student under the authenticated trainer.
// Validation failures return the precise rule message; storage failures
// return the generic one.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student payload.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), trainerID, req.Name, req.Email, req.Phone)
	if err != nil {
		var rule *validation.RuleError
		if errors.As(err, &rule) {
			abortWithError(c, http.StatusBadRequest, rule.Message)
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.StudentsCreated.Inc()

	c.JSON(http.StatusCreated, MapStudentToResponse(student))
}

// ListStudents returns the trainer's active students only.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	students, err := h.studentService.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]StudentResponse, 0, len(students))
	for i := range students {
		resp = append(resp, MapStudentToResponse(&students[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteStudent soft-deletes: the record is hidden from listings, never
// removed, and the student's trainings are left untouched. Another
// trainer's student comes back 404.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	if err := h.studentService.SoftDelete(c.Request.Context(), trainerID, studentID); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// MapStudentToResponse converts a domain Student to its DTO.
func MapStudentToResponse(student *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID.Hex(),
		Name:      student.Name,
		Email:     student.Email,
		Phone:     student.Phone,
		CreatedAt: student.CreatedAt,
	}
}

// trainerIDFromContext pulls the authenticated trainer's ObjectID out of
// the request context, aborting on failure.
func trainerIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	trainerIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return primitive.NilObjectID, false
	}
	trainerID, err := primitive.ObjectIDFromHex(trainerIDStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format in token.")
		return primitive.NilObjectID, false
	}
	return trainerID, true
}
