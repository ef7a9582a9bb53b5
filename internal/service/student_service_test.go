package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/messaging"
	"lfmachado/gym-app/internal/repository"
	"lfmachado/gym-app/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockStudentRepo is an in-memory repository.StudentRepository.
type mockStudentRepo struct {
	students map[primitive.ObjectID]*domain.Student
	failWith error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[primitive.ObjectID]*domain.Student)}
}

func (m *mockStudentRepo) Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error) {
	if m.failWith != nil {
		return primitive.NilObjectID, m.failWith
	}
	student.ID = primitive.NewObjectID()
	student.Status = domain.StatusActive
	student.CreatedAt = time.Now().UTC()
	cp := *student
	m.students[student.ID] = &cp
	return student.ID, nil
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *student
	return &cp, nil
}

func (m *mockStudentRepo) GetActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []domain.Student
	for _, s := range m.students {
		if s.TrainerID == trainerID && s.Status == domain.StatusActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) SoftDelete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	if m.failWith != nil {
		return m.failWith
	}
	student, ok := m.students[id]
	if !ok || student.TrainerID != trainerID {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	student.Status = domain.StatusInactive
	student.DeletedAt = &now
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	created []messaging.StudentEvent
	deleted []messaging.StudentEvent
	fail    bool
}

func (p *recordingPublisher) PublishStudentCreated(ctx context.Context, event messaging.StudentEvent) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.created = append(p.created, event)
	return nil
}

func (p *recordingPublisher) PublishStudentDeleted(ctx context.Context, event messaging.StudentEvent) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.deleted = append(p.deleted, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestStudentService_Create(t *testing.T) {
	trainerID := primitive.NewObjectID()

	tests := []struct {
		name        string
		studentName string
		email       string
		phone       string
		wantMsg     string
	}{
		{"success with phone", "Ana Souza", "ana@exemplo.com", "(11) 98888-7777", ""},
		{"success without phone", "Ana Souza", "ana@exemplo.com", "", ""},
		{"name too short", "Al", "ana@exemplo.com", "", "O nome deve ter pelo menos 3 caracteres"},
		{"missing name", "", "ana@exemplo.com", "", "O nome é obrigatório"},
		{"missing email", "Ana Souza", "", "", "O email é obrigatório"},
		{"bad email", "Ana Souza", "ana@", "", "Email inválido"},
		{"bad phone", "Ana Souza", "ana@exemplo.com", "123", "Celular inválido. Use o formato (XX) XXXXX-XXXX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockStudentRepo()
			pub := &recordingPublisher{}
			svc := NewStudentService(repo, pub)

			student, err := svc.Create(context.Background(), trainerID, tt.studentName, tt.email, tt.phone)
			if tt.wantMsg != "" {
				var ruleErr *validation.RuleError
				if !errors.As(err, &ruleErr) {
					t.Fatalf("Create() error = %v, want *validation.RuleError", err)
				}
				if ruleErr.Message != tt.wantMsg {
					t.Errorf("message = %q, want %q", ruleErr.Message, tt.wantMsg)
				}
				if len(repo.students) != 0 {
					t.Error("invalid student reached the repository")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v, want nil", err)
			}
			if student.Status != domain.StatusActive {
				t.Errorf("status = %d, want %d", student.Status, domain.StatusActive)
			}
			if student.TrainerID != trainerID {
				t.Errorf("trainerID = %s, want %s", student.TrainerID.Hex(), trainerID.Hex())
			}
			if len(pub.created) != 1 {
				t.Errorf("published %d created events, want 1", len(pub.created))
			}
		})
	}
}

func TestStudentService_Create_StorageFailureIsGeneric(t *testing.T) {
	repo := newMockStudentRepo()
	repo.failWith = errors.New("connection refused to mongo-0.internal:27017")
	svc := NewStudentService(repo, &recordingPublisher{})

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), "Ana Souza", "ana@exemplo.com", "")
	if !errors.Is(err, ErrStudentStorage) {
		t.Fatalf("Create() error = %v, want ErrStudentStorage", err)
	}
}

func TestStudentService_Create_PublishFailureIsBestEffort(t *testing.T) {
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, &recordingPublisher{fail: true})

	student, err := svc.Create(context.Background(), primitive.NewObjectID(), "Ana Souza", "ana@exemplo.com", "")
	if err != nil {
		t.Fatalf("Create() error = %v, want nil despite broker failure", err)
	}
	if student.ID.IsZero() {
		t.Error("student was not assigned an id")
	}
}

func TestStudentService_SoftDeleteHidesFromListing(t *testing.T) {
	trainerID := primitive.NewObjectID()
	repo := newMockStudentRepo()
	pub := &recordingPublisher{}
	svc := NewStudentService(repo, pub)

	kept, err := svc.Create(context.Background(), trainerID, "Ana Souza", "ana@exemplo.com", "")
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	removed, err := svc.Create(context.Background(), trainerID, "Bruno Lima", "bruno@exemplo.com", "")
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}

	if err := svc.SoftDelete(context.Background(), trainerID, removed.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	students, err := svc.ListByTrainer(context.Background(), trainerID)
	if err != nil {
		t.Fatalf("ListByTrainer() error = %v", err)
	}
	if len(students) != 1 || students[0].ID != kept.ID {
		t.Errorf("listing after delete = %d students, want only %s", len(students), kept.Name)
	}

	// The record itself survives the delete.
	ghost, err := repo.GetByID(context.Background(), removed.ID)
	if err != nil {
		t.Fatalf("deleted student was removed from storage: %v", err)
	}
	if ghost.DeletedAt == nil {
		t.Error("deletedAt was not stamped")
	}
	if len(pub.deleted) != 1 {
		t.Errorf("published %d deleted events, want 1", len(pub.deleted))
	}
}

func TestStudentService_SoftDelete_NotFound(t *testing.T) {
	svc := NewStudentService(newMockStudentRepo(), &recordingPublisher{})
	err := svc.SoftDelete(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("SoftDelete() = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_SoftDelete_OtherTrainersStudent(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, &recordingPublisher{})

	student, err := svc.Create(context.Background(), owner, "Ana Souza", "ana@exemplo.com", "")
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}

	err = svc.SoftDelete(context.Background(), other, student.ID)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("SoftDelete() as other trainer = %v, want ErrStudentNotFound", err)
	}

	// The owner's listing is untouched.
	students, err := svc.ListByTrainer(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListByTrainer() error = %v", err)
	}
	if len(students) != 1 {
		t.Errorf("owner lists %d students after failed delete, want 1", len(students))
	}
}
