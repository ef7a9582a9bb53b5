package service

import (
	"context"
	"errors"
	"log"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/messaging"
	"lfmachado/gym-app/internal/repository"
	"lfmachado/gym-app/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentStorage replaces raw storage errors; the original detail is
	// logged, never shown to the user.
	ErrStudentStorage = errors.New("Não foi possível completar a operação. Tente novamente.")
)

// StudentService owns trainer-scoped student records.
type StudentService interface {
	Create(ctx context.Context, trainerID primitive.ObjectID, name, email, phone string) (*domain.Student, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error)
	SoftDelete(ctx context.Context, trainerID, studentID primitive.ObjectID) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	publisher   messaging.EventPublisher
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(studentRepo repository.StudentRepository, publisher messaging.EventPublisher) StudentService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &studentService{
		studentRepo: studentRepo,
		publisher:   publisher,
	}
}

// Create validates the registration fields and persists a new active
// student. Validation failures surface the precise rule violated; storage
// failures are wrapped into a generic message.
func (s *studentService) Create(ctx context.Context, trainerID primitive.ObjectID, name, email, phone string) (*domain.Student, error) {
	if err := validation.ValidateStudent(name, email, phone); err != nil {
		return nil, err
	}

	student := &domain.Student{
		Name:      name,
		Email:     email,
		Phone:     phone,
		TrainerID: trainerID,
		// Status and CreatedAt are stamped by the repository.
	}

	studentID, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		log.Printf("ERROR: creating student for trainer %s: %v", trainerID.Hex(), err)
		return nil, ErrStudentStorage
	}
	student.ID = studentID

	if err := s.publisher.PublishStudentCreated(ctx, messaging.StudentEvent{
		StudentID: student.ID.Hex(),
		TrainerID: trainerID.Hex(),
		Name:      student.Name,
	}); err != nil {
		// Event delivery is best effort; the student is already saved.
		log.Printf("WARN: publishing student.created for %s: %v", student.ID.Hex(), err)
	}

	return student, nil
}

// ListByTrainer returns the trainer's active students. Soft-deleted records
// never appear. Ordering is whatever the store returns.
func (s *studentService) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	students, err := s.studentRepo.GetActiveByTrainerID(ctx, trainerID)
	if err != nil {
		log.Printf("ERROR: listing students for trainer %s: %v", trainerID.Hex(), err)
		return nil, ErrStudentStorage
	}
	return students, nil
}

// SoftDelete hides a student from listings without removing the record.
// Only the owning trainer can delete; someone else's student reports not
// found. The student's trainings are intentionally left alone: they stay
// reachable by id even though the owner is hidden.
func (s *studentService) SoftDelete(ctx context.Context, trainerID, studentID primitive.ObjectID) error {
	if err := s.studentRepo.SoftDelete(ctx, studentID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		log.Printf("ERROR: soft-deleting student %s: %v", studentID.Hex(), err)
		return ErrStudentStorage
	}

	if err := s.publisher.PublishStudentDeleted(ctx, messaging.StudentEvent{
		StudentID: studentID.Hex(),
	}); err != nil {
		log.Printf("WARN: publishing student.deleted for %s: %v", studentID.Hex(), err)
	}
	return nil
}
