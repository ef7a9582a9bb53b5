package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTrainingNotFound = errors.New("training not found")
	ErrTrainingStorage  = errors.New("Não foi possível completar a operação. Tente novamente.")
)

// TrainingInput carries a training as the trainer-facing surface speaks it:
// Portuguese field names, exercises accumulated client-side. The service
// translates it to the storage vocabulary.
type TrainingInput struct {
	Nome       string            `json:"nome"`
	StudentID  string            `json:"studentId,omitempty"`
	Exercicios []domain.Exercise `json:"exercicios"`
	DataInicio *time.Time        `json:"dataInicio,omitempty"`
	Status     string            `json:"status"`
}

// TrainingService owns training plans and the field-name translation
// between the trainer-facing vocabulary and the storage vocabulary. Every
// operation is scoped to the calling trainer: another trainer's training
// reports not found.
type TrainingService interface {
	ListByStudent(ctx context.Context, trainerID, studentID primitive.ObjectID) ([]domain.Training, error)
	GetByID(ctx context.Context, trainerID, trainingID primitive.ObjectID) (*domain.Training, error)
	Create(ctx context.Context, trainerID primitive.ObjectID, input TrainingInput) (primitive.ObjectID, error)
	Update(ctx context.Context, trainerID, trainingID primitive.ObjectID, input TrainingInput) error
	Delete(ctx context.Context, trainerID, trainingID primitive.ObjectID) error
}

type trainingService struct {
	trainingRepo repository.TrainingRepository
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(trainingRepo repository.TrainingRepository) TrainingService {
	return &trainingService{trainingRepo: trainingRepo}
}

// ListByStudent returns all trainings for the student, ordered by start
// date descending.
func (s *trainingService) ListByStudent(ctx context.Context, trainerID, studentID primitive.ObjectID) ([]domain.Training, error) {
	trainings, err := s.trainingRepo.GetByStudentID(ctx, studentID, trainerID)
	if err != nil {
		log.Printf("ERROR: listing trainings for student %s: %v", studentID.Hex(), err)
		return nil, ErrTrainingStorage
	}
	return trainings, nil
}

// GetByID retrieves one training. A missing document is ErrTrainingNotFound,
// distinguishable from a storage failure.
func (s *trainingService) GetByID(ctx context.Context, trainerID, trainingID primitive.ObjectID) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		log.Printf("ERROR: fetching training %s: %v", trainingID.Hex(), err)
		return nil, ErrTrainingStorage
	}
	return training, nil
}

// Create translates the trainer-facing fields to storage names
// (nome→name, exercicios→exercises, dataInicio→startDate), fills in
// missing exercise ids, and persists with a server-assigned creation time.
// The plan is stamped with the calling trainer as its owner.
func (s *trainingService) Create(ctx context.Context, trainerID primitive.ObjectID, input TrainingInput) (primitive.ObjectID, error) {
	studentID, err := primitive.ObjectIDFromHex(input.StudentID)
	if err != nil {
		return primitive.NilObjectID, ErrTrainingStorage
	}

	training := &domain.Training{
		Name:      input.Nome,
		StudentID: studentID,
		TrainerID: trainerID,
		Exercises: withExerciseIDs(input.Exercicios),
		StartDate: input.DataInicio,
		Status:    input.Status,
	}

	trainingID, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		log.Printf("ERROR: creating training %q: %v", input.Nome, err)
		return primitive.NilObjectID, ErrTrainingStorage
	}
	return trainingID, nil
}

// Update applies the same field translation as Create. The studentId is
// included only when supplied, so an update without one cannot null out the
// owning student. The start date is not part of the update payload.
func (s *trainingService) Update(ctx context.Context, trainerID, trainingID primitive.ObjectID, input TrainingInput) error {
	fields := repository.TrainingUpdate{
		Name:      input.Nome,
		Exercises: withExerciseIDs(input.Exercicios),
		Status:    input.Status,
	}
	if input.StudentID != "" {
		studentID, err := primitive.ObjectIDFromHex(input.StudentID)
		if err != nil {
			return ErrTrainingStorage
		}
		fields.StudentID = &studentID
	}

	if err := s.trainingRepo.Update(ctx, trainingID, trainerID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		log.Printf("ERROR: updating training %s: %v", trainingID.Hex(), err)
		return ErrTrainingStorage
	}
	return nil
}

// Delete removes the training permanently. No soft delete, no undo.
func (s *trainingService) Delete(ctx context.Context, trainerID, trainingID primitive.ObjectID) error {
	if err := s.trainingRepo.Delete(ctx, trainingID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		log.Printf("ERROR: deleting training %s: %v", trainingID.Hex(), err)
		return ErrTrainingStorage
	}
	return nil
}

// withExerciseIDs assigns a timestamp-based id to any exercise that came
// in without one, the same scheme the mobile client uses, and applies the
// series/repetições defaults.
func withExerciseIDs(exercises []domain.Exercise) []domain.Exercise {
	out := make([]domain.Exercise, len(exercises))
	for i, ex := range exercises {
		if ex.ID == "" {
			ex.ID = strconv.FormatInt(time.Now().UnixMilli()+int64(i), 10)
		}
		if ex.Sets == 0 {
			ex.Sets = 3
		}
		if ex.Reps == 0 {
			ex.Reps = 12
		}
		out[i] = ex
	}
	return out
}
