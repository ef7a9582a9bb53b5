package repository

import (
	"context"
	"time"

	"lfmachado/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrTokenExpired = RepositoryError("token expired or unknown")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with trainer accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
}

// StudentRepository defines the interface for interacting with student records.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error)
	// GetActiveByTrainerID returns only students with an active status;
	// soft-deleted records never show up here.
	GetActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error)
	// SoftDelete hides the student. The filter includes trainerID, so a
	// trainer cannot touch another trainer's students.
	SoftDelete(ctx context.Context, id, trainerID primitive.ObjectID) error
}

// TrainingRepository defines the interface for interacting with training
// plans. Every read and write is scoped to the owning trainer: a training
// belonging to a different trainer behaves as if it does not exist.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, trainerID primitive.ObjectID) (*domain.Training, error)
	GetByStudentID(ctx context.Context, studentID, trainerID primitive.ObjectID) ([]domain.Training, error)
	Update(ctx context.Context, id, trainerID primitive.ObjectID, fields TrainingUpdate) error
	Delete(ctx context.Context, id, trainerID primitive.ObjectID) error
}

// TrainingUpdate carries the storage-side fields of a training update.
// StudentID is a pointer so the caller can leave it out entirely; a nil
// pointer means the stored value is untouched.
type TrainingUpdate struct {
	Name      string
	Exercises []domain.Exercise
	Status    string
	StudentID *primitive.ObjectID
}

// ResetTokenRepository stores short-lived password reset tokens.
type ResetTokenRepository interface {
	Save(ctx context.Context, token string, userID primitive.ObjectID, ttl time.Duration) error
	// Consume returns the user the token was minted for and invalidates it.
	Consume(ctx context.Context, token string) (primitive.ObjectID, error)
}
