package mongo

import (
	"context"
	"errors"
	"time"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const studentCollectionName = "students"

// mongoStudentRepository implements repository.StudentRepository using MongoDB.
type mongoStudentRepository struct {
	collection *mongo.Collection
}

// NewMongoStudentRepository creates a new student repository.
func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{
		collection: db.Collection(studentCollectionName),
	}
}

// Create inserts a new student record.
func (r *mongoStudentRepository) Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error) {
	if student.TrainerID == primitive.NilObjectID || student.Name == "" || student.Email == "" {
		return primitive.NilObjectID, errors.New("student requires trainerId, name, and email")
	}

	student.ID = primitive.NewObjectID()
	student.Status = domain.StatusActive
	student.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted student ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single student by its ID, soft-deleted ones included.
func (r *mongoStudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	var student domain.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetActiveByTrainerID retrieves the trainer's students, excluding
// soft-deleted records.
func (r *mongoStudentRepository) GetActiveByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Student, error) {
	filter := bson.M{
		"trainerId": trainerID,
		"status":    domain.StatusActive,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []domain.Student
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return students, nil
}

// SoftDelete marks a student inactive and stamps deletedAt. The record is
// never removed. The trainerId in the filter ensures the student belongs
// to the specified trainer; anyone else's student reports not found.
// Repeating the call on an already-deleted student matches the same
// document again, so the operation is idempotent.
func (r *mongoStudentRepository) SoftDelete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"status":    domain.StatusInactive,
			"deletedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "trainerId": trainerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureStudentIndexes creates necessary indexes. Call during startup.
func EnsureStudentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a trainer's active students.
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
