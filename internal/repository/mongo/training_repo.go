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

const trainingCollectionName = "trainings"

// mongoTrainingRepository implements repository.TrainingRepository using MongoDB.
type mongoTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingRepository creates a new training repository.
func NewMongoTrainingRepository(db *mongo.Database) repository.TrainingRepository {
	return &mongoTrainingRepository{
		collection: db.Collection(trainingCollectionName),
	}
}

// Create inserts a new training plan with a server-assigned creation time.
func (r *mongoTrainingRepository) Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error) {
	if training.StudentID == primitive.NilObjectID || training.TrainerID == primitive.NilObjectID || training.Name == "" {
		return primitive.NilObjectID, errors.New("training requires studentId, trainerId, and name")
	}

	training.ID = primitive.NewObjectID()
	training.CreatedAt = time.Now().UTC()
	if training.Exercises == nil {
		training.Exercises = []domain.Exercise{}
	}

	result, err := r.collection.InsertOne(ctx, training)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted training ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single training plan by its ID. The trainerId in the
// filter ensures it belongs to the specified trainer.
func (r *mongoTrainingRepository) GetByID(ctx context.Context, id, trainerID primitive.ObjectID) (*domain.Training, error) {
	var training domain.Training
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "trainerId": trainerID}).Decode(&training)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &training, nil
}

// GetByStudentID retrieves all trainings for a specific student created by
// a specific trainer, newest start date first.
func (r *mongoTrainingRepository) GetByStudentID(ctx context.Context, studentID, trainerID primitive.ObjectID) ([]domain.Training, error) {
	filter := bson.M{"studentId": studentID, "trainerId": trainerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainings []domain.Training
	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if trainings == nil {
		trainings = []domain.Training{}
	}
	return trainings, nil
}

// Update sets the updatable training fields and stamps updatedAt. StudentID
// is written only when the caller supplied one; trainerId, startDate, and
// createdAt are never touched here. The trainerId in the filter ensures it
// belongs to the specified trainer.
func (r *mongoTrainingRepository) Update(ctx context.Context, id, trainerID primitive.ObjectID, fields repository.TrainingUpdate) error {
	set := bson.M{
		"name":      fields.Name,
		"exercises": fields.Exercises,
		"status":    fields.Status,
		"updatedAt": time.Now().UTC(),
	}
	if fields.StudentID != nil {
		set["studentId"] = *fields.StudentID
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "trainerId": trainerID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a training plan permanently. Trainings have no soft
// delete. The trainerId in the filter ensures it belongs to the specified
// trainer.
func (r *mongoTrainingRepository) Delete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "trainerId": trainerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingIndexes creates necessary indexes. Call during startup.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a trainer's trainings for one student,
			// by start date.
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "studentId", Value: 1}, {Key: "startDate", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
