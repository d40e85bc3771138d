package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository using MongoDB.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new instance of mongoWorkoutRepository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByMember returns a member's workouts, newest first, capped at limit.
func (r *mongoWorkoutRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"member": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// UpdateOwned replaces the mutable fields of a workout owned by its member
// and returns the updated document.
func (r *mongoWorkoutRepository) UpdateOwned(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	filter := bson.M{"_id": workout.ID, "member": workout.MemberID}
	update := bson.M{"$set": bson.M{
		"date":           workout.Date,
		"exercises":      workout.Exercises,
		"duration":       workout.Duration,
		"totalVolume":    workout.TotalVolume,
		"caloriesBurned": workout.CaloriesBurned,
		"notes":          workout.Notes,
		"updatedAt":      time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Workout
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteOwned removes a workout owned by memberID.
func (r *mongoWorkoutRepository) DeleteOwned(ctx context.Context, id, memberID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "member": memberID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByMember counts all workouts logged by a member.
func (r *mongoWorkoutRepository) CountByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"member": memberID})
}

// CountByMemberSince counts a member's workouts dated at or after since.
func (r *mongoWorkoutRepository) CountByMemberSince(ctx context.Context, memberID primitive.ObjectID, since time.Time) (int64, error) {
	filter := bson.M{"member": memberID, "date": bson.M{"$gte": since}}
	return r.collection.CountDocuments(ctx, filter)
}

// TotalVolumeByMember sums totalVolume across all of a member's workouts.
func (r *mongoWorkoutRepository) TotalVolumeByMember(ctx context.Context, memberID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "member", Value: memberID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalVolume"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// FirstInRange returns one workout with date in [from, to), or ErrNotFound.
func (r *mongoWorkoutRepository) FirstInRange(ctx context.Context, memberID primitive.ObjectID, from, to time.Time) (*domain.Workout, error) {
	filter := bson.M{
		"member": memberID,
		"date":   bson.M{"$gte": from, "$lt": to},
	}

	var workout domain.Workout
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "member", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
