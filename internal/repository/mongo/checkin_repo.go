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

const checkInCollectionName = "checkins"

// mongoCheckInRepository implements repository.CheckInRepository using MongoDB.
type mongoCheckInRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckInRepository creates a new instance of mongoCheckInRepository.
func NewMongoCheckInRepository(db *mongo.Database) repository.CheckInRepository {
	return &mongoCheckInRepository{
		collection: db.Collection(checkInCollectionName),
	}
}

// Create inserts a check-in. The unique (member, day) index turns a second
// check-in on the same calendar day into ErrDuplicate, closing the
// read-then-write race the duplicate check would otherwise have.
func (r *mongoCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	checkIn.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	checkIn.CreatedAt = now
	checkIn.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, checkIn)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByMember returns a member's check-ins, newest first, capped at limit.
func (r *mongoCheckInRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.CheckIn, error) {
	opts := options.Find().SetSort(bson.D{{Key: "checkInTime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"member": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkIns []domain.CheckIn
	if err = cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

// CountInRange counts check-ins across all members with checkInTime in [from, to).
func (r *mongoCheckInRepository) CountInRange(ctx context.Context, from, to time.Time) (int64, error) {
	filter := bson.M{"checkInTime": bson.M{"$gte": from, "$lt": to}}
	return r.collection.CountDocuments(ctx, filter)
}

// EnsureCheckInIndexes creates necessary indexes for the checkins collection.
func EnsureCheckInIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "member", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "member", Value: 1}, {Key: "checkInTime", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "checkInTime", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
