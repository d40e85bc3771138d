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

const staffCollectionName = "staff"

// mongoStaffRepository implements repository.StaffRepository using MongoDB.
type mongoStaffRepository struct {
	collection *mongo.Collection
}

// NewMongoStaffRepository creates a new instance of mongoStaffRepository.
func NewMongoStaffRepository(db *mongo.Database) repository.StaffRepository {
	return &mongoStaffRepository{
		collection: db.Collection(staffCollectionName),
	}
}

// Create inserts a staff profile. The unique index on user maps a second
// profile for the same user to ErrDuplicate.
func (r *mongoStaffRepository) Create(ctx context.Context, staff *domain.Staff) (primitive.ObjectID, error) {
	staff.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	staff.CreatedAt = now
	staff.UpdatedAt = now
	if staff.JoinDate.IsZero() {
		staff.JoinDate = now
	}

	result, err := r.collection.InsertOne(ctx, staff)
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

// List returns staff profiles sorted by join date descending, optionally
// restricted to the given users and excluding one staff role label.
func (r *mongoStaffRepository) List(ctx context.Context, userIDs []primitive.ObjectID, excludeRole string) ([]domain.Staff, error) {
	filter := bson.M{}
	if userIDs != nil {
		filter["user"] = bson.M{"$in": userIDs}
	}
	if excludeRole != "" {
		filter["role"] = bson.M{"$ne": excludeRole}
	}
	opts := options.Find().SetSort(bson.D{{Key: "joinDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var staff []domain.Staff
	if err = cursor.All(ctx, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// EnsureStaffIndexes creates necessary indexes for the staff collection.
func EnsureStaffIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
