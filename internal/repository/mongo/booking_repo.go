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

const bookingCollectionName = "bookings"

// mongoBookingRepository implements repository.BookingRepository using MongoDB.
type mongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new instance of mongoBookingRepository.
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &mongoBookingRepository{
		collection: db.Collection(bookingCollectionName),
	}
}

// Create inserts a new booking. A unique partial index on
// (member, session) scoped to status=confirmed backs the at-most-one
// confirmed booking invariant; violations surface as ErrDuplicate.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	booking.ID = primitive.NewObjectID()
	if booking.Status == "" {
		booking.Status = domain.BookingConfirmed
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
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

// GetConfirmed returns the confirmed booking for (member, session), if any.
func (r *mongoBookingRepository) GetConfirmed(ctx context.Context, memberID, sessionID primitive.ObjectID) (*domain.Booking, error) {
	filter := bson.M{
		"member":  memberID,
		"session": sessionID,
		"status":  domain.BookingConfirmed,
	}

	var booking domain.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// CountConfirmedBySession counts confirmed bookings for a session. This is
// the true occupancy; bookedSpots on the session is the denormalized copy.
func (r *mongoBookingRepository) CountConfirmedBySession(ctx context.Context, sessionID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"session": sessionID,
		"status":  domain.BookingConfirmed,
	}
	return r.collection.CountDocuments(ctx, filter)
}

// ListByMember returns all of a member's bookings, newest first.
func (r *mongoBookingRepository) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"member": memberID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListConfirmedByMember returns a member's confirmed bookings, oldest first,
// capped at limit.
func (r *mongoBookingRepository) ListConfirmedByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Booking, error) {
	filter := bson.M{"member": memberID, "status": domain.BookingConfirmed}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListConfirmedBySessions returns confirmed bookings across the given sessions.
func (r *mongoBookingRepository) ListConfirmedBySessions(ctx context.Context, sessionIDs []primitive.ObjectID) ([]domain.Booking, error) {
	if len(sessionIDs) == 0 {
		return []domain.Booking{}, nil
	}

	filter := bson.M{
		"session": bson.M{"$in": sessionIDs},
		"status":  domain.BookingConfirmed,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelOwned transitions a confirmed booking owned by memberID to cancelled
// and returns the updated booking.
func (r *mongoBookingRepository) CancelOwned(ctx context.Context, id, memberID primitive.ObjectID) (*domain.Booking, error) {
	filter := bson.M{
		"_id":    id,
		"member": memberID,
		"status": domain.BookingConfirmed,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    domain.BookingCancelled,
			"updatedAt": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking domain.Booking
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// EnsureBookingIndexes creates necessary indexes for the bookings collection.
// The partial unique index enforces at most one confirmed booking per
// (member, session) pair at the storage level.
func EnsureBookingIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "member", Value: 1}, {Key: "session", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.BookingConfirmed}),
		},
		{
			Keys: bson.D{{Key: "member", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "session", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
