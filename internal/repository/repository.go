package repository

import (
	"context"
	"time"

	"fittrack/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	GetByRole(ctx context.Context, roles ...domain.Role) ([]domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MembershipRepository defines the interface for membership data.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) (primitive.ObjectID, error)
	// GetCurrentByMember returns the member's most recently created membership.
	GetCurrentByMember(ctx context.Context, memberID primitive.ObjectID) (*domain.Membership, error)
	DeleteByMember(ctx context.Context, memberID primitive.ObjectID) error
	CountByStatus(ctx context.Context, status domain.MembershipStatus) (int64, error)
	// CountExpiring counts active memberships whose end date falls in [from, to].
	CountExpiring(ctx context.Context, from, to time.Time) (int64, error)
	PlanDistribution(ctx context.Context) ([]PlanCount, error)
}

// SessionRepository defines the interface for class/training slot data.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error)
	// ListAvailable returns scheduled sessions with date >= from,
	// ordered by date then time ascending.
	ListAvailable(ctx context.Context, from time.Time) ([]domain.Session, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID, date *time.Time) ([]domain.Session, error)
	UpdateOwned(ctx context.Context, id, trainerID primitive.ObjectID, fields map[string]interface{}) (*domain.Session, error)
	DeleteOwned(ctx context.Context, id, trainerID primitive.ObjectID) error
	// ReserveSpot atomically increments bookedSpots if it is still below
	// maxSpots. Returns ErrUpdateFailed when the session is full or absent.
	ReserveSpot(ctx context.Context, id primitive.ObjectID) error
	ReleaseSpot(ctx context.Context, id primitive.ObjectID) error
	AttachBooking(ctx context.Context, sessionID, bookingID primitive.ObjectID) error
}

// BookingRepository defines the interface for booking data.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error)
	GetConfirmed(ctx context.Context, memberID, sessionID primitive.ObjectID) (*domain.Booking, error)
	CountConfirmedBySession(ctx context.Context, sessionID primitive.ObjectID) (int64, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Booking, error)
	ListConfirmedByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Booking, error)
	ListConfirmedBySessions(ctx context.Context, sessionIDs []primitive.ObjectID) ([]domain.Booking, error)
	// CancelOwned transitions a confirmed booking owned by memberID to
	// cancelled and returns it. ErrNotFound when no such booking exists.
	CancelOwned(ctx context.Context, id, memberID primitive.ObjectID) (*domain.Booking, error)
}

// WorkoutRepository defines the interface for logged workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Workout, error)
	UpdateOwned(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	DeleteOwned(ctx context.Context, id, memberID primitive.ObjectID) error
	CountByMember(ctx context.Context, memberID primitive.ObjectID) (int64, error)
	CountByMemberSince(ctx context.Context, memberID primitive.ObjectID, since time.Time) (int64, error)
	TotalVolumeByMember(ctx context.Context, memberID primitive.ObjectID) (float64, error)
	// FirstInRange returns one workout with date in [from, to), or ErrNotFound.
	FirstInRange(ctx context.Context, memberID primitive.ObjectID, from, to time.Time) (*domain.Workout, error)
}

// ProgressRepository defines the interface for body-measurement data.
type ProgressRepository interface {
	Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Progress, error)
	GetOwned(ctx context.Context, id, memberID primitive.ObjectID) (*domain.Progress, error)
	SetPhotoKey(ctx context.Context, id, memberID primitive.ObjectID, key string) error
}

// CheckInRepository defines the interface for gym check-in data.
type CheckInRepository interface {
	// Create inserts a check-in. Returns ErrDuplicate when the member has
	// already checked in on the same day (unique (member, day) index).
	Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.CheckIn, error)
	CountInRange(ctx context.Context, from, to time.Time) (int64, error)
}

// StaffRepository defines the interface for staff profile data.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) (primitive.ObjectID, error)
	// List returns staff profiles sorted by join date descending. When
	// userIDs is non-nil only profiles for those users are returned;
	// excludeRole filters out a staff role label when non-empty.
	List(ctx context.Context, userIDs []primitive.ObjectID, excludeRole string) ([]domain.Staff, error)
}

// WorkoutPlanRepository defines the interface for workout plan data.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	List(ctx context.Context, category domain.PlanCategory) ([]domain.WorkoutPlan, error)
	UpdateOwned(ctx context.Context, id, creatorID primitive.ObjectID, fields map[string]interface{}) (*domain.WorkoutPlan, error)
	DeleteOwned(ctx context.Context, id, creatorID primitive.ObjectID) error
	Assign(ctx context.Context, planID, memberID primitive.ObjectID) (*domain.WorkoutPlan, error)
}

// PaymentRepository defines the interface for payment data.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	// SumCompletedInRange sums completed payment amounts with paymentDate
	// in [from, to).
	SumCompletedInRange(ctx context.Context, from, to time.Time) (float64, error)
	// MonthlyRevenue groups completed payments since the given time by
	// (year, month), chronologically.
	MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthlyRevenue, error)
}

// PlanCount is a membership count grouped by plan type.
type PlanCount struct {
	PlanType string `bson:"_id" json:"planType"`
	Count    int64  `bson:"count" json:"count"`
}

// MonthlyRevenue is a revenue rollup for one calendar month.
type MonthlyRevenue struct {
	Year    int     `bson:"year" json:"year"`
	Month   int     `bson:"month" json:"month"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Count   int64   `bson:"count" json:"count"`
}
