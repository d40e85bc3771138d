package service

import (
	"context"
	"testing"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeSessionRepo keeps sessions in memory and mimics the conditional
// capacity increment of the mongo implementation.
type fakeSessionRepo struct {
	repository.SessionRepository
	sessions map[primitive.ObjectID]*domain.Session
}

func newFakeSessionRepo(sessions ...*domain.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: make(map[primitive.ObjectID]*domain.Session)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) ReserveSpot(_ context.Context, id primitive.ObjectID) error {
	s, ok := r.sessions[id]
	if !ok || s.BookedSpots >= s.MaxSpots {
		return repository.ErrUpdateFailed
	}
	s.BookedSpots++
	return nil
}

func (r *fakeSessionRepo) ReleaseSpot(_ context.Context, id primitive.ObjectID) error {
	s, ok := r.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if s.BookedSpots > 0 {
		s.BookedSpots--
	}
	return nil
}

func (r *fakeSessionRepo) AttachBooking(_ context.Context, sessionID, bookingID primitive.ObjectID) error {
	s, ok := r.sessions[sessionID]
	if !ok {
		return repository.ErrNotFound
	}
	s.BookingIDs = append(s.BookingIDs, bookingID)
	return nil
}

// fakeBookingRepo keeps bookings in memory and enforces the unique
// (member, session, confirmed) constraint the way the partial index does.
type fakeBookingRepo struct {
	repository.BookingRepository
	bookings map[primitive.ObjectID]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	for _, b := range r.bookings {
		if b.MemberID == booking.MemberID && b.SessionID == booking.SessionID && b.Status == domain.BookingConfirmed {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	copied := *booking
	copied.ID = id
	r.bookings[id] = &copied
	return id, nil
}

func (r *fakeBookingRepo) GetConfirmed(_ context.Context, memberID, sessionID primitive.ObjectID) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.MemberID == memberID && b.SessionID == sessionID && b.Status == domain.BookingConfirmed {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBookingRepo) CountConfirmedBySession(_ context.Context, sessionID primitive.ObjectID) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.SessionID == sessionID && b.Status == domain.BookingConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CancelOwned(_ context.Context, id, memberID primitive.ObjectID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.MemberID != memberID || b.Status != domain.BookingConfirmed {
		return nil, repository.ErrNotFound
	}
	b.Status = domain.BookingCancelled
	copied := *b
	return &copied, nil
}

// fakeUserRepo resolves users from a fixed map.
type fakeUserRepo struct {
	repository.UserRepository
	users map[primitive.ObjectID]*domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func newBookingFixture(maxSpots int) (*fakeSessionRepo, *fakeBookingRepo, SessionService, primitive.ObjectID) {
	session := &domain.Session{
		ID:       primitive.NewObjectID(),
		Type:     "HIIT",
		MaxSpots: maxSpots,
		Status:   domain.SessionScheduled,
	}
	sessionRepo := newFakeSessionRepo(session)
	bookingRepo := newFakeBookingRepo()
	userRepo := &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
	svc := NewSessionService(sessionRepo, bookingRepo, userRepo)
	return sessionRepo, bookingRepo, svc, session.ID
}

func TestBookSession(t *testing.T) {
	ctx := context.Background()

	t.Run("success claims a spot and attaches the booking", func(t *testing.T) {
		sessionRepo, _, svc, sessionID := newBookingFixture(5)
		member := primitive.NewObjectID()

		booking, err := svc.Book(ctx, member, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
		assert.Equal(t, member, booking.MemberID)

		session := sessionRepo.sessions[sessionID]
		assert.Equal(t, 1, session.BookedSpots)
		assert.Contains(t, session.BookingIDs, booking.ID)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, _, svc, _ := newBookingFixture(5)

		_, err := svc.Book(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("duplicate booking rejected", func(t *testing.T) {
		sessionRepo, _, svc, sessionID := newBookingFixture(5)
		member := primitive.NewObjectID()

		_, err := svc.Book(ctx, member, sessionID)
		require.NoError(t, err)

		_, err = svc.Book(ctx, member, sessionID)
		assert.ErrorIs(t, err, ErrAlreadyBooked)
		assert.Equal(t, 1, sessionRepo.sessions[sessionID].BookedSpots)
	})

	t.Run("duplicate caught by insert releases the reserved spot", func(t *testing.T) {
		sessionRepo, bookingRepo, _, sessionID := newBookingFixture(5)
		member := primitive.NewObjectID()

		// Seed a confirmed booking and hide it from the fast-path lookup,
		// mirroring a concurrent booking racing past the duplicate check.
		// The insert-level unique constraint still fires.
		_, err := bookingRepo.Create(ctx, &domain.Booking{
			MemberID:  member,
			SessionID: sessionID,
			Status:    domain.BookingConfirmed,
		})
		require.NoError(t, err)
		blind := &blindGetBookingRepo{fakeBookingRepo: bookingRepo}
		svcBlind := NewSessionService(sessionRepo, blind, &fakeUserRepo{})

		_, err = svcBlind.Book(ctx, member, sessionID)
		assert.ErrorIs(t, err, ErrAlreadyBooked)
		assert.Equal(t, 0, sessionRepo.sessions[sessionID].BookedSpots)
	})

	t.Run("last spot bookable then full", func(t *testing.T) {
		sessionRepo, _, svc, sessionID := newBookingFixture(2)

		_, err := svc.Book(ctx, primitive.NewObjectID(), sessionID)
		require.NoError(t, err)
		_, err = svc.Book(ctx, primitive.NewObjectID(), sessionID)
		require.NoError(t, err)

		_, err = svc.Book(ctx, primitive.NewObjectID(), sessionID)
		assert.ErrorIs(t, err, ErrSessionFull)
		assert.Equal(t, 2, sessionRepo.sessions[sessionID].BookedSpots)
	})
}

// blindGetBookingRepo hides confirmed bookings from the fast-path lookup so
// the insert-level duplicate handling can be exercised.
type blindGetBookingRepo struct {
	*fakeBookingRepo
}

func (r *blindGetBookingRepo) GetConfirmed(context.Context, primitive.ObjectID, primitive.ObjectID) (*domain.Booking, error) {
	return nil, repository.ErrNotFound
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel releases the spot", func(t *testing.T) {
		sessionRepo, _, svc, sessionID := newBookingFixture(3)
		member := primitive.NewObjectID()

		booking, err := svc.Book(ctx, member, sessionID)
		require.NoError(t, err)
		require.Equal(t, 1, sessionRepo.sessions[sessionID].BookedSpots)

		cancelled, err := svc.CancelBooking(ctx, member, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, cancelled.Status)
		assert.Equal(t, 0, sessionRepo.sessions[sessionID].BookedSpots)
	})

	t.Run("cannot cancel someone else's booking", func(t *testing.T) {
		_, _, svc, sessionID := newBookingFixture(3)
		member := primitive.NewObjectID()

		booking, err := svc.Book(ctx, member, sessionID)
		require.NoError(t, err)

		_, err = svc.CancelBooking(ctx, primitive.NewObjectID(), booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("rebooking after cancel succeeds", func(t *testing.T) {
		_, _, svc, sessionID := newBookingFixture(1)
		member := primitive.NewObjectID()

		booking, err := svc.Book(ctx, member, sessionID)
		require.NoError(t, err)
		_, err = svc.CancelBooking(ctx, member, booking.ID)
		require.NoError(t, err)

		_, err = svc.Book(ctx, member, sessionID)
		assert.NoError(t, err)
	})
}
