package service

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAlreadyBooked   = errors.New("you have already booked this session")
	ErrSessionFull     = errors.New("session is fully booked")
	ErrBookingNotFound = errors.New("booking not found")
)

// TrainerInfo is the subset of a trainer's profile attached to sessions.
type TrainerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AvailableSession is a session annotated with live availability. Spots is
// derived from the confirmed-booking count, not the denormalized counter.
type AvailableSession struct {
	domain.Session
	Trainer     TrainerInfo `json:"trainer"`
	Spots       int         `json:"spots"`
	BookedCount int         `json:"bookedSpots"`
}

// BookingDetails is a booking joined with its session and trainer.
type BookingDetails struct {
	domain.Booking
	Session *domain.Session `json:"session,omitempty"`
	Trainer *TrainerInfo    `json:"trainer,omitempty"`
}

// TrainerSession is a trainer's session with its confirmed attendee list.
type TrainerSession struct {
	domain.Session
	Attendees []AttendeeInfo `json:"attendees"`
}

// AttendeeInfo identifies a booked member on a trainer's session.
type AttendeeInfo struct {
	BookingID string `json:"bookingId"`
	MemberID  string `json:"memberId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// SessionInput carries the writable fields of a session.
type SessionInput struct {
	Type     string
	Date     time.Time
	Time     string
	Duration int
	MaxSpots int
	Status   domain.SessionStatus
}

// SessionService covers session scheduling, availability and booking.
type SessionService interface {
	ListAvailable(ctx context.Context, after *time.Time) ([]AvailableSession, error)
	MyBookings(ctx context.Context, memberID primitive.ObjectID) ([]BookingDetails, error)
	Book(ctx context.Context, memberID, sessionID primitive.ObjectID) (*domain.Booking, error)
	CancelBooking(ctx context.Context, memberID, bookingID primitive.ObjectID) (*domain.Booking, error)
	TrainerSessions(ctx context.Context, trainerID primitive.ObjectID, date *time.Time) ([]TrainerSession, error)
	Create(ctx context.Context, trainerID primitive.ObjectID, in SessionInput) (*domain.Session, error)
	Update(ctx context.Context, trainerID, sessionID primitive.ObjectID, in SessionInput) (*domain.Session, error)
	Delete(ctx context.Context, trainerID, sessionID primitive.ObjectID) error
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// ListAvailable returns bookable sessions with remaining spot counts.
func (s *sessionService) ListAvailable(ctx context.Context, after *time.Time) ([]AvailableSession, error) {
	cutoff := time.Now()
	if after != nil {
		cutoff = *after
	}

	sessions, err := s.sessionRepo.ListAvailable(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	out := make([]AvailableSession, 0, len(sessions))
	for _, session := range sessions {
		confirmed, err := s.bookingRepo.CountConfirmedBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}

		annotated := AvailableSession{
			Session:     session,
			Spots:       session.MaxSpots - int(confirmed),
			BookedCount: int(confirmed),
		}
		if trainer, err := s.userRepo.GetByID(ctx, session.TrainerID); err == nil {
			annotated.Trainer = TrainerInfo{ID: trainer.ID.Hex(), Name: trainer.Name, Email: trainer.Email}
		}
		out = append(out, annotated)
	}
	return out, nil
}

// MyBookings returns the member's bookings, newest first, with session details.
func (s *sessionService) MyBookings(ctx context.Context, memberID primitive.ObjectID) ([]BookingDetails, error) {
	bookings, err := s.bookingRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(bookings))
	for _, booking := range bookings {
		details := BookingDetails{Booking: booking}
		if session, err := s.sessionRepo.GetByID(ctx, booking.SessionID); err == nil {
			details.Session = session
			if trainer, err := s.userRepo.GetByID(ctx, session.TrainerID); err == nil {
				details.Trainer = &TrainerInfo{ID: trainer.ID.Hex(), Name: trainer.Name, Email: trainer.Email}
			}
		}
		out = append(out, details)
	}
	return out, nil
}

// Book creates a confirmed booking for the member on the session.
//
// Capacity is claimed with an atomic conditional increment on the session
// before the booking is inserted, and the unique partial index on
// (member, session, confirmed) backs the duplicate check, so neither
// invariant depends on a read-then-write gap.
func (s *sessionService) Book(ctx context.Context, memberID, sessionID primitive.ObjectID) (*domain.Booking, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// Fast path: reject an obvious duplicate before touching the counter.
	if _, err := s.bookingRepo.GetConfirmed(ctx, memberID, sessionID); err == nil {
		return nil, ErrAlreadyBooked
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.sessionRepo.ReserveSpot(ctx, session.ID); err != nil {
		if errors.Is(err, repository.ErrUpdateFailed) {
			return nil, ErrSessionFull
		}
		return nil, err
	}

	booking := &domain.Booking{
		MemberID:  memberID,
		SessionID: sessionID,
		Status:    domain.BookingConfirmed,
	}
	bookingID, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		// Give the reserved spot back before reporting the failure.
		if releaseErr := s.sessionRepo.ReleaseSpot(ctx, session.ID); releaseErr != nil {
			log.Error().Err(releaseErr).Str("session", session.ID.Hex()).Msg("failed to release reserved spot")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	booking.ID = bookingID

	if err := s.sessionRepo.AttachBooking(ctx, sessionID, bookingID); err != nil {
		log.Error().Err(err).Str("session", sessionID.Hex()).Str("booking", bookingID.Hex()).
			Msg("failed to attach booking reference to session")
	}

	return booking, nil
}

// CancelBooking cancels a confirmed booking owned by the member and releases
// its spot.
func (s *sessionService) CancelBooking(ctx context.Context, memberID, bookingID primitive.ObjectID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.CancelOwned(ctx, bookingID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.sessionRepo.ReleaseSpot(ctx, booking.SessionID); err != nil {
		log.Error().Err(err).Str("session", booking.SessionID.Hex()).Msg("failed to release spot on cancel")
	}

	return booking, nil
}

// TrainerSessions returns the trainer's sessions with confirmed attendees.
func (s *sessionService) TrainerSessions(ctx context.Context, trainerID primitive.ObjectID, date *time.Time) ([]TrainerSession, error) {
	sessions, err := s.sessionRepo.ListByTrainer(ctx, trainerID, date)
	if err != nil {
		return nil, err
	}

	out := make([]TrainerSession, 0, len(sessions))
	for _, session := range sessions {
		bookings, err := s.bookingRepo.ListConfirmedBySessions(ctx, []primitive.ObjectID{session.ID})
		if err != nil {
			return nil, err
		}

		attendees := make([]AttendeeInfo, 0, len(bookings))
		for _, booking := range bookings {
			info := AttendeeInfo{BookingID: booking.ID.Hex(), MemberID: booking.MemberID.Hex()}
			if member, err := s.userRepo.GetByID(ctx, booking.MemberID); err == nil {
				info.Name = member.Name
				info.Email = member.Email
			}
			attendees = append(attendees, info)
		}
		out = append(out, TrainerSession{Session: session, Attendees: attendees})
	}
	return out, nil
}

// Create schedules a new session owned by the trainer.
func (s *sessionService) Create(ctx context.Context, trainerID primitive.ObjectID, in SessionInput) (*domain.Session, error) {
	session := &domain.Session{
		Type:      in.Type,
		TrainerID: trainerID,
		Date:      in.Date,
		Time:      in.Time,
		Duration:  in.Duration,
		MaxSpots:  in.MaxSpots,
		Status:    in.Status,
	}

	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

// Update modifies a session owned by the trainer.
func (s *sessionService) Update(ctx context.Context, trainerID, sessionID primitive.ObjectID, in SessionInput) (*domain.Session, error) {
	fields := map[string]interface{}{
		"type":     in.Type,
		"date":     in.Date,
		"time":     in.Time,
		"duration": in.Duration,
		"maxSpots": in.MaxSpots,
	}
	if in.Status != "" {
		fields["status"] = in.Status
	}

	session, err := s.sessionRepo.UpdateOwned(ctx, sessionID, trainerID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Delete removes a session owned by the trainer.
func (s *sessionService) Delete(ctx context.Context, trainerID, sessionID primitive.ObjectID) error {
	err := s.sessionRepo.DeleteOwned(ctx, sessionID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
