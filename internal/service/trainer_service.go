package service

import (
	"context"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientSummary is one member of a trainer's roster, derived from confirmed
// bookings on the trainer's sessions.
type ClientSummary struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	TotalSessions     int        `json:"totalSessions"`
	SessionsCompleted int        `json:"sessionsCompleted"`
	LastSession       *time.Time `json:"lastSession,omitempty"`
	Streak            int        `json:"streak"`
}

// TrainerService covers trainer-facing roster queries.
type TrainerService interface {
	Clients(ctx context.Context, trainerID primitive.ObjectID) ([]ClientSummary, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	sessionRepo  repository.SessionRepository
	bookingRepo  repository.BookingRepository
	workoutRepo  repository.WorkoutRepository
	userRepo     repository.UserRepository
	streakWindow int
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	sessionRepo repository.SessionRepository,
	bookingRepo repository.BookingRepository,
	workoutRepo repository.WorkoutRepository,
	userRepo repository.UserRepository,
	streakWindow int,
) TrainerService {
	if streakWindow <= 0 {
		streakWindow = DefaultStreakWindow
	}
	return &trainerService{
		sessionRepo:  sessionRepo,
		bookingRepo:  bookingRepo,
		workoutRepo:  workoutRepo,
		userRepo:     userRepo,
		streakWindow: streakWindow,
	}
}

// Clients returns the distinct members holding confirmed bookings on the
// trainer's sessions, each with booking counts and their workout streak.
func (s *trainerService) Clients(ctx context.Context, trainerID primitive.ObjectID) ([]ClientSummary, error) {
	sessions, err := s.sessionRepo.ListByTrainer(ctx, trainerID, nil)
	if err != nil {
		return nil, err
	}
	sessionIDs := make([]primitive.ObjectID, len(sessions))
	completedSessions := make(map[primitive.ObjectID]bool, len(sessions))
	for i, session := range sessions {
		sessionIDs[i] = session.ID
		completedSessions[session.ID] = session.Status == domain.SessionCompleted
	}

	bookings, err := s.bookingRepo.ListConfirmedBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	byMember := make(map[primitive.ObjectID][]domain.Booking)
	order := make([]primitive.ObjectID, 0)
	for _, booking := range bookings {
		if _, seen := byMember[booking.MemberID]; !seen {
			order = append(order, booking.MemberID)
		}
		byMember[booking.MemberID] = append(byMember[booking.MemberID], booking)
	}

	now := time.Now()
	clients := make([]ClientSummary, 0, len(order))
	for _, memberID := range order {
		memberBookings := byMember[memberID]

		summary := ClientSummary{
			ID:            memberID.Hex(),
			TotalSessions: len(memberBookings),
		}
		if member, err := s.userRepo.GetByID(ctx, memberID); err == nil {
			summary.Name = member.Name
			summary.Email = member.Email
			summary.Phone = member.Phone
		}

		var last time.Time
		for _, booking := range memberBookings {
			if completedSessions[booking.SessionID] {
				summary.SessionsCompleted++
			}
			if booking.CreatedAt.After(last) {
				last = booking.CreatedAt
			}
		}
		if !last.IsZero() {
			summary.LastSession = &last
		}

		workouts, err := s.workoutRepo.ListByMember(ctx, memberID, int64(s.streakWindow))
		if err != nil {
			return nil, err
		}
		dates := make([]time.Time, len(workouts))
		for i, w := range workouts {
			dates[i] = w.Date
		}
		summary.Streak = computeStreak(dates, now)

		clients = append(clients, summary)
	}
	return clients, nil
}
