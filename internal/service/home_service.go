package service

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const upcomingBookingLimit = 5

// MembershipSummary is the member's current membership as shown on the home
// screen. Nil DaysRemaining means no membership on file.
type MembershipSummary struct {
	PlanType      string                  `json:"planType"`
	Status        domain.MembershipStatus `json:"status"`
	EndDate       time.Time               `json:"endDate"`
	DaysRemaining int                     `json:"daysRemaining"`
}

// UpcomingSession is one of the member's next confirmed bookings.
type UpcomingSession struct {
	BookingID   primitive.ObjectID `json:"bookingId"`
	SessionID   primitive.ObjectID `json:"sessionId"`
	Type        string             `json:"type"`
	Date        time.Time          `json:"date"`
	Time        string             `json:"time"`
	Duration    int                `json:"duration"`
	TrainerName string             `json:"trainerName"`
}

// HomeSummary is everything the member landing screen needs in one call.
type HomeSummary struct {
	Membership       *MembershipSummary `json:"membership"`
	CheckInStreak    int                `json:"checkInStreak"`
	WorkoutsThisWeek int64              `json:"workoutsThisWeek"`
	TodayCalories    int                `json:"todayCalories"`
	TodayMinutes     int                `json:"todayMinutes"`
	UpcomingSessions []UpcomingSession  `json:"upcomingSessions"`
}

// HomeService assembles the member home screen.
type HomeService interface {
	Summary(ctx context.Context, memberID primitive.ObjectID) (*HomeSummary, error)
}

// homeService implements the HomeService interface.
type homeService struct {
	membershipRepo repository.MembershipRepository
	checkInRepo    repository.CheckInRepository
	workoutRepo    repository.WorkoutRepository
	bookingRepo    repository.BookingRepository
	sessionRepo    repository.SessionRepository
	userRepo       repository.UserRepository
	streakWindow   int
}

// NewHomeService creates a new instance of homeService.
func NewHomeService(
	membershipRepo repository.MembershipRepository,
	checkInRepo repository.CheckInRepository,
	workoutRepo repository.WorkoutRepository,
	bookingRepo repository.BookingRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	streakWindow int,
) HomeService {
	if streakWindow <= 0 {
		streakWindow = DefaultStreakWindow
	}
	return &homeService{
		membershipRepo: membershipRepo,
		checkInRepo:    checkInRepo,
		workoutRepo:    workoutRepo,
		bookingRepo:    bookingRepo,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		streakWindow:   streakWindow,
	}
}

// Summary gathers membership state, activity counters and the next confirmed
// bookings for one member. A missing membership is not an error; the section
// is simply nil.
func (s *homeService) Summary(ctx context.Context, memberID primitive.ObjectID) (*HomeSummary, error) {
	now := time.Now()
	summary := &HomeSummary{UpcomingSessions: []UpcomingSession{}}

	membership, err := s.membershipRepo.GetCurrentByMember(ctx, memberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if membership != nil {
		days := int(time.Until(membership.EndDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		summary.Membership = &MembershipSummary{
			PlanType:      membership.PlanType,
			Status:        membership.Status,
			EndDate:       membership.EndDate,
			DaysRemaining: days,
		}
	}

	checkIns, err := s.checkInRepo.ListByMember(ctx, memberID, int64(s.streakWindow))
	if err != nil {
		return nil, err
	}
	days := make([]time.Time, 0, len(checkIns))
	for _, c := range checkIns {
		days = append(days, c.Day)
	}
	summary.CheckInStreak = computeStreak(days, now)

	weekCount, err := s.workoutRepo.CountByMemberSince(ctx, memberID, startOfWeek(now))
	if err != nil {
		return nil, err
	}
	summary.WorkoutsThisWeek = weekCount

	today := startOfDay(now)
	todayWorkout, err := s.workoutRepo.FirstInRange(ctx, memberID, today, today.AddDate(0, 0, 1))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if todayWorkout != nil {
		summary.TodayCalories = todayWorkout.CaloriesBurned
		summary.TodayMinutes = todayWorkout.Duration
	}

	bookings, err := s.bookingRepo.ListConfirmedByMember(ctx, memberID, upcomingBookingLimit)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		session, err := s.sessionRepo.GetByID(ctx, b.SessionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if session.Date.Before(today) {
			continue
		}
		upcoming := UpcomingSession{
			BookingID: b.ID,
			SessionID: session.ID,
			Type:      session.Type,
			Date:      session.Date,
			Time:      session.Time,
			Duration:  session.Duration,
		}
		if trainer, err := s.userRepo.GetByID(ctx, session.TrainerID); err == nil {
			upcoming.TrainerName = trainer.Name
		}
		summary.UpcomingSessions = append(summary.UpcomingSessions, upcoming)
	}

	return summary, nil
}
