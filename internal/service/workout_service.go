package service

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// workoutHistoryLimit caps the number of workouts returned by listing.
const workoutHistoryLimit = 50

// WorkoutInput carries the writable fields of a logged workout.
type WorkoutInput struct {
	Date           *time.Time
	Exercises      []domain.Exercise
	Duration       int
	CaloriesBurned int
	Notes          string
}

// WorkoutStats is the derived summary for a member's training history.
type WorkoutStats struct {
	WorkoutsThisWeek int64   `json:"workoutsThisWeek"`
	TotalWorkouts    int64   `json:"totalWorkouts"`
	TotalVolume      float64 `json:"totalVolume"`
	Streak           int     `json:"streak"`
}

// WorkoutService covers self-service workout logging and statistics.
type WorkoutService interface {
	List(ctx context.Context, memberID primitive.ObjectID) ([]domain.Workout, error)
	Create(ctx context.Context, memberID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error)
	Update(ctx context.Context, memberID, workoutID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, memberID, workoutID primitive.ObjectID) error
	Stats(ctx context.Context, memberID primitive.ObjectID) (*WorkoutStats, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	streakWindow int
}

// NewWorkoutService creates a new instance of workoutService. streakWindow
// bounds how many recent workouts the streak scan considers.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, streakWindow int) WorkoutService {
	if streakWindow <= 0 {
		streakWindow = DefaultStreakWindow
	}
	return &workoutService{
		workoutRepo:  workoutRepo,
		streakWindow: streakWindow,
	}
}

// List returns the member's workouts, newest first.
func (s *workoutService) List(ctx context.Context, memberID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.ListByMember(ctx, memberID, workoutHistoryLimit)
}

// Create logs a new workout. TotalVolume is always derived from the
// exercise list, never taken from the caller.
func (s *workoutService) Create(ctx context.Context, memberID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error) {
	if len(in.Exercises) == 0 {
		return nil, errors.New("a workout needs at least one exercise")
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	workout := &domain.Workout{
		MemberID:       memberID,
		Date:           date,
		Exercises:      in.Exercises,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Notes:          in.Notes,
	}
	workout.ComputeTotalVolume()

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

// Update replaces a workout owned by the member, recomputing TotalVolume.
func (s *workoutService) Update(ctx context.Context, memberID, workoutID primitive.ObjectID, in WorkoutInput) (*domain.Workout, error) {
	if len(in.Exercises) == 0 {
		return nil, errors.New("a workout needs at least one exercise")
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	workout := &domain.Workout{
		ID:             workoutID,
		MemberID:       memberID,
		Date:           date,
		Exercises:      in.Exercises,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Notes:          in.Notes,
	}
	workout.ComputeTotalVolume()

	updated, err := s.workoutRepo.UpdateOwned(ctx, workout)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a workout owned by the member.
func (s *workoutService) Delete(ctx context.Context, memberID, workoutID primitive.ObjectID) error {
	err := s.workoutRepo.DeleteOwned(ctx, workoutID, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

// Stats derives the member's weekly count, totals and workout-day streak.
func (s *workoutService) Stats(ctx context.Context, memberID primitive.ObjectID) (*WorkoutStats, error) {
	now := time.Now()

	thisWeek, err := s.workoutRepo.CountByMemberSince(ctx, memberID, startOfWeek(now))
	if err != nil {
		return nil, err
	}

	total, err := s.workoutRepo.CountByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	volume, err := s.workoutRepo.TotalVolumeByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	recent, err := s.workoutRepo.ListByMember(ctx, memberID, int64(s.streakWindow))
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(recent))
	for i, w := range recent {
		dates[i] = w.Date
	}

	return &WorkoutStats{
		WorkoutsThisWeek: thisWeek,
		TotalWorkouts:    total,
		TotalVolume:      volume,
		Streak:           computeStreak(dates, now),
	}, nil
}
