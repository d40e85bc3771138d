package service

import (
	"context"
	"testing"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeWorkoutRepo keeps workouts in memory, newest first on listing.
type fakeWorkoutRepo struct {
	repository.WorkoutRepository
	workouts []*domain.Workout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	copied := *workout
	copied.ID = id
	r.workouts = append(r.workouts, &copied)
	return id, nil
}

func (r *fakeWorkoutRepo) ListByMember(_ context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	var out []domain.Workout
	for i := len(r.workouts) - 1; i >= 0; i-- {
		if r.workouts[i].MemberID == memberID {
			out = append(out, *r.workouts[i])
			if limit > 0 && int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) CountByMember(_ context.Context, memberID primitive.ObjectID) (int64, error) {
	var n int64
	for _, w := range r.workouts {
		if w.MemberID == memberID {
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkoutRepo) CountByMemberSince(_ context.Context, memberID primitive.ObjectID, since time.Time) (int64, error) {
	var n int64
	for _, w := range r.workouts {
		if w.MemberID == memberID && !w.Date.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkoutRepo) TotalVolumeByMember(_ context.Context, memberID primitive.ObjectID) (float64, error) {
	var total float64
	for _, w := range r.workouts {
		if w.MemberID == memberID {
			total += w.TotalVolume
		}
	}
	return total, nil
}

func TestWorkoutCreateComputesVolume(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	svc := NewWorkoutService(repo, 0)
	member := primitive.NewObjectID()

	workout, err := svc.Create(context.Background(), member, WorkoutInput{
		Exercises: []domain.Exercise{
			{Name: "Squat", Sets: 3, Reps: 5, Weight: 100},
			{Name: "Bench", Sets: 3, Reps: 8, Weight: 60},
			{Name: "Plank", Sets: 3, Reps: 1, Weight: 0},
		},
		Duration: 45,
	})
	require.NoError(t, err)

	// 3*5*100 + 3*8*60 = 1500 + 1440
	assert.Equal(t, 2940.0, workout.TotalVolume)
	assert.False(t, workout.Date.IsZero())
}

func TestWorkoutCreateRequiresExercise(t *testing.T) {
	svc := NewWorkoutService(&fakeWorkoutRepo{}, 0)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), WorkoutInput{Duration: 30})
	assert.Error(t, err)
}

func TestWorkoutStats(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	svc := NewWorkoutService(repo, 0)
	member := primitive.NewObjectID()
	ctx := context.Background()

	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)
	lastMonth := today.AddDate(0, -1, 0)

	for _, date := range []time.Time{lastMonth, yesterday, today} {
		d := date
		_, err := svc.Create(ctx, member, WorkoutInput{
			Date:      &d,
			Exercises: []domain.Exercise{{Name: "Row", Sets: 2, Reps: 10, Weight: 40}},
		})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, member)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalWorkouts)
	assert.Equal(t, 3*2*10*40.0, stats.TotalVolume)
	// today + yesterday are consecutive, the month-old entry is not adjacent
	assert.Equal(t, 2, stats.Streak)
}

func TestWorkoutStatsNoWorkoutToday(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	svc := NewWorkoutService(repo, 0)
	member := primitive.NewObjectID()
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := svc.Create(ctx, member, WorkoutInput{
		Date:      &yesterday,
		Exercises: []domain.Exercise{{Name: "Row", Sets: 2, Reps: 10, Weight: 40}},
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Streak)
}
