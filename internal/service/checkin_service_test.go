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

// fakeCheckInRepo enforces the unique (member, day) constraint in memory.
type fakeCheckInRepo struct {
	repository.CheckInRepository
	checkIns []*domain.CheckIn
}

func (r *fakeCheckInRepo) Create(_ context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	for _, existing := range r.checkIns {
		if existing.MemberID == checkIn.MemberID && existing.Day.Equal(checkIn.Day) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	copied := *checkIn
	copied.ID = id
	r.checkIns = append(r.checkIns, &copied)
	return id, nil
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("uses default location when omitted", func(t *testing.T) {
		svc := NewCheckInService(&fakeCheckInRepo{})

		checkIn, err := svc.CheckIn(ctx, primitive.NewObjectID(), "")
		require.NoError(t, err)
		assert.Equal(t, DefaultLocation, checkIn.Location)
		assert.False(t, checkIn.Day.IsZero())
	})

	t.Run("second check-in same day rejected", func(t *testing.T) {
		svc := NewCheckInService(&fakeCheckInRepo{})
		member := primitive.NewObjectID()

		_, err := svc.CheckIn(ctx, member, "FitTrack North")
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, member, "FitTrack North")
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})

	t.Run("different members may share a day", func(t *testing.T) {
		svc := NewCheckInService(&fakeCheckInRepo{})

		_, err := svc.CheckIn(ctx, primitive.NewObjectID(), "")
		require.NoError(t, err)
		_, err = svc.CheckIn(ctx, primitive.NewObjectID(), "")
		assert.NoError(t, err)
	})
}
