package service

import (
	"context"
	"testing"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMembershipRepo struct {
	repository.MembershipRepository
	active   int64
	expiring int64
	plans    []repository.PlanCount
}

func (r *fakeMembershipRepo) CountByStatus(_ context.Context, status domain.MembershipStatus) (int64, error) {
	if status == domain.MembershipActive {
		return r.active, nil
	}
	return 0, nil
}

func (r *fakeMembershipRepo) CountExpiring(context.Context, time.Time, time.Time) (int64, error) {
	return r.expiring, nil
}

func (r *fakeMembershipRepo) PlanDistribution(context.Context) ([]repository.PlanCount, error) {
	return r.plans, nil
}

type fakePaymentRepo struct {
	repository.PaymentRepository
	todaySum  float64
	monthly   []repository.MonthlyRevenue
	lastSince time.Time
}

func (r *fakePaymentRepo) SumCompletedInRange(context.Context, time.Time, time.Time) (float64, error) {
	return r.todaySum, nil
}

func (r *fakePaymentRepo) MonthlyRevenue(_ context.Context, since time.Time) ([]repository.MonthlyRevenue, error) {
	r.lastSince = since
	return r.monthly, nil
}

type fakeCheckInCounter struct {
	repository.CheckInRepository
	today int64
}

func (r *fakeCheckInCounter) CountInRange(context.Context, time.Time, time.Time) (int64, error) {
	return r.today, nil
}

func TestAnalyticsDashboard(t *testing.T) {
	svc := NewAnalyticsService(
		&fakeMembershipRepo{active: 42, expiring: 7},
		&fakePaymentRepo{todaySum: 349.97},
		&fakeCheckInCounter{today: 15},
	)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.ActiveMembers)
	assert.Equal(t, int64(7), stats.ExpiringThisMonth)
	assert.Equal(t, 349.97, stats.TodayRevenue)
	assert.Equal(t, int64(15), stats.TodayCheckIns)
}

func TestAnalyticsRevenue(t *testing.T) {
	payments := &fakePaymentRepo{
		monthly: []repository.MonthlyRevenue{
			{Year: 2026, Month: 7, Revenue: 1200, Count: 24},
			{Year: 2026, Month: 8, Revenue: 1500, Count: 30},
		},
	}
	svc := NewAnalyticsService(
		&fakeMembershipRepo{plans: []repository.PlanCount{{PlanType: "premium", Count: 12}}},
		payments,
		&fakeCheckInCounter{},
	)

	t.Run("explicit window", func(t *testing.T) {
		analytics, err := svc.Revenue(context.Background(), 3)
		require.NoError(t, err)
		assert.Len(t, analytics.MonthlyRevenue, 2)
		assert.Equal(t, "premium", analytics.PlanDistribution[0].PlanType)

		// the trailing window reaches roughly 3 months back
		expected := time.Now().AddDate(0, -3, 0)
		assert.WithinDuration(t, expected, payments.lastSince, time.Minute)
	})

	t.Run("non-positive window falls back to default", func(t *testing.T) {
		_, err := svc.Revenue(context.Background(), 0)
		require.NoError(t, err)

		expected := time.Now().AddDate(0, -defaultRevenueMonths, 0)
		assert.WithinDuration(t, expected, payments.lastSince, time.Minute)
	})
}
