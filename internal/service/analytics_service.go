package service

import (
	"context"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"
)

// defaultRevenueMonths is the trailing window for the revenue trend when the
// caller does not name one.
const defaultRevenueMonths = 6

// DashboardStats is the admin landing-page rollup.
type DashboardStats struct {
	ActiveMembers     int64   `json:"activeMembers"`
	ExpiringThisMonth int64   `json:"expiringThisMonth"`
	TodayRevenue      float64 `json:"todayRevenue"`
	TodayCheckIns     int64   `json:"todayCheckIns"`
}

// RevenueAnalytics is the revenue trend plus plan distribution.
type RevenueAnalytics struct {
	MonthlyRevenue   []repository.MonthlyRevenue `json:"monthlyRevenue"`
	PlanDistribution []repository.PlanCount      `json:"planDistribution"`
}

// AnalyticsService covers admin-facing aggregate statistics. All operations
// are read-side; they reflect collection state at query time.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Revenue(ctx context.Context, months int) (*RevenueAnalytics, error)
}

// analyticsService implements the AnalyticsService interface.
type analyticsService struct {
	membershipRepo repository.MembershipRepository
	paymentRepo    repository.PaymentRepository
	checkInRepo    repository.CheckInRepository
}

// NewAnalyticsService creates a new instance of analyticsService.
func NewAnalyticsService(
	membershipRepo repository.MembershipRepository,
	paymentRepo repository.PaymentRepository,
	checkInRepo repository.CheckInRepository,
) AnalyticsService {
	return &analyticsService{
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		checkInRepo:    checkInRepo,
	}
}

// Dashboard aggregates today's activity and membership counts.
func (s *analyticsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	active, err := s.membershipRepo.CountByStatus(ctx, domain.MembershipActive)
	if err != nil {
		return nil, err
	}

	expiring, err := s.membershipRepo.CountExpiring(ctx, today, endOfMonth(now))
	if err != nil {
		return nil, err
	}

	revenue, err := s.paymentRepo.SumCompletedInRange(ctx, today, tomorrow)
	if err != nil {
		return nil, err
	}

	checkIns, err := s.checkInRepo.CountInRange(ctx, today, tomorrow)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ActiveMembers:     active,
		ExpiringThisMonth: expiring,
		TodayRevenue:      revenue,
		TodayCheckIns:     checkIns,
	}, nil
}

// Revenue produces the monthly revenue trend over the trailing window and
// the membership plan distribution.
func (s *analyticsService) Revenue(ctx context.Context, months int) (*RevenueAnalytics, error) {
	if months <= 0 {
		months = defaultRevenueMonths
	}

	since := time.Now().AddDate(0, -months, 0)
	monthly, err := s.paymentRepo.MonthlyRevenue(ctx, since)
	if err != nil {
		return nil, err
	}

	plans, err := s.membershipRepo.PlanDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &RevenueAnalytics{
		MonthlyRevenue:   monthly,
		PlanDistribution: plans,
	}, nil
}
