package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/membership"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountCustomersByStatus(ctx context.Context, windowDays int) (*repository.CustomerCounts, error) {
	args := m.Called(ctx, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CustomerCounts), args.Error(1)
}
func (m *RepoMock) PlanPopularity(ctx context.Context) ([]repository.LabelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}
func (m *RepoMock) AgeDemographics(ctx context.Context) ([]repository.LabelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}
func (m *RepoMock) MonthlySignups(ctx context.Context, from time.Time) (map[string]int, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
func (m *RepoMock) CountAttendanceForDate(ctx context.Context, date string) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAnalyticsService_GetDashboard(t *testing.T) {
	counts := &repository.CustomerCounts{Total: 10, Active: 6, Expiring: 3, Expired: 1}
	today := time.Now().Format("2006-01-02")

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "analytics:dashboard", mock.Anything).Return(false, nil).Once()
	repo.On("CountCustomersByStatus", mock.Anything, membership.ExpiringWindowDays).
		Return(counts, nil).Once()
	repo.On("CountAttendanceForDate", mock.Anything, today).Return(4, nil).Once()
	cache.On("Set", "analytics:dashboard", mock.Anything, time.Minute).Return(nil).Once()

	svc := NewAnalyticsService(repo, cache, newNoopLogger())
	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, dashboard.TotalMembers)
	assert.Equal(t, 6, dashboard.ActiveMembers)
	assert.Equal(t, 3, dashboard.ExpiringMembers)
	assert.Equal(t, 1, dashboard.ExpiredMembers)
	assert.Equal(t, 4, dashboard.CheckinsToday)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAnalyticsService_GetDashboardRepoError(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", "analytics:dashboard", mock.Anything).Return(false, nil).Once()
	repo.On("CountCustomersByStatus", mock.Anything, membership.ExpiringWindowDays).
		Return(nil, errors.New("db down")).Once()

	svc := NewAnalyticsService(repo, cache, newNoopLogger())
	_, err := svc.GetDashboard(context.Background())
	require.Error(t, err)
}

func TestAnalyticsService_GetMembershipGrowth(t *testing.T) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(GrowthMonths - 1), 0)

	// Регистрации только в первый и последний месяцы окна,
	// остальные должны вернуться с нулём.
	signups := map[string]int{
		first.Format("2006-01"): 3,
		now.Format("2006-01"):   5,
	}

	repo := new(RepoMock)
	repo.On("MonthlySignups", mock.Anything, first).Return(signups, nil).Once()

	svc := NewAnalyticsService(repo, new(CacheMock), newNoopLogger())
	points, err := svc.GetMembershipGrowth(context.Background())
	require.NoError(t, err)

	require.Len(t, points, GrowthMonths)
	assert.Equal(t, first.Format("Jan 2006"), points[0].Label)
	assert.Equal(t, 3, points[0].Count)
	assert.Equal(t, now.Format("Jan 2006"), points[GrowthMonths-1].Label)
	assert.Equal(t, 5, points[GrowthMonths-1].Count)
	for _, p := range points[1 : GrowthMonths-1] {
		assert.Zero(t, p.Count, "month %s should be zero-filled", p.Label)
	}
	repo.AssertExpectations(t)
}

func TestAnalyticsService_GetPlanPopularity(t *testing.T) {
	plans := []repository.LabelCount{
		{Label: "Gold", Count: 12},
		{Label: "Silver", Count: 7},
	}

	repo := new(RepoMock)
	repo.On("PlanPopularity", mock.Anything).Return(plans, nil).Once()

	svc := NewAnalyticsService(repo, new(CacheMock), newNoopLogger())
	result, err := svc.GetPlanPopularity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plans, result)
}

func TestAnalyticsService_GetAgeDemographics(t *testing.T) {
	buckets := []repository.LabelCount{
		{Label: "18-25", Count: 9},
		{Label: "26-35", Count: 4},
	}

	repo := new(RepoMock)
	repo.On("AgeDemographics", mock.Anything).Return(buckets, nil).Once()

	svc := NewAnalyticsService(repo, new(CacheMock), newNoopLogger())
	result, err := svc.GetAgeDemographics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, buckets, result)
}
