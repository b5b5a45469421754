// Package services содержит бизнес-логику административной аналитики:
// сводка по клубу, популярность тарифов, демография и динамика регистраций.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/membership"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/storage/repository"
)

// GrowthMonths сколько последних месяцев попадает в график регистраций.
const GrowthMonths = 6

// AnalyticsRepository определяет агрегирующие запросы к хранилищу.
type AnalyticsRepository interface {
	// CountCustomersByStatus считает клиентов по статусам абонемента.
	CountCustomersByStatus(ctx context.Context, windowDays int) (*repository.CustomerCounts, error)
	// PlanPopularity возвращает количество клиентов по тарифам.
	PlanPopularity(ctx context.Context) ([]repository.LabelCount, error)
	// AgeDemographics возвращает распределение клиентов по возрастным группам.
	AgeDemographics(ctx context.Context) ([]repository.LabelCount, error)
	// MonthlySignups возвращает регистрации по месяцам начиная с from.
	MonthlySignups(ctx context.Context, from time.Time) (map[string]int, error)
	// CountAttendanceForDate считает посещения за день.
	CountAttendanceForDate(ctx context.Context, date string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Dashboard сводные показатели для главного экрана администратора.
type Dashboard struct {
	TotalMembers    int `json:"total_members"`
	ActiveMembers   int `json:"active_members"`
	ExpiringMembers int `json:"expiring_members"`
	ExpiredMembers  int `json:"expired_members"`
	CheckinsToday   int `json:"checkins_today"`
}

// GrowthPoint точка графика регистраций за один месяц.
type GrowthPoint struct {
	Label string `json:"label"` // Например "Jan 2025"
	Count int    `json:"count"`
}

// AnalyticsService реализует агрегаты для административных экранов.
type AnalyticsService struct {
	repo  AnalyticsRepository
	cache Cache
	log   *slog.Logger
}

// NewAnalyticsService создает новый экземпляр AnalyticsService.
func NewAnalyticsService(repo AnalyticsRepository, cache Cache, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetDashboard возвращает сводку по клубу. Окно "истекающих" то же,
// что и при вычислении статуса отдельного клиента.
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var result *Dashboard
	const cacheKey = "analytics:dashboard"
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if found {
		return result, nil
	}

	counts, err := s.repo.CountCustomersByStatus(ctx, membership.ExpiringWindowDays)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format("2006-01-02")
	checkins, err := s.repo.CountAttendanceForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	result = &Dashboard{
		TotalMembers:    counts.Total,
		ActiveMembers:   counts.Active,
		ExpiringMembers: counts.Expiring,
		ExpiredMembers:  counts.Expired,
		CheckinsToday:   checkins,
	}
	if err := s.cache.Set(cacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to cache dashboard", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// GetPlanPopularity возвращает тарифы по убыванию числа клиентов.
func (s *AnalyticsService) GetPlanPopularity(ctx context.Context) ([]repository.LabelCount, error) {
	return s.repo.PlanPopularity(ctx)
}

// GetAgeDemographics возвращает распределение клиентов по возрастным группам.
func (s *AnalyticsService) GetAgeDemographics(ctx context.Context) ([]repository.LabelCount, error) {
	return s.repo.AgeDemographics(ctx)
}

// GetMembershipGrowth возвращает регистрации за последние GrowthMonths
// месяцев. Месяцы без регистраций присутствуют с нулём.
func (s *AnalyticsService) GetMembershipGrowth(ctx context.Context) ([]GrowthPoint, error) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(GrowthMonths - 1), 0)

	signups, err := s.repo.MonthlySignups(ctx, first)
	if err != nil {
		return nil, err
	}

	points := make([]GrowthPoint, 0, GrowthMonths)
	for i := range GrowthMonths {
		month := first.AddDate(0, i, 0)
		points = append(points, GrowthPoint{
			Label: month.Format("Jan 2006"),
			Count: signups[month.Format("2006-01")],
		})
	}
	return points, nil
}
