// Package services содержит бизнес-логику объявлений клуба.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// ErrAnnouncementNotFound объявление с таким id не найдено.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// Ключ кеша списка действующих объявлений.
const activeCacheKey = "announcements:active"

// AnnouncementRepository определяет методы для работы с объявлениями в хранилище.
type AnnouncementRepository interface {
	// CreateAnnouncement сохраняет объявление и возвращает его ID.
	CreateAnnouncement(ctx context.Context, a models.Announcement) (int, error)
	// ListActiveAnnouncements возвращает действующие объявления.
	ListActiveAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	// ListAllAnnouncements возвращает все объявления, включая снятые.
	ListAllAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	// RemoveAnnouncement удаляет объявление и возвращает количество удалённых строк.
	RemoveAnnouncement(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AnnouncementService реализует бизнес-логику объявлений с кешированием
// горячего списка действующих объявлений.
type AnnouncementService struct {
	repo  AnnouncementRepository
	cache Cache
	log   *slog.Logger
}

// NewAnnouncementService создает новый экземпляр AnnouncementService.
func NewAnnouncementService(repo AnnouncementRepository, cache Cache, log *slog.Logger) *AnnouncementService {
	return &AnnouncementService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новое объявление. Дата окончания показа опциональна,
// без неё объявление бессрочное.
func (s *AnnouncementService) Create(ctx context.Context, req models.DummyAnnouncement) (int, error) {
	announcement := models.Announcement{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Active:  true,
	}
	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return 0, fmt.Errorf("invalid expires_at date: %w", err)
		}
		announcement.ExpiresAt = &expiresAt
	}

	id, err := s.repo.CreateAnnouncement(ctx, announcement)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new announcement", slog.Int("id", id))

	if err := s.cache.Invalidate(activeCacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", activeCacheKey), sl.Err(err))
	}
	return id, nil
}

// ListActive возвращает действующие объявления, используя кеш или репозиторий.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]*models.Announcement, error) {
	var result []*models.Announcement
	found, err := s.cache.Get(activeCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", activeCacheKey), sl.Err(err))
		found = false
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListActiveAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(activeCacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache announcements", slog.String("key", activeCacheKey), sl.Err(err))
	}
	return result, nil
}

// ListAll возвращает все объявления для административного экрана.
func (s *AnnouncementService) ListAll(ctx context.Context) ([]*models.Announcement, error) {
	return s.repo.ListAllAnnouncements(ctx)
}

// Remove удаляет объявление по ID и инвалидирует кеш.
func (s *AnnouncementService) Remove(ctx context.Context, id int) error {
	count, err := s.repo.RemoveAnnouncement(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrAnnouncementNotFound
	}

	if err := s.cache.Invalidate(activeCacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", activeCacheKey), sl.Err(err))
	}
	return nil
}
