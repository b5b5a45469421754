// Package services содержит планировщик напоминаний об истекающих абонементах.
package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/membership"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/rabbitmq"
)

// CustomerRepository определяет выборку клиентов с истекающими абонементами.
type CustomerRepository interface {
	FindMembershipsExpiringSoon(ctx context.Context, windowDays int) ([]*models.ReminderInfo, error)
}

// SchedulerService периодически находит истекающие абонементы и публикует
// напоминания в очередь для отправителя.
type SchedulerService struct {
	repo CustomerRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo CustomerRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindExpiringMemberships запускает цикл поиска: сразу при старте и далее
// каждые 12 часов, пока не отменён контекст.
func (s *SchedulerService) FindExpiringMemberships(ctx context.Context, channel *amqp.Channel) {
	s.runFindExpiringMemberships(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringMemberships(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringMemberships(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find expiring memberships")
	reminders, err := s.repo.FindMembershipsExpiringSoon(ctx, membership.ExpiringWindowDays)
	if err != nil {
		s.log.Error("failed to find expiring memberships", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no expiring memberships found")
		return
	}
	s.log.Info("found expiring memberships", "count", len(reminders))

	for _, reminder := range reminders {
		reminder.MessageID = uuid.NewString()
		body, err := json.Marshal(reminder)
		if err != nil {
			s.log.Error("failed to marshal reminder", sl.Err(err))
			continue
		}
		if err := rabbitmq.PublishMessage(channel, "notifications", "membership.expiring", body); err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
