// Package services содержит бизнес-логику личного кабинета клиента:
// вход, профиль, смена пароля, история посещений и оплат.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/jwt"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/membership"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/password"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/lib/sl"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
	"github.com/dacchuvinay/ultra-fitness-backend/internal/storage/repository"
)

// Единый ответ на неизвестный номер, неактивированную запись и неверный
// пароль, чтобы не раскрывать существование аккаунта.
var ErrInvalidCredentials = errors.New("invalid member id or password")

// ErrMemberNotFound запись клиента не найдена.
var ErrMemberNotFound = errors.New("member not found")

// ErrPasswordTooShort новый пароль короче минимальной длины.
var ErrPasswordTooShort = errors.New("password must be at least 4 characters")

// MinPasswordLen минимальная длина пароля при смене.
const MinPasswordLen = 4

// CustomerRepository определяет методы для работы с клиентами в хранилище.
type CustomerRepository interface {
	// GetCustomerByMemberID возвращает клиента по номеру абонемента.
	GetCustomerByMemberID(ctx context.Context, memberID string) (*models.Customer, error)
	// GetCustomer возвращает клиента по uid.
	GetCustomer(ctx context.Context, customerUID string) (*models.Customer, error)
	// UpdateLastLogin фиксирует время последнего входа.
	UpdateLastLogin(ctx context.Context, customerUID string, at time.Time) error
	// UpdateCustomerProfile обновляет только непустые поля профиля.
	UpdateCustomerProfile(ctx context.Context, customerUID string, upd models.ProfileUpdate) (*models.Customer, error)
	// UpdateCustomerPassword сохраняет новый хэш и снимает флаг первого входа.
	UpdateCustomerPassword(ctx context.Context, customerUID, passwordHash string) error
	// ListAttendance возвращает посещения клиента с пагинацией.
	ListAttendance(ctx context.Context, customerUID string, limit, offset int) ([]*models.Attendance, error)
	// CountAttendance считает все посещения клиента.
	CountAttendance(ctx context.Context, customerUID string) (int, error)
	// ListPayments возвращает оплаты клиента с пагинацией.
	ListPayments(ctx context.Context, customerUID string, limit, offset int) ([]*models.Payment, error)
	// CountPayments считает все оплаты клиента.
	CountPayments(ctx context.Context, customerUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Profile профиль клиента вместе с вычисленным статусом абонемента.
type Profile struct {
	Customer *models.Customer  `json:"customer"`
	Status   membership.Status `json:"membership"`
}

// LoginResult результат успешного входа: профиль без хэша пароля,
// токен и флаг первого входа.
type LoginResult struct {
	Customer     *models.Customer  `json:"customer"`
	Token        string            `json:"token"`
	IsFirstLogin bool              `json:"is_first_login"`
	Membership   membership.Status `json:"membership"`
}

// MemberService реализует операции личного кабинета клиента.
type MemberService struct {
	repo     CustomerRepository
	cache    Cache
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewMemberService создает новый экземпляр MemberService.
func NewMemberService(repo CustomerRepository, cache Cache, jwtMaker jwt.Maker, log *slog.Logger) *MemberService {
	return &MemberService{
		repo:     repo,
		cache:    cache,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Login проверяет номер абонемента и пароль, выдает JWT.
// Запись без хэша пароля считается неактивированной, вход по ней невозможен.
func (s *MemberService) Login(ctx context.Context, memberID, rawPassword string) (*LoginResult, error) {
	customer, err := s.repo.GetCustomerByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if customer.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(customer.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(customer.UID, customer.MemberID, customer.Role)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLastLogin(ctx, customer.UID, time.Now().UTC()); err != nil {
		s.log.Warn("failed to update last login", sl.Err(err))
	}

	return &LoginResult{
		Customer:     customer,
		Token:        token,
		IsFirstLogin: customer.IsFirstLogin,
		Membership:   membership.ComputeStatus(customer.Validity, time.Now()),
	}, nil
}

// GetProfile возвращает профиль клиента со статусом абонемента,
// используя кеш или репозиторий.
func (s *MemberService) GetProfile(ctx context.Context, customerUID string) (*Profile, error) {
	var customer *models.Customer
	cacheKey := fmt.Sprintf("customer:%s", customerUID)
	found, err := s.cache.Get(cacheKey, &customer)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if !found {
		customer, err = s.repo.GetCustomer(ctx, customerUID)
		if err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		if err := s.cache.Set(cacheKey, customer, time.Hour); err != nil {
			s.log.Warn("failed to cache customer", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	return &Profile{
		Customer: customer,
		Status:   membership.ComputeStatus(customer.Validity, time.Now()),
	}, nil
}

// UpdateProfile обновляет непустые поля профиля и инвалидирует кеш.
func (s *MemberService) UpdateProfile(ctx context.Context, customerUID string, upd models.ProfileUpdate) (*Profile, error) {
	customer, err := s.repo.UpdateCustomerProfile(ctx, customerUID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	cacheKey := fmt.Sprintf("customer:%s", customerUID)
	if err := s.cache.Set(cacheKey, customer, time.Hour); err != nil {
		s.log.Warn("failed to cache customer", slog.String("key", cacheKey), sl.Err(err))
	}
	s.log.Info("updated customer profile", slog.String("customer_uid", customerUID))

	return &Profile{
		Customer: customer,
		Status:   membership.ComputeStatus(customer.Validity, time.Now()),
	}, nil
}

// ChangePassword проверяет текущий пароль, устанавливает новый и навсегда
// снимает флаг первого входа. Обратно флаг не поднимается.
// Возвращает свежий токен; ранее выданные токены живут до своего истечения.
func (s *MemberService) ChangePassword(ctx context.Context, customerUID, currentPassword, newPassword string) (string, error) {
	if len(newPassword) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}

	customer, err := s.repo.GetCustomer(ctx, customerUID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}
	if err := password.CompareHash(customer.PasswordHash, currentPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	hash, err := password.GetHash(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateCustomerPassword(ctx, customerUID, hash); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return "", ErrMemberNotFound
		}
		return "", err
	}

	cacheKey := fmt.Sprintf("customer:%s", customerUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	s.log.Info("customer password changed", slog.String("customer_uid", customerUID))

	return s.jwtMaker.GenerateToken(customer.UID, customer.MemberID, customer.Role)
}

// AttendancePage страница истории посещений.
type AttendancePage struct {
	Items []*models.Attendance `json:"items"`
	Total int                  `json:"total"`
}

// PaymentsPage страница истории оплат.
type PaymentsPage struct {
	Items []*models.Payment `json:"items"`
	Total int               `json:"total"`
}

// ListAttendance возвращает посещения клиента от новых к старым.
func (s *MemberService) ListAttendance(ctx context.Context, customerUID string, limit, offset int) (*AttendancePage, error) {
	items, err := s.repo.ListAttendance(ctx, customerUID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountAttendance(ctx, customerUID)
	if err != nil {
		return nil, err
	}
	return &AttendancePage{Items: items, Total: total}, nil
}

// ListPayments возвращает оплаты клиента от новых к старым.
func (s *MemberService) ListPayments(ctx context.Context, customerUID string, limit, offset int) (*PaymentsPage, error) {
	items, err := s.repo.ListPayments(ctx, customerUID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountPayments(ctx, customerUID)
	if err != nil {
		return nil, err
	}
	return &PaymentsPage{Items: items, Total: total}, nil
}
