package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// ErrCustomerNotFound возвращается, когда клиент отсутствует в базе.
var ErrCustomerNotFound = errors.New("customer not found")

const customerColumns = `uid, member_id, name, phone, email, photo, plan, age,
			      validity, COALESCE(password_hash, ''), is_first_login, last_login, role, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	c := &models.Customer{}
	var lastLogin sql.NullTime
	if err := row.Scan(&c.UID, &c.MemberID, &c.Name, &c.Phone, &c.Email, &c.Photo,
		&c.Plan, &c.Age, &c.Validity, &c.PasswordHash, &c.IsFirstLogin,
		&lastLogin, &c.Role, &c.CreatedAt); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		c.LastLogin = &lastLogin.Time
	}
	return c, nil
}

// GetCustomerByMemberID возвращает клиента по номеру абонемента.
func (s *Storage) GetCustomerByMemberID(ctx context.Context, memberID string) (*models.Customer, error) {
	const op = "storage.GetCustomerByMemberID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + customerColumns + `
			  FROM customers
			  WHERE member_id = $1`
	c, err := scanCustomer(s.DB.QueryRowContext(ctx, query, memberID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetCustomer возвращает клиента по его UID.
func (s *Storage) GetCustomer(ctx context.Context, customerUID string) (*models.Customer, error) {
	const op = "storage.GetCustomer"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + customerColumns + `
			  FROM customers
			  WHERE uid = $1`
	c, err := scanCustomer(s.DB.QueryRowContext(ctx, query, customerUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateLastLogin фиксирует время последнего входа клиента.
func (s *Storage) UpdateLastLogin(ctx context.Context, customerUID string, at time.Time) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE customers
		      SET last_login = $1
		      WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, at, customerUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateCustomerProfile применяет частичное обновление профиля.
// Пустые строки в upd оставляют соответствующие колонки без изменений.
func (s *Storage) UpdateCustomerProfile(ctx context.Context, customerUID string, upd models.ProfileUpdate) (*models.Customer, error) {
	const op = "storage.UpdateCustomerProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE customers
		      SET name  = COALESCE(NULLIF($1, ''), name),
			      phone = COALESCE(NULLIF($2, ''), phone),
			      email = COALESCE(NULLIF($3, ''), email),
			      photo = COALESCE(NULLIF($4, ''), photo)
		      WHERE uid = $5
		      RETURNING ` + customerColumns
	c, err := scanCustomer(s.DB.QueryRowContext(ctx, query,
		upd.Name, upd.Phone, upd.Email, upd.Photo, customerUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCustomerPassword сохраняет новый хэш пароля и одновременно
// снимает флаг первого входа. Флаг меняется только здесь.
func (s *Storage) UpdateCustomerPassword(ctx context.Context, customerUID, passwordHash string) error {
	const op = "storage.UpdateCustomerPassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE customers
		      SET password_hash = $1,
			      is_first_login = FALSE
		      WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, customerUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}
	return nil
}

// FindMembershipsExpiringSoon находит клиентов, чей абонемент истекает
// в течение windowDays дней начиная с сегодняшнего.
func (s *Storage) FindMembershipsExpiringSoon(ctx context.Context, windowDays int) ([]*models.ReminderInfo, error) {
	const op = "storage.FindMembershipsExpiringSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, name, member_id, plan, validity
			  FROM customers
		      WHERE validity::DATE >= CURRENT_DATE
			    AND validity::DATE <= CURRENT_DATE + $1 * INTERVAL '1 day'`
	rows, err := s.DB.QueryContext(ctx, query, windowDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.ReminderInfo
	for rows.Next() {
		var info models.ReminderInfo
		if err = rows.Scan(&info.Email, &info.Name, &info.MemberID, &info.Plan, &info.Validity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
