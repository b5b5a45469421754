package repository

import (
	"context"
	"fmt"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// ListAttendance возвращает посещения клиента с пагинацией,
// отсортированные от новых к старым.
func (s *Storage) ListAttendance(ctx context.Context, customerUID string, limit, offset int) ([]*models.Attendance, error) {
	const op = "storage.ListAttendance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_uid, date, check_in
			  FROM attendance
		      WHERE customer_uid = $1
		      ORDER BY check_in DESC
		      LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, customerUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err = rows.Scan(&a.ID, &a.CustomerUID, &a.Date, &a.CheckIn); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountAttendance возвращает общее количество посещений клиента.
func (s *Storage) CountAttendance(ctx context.Context, customerUID string) (int, error) {
	const op = "storage.CountAttendance"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM attendance WHERE customer_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, customerUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountAttendanceForDate возвращает количество посещений клуба за день.
func (s *Storage) CountAttendanceForDate(ctx context.Context, date string) (int, error) {
	const op = "storage.CountAttendanceForDate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM attendance WHERE date = $1`
	if err := s.DB.QueryRowContext(ctx, query, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
