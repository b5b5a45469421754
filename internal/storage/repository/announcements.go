package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// CreateAnnouncement сохраняет новое объявление и возвращает его ID.
func (s *Storage) CreateAnnouncement(ctx context.Context, a models.Announcement) (int, error) {
	const op = "storage.CreateAnnouncement"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO announcements (title, message, type, active, expires_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		a.Title, a.Message, a.Type, a.Active, a.ExpiresAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListActiveAnnouncements возвращает активные объявления, срок которых не истёк.
func (s *Storage) ListActiveAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	const op = "storage.ListActiveAnnouncements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, message, type, active, expires_at, created_at
			  FROM announcements
		      WHERE active = TRUE
			    AND (expires_at IS NULL OR expires_at >= CURRENT_DATE)
		      ORDER BY created_at DESC`
	return s.queryAnnouncements(ctx, op, query)
}

// ListAllAnnouncements возвращает все объявления для административной панели.
func (s *Storage) ListAllAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	const op = "storage.ListAllAnnouncements"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, message, type, active, expires_at, created_at
			  FROM announcements
		      ORDER BY created_at DESC`
	return s.queryAnnouncements(ctx, op, query)
}

// RemoveAnnouncement удаляет объявление по ID и возвращает количество удалённых записей.
func (s *Storage) RemoveAnnouncement(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveAnnouncement"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

func (s *Storage) queryAnnouncements(ctx context.Context, op, query string) ([]*models.Announcement, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		var expiresAt sql.NullTime
		if err = rows.Scan(&a.ID, &a.Title, &a.Message, &a.Type, &a.Active,
			&expiresAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			a.ExpiresAt = &t
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
