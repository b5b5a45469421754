package repository

import (
	"context"
	"fmt"
	"time"
)

// CustomerCounts агрегированные количества клиентов по статусу абонемента.
// Окно "истекающих" совпадает с окном вычисления статуса.
type CustomerCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// LabelCount пара метка-количество для графиков.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountCustomersByStatus считает клиентов по трём статусам абонемента
// одним запросом: active (> окна), expiring (внутри окна), expired (в прошлом).
func (s *Storage) CountCustomersByStatus(ctx context.Context, windowDays int) (*CustomerCounts, error) {
	const op = "storage.CountCustomersByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*),
			      COUNT(*) FILTER (WHERE validity::DATE > CURRENT_DATE + $1 * INTERVAL '1 day'),
			      COUNT(*) FILTER (WHERE validity::DATE >= CURRENT_DATE
				      AND validity::DATE <= CURRENT_DATE + $1 * INTERVAL '1 day'),
			      COUNT(*) FILTER (WHERE validity::DATE < CURRENT_DATE)
			  FROM customers`
	counts := &CustomerCounts{}
	if err := s.DB.QueryRowContext(ctx, query, windowDays).Scan(
		&counts.Total, &counts.Active, &counts.Expiring, &counts.Expired); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}

// PlanPopularity возвращает количество клиентов по каждому тарифу,
// от популярных к редким.
func (s *Storage) PlanPopularity(ctx context.Context) ([]LabelCount, error) {
	const op = "storage.PlanPopularity"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT plan, COUNT(*)
			  FROM customers
		      GROUP BY plan
		      ORDER BY COUNT(*) DESC`
	return s.queryLabelCounts(ctx, op, query)
}

// AgeDemographics возвращает распределение клиентов по возрастным группам:
// <18, 18-25, 26-35, 36-50, 50+.
func (s *Storage) AgeDemographics(ctx context.Context) ([]LabelCount, error) {
	const op = "storage.AgeDemographics"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT bucket, COUNT(*) FROM (
			      SELECT CASE
				      WHEN age < 18 THEN 'Under 18'
				      WHEN age BETWEEN 18 AND 25 THEN '18-25'
				      WHEN age BETWEEN 26 AND 35 THEN '26-35'
				      WHEN age BETWEEN 36 AND 50 THEN '36-50'
				      ELSE '50+'
			      END AS bucket
			      FROM customers
			  ) buckets
		      GROUP BY bucket
		      ORDER BY MIN(CASE bucket
			      WHEN 'Under 18' THEN 0
			      WHEN '18-25' THEN 1
			      WHEN '26-35' THEN 2
			      WHEN '36-50' THEN 3
			      ELSE 4 END)`
	return s.queryLabelCounts(ctx, op, query)
}

// MonthlySignups возвращает количество регистраций по месяцам,
// начиная с from (включительно).
func (s *Storage) MonthlySignups(ctx context.Context, from time.Time) (map[string]int, error) {
	const op = "storage.MonthlySignups"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT to_char(date_trunc('month', created_at), 'YYYY-MM'), COUNT(*)
			  FROM customers
		      WHERE created_at >= $1
		      GROUP BY 1
		      ORDER BY 1`
	rows, err := s.DB.QueryContext(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := make(map[string]int)
	for rows.Next() {
		var month string
		var count int
		if err = rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[month] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) queryLabelCounts(ctx context.Context, op, query string) ([]LabelCount, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err = rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, lc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
