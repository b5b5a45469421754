package repository

import (
	"context"
	"fmt"

	"github.com/dacchuvinay/ultra-fitness-backend/internal/models"
)

// ListPayments возвращает оплаты клиента с пагинацией,
// отсортированные от новых к старым.
func (s *Storage) ListPayments(ctx context.Context, customerUID string, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_uid, amount, method, plan_name, months_paid,
			      payment_date, receipt_number
			  FROM payments
		      WHERE customer_uid = $1
		      ORDER BY payment_date DESC
		      LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, customerUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err = rows.Scan(&p.ID, &p.CustomerUID, &p.Amount, &p.Method, &p.PlanName,
			&p.MonthsPaid, &p.PaymentDate, &p.ReceiptNumber); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountPayments возвращает общее количество оплат клиента.
func (s *Storage) CountPayments(ctx context.Context, customerUID string) (int, error) {
	const op = "storage.CountPayments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM payments WHERE customer_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, customerUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
