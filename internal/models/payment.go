package models

import "time"

// Payment представляет оплату абонемента клиентом.
type Payment struct {
	ID            int       `json:"id"`
	CustomerUID   string    `json:"customer_uid"`
	Amount        int       `json:"amount"` // Сумма в минимальных единицах валюты
	Method        string    `json:"method"` // cash, card, upi
	PlanName      string    `json:"plan_name"`
	MonthsPaid    int       `json:"months_paid"`
	PaymentDate   time.Time `json:"payment_date"`
	ReceiptNumber string    `json:"receipt_number"`
}
