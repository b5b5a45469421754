package models

import "time"

// ReminderInfo содержит данные для письма-напоминания об истекающем абонементе.
// Публикуется планировщиком в RabbitMQ и потребляется отправителем.
type ReminderInfo struct {
	MessageID string    `json:"message_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	MemberID  string    `json:"member_id"`
	Plan      string    `json:"plan"`
	Validity  time.Time `json:"validity"`
}
