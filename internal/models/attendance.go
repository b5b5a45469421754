package models

import "time"

// Attendance представляет одно посещение клуба клиентом.
type Attendance struct {
	ID          int       `json:"id"`
	CustomerUID string    `json:"customer_uid"`
	Date        string    `json:"date"` // День посещения в формате 2006-01-02
	CheckIn     time.Time `json:"check_in"`
}
