package models

import "time"

// Announcement представляет объявление клуба, показываемое в кабинете клиента.
type Announcement struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"` // info, important, offer, event, maintenance
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil — объявление бессрочное
	CreatedAt time.Time  `json:"created_at"`
}

// DummyAnnouncement используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Announcement.
type DummyAnnouncement struct {
	Title     string `json:"title" validate:"required,max=200"`
	Message   string `json:"message" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=info important offer event maintenance"`
	ExpiresAt string `json:"expires_at,omitempty" validate:"omitempty"` // Дата в формате 2006-01-02
}
