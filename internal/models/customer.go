// Package models содержит доменную модель клиента фитнес-клуба,
// включающую данные учётной записи, хэш пароля и срок действия абонемента.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Customer представляет клиента клуба с абонементом.
type Customer struct {
	UID          string     `json:"uid"`       // Уникальный идентификатор записи
	MemberID     string     `json:"member_id"` // Номер абонемента, выдаётся администратором (например U001)
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Photo        string     `json:"photo,omitempty"`
	Plan         string     `json:"plan"`
	Age          int        `json:"age"`
	Validity     time.Time  `json:"validity"` // Дата, до которой абонемент оплачен
	PasswordHash string     `json:"-"`        // Никогда не сериализуется в ответ
	IsFirstLogin bool       `json:"is_first_login"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Role         string     `json:"role"` // member или admin
	CreatedAt    time.Time  `json:"created_at"`
}

// ProfileUpdate описывает частичное обновление профиля клиента.
// Пустые строки означают "поле не менять": очистка значения через
// этот путь не поддерживается.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Photo string `json:"photo,omitempty" validate:"omitempty,max=500"`
}
