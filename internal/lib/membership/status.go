// Package membership реализует вычисление статуса абонемента по дате
// его окончания. Статус не хранится в базе — это чистая функция от
// даты окончания и текущего дня, поэтому её можно вызывать из любого
// количества горутин без синхронизации.
package membership

import "time"

// Значения текстового статуса и css-класса, отдаваемые клиенту.
const (
	TextActive   = "Active"
	TextExpiring = "Expiring Soon"
	TextExpired  = "Expired"

	ClassActive   = "active"
	ClassExpiring = "expiring"
	ClassExpired  = "expired"
)

// ExpiringWindowDays размер окна в днях, в котором абонемент считается
// "истекающим". Это же окно использует аналитика и планировщик напоминаний.
const ExpiringWindowDays = 7

// Status описывает вычисленный статус абонемента.
type Status struct {
	DaysRemaining int    `json:"days_remaining"`
	Text          string `json:"text"`
	Class         string `json:"class"`
}

// ComputeStatus классифицирует абонемент по дате окончания validity
// относительно дня today. Обе даты приводятся к началу календарного дня,
// поэтому результат не зависит от времени суток вызова.
//
// Правила, в порядке приоритета:
//   - дата окончания строго в прошлом — Expired, дней остаётся 0;
//   - от сегодня до 7 дней включительно — Expiring Soon;
//   - больше 7 дней — Active.
//
// Абонемент, истекающий сегодня, ещё не просрочен.
func ComputeStatus(validity, today time.Time) Status {
	diffDays := daysBetween(today, validity)

	switch {
	case diffDays < 0:
		return Status{DaysRemaining: 0, Text: TextExpired, Class: ClassExpired}
	case diffDays <= ExpiringWindowDays:
		return Status{DaysRemaining: diffDays, Text: TextExpiring, Class: ClassExpiring}
	default:
		return Status{DaysRemaining: diffDays, Text: TextActive, Class: ClassActive}
	}
}

// daysBetween возвращает количество календарных дней от from до to.
// Даты сравниваются по календарным компонентам в UTC, чтобы переводы
// часов не давали неполные сутки.
func daysBetween(from, to time.Time) int {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
