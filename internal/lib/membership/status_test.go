package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		validity time.Time
		want     Status
	}{
		{
			name:     "expires today is expiring soon",
			validity: today,
			want:     Status{DaysRemaining: 0, Text: TextExpiring, Class: ClassExpiring},
		},
		{
			name:     "expires in seven days is expiring soon",
			validity: today.AddDate(0, 0, 7),
			want:     Status{DaysRemaining: 7, Text: TextExpiring, Class: ClassExpiring},
		},
		{
			name:     "expires in eight days is active",
			validity: today.AddDate(0, 0, 8),
			want:     Status{DaysRemaining: 8, Text: TextActive, Class: ClassActive},
		},
		{
			name:     "expired yesterday clamps days to zero",
			validity: today.AddDate(0, 0, -1),
			want:     Status{DaysRemaining: 0, Text: TextExpired, Class: ClassExpired},
		},
		{
			name:     "long expired",
			validity: today.AddDate(-1, 0, 0),
			want:     Status{DaysRemaining: 0, Text: TextExpired, Class: ClassExpired},
		},
		{
			name:     "far in the future is active",
			validity: today.AddDate(0, 0, 90),
			want:     Status{DaysRemaining: 90, Text: TextActive, Class: ClassActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStatus(tt.validity, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStatus_IgnoresTimeOfDay(t *testing.T) {
	validity := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

	morning := time.Date(2025, 3, 12, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC)

	gotMorning := ComputeStatus(validity, morning)
	gotEvening := ComputeStatus(validity, evening)

	assert.Equal(t, gotMorning, gotEvening)
	assert.Equal(t, 3, gotMorning.DaysRemaining)
	assert.Equal(t, TextExpiring, gotMorning.Text)
}

func TestComputeStatus_WindowBoundaries(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for d := 0; d <= ExpiringWindowDays; d++ {
		got := ComputeStatus(today.AddDate(0, 0, d), today)
		assert.Equal(t, TextExpiring, got.Text, "day offset %d", d)
		assert.Equal(t, d, got.DaysRemaining, "day offset %d", d)
	}
	for d := ExpiringWindowDays + 1; d <= ExpiringWindowDays+30; d++ {
		got := ComputeStatus(today.AddDate(0, 0, d), today)
		assert.Equal(t, TextActive, got.Text, "day offset %d", d)
		assert.Equal(t, d, got.DaysRemaining, "day offset %d", d)
	}
	for d := -30; d < 0; d++ {
		got := ComputeStatus(today.AddDate(0, 0, d), today)
		assert.Equal(t, TextExpired, got.Text, "day offset %d", d)
		assert.Equal(t, 0, got.DaysRemaining, "day offset %d", d)
	}
}
