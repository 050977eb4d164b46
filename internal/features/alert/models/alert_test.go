package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func windowAlert(start, end time.Time) *Alert {
	return &Alert{
		ID:        "a1",
		Message:   "Hot slot right now",
		StartTime: start,
		EndTime:   end,
	}
}

func TestAlertStatusAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  AlertStatus
	}{
		{
			name:  "active inside window",
			start: now.Add(-time.Hour),
			end:   now.Add(time.Hour),
			want:  StatusActive,
		},
		{
			name:  "expired after end",
			start: now.Add(-2 * time.Hour),
			end:   now.Add(-time.Minute),
			want:  StatusExpired,
		},
		{
			name:  "upcoming within 24h",
			start: now.Add(time.Hour),
			end:   now.Add(2 * time.Hour),
			want:  StatusUpcoming,
		},
		{
			name:  "upcoming at exactly 24h",
			start: now.Add(24 * time.Hour),
			end:   now.Add(25 * time.Hour),
			want:  StatusUpcoming,
		},
		{
			name:  "hidden beyond 24h",
			start: now.Add(24*time.Hour + time.Minute),
			end:   now.Add(48 * time.Hour),
			want:  StatusHidden,
		},
		{
			name:  "active at exact start",
			start: now,
			end:   now.Add(time.Hour),
			want:  StatusActive,
		},
		{
			name:  "active at exact end",
			start: now.Add(-time.Hour),
			end:   now,
			want:  StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, windowAlert(tt.start, tt.end).StatusAt(now))
		})
	}
}

func TestAlertExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, windowAlert(now.Add(-time.Hour), now).Expired(now))
	assert.True(t, windowAlert(now.Add(-time.Hour), now.Add(-time.Second)).Expired(now))
}
