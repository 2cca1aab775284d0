package view

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"openboard/internal/board/models"
)

func TestFormatStopwatch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sw   *models.Stopwatch
		want string
	}{
		{"nil stopwatch", nil, "0:00"},
		{"zero", &models.Stopwatch{}, "0:00"},
		{"seconds only", &models.Stopwatch{Total: 5}, "0:05"},
		{"minutes and seconds", &models.Stopwatch{Total: 90}, "1:30"},
		{"just under an hour", &models.Stopwatch{Total: 3599}, "59:59"},
		{"over an hour", &models.Stopwatch{Total: 3661}, "1:01:01"},
		{"many hours", &models.Stopwatch{Total: 10*3600 + 2}, "10:00:02"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatStopwatch(tc.sw, now))
		})
	}

	t.Run("running stopwatch accrues since start", func(t *testing.T) {
		started := now.Add(-90 * time.Second)
		sw := &models.Stopwatch{Total: 10, StartedAt: &started}
		assert.Equal(t, "1:40", FormatStopwatch(sw, now))
	})

	t.Run("start time in the future adds nothing", func(t *testing.T) {
		started := now.Add(30 * time.Second)
		sw := &models.Stopwatch{Total: 10, StartedAt: &started}
		assert.Equal(t, "0:10", FormatStopwatch(sw, now))
	})
}

func TestTickerStop(t *testing.T) {
	var ticks atomic.Int64
	ticker := NewTicker(5*time.Millisecond, func(time.Time) {
		ticks.Add(1)
	})

	assert.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)

	ticker.Stop()
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "no ticks may arrive after Stop returns")

	ticker.Stop() // second Stop is a no-op
}
