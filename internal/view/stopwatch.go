package view

import (
	"fmt"
	"sync"
	"time"

	"openboard/internal/board/models"
)

// StopwatchSeconds returns the total elapsed seconds of a stopwatch as of
// now. A running stopwatch (StartedAt set) accrues whole seconds since it
// started on top of its banked total.
func StopwatchSeconds(sw *models.Stopwatch, now time.Time) int64 {
	if sw == nil {
		return 0
	}
	total := sw.Total
	if sw.StartedAt != nil {
		elapsed := int64(now.Sub(*sw.StartedAt).Seconds())
		if elapsed > 0 {
			total += elapsed
		}
	}
	return total
}

// FormatStopwatch renders a stopwatch as H:MM:SS once it reaches an hour and
// M:SS below that, matching what the board UI shows.
func FormatStopwatch(sw *models.Stopwatch, now time.Time) string {
	return formatSeconds(StopwatchSeconds(sw, now))
}

func formatSeconds(total int64) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// Ticker drives periodic stopwatch re-renders. It has exactly one owner: the
// component that created it must call Stop, and nothing else may. Stop is safe
// to call more than once and returns after the callback goroutine has exited.
type Ticker struct {
	ticker   *time.Ticker
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTicker invokes tick with the current time every interval until Stop.
func NewTicker(interval time.Duration, tick func(now time.Time)) *Ticker {
	t := &Ticker{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		for {
			select {
			case now := <-t.ticker.C:
				tick(now)
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

// Stop halts ticking and waits for the in-flight callback, if any, to finish.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		t.ticker.Stop()
		close(t.stop)
	})
	<-t.done
}
