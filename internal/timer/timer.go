// Package timer implements the absolute-deadline countdown. Remaining time is
// derived from the stored start time on every read, so a reloaded or
// clock-drifted viewing device shows the right value without resync.
package timer

import (
	"time"

	"github.com/retroflect/retroflect/internal/models"
)

// Start arms the board timer for the given duration from now.
func Start(b *models.Board, duration time.Duration, now time.Time) bool {
	if duration <= 0 {
		return false
	}
	b.Timer = &models.Timer{
		IsRunning: true,
		StartTime: now,
		Duration:  duration,
	}
	return true
}

// Stop halts the countdown but keeps the configured duration so the last
// value stays visible.
func Stop(b *models.Board) bool {
	if b.Timer == nil {
		return false
	}
	b.Timer.IsRunning = false
	return true
}

// Remaining returns the time left on the countdown, never negative.
func Remaining(t *models.Timer, now time.Time) time.Duration {
	if t == nil {
		return 0
	}
	left := t.Duration - now.Sub(t.StartTime)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether a running timer has reached its deadline.
func Expired(t *models.Timer, now time.Time) bool {
	return t != nil && t.IsRunning && Remaining(t, now) <= 0
}
