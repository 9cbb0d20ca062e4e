// Package tracker is the board engine's single outbound dependency: promoting
// a card creates one task in an external tracker and hands the task id back.
package tracker

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the disabled tracker.
var ErrNotConfigured = errors.New("no task tracker configured")

// TaskCreator creates one external task per promoted card.
type TaskCreator interface {
	CreateTask(ctx context.Context, content string, authorID *string) (taskID string, err error)
}

// Disabled is the tracker used when none is configured; promotion fails
// cleanly and the card stays unpromoted.
type Disabled struct{}

// Compile-time verification that Disabled implements TaskCreator
var _ TaskCreator = Disabled{}

func (Disabled) CreateTask(context.Context, string, *string) (string, error) {
	return "", ErrNotConfigured
}
