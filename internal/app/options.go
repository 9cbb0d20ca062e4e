package app

import (
	"github.com/retroflect/retroflect/internal/config"
	"github.com/retroflect/retroflect/internal/database"
	"github.com/retroflect/retroflect/internal/events"
	"github.com/retroflect/retroflect/internal/replication"
	"github.com/retroflect/retroflect/internal/tracker"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	config        *config.Config
	repo          database.BoardRepository
	doc           *replication.AutomergeDoc
	bus           *events.Bus
	tasks         tracker.TaskCreator
	participantID string
}

// WithConfig supplies a config instead of loading it from disk.
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		cfg.config = c
	}
}

// WithRepository supplies a board repository, skipping database setup.
func WithRepository(repo database.BoardRepository) Option {
	return func(cfg *appConfig) {
		cfg.repo = repo
	}
}

// WithDocument supplies a replicated document, skipping relay bootstrap.
func WithDocument(doc *replication.AutomergeDoc) Option {
	return func(cfg *appConfig) {
		cfg.doc = doc
	}
}

// WithBus supplies the snapshot broadcaster.
func WithBus(bus *events.Bus) Option {
	return func(cfg *appConfig) {
		cfg.bus = bus
	}
}

// WithTracker supplies the external task tracker.
func WithTracker(t tracker.TaskCreator) Option {
	return func(cfg *appConfig) {
		cfg.tasks = t
	}
}

// WithParticipantID supplies the device identity, skipping the identity file.
func WithParticipantID(id string) Option {
	return func(cfg *appConfig) {
		cfg.participantID = id
	}
}
