// Package app assembles the application container: configuration, identity,
// the local durable store, replication and the board state store.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/retroflect/retroflect/internal/board"
	"github.com/retroflect/retroflect/internal/config"
	"github.com/retroflect/retroflect/internal/database"
	"github.com/retroflect/retroflect/internal/events"
	"github.com/retroflect/retroflect/internal/replication"
	"github.com/retroflect/retroflect/internal/sync"
	"github.com/retroflect/retroflect/internal/tracker"
	"github.com/retroflect/retroflect/internal/user"
)

// App holds the wired application services. This is the single container the
// CLI commands operate through.
type App struct {
	Config        *config.Config
	Store         *board.Store
	Bus           *events.Bus
	ParticipantID string
	DisplayName   string

	db     *sql.DB
	cancel context.CancelFunc
}

// New creates a new App with all services initialized. Replication and the
// tracker are wired only when configured; everything else always runs.
func New(ctx context.Context, opts ...Option) (*App, error) {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	conf := cfg.config
	if conf == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		conf = loaded
	}

	participantID := cfg.participantID
	if participantID == "" {
		id, err := user.ParticipantID()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve participant identity: %w", err)
		}
		participantID = id
	}

	displayName := conf.Profile.DisplayName
	if displayName == "" {
		displayName = user.GetCurrentUsername()
	}

	a := &App{
		Config:        conf,
		ParticipantID: participantID,
		DisplayName:   displayName,
	}

	repo := cfg.repo
	if repo == nil {
		db, err := database.InitDB(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		repo = database.NewBoardRepository(db)
	}

	tasks := cfg.tasks
	if tasks == nil {
		tasks = buildTracker(conf)
	}

	bus := cfg.bus
	if bus == nil {
		bus = events.NewBus()
	}
	a.Bus = bus

	doc := cfg.doc
	syncCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if doc == nil && conf.Relay.Enabled {
		bootstrapped, err := sync.Bootstrap(ctx, conf.Relay.URL, conf.Board.ID)
		if err != nil {
			// Offline-first: a missing relay degrades to local-only operation.
			slog.Warn("relay unreachable, continuing without replication",
				"relay", conf.Relay.URL, "error", err)
		} else {
			doc = bootstrapped
			client, err := sync.NewClient(conf.Relay.URL, conf.Board.ID, bootstrapped)
			if err != nil {
				cancel()
				return nil, err
			}
			go client.Run(syncCtx)
		}
	}

	store, err := board.New(ctx, board.Config{
		BoardID: conf.Board.ID,
		Kind:    conf.Kind(),
		Repo:    repo,
		Doc:     docOrNil(doc),
		Bus:     bus,
		Tasks:   tasks,
	})
	if err != nil {
		cancel()
		if a.db != nil {
			_ = a.db.Close()
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	a.Store = store

	return a, nil
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.Bus != nil {
		a.Bus.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func buildTracker(conf *config.Config) tracker.TaskCreator {
	if conf.Tracker.URL == "" {
		return tracker.Disabled{}
	}
	t, err := tracker.NewGiteaTracker(conf.Tracker.URL, conf.Tracker.Token, conf.Tracker.Repository)
	if err != nil {
		slog.Warn("tracker misconfigured, promotion disabled", "error", err)
		return tracker.Disabled{}
	}
	return t
}

// docOrNil keeps a typed-nil *AutomergeDoc from masquerading as a non-nil
// replication.Doc inside the store.
func docOrNil(doc *replication.AutomergeDoc) replication.Doc {
	if doc == nil {
		return nil
	}
	return doc
}
