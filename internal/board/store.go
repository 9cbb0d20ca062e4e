// Package board holds the canonical in-memory board and exposes the mutation
// API everything else composes around. Every operation is one atomic
// changeset: transform a clone, commit it to memory, persist it locally,
// transact it into the replicated document, broadcast it. No partial-field
// snapshot is ever observable from outside.
package board

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/retroflect/retroflect/internal/database"
	"github.com/retroflect/retroflect/internal/events"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/replication"
	"github.com/retroflect/retroflect/internal/tracker"
)

// Store is the board state store. The mutex serializes local mutations
// against remote reconstructions; each runs to completion before the other
// starts, mirroring a single-threaded event loop per device.
type Store struct {
	mu    sync.Mutex
	board *models.Board

	repo  database.BoardRepository
	doc   replication.Doc
	bus   events.Publisher
	tasks tracker.TaskCreator
	now   func() time.Time
}

// Config wires the store's collaborators. Doc, Bus and Tasks are optional:
// a nil Doc disables replication, a nil Bus disables fanout, a nil Tasks
// makes promotion a clean failure.
type Config struct {
	BoardID string
	Kind    models.BoardKind
	Repo    database.BoardRepository
	Doc     replication.Doc
	Bus     events.Publisher
	Tasks   tracker.TaskCreator
	Now     func() time.Time
}

// New creates the store and runs the load sequence: read the local snapshot
// (creating a default board on first access); when replication is enabled and
// the document is non-empty, the remote reconstruction is authoritative and
// overwrites the local snapshot; when the document is empty it is seeded from
// the local snapshot.
func New(ctx context.Context, cfg Config) (*Store, error) {
	s := &Store{
		repo:  cfg.Repo,
		doc:   cfg.Doc,
		bus:   cfg.Bus,
		tasks: cfg.Tasks,
		now:   cfg.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.tasks == nil {
		s.tasks = tracker.Disabled{}
	}

	local, err := s.repo.LoadSnapshot(ctx, cfg.BoardID)
	if errors.Is(err, database.ErrBoardNotFound) {
		local = models.NewBoard(cfg.BoardID, cfg.Kind)
		if saveErr := s.repo.SaveSnapshot(ctx, local); saveErr != nil {
			return nil, saveErr
		}
	} else if err != nil {
		return nil, err
	}
	s.board = local

	if s.doc != nil {
		empty, err := s.doc.IsEmpty()
		if err != nil {
			return nil, err
		}
		if empty {
			// First replica online: push, not pull.
			if err := replication.WriteBoard(s.doc, s.board); err != nil {
				return nil, err
			}
		} else {
			remote, err := replication.Reconstruct(s.doc, cfg.BoardID, cfg.Kind)
			if err != nil {
				return nil, err
			}
			s.board = remote
			if err := s.repo.SaveSnapshot(ctx, remote); err != nil {
				return nil, err
			}
		}
		s.doc.Observe(func() { s.onRemoteChange(cfg.BoardID, cfg.Kind) })
	}

	return s, nil
}

// Snapshot returns a deep copy of the current board.
func (s *Store) Snapshot() *models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// apply runs one mutation. fn transforms a clone and reports whether the
// transition was legal; an illegal transition returns the unchanged snapshot
// with no error surfaced, matching the idempotent-guard contract: callers
// pre-check against the same state they already hold.
func (s *Store) apply(ctx context.Context, fn func(b *models.Board) bool) *models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.board.Clone()
	if !fn(next) {
		return s.board.Clone()
	}
	s.board = next

	// Local durability favors availability: a failed write is logged, the
	// optimistic in-memory snapshot stays.
	if err := s.repo.SaveSnapshot(ctx, next); err != nil {
		slog.Error("failed to persist board snapshot", "board", next.ID, "error", err)
	}

	// Remote propagation is fire-and-forget; the network pump runs elsewhere.
	if s.doc != nil {
		if err := replication.WriteBoard(s.doc, next); err != nil {
			slog.Error("failed to write board into replicated store", "board", next.ID, "error", err)
		}
	}

	s.publish(next, events.OriginLocal)
	return next.Clone()
}

// onRemoteChange rebuilds the full board from the replicated document and
// supersedes both memory and the local durable store. Reconstruction is
// idempotent; it never interleaves with a local apply.
func (s *Store) onRemoteChange(boardID string, kind models.BoardKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remote, err := replication.Reconstruct(s.doc, boardID, kind)
	if err != nil {
		slog.Error("failed to reconstruct board from replicated store", "board", boardID, "error", err)
		return
	}
	s.board = remote
	if err := s.repo.SaveSnapshot(context.Background(), remote); err != nil {
		slog.Error("failed to persist reconstructed snapshot", "board", boardID, "error", err)
	}
	s.publish(remote, events.OriginRemote)
}

func (s *Store) publish(b *models.Board, origin events.Origin) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Snapshot{
		Board:     b.Clone(),
		Origin:    origin,
		Timestamp: s.now(),
	})
}
