package database

import (
	"context"

	"github.com/retroflect/retroflect/internal/models"
)

// BoardRepository is the local durable store: a per-device cache of one
// snapshot per board. It is read/write only; reconciliation policy lives in
// the board store.
type BoardRepository interface {
	// SaveSnapshot upserts the full board snapshot.
	SaveSnapshot(ctx context.Context, board *models.Board) error

	// LoadSnapshot returns the cached snapshot for a board id, or
	// ErrBoardNotFound when the device has never stored this board.
	LoadSnapshot(ctx context.Context, boardID string) (*models.Board, error)

	// DeleteSnapshot removes a board from the cache.
	DeleteSnapshot(ctx context.Context, boardID string) error

	// ListBoards returns the ids of every cached board.
	ListBoards(ctx context.Context) ([]string, error)
}
