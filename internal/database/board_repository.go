package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/retroflect/retroflect/internal/models"
)

// ErrBoardNotFound is returned when a board id has no cached snapshot.
var ErrBoardNotFound = errors.New("board not found")

// boardRepository implements BoardRepository on SQLite.
type boardRepository struct {
	db *sql.DB
}

// Compile-time verification that *boardRepository implements BoardRepository
var _ BoardRepository = (*boardRepository)(nil)

// NewBoardRepository creates a BoardRepository backed by the given database.
func NewBoardRepository(db *sql.DB) BoardRepository {
	return &boardRepository{db: db}
}

// SaveSnapshot upserts the serialized board.
func (r *boardRepository) SaveSnapshot(ctx context.Context, board *models.Board) error {
	if board == nil || board.ID == "" {
		return fmt.Errorf("invalid board snapshot")
	}
	raw, err := encodeBoard(board)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO boards (id, kind, snapshot, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			snapshot = excluded.snapshot,
			updated_at = CURRENT_TIMESTAMP
	`, board.ID, string(board.Kind), raw)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads and decodes the cached board.
func (r *boardRepository) LoadSnapshot(ctx context.Context, boardID string) (*models.Board, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT snapshot FROM boards WHERE id = ?", boardID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	board, err := decodeBoard([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode board %s: %w", boardID, err)
	}
	return board, nil
}

// DeleteSnapshot removes the cached board, if present.
func (r *boardRepository) DeleteSnapshot(ctx context.Context, boardID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", boardID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// ListBoards returns cached board ids, most recently updated first.
func (r *boardRepository) ListBoards(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM boards ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
