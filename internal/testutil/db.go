package testutil

import (
	"context"
	"testing"

	"github.com/retroflect/retroflect/internal/database"
)

// NewRepo creates a board repository backed by an in-memory database.
func NewRepo(t *testing.T) database.BoardRepository {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return database.NewBoardRepository(db)
}
