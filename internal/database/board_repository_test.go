package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroflect/retroflect/internal/models"
)

func setupRepo(t *testing.T) BoardRepository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewBoardRepository(db)
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	board := models.NewBoard("team-weekly", models.KindRetro)
	moderator := "alice"
	board.IsSessionActive = true
	board.ModeratorID = &moderator
	board.Cards["c1"] = &models.Card{
		ID:            "c1",
		ColumnID:      models.ColumnStart,
		Content:       "pair more often",
		AuthorID:      &moderator,
		Votes:         map[string]int{"bob": 1},
		LinkedCardIDs: []string{"c2"},
		IsRevealed:    true,
	}
	board.Cards["c2"] = &models.Card{
		ID:            "c2",
		ColumnID:      models.ColumnStop,
		Content:       "long standups",
		Votes:         map[string]int{},
		LinkedCardIDs: []string{"c1"},
	}
	board.Timer = &models.Timer{
		IsRunning: true,
		StartTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:  5 * time.Minute,
	}

	if err := repo.SaveSnapshot(ctx, board); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	loaded, err := repo.LoadSnapshot(ctx, "team-weekly")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.ModeratorID == nil || *loaded.ModeratorID != "alice" {
		t.Error("moderator did not survive the round trip")
	}
	if len(loaded.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(loaded.Cards))
	}
	if !loaded.Cards["c1"].Equal(board.Cards["c1"]) {
		t.Error("card c1 did not survive the round trip")
	}
	if loaded.Timer == nil || loaded.Timer.Duration != 5*time.Minute {
		t.Error("timer did not survive the round trip")
	}
	if !loaded.Timer.StartTime.Equal(board.Timer.StartTime) {
		t.Error("timer start time did not survive the round trip")
	}
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	board := models.NewBoard("b1", models.KindPlanning)
	if err := repo.SaveSnapshot(ctx, board); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	board.Cards["c1"] = &models.Card{ID: "c1", ColumnID: models.ColumnIdeas, Votes: map[string]int{}}
	if err := repo.SaveSnapshot(ctx, board); err != nil {
		t.Fatalf("second SaveSnapshot failed: %v", err)
	}

	loaded, err := repo.LoadSnapshot(ctx, "b1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(loaded.Cards) != 1 {
		t.Errorf("expected the overwritten snapshot, got %d cards", len(loaded.Cards))
	}

	ids, err := repo.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("upsert must not create duplicate rows, got %d", len(ids))
	}
}

func TestLoadSnapshotNotFound(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.LoadSnapshot(context.Background(), "missing")
	if !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	board := models.NewBoard("b1", models.KindRetro)
	if err := repo.SaveSnapshot(ctx, board); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := repo.DeleteSnapshot(ctx, "b1"); err != nil {
		t.Fatalf("DeleteSnapshot failed: %v", err)
	}
	if _, err := repo.LoadSnapshot(ctx, "b1"); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound after delete, got %v", err)
	}
}
