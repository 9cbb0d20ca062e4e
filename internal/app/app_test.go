package app

import (
	"context"
	"testing"

	"github.com/retroflect/retroflect/internal/config"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Board: config.BoardConfig{ID: "test-board", Kind: string(models.KindRetro)},
	}
}

func TestNewWiresContainer(t *testing.T) {
	a, err := New(context.Background(),
		WithConfig(testConfig()),
		WithRepository(testutil.NewRepo(t)),
		WithParticipantID("p1"),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer a.Close()

	if a.Store == nil || a.Bus == nil {
		t.Fatal("container should wire the store and the bus")
	}
	if a.ParticipantID != "p1" {
		t.Errorf("participant id = %q, want p1", a.ParticipantID)
	}
	if a.DisplayName == "" {
		t.Error("display name should fall back to the system username")
	}
	if a.Store.Snapshot().ID != "test-board" {
		t.Error("store should load the configured board")
	}
}

func TestCloseIsSafe(t *testing.T) {
	a, err := New(context.Background(),
		WithConfig(testConfig()),
		WithRepository(testutil.NewRepo(t)),
		WithParticipantID("p1"),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
