package vote

import (
	"errors"
	"testing"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/testutil"
)

func castBoard() *models.Board {
	b := models.NewBoard("b1", models.KindRetro)
	b.Cards["c1"] = &models.Card{
		ID: "c1", ColumnID: models.ColumnStart, Content: "one", Votes: map[string]int{},
	}
	return b
}

func TestReportCastSurvivesConcurrentDelete(t *testing.T) {
	before := castBoard()
	after := before.Clone()
	delete(after.Cards, "c1")

	err := reportCast(&cli.OutputFormatter{Quiet: true}, before, after, "c1", "p1", 1)

	var status *cli.ExitStatusError
	if !errors.As(err, &status) {
		t.Fatalf("a card deleted mid-cast must fail cleanly, got %v", err)
	}
	if status.Code != cli.ExitNotFound {
		t.Errorf("exit code = %d, want %d", status.Code, cli.ExitNotFound)
	}
}

func TestReportCastOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		beforeGrade *int
		afterGrade  *int
		grade       int
		wantErr     bool
	}{
		{"recorded", nil, intPtr(1), 1, false},
		{"retracted", intPtr(1), nil, 1, false},
		{"recast already matching", intPtr(1), intPtr(1), 1, false},
		{"rejected out of domain", nil, nil, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := castBoard()
			if tt.beforeGrade != nil {
				before.Cards["c1"].Votes["p1"] = *tt.beforeGrade
			}
			after := castBoard()
			if tt.afterGrade != nil {
				after.Cards["c1"].Votes["p1"] = *tt.afterGrade
			}

			var err error
			testutil.CaptureOutput(t, func() {
				err = reportCast(&cli.OutputFormatter{Quiet: true}, before, after, "c1", "p1", tt.grade)
			})
			if tt.wantErr && err == nil {
				t.Error("expected a rejection")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
