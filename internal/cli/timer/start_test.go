package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroflect/retroflect/internal/app"
	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/config"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/testutil"
)

func newTestCLI(t *testing.T, participantID string) *cli.CLI {
	t.Helper()
	a, err := app.New(context.Background(),
		app.WithConfig(&config.Config{
			Board: config.BoardConfig{ID: "timer-test", Kind: string(models.KindRetro)},
		}),
		app.WithRepository(testutil.NewRepo(t)),
		app.WithParticipantID(participantID),
	)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return &cli.CLI{App: a}
}

func TestRunStartRejectsNonModeratorWhileCountdownRuns(t *testing.T) {
	c := newTestCLI(t, "intruder")
	ctx := context.Background()
	c.App.Store.StartSession(ctx, "mod")
	c.App.Store.StartTimer(ctx, "mod", 5*time.Minute)

	cmd := StartCmd()
	if err := cmd.Flags().Parse([]string{"2m"}); err != nil {
		t.Fatalf("failed to parse args: %v", err)
	}

	err := runStart(ctx, cmd, c, &cli.OutputFormatter{Quiet: true})

	var status *cli.ExitStatusError
	if !errors.As(err, &status) {
		t.Fatalf("non-moderator start must be rejected, got %v", err)
	}
	if status.Code != cli.ExitValidation {
		t.Errorf("exit code = %d, want %d", status.Code, cli.ExitValidation)
	}

	after := c.App.Store.Snapshot()
	if after.Timer == nil || !after.Timer.IsRunning || after.Timer.Duration != 5*time.Minute {
		t.Error("the running countdown must be untouched")
	}
}

func TestRunStartAllowsModeratorRestart(t *testing.T) {
	c := newTestCLI(t, "mod")
	ctx := context.Background()
	c.App.Store.StartSession(ctx, "mod")
	c.App.Store.StartTimer(ctx, "mod", 5*time.Minute)

	cmd := StartCmd()
	if err := cmd.Flags().Parse([]string{"2m"}); err != nil {
		t.Fatalf("failed to parse args: %v", err)
	}

	var err error
	testutil.CaptureOutput(t, func() {
		err = runStart(ctx, cmd, c, &cli.OutputFormatter{Quiet: true})
	})
	if err != nil {
		t.Fatalf("moderator restart failed: %v", err)
	}

	after := c.App.Store.Snapshot()
	if after.Timer == nil || after.Timer.Duration != 2*time.Minute {
		t.Error("restart must rearm the countdown with the new duration")
	}
}

func TestTimerStarted(t *testing.T) {
	t0 := time.Now()
	running := &models.Timer{IsRunning: true, StartTime: t0, Duration: 5 * time.Minute}
	rearmed := &models.Timer{IsRunning: true, StartTime: t0.Add(time.Second), Duration: 2 * time.Minute}

	tests := []struct {
		name          string
		before, after *models.Timer
		want          bool
	}{
		{"first start", nil, running, true},
		{"restart after stop", &models.Timer{IsRunning: false, Duration: time.Minute}, running, true},
		{"rejected while running", running, running, false},
		{"rearmed while running", running, rearmed, true},
		{"no timer", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timerStarted(tt.before, tt.after); got != tt.want {
				t.Errorf("timerStarted() = %v, want %v", got, tt.want)
			}
		})
	}
}
