package timer

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
	"github.com/retroflect/retroflect/internal/models"
)

type startResult struct {
	Duration string `json:"duration"`
}

func (r startResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Timer started: ") + r.Duration
}

// StartCmd returns the timer start subcommand
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <duration>",
		Short: "Start the countdown (moderator only)",
		Long: `Start the session countdown, e.g. 'retroflect timer start 5m'.

When the moderator's watch sees the countdown reach zero, every column locks
and the timer stops.`,
		Args: cobra.ExactArgs(1),
		RunE: cli.Run(runStart),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStart(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	duration, err := time.ParseDuration(cmd.Flags().Arg(0))
	if err != nil || duration <= 0 {
		return cli.Fail(f, cli.ExitUsage, "INVALID_DURATION",
			"duration must be positive, e.g. 90s or 5m", "")
	}

	before := c.App.Store.Snapshot()
	after := c.App.Store.StartTimer(ctx, c.App.ParticipantID, duration)
	if !timerStarted(before.Timer, after.Timer) {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can start the timer",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(startResult{Duration: duration.String()})
}

// timerStarted reports whether the engine armed a fresh countdown. A running
// timer carried over unchanged from the previous snapshot means the start
// was rejected.
func timerStarted(before, after *models.Timer) bool {
	if after == nil || !after.IsRunning {
		return false
	}
	if before == nil || !before.IsRunning {
		return true
	}
	return !after.StartTime.Equal(before.StartTime) || after.Duration != before.Duration
}
