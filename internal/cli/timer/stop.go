package timer

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type stopResult struct {
	Duration string `json:"duration"`
}

func (r stopResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Timer stopped")
}

// StopCmd returns the timer stop subcommand
func StopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the countdown (moderator only)",
		RunE:  cli.Run(runStop),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStop(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	before := c.App.Store.Snapshot()
	if before.Timer == nil || !before.Timer.IsRunning {
		return cli.Fail(f, cli.ExitValidation, "TIMER_NOT_RUNNING", "no running timer to stop", "")
	}

	after := c.App.Store.StopTimer(ctx, c.App.ParticipantID)
	if after.Timer != nil && after.Timer.IsRunning {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can stop the timer",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(stopResult{Duration: after.Timer.Duration.String()})
}
