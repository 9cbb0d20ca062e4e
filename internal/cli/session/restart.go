package session

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type restartResult struct {
	BoardID string `json:"board_id"`
}

func (r restartResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Board reset") +
		styles.SubtleStyle.Render(" — cards, votes and timer cleared")
}

// RestartCmd returns the session restart subcommand
func RestartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Reset the board for a new session",
		Long: `Reset the board: every card, vote and link is removed, columns return to
their default lock states and the session deactivates. Destructive, so it
requires --force.`,
		RunE: cli.Run(runRestart),
	}

	cmd.Flags().Bool("force", false, "Confirm the reset")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRestart(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return cli.Fail(f, cli.ExitUsage, "CONFIRMATION_REQUIRED",
			"restarting deletes every card on the board",
			"Re-run with --force to confirm")
	}

	after := c.App.Store.RestartSession(ctx)
	return f.Success(restartResult{BoardID: after.ID})
}
