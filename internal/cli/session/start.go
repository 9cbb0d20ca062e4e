package session

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type startResult struct {
	BoardID   string `json:"board_id"`
	Moderator string `json:"moderator"`
}

func (r startResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Session started") +
		styles.SubtleStyle.Render(" on "+r.BoardID+", you are the moderator")
}

// StartCmd returns the session start subcommand
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the session and become moderator",
		RunE:  cli.Run(runStart),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStart(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	after := c.App.Store.StartSession(ctx, c.App.ParticipantID)
	if !after.IsSessionActive {
		return cli.Fail(f, cli.ExitValidation, "SESSION_REJECTED", "session could not be started", "")
	}
	if !after.IsModerator(c.App.ParticipantID) {
		// Session was already running under another moderator.
		return cli.Fail(f, cli.ExitValidation, "SESSION_ACTIVE",
			"a session is already active",
			"Use 'retroflect session moderate' to take over the moderator role")
	}
	return f.Success(startResult{BoardID: after.ID, Moderator: c.App.ParticipantID})
}
