package session

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type moderateResult struct {
	Moderator string `json:"moderator"`
}

func (r moderateResult) Summary() string {
	return styles.SuccessStyle.Render("✓ You are now the moderator")
}

// ModerateCmd returns the session moderate subcommand
func ModerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Take over the moderator role",
		Long: `Take over the moderator role in the active session. Any participant may do
this; requires --force as a nudge against accidental takeovers.`,
		RunE: cli.Run(runModerate),
	}

	cmd.Flags().Bool("force", false, "Confirm the takeover")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runModerate(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return cli.Fail(f, cli.ExitUsage, "CONFIRMATION_REQUIRED",
			"this takes the moderator role from the current moderator",
			"Re-run with --force to confirm")
	}

	after := c.App.Store.BecomeModerator(ctx, c.App.ParticipantID)
	if !after.IsModerator(c.App.ParticipantID) {
		return cli.Fail(f, cli.ExitValidation, "NO_ACTIVE_SESSION",
			"no active session to moderate",
			"Use 'retroflect session start' to start one")
	}
	return f.Success(moderateResult{Moderator: c.App.ParticipantID})
}
