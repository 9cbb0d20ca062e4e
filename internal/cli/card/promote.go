package card

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type promoteResult struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
}

func (r promoteResult) GetID() string { return r.TaskID }

func (r promoteResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Card promoted: ") + cli.ShortID(r.ID) +
		styles.SubtleStyle.Render(" → task #"+r.TaskID)
}

// PromoteCmd returns the card promote subcommand
func PromoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <card-id>",
		Short: "Promote a card into a tracker task (moderator only)",
		Long: `Create one issue in the configured tracker for this card and record the
task id on the card. A card already promoted is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: cli.Run(runPromote),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runPromote(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	card, err := cli.ResolveCard(c.App.Store.Snapshot(), cmd.Flags().Arg(0))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(), "")
	}
	if card.PromotedTaskID != nil {
		return f.Success(promoteResult{ID: card.ID, TaskID: *card.PromotedTaskID})
	}

	after := c.App.Store.PromoteCard(ctx, c.App.ParticipantID, card.ID)
	promoted, ok := after.Cards[card.ID]
	if !ok || promoted.PromotedTaskID == nil {
		if !after.IsModerator(c.App.ParticipantID) {
			return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
				"only the moderator can promote cards",
				"Use 'retroflect session moderate' to take the moderator role")
		}
		return cli.Fail(f, cli.ExitError, "PROMOTION_FAILED",
			"tracker did not accept the card",
			"Check the tracker settings in your config file")
	}
	return f.Success(promoteResult{ID: card.ID, TaskID: *promoted.PromotedTaskID})
}
