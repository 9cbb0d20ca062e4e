package card

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type revealResult struct {
	ID string `json:"id"`
}

func (r revealResult) GetID() string { return r.ID }

func (r revealResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Card revealed: ") + cli.ShortID(r.ID)
}

// RevealCmd returns the card reveal subcommand
func RevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal <card-id>",
		Short: "Reveal a hidden card (moderator only)",
		Long: `Reveal a card that was created hidden on a hidden-edition board.

Only the moderator can reveal cards.`,
		Args: cobra.ExactArgs(1),
		RunE: cli.Run(runReveal),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runReveal(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	card, err := cli.ResolveCard(c.App.Store.Snapshot(), cmd.Flags().Arg(0))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(), "")
	}
	if card.IsRevealed {
		return f.Success(revealResult{ID: card.ID})
	}

	after := c.App.Store.RevealCard(ctx, c.App.ParticipantID, card.ID)
	if revealed, ok := after.Cards[card.ID]; !ok || !revealed.IsRevealed {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can reveal cards",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(revealResult{ID: card.ID})
}
