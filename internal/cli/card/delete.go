package card

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type deleteResult struct {
	ID string `json:"id"`
}

func (r deleteResult) GetID() string { return r.ID }

func (r deleteResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Card deleted: ") + cli.ShortID(r.ID)
}

// DeleteCmd returns the card delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Long:  "Delete a card. Links pointing at it are removed from every other card.",
		Args:  cobra.ExactArgs(1),
		RunE:  cli.Run(runDelete),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	card, err := cli.ResolveCard(c.App.Store.Snapshot(), cmd.Flags().Arg(0))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(),
			"Use 'retroflect board show' to list cards")
	}

	c.App.Store.DeleteCard(ctx, card.ID)
	return f.Success(deleteResult{ID: card.ID})
}
