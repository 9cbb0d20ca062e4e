package card

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type linkResult struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Linked bool   `json:"linked"`
}

func (r linkResult) Summary() string {
	if r.Linked {
		return styles.SuccessStyle.Render("✓ Linked ") +
			cli.ShortID(r.A) + " ↔ " + cli.ShortID(r.B)
	}
	return styles.SuccessStyle.Render("✓ Unlinked ") +
		cli.ShortID(r.A) + " ↮ " + cli.ShortID(r.B)
}

// LinkCmd returns the card link subcommand
func LinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <card-a> <card-b>",
		Short: "Toggle the link between two cards",
		Long: `Toggle the undirected link between two cards.

Linking already linked cards unlinks them. Links are symmetric: both cards
always agree on whether they are linked.`,
		Args: cobra.ExactArgs(2),
		RunE: cli.Run(runLink),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLink(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	snapshot := c.App.Store.Snapshot()
	a, err := cli.ResolveCard(snapshot, cmd.Flags().Arg(0))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(), "")
	}
	b, err := cli.ResolveCard(snapshot, cmd.Flags().Arg(1))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(), "")
	}
	if a.ID == b.ID {
		return cli.Fail(f, cli.ExitValidation, "SELF_LINK", "a card cannot link to itself", "")
	}

	after := c.App.Store.ToggleLink(ctx, a.ID, b.ID)
	card, ok := after.Cards[a.ID]
	if !ok {
		return cli.Fail(f, cli.ExitNotFound, "CARD_GONE", "card no longer exists", "")
	}
	return f.Success(linkResult{A: a.ID, B: b.ID, Linked: card.IsLinkedTo(b.ID)})
}
