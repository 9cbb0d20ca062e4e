package card

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type updateResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

func (r updateResult) GetID() string { return r.ID }

func (r updateResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Card updated: ") + cli.ShortID(r.ID)
}

// UpdateCmd returns the card update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <card-id>",
		Short: "Update a card's content or author",
		Args:  cobra.ExactArgs(1),
		RunE:  cli.Run(runUpdate),
	}

	cmd.Flags().String("content", "", "New card content")
	cmd.Flags().String("author", "", "New author id")
	cmd.Flags().Bool("anonymous", false, "Remove the author, making the card anonymous")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	content, _ := cmd.Flags().GetString("content")
	author, _ := cmd.Flags().GetString("author")
	anonymous, _ := cmd.Flags().GetBool("anonymous")

	card, err := cli.ResolveCard(c.App.Store.Snapshot(), cmd.Flags().Arg(0))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(),
			"Use 'retroflect board show' to list cards")
	}

	if content == "" && author == "" && !anonymous {
		return cli.Fail(f, cli.ExitUsage, "NOTHING_TO_UPDATE",
			"provide --content, --author or --anonymous", "")
	}

	after := c.App.Store.Snapshot()
	if content != "" {
		after = c.App.Store.UpdateCardContent(ctx, card.ID, content)
	}
	switch {
	case anonymous:
		after = c.App.Store.UpdateCardAuthor(ctx, card.ID, nil)
	case author != "":
		after = c.App.Store.UpdateCardAuthor(ctx, card.ID, &author)
	}

	if updated, ok := after.Cards[card.ID]; ok {
		return f.Success(updateResult{ID: updated.ID, Content: updated.Content})
	}
	log.Printf("card %s disappeared during update", card.ID)
	return cli.Fail(f, cli.ExitError, "CARD_GONE", "card no longer exists", "")
}
