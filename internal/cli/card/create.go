package card

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

// createResult is the command's output payload.
type createResult struct {
	ID      string `json:"id"`
	Column  string `json:"column"`
	Content string `json:"content"`
}

func (r createResult) GetID() string { return r.ID }

func (r createResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Card created: ") + cli.ShortID(r.ID) +
		styles.SubtleStyle.Render(" in "+r.Column)
}

// CreateCmd returns the card create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new card",
		Long: `Create a new card in a column of the active board.

Examples:
  # Card in the start column (human-readable output)
  retroflect card create --column=start --content="Pair on reviews"

  # Anonymous card
  retroflect card create --column=stop --content="Friday deploys" --anonymous

  # Quiet mode for bash capture
  CARD_ID=$(retroflect card create --column=start --content="..." --quiet)
`,
		RunE: cli.Run(runCreate),
	}

	cmd.Flags().String("column", "", "Column id (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().String("content", "", "Card content (required)")
	if err := cmd.MarkFlagRequired("content"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cmd.Flags().Bool("anonymous", false, "Create the card without an author")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	columnID, _ := cmd.Flags().GetString("column")
	content, _ := cmd.Flags().GetString("content")
	anonymous, _ := cmd.Flags().GetBool("anonymous")

	before := c.App.Store.Snapshot()
	after := c.App.Store.AddCard(ctx, c.App.ParticipantID, columnID, content, anonymous)

	// The engine rejects silently; diff the snapshots to report why.
	if len(after.Cards) == len(before.Cards) {
		col := before.Column(columnID)
		switch {
		case col == nil:
			return cli.Fail(f, cli.ExitNotFound, "COLUMN_NOT_FOUND",
				fmt.Sprintf("column %q not found", columnID),
				"Use 'retroflect board show' to see the column ids")
		case col.IsLocked:
			return cli.Fail(f, cli.ExitValidation, "COLUMN_LOCKED",
				fmt.Sprintf("column %q is locked", columnID),
				"The moderator can unlock it with 'retroflect session lock --column="+columnID+"'")
		default:
			return cli.Fail(f, cli.ExitValidation, "CARD_REJECTED", "card was not created", "")
		}
	}

	for id, card := range after.Cards {
		if _, existed := before.Cards[id]; !existed {
			return f.Success(createResult{ID: id, Column: card.ColumnID, Content: card.Content})
		}
	}
	return nil
}
