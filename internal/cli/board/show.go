package board

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
	"github.com/retroflect/retroflect/internal/models"
	"github.com/retroflect/retroflect/internal/timer"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the board",
		Long: `Render the whole board, or one card in detail with --card.

Vote tallies follow the voting phase: hidden during IDLE, moderator-only
during OPEN, public after REVEALED.`,
		RunE: cli.Run(runShow),
	}

	cmd.Flags().String("card", "", "Show one card in detail")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	cardID, _ := cmd.Flags().GetString("card")
	snapshot := c.App.Store.Snapshot()

	if cardID != "" {
		card, err := cli.ResolveCard(snapshot, cardID)
		if err != nil {
			return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(), "")
		}
		return showCard(c, snapshot, card, f)
	}

	if f.JSON {
		return f.Success(snapshot)
	}
	fmt.Println(RenderBoard(c, snapshot))
	return nil
}

// showCard renders one card in detail, with the content treated as markdown.
func showCard(c *cli.CLI, b *models.Board, card *models.Card, f *cli.OutputFormatter) error {
	if f.JSON {
		return f.Success(card)
	}

	fmt.Println(styles.TitleStyle.Render("Card " + cli.ShortID(card.ID)))

	content := card.Content
	if !card.IsRevealed && !isAuthor(c, card) {
		content = "*(hidden until revealed)*"
	}
	rendered, err := glamour.Render(content, "dark")
	if err != nil {
		rendered = "\n" + content + "\n"
	}
	fmt.Print(rendered)

	if card.AuthorID != nil {
		fmt.Println(styles.SubtleStyle.Render("author: " + *card.AuthorID))
	} else {
		fmt.Println(styles.SubtleStyle.Render("author: anonymous"))
	}
	if card.PromotedTaskID != nil {
		fmt.Println(styles.SubtleStyle.Render("promoted: task #" + *card.PromotedTaskID))
	}
	if linked := c.App.Store.Reachable(card.ID); len(linked) > 0 {
		shorts := make([]string, len(linked))
		for i, id := range linked {
			shorts[i] = cli.ShortID(id)
		}
		fmt.Println(styles.SubtleStyle.Render("linked: " + strings.Join(shorts, ", ")))
	}
	if c.App.Store.VotesVisibleTo(c.App.ParticipantID) {
		if score, ok := c.App.Store.Score(card.ID); ok {
			fmt.Println(styles.VoteStyle.Render(fmt.Sprintf("score: %d", score)))
		}
	}
	return nil
}

// RenderBoard draws the full board: header line, then the columns side by
// side. Shared with watch.
func RenderBoard(c *cli.CLI, b *models.Board) string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(fmt.Sprintf("%s (%s)", b.ID, b.Kind)))
	sb.WriteString("  ")
	sb.WriteString(styles.SubtleStyle.Render(headerLine(b)))
	sb.WriteString("\n")

	votesVisible := c.App.Store.VotesVisibleTo(c.App.ParticipantID)

	rendered := make([]string, 0, len(b.Columns))
	for _, col := range b.Columns {
		rendered = append(rendered, renderColumn(c, b, col, votesVisible))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return sb.String()
}

func headerLine(b *models.Board) string {
	parts := []string{}
	if b.IsSessionActive {
		parts = append(parts, "session active")
	} else {
		parts = append(parts, "no session")
	}
	parts = append(parts, fmt.Sprintf("%s/%s", b.VotingMode, b.VotingPhase))
	if b.VotingMode == models.VotingBudgetedPoints {
		parts = append(parts, fmt.Sprintf("budget %d", b.Budget()))
	}
	if b.Timer != nil && b.Timer.IsRunning {
		parts = append(parts, "⏱ "+timer.Remaining(b.Timer, time.Now()).Round(time.Second).String())
	}
	return strings.Join(parts, " · ")
}

func renderColumn(c *cli.CLI, b *models.Board, col *models.Column, votesVisible bool) string {
	var sb strings.Builder
	sb.WriteString(styles.ColumnTitle(col.Title, col.Color, col.IsLocked))
	sb.WriteString("\n")

	for _, card := range columnCards(b, col.ID) {
		sb.WriteString("\n")
		sb.WriteString(styles.CardIDStyle.Render(cli.ShortID(card.ID)))
		if votesVisible {
			if score, ok := c.App.Store.Score(card.ID); ok && len(card.Votes) > 0 {
				sb.WriteString(" " + styles.VoteStyle.Render(fmt.Sprintf("[%d]", score)))
			}
		}
		if len(card.LinkedCardIDs) > 0 && (b.ShowAllLinks || votesVisible) {
			sb.WriteString(styles.SubtleStyle.Render(fmt.Sprintf(" ⇄%d", len(card.LinkedCardIDs))))
		}
		if card.PromotedTaskID != nil {
			sb.WriteString(styles.SubtleStyle.Render(" ↗#" + *card.PromotedTaskID))
		}
		sb.WriteString("\n")

		content := card.Content
		if !card.IsRevealed && !isAuthor(c, card) {
			content = styles.SubtleStyle.Render("(hidden)")
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return styles.ColumnStyle.Render(sb.String())
}

// columnCards returns a column's cards in stable id order.
func columnCards(b *models.Board, columnID string) []*models.Card {
	cards := make([]*models.Card, 0)
	for _, card := range b.Cards {
		if card.ColumnID == columnID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards
}

func isAuthor(c *cli.CLI, card *models.Card) bool {
	return card.AuthorID != nil && *card.AuthorID == c.App.ParticipantID
}
