package vote

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
	"github.com/retroflect/retroflect/internal/models"
)

type castResult struct {
	CardID string `json:"card_id"`
	Grade  *int   `json:"grade"`
}

func (r castResult) Summary() string {
	if r.Grade == nil {
		return styles.SuccessStyle.Render("✓ Vote retracted on ") + cli.ShortID(r.CardID)
	}
	return styles.SuccessStyle.Render("✓ Vote recorded: ") +
		fmt.Sprintf("%d on %s", *r.Grade, cli.ShortID(r.CardID))
}

// CastCmd returns the vote cast subcommand
func CastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cast <card-id> <grade>",
		Short: "Cast a vote on a card",
		Long: `Cast a vote on a card under the active voting mode.

The grade depends on the mode:
  SIMPLE_APPROVAL    1 (casting again retracts)
  TERNARY            -1, 1 (same grade again retracts)
  BUDGETED_POINTS    0..budget (0 retracts; total spend is capped)
  MAJORITY_JUDGMENT  reject, insufficient, passable, fair, good, excellent
                     (or their ordinals -1..4; recasting replaces)`,
		Args: cobra.ExactArgs(2),
		RunE: cli.Run(runCast),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// parseGrade accepts an integer or a majority-judgment label.
func parseGrade(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	for ordinal, label := range models.MajorityGradeLabels {
		if label == raw {
			return ordinal, nil
		}
	}
	return 0, fmt.Errorf("invalid grade %q", raw)
}

func runCast(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	before := c.App.Store.Snapshot()
	card, err := cli.ResolveCard(before, cmd.Flags().Arg(0))
	if err != nil {
		return cli.Fail(f, cli.ExitNotFound, "CARD_NOT_FOUND", err.Error(), "")
	}
	grade, err := parseGrade(cmd.Flags().Arg(1))
	if err != nil {
		return cli.Fail(f, cli.ExitUsage, "INVALID_GRADE", err.Error(),
			"See 'retroflect vote cast --help' for the grade domains")
	}

	after := c.App.Store.CastVote(ctx, card.ID, c.App.ParticipantID, grade)
	return reportCast(f, before, after, card.ID, c.App.ParticipantID, grade)
}

// reportCast classifies the engine's silent outcome by diffing the
// participant's vote entry across the two snapshots. The card can vanish
// between them when a concurrent delete replicates in, so both lookups are
// guarded.
func reportCast(f *cli.OutputFormatter, before, after *models.Board, cardID, participantID string, grade int) error {
	afterCard, ok := after.Cards[cardID]
	if !ok {
		return cli.Fail(f, cli.ExitNotFound, "CARD_GONE", "card no longer exists", "")
	}
	var prev int
	var hadPrev bool
	if beforeCard, ok := before.Cards[cardID]; ok {
		prev, hadPrev = beforeCard.Votes[participantID]
	}
	cur, hasCur := afterCard.Votes[participantID]

	changed := hadPrev != hasCur || (hasCur && prev != cur)
	if !changed {
		// Unchanged state is fine when the recorded grade already matches;
		// anything else means the engine rejected the cast.
		if hasCur && cur == grade {
			return f.Success(castResult{CardID: cardID, Grade: &cur})
		}
		return cli.Fail(f, cli.ExitValidation, "VOTE_REJECTED",
			fmt.Sprintf("grade %d is not allowed under %s (out of domain or over budget)", grade, after.VotingMode),
			"See 'retroflect vote cast --help' for the grade domains")
	}

	if !hasCur {
		return f.Success(castResult{CardID: cardID})
	}
	return f.Success(castResult{CardID: cardID, Grade: &cur})
}
