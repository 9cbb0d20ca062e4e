package vote

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
	"github.com/retroflect/retroflect/internal/models"
)

type modeResult struct {
	Mode string `json:"mode"`
}

func (r modeResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Voting mode: ") + r.Mode
}

// ModeCmd returns the vote mode subcommand
func ModeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode <mode>",
		Short: "Set the voting mode (moderator only)",
		Long: `Set the vote-aggregation rule. One of:
  simple-approval, ternary, budgeted-points, majority-judgment`,
		Args: cobra.ExactArgs(1),
		RunE: cli.Run(runMode),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func parseMode(raw string) (models.VotingMode, bool) {
	switch strings.ToLower(raw) {
	case "simple-approval", "approval":
		return models.VotingSimpleApproval, true
	case "ternary":
		return models.VotingTernary, true
	case "budgeted-points", "budget":
		return models.VotingBudgetedPoints, true
	case "majority-judgment", "mj":
		return models.VotingMajorityJudgment, true
	}
	return "", false
}

func runMode(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	mode, ok := parseMode(cmd.Flags().Arg(0))
	if !ok {
		return cli.Fail(f, cli.ExitUsage, "INVALID_MODE",
			fmt.Sprintf("unknown voting mode %q", cmd.Flags().Arg(0)),
			"One of: simple-approval, ternary, budgeted-points, majority-judgment")
	}

	after := c.App.Store.SetVotingMode(ctx, c.App.ParticipantID, mode)
	if after.VotingMode != mode {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can change the voting mode",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(modeResult{Mode: string(mode)})
}
