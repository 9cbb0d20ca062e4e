package vote

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type budgetResult struct {
	Budget int `json:"budget"`
}

func (r budgetResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Vote budget: ") + fmt.Sprintf("%d points per person", r.Budget)
}

// BudgetCmd returns the vote budget subcommand
func BudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set the BUDGETED_POINTS budget (moderator only)",
		Long: `Set how many points each person may spend across the whole board under
BUDGETED_POINTS. Without --points the override from the config file applies;
--reset restores the default of 10.`,
		RunE: cli.Run(runBudget),
	}

	cmd.Flags().Int("points", 0, "Points per person")
	cmd.Flags().Bool("reset", false, "Restore the default budget")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runBudget(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	points, _ := cmd.Flags().GetInt("points")
	reset, _ := cmd.Flags().GetBool("reset")

	var override *int
	switch {
	case reset:
		override = nil
	case points > 0:
		override = &points
	case c.App.Config.Voting.MaxPointsPerUser != nil:
		// Fall back to the configured override.
		override = c.App.Config.Voting.MaxPointsPerUser
	default:
		return cli.Fail(f, cli.ExitUsage, "NO_BUDGET",
			"provide --points, --reset, or a voting.max_points_per_user config entry", "")
	}

	after := c.App.Store.SetMaxPointsPerUser(ctx, c.App.ParticipantID, override)
	if !sameBudget(after.MaxPointsPerUser, override) {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can change the vote budget",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(budgetResult{Budget: after.Budget()})
}

func sameBudget(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
