package vote

import (
	"github.com/spf13/cobra"
)

// VoteCmd returns the vote parent command
func VoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Cast votes and run the voting phases",
	}

	cmd.AddCommand(CastCmd())
	cmd.AddCommand(ModeCmd())
	cmd.AddCommand(PhaseCmd())
	cmd.AddCommand(BudgetCmd())

	return cmd
}
