package session

import (
	"github.com/spf13/cobra"
)

// SessionCmd returns the session parent command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the board session",
	}

	cmd.AddCommand(StartCmd())
	cmd.AddCommand(RestartCmd())
	cmd.AddCommand(ModerateCmd())
	cmd.AddCommand(LockCmd())

	return cmd
}
