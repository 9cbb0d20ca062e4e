package timer

import (
	"github.com/spf13/cobra"
)

// TimerCmd returns the timer parent command
func TimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the session countdown",
	}

	cmd.AddCommand(StartCmd())
	cmd.AddCommand(StopCmd())

	return cmd
}
