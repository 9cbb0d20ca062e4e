package cmd

import (
	"github.com/spf13/cobra"

	boardcmd "github.com/retroflect/retroflect/internal/cli/board"
	cardcmd "github.com/retroflect/retroflect/internal/cli/card"
	sessioncmd "github.com/retroflect/retroflect/internal/cli/session"
	timercmd "github.com/retroflect/retroflect/internal/cli/timer"
	votecmd "github.com/retroflect/retroflect/internal/cli/vote"
)

var rootCmd = &cobra.Command{
	Use:   "retroflect",
	Short: "Retroflect - a shared retrospective board in the terminal",
	Long: `Retroflect is an offline-first retrospective and ideation board.

Boards live locally and, when a relay is configured, converge across
everyone's devices. Configuration lives in
$XDG_CONFIG_HOME/retroflect/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	rootCmd.AddCommand(boardcmd.BoardCmd())
	rootCmd.AddCommand(cardcmd.CardCmd())
	rootCmd.AddCommand(sessioncmd.SessionCmd())
	rootCmd.AddCommand(votecmd.VoteCmd())
	rootCmd.AddCommand(timercmd.TimerCmd())
	return rootCmd.Execute()
}
