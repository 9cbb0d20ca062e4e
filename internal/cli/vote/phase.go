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

type phaseResult struct {
	Phase string `json:"phase"`
}

func (r phaseResult) Summary() string {
	return styles.SuccessStyle.Render("✓ Voting phase: ") + r.Phase
}

// PhaseCmd returns the vote phase subcommand
func PhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase <idle|open|revealed>",
		Short: "Move the voting phase (moderator only)",
		Long: `Move the voting phase. During OPEN only the moderator sees per-person
tallies; after REVEALED everyone does. Any transition is allowed, including
back to IDLE.`,
		Args: cobra.ExactArgs(1),
		RunE: cli.Run(runPhase),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func parsePhase(raw string) (models.VotingPhase, bool) {
	switch strings.ToLower(raw) {
	case "idle":
		return models.PhaseIdle, true
	case "open":
		return models.PhaseOpen, true
	case "revealed", "reveal":
		return models.PhaseRevealed, true
	}
	return "", false
}

func runPhase(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	phase, ok := parsePhase(cmd.Flags().Arg(0))
	if !ok {
		return cli.Fail(f, cli.ExitUsage, "INVALID_PHASE",
			fmt.Sprintf("unknown voting phase %q", cmd.Flags().Arg(0)),
			"One of: idle, open, revealed")
	}

	after := c.App.Store.SetVotingPhase(ctx, c.App.ParticipantID, phase)
	if after.VotingPhase != phase {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can change the voting phase",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(phaseResult{Phase: string(phase)})
}
