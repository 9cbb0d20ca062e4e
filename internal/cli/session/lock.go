package session

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type lockResult struct {
	Column string `json:"column"`
	Locked bool   `json:"locked"`
}

func (r lockResult) Summary() string {
	state := "unlocked"
	if r.Locked {
		state = "locked"
	}
	return styles.SuccessStyle.Render("✓ Column "+state+": ") + r.Column
}

// LockCmd returns the session lock subcommand
func LockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Toggle a column's lock (moderator only)",
		RunE:  cli.Run(runLock),
	}

	cmd.Flags().String("column", "", "Column id (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	columnID, _ := cmd.Flags().GetString("column")

	before := c.App.Store.Snapshot()
	col := before.Column(columnID)
	if col == nil {
		return cli.Fail(f, cli.ExitNotFound, "COLUMN_NOT_FOUND",
			fmt.Sprintf("column %q not found", columnID),
			"Use 'retroflect board show' to see the column ids")
	}

	after := c.App.Store.ToggleLock(ctx, c.App.ParticipantID, columnID)
	toggled := after.Column(columnID)
	if toggled.IsLocked == col.IsLocked {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can lock or unlock columns",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(lockResult{Column: columnID, Locked: toggled.IsLocked})
}
