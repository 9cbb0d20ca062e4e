package board

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
)

type linksResult struct {
	ShowAllLinks bool `json:"show_all_links"`
}

func (r linksResult) Summary() string {
	if r.ShowAllLinks {
		return styles.SuccessStyle.Render("✓ Link markers shown for every card")
	}
	return styles.SuccessStyle.Render("✓ Link markers limited to selected cards")
}

// LinksCmd returns the board links subcommand
func LinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links <on|off>",
		Short: "Toggle link markers for every card (moderator only)",
		Args:  cobra.ExactArgs(1),
		RunE:  cli.Run(runLinks),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLinks(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	var show bool
	switch cmd.Flags().Arg(0) {
	case "on":
		show = true
	case "off":
		show = false
	default:
		return cli.Fail(f, cli.ExitUsage, "INVALID_ARGUMENT", "expected 'on' or 'off'", "")
	}

	after := c.App.Store.SetShowAllLinks(ctx, c.App.ParticipantID, show)
	if after.ShowAllLinks != show {
		return cli.Fail(f, cli.ExitValidation, "NOT_MODERATOR",
			"only the moderator can change link visibility",
			"Use 'retroflect session moderate' to take the moderator role")
	}
	return f.Success(linksResult{ShowAllLinks: show})
}
