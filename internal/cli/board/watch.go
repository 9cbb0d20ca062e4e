package board

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/cli/styles"
	"github.com/retroflect/retroflect/internal/events"
	"github.com/retroflect/retroflect/internal/timer"
)

// WatchCmd returns the board watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the board, re-rendering on every change",
		Long: `Follow the board until interrupted, re-rendering on every local or remote
change.

The moderator's watch also drives timer expiry: when the countdown reaches
zero, every column locks and the timer stops. Non-moderator watchers only
display the countdown.`,
		RunE: cli.Run(runWatch),
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	ch, unsubscribe := c.App.Bus.Subscribe()
	defer unsubscribe()

	render := func(origin string) {
		fmt.Print("\033[H\033[2J") // clear screen
		fmt.Println(RenderBoard(c, c.App.Store.Snapshot()))
		fmt.Println(styles.SubtleStyle.Render(
			fmt.Sprintf("%s · last update: %s · ctrl-c to quit",
				time.Now().Format("15:04:05"), origin)))
	}
	render("initial")

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)

	// The tick drives both the countdown display and, for the moderator, the
	// authoritative expiry side effect.
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return nil
			}
			render(originLabel(snap.Origin))
		case <-t.C:
			b := c.App.Store.Snapshot()
			if b.Timer != nil && b.Timer.IsRunning {
				if b.IsModerator(c.App.ParticipantID) && timer.Expired(b.Timer, time.Now()) {
					c.App.Store.ExpireTimerIfDue(ctx, c.App.ParticipantID)
					// The apply broadcasts; the next snapshot redraws.
					continue
				}
				render("timer")
			}
		case <-exit:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func originLabel(o events.Origin) string {
	if o == events.OriginRemote {
		return "remote change"
	}
	return "local change"
}
