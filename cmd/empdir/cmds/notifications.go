package cmds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 10

var errNoHistory = errors.New("no notification history: it is kept by the redis notify backend (--notify redis)")

func newNotificationsCmd(app func() *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"history"},
		Short:   "Show recent notifications kept by the redis notify backend",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().showRecent(cmd.Context(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "how many to show, newest first")
	return cmd
}

// showRecent prints up to limit stored notifications, newest first, as toasts.
func (a *App) showRecent(ctx context.Context, limit int) error {
	if a.History == nil {
		return a.Fail(ctx, errNoHistory)
	}
	recent, err := a.History.Recent(ctx, limit)
	if err != nil {
		return a.Fail(ctx, err)
	}
	if len(recent) == 0 {
		fmt.Fprintln(a.Out, "No notifications")
		return nil
	}
	for _, n := range recent {
		fmt.Fprintf(a.Out, "%s ", n.At.Local().Format(time.DateTime))
		if err := a.Toaster.Notify(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
