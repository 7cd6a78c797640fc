package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/ui"
)

func newUnlogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlog [id]",
		Short: "Remove today's log entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveTargetID(svc, args, 0)
			if err != nil {
				return err
			}
			if err := svc.RemoveTodayLog(ctx, id, time.Now()); err != nil {
				return err
			}

			if t := svc.Target(id); t != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s today's entry for %s\n", ui.Warn.Render("Removed"), t.Name)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such target; nothing to do."))
			}
			return nil
		},
	}

	return cmd
}
