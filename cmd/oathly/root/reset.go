package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/ui"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [id]",
		Short: "Clear a target's activity log and completion flag",
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
			if err := svc.ResetProgress(ctx, id); err != nil {
				return err
			}

			if t := svc.Target(id); t != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconReset+" Reset"), t.Name, ui.Muted.Render("(log cleared, completion flag off)"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such target; nothing to do."))
			}
			return nil
		},
	}

	return cmd
}
