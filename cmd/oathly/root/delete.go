package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a target",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t := svc.Target(args[0])
			if t == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such target; nothing to do."))
				return nil
			}
			name := t.Name

			if err := svc.DeleteTarget(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), name)
			if active := svc.ActiveTarget(); active != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Now active", active.Name))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No targets left."))
			}
			return nil
		},
	}

	return cmd
}
