package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/engine"
	"github.com/pnkjpro/oathly/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List targets, closest deadline first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			targets := svc.SortedTargets()
			if len(targets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no targets)"))
				return nil
			}

			active := svc.ActiveTarget()
			today := time.Now()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTarget, "Targets"))
			for _, t := range targets {
				sum := engine.Summarize(&t, today)

				marker := "  "
				if active != nil && active.ID == t.ID {
					marker = ui.Gold.Render("* ")
				}
				status := ""
				if t.ExamCompleted {
					status = " " + ui.Good.Render(ui.IconDone+" done")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n",
					marker,
					ui.Key.Render(t.Name),
					ui.Muted.Render(fmt.Sprintf("(%s → %s)", t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02")))+status)
				fmt.Fprintf(cmd.OutOrStdout(), "    %s  %s  %s\n",
					ui.Muted.Render(fmt.Sprintf("id %s", t.ID)),
					fmt.Sprintf("%d/%d days", sum.LoggedDays, t.TargetDays),
					fmt.Sprintf("%.0f%%", sum.Percent))
			}
			return nil
		},
	}

	return cmd
}
