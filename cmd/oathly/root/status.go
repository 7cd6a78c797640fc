package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/engine"
	"github.com/pnkjpro/oathly/internal/quotes"
	"github.com/pnkjpro/oathly/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [id]",
		Short: "Show a target's progress (active target by default)",
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
			t := svc.Target(id)
			if t == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such target; nothing to show."))
				return nil
			}

			today := time.Now()
			sum := engine.Summarize(t, today)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTarget, t.Name))
			if t.Description != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(t.Description))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Window", fmt.Sprintf("%s → %s (%d days)",
				t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"), t.TotalDays)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Daily target", fmt.Sprintf("%.1fh", t.DailyTarget)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Progress", fmt.Sprintf("%d/%d days logged (%.0f%%), %.1fh total",
				sum.LoggedDays, t.TargetDays, sum.Percent, sum.TotalHours)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Expected by now", fmt.Sprintf("%d days (%d missed, buffer %d)",
				sum.ExpectedDays, sum.MissedDays, t.BufferDays)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Days left", sum.RemainingDays))

			if t.ExamCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Exam completed"))
			}

			if t.RewardItem != "" {
				standing := ""
				switch sum.Standing {
				case engine.RewardFull:
					standing = ui.Gold.Render(ui.IconTrophy + " full reward earned")
				case engine.RewardPartial:
					standing = ui.Warn.Render(fmt.Sprintf("partial reward (%.0f)", t.PartialReward))
				default:
					standing = ui.Muted.Render("not yet earned")
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Reward",
					fmt.Sprintf("%s (%.0f) — %s", t.RewardItem, t.RewardCost, standing)))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprintln(cmd.OutOrStdout(), ui.Dim.Render(ui.IconQuote+" "+quotes.ForDate(today)))
			return nil
		},
	}

	return cmd
}
