package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/engine"
	"github.com/pnkjpro/oathly/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		name             string
		desc             string
		start            string
		end              string
		rewardItem       string
		rewardCost       float64
		dailyTarget      float64
		targetDays       int
		bufferDays       int
		partialThreshold float64
		partialReward    float64
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a target's fields (activity log is preserved)",
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

			// Unset flags keep the current value.
			in := engine.TargetInput{
				Name:             t.Name,
				Description:      t.Description,
				StartDate:        t.StartDate,
				EndDate:          t.EndDate,
				RewardItem:       t.RewardItem,
				RewardCost:       t.RewardCost,
				DailyTarget:      t.DailyTarget,
				TargetDays:       t.TargetDays,
				BufferDays:       t.BufferDays,
				PartialThreshold: t.PartialThreshold,
				PartialReward:    t.PartialReward,
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = name
			}
			if flags.Changed("desc") {
				in.Description = desc
			}
			if flags.Changed("start") {
				d, err := parseDate(start)
				if err != nil {
					return fmt.Errorf("invalid --start (want YYYY-MM-DD): %w", err)
				}
				in.StartDate = d
			}
			if flags.Changed("end") {
				d, err := parseDate(end)
				if err != nil {
					return fmt.Errorf("invalid --end (want YYYY-MM-DD): %w", err)
				}
				in.EndDate = d
			}
			if flags.Changed("reward") {
				in.RewardItem = rewardItem
			}
			if flags.Changed("cost") {
				in.RewardCost = rewardCost
			}
			if flags.Changed("daily") {
				in.DailyTarget = dailyTarget
			}
			if flags.Changed("days") {
				in.TargetDays = targetDays
			}
			if flags.Changed("buffer") {
				in.BufferDays = bufferDays
			}
			if flags.Changed("partial-threshold") {
				in.PartialThreshold = partialThreshold
			}
			if flags.Changed("partial-reward") {
				in.PartialReward = partialReward
			}

			if err := svc.UpdateTarget(ctx, args[0], in); err != nil {
				return err
			}

			updated := svc.Target(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Updated"),
				updated.Name,
				ui.Muted.Render(fmt.Sprintf("(%d days)", updated.TotalDays)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rewardItem, "reward", "", "Reward item for finishing")
	cmd.Flags().Float64Var(&rewardCost, "cost", 0, "Reward cost")
	cmd.Flags().Float64VarP(&dailyTarget, "daily", "d", 0, "Hours expected per day")
	cmd.Flags().IntVarP(&targetDays, "days", "n", 0, "Days you commit to logging effort")
	cmd.Flags().IntVarP(&bufferDays, "buffer", "b", 0, "Missed days tolerated before the penalty")
	cmd.Flags().Float64Var(&partialThreshold, "partial-threshold", 0, "Logged days needed for the partial reward")
	cmd.Flags().Float64Var(&partialReward, "partial-reward", 0, "Partial reward amount")

	return cmd
}
