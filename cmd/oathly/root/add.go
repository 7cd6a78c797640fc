package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/engine"
	"github.com/pnkjpro/oathly/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
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
		Use:   "add <name>",
		Short: "Add a target and make it active",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			startDate, err := parseDate(start)
			if err != nil {
				return fmt.Errorf("invalid --start (want YYYY-MM-DD): %w", err)
			}
			endDate, err := parseDate(end)
			if err != nil {
				return fmt.Errorf("invalid --end (want YYYY-MM-DD): %w", err)
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.AddTarget(ctx, engine.TargetInput{
				Name:             args[0],
				Description:      desc,
				StartDate:        startDate,
				EndDate:          endDate,
				RewardItem:       rewardItem,
				RewardCost:       rewardCost,
				DailyTarget:      dailyTarget,
				TargetDays:       targetDays,
				BufferDays:       bufferDays,
				PartialThreshold: partialThreshold,
				PartialReward:    partialReward,
			})
			if err != nil {
				return err
			}

			t := svc.Target(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				t.Name,
				ui.Muted.Render(fmt.Sprintf("(%d days, id %s)", t.TotalDays, t.ID)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Now active. Log today with: oathly log <hours>"))
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rewardItem, "reward", "", "Reward item for finishing")
	cmd.Flags().Float64Var(&rewardCost, "cost", 0, "Reward cost")
	cmd.Flags().Float64VarP(&dailyTarget, "daily", "d", 1, "Hours expected per day")
	cmd.Flags().IntVarP(&targetDays, "days", "n", 1, "Days you commit to logging effort")
	cmd.Flags().IntVarP(&bufferDays, "buffer", "b", 0, "Missed days tolerated before the penalty")
	cmd.Flags().Float64Var(&partialThreshold, "partial-threshold", 0, "Logged days needed for the partial reward")
	cmd.Flags().Float64Var(&partialReward, "partial-reward", 0, "Partial reward amount")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
