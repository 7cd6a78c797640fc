package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pnkjpro/oathly/internal/ui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <hours> [id]",
		Short: "Log today's hours (overwrites an earlier entry for today)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("hours is required")
			}
			if _, err := strconv.ParseFloat(args[0], 64); err != nil {
				return errors.New("hours must be a number")
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

			hours, _ := strconv.ParseFloat(args[0], 64)
			id, err := resolveTargetID(svc, args, 1)
			if err != nil {
				return err
			}

			res, err := svc.LogHours(ctx, id, hours, time.Now())
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such target; nothing to do."))
				return nil
			}

			t := svc.Target(id)
			if res.Applied {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					ui.BadgePenalty,
					ui.Bad.Render(fmt.Sprintf("missed %d days with a buffer of %d — progress reset", res.MissedDays, res.BufferDays)))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %.1fh for %s %s\n",
				ui.Good.Render(ui.IconBook+" Logged"),
				hours,
				t.Name,
				ui.Muted.Render(fmt.Sprintf("(%d days on the books)", len(t.ActivityLog))))
			if res.MissedDays > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d missed day(s), buffer %d\n",
					ui.Warn.Render(ui.IconWarn), res.MissedDays, res.BufferDays)
			}
			return nil
		},
	}

	return cmd
}
