package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitex/internal/engine"
	"habitex/internal/ui"
)

func newHabitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "List habits with today's completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.Habits(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Habits"))
			for _, h := range habits {
				streak := ""
				if h.Streak > 0 {
					streak = fmt.Sprintf(" %s%d", ui.IconFlame, h.Streak)
				}
				fmt.Fprintf(out, "%s %s %s%s %s\n", ui.Check(h.Completed), ui.Key.Render(h.ID), h.Name, streak,
					ui.Muted.Render(fmt.Sprintf("(%s, %s, %d pts)", h.Category, h.Frequency, h.Points)))
			}
			st := engine.DeriveStats(habits)
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "%s %s\n", ui.Bar(st.Completed, st.Total, 20), ui.Muted.Render(fmt.Sprintf("%d%% done, %d points", st.Percentage, st.PointsEarned)))
			return nil
		},
	}

	return cmd
}

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Add, toggle or remove habits",
	}
	cmd.AddCommand(newHabitAddCmd(), newHabitToggleCmd(), newHabitRemoveCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var in engine.AddHabitInput
	var freq string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := engine.ParseFrequency(freq)
			if err != nil {
				return err
			}
			in.Name = args[0]
			in.Frequency = f

			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.AddHabit(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), h.Name, ui.Muted.Render(h.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "general", "Category")
	cmd.Flags().IntVarP(&in.Points, "points", "p", 10, "Points per completion")
	cmd.Flags().StringVar(&freq, "every", "daily", "Frequency (daily|weekly|monthly)")

	return cmd
}

func newHabitToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a habit done for today, or undo it",
		Long: `Toggle a habit's completion for today.

Completing pays coins and XP that grow with the streak.
Toggling again undoes it: the streak drops by one and the payout is taken back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ToggleHabit(ctx, args[0])
			if err != nil {
				return err
			}
			h := res.Habit
			if h.Completed {
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done"), h.Name,
					ui.Muted.Render(fmt.Sprintf("(+%d coins, +%d XP, streak %d)", res.Coins, res.XP, h.Streak)))
				if res.LevelUps > 0 {
					fmt.Fprintln(out, ui.BadgeLevelUp)
				}
				return nil
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Warn.Render("Undone"), h.Name,
				ui.Muted.Render(fmt.Sprintf("(%d coins, %d XP, streak %d)", res.Coins, res.XP, h.Streak)))
			return nil
		},
	}

	return cmd
}

func newHabitRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a habit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteHabit(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Warn.Render("Removed habit "+args[0]))
			return nil
		},
	}

	return cmd
}
