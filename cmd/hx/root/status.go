package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"habitex/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, coins, stats and today's habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.User(ctx)
			if err != nil {
				return err
			}
			hs, err := svc.HabitStats(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, u.DisplayName))
			fmt.Fprintln(out, ui.LabelValue("Level", u.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s", u.XP, u.MaxXP, ui.Bar(u.XP, u.MaxXP, 20))))
			fmt.Fprintln(out, ui.LabelValue("Coins", ui.Coins(u.Currency)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Stats"))
			fmt.Fprintf(out, "- %s HP: %d\n", ui.IconHeart, u.Stats.Health)
			fmt.Fprintf(out, "- 💪 STR: %d  🧠 INT: %d  🗣️ CHA: %d\n", u.Stats.Strength, u.Stats.Intelligence, u.Stats.Charisma)
			a := u.Attributes
			fmt.Fprintf(out, "- %s\n", ui.Muted.Render(fmt.Sprintf("physical %d, mental %d, emotional %d, social %d, creativity %d",
				a.Physical, a.Mental, a.Emotional, a.Social, a.Creativity)))
			fmt.Fprintf(out, "- %s %d habits, %d quests completed\n", ui.IconDone, u.Stats.HabitsCompleted, u.Stats.QuestsCompleted)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconFlame+" Today"))
			fmt.Fprintf(out, "- %d/%d habits done (%d%%), %d points\n", hs.Completed, hs.Total, hs.Percentage, hs.PointsEarned)

			if len(u.EquippedCosmetics) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconShirt+" Equipped"))
				slots := make([]string, 0, len(u.EquippedCosmetics))
				for slot := range u.EquippedCosmetics {
					slots = append(slots, slot)
				}
				sort.Strings(slots)
				for _, slot := range slots {
					it := u.EquippedCosmetics[slot]
					fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(slot+":"), ui.ItemName(it.Name, it.Rarity))
				}
			}
			if len(u.ActivePowerups) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Active powerups"))
				for _, p := range u.ActivePowerups {
					fmt.Fprintf(out, "- %s %s\n", ui.ItemName(p.Name, p.Rarity), ui.Muted.Render(p.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
