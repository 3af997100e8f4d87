package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitex/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show achievement progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			unlocked := 0
			for _, a := range list {
				if a.Unlocked {
					unlocked++
				}
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", unlocked, len(list))))
			for _, a := range list {
				icon := ui.IconLock
				name := ui.Muted.Render(a.Name)
				if a.Unlocked {
					icon = ui.IconTrophy
					name = ui.Gold.Render(a.Name)
				}
				fmt.Fprintf(out, "%s %s %s %d/%d %s\n", icon, name, ui.Bar(a.Progress, a.MaxProgress, 10),
					a.Progress, a.MaxProgress, ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	return cmd
}
