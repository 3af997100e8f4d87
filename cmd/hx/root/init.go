package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitex/internal/engine"
	"habitex/internal/ui"
)

func newInitCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up starter habits and quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			done, err := svc.Onboard(ctx, engine.OnboardInput{DisplayName: name})
			if err != nil {
				return err
			}
			if !done {
				fmt.Fprintln(out, ui.Muted.Render("Already set up. See: hx status"))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Welcome to Habitex"))

			testimonials, err := svc.Testimonials(ctx)
			if err != nil {
				return err
			}
			if len(testimonials) > 0 {
				t := testimonials[0]
				fmt.Fprintf(out, "%s\n%s\n\n", ui.Muted.Render(`"`+t.Quote+`"`), ui.Muted.Render("  - "+t.Name+", "+t.Title))
			}
			fmt.Fprintln(out, "Starter habits and quests are ready:")
			fmt.Fprintln(out, "- "+ui.Key.Render("hx habits")+"   see today's habits")
			fmt.Fprintln(out, "- "+ui.Key.Render("hx quests")+"   see your quests")
			fmt.Fprintln(out, "- "+ui.Key.Render("hx board")+"    open the dashboard")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}
