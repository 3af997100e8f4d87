package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitex/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent coin and item activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.Ledger(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing yet)"))
				return nil
			}
			for _, e := range entries {
				delta := ui.Muted.Render("     ")
				switch {
				case e.CurrencyDelta > 0:
					delta = ui.Good.Render(fmt.Sprintf("%+5d", e.CurrencyDelta))
				case e.CurrencyDelta < 0:
					delta = ui.Bad.Render(fmt.Sprintf("%+5d", e.CurrencyDelta))
				}
				fmt.Fprintf(out, "%s %s %-12s %s\n", ui.Muted.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")), delta, e.Kind, e.Detail)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Entries to show (0 for all)")

	return cmd
}
