package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"habitex/internal/engine"
	"habitex/internal/storage"
	"habitex/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List the marketplace and loot box prices",
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
			catalog, err := svc.Catalog(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s  %s\n", ui.Heading(ui.IconBag, "Marketplace"), ui.Coins(u.Currency))
			for _, entry := range catalog {
				it := entry.Item
				fmt.Fprintf(out, "- %s %-20s %s %s %s\n",
					ui.TypeIcon(it.Type), ui.Key.Render(it.ID), ui.ItemName(it.Name, it.Rarity),
					ui.Gold.Render(fmt.Sprintf("%d", entry.Price)), ui.Muted.Render(it.Description))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconBox+" Loot boxes"))
			for _, tier := range engine.Rarities {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Rarity(string(tier)), ui.Gold.Render(fmt.Sprintf("%d", engine.BoxPrices[tier])),
					ui.Muted.Render(fmt.Sprintf("(%d rewards)", engine.RewardCount(tier))))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render("Buy with: hx buy <id>   Open with: hx box <tier>"))
			return nil
		},
	}

	return cmd
}

func newBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <catalog-id>",
		Short: "Buy a marketplace item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			item, err := svc.Buy(ctx, args[0])
			if err != nil {
				return err
			}
			u, err := svc.User(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Bought"), ui.ItemName(item.Name, item.Rarity), ui.Muted.Render(item.ID))
			fmt.Fprintln(out, ui.LabelValue("Coins", ui.Coins(u.Currency)))
			return nil
		},
	}

	return cmd
}

func newBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "box <common|rare|epic|legendary>",
		Short: "Buy and open a loot box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := engine.ParseTier(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			rewards, err := svc.OpenBox(ctx, tier, engine.BoxPrices[tier])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconBox, fmt.Sprintf("Opened a %s box", tier)))
			return confirmRewards(ctx, out, svc, rewards)
		},
	}

	return cmd
}

// confirmRewards prints pending rewards and adds them to the user.
func confirmRewards(ctx context.Context, out io.Writer, svc *engine.Service, rewards []storage.RewardItem) error {
	for _, r := range rewards {
		line := fmt.Sprintf("- %s %s %s", ui.TypeIcon(r.Type), ui.ItemName(r.Name, r.Rarity), ui.Rarity(r.Rarity))
		if engine.RewardType(r.Type) == engine.RewardCurrency {
			line += " " + ui.Coins(r.Quantity)
		}
		fmt.Fprintln(out, line)
	}
	if _, err := svc.ConfirmBoxRewards(ctx, rewards); err != nil {
		return err
	}
	u, err := svc.User(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, ui.LabelValue("Coins", ui.Coins(u.Currency)))
	return nil
}
