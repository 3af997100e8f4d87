package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitex/internal/engine"
	"habitex/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List owned items",
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
			fmt.Fprintln(out, ui.Heading(ui.IconBag, "Inventory"))
			if len(u.Inventory) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty) Visit the shop: hx shop"))
				return nil
			}
			equipped := map[string]string{}
			for slot, it := range u.EquippedCosmetics {
				equipped[it.ID] = slot
			}
			for _, it := range u.Inventory {
				line := fmt.Sprintf("- %s %s %s", ui.TypeIcon(it.Type), ui.ItemName(it.Name, it.Rarity), ui.Muted.Render(it.ID))
				if it.Quantity > 1 {
					line += fmt.Sprintf(" x%d", it.Quantity)
				}
				if slot, ok := equipped[it.ID]; ok {
					line += " " + ui.Good.Render("["+slot+"]")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <item-id>",
		Short: "Use a potion, powerup or loot box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.UseItem(ctx, args[0])
			if err != nil {
				return err
			}
			name := ui.ItemName(res.Item.Name, res.Item.Rarity)
			switch res.Outcome {
			case engine.OutcomeEffect:
				eff := res.Item.Effect
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconPotion+" Used"), name, ui.Muted.Render(fmt.Sprintf("(%+d %s)", eff.Value, eff.Stat)))
			case engine.OutcomeActivated:
				fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconBolt+" Activated"), name)
			case engine.OutcomeOpened:
				fmt.Fprintln(out, ui.Heading(ui.IconBox, "Opened "+res.Item.Name))
				return confirmRewards(ctx, out, svc, res.Pending)
			}
			return nil
		},
	}

	return cmd
}

func newEquipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equip <item-id>",
		Short: "Equip a cosmetic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.EquipCosmetic(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconShirt+" Equipped"), ui.ItemName(res.Item.Name, res.Item.Rarity), ui.Muted.Render("as "+string(res.Slot)))
			if res.Replaced != nil {
				fmt.Fprintln(out, ui.Muted.Render("Replaced "+res.Replaced.Name))
			}
			return nil
		},
	}

	return cmd
}

func newUnequipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unequip <frame|skin|background>",
		Short: "Clear a cosmetic slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := engine.ParseSlot(args[0])
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

			removed, err := svc.UnequipCosmetic(ctx, slot)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(out, ui.Muted.Render("Nothing equipped in "+string(slot)+"."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render("Cleared "+string(slot)+"."))
			return nil
		},
	}

	return cmd
}
