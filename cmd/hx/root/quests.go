package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitex/internal/engine"
	"habitex/internal/ui"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List quests and quest templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.Quests(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(ui.IconQuestMap, "Quests"))
			for _, q := range quests {
				fmt.Fprintf(out, "%s %s %s %s %d/%d %s\n", ui.Check(q.Completed), ui.Key.Render(q.ID), q.Title,
					ui.Bar(q.Progress, q.Total, 10), q.Progress, q.Total, ui.Muted.Render(q.Reward))
			}

			views, err := svc.QuestTemplates(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Templates"))
			for _, v := range views {
				status := ui.Muted.Render(string(v.Status))
				switch v.Status {
				case engine.TemplateAvailable:
					status = ui.Good.Render(string(v.Status))
				case engine.TemplateLocked:
					status = ui.Muted.Render(ui.IconLock + " locked")
				}
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(v.Code), v.Title, status)
			}
			return nil
		},
	}

	return cmd
}

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Add, advance or accept quests",
	}
	cmd.AddCommand(newQuestAddCmd(), newQuestAdvanceCmd(), newQuestAcceptCmd())
	return cmd
}

func newQuestAddCmd() *cobra.Command {
	var in engine.AddQuestInput

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.AddQuest(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), q.Title, ui.Muted.Render(q.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "Description")
	cmd.Flags().IntVarP(&in.Total, "steps", "n", 1, "Steps to complete")
	cmd.Flags().StringVarP(&in.Reward, "reward", "r", "50 XP", `Reward text, e.g. "100 XP + Rare Loot Box"`)
	cmd.Flags().StringVarP(&in.Category, "category", "c", "challenge", "Category")

	return cmd
}

func newQuestAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <id>",
		Short: "Record one step of progress on a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AdvanceQuest(ctx, args[0])
			if err != nil {
				return err
			}
			q := res.Quest
			switch {
			case res.Completed:
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconTrophy+" Completed"), q.Title, ui.Muted.Render(fmt.Sprintf("(+%d XP)", res.XP)))
				if res.LootBox != nil {
					fmt.Fprintf(out, "%s %s %s\n", ui.IconBox, ui.ItemName(res.LootBox.Name, res.LootBox.Rarity),
						ui.Muted.Render("open with: hx use "+res.LootBox.ID))
				}
				if res.LevelUps > 0 {
					fmt.Fprintln(out, ui.BadgeLevelUp)
				}
			case q.Completed:
				fmt.Fprintln(out, ui.Muted.Render(q.Title+" is already complete."))
			default:
				fmt.Fprintf(out, "%s %s %d/%d\n", ui.H2.Render("Progress"), q.Title, q.Progress, q.Total)
			}
			return nil
		},
	}

	return cmd
}

func newQuestAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <template>",
		Short: "Start a quest from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			code := args[0]
			out := cmd.OutOrStdout()
			svc, cleanup, err := openService(ctx, out)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.AcceptQuestTemplate(ctx, code)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s → %s\n", ui.Good.Render(ui.IconScroll+" Accepted"), ui.Muted.Render(code), q.Title)
			fmt.Fprintf(out, "%s Advance it with: %s\n", ui.Muted.Render("💡"), ui.Key.Render("hx quest advance "+q.ID))
			return nil
		},
	}

	return cmd
}
