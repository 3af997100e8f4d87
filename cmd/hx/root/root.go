package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitex/internal/engine"
	"habitex/internal/ui"
)

const Version = "0.1.0"

var (
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "hx",
	Short:         "Habitex: gamified habit tracker",
	Long:          "Habitex is a local-first CLI/TUI habit tracker with coins, loot boxes, quests and levels.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default ~/.habitex.db, env HABITEX_DB)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newShopCmd(),
		newBuyCmd(),
		newBoxCmd(),
		newInventoryCmd(),
		newUseCmd(),
		newEquipCmd(),
		newUnequipCmd(),
		newHabitsCmd(),
		newHabitCmd(),
		newQuestsCmd(),
		newQuestCmd(),
		newAchievementsCmd(),
		newHistoryCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconWarn+" "+engine.Advice(err)))
		os.Exit(1)
	}
}
