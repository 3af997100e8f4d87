package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Habitex theme, shared by the CLI and the board.

const (
	IconCoin     = "🪙"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTodo     = "⬜"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconWarn     = "⚠️"
	IconBox      = "🎁"
	IconFlame    = "🔥"
	IconScroll   = "📜"
	IconBag      = "🎒"
	IconShirt    = "👕"
	IconPotion   = "🧪"
	IconLock     = "🔒"
	IconHeart    = "❤️"
	IconQuestMap = "🗺️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cRare    = lipgloss.Color("39")  // sky
	cEpic    = lipgloss.Color("135") // purple
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")

	rarityStyles = map[string]lipgloss.Style{
		"common":    lipgloss.NewStyle().Foreground(cMuted),
		"rare":      lipgloss.NewStyle().Bold(true).Foreground(cRare),
		"epic":      lipgloss.NewStyle().Bold(true).Foreground(cEpic),
		"legendary": lipgloss.NewStyle().Bold(true).Foreground(cGold),
	}
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func Coins(n int) string {
	return Gold.Render(fmt.Sprintf("%s %d", IconCoin, n))
}

// Rarity renders a rarity name in its color.
func Rarity(r string) string {
	st, ok := rarityStyles[strings.ToLower(r)]
	if !ok {
		return Muted.Render(r)
	}
	return st.Render(r)
}

// ItemName renders a name colored by its rarity.
func ItemName(name, rarity string) string {
	st, ok := rarityStyles[strings.ToLower(rarity)]
	if !ok {
		return name
	}
	return st.Render(name)
}

func TypeIcon(typ string) string {
	switch typ {
	case "powerup":
		return IconBolt
	case "cosmetic":
		return IconShirt
	case "currency":
		return IconCoin
	case "lootbox":
		return IconBox
	default:
		return IconPotion
	}
}

func Check(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// Bar renders a progress bar of width cells.
func Bar(have, want, width int) string {
	if want <= 0 || width <= 0 {
		return ""
	}
	if have > want {
		have = want
	}
	if have < 0 {
		have = 0
	}
	filled := have * width / want
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
