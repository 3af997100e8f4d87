package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitex/internal/engine"
	"habitex/internal/storage"
	"habitex/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	user   *storage.UserRecord
	habits []storage.Habit
	quests []storage.Quest
	stats  engine.HabitStats

	selected int
	// busy is set while an action command runs. Other actions are ignored
	// until it reports back.
	busy bool

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user   *storage.UserRecord
	habits []storage.Habit
	quests []storage.Quest
	err    error
}

type actionMsg struct {
	log string
	err error
}

// changedMsg is sent when the service publishes an event.
type changedMsg struct {
	ev engine.Event
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.User(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.Habits(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.Quests(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{user: u, habits: habits, quests: quests}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleHabit(m.ctx, id)
		if err != nil {
			return actionMsg{err: err}
		}
		if res.Habit.Completed {
			log := fmt.Sprintf("%s done: +%d coins, +%d XP (streak %d)", res.Habit.Name, res.Coins, res.XP, res.Habit.Streak)
			if res.LevelUps > 0 {
				log += " " + ui.BadgeLevelUp
			}
			return actionMsg{log: log}
		}
		return actionMsg{log: fmt.Sprintf("%s undone: %d coins, %d XP", res.Habit.Name, res.Coins, res.XP)}
	}
}

func (m boardModel) advanceCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.AdvanceQuest(m.ctx, id)
		if err != nil {
			return actionMsg{err: err}
		}
		q := res.Quest
		if !res.Completed {
			return actionMsg{log: fmt.Sprintf("%s: %d/%d", q.Title, q.Progress, q.Total)}
		}
		log := fmt.Sprintf("%s complete! +%d XP", q.Title, res.XP)
		if res.LootBox != nil {
			log += ", got " + res.LootBox.Name
		}
		return actionMsg{log: log}
	}
}

func (m boardModel) openBoxCmd(tier engine.Rarity) tea.Cmd {
	return func() tea.Msg {
		rewards, err := m.svc.OpenBox(m.ctx, tier, engine.BoxPrices[tier])
		if err != nil {
			return actionMsg{err: err}
		}
		if _, err := m.svc.ConfirmBoxRewards(m.ctx, rewards); err != nil {
			return actionMsg{err: err}
		}
		names := make([]string, 0, len(rewards))
		for _, r := range rewards {
			names = append(names, r.Name)
		}
		return actionMsg{log: fmt.Sprintf("Opened %s box: %s", tier, strings.Join(names, ", "))}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + engine.Advice(msg.err)
			return m, nil
		}
		m.user = msg.user
		m.habits = msg.habits
		m.quests = msg.quests
		m.stats = engine.DeriveStats(m.habits)
		m.clampSelection()
		return m, nil
	case actionMsg:
		m.busy = false
		if msg.err != nil {
			m.lastLog = engine.Advice(msg.err)
			return m, nil
		}
		m.lastLog = msg.log
		return m, nil
	case changedMsg:
		if msg.ev.Kind == engine.EventAchievements {
			m.lastLog = fmt.Sprintf("%s Achievement unlocked: %s", ui.IconTrophy, msg.ev.Detail)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.boardLines())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.busy {
				return m, nil
			}
			lines := m.boardLines()
			if m.selected < 0 || m.selected >= len(lines) {
				return m, nil
			}
			line := lines[m.selected]
			if line.quest {
				if line.done {
					m.lastLog = "Quest already complete."
					return m, nil
				}
				m.busy = true
				return m, m.advanceCmd(line.id)
			}
			m.busy = true
			return m, m.toggleCmd(line.id)
		case "o":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.openBoxCmd(engine.RarityCommon)
		}
	}
	return m, nil
}

type boardLine struct {
	id    string
	quest bool
	title string
	done  bool
	note  string
}

// boardLines lists habits first, then quests.
func (m boardModel) boardLines() []boardLine {
	out := make([]boardLine, 0, len(m.habits)+len(m.quests))
	for _, h := range m.habits {
		note := fmt.Sprintf("%d pts", h.Points)
		if h.Streak > 0 {
			note += fmt.Sprintf(" %s%d", ui.IconFlame, h.Streak)
		}
		out = append(out, boardLine{id: h.ID, title: h.Name, done: h.Completed, note: note})
	}
	for _, q := range m.quests {
		out = append(out, boardLine{
			id:    q.ID,
			quest: true,
			title: q.Title,
			done:  q.Completed,
			note:  fmt.Sprintf("%d/%d", q.Progress, q.Total),
		})
	}
	return out
}

func (m *boardModel) clampSelection() {
	n := len(m.boardLines())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + engine.Advice(m.err) + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.user == nil {
		return "Habitex - loading..."
	}
	u := m.user
	return fmt.Sprintf("Habitex | %s | Level %d | XP %d/%d %s | %s",
		u.DisplayName, u.Level, u.XP, u.MaxXP, progressBar(u.XP, u.MaxXP, 20), ui.Coins(u.Currency))
}

func (m boardModel) renderSidebar() string {
	if m.user == nil {
		return "Stats\n\nLoading..."
	}
	st := m.user.Stats
	lines := []string{
		"Stats",
		fmt.Sprintf("- HP  %d", st.Health),
		fmt.Sprintf("- STR %d", st.Strength),
		fmt.Sprintf("- INT %d", st.Intelligence),
		fmt.Sprintf("- CHA %d", st.Charisma),
		"",
		"Today",
		fmt.Sprintf("- %d/%d habits (%d%%)", m.stats.Completed, m.stats.Total, m.stats.Percentage),
		fmt.Sprintf("- %d points", m.stats.PointsEarned),
		"",
		"Keys",
		"- j/k: move",
		"- space: toggle/advance",
		"- o: open common box",
		"- r: refresh",
		"- q: quit",
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading..."
	}
	lines := m.boardLines()
	out := []string{"Habits"}
	for i, bl := range lines {
		if bl.quest && (i == 0 || !lines[i-1].quest) {
			out = append(out, "", "Quests")
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, fmt.Sprintf("%s%s %s (%s)", cursor, ui.Check(bl.done), bl.title, bl.note))
	}
	if len(lines) == 0 {
		out = append(out, "(empty)")
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
