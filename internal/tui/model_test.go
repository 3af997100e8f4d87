package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitex/internal/engine"
	"habitex/internal/storage"
)

func loadedModel(t *testing.T) boardModel {
	t.Helper()
	svc := engine.NewService(storage.Unavailable())
	m := newBoardModel(context.Background(), svc)
	u := storage.DefaultUser(time.Now())
	next, _ := m.Update(loadedMsg{
		user:   &u,
		habits: []storage.Habit{{ID: "h1", Name: "Stretch", Points: 10, Completed: true}, {ID: "h2", Name: "Journal", Points: 5}},
		quests: []storage.Quest{{ID: "q1", Title: "Marathon", Progress: 3, Total: 3, Completed: true}},
	})
	return next.(boardModel)
}

func press(m boardModel, key string) (boardModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(boardModel), cmd
}

func TestBoardListsHabitsThenQuests(t *testing.T) {
	m := loadedModel(t)
	lines := m.boardLines()
	if len(lines) != 3 {
		t.Fatalf("lines=%d, want 3", len(lines))
	}
	if lines[0].id != "h1" || lines[2].id != "q1" || !lines[2].quest {
		t.Fatalf("unexpected order: %+v", lines)
	}
	if m.stats.Completed != 1 || m.stats.Percentage != 50 {
		t.Fatalf("stats=%+v", m.stats)
	}

	view := m.View()
	for _, want := range []string{"Habits", "Quests", "Stretch", "Marathon", "1/2 habits (50%)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardSelectionIsClamped(t *testing.T) {
	m := loadedModel(t)
	for i := 0; i < 5; i++ {
		m, _ = press(m, "j")
	}
	if m.selected != 2 {
		t.Fatalf("selected=%d, want 2", m.selected)
	}
	m, _ = press(m, "k")
	if m.selected != 1 {
		t.Fatalf("selected=%d, want 1", m.selected)
	}
}

func TestBoardCompletedQuestIsNotAdvanced(t *testing.T) {
	m := loadedModel(t)
	m.selected = 2
	m, cmd := press(m, " ")
	if cmd != nil {
		t.Fatalf("expected no command for a completed quest")
	}
	if m.lastLog != "Quest already complete." {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardShowsAdviceOnError(t *testing.T) {
	m := loadedModel(t)
	next, _ := m.Update(actionMsg{err: engine.InsufficientFundsError{Have: 10, Need: 50}})
	m = next.(boardModel)
	if m.lastLog != "Not enough coins! You need 50 coins but only have 10." {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardIgnoresActionsWhileBusy(t *testing.T) {
	m := loadedModel(t)
	m.selected = 1

	m, cmd := press(m, " ")
	if cmd == nil || !m.busy {
		t.Fatalf("expected a toggle command, busy=%v", m.busy)
	}
	m, cmd = press(m, "o")
	if cmd != nil {
		t.Fatalf("expected no command while an action runs")
	}
	m, cmd = press(m, " ")
	if cmd != nil {
		t.Fatalf("expected no second toggle while an action runs")
	}

	next, _ := m.Update(actionMsg{log: "Journal done"})
	m = next.(boardModel)
	if m.busy {
		t.Fatalf("busy not cleared after the action reported")
	}
	if _, cmd = press(m, "o"); cmd == nil {
		t.Fatalf("expected an open-box command once idle")
	}
}
