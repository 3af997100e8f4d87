package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"habitex/internal/engine"
)

// RunBoard shows the dashboard until the user quits. Changes published by
// svc refresh the view.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	cancel := svc.Events().Subscribe(func(ev engine.Event) {
		go p.Send(changedMsg{ev: ev})
	})
	defer cancel()
	_, err := p.Run()
	return err
}
