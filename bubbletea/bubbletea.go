// Package bubbletea provides the Bubble Tea TUI for the smartnurse chat.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpalves/smartnurse"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. Cancelling the context quits the program.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// SessionEventMsg wraps a session event for delivery to the Bubble Tea model.
type SessionEventMsg struct {
	Event smartnurse.Event
}

// ExchangeDoneMsg signals that one submit exchange has completed.
type ExchangeDoneMsg struct {
	Err error
}

// ProbeDoneMsg signals that the session-start connectivity probe finished.
type ProbeDoneMsg struct{}
