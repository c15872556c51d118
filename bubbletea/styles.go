package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpalves/smartnurse"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	BotMsg    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Muted     lipgloss.Style
	Title     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t smartnurse.Theme) Styles {
	return Styles{
		UserLabel: lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		BotLabel:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		BotMsg:    lipgloss.NewStyle().Foreground(ansiColor(t.BotMsg)),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Warning:   lipgloss.NewStyle().Foreground(ansiColor(t.Warning)),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Title:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
