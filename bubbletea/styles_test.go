package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jpalves/smartnurse"
	bt "github.com/jpalves/smartnurse/bubbletea"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	theme := smartnurse.DefaultTheme()
	styles := bt.NewStyles(theme)

	assert.Equal(t, lipgloss.Color("4"), styles.UserLabel.GetForeground())
	assert.True(t, styles.UserLabel.GetBold())

	assert.Equal(t, lipgloss.Color("5"), styles.BotLabel.GetForeground())
	assert.True(t, styles.BotLabel.GetBold())

	assert.Equal(t, lipgloss.Color("7"), styles.BotMsg.GetForeground())

	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())

	assert.Equal(t, lipgloss.Color("3"), styles.Warning.GetForeground())

	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())

	assert.Equal(t, lipgloss.Color("5"), styles.Title.GetForeground())
	assert.True(t, styles.Title.GetBold())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	theme := smartnurse.Theme{UserMsg: -1}
	styles := bt.NewStyles(theme)

	assert.Equal(t, lipgloss.NoColor{}, styles.UserLabel.GetForeground())
}
