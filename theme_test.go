package smartnurse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpalves/smartnurse"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := smartnurse.DefaultTheme()

	assert.Equal(t, 4, theme.UserMsg)
	assert.Equal(t, 7, theme.BotMsg)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 3, theme.Warning)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 5, theme.Accent)
}
