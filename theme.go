package smartnurse

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg int // User message accent
	BotMsg  int // Assistant message text
	Error   int // Error turns
	Warning int // Offline/alert lines
	Muted   int // Status bar, placeholders, source footer
	Accent  int // Screen title
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		BotMsg:  7,
		Error:   1,
		Warning: 3,
		Muted:   8,
		Accent:  5,
	}
}
