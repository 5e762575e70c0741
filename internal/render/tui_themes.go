package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Glamour style names matching the two TUI palettes
const (
	StyleDark  = "dark"
	StyleLight = "light"
)

// TUITheme defines the color scheme for the terminal interface
type TUITheme struct {
	Name string

	// MarkdownStyle is the glamour style paired with this palette
	MarkdownStyle string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// DarkTheme is the default palette for dark terminals
	DarkTheme = TUITheme{
		Name:          "dark",
		MarkdownStyle: StyleDark,

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#bb9af7"), // Dungeon Master purple
		Secondary: lipgloss.Color("#9ece6a"), // Player green
		Accent:    lipgloss.Color("#7aa2f7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// LightTheme is the palette for light terminals
	LightTheme = TUITheme{
		Name:          "light",
		MarkdownStyle: StyleLight,

		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#eaeaea"),
		Border:     lipgloss.Color("#9699a3"),

		Primary:   lipgloss.Color("#5a4a78"),
		Secondary: lipgloss.Color("#33635c"),
		Accent:    lipgloss.Color("#34548a"),
		Warning:   lipgloss.Color("#8f5e15"),
		Error:     lipgloss.Color("#8c4351"),

		Text:     lipgloss.Color("#343b58"),
		TextDim:  lipgloss.Color("#6c6e75"),
		TextMute: lipgloss.Color("#9699a3"),
	}
)

var (
	themeMu         sync.RWMutex
	currentTUITheme = DarkTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}

	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// ToggleTUITheme switches between the dark and light palettes and returns the
// newly active theme. Purely presentational.
func ToggleTUITheme() TUITheme {
	themeMu.Lock()
	defer themeMu.Unlock()

	if currentTUITheme.Name == DarkTheme.Name {
		currentTUITheme = LightTheme
	} else {
		currentTUITheme = DarkTheme
	}
	return currentTUITheme
}

// IsDarkMode reports whether the dark palette is active
func IsDarkMode() bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme.Name == DarkTheme.Name
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	switch name {
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	default:
		return TUITheme{}, false
	}
}

// TUIThemeNames returns the theme names for selection
func TUIThemeNames() []string {
	return []string{DarkTheme.Name, LightTheme.Name}
}
