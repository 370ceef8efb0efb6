package theme

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// TerminalColors defines color scheme for the event view and input line
type TerminalColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
}

// StatusColors defines color scheme for status bars
type StatusColors struct {
	Background     tcell.Color
	Foreground     tcell.Color
	ErrorFg        tcell.Color
	ConnectedFg    tcell.Color
	ConnectingFg   tcell.Color
	DisconnectedFg tcell.Color
}

// EventColors groups event kinds by what the operator usually watches for.
type EventColors struct {
	Timestamp tcell.Color
	Session   tcell.Color // connect, login
	Warning   tcell.Color // end of stream, timeouts, close
	Error     tcell.Color // transport errors, rejected commands
	Unknown   tcell.Color
	Chat      tcell.Color
	Combat    tcell.Color // kills, deaths, suicides
	Presence  tcell.Color // joins and leaves
	Admin     tcell.Color // kicks and bans
	Other     tcell.Color
}

// Theme interface defines all theming properties
type Theme interface {
	// Name returns the theme name
	Name() string

	TerminalColors() TerminalColors
	StatusColors() StatusColors
	EventColors() EventColors
}

// ThemeManager manages theme selection
type ThemeManager struct {
	currentTheme Theme
	themes       map[string]Theme
}

// NewThemeManager creates a new theme manager
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes: make(map[string]Theme),
	}

	// Register built-in themes
	tm.RegisterTheme(NewClassicTheme())
	tm.RegisterTheme(NewMonoTheme())

	tm.currentTheme = tm.themes[DefaultTheme]
	return tm
}

// RegisterTheme registers a new theme
func (tm *ThemeManager) RegisterTheme(theme Theme) {
	tm.themes[theme.Name()] = theme
}

// SetTheme sets the current theme by name. An empty name keeps the current theme.
func (tm *ThemeManager) SetTheme(name string) error {
	if name == "" {
		return nil
	}
	if theme, exists := tm.themes[name]; exists {
		tm.currentTheme = theme
		return nil
	}
	return fmt.Errorf("theme '%s' not found; available: %v", name, tm.Available())
}

// Current returns the current theme
func (tm *ThemeManager) Current() Theme {
	return tm.currentTheme
}

// Available returns the sorted list of theme names
func (tm *ThemeManager) Available() []string {
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global theme manager instance
var defaultThemeManager = NewThemeManager()

// GetThemeManager returns the global theme manager
func GetThemeManager() *ThemeManager {
	return defaultThemeManager
}

// Current returns the current theme from the global manager
func Current() Theme {
	return defaultThemeManager.Current()
}

// Tag returns the tview color tag for c. The default color resets to the
// view's foreground.
func Tag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}
