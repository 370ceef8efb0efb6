package theme

import "github.com/gdamore/tcell/v2"

// MonoTheme leaves every color to the terminal
type MonoTheme struct{}

// NewMonoTheme creates a new mono theme instance
func NewMonoTheme() *MonoTheme {
	return &MonoTheme{}
}

// Name returns the theme name
func (t *MonoTheme) Name() string {
	return "mono"
}

// TerminalColors returns the event view color scheme
func (t *MonoTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,
		Border:     tcell.ColorDefault,
		Title:      tcell.ColorDefault,
	}
}

// StatusColors returns the status bar color scheme
func (t *MonoTheme) StatusColors() StatusColors {
	return StatusColors{
		Background:     tcell.ColorDefault,
		Foreground:     tcell.ColorDefault,
		ErrorFg:        tcell.ColorDefault,
		ConnectedFg:    tcell.ColorDefault,
		ConnectingFg:   tcell.ColorDefault,
		DisconnectedFg: tcell.ColorDefault,
	}
}

// EventColors returns the event kind color scheme
func (t *MonoTheme) EventColors() EventColors {
	return EventColors{
		Timestamp: tcell.ColorDefault,
		Session:   tcell.ColorDefault,
		Warning:   tcell.ColorDefault,
		Error:     tcell.ColorDefault,
		Unknown:   tcell.ColorDefault,
		Chat:      tcell.ColorDefault,
		Combat:    tcell.ColorDefault,
		Presence:  tcell.ColorDefault,
		Admin:     tcell.ColorDefault,
		Other:     tcell.ColorDefault,
	}
}
