package theme

import "github.com/gdamore/tcell/v2"

// DefaultTheme is used when the config names none.
const DefaultTheme = "classic"

// Standard 16-color palette using fixed hex values so the look does not
// depend on the terminal's color scheme
var (
	DOSBlack     = tcell.NewHexColor(0x000000)
	DOSRed       = tcell.NewHexColor(0x800000)
	DOSGreen     = tcell.NewHexColor(0x008000)
	DOSBrown     = tcell.NewHexColor(0x808000)
	DOSBlue      = tcell.NewHexColor(0x000080)
	DOSMagenta   = tcell.NewHexColor(0x800080)
	DOSCyan      = tcell.NewHexColor(0x008080)
	DOSLightGray = tcell.NewHexColor(0xC0C0C0)

	DOSDarkGray     = tcell.NewHexColor(0x808080)
	DOSLightRed     = tcell.NewHexColor(0xFF0000)
	DOSLightGreen   = tcell.NewHexColor(0x00FF00)
	DOSYellow       = tcell.NewHexColor(0xFFFF00)
	DOSLightBlue    = tcell.NewHexColor(0x0000FF)
	DOSLightMagenta = tcell.NewHexColor(0xFF00FF)
	DOSLightCyan    = tcell.NewHexColor(0x00FFFF)
	DOSWhite        = tcell.NewHexColor(0xFFFFFF)
)

// ClassicTheme is a DOS-palette theme on a black background
type ClassicTheme struct{}

// NewClassicTheme creates a new classic theme instance
func NewClassicTheme() *ClassicTheme {
	return &ClassicTheme{}
}

// Name returns the theme name
func (t *ClassicTheme) Name() string {
	return DefaultTheme
}

// TerminalColors returns the event view color scheme
func (t *ClassicTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: DOSBlack,
		Foreground: DOSLightGray,
		Border:     DOSDarkGray,
		Title:      DOSWhite,
	}
}

// StatusColors returns the status bar color scheme
func (t *ClassicTheme) StatusColors() StatusColors {
	return StatusColors{
		Background:     DOSBlue,
		Foreground:     DOSWhite,
		ErrorFg:        DOSLightRed,
		ConnectedFg:    DOSLightGreen,
		ConnectingFg:   DOSYellow,
		DisconnectedFg: DOSLightRed,
	}
}

// EventColors returns the event kind color scheme
func (t *ClassicTheme) EventColors() EventColors {
	return EventColors{
		Timestamp: DOSDarkGray,
		Session:   DOSLightGreen,
		Warning:   DOSYellow,
		Error:     DOSLightRed,
		Unknown:   DOSDarkGray,
		Chat:      DOSWhite,
		Combat:    DOSBrown,
		Presence:  DOSLightCyan,
		Admin:     DOSLightMagenta,
		Other:     DOSLightGray,
	}
}
