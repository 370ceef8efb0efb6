package components

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rivo/tview"

	"d3console/internal/api"
	"d3console/internal/console"
	"d3console/internal/console/streaming"
	"d3console/internal/theme"
)

// StatusComponent manages the bottom status bar
type StatusComponent struct {
	wrapper *tview.TextView

	status        api.ConnectionStatus
	serverAddress string
	handshake     streaming.HandshakeState
	stats         console.Stats
	lastError     string
}

// NewStatusComponent creates a new status bar component
func NewStatusComponent(serverAddress string) *StatusComponent {
	statusBar := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false)

	colors := theme.Current().StatusColors()
	statusBar.SetBackgroundColor(colors.Background)
	statusBar.SetTextColor(colors.Foreground)

	sc := &StatusComponent{
		wrapper:       statusBar,
		serverAddress: serverAddress,
	}
	sc.UpdateStatus()
	return sc
}

// GetWrapper returns the status bar TextView
func (sc *StatusComponent) GetWrapper() *tview.TextView {
	return sc.wrapper
}

// SetConnectionStatus sets the connection status
func (sc *StatusComponent) SetConnectionStatus(status api.ConnectionStatus, serverAddress string) {
	sc.status = status
	sc.serverAddress = serverAddress
	if status == api.ConnectionStatusConnected {
		sc.lastError = ""
	}
	sc.UpdateStatus()
}

// SetError shows err until the next successful connection.
func (sc *StatusComponent) SetError(err error) {
	sc.lastError = err.Error()
	sc.UpdateStatus()
}

// SetSession refreshes the login state and traffic counters.
func (sc *StatusComponent) SetSession(handshake streaming.HandshakeState, stats console.Stats) {
	sc.handshake = handshake
	sc.stats = stats
	sc.UpdateStatus()
}

// Text returns the current status line.
func (sc *StatusComponent) Text() string {
	var statusText strings.Builder
	colors := theme.Current().StatusColors()

	statusText.WriteString(" ")
	switch sc.status {
	case api.ConnectionStatusConnected:
		statusText.WriteString(fmt.Sprintf("%sConnected[-] to %s (%s)", theme.Tag(colors.ConnectedFg), sc.serverAddress, sc.handshake))
	case api.ConnectionStatusConnecting:
		statusText.WriteString(fmt.Sprintf("%sConnecting[-] to %s", theme.Tag(colors.ConnectingFg), sc.serverAddress))
	default:
		statusText.WriteString(fmt.Sprintf("%sDisconnected[-] from %s", theme.Tag(colors.DisconnectedFg), sc.serverAddress))
	}

	statusText.WriteString(fmt.Sprintf(" | in %s, out %s, %s lines",
		humanize.Bytes(sc.stats.BytesReceived),
		humanize.Bytes(sc.stats.BytesSent),
		humanize.Comma(int64(sc.stats.Lines))))

	if sc.lastError != "" {
		statusText.WriteString(" | " + theme.Tag(colors.ErrorFg) + tview.Escape(sc.lastError) + "[-]")
	}

	statusText.WriteString(" | /help")
	return statusText.String()
}

// UpdateStatus updates the status bar display
func (sc *StatusComponent) UpdateStatus() {
	sc.wrapper.SetText(sc.Text())
}
