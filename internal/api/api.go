package api

import (
	"context"

	"d3console/internal/console"
	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
)

// ConsoleAPI defines commands from the UI to the console
type ConsoleAPI interface {
	// Connection Management
	Connect(ctx context.Context) error
	Close() error
	IsConnected() bool
	Address() string

	// Commands
	Send(command string) error

	// State
	HandshakeState() streaming.HandshakeState
	Stats() console.Stats

	// Events
	SubscribeAll(handler streaming.Handler) string
	Unsubscribe(id string)
}

// HistoryAPI gives the UI read access to the event journal
type HistoryAPI interface {
	Recent(ctx context.Context, q database.Query) ([]database.Record, error)
}

// UiAPI defines notifications from the console to the UI
//
// All methods are called on the console's reader goroutine and must return
// quickly. Queue real work through tview's QueueUpdateDraw or a channel.
type UiAPI interface {
	OnConnectionStatusChanged(status ConnectionStatus, address string)
	OnConnectionError(err error)

	// OnEvent receives every classified event, transport events included,
	// but not raw lines.
	OnEvent(ev streaming.Event)
}

// ConnectionStatus represents the current connection state
type ConnectionStatus int

const (
	ConnectionStatusDisconnected ConnectionStatus = iota
	ConnectionStatusConnecting
	ConnectionStatusConnected
)

func (cs ConnectionStatus) String() string {
	switch cs {
	case ConnectionStatusDisconnected:
		return "disconnected"
	case ConnectionStatusConnecting:
		return "connecting"
	case ConnectionStatusConnected:
		return "connected"
	default:
		return "unknown"
	}
}

var _ ConsoleAPI = (*console.Console)(nil)
var _ HistoryAPI = (*database.SQLJournal)(nil)
