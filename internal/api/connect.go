package api

import (
	"context"

	"d3console/internal/console/streaming"
)

// Attach forwards console events to ui and returns the subscription id.
// Transport events are also reported as connection status changes.
func Attach(c ConsoleAPI, ui UiAPI) string {
	return c.SubscribeAll(func(ev streaming.Event) {
		switch ev.Kind {
		case streaming.EventRaw:
			return
		case streaming.EventConnected:
			ui.OnConnectionStatusChanged(ConnectionStatusConnected, c.Address())
		case streaming.EventError:
			if data, ok := ev.Data.(streaming.ErrorData); ok {
				ui.OnConnectionError(data.Err)
			}
		case streaming.EventClose:
			ui.OnConnectionStatusChanged(ConnectionStatusDisconnected, c.Address())
		}
		ui.OnEvent(ev)
	})
}

// Connect starts a connection attempt without blocking the caller. Failures
// go to ui; success is reported by the connected event through Attach.
func Connect(ctx context.Context, c ConsoleAPI, ui UiAPI) {
	ui.OnConnectionStatusChanged(ConnectionStatusConnecting, c.Address())

	go func() {
		if err := c.Connect(ctx); err != nil {
			ui.OnConnectionError(err)
			if !c.IsConnected() {
				ui.OnConnectionStatusChanged(ConnectionStatusDisconnected, c.Address())
			}
		}
	}()
}
