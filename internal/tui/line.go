package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"d3console/internal/api"
	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
	"d3console/internal/log"
	"d3console/internal/tui/handlers"
)

const closeWait = 2 * time.Second

// LineUI is the non-interactive frontend used when stdout is not a terminal:
// one plain line per event on out, commands read from stdin. It runs for
// one connection.
type LineUI struct {
	ctx     context.Context
	console api.ConsoleAPI

	mu  sync.Mutex
	out io.Writer

	commander *handlers.Commander
	quit      chan struct{}
	quitOnce  sync.Once
}

// NewLineUI creates a line-mode frontend. history may be nil.
func NewLineUI(ctx context.Context, c api.ConsoleAPI, history api.HistoryAPI, out io.Writer) *LineUI {
	l := &LineUI{
		ctx:     ctx,
		console: c,
		out:     out,
		quit:    make(chan struct{}),
	}
	l.commander = handlers.NewCommander(c, history, l)
	l.commander.SetCallbacks(l.reconnect, l.stop)
	return l
}

// Run connects, then prints events until the connection closes, the
// operator enters /quit or ctx is cancelled. in supplies commands.
func (l *LineUI) Run(in io.Reader) error {
	closed := make(chan struct{})
	var closeOnce sync.Once

	id := api.Attach(l.console, l)
	defer l.console.Unsubscribe(id)
	watch := l.console.SubscribeAll(func(ev streaming.Event) {
		if ev.Kind == streaming.EventClose {
			closeOnce.Do(func() { close(closed) })
		}
	})
	defer l.console.Unsubscribe(watch)

	if err := l.console.Connect(l.ctx); err != nil {
		return err
	}

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			l.commander.Execute(l.ctx, scanner.Text())
		}
	}()

	select {
	case <-closed:
		return nil
	case <-l.quit:
	case <-l.ctx.Done():
	}

	if err := l.console.Close(); err != nil {
		// already closed by the server; the close event is on its way
		log.Debug("Close on exit", "error", err)
	}
	select {
	case <-closed:
	case <-time.After(closeWait):
		log.Warn("Connection did not close in time")
	}
	return nil
}

func (l *LineUI) stop() {
	l.quitOnce.Do(func() { close(l.quit) })
}

func (l *LineUI) reconnect() {
	if err := l.console.Connect(l.ctx); err != nil {
		l.Error(err)
	}
}

func (l *LineUI) println(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

// OnConnectionStatusChanged implements api.UiAPI
func (l *LineUI) OnConnectionStatusChanged(status api.ConnectionStatus, address string) {
	log.Info("Connection status changed", "status", status, "address", address)
}

// OnConnectionError implements api.UiAPI
func (l *LineUI) OnConnectionError(err error) {
	log.Error("Connection error", "error", err)
}

// OnEvent implements api.UiAPI
func (l *LineUI) OnEvent(ev streaming.Event) {
	l.println(FormatEvent(ev, false))
}

// Info implements handlers.Printer
func (l *LineUI) Info(text string) {
	l.println(text)
}

// Error implements handlers.Printer
func (l *LineUI) Error(err error) {
	l.println("error: " + err.Error())
}

// Record implements handlers.Printer
func (l *LineUI) Record(rec database.Record) {
	l.println(FormatRecord(rec, false))
}
