package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"d3console/internal/api"
	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
	"d3console/internal/log"
	"d3console/internal/theme"
	"d3console/internal/tui/components"
	"d3console/internal/tui/handlers"
)

const (
	maxViewLines   = 5000
	eventQueueSize = 1000
	statusInterval = time.Second
)

// App is the interactive terminal console.
type App struct {
	app     *tview.Application
	console api.ConsoleAPI
	ctx     context.Context

	// Core components
	pages    *tview.Pages
	mainGrid *tview.Grid

	// UI Components
	view   *tview.TextView
	input  *tview.InputField
	status *components.StatusComponent

	// Input handling
	inputHandler *handlers.InputHandler
	commander    *handlers.Commander

	// Events queued by the reader goroutine
	eventChan chan streaming.Event
}

// NewApplication creates and configures the tview application. history may
// be nil when no journal is configured.
func NewApplication(ctx context.Context, c api.ConsoleAPI, history api.HistoryAPI) *App {
	a := &App{
		app:          tview.NewApplication(),
		console:      c,
		ctx:          ctx,
		status:       components.NewStatusComponent(c.Address()),
		inputHandler: handlers.NewInputHandler(),
		eventChan:    make(chan streaming.Event, eventQueueSize),
	}

	a.commander = handlers.NewCommander(c, history, a)
	a.commander.SetCallbacks(a.connect, a.exit)

	a.setupUI()
	a.setupInputHandling()
	api.Attach(c, a)

	return a
}

// SetShortcuts binds keys such as "f2" to input lines, which run as if typed.
func (a *App) SetShortcuts(shortcuts map[string]string) error {
	for key, line := range shortcuts {
		err := a.inputHandler.Shortcuts().RegisterShortcut(key, func() {
			go a.commander.Execute(a.ctx, line)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// setupUI configures the user interface layout
func (a *App) setupUI() {
	a.view = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetMaxLines(maxViewLines).
		SetChangedFunc(func() { a.app.Draw() })
	colors := theme.Current().TerminalColors()
	a.view.SetTextColor(colors.Foreground)
	a.view.SetBackgroundColor(colors.Background)
	a.view.SetBorder(true).
		SetBorderColor(colors.Border).
		SetTitleColor(colors.Title).
		SetTitle(" " + a.console.Address() + " ")

	a.input = tview.NewInputField().
		SetLabel("> ").
		SetLabelColor(colors.Foreground).
		SetFieldTextColor(colors.Foreground).
		SetFieldBackgroundColor(colors.Background)
	a.input.SetBackgroundColor(colors.Background)

	a.mainGrid = tview.NewGrid().
		SetRows(0, 1, 1).
		SetColumns(0).
		SetBorders(false)

	a.mainGrid.AddItem(a.view, 0, 0, 1, 1, 0, 0, false)
	a.mainGrid.AddItem(a.input, 1, 0, 1, 1, 0, 0, true)
	a.mainGrid.AddItem(a.status.GetWrapper(), 2, 0, 1, 1, 0, 0, false)

	a.pages = tview.NewPages()
	a.pages.AddPage("main", a.mainGrid, true, true)

	a.app.SetRoot(a.pages, true).SetFocus(a.input)
}

// setupInputHandling configures input event handling
func (a *App) setupInputHandling() {
	a.inputHandler.SetCallbacks(
		a.exit,   // onExit
		a.clear,  // onClear
		a.scroll, // onScroll
	)
	a.app.SetInputCapture(a.inputHandler.HandleKeyEvent)

	a.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if text, ok := a.inputHandler.Recall(event.Key(), a.input.GetText()); ok {
			a.input.SetText(text)
			return nil
		}
		return event
	})

	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := a.input.GetText()
		a.input.SetText("")
		a.inputHandler.Remember(line)
		a.view.ScrollToEnd()

		// commands may block on the network; keep the event loop free
		go a.commander.Execute(a.ctx, line)
	})
}

// Run connects and shows the UI until the operator quits or ctx is done.
func (a *App) Run() error {
	go a.processEventLoop()
	go a.refreshStatusLoop()
	go func() {
		<-a.ctx.Done()
		a.app.Stop()
	}()

	a.connect()
	return a.app.Run()
}

func (a *App) connect() {
	api.Connect(a.ctx, a.console, a)
}

// exit shuts down the application
func (a *App) exit() {
	if a.console.IsConnected() {
		if err := a.console.Close(); err != nil {
			log.Warn("Close on exit failed", "error", err)
		}
	}
	a.app.Stop()
}

func (a *App) clear() {
	a.view.Clear()
}

func (a *App) scroll(lines int) {
	row, col := a.view.GetScrollOffset()
	row += lines
	if row < 0 {
		row = 0
	}
	a.view.ScrollTo(row, col)
}

func (a *App) println(line string) {
	fmt.Fprintln(a.view, line)
}

// OnConnectionStatusChanged implements api.UiAPI
func (a *App) OnConnectionStatusChanged(status api.ConnectionStatus, address string) {
	a.app.QueueUpdateDraw(func() {
		a.status.SetConnectionStatus(status, address)
	})
}

// OnConnectionError implements api.UiAPI
func (a *App) OnConnectionError(err error) {
	a.app.QueueUpdateDraw(func() {
		a.status.SetError(err)
	})
	a.Error(err)
}

// OnEvent implements api.UiAPI. It never blocks the reader goroutine; when
// the queue is full the event is only logged.
func (a *App) OnEvent(ev streaming.Event) {
	select {
	case a.eventChan <- ev:
	default:
		log.Warn("Display queue full, dropping event", "kind", ev.Kind)
	}
}

// Info implements handlers.Printer
func (a *App) Info(text string) {
	a.println(tview.Escape(text))
}

// Error implements handlers.Printer
func (a *App) Error(err error) {
	a.println(theme.Tag(theme.Current().EventColors().Error) + tview.Escape(err.Error()) + "[-]")
}

// Record implements handlers.Printer
func (a *App) Record(rec database.Record) {
	a.println(FormatRecord(rec, true))
}

// processEventLoop renders queued events in arrival order
func (a *App) processEventLoop() {
	for {
		select {
		case ev := <-a.eventChan:
			a.println(FormatEvent(ev, true))
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) refreshStatusLoop() {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			handshake, stats := a.console.HandshakeState(), a.console.Stats()
			a.app.QueueUpdateDraw(func() {
				a.status.SetSession(handshake, stats)
			})
		case <-a.ctx.Done():
			return
		}
	}
}
