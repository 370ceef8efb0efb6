package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"d3console/internal/api"
	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
	"d3console/internal/markup"
)

// Printer shows command output. Implementations must be safe to call from
// any goroutine.
type Printer interface {
	Info(text string)
	Error(err error)
	Record(rec database.Record)
}

var errNoJournal = errors.New("the event journal is disabled; set journal.driver in the config")

const helpText = `Commands:
  /connect                 connect to the server
  /close                   close the connection
  /history [kind] [count]  show journaled events
  /color r g b text        say text in an RGB color (1-255 each)
  /help                    show this help
  /quit                    leave
Anything else is sent to the server as typed, e.g. $scores or say hello.`

// Commander interprets one line of operator input.
type Commander struct {
	console api.ConsoleAPI
	history api.HistoryAPI
	printer Printer

	// Callbacks
	onConnect func()
	onQuit    func()
}

// NewCommander creates a commander. history may be nil when no journal is configured.
func NewCommander(c api.ConsoleAPI, history api.HistoryAPI, printer Printer) *Commander {
	return &Commander{
		console: c,
		history: history,
		printer: printer,
	}
}

// SetCallbacks sets the callback functions
func (cm *Commander) SetCallbacks(onConnect, onQuit func()) {
	cm.onConnect = onConnect
	cm.onQuit = onQuit
}

// Execute runs input. Lines starting with / are local commands; everything
// else goes to the server.
func (cm *Commander) Execute(ctx context.Context, input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	if !strings.HasPrefix(input, "/") {
		cm.send(markup.Encode(input))
		return
	}

	fields := strings.Fields(input)
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "/connect":
		if cm.onConnect != nil {
			cm.onConnect()
		}
	case "/close":
		if err := cm.console.Close(); err != nil {
			cm.printer.Error(err)
		}
	case "/quit", "/exit":
		if cm.onQuit != nil {
			cm.onQuit()
		}
	case "/history":
		cm.showHistory(ctx, args)
	case "/color":
		cm.sayColored(input, args)
	case "/help":
		cm.printer.Info(helpText)
	default:
		cm.printer.Error(fmt.Errorf("unknown command %s; try /help", fields[0]))
	}
}

func (cm *Commander) send(command string) {
	if err := cm.console.Send(command); err != nil {
		cm.printer.Error(err)
	}
}

func (cm *Commander) showHistory(ctx context.Context, args []string) {
	if cm.history == nil {
		cm.printer.Error(errNoJournal)
		return
	}

	var q database.Query
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			q.Limit = n
			continue
		}
		q.Kind = streaming.Kind(strings.ToLower(arg))
	}

	records, err := cm.history.Recent(ctx, q)
	if err != nil {
		cm.printer.Error(err)
		return
	}
	if len(records) == 0 {
		cm.printer.Info("No journaled events")
		return
	}
	for _, rec := range records {
		cm.printer.Record(rec)
	}
}

// sayColored handles "/color r g b text". The text keeps its original spacing.
func (cm *Commander) sayColored(input string, args []string) {
	if len(args) < 4 {
		cm.printer.Error(errors.New("usage: /color red green blue text"))
		return
	}

	var channels [3]float64
	for i := range channels {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			cm.printer.Error(fmt.Errorf("color channel %q is not a number", args[i]))
			return
		}
		channels[i] = v
	}

	text := input
	for _, f := range []string{"/color", args[0], args[1], args[2]} {
		text = strings.TrimSpace(text)
		text = text[len(f):]
	}

	colored, err := markup.Colorize(channels[0], channels[1], channels[2], strings.TrimSpace(text))
	if err != nil {
		cm.printer.Error(err)
		return
	}
	cm.send("say " + colored)
}
