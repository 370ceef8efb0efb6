package handlers

import (
	"github.com/gdamore/tcell/v2"

	"d3console/internal/components"
)

const maxRecall = 200

// InputHandler manages key handling for the application: global shortcuts
// and recall of previously entered lines.
type InputHandler struct {
	recall []string
	cursor int // index into recall; len(recall) means the fresh line
	draft  string

	shortcuts *components.ShortcutManager

	// Callbacks
	onExit   func()
	onClear  func()
	onScroll func(lines int)
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{shortcuts: components.NewShortcutManager()}
}

// Shortcuts returns the manager for operator-defined key bindings.
func (ih *InputHandler) Shortcuts() *components.ShortcutManager {
	return ih.shortcuts
}

// SetCallbacks sets the callback functions
func (ih *InputHandler) SetCallbacks(onExit, onClear func(), onScroll func(lines int)) {
	ih.onExit = onExit
	ih.onClear = onClear
	ih.onScroll = onScroll
}

// HandleKeyEvent handles application-wide shortcuts. Built-in keys win over
// operator-defined ones.
func (ih *InputHandler) HandleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		if ih.onExit != nil {
			ih.onExit()
		}
		return nil
	case tcell.KeyCtrlL:
		if ih.onClear != nil {
			ih.onClear()
		}
		return nil
	case tcell.KeyPgUp:
		if ih.onScroll != nil {
			ih.onScroll(-10)
		}
		return nil
	case tcell.KeyPgDn:
		if ih.onScroll != nil {
			ih.onScroll(10)
		}
		return nil
	}
	if ih.shortcuts.HandleKeyEvent(event) {
		return nil
	}
	return event
}

// Remember adds an entered line to the recall list.
func (ih *InputHandler) Remember(line string) {
	if line != "" && (len(ih.recall) == 0 || ih.recall[len(ih.recall)-1] != line) {
		ih.recall = append(ih.recall, line)
		if len(ih.recall) > maxRecall {
			ih.recall = ih.recall[len(ih.recall)-maxRecall:]
		}
	}
	ih.cursor = len(ih.recall)
	ih.draft = ""
}

// Recall handles Up and Down in the input line. It returns the text to
// show and whether the key was consumed.
func (ih *InputHandler) Recall(key tcell.Key, current string) (string, bool) {
	switch key {
	case tcell.KeyUp:
		if ih.cursor == 0 {
			return current, true
		}
		if ih.cursor == len(ih.recall) {
			ih.draft = current
		}
		ih.cursor--
		return ih.recall[ih.cursor], true

	case tcell.KeyDown:
		if ih.cursor >= len(ih.recall) {
			return current, true
		}
		ih.cursor++
		if ih.cursor == len(ih.recall) {
			return ih.draft, true
		}
		return ih.recall[ih.cursor], true
	}
	return current, false
}
