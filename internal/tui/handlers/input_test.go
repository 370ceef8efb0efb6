package handlers

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputHandler_Recall(t *testing.T) {
	ih := NewInputHandler()
	ih.Remember("$scores")
	ih.Remember("$players")
	ih.Remember("$players")

	text, ok := ih.Recall(tcell.KeyUp, "say hi")
	assert.True(t, ok)
	assert.Equal(t, "$players", text)

	text, _ = ih.Recall(tcell.KeyUp, text)
	assert.Equal(t, "$scores", text)

	// stays at the oldest line
	text, _ = ih.Recall(tcell.KeyUp, text)
	assert.Equal(t, "$scores", text)

	text, _ = ih.Recall(tcell.KeyDown, text)
	assert.Equal(t, "$players", text)

	// back to what was being typed
	text, _ = ih.Recall(tcell.KeyDown, text)
	assert.Equal(t, "say hi", text)

	_, ok = ih.Recall(tcell.KeyLeft, text)
	assert.False(t, ok)
}

func TestInputHandler_Shortcuts(t *testing.T) {
	ih := NewInputHandler()

	var exited, cleared bool
	var scrolled int
	ih.SetCallbacks(func() { exited = true }, func() { cleared = true }, func(n int) { scrolled += n })

	assert.Nil(t, ih.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)))
	assert.Nil(t, ih.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl)))
	assert.Nil(t, ih.HandleKeyEvent(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone)))

	passthrough := tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)
	assert.Same(t, passthrough, ih.HandleKeyEvent(passthrough))

	assert.True(t, exited)
	assert.True(t, cleared)
	assert.Equal(t, -10, scrolled)
}

func TestInputHandler_OperatorShortcuts(t *testing.T) {
	ih := NewInputHandler()

	var ran []string
	require.NoError(t, ih.Shortcuts().RegisterShortcut("f2", func() { ran = append(ran, "$scores") }))

	assert.Nil(t, ih.HandleKeyEvent(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)))
	assert.Equal(t, []string{"$scores"}, ran)

	f3 := tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone)
	assert.Same(t, f3, ih.HandleKeyEvent(f3))
}
