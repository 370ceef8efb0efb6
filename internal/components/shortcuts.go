package components

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ShortcutManager maps key combinations such as "f2" or "alt+s" to callbacks.
// It is safe for concurrent use.
type ShortcutManager struct {
	shortcuts map[string]func() // map of shortcut string to callback function
	mutex     sync.RWMutex
}

// NewShortcutManager creates a new shortcut manager
func NewShortcutManager() *ShortcutManager {
	return &ShortcutManager{
		shortcuts: make(map[string]func()),
	}
}

// RegisterShortcut registers a shortcut with its callback. The name must
// parse with ParseShortcut.
func (sm *ShortcutManager) RegisterShortcut(shortcut string, callback func()) error {
	name, err := ParseShortcut(shortcut)
	if err != nil {
		return err
	}

	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.shortcuts[name] = callback
	return nil
}

// UnregisterShortcut removes a shortcut
func (sm *ShortcutManager) UnregisterShortcut(shortcut string) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	delete(sm.shortcuts, normalizeShortcut(shortcut))
}

// HandleKeyEvent checks if a key event matches any registered shortcuts
func (sm *ShortcutManager) HandleKeyEvent(event *tcell.EventKey) bool {
	shortcutString := keyEventToString(event)
	if shortcutString == "" {
		return false
	}

	sm.mutex.RLock()
	callback, exists := sm.shortcuts[shortcutString]
	sm.mutex.RUnlock()

	if exists {
		callback()
		return true // Event was handled
	}
	return false // Event not handled
}

// ListRegisteredShortcuts returns the registered shortcuts in sorted order
func (sm *ShortcutManager) ListRegisteredShortcuts() []string {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	shortcuts := make([]string, 0, len(sm.shortcuts))
	for shortcut := range sm.shortcuts {
		shortcuts = append(shortcuts, shortcut)
	}
	sort.Strings(shortcuts)
	return shortcuts
}

var specialKeys = map[tcell.Key]string{
	tcell.KeyF1:     "f1",
	tcell.KeyF2:     "f2",
	tcell.KeyF3:     "f3",
	tcell.KeyF4:     "f4",
	tcell.KeyF5:     "f5",
	tcell.KeyF6:     "f6",
	tcell.KeyF7:     "f7",
	tcell.KeyF8:     "f8",
	tcell.KeyF9:     "f9",
	tcell.KeyF10:    "f10",
	tcell.KeyF11:    "f11",
	tcell.KeyF12:    "f12",
	tcell.KeyInsert: "insert",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
}

var specialNames = func() map[string]bool {
	names := make(map[string]bool, len(specialKeys))
	for _, name := range specialKeys {
		names[name] = true
	}
	return names
}()

// keyEventToString converts a tcell.EventKey to a shortcut string
func keyEventToString(event *tcell.EventKey) string {
	var parts []string

	// Handle modifiers
	if event.Modifiers()&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if event.Modifiers()&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if event.Modifiers()&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}

	if event.Key() == tcell.KeyRune {
		parts = append(parts, strings.ToLower(string(event.Rune())))
	} else if name, ok := specialKeys[event.Key()]; ok {
		parts = append(parts, name)
	} else {
		return "" // Unknown key
	}

	return strings.Join(parts, "+")
}

// ParseShortcut checks a shortcut string (like "F2" or "Alt+S") and returns
// its normalized form. Printable keys need alt; terminals deliver ctrl
// letters as control keys.
func ParseShortcut(shortcut string) (string, error) {
	var hasCtrl, hasAlt, hasShift bool
	var key string

	for _, part := range strings.Split(normalizeShortcut(shortcut), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl":
			hasCtrl = true
		case "alt":
			hasAlt = true
		case "shift":
			hasShift = true
		default:
			if key != "" {
				return "", fmt.Errorf("shortcut %q names more than one key", shortcut)
			}
			key = part
		}
	}

	switch {
	case specialNames[key]:
	case len([]rune(key)) == 1:
		if !hasAlt {
			return "", fmt.Errorf("shortcut %q needs alt", shortcut)
		}
	default:
		return "", fmt.Errorf("shortcut %q has no known key", shortcut)
	}

	var parts []string
	if hasCtrl {
		parts = append(parts, "ctrl")
	}
	if hasAlt {
		parts = append(parts, "alt")
	}
	if hasShift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, key), "+"), nil
}

// normalizeShortcut converts a shortcut string to a consistent format
func normalizeShortcut(shortcut string) string {
	return strings.ToLower(strings.ReplaceAll(shortcut, " ", ""))
}
