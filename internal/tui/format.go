package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hako/durafmt"
	"github.com/rivo/tview"

	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
	"d3console/internal/markup"
	"d3console/internal/theme"
)

const timeLayout = "15:04:05"

// kindColor picks the theme color for a kind.
func kindColor(kind streaming.Kind) tcell.Color {
	colors := theme.Current().EventColors()
	switch kind {
	case streaming.EventConnected, streaming.EventLoggedIn:
		return colors.Session
	case streaming.EventEnd, streaming.EventTimeout, streaming.EventClose:
		return colors.Warning
	case streaming.EventError, streaming.EventInvalid, streaming.EventInvalidPassword:
		return colors.Error
	case streaming.EventUnknown:
		return colors.Unknown
	case streaming.EventSay, streaming.EventGuideBot:
		return colors.Chat
	case streaming.EventKill, streaming.EventDeath, streaming.EventSuicide, streaming.EventRobotDeath:
		return colors.Combat
	case streaming.EventJoined, streaming.EventLeft, streaming.EventDisconnected:
		return colors.Presence
	case streaming.EventKicked, streaming.EventBanned:
		return colors.Admin
	}
	return colors.Other
}

// FormatEvent renders ev as one line. With colored set the result is tview
// markup, otherwise plain text.
func FormatEvent(ev streaming.Event, colored bool) string {
	return formatLine(ev.Timestamp, ev.Kind, describe(ev, colored), colored)
}

// FormatRecord renders a journal record the way FormatEvent renders the
// event it came from.
func FormatRecord(rec database.Record, colored bool) string {
	body := text(rec.Line, colored)
	if rec.Line == "" {
		body = escaped(string(rec.Data), colored)
	}
	return formatLine(rec.RecordedAt, rec.Kind, body, colored)
}

func formatLine(at time.Time, kind streaming.Kind, body string, colored bool) string {
	if at.IsZero() {
		at = time.Now()
	}
	stamp := at.Format(timeLayout)

	if colored {
		stampTag := theme.Tag(theme.Current().EventColors().Timestamp)
		return fmt.Sprintf("%s%s[-] %s%-10s[-] %s", stampTag, stamp, theme.Tag(kindColor(kind)), kind, body)
	}
	return fmt.Sprintf("%s %-10s %s", stamp, kind, body)
}

func describe(ev streaming.Event, colored bool) string {
	switch data := ev.Data.(type) {
	case streaming.Setting:
		return data.Name + ": " + settingValue(data, colored)
	case streaming.ErrorData:
		if data.Err == nil {
			return "unknown error"
		}
		return escaped(data.Err.Error(), colored)
	case streaming.CloseData:
		if data.HadError {
			return "connection closed after an error"
		}
		return "connection closed"
	}

	switch ev.Kind {
	case streaming.EventConnected:
		return "connected"
	case streaming.EventEnd:
		return "server ended the stream"
	case streaming.EventTimeout:
		return "no data received"
	}
	return text(ev.Line, colored)
}

func settingValue(s streaming.Setting, colored bool) string {
	switch v := s.Value.(type) {
	case nil:
		return "none"
	case bool:
		if v {
			return "on"
		}
		return "off"
	case int:
		if streaming.DurationSettings[s.Name] {
			return durafmt.Parse(time.Duration(v) * time.Second).String()
		}
		return strconv.Itoa(v)
	case string:
		return text(v, colored)
	case streaming.PlayerRole:
		return text(v.Player, colored) + " (" + v.Role + ")"
	case streaming.Address:
		return v.IP + ":" + strconv.Itoa(v.Port)
	default:
		return fmt.Sprint(v)
	}
}

// text renders 8-bit server text.
func text(raw string, colored bool) string {
	if colored {
		return markup.ToDisplay(raw)
	}
	return markup.Strip(raw)
}

// escaped renders UTF-8 text of local origin.
func escaped(s string, colored bool) string {
	if colored {
		return tview.Escape(s)
	}
	return s
}
