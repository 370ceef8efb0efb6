package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
	"d3console/internal/theme"
)

var stamp = time.Date(2024, 1, 2, 13, 4, 5, 0, time.Local)

func plain(kind streaming.Kind, body string) string {
	return fmt.Sprintf("13:04:05 %-10s %s", kind, body)
}

func TestFormatEvent_Plain(t *testing.T) {
	tests := []struct {
		name string
		ev   streaming.Event
		want string
	}{
		{
			name: "server line without markers",
			ev:   streaming.Event{Kind: streaming.EventSay, Line: "*\x01\xff\x01\x01Bob says: h\xe9", Timestamp: stamp},
			want: plain(streaming.EventSay, "*Bob says: hé"),
		},
		{
			name: "duration setting",
			ev: streaming.Event{
				Kind:      streaming.EventGameInfo,
				Data:      streaming.Setting{Name: streaming.SettingTimeLeft, Value: 90},
				Timestamp: stamp,
			},
			want: plain(streaming.EventGameInfo, "timeLeft: 1 minute 30 seconds"),
		},
		{
			name: "unset setting",
			ev: streaming.Event{
				Kind:      streaming.EventGameInfo,
				Data:      streaming.Setting{Name: streaming.SettingTimeLimit},
				Timestamp: stamp,
			},
			want: plain(streaming.EventGameInfo, "timeLimit: none"),
		},
		{
			name: "boolean setting",
			ev: streaming.Event{
				Kind:      streaming.EventGameInfo,
				Data:      streaming.Setting{Name: streaming.SettingAutoBalance, Value: true},
				Timestamp: stamp,
			},
			want: plain(streaming.EventGameInfo, "autoBalance: on"),
		},
		{
			name: "address setting",
			ev: streaming.Event{
				Kind:      streaming.EventPlayerInfo,
				Data:      streaming.Setting{Name: streaming.SettingAddress, Value: streaming.Address{IP: "10.0.0.7", Port: 2092}},
				Timestamp: stamp,
			},
			want: plain(streaming.EventPlayerInfo, "address: 10.0.0.7:2092"),
		},
		{
			name: "role setting",
			ev: streaming.Event{
				Kind:      streaming.EventPlayerInfo,
				Data:      streaming.Setting{Name: streaming.SettingPlayer, Value: streaming.PlayerRole{Player: "Bob", Role: "Server"}},
				Timestamp: stamp,
			},
			want: plain(streaming.EventPlayerInfo, "player: Bob (Server)"),
		},
		{
			name: "transport error",
			ev:   streaming.Event{Kind: streaming.EventError, Data: streaming.ErrorData{Err: errors.New("connection reset")}, Timestamp: stamp},
			want: plain(streaming.EventError, "connection reset"),
		},
		{
			name: "close after error",
			ev:   streaming.Event{Kind: streaming.EventClose, Data: streaming.CloseData{HadError: true}, Timestamp: stamp},
			want: plain(streaming.EventClose, "connection closed after an error"),
		},
		{
			name: "connected",
			ev:   streaming.Event{Kind: streaming.EventConnected, Timestamp: stamp},
			want: plain(streaming.EventConnected, "connected"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEvent(tt.ev, false))
		})
	}
}

func TestFormatEvent_Colored(t *testing.T) {
	got := FormatEvent(streaming.Event{
		Kind:      streaming.EventKill,
		Line:      "\x01\x10\x20\x30[x]Bob killed Al",
		Timestamp: stamp,
	}, true)

	colors := theme.Current().EventColors()
	assert.Contains(t, got, theme.Tag(colors.Timestamp)+"13:04:05[-]")
	assert.Contains(t, got, theme.Tag(colors.Combat)+"kill")
	assert.Contains(t, got, "[#102030][x[]Bob killed Al[-]")
}

func TestFormatEvent_ColoredEscapesLocalErrors(t *testing.T) {
	got := FormatEvent(streaming.Event{
		Kind:      streaming.EventError,
		Data:      streaming.ErrorData{Err: errors.New("bad [red] input")},
		Timestamp: stamp,
	}, true)

	assert.Contains(t, got, theme.Tag(theme.Current().EventColors().Error)+"error")
	assert.Contains(t, got, "bad [red[] input")
}

func TestFormatRecord(t *testing.T) {
	rec := database.Record{
		Kind:       streaming.EventSay,
		Line:       "*Bob says: hi",
		RecordedAt: stamp,
	}
	assert.Equal(t, plain(streaming.EventSay, "*Bob says: hi"), FormatRecord(rec, false))

	transport := database.Record{
		Kind:       streaming.EventError,
		Data:       []byte(`{"error":"boom"}`),
		RecordedAt: stamp,
	}
	assert.Equal(t, plain(streaming.EventError, `{"error":"boom"}`), FormatRecord(transport, false))
}
