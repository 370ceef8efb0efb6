package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d3console/internal/console"
	"d3console/internal/console/database"
	"d3console/internal/console/streaming"
)

type fakeConsole struct {
	sent     []string
	closed   int
	sendErr  error
	closeErr error
}

func (f *fakeConsole) Connect(context.Context) error { return nil }
func (f *fakeConsole) Close() error {
	f.closed++
	return f.closeErr
}
func (f *fakeConsole) IsConnected() bool { return true }
func (f *fakeConsole) Address() string   { return "game.example:2092" }
func (f *fakeConsole) Send(command string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, command)
	return nil
}
func (f *fakeConsole) HandshakeState() streaming.HandshakeState { return streaming.HandshakeComplete }
func (f *fakeConsole) Stats() console.Stats                     { return console.Stats{} }
func (f *fakeConsole) SubscribeAll(streaming.Handler) string    { return "sub_1" }
func (f *fakeConsole) Unsubscribe(string)                       {}

type fakeHistory struct {
	query   database.Query
	records []database.Record
}

func (f *fakeHistory) Recent(_ context.Context, q database.Query) ([]database.Record, error) {
	f.query = q
	return f.records, nil
}

type capturePrinter struct {
	info    []string
	errs    []error
	records []database.Record
}

func (p *capturePrinter) Info(text string)           { p.info = append(p.info, text) }
func (p *capturePrinter) Error(err error)            { p.errs = append(p.errs, err) }
func (p *capturePrinter) Record(rec database.Record) { p.records = append(p.records, rec) }

func newTestCommander(history *fakeHistory) (*Commander, *fakeConsole, *capturePrinter) {
	c := &fakeConsole{}
	p := &capturePrinter{}
	if history == nil {
		return NewCommander(c, nil, p), c, p
	}
	return NewCommander(c, history, p), c, p
}

func TestCommander_SendsPlainInput(t *testing.T) {
	cm, c, p := newTestCommander(nil)
	ctx := context.Background()

	cm.Execute(ctx, "  $scores  ")
	cm.Execute(ctx, "say café")
	cm.Execute(ctx, "   ")

	assert.Equal(t, []string{"$scores", "say caf\xe9"}, c.sent)
	assert.Empty(t, p.errs)
}

func TestCommander_SendError(t *testing.T) {
	cm, c, p := newTestCommander(nil)
	c.sendErr = console.ErrNotConnected

	cm.Execute(context.Background(), "$players")
	require.Len(t, p.errs, 1)
	assert.ErrorIs(t, p.errs[0], console.ErrNotConnected)
}

func TestCommander_Color(t *testing.T) {
	cm, c, p := newTestCommander(nil)
	ctx := context.Background()

	cm.Execute(ctx, "/color 255 128 1 Red  team  wins")
	require.Equal(t, []string{"say \x01\xff\x80\x01Red  team  wins"}, c.sent)

	cm.Execute(ctx, "/color 3.5 1 1 nope")
	cm.Execute(ctx, "/color 0 1 1 nope")
	cm.Execute(ctx, "/color red 1 1 nope")
	cm.Execute(ctx, "/color 1 1 1")
	assert.Len(t, c.sent, 1)
	require.Len(t, p.errs, 4)

	var verr *console.ValidationError
	assert.True(t, errors.As(p.errs[0], &verr))
	assert.Equal(t, "red", verr.Field)
}

func TestCommander_History(t *testing.T) {
	history := &fakeHistory{records: []database.Record{{Kind: streaming.EventKill}, {Kind: streaming.EventKill}}}
	cm, _, p := newTestCommander(history)

	cm.Execute(context.Background(), "/history KILL 5")
	assert.Equal(t, database.Query{Kind: streaming.EventKill, Limit: 5}, history.query)
	assert.Len(t, p.records, 2)

	history.records = nil
	cm.Execute(context.Background(), "/history")
	assert.Equal(t, database.Query{}, history.query)
	assert.Equal(t, []string{"No journaled events"}, p.info)
}

func TestCommander_HistoryWithoutJournal(t *testing.T) {
	cm, _, p := newTestCommander(nil)
	cm.Execute(context.Background(), "/history")

	require.Len(t, p.errs, 1)
	assert.ErrorIs(t, p.errs[0], errNoJournal)
}

func TestCommander_LocalCommands(t *testing.T) {
	cm, c, p := newTestCommander(nil)

	var connects, quits int
	cm.SetCallbacks(func() { connects++ }, func() { quits++ })

	ctx := context.Background()
	cm.Execute(ctx, "/connect")
	cm.Execute(ctx, "/close")
	cm.Execute(ctx, "/quit")
	cm.Execute(ctx, "/help")
	cm.Execute(ctx, "/frobnicate")

	assert.Equal(t, 1, connects)
	assert.Equal(t, 1, quits)
	assert.Equal(t, 1, c.closed)
	assert.Empty(t, c.sent)
	require.Len(t, p.info, 1)
	assert.Contains(t, p.info[0], "/history")
	require.Len(t, p.errs, 1)
	assert.Contains(t, p.errs[0].Error(), "/frobnicate")
}
