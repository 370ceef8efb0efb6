package console

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d3console/internal/config"
	"d3console/internal/console/streaming"
)

const waitTimeout = 2 * time.Second

// fakeServer is a loopback listener standing in for the game server.
type fakeServer struct {
	ln    net.Listener
	conns chan net.Conn
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{ln: ln, conns: make(chan net.Conn, 4)}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			s.conns <- conn
		}
	}()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *fakeServer) config() config.Server {
	return config.Server{
		Host:        "127.0.0.1",
		Port:        s.ln.Addr().(*net.TCPAddr).Port,
		Password:    "secret",
		DialTimeout: time.Second,
	}
}

func (s *fakeServer) accept(t *testing.T) *serverConn {
	t.Helper()
	select {
	case conn := <-s.conns:
		t.Cleanup(func() { conn.Close() })
		return &serverConn{Conn: conn, reader: bufio.NewReader(conn)}
	case <-time.After(waitTimeout):
		t.Fatal("client never connected")
		return nil
	}
}

type serverConn struct {
	net.Conn
	reader *bufio.Reader
}

func (sc *serverConn) send(t *testing.T, data string) {
	t.Helper()
	_, err := sc.Write([]byte(data))
	require.NoError(t, err)
}

func (sc *serverConn) readLine(t *testing.T) string {
	t.Helper()
	require.NoError(t, sc.SetReadDeadline(time.Now().Add(waitTimeout)))
	line, err := sc.reader.ReadString('\n')
	require.NoError(t, err)
	return line
}

// events collects every non-raw event in firing order.
type events chan streaming.Event

func watch(c *Console) events {
	ch := make(events, 256)
	c.SubscribeAll(func(ev streaming.Event) {
		if ev.Kind == streaming.EventRaw {
			return
		}
		select {
		case ch <- ev:
		default:
		}
	})
	return ch
}

func (ch events) next(t *testing.T) streaming.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for an event")
		return streaming.Event{}
	}
}

func (ch events) expect(t *testing.T, kinds ...streaming.Kind) []streaming.Event {
	t.Helper()
	var got []streaming.Event
	for _, kind := range kinds {
		ev := ch.next(t)
		require.Equal(t, kind, ev.Kind, "event %d", len(got))
		got = append(got, ev)
	}
	return got
}

func connect(t *testing.T, cfg config.Server) (*Console, events) {
	t.Helper()

	c, err := New(cfg)
	require.NoError(t, err)
	evs := watch(c)

	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	evs.expect(t, streaming.EventConnected)
	return c, evs
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(config.Server{Host: "localhost", Port: 70000, Password: "x"})

	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "port", cfgErr.Field)
}

func TestConsole_LoginHandshake(t *testing.T) {
	srv := newFakeServer(t)
	c, evs := connect(t, srv.config())
	sc := srv.accept(t)

	assert.True(t, c.IsConnected())
	assert.Equal(t, streaming.HandshakeIdle, c.HandshakeState())

	sc.send(t, "\r\nEnter Password:\r\n")
	assert.Equal(t, "secret\r\n", sc.readLine(t))

	sc.send(t, "secret\r\nRemote host 127.0.0.1 logged in.\r\n")
	ev := evs.next(t)
	assert.Equal(t, streaming.EventLoggedIn, ev.Kind)
	assert.Equal(t, streaming.IPData{IP: "127.0.0.1"}, ev.Data)
	assert.Equal(t, streaming.HandshakeComplete, c.HandshakeState())
}

func TestConsole_DoubleConnect(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := connect(t, srv.config())
	srv.accept(t)

	assert.ErrorIs(t, c.Connect(context.Background()), ErrAlreadyConnected)
	assert.True(t, c.IsConnected())
}

func TestConsole_Send(t *testing.T) {
	srv := newFakeServer(t)

	c, err := New(srv.config())
	require.NoError(t, err)
	assert.ErrorIs(t, c.Send("$scores"), ErrNotConnected)

	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	sc := srv.accept(t)

	assert.ErrorIs(t, c.Send("bad\x00command"), ErrNulByte)

	require.NoError(t, c.Send("$scores"))
	require.NoError(t, c.Send("say \x01\xff\x80\x80hi"))
	assert.Equal(t, "$scores\r\n", sc.readLine(t))
	assert.Equal(t, "say \x01\xff\x80\x80hi\r\n", sc.readLine(t))

	assert.Equal(t, uint64(len("$scores\r\n")+len("say \x01\xff\x80\x80hi\r\n")), c.Stats().BytesSent)
}

func TestConsole_EndFlushesTail(t *testing.T) {
	srv := newFakeServer(t)
	c, evs := connect(t, srv.config())
	sc := srv.accept(t)

	sc.send(t, "Ending level.\r\nShutting down server.")
	require.NoError(t, sc.Close())

	got := evs.expect(t,
		streaming.EventEndLevel,
		streaming.EventShutdown,
		streaming.EventEnd,
		streaming.EventClose,
	)
	assert.Equal(t, streaming.CloseData{HadError: false}, got[3].Data)

	<-c.Done()
	assert.False(t, c.IsConnected())
	assert.ErrorIs(t, c.Close(), ErrNotConnected)
}

func TestConsole_CloseDiscardsTail(t *testing.T) {
	srv := newFakeServer(t)
	c, evs := connect(t, srv.config())
	sc := srv.accept(t)

	sc.send(t, "Ending level.\r\nShutting down")
	evs.expect(t, streaming.EventEndLevel)

	require.NoError(t, c.Close())
	ev := evs.next(t)
	assert.Equal(t, streaming.EventClose, ev.Kind)
	assert.Equal(t, streaming.CloseData{HadError: false}, ev.Data)

	select {
	case <-c.Done():
	case <-time.After(waitTimeout):
		t.Fatal("reader did not stop")
	}
	assert.False(t, c.IsConnected())
	assert.Empty(t, evs)
}

func TestConsole_Reconnect(t *testing.T) {
	srv := newFakeServer(t)
	c, evs := connect(t, srv.config())
	srv.accept(t)

	require.NoError(t, c.Close())
	evs.expect(t, streaming.EventClose)
	<-c.Done()

	require.NoError(t, c.Connect(context.Background()))
	evs.expect(t, streaming.EventConnected)
	sc := srv.accept(t)

	sc.send(t, "Ending level.\n")
	evs.expect(t, streaming.EventEndLevel)
}

func TestConsole_IdleTimeout(t *testing.T) {
	srv := newFakeServer(t)
	cfg := srv.config()
	cfg.IdleTimeout = 50 * time.Millisecond

	c, evs := connect(t, cfg)
	sc := srv.accept(t)

	evs.expect(t, streaming.EventTimeout)
	assert.True(t, c.IsConnected())

	// reading continues after the timeout
	sc.send(t, "Ending level.\r\n")
	for {
		ev := evs.next(t)
		if ev.Kind == streaming.EventTimeout {
			continue
		}
		assert.Equal(t, streaming.EventEndLevel, ev.Kind)
		break
	}
}

func TestConsole_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	c, err := New(config.Server{Host: "127.0.0.1", Port: port, Password: "secret", DialTimeout: time.Second})
	require.NoError(t, err)

	err = c.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to connect"))
	assert.False(t, c.IsConnected())
}

type countingObserver struct {
	received, sent chan int
}

func (o *countingObserver) BytesReceived(n int) { o.received <- n }
func (o *countingObserver) BytesSent(n int)     { o.sent <- n }

func TestConsole_Observer(t *testing.T) {
	srv := newFakeServer(t)
	obs := &countingObserver{received: make(chan int, 8), sent: make(chan int, 8)}

	c, err := New(srv.config(), WithObserver(obs))
	require.NoError(t, err)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	sc := srv.accept(t)

	require.NoError(t, c.Send("$players"))
	assert.Equal(t, len("$players\r\n"), <-obs.sent)

	sc.send(t, "hello\n")
	select {
	case n := <-obs.received:
		assert.Equal(t, len("hello\n"), n)
	case <-time.After(waitTimeout):
		t.Fatal("no bytes observed")
	}
}
