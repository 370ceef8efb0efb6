package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"d3console/internal/config"
	"d3console/internal/console/streaming"
	"d3console/internal/log"
)

const readBufferSize = 4096

// Dialer opens the TCP connection. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Observer is told about traffic as it happens. The metrics package provides one.
type Observer interface {
	BytesReceived(n int)
	BytesSent(n int)
}

type nopObserver struct{}

func (nopObserver) BytesReceived(int) {}
func (nopObserver) BytesSent(int)     {}

// Option configures a Console.
type Option func(*Console)

// WithDialer replaces the default net.Dialer.
func WithDialer(d Dialer) Option {
	return func(c *Console) { c.dialer = d }
}

// WithObserver reports traffic to o.
func WithObserver(o Observer) Option {
	return func(c *Console) { c.observer = o }
}

// Stats are the traffic counters of a Console over its lifetime.
type Stats struct {
	BytesReceived uint64
	BytesSent     uint64
	Lines         uint64
}

// session is one TCP connection and its reader goroutine.
type session struct {
	conn    net.Conn
	done    chan struct{}
	closing atomic.Bool
}

// Console is a client for one server's remote console. It holds at most one
// live connection; every inbound line is classified and fired on the event
// bus from the reader goroutine, in arrival order.
type Console struct {
	cfg      config.Server
	dialer   Dialer
	observer Observer

	bus      *streaming.EventBus
	parser   *streaming.Parser
	pipeline *streaming.Pipeline

	connectMu sync.Mutex
	mu        sync.RWMutex
	session   *session
	connected bool

	writeMu sync.Mutex

	bytesIn  atomic.Uint64
	bytesOut atomic.Uint64
}

// New creates a Console for cfg. The configuration is checked here so a bad
// host, port or password is reported before any dial.
func New(cfg config.Server, opts ...Option) (*Console, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Console{
		cfg:      cfg,
		dialer:   &net.Dialer{},
		observer: nopObserver{},
		bus:      streaming.NewEventBus(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = streaming.NewParser(cfg.Password, c.respond)
	c.pipeline = streaming.NewPipeline(c.parser, c.bus)
	return c, nil
}

// Address returns the host:port this console connects to.
func (c *Console) Address() string {
	return c.cfg.Address()
}

// Connect dials the server and starts reading. The connected event is fired
// before Connect returns.
func (c *Console) Connect(ctx context.Context) error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	address := c.cfg.Address()
	log.Info("Connecting", "address", address)

	if c.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.DialTimeout)
		defer cancel()
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		log.Error("Connection failed", "address", address, "error", err)
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	s := &session{conn: conn, done: make(chan struct{})}
	c.pipeline.Start()

	c.mu.Lock()
	c.session = s
	c.connected = true
	c.mu.Unlock()

	log.Info("TCP connection established", "address", address)
	c.bus.Fire(streaming.Event{Kind: streaming.EventConnected})

	go c.readLoop(s)
	return nil
}

// Close ends the connection from this side. The unterminated tail is
// discarded and the close event fires from the reader goroutine; Done is
// closed once that has happened. Close does not wait, so it is safe to call
// from an event handler.
func (c *Console) Close() error {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()

	if s == nil {
		return ErrNotConnected
	}
	if !s.closing.CompareAndSwap(false, true) {
		return nil
	}

	log.Info("Closing connection", "address", c.cfg.Address())
	c.pipeline.Stop()
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("closing connection: %w", err)
	}
	return nil
}

// Done returns a channel closed when the current connection's reader has
// finished. Without a connection the channel is already closed.
func (c *Console) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return c.session.done
}

// IsConnected reports whether a connection is live.
func (c *Console) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// HandshakeState returns the login progress of the current connection.
func (c *Console) HandshakeState() streaming.HandshakeState {
	return c.parser.HandshakeState()
}

// Send writes command followed by CR LF.
func (c *Console) Send(command string) error {
	return c.write(command, true)
}

// respond answers the password prompt. The password is kept out of the raw capture.
func (c *Console) respond(password string) error {
	if err := c.write(password, false); err != nil {
		c.bus.Fire(streaming.Event{
			Kind: streaming.EventError,
			Data: streaming.ErrorData{Err: fmt.Errorf("sending password: %w", err)},
		})
		return err
	}
	return nil
}

func (c *Console) write(command string, capture bool) error {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()

	if s == nil {
		return ErrNotConnected
	}

	payload, err := EncodeCommand(command)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	n, err := s.conn.Write(payload)
	c.bytesOut.Add(uint64(n))
	c.observer.BytesSent(n)
	if err != nil {
		log.Error("Write failed", "error", err)
		return fmt.Errorf("failed to send command: %w", err)
	}

	if capture {
		log.LogDataChunk(">>", payload)
	}
	return nil
}

// Subscribe registers handler for one event kind and returns its id.
func (c *Console) Subscribe(kind streaming.Kind, handler streaming.Handler) string {
	return c.bus.Subscribe(kind, handler)
}

// SubscribeAll registers handler for every event, raw lines included.
func (c *Console) SubscribeAll(handler streaming.Handler) string {
	return c.bus.SubscribeAll(handler)
}

// Unsubscribe removes the handler registered under id.
func (c *Console) Unsubscribe(id string) {
	c.bus.Unsubscribe(id)
}

// Stats returns traffic totals across all connections of this console.
func (c *Console) Stats() Stats {
	_, lines := c.pipeline.GetStats()
	return Stats{
		BytesReceived: c.bytesIn.Load(),
		BytesSent:     c.bytesOut.Load(),
		Lines:         lines,
	}
}

func (c *Console) readLoop(s *session) {
	defer close(s.done)

	buffer := make([]byte, readBufferSize)
	for {
		if c.cfg.IdleTimeout > 0 {
			_ = s.conn.SetReadDeadline(time.Now().Add(c.cfg.IdleTimeout))
		}

		n, err := s.conn.Read(buffer)
		if n > 0 {
			chunk := buffer[:n]
			c.bytesIn.Add(uint64(n))
			c.observer.BytesReceived(n)
			c.capture(chunk)
			c.pipeline.Write(chunk)
		}
		if err == nil {
			continue
		}

		switch {
		case s.closing.Load():
			c.teardown(s, false)
			return

		case errors.Is(err, io.EOF):
			log.Info("Server closed the connection", "address", c.cfg.Address())
			c.pipeline.Finish()
			c.bus.Fire(streaming.Event{Kind: streaming.EventEnd})
			c.teardown(s, false)
			return

		case errors.Is(err, os.ErrDeadlineExceeded):
			log.Debug("Connection idle", "timeout", c.cfg.IdleTimeout)
			c.bus.Fire(streaming.Event{Kind: streaming.EventTimeout})

		default:
			log.Error("Read failed", "address", c.cfg.Address(), "error", err)
			c.bus.Fire(streaming.Event{Kind: streaming.EventError, Data: streaming.ErrorData{Err: err}})
			c.teardown(s, true)
			return
		}
	}
}

// teardown releases the connection and fires close exactly once per session.
func (c *Console) teardown(s *session, hadError bool) {
	_ = s.conn.Close()
	c.pipeline.Stop()
	c.pipeline.Discard()

	c.mu.Lock()
	if c.session == s {
		c.session = nil
		c.connected = false
	}
	c.mu.Unlock()

	log.Info("Disconnected", "address", c.cfg.Address(), "had_error", hadError)
	c.bus.Fire(streaming.Event{Kind: streaming.EventClose, Data: streaming.CloseData{HadError: hadError}})
}

// capture writes an inbound chunk to the raw capture with the password echo masked.
func (c *Console) capture(chunk []byte) {
	if c.cfg.Password != "" && bytes.Contains(chunk, []byte(c.cfg.Password)) {
		chunk = bytes.ReplaceAll(chunk, []byte(c.cfg.Password), []byte("********"))
	}
	log.LogDataChunk("<<", chunk)
}
