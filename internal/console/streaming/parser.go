package streaming

import (
	"sync"

	"d3console/internal/log"
)

// Responder writes a reply line to the server. The console supplies one that
// goes through its command encoder.
type Responder func(text string) error

// HandshakeState tracks the password exchange of one connection.
type HandshakeState int

const (
	HandshakeIdle HandshakeState = iota
	HandshakePasswordSent
	HandshakeComplete
)

func (s HandshakeState) String() string {
	switch s {
	case HandshakePasswordSent:
		return "password sent"
	case HandshakeComplete:
		return "logged in"
	default:
		return "idle"
	}
}

// Parser classifies lines against the rule table and answers the password prompt.
type Parser struct {
	rules    []Rule
	password string
	respond  Responder

	mu        sync.RWMutex
	handshake HandshakeState
}

// NewParser creates a parser that answers the login prompt with password
// through respond. A nil responder only logs the prompt.
func NewParser(password string, respond Responder) *Parser {
	return &Parser{
		rules:    ruleTable,
		password: password,
		respond:  respond,
	}
}

// Classify turns one reassembled line into an event. It reports false for
// lines that produce no event: blank lines, the password prompt, the echo of
// the password and ignored banner or help text.
func (p *Parser) Classify(line string) (Event, bool) {
	if line == "" || p.IsPasswordEcho(line) {
		return Event{}, false
	}

	wide := widen(line)
	for _, rule := range p.rules {
		m, ok := matchWide(rule.Pattern, wide)
		if !ok {
			continue
		}

		ev := rule.Handle(m)
		switch ev.Kind {
		case kindIgnored:
			return Event{}, false
		case kindPasswordPrompt:
			p.sendPassword()
			return Event{}, false
		case EventLoggedIn:
			p.setHandshake(HandshakeComplete)
			log.Info("Logged in to server", "ip", ev.Data.(IPData).IP)
		}

		ev.Line = line
		return ev, true
	}

	log.Debug("Unrecognized line", "line", line)
	return Event{Kind: EventUnknown, Line: line, Data: UnknownData{Line: line}}, true
}

// IsPasswordEcho reports whether line is the server echoing the password back.
func (p *Parser) IsPasswordEcho(line string) bool {
	return p.password != "" && line == p.password
}

// HandshakeState returns the progress of the login exchange.
func (p *Parser) HandshakeState() HandshakeState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.handshake
}

// Reset returns the handshake to idle for a new connection.
func (p *Parser) Reset() {
	p.setHandshake(HandshakeIdle)
}

func (p *Parser) setHandshake(state HandshakeState) {
	p.mu.Lock()
	p.handshake = state
	p.mu.Unlock()
}

func (p *Parser) sendPassword() {
	if p.respond == nil {
		log.Warn("Password prompt received with no responder")
		return
	}

	if err := p.respond(p.password); err != nil {
		log.Error("Failed to send password", "error", err)
		return
	}
	p.setHandshake(HandshakePasswordSent)
	log.Debug("Password sent")
}
