package streaming

import (
	"sync/atomic"
)

// Pipeline carries inbound bytes through the reassembler and the parser and
// fires the resulting events. Write and Finish run on one goroutine; Stop may
// be called from any.
type Pipeline struct {
	reassembler *Reassembler
	parser      *Parser
	bus         *EventBus

	// State
	running atomic.Bool

	// Metrics
	bytesProcessed atomic.Uint64
	linesProcessed atomic.Uint64
}

// NewPipeline creates a stopped pipeline feeding bus.
func NewPipeline(parser *Parser, bus *EventBus) *Pipeline {
	return &Pipeline{
		reassembler: NewReassembler(),
		parser:      parser,
		bus:         bus,
	}
}

// Start begins a fresh stream: the reassembler and the handshake are reset.
func (p *Pipeline) Start() {
	p.reassembler.Reset()
	p.parser.Reset()
	p.running.Store(true)
}

// Stop ends emission. Lines still being processed are dropped.
func (p *Pipeline) Stop() {
	p.running.Store(false)
}

// Running reports whether the pipeline is accepting data.
func (p *Pipeline) Running() bool {
	return p.running.Load()
}

// Write feeds raw data into the pipeline
func (p *Pipeline) Write(data []byte) {
	if !p.running.Load() {
		return
	}

	p.bytesProcessed.Add(uint64(len(data)))
	for _, line := range p.reassembler.Feed(data) {
		if !p.running.Load() {
			return
		}
		p.processLine(line)
	}
}

// Finish delivers the unterminated tail as a final line. It is used when the
// remote side ends the stream.
func (p *Pipeline) Finish() {
	if !p.running.Load() {
		return
	}
	if line, ok := p.reassembler.Flush(); ok {
		p.processLine(line)
	}
}

// Discard drops the unterminated tail.
func (p *Pipeline) Discard() {
	p.reassembler.Reset()
}

func (p *Pipeline) processLine(line string) {
	p.linesProcessed.Add(1)

	if !p.parser.IsPasswordEcho(line) {
		p.bus.Fire(Event{Kind: EventRaw, Line: line})
	}

	if ev, ok := p.parser.Classify(line); ok {
		p.bus.Fire(ev)
	}
}

// GetStats returns pipeline statistics
func (p *Pipeline) GetStats() (bytesProcessed, linesProcessed uint64) {
	return p.bytesProcessed.Load(), p.linesProcessed.Load()
}
