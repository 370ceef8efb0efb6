package streaming

// Reassembler turns a byte stream into lines. Any run of CR, LF or NUL bytes
// ends a line and is stripped. Bytes are kept as-is: a line is a Go string
// holding the raw 8-bit values, never decoded.
type Reassembler struct {
	pending []byte

	// afterTerminator is set while inside a terminator run, so a run split
	// across two chunks still ends exactly one line.
	afterTerminator bool
}

// NewReassembler creates an empty reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

func isTerminator(b byte) bool {
	return b == '\r' || b == '\n' || b == 0
}

// Feed consumes a chunk and returns the lines it completed, in order.
func (r *Reassembler) Feed(chunk []byte) []string {
	var lines []string

	for _, b := range chunk {
		if isTerminator(b) {
			if !r.afterTerminator {
				lines = append(lines, string(r.pending))
				r.pending = r.pending[:0]
			}
			r.afterTerminator = true
			continue
		}

		r.pending = append(r.pending, b)
		r.afterTerminator = false
	}

	return lines
}

// Flush returns the unterminated tail, if any, and clears it.
func (r *Reassembler) Flush() (string, bool) {
	if len(r.pending) == 0 {
		return "", false
	}
	line := string(r.pending)
	r.Reset()
	return line, true
}

// Pending reports how many bytes are waiting for a terminator.
func (r *Reassembler) Pending() int {
	return len(r.pending)
}

// Reset discards the unterminated tail and starts a fresh stream.
func (r *Reassembler) Reset() {
	r.pending = r.pending[:0]
	r.afterTerminator = false
}
