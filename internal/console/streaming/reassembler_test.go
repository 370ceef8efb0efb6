package streaming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedAll(r *Reassembler, chunks ...string) []string {
	var lines []string
	for _, c := range chunks {
		lines = append(lines, r.Feed([]byte(c))...)
	}
	return lines
}

func TestReassembler_Examples(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []string
		lines   []string
		pending int
	}{
		{"split line", []string{"Hel", "lo\r\n"}, []string{"Hello"}, 0},
		{"two lines and a tail", []string{"A\r\nB\r\nC"}, []string{"A", "B"}, 1},
		{"terminator run split across chunks", []string{"X\r", "\nY\n"}, []string{"X", "Y"}, 0},
		{"nul terminates", []string{"A\x00B\x00"}, []string{"A", "B"}, 0},
		{"mixed run is one separator", []string{"A\r\n\x00\n\rB\n"}, []string{"A", "B"}, 0},
		{"leading run yields one empty line", []string{"\r\n\r\nA\n"}, []string{"", "A"}, 0},
		{"no terminator", []string{"partial"}, nil, 7},
		{"empty chunk", []string{""}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReassembler()
			assert.Equal(t, tt.lines, feedAll(r, tt.chunks...))
			assert.Equal(t, tt.pending, r.Pending())
		})
	}
}

func TestReassembler_ChunkIndependence(t *testing.T) {
	stream := "\r\nEnter Password:\r\n\x00secret\r\nRemote host 1.2.3.4 logged in.\n\r*\x01\x64\xff\x64Bob\x01\x01\xff\x01 was killed\r\n\r\ntail"

	whole := NewReassembler()
	want := whole.Feed([]byte(stream))
	wantTail, _ := whole.Flush()

	for i := 0; i <= len(stream); i++ {
		for j := i; j <= len(stream); j++ {
			r := NewReassembler()
			got := feedAll(r, stream[:i], stream[i:j], stream[j:])
			tail, _ := r.Flush()

			if !assert.Equal(t, want, got, "split at %d/%d", i, j) {
				return
			}
			assert.Equal(t, wantTail, tail)
		}
	}
}

func TestReassembler_BytesPreserved(t *testing.T) {
	r := NewReassembler()
	lines := r.Feed([]byte{0x01, 0x64, 0xff, 0x64, 'B', 0x80, 0xad, '\n'})

	assert.Equal(t, []string{"\x01\x64\xff\x64B\x80\xad"}, lines)
}

func TestReassembler_FlushAndReset(t *testing.T) {
	r := NewReassembler()
	r.Feed([]byte("abc"))

	line, ok := r.Flush()
	assert.True(t, ok)
	assert.Equal(t, "abc", line)

	_, ok = r.Flush()
	assert.False(t, ok)

	r.Feed([]byte("def"))
	r.Reset()
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, []string{"ghi"}, r.Feed([]byte("ghi\r\n")))
}

func TestReassembler_ResetClearsTerminatorRun(t *testing.T) {
	r := NewReassembler()
	r.Feed([]byte("A\r"))
	r.Reset()

	// A fresh stream starting with a terminator yields one empty line.
	assert.Equal(t, []string{""}, r.Feed([]byte("\n")))
}
