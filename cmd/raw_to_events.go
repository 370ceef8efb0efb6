package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"d3console/internal/console/streaming"
	"d3console/internal/tui"
)

// maskedPassword is what the capture file holds in place of the password echo.
const maskedPassword = "********"

// CaptureChunk is one inbound chunk from a raw capture file
type CaptureChunk struct {
	Data []byte
	Line int // Line number in the capture file
}

func main() {
	var (
		captureFile = flag.String("capture", "raw.log", "Path to the raw capture file")
		startLine   = flag.Int("start-line", 1, "Starting line number (1-based)")
		endLine     = flag.Int("end-line", -1, "Ending line number (1-based, -1 for end of file)")
		showRaw     = flag.Bool("raw", false, "Also print raw line events")
		asJSON      = flag.Bool("json", false, "Print one JSON object per event")
	)
	flag.Parse()

	chunks, err := parseCaptureWithRange(*captureFile, *startLine, *endLine)
	if err != nil {
		fmt.Printf("Error parsing capture file: %v\n", err)
		os.Exit(1)
	}

	if err := replay(chunks, os.Stdout, *showRaw, *asJSON); err != nil {
		fmt.Printf("Error replaying capture: %v\n", err)
		os.Exit(1)
	}
}

// parseCaptureWithRange reads the "<<" chunks of a capture file. Outbound
// ">>" chunks are skipped.
func parseCaptureWithRange(filename string, startLine, endLine int) ([]CaptureChunk, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var chunks []CaptureChunk
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	currentLine := 0

	for scanner.Scan() {
		currentLine++
		if currentLine < startLine {
			continue
		}
		if endLine != -1 && currentLine > endLine {
			break
		}

		quoted, ok := strings.CutPrefix(scanner.Text(), "<< ")
		if !ok {
			continue
		}
		data, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", currentLine, err)
		}
		chunks = append(chunks, CaptureChunk{Data: []byte(data), Line: currentLine})
	}

	return chunks, scanner.Err()
}

type jsonEvent struct {
	Kind streaming.Kind `json:"kind"`
	Line string         `json:"line,omitempty"`
	Data any            `json:"data,omitempty"`
}

// replay feeds chunks through a fresh pipeline as if they came off the wire
// and prints every event in order.
func replay(chunks []CaptureChunk, out io.Writer, showRaw, asJSON bool) error {
	// The no-op responder lets the handshake advance so the masked echo is
	// suppressed the same way the live console suppresses the real one.
	parser := streaming.NewParser(maskedPassword, func(string) error { return nil })
	bus := streaming.NewEventBus()
	pipeline := streaming.NewPipeline(parser, bus)

	var writeErr error
	enc := json.NewEncoder(out)
	bus.SubscribeAll(func(ev streaming.Event) {
		if writeErr != nil || (ev.Kind == streaming.EventRaw && !showRaw) {
			return
		}
		if asJSON {
			writeErr = enc.Encode(jsonEvent{Kind: ev.Kind, Line: ev.Line, Data: ev.Data})
			return
		}
		_, writeErr = fmt.Fprintln(out, tui.FormatEvent(ev, false))
	})

	pipeline.Start()
	for _, chunk := range chunks {
		pipeline.Write(chunk.Data)
	}
	pipeline.Finish()
	pipeline.Stop()

	return writeErr
}
