package console

import (
	"fmt"
	"math"
	"strings"
)

// EncodeCommand returns the wire form of a command: its bytes unchanged
// followed by CR LF. Commands are 8-bit strings; callers wanting Latin-1
// text must already hold it as raw bytes.
func EncodeCommand(command string) ([]byte, error) {
	if strings.IndexByte(command, 0) >= 0 {
		return nil, ErrNulByte
	}

	payload := make([]byte, 0, len(command)+2)
	payload = append(payload, command...)
	payload = append(payload, '\r', '\n')
	return payload, nil
}

// ColorMarker returns the four-byte in-band color marker: byte 1 followed by
// the red, green and blue channels. Channels must be 1-255 so the marker never
// carries a NUL.
func ColorMarker(red, green, blue int) (string, error) {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", red}, {"green", green}, {"blue", blue}} {
		if ch.value < 1 || ch.value > 255 {
			return "", invalidArg(ch.name, "%d is outside 1-255", ch.value)
		}
	}

	return string([]byte{1, byte(red), byte(green), byte(blue)}), nil
}

// ColorMarkerFloat is ColorMarker for untyped numeric input. Fractional
// channels are rejected.
func ColorMarkerFloat(red, green, blue float64) (string, error) {
	channels := [3]int{}
	for i, ch := range []struct {
		name  string
		value float64
	}{{"red", red}, {"green", green}, {"blue", blue}} {
		if math.IsNaN(ch.value) || math.IsInf(ch.value, 0) || ch.value != math.Trunc(ch.value) {
			return "", invalidArg(ch.name, "%s is not an integer", fmt.Sprint(ch.value))
		}
		if ch.value < 1 || ch.value > 255 {
			return "", invalidArg(ch.name, "%s is outside 1-255", fmt.Sprint(ch.value))
		}
		channels[i] = int(ch.value)
	}

	return ColorMarker(channels[0], channels[1], channels[2])
}
