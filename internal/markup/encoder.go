package markup

import (
	"golang.org/x/text/encoding/charmap"

	"d3console/internal/console"
)

// Encode converts UTF-8 input into the 8-bit form the server expects.
// Characters Windows-1252 cannot represent become '?'.
func Encode(text string) string {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}

// Colorize prefixes text with a color marker for the given channels and
// encodes it for sending. Channels must be whole numbers in 1-255.
func Colorize(red, green, blue float64, text string) (string, error) {
	marker, err := console.ColorMarkerFloat(red, green, blue)
	if err != nil {
		return "", err
	}
	return marker + Encode(text), nil
}
