package markup

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/text/encoding/charmap"
)

// markerByte starts an in-band color marker: it is followed by one byte each
// of red, green and blue.
const markerByte = 0x01

// segment is a run of text in one color.
type segment struct {
	color   tcell.Color
	colored bool
	text    []byte
}

// split walks an 8-bit line and cuts it at color markers. Control bytes
// other than markers are dropped. A marker truncated by the end of the line
// is dropped too.
func split(line string) []segment {
	segments := []segment{{}}
	current := &segments[0]

	for i := 0; i < len(line); i++ {
		b := line[i]
		switch {
		case b == markerByte:
			if i+3 >= len(line) {
				return segments
			}
			color := tcell.NewRGBColor(int32(line[i+1]), int32(line[i+2]), int32(line[i+3]))
			segments = append(segments, segment{color: color, colored: true})
			current = &segments[len(segments)-1]
			i += 3

		case b < 0x20 || b == 0x7f:
			// tabs become spaces, everything else disappears
			if b == '\t' {
				current.text = append(current.text, ' ')
			}

		default:
			current.text = append(current.text, b)
		}
	}

	return segments
}

// decode turns 8-bit text into UTF-8. Game text is Windows-1252.
func decode(text []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(text)
	if err != nil {
		// every byte maps to some rune in Windows-1252; fall back to Latin-1
		out, _ = charmap.ISO8859_1.NewDecoder().Bytes(text)
	}
	return string(out)
}

// ToDisplay converts a raw server line into tview markup: color markers
// become [#rrggbb] tags, text is decoded to UTF-8 and escaped so square
// brackets in player names are shown literally. A colored line ends with a
// reset tag so the color does not bleed into the next line.
func ToDisplay(line string) string {
	var b strings.Builder
	colored := false

	for _, seg := range split(line) {
		if seg.colored {
			fmt.Fprintf(&b, "[#%06x]", seg.color.Hex())
			colored = true
		}
		b.WriteString(tview.Escape(decode(seg.text)))
	}

	if colored {
		b.WriteString("[-]")
	}
	return b.String()
}
