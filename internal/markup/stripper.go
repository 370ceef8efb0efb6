package markup

import "strings"

// Strip returns the plain UTF-8 text of a raw server line with color
// markers and control bytes removed.
func Strip(line string) string {
	var b strings.Builder
	for _, seg := range split(line) {
		b.WriteString(decode(seg.text))
	}
	return b.String()
}
