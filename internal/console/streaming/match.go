package streaming

import (
	"regexp"

	"golang.org/x/text/encoding/charmap"
)

// Lines are raw 8-bit strings. Go's regexp reads UTF-8, so a line is widened
// byte-for-rune through ISO 8859-1 before matching and captures are narrowed
// back. Patterns spell control bytes as code points (\x01, \xff).

func widen(line string) string {
	wide, err := charmap.ISO8859_1.NewDecoder().String(line)
	if err != nil {
		return line
	}
	return wide
}

func narrow(wide string) string {
	raw, err := charmap.ISO8859_1.NewEncoder().String(wide)
	if err != nil {
		return wide
	}
	return raw
}

// match runs re against the whole of line and returns the capture groups as
// raw byte strings. Groups that did not participate are "".
func match(re *regexp.Regexp, line string) ([]string, bool) {
	return matchWide(re, widen(line))
}

func matchWide(re *regexp.Regexp, wide string) ([]string, bool) {
	m := re.FindStringSubmatch(wide)
	if m == nil {
		return nil, false
	}

	captures := make([]string, len(m)-1)
	for i, c := range m[1:] {
		captures[i] = narrow(c)
	}
	return captures, true
}
