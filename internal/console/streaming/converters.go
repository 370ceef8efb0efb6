package streaming

import (
	"strconv"
	"strings"
)

// Converters for captured fields. Patterns only capture well-formed numbers,
// so parse failures fall back to zero.

func toInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func toFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// toColumn reads a fixed-width score column. Padding is removed and an
// all-blank column reads as zero.
func toColumn(s string) int {
	return toInt(strings.ReplaceAll(s, " ", ""))
}

func onOff(s string) bool {
	return s == "On"
}

// optionalInt returns nil when s is the server's "no limit" word.
func optionalInt(s, unset string) *int {
	if s == unset {
		return nil
	}
	n := toInt(s)
	return &n
}

// clockSeconds totals an [hours:][minutes:]seconds reading. Missing parts are zero.
func clockSeconds(hours, minutes, seconds string) int {
	return toInt(hours)*3600 + toInt(minutes)*60 + toInt(seconds)
}

// hudLevel normalizes the server HUD name level to Full, Team or None.
func hudLevel(s string) string {
	if s == "Team Only" {
		return "Team"
	}
	return s
}
