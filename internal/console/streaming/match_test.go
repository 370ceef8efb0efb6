package streaming

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_ControlBytes(t *testing.T) {
	re := regexp.MustCompile(`^\*` + playerMarkup + ` was killed$`)

	m, ok := match(re, "*\x01\x64\xff\x64Bob\x01\x01\xff\x01 was killed")
	require.True(t, ok)
	assert.Equal(t, []string{"Bob"}, m)

	_, ok = match(re, "*\x01\x64\xfe\x64Bob\x01\x01\xff\x01 was killed")
	assert.False(t, ok)
}

func TestMatch_HighBytesSurviveCapture(t *testing.T) {
	re := regexp.MustCompile(`^\*(.*) says: (.*)$`)

	m, ok := match(re, "*P\xe9t\xe9 says: caf\xe9 \x80\xff")
	require.True(t, ok)
	assert.Equal(t, "P\xe9t\xe9", m[0])
	assert.Equal(t, "caf\xe9 \x80\xff", m[1])
}

func TestMatch_UnmatchedOptionalGroup(t *testing.T) {
	re := regexp.MustCompile(`^Time Left: ` + clock + `$`)

	m, ok := match(re, "Time Left: 12 seconds")
	require.True(t, ok)
	assert.Equal(t, []string{"", "", "12"}, m)
}

func TestMatch_WholeLineOnly(t *testing.T) {
	rule := newRule("test", `Ending level\.`, signal(EventEndLevel))

	_, ok := match(rule.Pattern, "Ending level.")
	assert.True(t, ok)
	_, ok = match(rule.Pattern, "Ending level. now")
	assert.False(t, ok)
	_, ok = match(rule.Pattern, "xEnding level.")
	assert.False(t, ok)
}
