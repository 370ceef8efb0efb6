package streaming

import (
	"regexp"
	"strings"
)

// Rule maps one line shape to one event. Handle receives the capture groups
// as raw byte strings.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Handle  func(m []string) Event
}

// playerMarkup is the colored player name used throughout the kill feed.
const playerMarkup = `\x01\x64\xff\x64(.*)\x01\x01\xff\x01`

// newRule anchors pattern to the whole line and expands {name} to playerMarkup.
func newRule(name, pattern string, handle func(m []string) Event) Rule {
	pattern = strings.ReplaceAll(pattern, "{name}", playerMarkup)
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`^(?:` + pattern + `)$`),
		Handle:  handle,
	}
}

// ruleTable is evaluated top to bottom and the first match wins. Several
// shapes overlap (hoard score and the remote admin listing, monsterball and
// anarchy score rows, three- and one-flag captures), so the order matters.
var ruleTable = buildRuleTable()

func buildRuleTable() []Rule {
	var table []Rule
	for _, group := range [][]Rule{
		ignoredRules(),
		sessionRules(),
		replyRules(),
		scoreRules(),
		settingRules(),
		killFeedRules(),
		objectiveRules(),
		statRules(),
	} {
		table = append(table, group...)
	}
	return table
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	rules := make([]Rule, len(ruleTable))
	copy(rules, ruleTable)
	return rules
}

func event(kind Kind, data any) Event {
	return Event{Kind: kind, Data: data}
}

// signal builds a handler for lines that carry no data.
func signal(kind Kind) func([]string) Event {
	return func([]string) Event {
		return Event{Kind: kind}
	}
}

// playerOnly builds a handler for lines whose only field is a player name.
func playerOnly(kind Kind) func([]string) Event {
	return func(m []string) Event {
		return event(kind, PlayerData{Player: m[0]})
	}
}

func invalid(message string) func([]string) Event {
	return func([]string) Event {
		return event(EventInvalid, InvalidData{Message: message})
	}
}

func setting(kind Kind, name string, value func(m []string) any) func([]string) Event {
	return func(m []string) Event {
		return event(kind, Setting{Name: name, Value: value(m)})
	}
}

func first(m []string) any { return m[0] }

func firstOnOff(m []string) any { return onOff(m[0]) }

func firstInt(m []string) any { return toInt(m[0]) }
