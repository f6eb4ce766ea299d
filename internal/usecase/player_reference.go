package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Jersey references inside free-text event messages come in two shapes,
// checked in priority order:
//
//	"Tor durch Mustermann (7.)"  -> parenthesized trailing number
//	"Tor durch 7. Mustermann"    -> number directly after the trigger words
var (
	jerseyParenPattern   = regexp.MustCompile(`\((\d+)\.\)`)
	jerseyTriggerPattern = regexp.MustCompile(`(?:Tor durch|durch)\s+(\d+)\.`)
)

// jerseyKey addresses one roster slot of a match: capitalized team side plus
// jersey number.
type jerseyKey struct {
	Side   string
	Number int
}

// resolvePlayerReference extracts a jersey number from the message and looks
// it up in the match's jersey map. A message without a recognizable number, or
// a number with no mapping, yields no reference. Never an error.
func resolvePlayerReference(message, side string, jerseys map[jerseyKey]string) (string, bool) {
	if message == "" || side == "" || len(jerseys) == 0 {
		return "", false
	}

	number, ok := extractJerseyNumber(message)
	if !ok {
		return "", false
	}

	playerID, ok := jerseys[jerseyKey{Side: side, Number: number}]
	if !ok || playerID == "" {
		return "", false
	}
	return playerID, true
}

func extractJerseyNumber(message string) (int, bool) {
	if m := jerseyParenPattern.FindStringSubmatch(message); m != nil {
		return parseJerseyNumber(m[1])
	}
	if m := jerseyTriggerPattern.FindStringSubmatch(message); m != nil {
		return parseJerseyNumber(m[1])
	}
	return 0, false
}

func parseJerseyNumber(raw string) (int, bool) {
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return number, true
}

// normalizeSide maps the raw team marker to the capitalized form used as
// jersey map key ("home" -> "Home").
func normalizeSide(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}
