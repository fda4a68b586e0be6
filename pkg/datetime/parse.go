// Package datetime provides date parsing and pattern translation utilities.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/lendwise/loan-ledger/pkg/constants"
)

// DateTimeLayout is the format expected in snapshot files and is also the
// output date format.
const DateTimeLayout = constants.DateTimeLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// patternTokens maps date-pattern tokens to Go reference-layout fragments,
// longest token first so "MMMM" is not consumed as two "MM".
var patternTokens = []struct {
	pattern string
	layout  string
}{
	{"yyyy", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dd", "02"},
	{"d", "2"},
	{"yy", "06"},
}

// TranslatePattern converts a date pattern in the conventional request form
// (e.g. "dd MMMM yyyy") into a Go time layout. Characters outside known
// tokens pass through unchanged.
func TranslatePattern(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, tok := range patternTokens {
			if strings.HasPrefix(pattern[i:], tok.pattern) {
				b.WriteString(tok.layout)
				i += len(tok.pattern)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

// ParseWithPattern parses a date string against a request-form date pattern.
// Month names are matched case-insensitively.
func ParseWithPattern(pattern, dateStr string) (time.Time, error) {
	layout := TranslatePattern(pattern)
	normalized := normalizeMonthNames(dateStr)
	t, err := time.Parse(layout, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q with format %q: %w", dateStr, pattern, err)
	}
	return t, nil
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}

// normalizeMonthNames title-cases the first English month name or
// abbreviation found so lowercased request input still parses against
// name-bearing layouts.
func normalizeMonthNames(s string) string {
	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		lowerName := strings.ToLower(name)
		if idx := strings.Index(lower, lowerName); idx >= 0 {
			return s[:idx] + name + s[idx+len(name):]
		}
	}
	for m := time.January; m <= time.December; m++ {
		abbr := m.String()[:3]
		lowerAbbr := strings.ToLower(abbr)
		if idx := strings.Index(lower, lowerAbbr); idx >= 0 {
			return s[:idx] + abbr + s[idx+len(abbr):]
		}
	}
	return s
}
