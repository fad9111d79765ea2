package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ISODate is the canonical date layout used across the engine.
const ISODate = "2006-01-02"

// ClockLayout is the canonical 24-hour time layout.
const ClockLayout = "15:04"

// dateLayouts are tried in fixed priority order; the first successful
// parse wins.
var dateLayouts = []string{
	ISODate,        // 2024-12-21
	"2 Jan 2006",   // 21 Dec 2024
	"2 January 2006", // 21 December 2024
}

// DateFormatError reports a date string that matched none of the accepted
// input formats.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("unrecognized date %q: expected %q, \"DD MMM YYYY\" or \"DD MMMM YYYY\"", e.Input, ISODate)
}

// Date converts a heterogeneous date string into canonical YYYY-MM-DD form.
func Date(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(ISODate), nil
		}
	}
	return "", &DateFormatError{Input: raw}
}

// ClockTime validates an HH:MM string and returns its canonical form.
func ClockTime(raw string) (string, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("unrecognized time %q: expected HH:MM", raw)
	}
	return t.Format(ClockLayout), nil
}

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

// LocationName strips parenthetical suffixes from a location string,
// e.g. "Heathrow (LHR)" becomes "Heathrow".
func LocationName(raw string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(raw, ""))
}

// TerminalPhrase renders a location with its terminal as
// "{location} Terminal {n}". When the location string already embeds a
// terminal token it is returned as-is to avoid duplication.
func TerminalPhrase(location, terminal string) string {
	base := LocationName(location)
	term := strings.TrimSpace(terminal)
	if term == "" {
		return base
	}
	if strings.Contains(strings.ToLower(base), "terminal") {
		return base
	}
	term = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(term, "Terminal"), "terminal"))
	if term == "" {
		return base
	}
	return base + " Terminal " + term
}

// HotelName truncates a hotel name at the first comma, stripping trailing
// city or location suffixes commonly appended by extraction.
func HotelName(raw string) string {
	name := raw
	if idx := strings.Index(name, ","); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// PersonName trims and collapses internal whitespace in a name fragment.
func PersonName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// FirstToken returns the first whitespace-delimited token of a name, or
// the empty string when there is none.
func FirstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
