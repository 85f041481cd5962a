package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts, tried in order.
var layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"02-01-2006",
}

// Date parses a date-of-birth style value against the accepted layouts.
func Date(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q, accepted formats: %s", value, strings.Join(AcceptedFormats(), ", "))
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime parses an appointment-style timestamp. Plain dates resolve to
// midnight.
func DateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}

// AcceptedFormats lists the accepted layouts for error messages.
func AcceptedFormats() []string {
	out := make([]string, len(layouts))
	copy(out, layouts)
	return out
}
