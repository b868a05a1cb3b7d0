package extraction

import (
	"strings"
	"time"
)

// dateLayouts is tried in order. Day-first layouts come before ISO because
// the receipts this engine sees overwhelmingly print the day first.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate returns the first layout that accepts the raw string, or nil.
// Impossible calendar dates such as "31/02/2024" fail every layout and come
// back nil rather than as an error.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
