package extraction

import (
	"strconv"
	"strings"
)

var numericJunk = strings.NewReplacer(",", "", " ", "", " ", "", "₹", "", "$", "")

// CleanNumber strips currency symbols, thousands separators and whitespace
// from a raw numeric-field string and parses what remains. It never fails
// loudly: an unparsable leftover yields nil.
func CleanNumber(raw string) *float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range []string{"rs.", "rs", "inr", "₹", "$"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	// "450/-" is a common way of closing an amount on Indian receipts
	s = strings.TrimSuffix(s, "/-")
	s = numericJunk.Replace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
