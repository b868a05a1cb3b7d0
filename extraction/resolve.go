package extraction

import (
	"math"
	"strconv"
	"strings"
)

// resolveFields walks fragments in reading order. Each unconsumed fragment
// becomes a label candidate for the first unresolved field whose alias its
// lower-cased text contains, and the value is then resolved inline or from
// the nearest unconsumed fragment to its right on the same row. A fragment
// index is consumed by at most one field.
func (e *Engine) resolveFields(frags []DetectedFragment, idx *rowIndex, st *state) {
	for i, f := range frags {
		if st.consumed[i] {
			continue
		}

		field, ok := e.matchField(strings.ToLower(f.Text), st)
		if !ok {
			continue
		}

		// Inline first: a hit consumes only the label fragment and the
		// spatial search must not run.
		if val, ok := e.extractInline(f.Text); ok {
			st.consumed[i] = true
			st.resolved[field] = val
			continue
		}

		if j, ok := e.nearestRight(frags, idx, st, i); ok {
			st.consumed[i] = true
			st.consumed[j] = true
			st.resolved[field] = frags[j].Text
		}
		// Neither path succeeded: the label stays unconsumed and the field
		// stays open for a later fragment.
	}
}

// matchField returns the first unresolved field whose alias appears in the
// fragment text. Table order is the tie-break when several fields match.
func (e *Engine) matchField(lower string, st *state) (string, bool) {
	for _, fd := range e.fields {
		if _, done := st.resolved[fd.Key]; done {
			continue
		}
		for _, alias := range fd.Aliases {
			if strings.Contains(lower, alias) {
				return fd.Key, true
			}
		}
	}
	return "", false
}

// extractInline pulls a value out of the label fragment itself, either after
// a "-"/":" separator or as a currency-prefixed number.
func (e *Engine) extractInline(text string) (string, bool) {
	if m := e.reInline.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := e.reCurrency.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// nearestRight finds the unconsumed fragment on the label's row whose left
// edge sits right of the label, preferring the smallest horizontal gap.
// Fragments further than MaxGap are assumed to belong to another column.
func (e *Engine) nearestRight(frags []DetectedFragment, idx *rowIndex, st *state, label int) (int, bool) {
	lb := frags[label].Box
	best, bestGap := -1, math.MaxFloat64

	for _, j := range idx.neighbors(lb) {
		if j == label || st.consumed[j] {
			continue
		}
		cb := frags[j].Box
		if cb.MinX <= lb.MaxX()-e.cfg.EdgeSlack {
			continue
		}
		gap := cb.MinX - lb.MaxX()
		if gap >= e.cfg.MaxGap {
			continue
		}
		if gap < bestGap {
			best, bestGap = j, gap
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// sniffAmount adopts the first leftover bare numeric token that looks
// monetary when no "amount" label resolved. Receipt totals are frequently
// printed with no adjacent label at all.
func (e *Engine) sniffAmount(frags []DetectedFragment, st *state) {
	if _, done := st.resolved[FieldAmount]; done {
		return
	}
	for i, f := range frags {
		if st.consumed[i] {
			continue
		}
		m := e.reBare.FindStringSubmatch(f.Text)
		if m == nil || !looksMonetary(m[1]) {
			continue
		}
		st.consumed[i] = true
		st.resolved[FieldAmount] = m[1]
		return
	}
}

// looksMonetary filters out stray small integers (serial numbers, counts)
// the sniffer should not mistake for a total.
func looksMonetary(token string) bool {
	if strings.Contains(token, ".") {
		return true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	return err == nil && v > 10
}
