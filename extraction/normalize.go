package extraction

import (
	"sort"
	"strings"
)

// normalize drops fragments below the confidence floor, trims whitespace and
// orders the survivors top to bottom. Every later heuristic assumes this
// reading order.
func (e *Engine) normalize(in []DetectedFragment) []DetectedFragment {
	out := make([]DetectedFragment, 0, len(in))
	for _, f := range in {
		if f.Confidence < e.cfg.ConfidenceFloor {
			continue
		}
		f.Text = strings.TrimSpace(f.Text)
		if f.Text == "" {
			continue
		}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Box.MidY() < out[j].Box.MidY()
	})

	return out
}
