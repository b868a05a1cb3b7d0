package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketIsDeterministic(t *testing.T) {
	idx := &rowIndex{bands: 100}

	box := BoundingBox{MinX: 0.1, MinY: 0.444, Width: 0.2, Height: 0.02}
	assert.Equal(t, idx.bucket(box), idx.bucket(box))
	assert.Equal(t, 45, idx.bucket(box)) // midY 0.454
}

func TestNeighborsSpanJitterWindow(t *testing.T) {
	frags := []DetectedFragment{
		frag("label", 0.10, 0.50, 0.10),          // bucket 51
		frag("same band", 0.30, 0.50, 0.10),      // bucket 51
		frag("one band up", 0.30, 0.49, 0.10),    // bucket 50
		frag("two bands down", 0.30, 0.52, 0.10), // bucket 53
		frag("far below", 0.30, 0.60, 0.10),      // bucket 61
	}

	idx := newRowIndex(frags, 100)
	got := idx.neighbors(frags[0].Box)

	assert.ElementsMatch(t, []int{0, 1, 2, 3}, got)
}

func TestNormalizeOrdersTopToBottom(t *testing.T) {
	engine := New(DefaultConfig())

	in := []DetectedFragment{
		frag("bottom", 0.1, 0.8, 0.1),
		frag("top", 0.1, 0.1, 0.1),
		frag("middle", 0.1, 0.5, 0.1),
	}

	out := engine.normalize(in)
	assert.Equal(t, []string{"top", "middle", "bottom"}, []string{out[0].Text, out[1].Text, out[2].Text})
}

func TestNormalizeTrimsAndFilters(t *testing.T) {
	engine := New(DefaultConfig())

	low := frag("Amount", 0.1, 0.2, 0.1)
	low.Confidence = 0.2
	padded := frag("  Total  ", 0.1, 0.3, 0.1)

	out := engine.normalize([]DetectedFragment{low, padded})
	assert.Len(t, out, 1)
	assert.Equal(t, "Total", out[0].Text)
}
