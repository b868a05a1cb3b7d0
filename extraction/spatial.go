package extraction

import "math"

// rowJitter is how many bands above and below a fragment's own band still
// count as "the same printed line". OCR rarely keeps the vertical centers of
// a label and its value in the same band.
const rowJitter = 2

// rowIndex buckets fragment indexes by discretized vertical center so
// same-row lookups stay near O(1) regardless of fragment count. Built once
// per receipt and read-only during matching.
type rowIndex struct {
	bands   int
	buckets map[int][]int
}

func newRowIndex(frags []DetectedFragment, bands int) *rowIndex {
	idx := &rowIndex{bands: bands, buckets: make(map[int][]int)}
	for i, f := range frags {
		b := idx.bucket(f.Box)
		idx.buckets[b] = append(idx.buckets[b], i)
	}
	return idx
}

// bucket is a pure function of the box's vertical center: the same input
// always lands in the same band.
func (r *rowIndex) bucket(b BoundingBox) int {
	return int(math.Floor(b.MidY() * float64(r.bands)))
}

// neighbors returns the indexes of fragments bucketed within rowJitter bands
// of b, in reading order within each band.
func (r *rowIndex) neighbors(b BoundingBox) []int {
	base := r.bucket(b)
	var out []int
	for band := base - rowJitter; band <= base+rowJitter; band++ {
		out = append(out, r.buckets[band]...)
	}
	return out
}
