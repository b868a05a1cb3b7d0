package extraction

// BoundingBox is an axis-aligned box in the unit square. Coordinates are
// normalized by image width/height so the heuristics stay resolution
// independent.
type BoundingBox struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b BoundingBox) MaxX() float64 { return b.MinX + b.Width }

// MidY is the vertical center, the anchor for row bucketing.
func (b BoundingBox) MidY() float64 { return b.MinY + b.Height/2 }

// DetectedFragment is one OCR-recognized text span with its position and
// recognition confidence. Fragments come from the recognition collaborator;
// the engine treats them as read-only input.
type DetectedFragment struct {
	Text       string      `json:"text"`
	Box        BoundingBox `json:"box"`
	Confidence float64     `json:"confidence"` // 0..1
}
