package service

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func piece(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: size}
}

func TestRowsToFragmentsSplitsOnWordGaps(t *testing.T) {
	// "Qty" at the left, "5" across a wide gap on the same row.
	rows := pdf.Rows{
		{
			Position: 700,
			Content: pdf.TextHorizontal{
				piece("Q", 50, 700, 8, 10),
				piece("t", 58, 700, 4, 10),
				piece("y", 62, 700, 5, 10),
				piece("5", 200, 700, 6, 10),
			},
		},
	}

	fragments := rowsToFragments(rows, 612, 792)
	require.Len(t, fragments, 2)

	assert.Equal(t, "Qty", fragments[0].Text)
	assert.Equal(t, "5", fragments[1].Text)
	assert.Equal(t, 1.0, fragments[0].Confidence)

	// the value starts right of the label in unit coordinates
	assert.Greater(t, fragments[1].Box.MinX, fragments[0].Box.MaxX())
	// same printed row, same vertical band
	assert.InDelta(t, fragments[0].Box.MidY(), fragments[1].Box.MidY(), 0.001)
}

func TestRowsToFragmentsFlipsVerticalOrigin(t *testing.T) {
	// pdf Y grows upward, fragment MinY grows downward
	rows := pdf.Rows{
		{Position: 750, Content: pdf.TextHorizontal{piece("Top", 50, 750, 20, 10)}},
		{Position: 100, Content: pdf.TextHorizontal{piece("Bottom", 50, 100, 30, 10)}},
	}

	fragments := rowsToFragments(rows, 612, 792)
	require.Len(t, fragments, 2)

	assert.Less(t, fragments[0].Box.MinY, fragments[1].Box.MinY)
}
