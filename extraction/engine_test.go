package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frag builds a high-confidence fragment on a standard line height.
func frag(text string, minX, minY, width float64) DetectedFragment {
	return DetectedFragment{
		Text:       text,
		Box:        BoundingBox{MinX: minX, MinY: minY, Width: width, Height: 0.02},
		Confidence: 0.95,
	}
}

func TestAnalyzeTypicalReceipt(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Sharma Building Supplies", 0.20, 0.05, 0.45),
		frag("Date", 0.10, 0.12, 0.08),
		frag("12/03/2024", 0.30, 0.12, 0.15),
		frag("Item", 0.10, 0.20, 0.07),
		frag("Cement", 0.30, 0.20, 0.12),
		frag("Brand", 0.10, 0.26, 0.09),
		frag("UltraTech", 0.30, 0.26, 0.15),
		frag("Qty - 10", 0.10, 0.32, 0.12),
		frag("Rate", 0.10, 0.38, 0.07),
		frag("425.00", 0.30, 0.38, 0.10),
		frag("Grand Total", 0.10, 0.46, 0.18),
		frag("Rs. 4,250.00", 0.40, 0.46, 0.18),
		frag("Payment", 0.10, 0.54, 0.13),
		frag("GPay", 0.30, 0.54, 0.08),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.Date)
	assert.Equal(t, "2024-03-12", result.Date.Format("2006-01-02"))
	assert.Equal(t, "Cement", result.Item)
	assert.Equal(t, "UltraTech", result.Brand)
	require.NotNil(t, result.Quantity)
	assert.Equal(t, 10.0, *result.Quantity)
	require.NotNil(t, result.UnitPrice)
	assert.Equal(t, 425.00, *result.UnitPrice)
	require.NotNil(t, result.Amount)
	assert.Equal(t, 4250.00, *result.Amount)
	assert.Equal(t, PaymentUPI, result.PaymentMode)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Amount", 0.10, 0.30, 0.12),
		frag("1,216.00", 0.30, 0.30, 0.14),
		frag("Date", 0.10, 0.40, 0.08),
		frag("01/02/2024", 0.30, 0.40, 0.15),
	}

	first, err := engine.Analyze(fragments)
	require.NoError(t, err)
	second, err := engine.Analyze(fragments)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFragmentConsumedAtMostOnce(t *testing.T) {
	engine := New(DefaultConfig())

	// "15" resolves quantity spatially; once consumed it must not be picked
	// up again by the amount sniffer.
	fragments := []DetectedFragment{
		frag("Qty", 0.10, 0.30, 0.08),
		frag("15", 0.25, 0.30, 0.05),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.Quantity)
	assert.Equal(t, 15.0, *result.Quantity)
	assert.Nil(t, result.Amount)
}

func TestInlineExtractionPrecedesSpatial(t *testing.T) {
	engine := New(DefaultConfig())

	// "9" sits right of the label and would win a spatial search, but the
	// inline hit must consume only the label and leave "9" alone.
	fragments := []DetectedFragment{
		frag("Quantity - 7", 0.10, 0.30, 0.18),
		frag("9", 0.35, 0.30, 0.04),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.Quantity)
	assert.Equal(t, 7.0, *result.Quantity)
}

func TestLowConfidenceFragmentIsNoLabel(t *testing.T) {
	engine := New(DefaultConfig())

	muddy := frag("Amount", 0.10, 0.30, 0.12)
	muddy.Confidence = 0.1

	fragments := []DetectedFragment{
		muddy,
		frag("Brand", 0.10, 0.40, 0.09),
		frag("Tata", 0.25, 0.40, 0.08),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	assert.Nil(t, result.Amount)
	assert.Equal(t, "Tata", result.Brand)
}

func TestNearestCandidateWins(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Rate", 0.10, 0.50, 0.10),
		frag("42.50", 0.22, 0.50, 0.04),
		frag("99.00", 0.40, 0.50, 0.05),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.UnitPrice)
	assert.Equal(t, 42.50, *result.UnitPrice)
}

func TestFarRightCandidateIsIgnored(t *testing.T) {
	engine := New(DefaultConfig())

	// The only same-row candidate is further than MaxGap away, so the field
	// must stay unresolved rather than grab unrelated far-right text.
	fragments := []DetectedFragment{
		frag("Brand", 0.05, 0.50, 0.08),
		frag("Tata", 0.90, 0.50, 0.06),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	assert.Empty(t, result.Brand)
}

func TestDefaultPaymentModeIsCash(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Amount", 0.10, 0.30, 0.12),
		frag("500.00", 0.30, 0.30, 0.10),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	assert.Equal(t, PaymentCash, result.PaymentMode)
}

func TestInvalidCalendarDateYieldsNil(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Date", 0.10, 0.30, 0.08),
		frag("31/02/2024", 0.30, 0.30, 0.15),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	assert.Nil(t, result.Date)
}

func TestAmountSnifferAdoptsUnlabeledTotal(t *testing.T) {
	engine := New(DefaultConfig())

	// The total is printed on its own line below the "Grand Total" caption,
	// far enough down that no spatial match exists.
	fragments := []DetectedFragment{
		frag("Grand Total", 0.10, 0.50, 0.18),
		frag("₹ 12,450.00", 0.10, 0.60, 0.20),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.Amount)
	assert.Equal(t, 12450.00, *result.Amount)
}

func TestAmountSnifferSkipsSmallIntegers(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Sharma Traders", 0.10, 0.10, 0.30),
		frag("3", 0.10, 0.20, 0.03),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	assert.Nil(t, result.Amount)
}

func TestSplitLabelInlineValue(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		frag("Qty - 5", 0.10, 0.30, 0.10),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.Quantity)
	assert.Equal(t, 5.0, *result.Quantity)
}

func TestAnalyzeNoUsableFragments(t *testing.T) {
	engine := New(DefaultConfig())

	fragments := []DetectedFragment{
		{Text: "Amount", Box: BoundingBox{MinX: 0.1, MinY: 0.3, Width: 0.1, Height: 0.02}, Confidence: 0.05},
		{Text: "   ", Box: BoundingBox{MinX: 0.1, MinY: 0.4, Width: 0.1, Height: 0.02}, Confidence: 0.9},
	}

	result, err := engine.Analyze(fragments)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoUsableText)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	engine := New(DefaultConfig())

	result, err := engine.Analyze(nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoUsableText)
}

func TestLabelTieBreakFollowsTableOrder(t *testing.T) {
	engine := New(DefaultConfig())

	// "Total Amount" contains aliases of the amount field only, but
	// "Unit Price" contains aliases of both unit_price and unit_of_measure;
	// the earlier table entry must win.
	fragments := []DetectedFragment{
		frag("Unit Price", 0.10, 0.30, 0.15),
		frag("350.00", 0.30, 0.30, 0.10),
	}

	result, err := engine.Analyze(fragments)
	require.NoError(t, err)

	require.NotNil(t, result.UnitPrice)
	assert.Equal(t, 350.00, *result.UnitPrice)
	assert.Empty(t, result.UnitOfMeasure)
}
