package extraction

import (
	"errors"
	"regexp"
)

// ErrNoUsableText means every fragment was rejected during normalization, so
// there is nothing to extract from. It is the only error Analyze returns;
// every finer-grained gap becomes an absent field instead.
var ErrNoUsableText = errors.New("no usable text fragments after filtering")

// Config holds the engine tunables.
type Config struct {
	// ConfidenceFloor drops fragments whose recognition confidence is below
	// this value before any matching happens.
	ConfidenceFloor float64
	// RowBands is the number of horizontal bands the unit square is divided
	// into for row bucketing, roughly one band per printed line.
	RowBands int
	// MaxGap is the widest label-to-value horizontal gap accepted during
	// spatial resolution, as a fraction of image width.
	MaxGap float64
	// EdgeSlack tolerates slight bounding-box overlap when testing whether a
	// candidate sits to the right of its label.
	EdgeSlack float64
}

// DefaultConfig returns the tuning that works well for photographed receipts.
func DefaultConfig() Config {
	return Config{
		ConfidenceFloor: 0.3,
		RowBands:        100,
		MaxGap:          0.6,
		EdgeSlack:       0.01,
	}
}

// Engine extracts expense fields from OCR fragments. It is immutable after
// construction: the field table and compiled patterns are shared across
// calls, and all per-call state lives inside Analyze, so one Engine is safe
// for concurrent use.
type Engine struct {
	cfg    Config
	fields []FieldDefinition

	reInline   *regexp.Regexp
	reCurrency *regexp.Regexp
	reBare     *regexp.Regexp
}

// New builds an Engine with pre-compiled patterns and the default field table.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		fields: defaultFields,
		// value after a label separator, e.g. "Qty - 5" or "Total: Rs. 1,216.00"
		reInline: regexp.MustCompile(`(?i)[-:]\s*(?:rs\.?|inr|₹|\$)?\s*([0-9][0-9.,/-]*[0-9]|[0-9])`),
		// currency-prefixed value with no separator, e.g. "Total ₹450.00"
		reCurrency: regexp.MustCompile(`(?i)(?:rs\.?|inr|₹|\$)\s*([0-9][0-9.,]*)`),
		// fragment that is nothing but a numeric token
		reBare: regexp.MustCompile(`(?i)^\s*(?:rs\.?|inr|₹|\$)?\s*([0-9][0-9.,]*)\s*(?:/-)?\s*$`),
	}
}

// state is the mutable bookkeeping for one Analyze call.
type state struct {
	consumed []bool
	resolved map[string]string
}

// Analyze reconstructs a structured expense record from an unordered set of
// OCR fragments. Missing or unparsable fields come back absent, never as an
// error; the caller pre-fills an editable form with whatever was found.
func (e *Engine) Analyze(fragments []DetectedFragment) (*Result, error) {
	frags := e.normalize(fragments)
	if len(frags) == 0 {
		return nil, ErrNoUsableText
	}

	idx := newRowIndex(frags, e.cfg.RowBands)
	st := &state{
		consumed: make([]bool, len(frags)),
		resolved: make(map[string]string, len(e.fields)),
	}

	e.resolveFields(frags, idx, st)
	e.sniffAmount(frags, st)

	return e.assemble(st.resolved), nil
}
