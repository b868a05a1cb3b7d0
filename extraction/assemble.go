package extraction

import (
	"strings"
	"time"
)

// PaymentMode classifies how the expense was paid.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentUPI    PaymentMode = "upi"
	PaymentCheque PaymentMode = "cheque"
	PaymentCard   PaymentMode = "card"
)

// Result is the typed outcome of one analysis, shaped for pre-filling an
// expense-entry form: every field is optional and stays editable downstream.
type Result struct {
	Date          *time.Time  `json:"date,omitempty"`
	Amount        *float64    `json:"amount,omitempty"`
	Description   string      `json:"description,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	PaymentMode   PaymentMode `json:"payment_mode"`
	ItemType      string      `json:"item_type,omitempty"`
	Item          string      `json:"item,omitempty"`
	Brand         string      `json:"brand,omitempty"`
	Specification string      `json:"specification,omitempty"`
	Quantity      *float64    `json:"quantity,omitempty"`
	UnitOfMeasure string      `json:"unit_of_measure,omitempty"`
	UnitPrice     *float64    `json:"unit_price,omitempty"`
}

// paymentKeywords is checked group by group; the first group with a hit
// wins, and no hit at all means cash.
var paymentKeywords = []struct {
	mode  PaymentMode
	words []string
}{
	{PaymentUPI, []string{"upi", "gpay", "google pay", "phonepe", "paytm", "bhim"}},
	{PaymentCheque, []string{"cheque", "check", "chq"}},
	{PaymentCard, []string{"card", "credit", "debit", "visa", "mastercard", "rupay", "pos"}},
}

// ClassifyPaymentMode maps a raw payment-mode string onto the enum,
// defaulting to cash when nothing matches.
func ClassifyPaymentMode(raw string) PaymentMode {
	lower := strings.ToLower(raw)
	for _, group := range paymentKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.mode
			}
		}
	}
	return PaymentCash
}

// SplitCategories splits a raw category string on commas, trimming each
// entry and dropping empties, preserving the printed order.
func SplitCategories(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// assemble turns the raw resolved strings into the typed result. It never
// fails: a missing or unparsable raw value maps to an absent field.
func (e *Engine) assemble(resolved map[string]string) *Result {
	r := &Result{
		Description:   resolved[FieldDescription],
		Categories:    SplitCategories(resolved[FieldCategory]),
		PaymentMode:   ClassifyPaymentMode(resolved[FieldPaymentMode]),
		ItemType:      resolved[FieldItemType],
		Item:          resolved[FieldItem],
		Brand:         resolved[FieldBrand],
		Specification: resolved[FieldSpecification],
		UnitOfMeasure: resolved[FieldUnitOfMeasure],
	}

	if raw, ok := resolved[FieldDate]; ok {
		r.Date = ParseDate(raw)
	}
	if raw, ok := resolved[FieldAmount]; ok {
		r.Amount = CleanNumber(raw)
	}
	if raw, ok := resolved[FieldQuantity]; ok {
		r.Quantity = CleanNumber(raw)
	}
	if raw, ok := resolved[FieldUnitPrice]; ok {
		r.UnitPrice = CleanNumber(raw)
	}

	return r
}
