package service

import (
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/expensio/receipt-analyzer/extraction"
)

// UPIPayment is the payment information carried by a upi:// QR payload.
type UPIPayment struct {
	PayeeVPA  string
	PayeeName string
	Amount    *float64
}

// DecodeUPIQR scans the receipt image for a QR code and parses a UPI payment
// URI out of it. Most printed UPI receipts carry one next to the total.
func DecodeUPIQR(img image.Image) (*UPIPayment, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	qrReader := qrcode.NewQRCodeReader()
	result, err := qrReader.Decode(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR code: %w", err)
	}

	return ParseUPIPayload(result.GetText())
}

// ParseUPIPayload parses a upi://pay URI into its payment fields.
func ParseUPIPayload(payload string) (*UPIPayment, error) {
	if !strings.HasPrefix(strings.ToLower(payload), "upi://") {
		return nil, fmt.Errorf("not a UPI payload")
	}

	u, err := url.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse UPI URI: %w", err)
	}

	q := u.Query()
	payment := &UPIPayment{
		PayeeVPA:  q.Get("pa"),
		PayeeName: q.Get("pn"),
		Amount:    extraction.CleanNumber(q.Get("am")),
	}

	if payment.PayeeVPA == "" {
		return nil, fmt.Errorf("UPI payload has no payee address")
	}
	return payment, nil
}

// enrichFromUPI backfills result gaps from a decoded UPI payment. It only
// fills what the engine left absent and flips the default cash mode to upi;
// engine-resolved values always win.
func enrichFromUPI(result *extraction.Result, payment *UPIPayment) {
	if payment == nil {
		return
	}
	if result.PaymentMode == extraction.PaymentCash {
		result.PaymentMode = extraction.PaymentUPI
	}
	if result.Amount == nil {
		result.Amount = payment.Amount
	}
	if result.Description == "" {
		result.Description = payment.PayeeName
	}
}
