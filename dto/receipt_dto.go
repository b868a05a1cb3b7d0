package dto

import "github.com/expensio/receipt-analyzer/extraction"

// ReceiptAnalysisResponse is the form pre-fill payload returned for one
// analyzed receipt.
type ReceiptAnalysisResponse struct {
	RequestID     string            `json:"request_id"`
	Filename      string            `json:"filename"`
	FragmentCount int               `json:"fragment_count"`
	Result        extraction.Result `json:"result"`
	ProcessedAt   string            `json:"processed_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
