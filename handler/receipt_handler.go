package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expensio/receipt-analyzer/dto"
	"github.com/expensio/receipt-analyzer/extraction"
	"github.com/expensio/receipt-analyzer/service"
)

type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
	}
}

// AnalyzeReceipt handles the POST /receipts/analyze endpoint.
func (h *ReceiptHandler) AnalyzeReceipt(c *gin.Context) {
	log.Println("Received receipt analysis request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "BAD_REQUEST", "No receipt file provided", err)
		return
	}

	response, err := h.receiptService.AnalyzeReceipt(c.Request.Context(), fileHeader)
	if err != nil {
		status, code := classifyError(err)
		h.sendError(c, status, code, "Failed to analyze receipt", err)
		return
	}

	log.Printf("Receipt analysis completed for %s", fileHeader.Filename)
	c.JSON(http.StatusOK, response)
}

// classifyError maps the pipeline's three failure kinds onto HTTP statuses.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, dto.ErrImageProcessing):
		return http.StatusBadRequest, "IMAGE_PROCESSING_FAILED"
	case errors.Is(err, dto.ErrRecognition):
		return http.StatusBadGateway, "RECOGNITION_FAILED"
	case errors.Is(err, extraction.ErrNoUsableText):
		return http.StatusUnprocessableEntity, "NO_USABLE_TEXT"
	default:
		return http.StatusInternalServerError, "ANALYSIS_FAILED"
	}
}

// sendError sends a structured error response.
func (h *ReceiptHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
