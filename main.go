package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/expensio/receipt-analyzer/client"
	"github.com/expensio/receipt-analyzer/config"
	"github.com/expensio/receipt-analyzer/extraction"
	"github.com/expensio/receipt-analyzer/handler"
	"github.com/expensio/receipt-analyzer/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize recognition clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	paddleClient, err := client.NewPaddleClient()
	if err != nil {
		log.Printf("Warning: PaddleOCR client initialization failed: %v. Will use Tesseract only.", err)
		paddleClient = nil
	}

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// The extraction engine is immutable after construction and shared by
	// every request.
	engine := extraction.New(cfg.Engine)

	// Initialize service layer
	receiptService := service.NewReceiptService(tesseractClient, paddleClient, pdfProcessor, engine)

	// Initialize handler layer
	receiptHandler := handler.NewReceiptHandler(receiptService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Receipt Analyzer",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		receipts := api.Group("/receipts")
		{
			receipts.POST("/analyze", receiptHandler.AnalyzeReceipt)
		}
	}

	// Start server
	log.Printf("Starting Receipt Analyzer on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
