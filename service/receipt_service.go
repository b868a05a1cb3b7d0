package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expensio/receipt-analyzer/client"
	"github.com/expensio/receipt-analyzer/dto"
	"github.com/expensio/receipt-analyzer/extraction"
)

// minVectorFragments is the smallest embedded-text yield that makes a PDF
// count as vector; below this the file is treated as a scan and OCRed.
const minVectorFragments = 3

// ReceiptService orchestrates recognition and field extraction for one
// uploaded receipt. The extraction engine itself is pure and synchronous;
// all I/O happens here, around the recognizer calls.
type ReceiptService struct {
	tesseractClient *client.TesseractClient
	paddleClient    *client.PaddleClient
	pdfProcessor    PDFProcessor
	engine          *extraction.Engine
}

func NewReceiptService(
	tesseractClient *client.TesseractClient,
	paddleClient *client.PaddleClient,
	pdfProcessor PDFProcessor,
	engine *extraction.Engine,
) *ReceiptService {
	return &ReceiptService{
		tesseractClient: tesseractClient,
		paddleClient:    paddleClient,
		pdfProcessor:    pdfProcessor,
		engine:          engine,
	}
}

// AnalyzeReceipt runs the uploaded receipt through recognition and the
// extraction engine and returns the form pre-fill payload. Failures surface
// as one of three kinds: the file could not be processed, recognition
// failed, or no usable text remained; every other gap is an absent field.
func (s *ReceiptService) AnalyzeReceipt(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ReceiptAnalysisResponse, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrImageProcessing, err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrImageProcessing, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fragments []extraction.DetectedFragment
	var receiptImg image.Image

	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		fragments, err = s.recognizePDF(fileBytes)
	} else {
		fragments, receiptImg, err = s.recognizeImage(fileHeader, fileBytes)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Recognized %d fragments from %s", len(fragments), fileHeader.Filename)

	result, err := s.engine.Analyze(fragments)
	if err != nil {
		return nil, err
	}

	if receiptImg != nil {
		if payment, err := DecodeUPIQR(receiptImg); err == nil {
			log.Printf("UPI QR found on receipt, payee %s", payment.PayeeVPA)
			enrichFromUPI(result, payment)
		}
	}

	return &dto.ReceiptAnalysisResponse{
		RequestID:     uuid.NewString(),
		Filename:      fileHeader.Filename,
		FragmentCount: len(fragments),
		Result:        *result,
		ProcessedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

// recognizeImage decodes the upload, tries PaddleOCR first and falls back to
// Tesseract. The decoded image is returned as well so QR enrichment can run
// on it later.
func (s *ReceiptService) recognizeImage(fileHeader *multipart.FileHeader, fileBytes []byte) ([]extraction.DetectedFragment, image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", dto.ErrImageProcessing, err)
	}
	bounds := img.Bounds()

	if s.paddleClient != nil {
		fragments, err := s.paddleClient.Recognize(fileBytes, bounds.Dx(), bounds.Dy())
		if err == nil && len(fragments) > 0 {
			return fragments, img, nil
		}
		log.Printf("PaddleOCR recognition failed, falling back to Tesseract: %v", err)
	}

	fragments, err := s.tesseractClient.RecognizeFromFile(fileHeader)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", dto.ErrRecognition, err)
	}
	return fragments, img, nil
}

// recognizePDF prefers the embedded vector text; a scan with no usable text
// layer falls back to page images and OCR.
func (s *ReceiptService) recognizePDF(fileBytes []byte) ([]extraction.DetectedFragment, error) {
	fragments, err := s.pdfProcessor.ExtractFragments(fileBytes)
	if err == nil && len(fragments) >= minVectorFragments {
		return fragments, nil
	}
	if err != nil {
		log.Printf("PDF vector text extraction failed, treating as scan: %v", err)
	}

	images, err := s.pdfProcessor.ExtractImages(fileBytes)
	if err != nil || len(images) == 0 {
		return nil, fmt.Errorf("%w: no text layer and no page images", dto.ErrImageProcessing)
	}

	return s.recognizePages(images)
}

// recognizePages OCRs each page image and merges the results into a single
// unit square, stacking pages top to bottom.
func (s *ReceiptService) recognizePages(images []image.Image) ([]extraction.DetectedFragment, error) {
	pageCount := float64(len(images))
	var merged []extraction.DetectedFragment

	for pageIndex, img := range images {
		tempFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save page %d for OCR: %v", pageIndex+1, err)
			continue
		}

		fragments, err := s.tesseractClient.Recognize(tempFile)
		os.Remove(tempFile)
		if err != nil {
			log.Printf("OCR failed for page %d: %v", pageIndex+1, err)
			continue
		}

		for _, f := range fragments {
			f.Box.MinY = (float64(pageIndex) + f.Box.MinY) / pageCount
			f.Box.Height /= pageCount
			merged = append(merged, f)
		}
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: OCR produced no fragments from any page", dto.ErrRecognition)
	}
	return merged, nil
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "receipt-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
