package client

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"

	"github.com/expensio/receipt-analyzer/extraction"
)

// TesseractClient produces positioned text fragments from receipt images
// using word-level Tesseract recognition.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// RecognizeFromFile runs OCR on an uploaded receipt image and returns the
// detected fragments.
func (tc *TesseractClient) RecognizeFromFile(fileHeader *multipart.FileHeader) ([]extraction.DetectedFragment, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempFile, err := tc.CreateTempFile(file, fileHeader.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	return tc.Recognize(tempFile)
}

// CreateTempFile creates a temporary file from uploaded content.
func (tc *TesseractClient) CreateTempFile(file io.Reader, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tempFile, err := os.CreateTemp("", "receipt-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

// Recognize runs word-level OCR on an image file. Box coordinates are
// normalized to the unit square and confidences to [0,1], which is the
// contract the extraction engine expects.
func (tc *TesseractClient) Recognize(filePath string) ([]extraction.DetectedFragment, error) {
	width, height, err := imageSize(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image dimensions: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage("eng"); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(filePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get bounding boxes: %w", err)
	}

	fragments := make([]extraction.DetectedFragment, 0, len(boxes))
	for _, box := range boxes {
		fragments = append(fragments, extraction.DetectedFragment{
			Text: box.Word,
			Box: extraction.BoundingBox{
				MinX:   float64(box.Box.Min.X) / float64(width),
				MinY:   float64(box.Box.Min.Y) / float64(height),
				Width:  float64(box.Box.Dx()) / float64(width),
				Height: float64(box.Box.Dy()) / float64(height),
			},
			Confidence: box.Confidence / 100.0,
		})
	}

	return fragments, nil
}

func imageSize(filePath string) (int, int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, fmt.Errorf("image has zero dimensions")
	}
	return cfg.Width, cfg.Height, nil
}

// Close performs cleanup.
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
