package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/expensio/receipt-analyzer/extraction"
)

// PaddleClient wraps a PaddleOCR serving endpoint. It is the preferred
// recognizer for photographed receipts because its detector returns one box
// per text line, which keeps label and value in separate fragments.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewPaddleClient creates a PaddleOCR client from the environment.
func NewPaddleClient() (*PaddleClient, error) {
	apiURL := os.Getenv("PADDLEOCR_API_URL")
	if apiURL == "" {
		apiURL = "http://paddleocr:8866/predict/ocr_system"
	}

	log.Printf("PaddleOCR client initialized with endpoint: %s", apiURL)

	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// paddleLine is one recognized region in the serving response: the text, its
// recognition confidence, and the detection quadrilateral in pixel space.
type paddleLine struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	TextRegion [][]float64 `json:"text_region"`
}

// Recognize sends the image to the PaddleOCR endpoint and converts the
// response regions into unit-square fragments. Width and height are the
// pixel dimensions of the submitted image.
func (p *PaddleClient) Recognize(imageBytes []byte, width, height int) ([]extraction.DetectedFragment, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	payload := map[string]interface{}{
		"images": []string{base64.StdEncoding.EncodeToString(imageBytes)},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := p.httpClient.Post(p.apiURL, "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results [][]paddleLine `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("PaddleOCR recognized no text")
	}

	var fragments []extraction.DetectedFragment
	for _, line := range result.Results[0] {
		box, ok := regionToBox(line.TextRegion, width, height)
		if !ok {
			continue
		}
		fragments = append(fragments, extraction.DetectedFragment{
			Text:       line.Text,
			Box:        box,
			Confidence: line.Confidence,
		})
	}

	if len(fragments) == 0 {
		return nil, fmt.Errorf("PaddleOCR recognized no positioned text")
	}

	log.Printf("PaddleOCR recognized %d fragments", len(fragments))
	return fragments, nil
}

// regionToBox collapses a detection quadrilateral into an axis-aligned
// unit-square box.
func regionToBox(region [][]float64, width, height int) (extraction.BoundingBox, bool) {
	if len(region) < 3 {
		return extraction.BoundingBox{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range region {
		if len(pt) < 2 {
			return extraction.BoundingBox{}, false
		}
		if pt[0] < minX {
			minX = pt[0]
		}
		if pt[0] > maxX {
			maxX = pt[0]
		}
		if pt[1] < minY {
			minY = pt[1]
		}
		if pt[1] > maxY {
			maxY = pt[1]
		}
	}

	return extraction.BoundingBox{
		MinX:   minX / float64(width),
		MinY:   minY / float64(height),
		Width:  (maxX - minX) / float64(width),
		Height: (maxY - minY) / float64(height),
	}, true
}
