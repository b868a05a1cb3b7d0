package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/expensio/receipt-analyzer/extraction"
)

// PDFProcessor handles PDF receipts. Vector PDFs carry positioned text that
// converts straight into fragments; scanned PDFs only yield page images,
// which then go through OCR like any photograph.
type PDFProcessor interface {
	ExtractFragments(pdfData []byte) ([]extraction.DetectedFragment, error)
	ExtractImages(pdfData []byte) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// wordGapFactor times the font size is the horizontal gap that separates two
// fragments on the same printed row. Character pieces closer than that belong
// to the same label or value.
const wordGapFactor = 0.75

// ExtractFragments reads the embedded text of the first non-empty page and
// groups the character pieces into fragments with unit-square boxes. Vector
// text carries no recognition noise, so every fragment gets confidence 1.
func (p *pdfProcessor) ExtractFragments(pdfData []byte) ([]extraction.DetectedFragment, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil || len(rows) == 0 {
			continue
		}

		pageW, pageH := mediaBoxSize(page)
		fragments := rowsToFragments(rows, pageW, pageH)
		if len(fragments) > 0 {
			return fragments, nil
		}
	}

	return nil, fmt.Errorf("pdf contains no positioned text")
}

// rowsToFragments walks each text row left to right, starting a new fragment
// whenever the horizontal gap between pieces is wider than a word gap.
func rowsToFragments(rows pdf.Rows, pageW, pageH float64) []extraction.DetectedFragment {
	var fragments []extraction.DetectedFragment

	for _, row := range rows {
		var (
			text        bytes.Buffer
			minX, maxX  float64
			top, height float64
			prevEnd     float64
			open        bool
		)

		flush := func() {
			if !open || text.Len() == 0 {
				return
			}
			fragments = append(fragments, extraction.DetectedFragment{
				Text: text.String(),
				Box: extraction.BoundingBox{
					MinX:   minX / pageW,
					MinY:   top / pageH,
					Width:  (maxX - minX) / pageW,
					Height: height / pageH,
				},
				Confidence: 1.0,
			})
			text.Reset()
			open = false
		}

		for _, piece := range row.Content {
			if piece.S == "" {
				continue
			}

			gap := piece.X - prevEnd
			if open && gap > piece.FontSize*wordGapFactor {
				flush()
			}

			if !open {
				minX = piece.X
				maxX = piece.X
				// pdf coordinates grow upward; flip to top-origin
				top = pageH - piece.Y - piece.FontSize
				height = piece.FontSize
				open = true
			}

			text.WriteString(piece.S)
			end := piece.X + piece.W
			if end > maxX {
				maxX = end
			}
			prevEnd = end
		}
		flush()
	}

	return fragments
}

func mediaBoxSize(page pdf.Page) (float64, float64) {
	mb := page.V.Key("MediaBox")
	if mb.IsNull() || mb.Len() < 4 {
		// US Letter points, the pdf default
		return 612, 792
	}
	w := mb.Index(2).Float64() - mb.Index(0).Float64()
	h := mb.Index(3).Float64() - mb.Index(1).Float64()
	if w <= 0 || h <= 0 {
		return 612, 792
	}
	return w, h
}

// ExtractImages pulls the embedded page images out of a scanned PDF so they
// can be OCRed like photographs.
func (p *pdfProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "receipt_pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "receipt-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
