package services

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

type ocrExtractor struct {
	dpi int
}

// NewOCRExtractor renders each page to an image, enhances it for
// character recognition, runs Tesseract per page and concatenates the
// cleaned text with page-boundary markers. Used for scanned documents.
func NewOCRExtractor(dpi int) TextExtractor {
	if dpi <= 0 {
		dpi = 300
	}

	return &ocrExtractor{dpi: dpi}
}

func (e *ocrExtractor) Extract(filePath string) (string, error) {
	doc, err := fitz.New(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	var textBuilder strings.Builder
	totalPage := doc.NumPage()

	log.Printf("📦 OCR: %d pages to process in %s\n", totalPage, filePath)

	for pageIndex := 0; pageIndex < totalPage; pageIndex++ {
		img, err := doc.ImageDPI(pageIndex, float64(e.dpi))
		if err != nil {
			log.Printf("❌ OCR failed to render page %d: %v\n", pageIndex+1, err)
			continue
		}

		enhanced := enhanceForOCR(img)

		var buf bytes.Buffer
		if err := png.Encode(&buf, enhanced); err != nil {
			log.Printf("❌ OCR failed to encode page %d: %v\n", pageIndex+1, err)
			continue
		}

		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			log.Printf("❌ OCR failed to load page %d: %v\n", pageIndex+1, err)
			continue
		}

		rawText, err := client.Text()
		if err != nil {
			log.Printf("❌ OCR failed on page %d: %v\n", pageIndex+1, err)
			continue
		}

		cleaned := CleanOCRText(rawText)
		log.Printf("✅ OCR page %d: %d characters cleaned\n", pageIndex+1, len(cleaned))

		textBuilder.WriteString(fmt.Sprintf("--- Page %d ---\n", pageIndex+1))
		textBuilder.WriteString(cleaned)
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}
