package services

import (
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentClass is the extraction strategy chosen for a document.
type DocumentClass string

const (
	// NativeText means the PDF carries an extractable text layer.
	NativeText DocumentClass = "native_text"
	// Scanned means the document needs the OCR path.
	Scanned DocumentClass = "scanned"
)

type DocumentClassifier interface {
	Classify(filePath string) DocumentClass
}

type documentClassifier struct {
	minTextLength int
}

// NewDocumentClassifier decides the extraction strategy by summing the
// extractable character count across pages. minTextLength guards against
// stray layout artifacts being mistaken for a genuine text layer.
func NewDocumentClassifier(minTextLength int) DocumentClassifier {
	if minTextLength <= 0 {
		minTextLength = 20
	}

	return &documentClassifier{minTextLength: minTextLength}
}

func (c *documentClassifier) Classify(filePath string) DocumentClass {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		// Fail closed: an unreadable document goes to the more robust
		// OCR path instead of raising.
		log.Printf("⚠️  Classification failed for %s, treating as scanned: %v\n", filePath, err)
		return Scanned
	}
	defer f.Close()

	total := 0
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		total += len(strings.TrimSpace(text))
		if total >= c.minTextLength {
			return NativeText
		}
	}

	log.Printf("📸 Extractable text too short (%d chars), treating %s as scanned\n", total, filePath)
	return Scanned
}
