package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor is one of the two interchangeable extraction strategies.
// An empty result (with or without an error) is the terminal failure
// signal; extractors never panic past this boundary.
type TextExtractor interface {
	Extract(filePath string) (string, error)
}

type nativeExtractor struct{}

// NewNativeExtractor extracts the text layer of every page, in page
// order, newline-joined. Used for documents classified as NativeText.
func NewNativeExtractor() TextExtractor {
	return &nativeExtractor{}
}

func (e *nativeExtractor) Extract(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}

// CleanText collapses blank lines and trims whitespace from extracted
// text before it is handed to the prompt builder.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
