package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// maxTextBytes caps extracted text; lab reports are short and downstream
// consumers only prompt with the first few thousand characters anyway.
const maxTextBytes = 512 * 1024

// Extractor converts PDF bytes into plain text for the classification pipeline
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new PDF text extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		logger: logger,
	}
}

// ExtractText extracts all text from a PDF given as bytes.
// The underlying reader can panic on malformed input, so the call is
// wrapped in recover and reported as a normal error.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recovered from panic during PDF extraction",
				zap.Any("panic", r),
			)
			text = ""
			err = fmt.Errorf("panic during PDF extraction: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF reader: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract plain text: %w", err)
	}

	textBytes, err := io.ReadAll(io.LimitReader(plainText, maxTextBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read plain text: %w", err)
	}

	extracted := strings.TrimSpace(string(textBytes))

	e.logger.Info("PDF text extracted",
		zap.Int("page_count", reader.NumPage()),
		zap.Int("text_length", len(extracted)),
	)

	return extracted, nil
}
