package extract

import (
	"fmt"
)

// Extractor reads a document and parses deduction amounts from its text
type Extractor struct {
	Text TextExtractor
}

// NewExtractor creates an extractor backed by the PDF text layer
func NewExtractor() *Extractor {
	return &Extractor{Text: NewPDFTextExtractor()}
}

// FromPDF extracts text from a PDF and parses it
func (e *Extractor) FromPDF(data []byte) (*Extraction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	text, err := e.Text.ExtractText(data)
	if err != nil {
		return nil, err
	}
	return ParseDeductions(text), nil
}
