// Copyright OMD Tools Inc., 2026. All rights reserved.

package importer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/omdtools/omd/internal/textmd"
	"github.com/omdtools/omd/pkg/types"
)

// PDFImporter converts PDFs without pandoc: the embedded text layer is
// extracted as plain lines and the textmd heuristic rebuilds headings and
// paragraphs. Scanned PDFs with no text layer produce empty output.
type PDFImporter struct {
	classifier textmd.Classifier
	extract    func(path string) (string, error)
}

// NewPDFImporter builds a PDF importer with the given heuristic thresholds.
func NewPDFImporter(cfg types.HeuristicConfig) *PDFImporter {
	return &PDFImporter{
		classifier: textmd.NewClassifier(cfg),
		extract:    extractText,
	}
}

// Import reads the PDF at path and returns the reconstructed Markdown.
func (p *PDFImporter) Import(path string) (string, error) {
	text, err := p.extract(path)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	return p.classifier.FromText(text), nil
}

// extractText pulls the plain-text layer out of a PDF file.
func extractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", fmt.Errorf("reading text layer: %w", err)
	}
	return buf.String(), nil
}
