// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package importer converts foreign documents into Markdown files with
// pluggable per-format backends.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/omdtools/omd/internal/pandoc"
	"github.com/omdtools/omd/pkg/types"
)

// Importer transforms a document file into Markdown text. Backends exist
// for pandoc-supported formats and for PDFs.
type Importer interface {
	// Import reads the document at path and returns the Markdown content.
	Import(path string) (string, error)
}

// formatForExt maps file extensions to pandoc source formats.
var formatForExt = map[string]types.Format{
	".docx": types.FormatDocx,
	".html": types.FormatHTML,
	".htm":  types.FormatHTML,
	".odt":  types.FormatODT,
	".rtf":  types.FormatRTF,
	".tex":  types.FormatLaTeX,
	".epub": types.FormatEPUB,
	".pdf":  types.FormatPDF,
}

// DetectFormat maps a file path to its source format by extension.
func DetectFormat(path string) (types.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formatForExt[ext]
	if !ok {
		return "", fmt.Errorf("unsupported input format %q", ext)
	}
	return format, nil
}

// markdownConverter is the slice of pandoc.Runner the dispatcher needs.
type markdownConverter interface {
	ToMarkdown(path string, from types.Format) (string, error)
}

// Dispatcher routes each file to the right backend: PDFs go through the
// text-extraction heuristic, everything else through pandoc.
type Dispatcher struct {
	pandoc markdownConverter
	pdf    Importer
}

// New builds a Dispatcher with the production backends.
func New(importCfg types.ImportConfig, exportCfg types.ExportConfig) *Dispatcher {
	return &Dispatcher{
		pandoc: pandoc.New(importCfg, exportCfg),
		pdf:    NewPDFImporter(importCfg.Heuristic),
	}
}

// Import converts a single file to Markdown text.
func (d *Dispatcher) Import(path string) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}
	if format == types.FormatPDF {
		return d.pdf.Import(path)
	}
	return d.pandoc.ToMarkdown(path, format)
}

// Outcome describes what happened to one file in a batch.
type Outcome struct {
	SourcePath string
	TargetPath string
	Status     types.ConversionStatus
}

// BatchResult holds the outcome of a batch import run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Outcomes  []Outcome
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns where the Markdown for src lands inside outDir.
func OutputPath(src, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(outDir, base+".md")
}

// ImportFile converts a single document to Markdown, writing the result to
// outDir. If the Markdown output already exists, it skips conversion and
// returns ConversionNone.
func ImportFile(imp Importer, src, outDir string, w io.Writer) types.ConversionStatus {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	mdPath := OutputPath(src, outDir)

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return types.ConversionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	content, err := imp.Import(src)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// ImportBatch processes a list of files through the importer, printing
// per-file status to w and returning a summary.
func ImportBatch(imp Importer, paths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		status := ImportFile(imp, p, outDir, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, Outcome{
			SourcePath: p,
			TargetPath: OutputPath(p, outDir),
			Status:     status,
		})
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
