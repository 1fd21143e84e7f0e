// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package exporter converts Markdown into the supported output formats,
// delegating to pandoc for document formats and rendering HTML locally.
package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/omdtools/omd/internal/pandoc"
	"github.com/omdtools/omd/pkg/types"
)

// markdownWriter is the slice of pandoc.Runner the exporter needs.
type markdownWriter interface {
	FromMarkdown(markdown string, outPath string, to types.Format) error
}

// Exporter writes Markdown content out as docx, html, pdf, and friends.
type Exporter struct {
	pandoc markdownWriter
}

// New builds an Exporter backed by the system pandoc binary.
func New(importCfg types.ImportConfig, exportCfg types.ExportConfig) *Exporter {
	return &Exporter{pandoc: pandoc.New(importCfg, exportCfg)}
}

// Export converts Markdown text into the target format at outPath.
func (e *Exporter) Export(markdown string, outPath string, to types.Format) error {
	if to == types.FormatMarkdown {
		return fmt.Errorf("refusing to export markdown to markdown")
	}
	return e.pandoc.FromMarkdown(markdown, outPath, to)
}

// ExportFile reads a Markdown file and converts it, writing a status line
// to w. The target format is taken from outPath's extension when to is
// empty.
func (e *Exporter) ExportFile(mdPath, outPath string, to types.Format, w io.Writer) error {
	if to == "" {
		detected, err := formatForOutput(outPath)
		if err != nil {
			return err
		}
		to = detected
	}

	data, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}

	if err := e.Export(string(data), outPath, to); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(mdPath), err)
		return err
	}

	fmt.Fprintf(w, "exported: %s -> %s\n", filepath.Base(mdPath), outPath)
	return nil
}

// outputFormats maps output file extensions to pandoc target formats.
var outputFormats = map[string]types.Format{
	".docx": types.FormatDocx,
	".html": types.FormatHTML,
	".pdf":  types.FormatPDF,
	".odt":  types.FormatODT,
	".rtf":  types.FormatRTF,
	".tex":  types.FormatLaTeX,
	".epub": types.FormatEPUB,
}

func formatForOutput(path string) (types.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := outputFormats[ext]
	if !ok {
		return "", fmt.Errorf("cannot infer output format from %q", path)
	}
	return format, nil
}
