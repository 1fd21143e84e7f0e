// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package pandoc builds argument lists for the pandoc binary and runs it
// for both conversion directions. It owns the Markdown dialect flags and
// the post-processing applied to pandoc's output.
package pandoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/omdtools/omd/internal/tool"
	"github.com/omdtools/omd/pkg/types"
)

// importTarget is the Markdown dialect pandoc emits on import. Raw HTML,
// native spans, and native divs are disabled so the output stays plain.
const importTarget = "markdown-raw_html-native_spans-native_divs"

// defaultPDFEngine renders Markdown-to-PDF exports.
const defaultPDFEngine = tool.BinWkhtmltopdf

// execTool is the slice of tool.Tool the runner needs.
type execTool interface {
	Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// Runner invokes pandoc for imports and exports.
type Runner struct {
	tool      execTool
	mediaDir  string
	pdfEngine string
}

// New returns a Runner backed by the system pandoc binary.
func New(importCfg types.ImportConfig, exportCfg types.ExportConfig) *Runner {
	return newRunner(tool.Pandoc(), importCfg, exportCfg)
}

func newRunner(t execTool, importCfg types.ImportConfig, exportCfg types.ExportConfig) *Runner {
	mediaDir := importCfg.MediaDir
	if mediaDir == "" {
		mediaDir = "."
	}
	engine := exportCfg.PDFEngine
	if engine == "" {
		engine = defaultPDFEngine
	}
	return &Runner{tool: t, mediaDir: mediaDir, pdfEngine: engine}
}

// ToMarkdown converts the file at path from the given source format into
// Markdown text. Embedded media is extracted next to the media directory.
func (r *Runner) ToMarkdown(path string, from types.Format) (string, error) {
	args := []string{
		"-f", string(from),
		"-t", importTarget,
		"--wrap=none",
		"--extract-media=" + r.mediaDir,
		path,
	}

	var stdout, stderr bytes.Buffer
	if err := r.tool.Run(args, nil, &stdout, &stderr); err != nil {
		return "", fmt.Errorf("converting %s from %s: %w: %s",
			path, from, err, strings.TrimSpace(stderr.String()))
	}

	out := stdout.String()
	if !utf8.ValidString(out) {
		return "", fmt.Errorf("converting %s: pandoc produced invalid UTF-8", path)
	}
	return replaceScriptTags(out), nil
}

// FromMarkdown converts Markdown text into the target format, writing the
// result to outPath. PDF output routes through the configured PDF engine.
func (r *Runner) FromMarkdown(markdown string, outPath string, to types.Format) error {
	args := []string{
		"-f", "markdown",
		"-t", string(to),
		"--wrap=none",
		"-o", outPath,
	}
	if to == types.FormatPDF {
		args = append(args, "--pdf-engine="+r.pdfEngine)
	}

	var stderr bytes.Buffer
	if err := r.tool.Run(args, strings.NewReader(markdown), io.Discard, &stderr); err != nil {
		return fmt.Errorf("exporting to %s: %w: %s",
			to, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// scriptTags maps the superscript and subscript HTML tags pandoc can leave
// behind to their pandoc-Markdown equivalents.
var scriptTags = [][2]string{
	{"<sup>", "^"},
	{"</sup>", "^"},
	{"<sub>", "~"},
	{"</sub>", "~"},
}

func replaceScriptTags(s string) string {
	for _, t := range scriptTags {
		s = strings.ReplaceAll(s, t[0], t[1])
	}
	return s
}
