// Copyright OMD Tools Inc., 2026. All rights reserved.

package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omdtools/omd/pkg/types"
)

// fakeImporter implements Importer for testing. It returns canned Markdown
// or an error, depending on configuration.
type fakeImporter struct {
	output string
	err    error
}

func (f *fakeImporter) Import(path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// selectiveImporter returns different results per file path.
type selectiveImporter struct {
	outputs map[string]string
	errors  map[string]error
}

func (s *selectiveImporter) Import(path string) (string, error) {
	if err, ok := s.errors[path]; ok {
		return "", err
	}
	if out, ok := s.outputs[path]; ok {
		return out, nil
	}
	return "", errors.New("unexpected path: " + path)
}

func setupDoc(t *testing.T, name string) (docPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	docPath = filepath.Join(tmpDir, name)
	if err := os.WriteFile(docPath, []byte("fake document"), 0o644); err != nil {
		t.Fatal(err)
	}
	return docPath, tmpDir
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    types.Format
		wantErr bool
	}{
		{path: "report.docx", want: types.FormatDocx},
		{path: "page.HTML", want: types.FormatHTML},
		{path: "page.htm", want: types.FormatHTML},
		{path: "notes.odt", want: types.FormatODT},
		{path: "paper.pdf", want: types.FormatPDF},
		{path: "thesis.tex", want: types.FormatLaTeX},
		{path: "book.epub", want: types.FormatEPUB},
		{path: "data.xlsx", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// fakeConverter implements markdownConverter, recording the format used.
type fakeConverter struct {
	format types.Format
	out    string
}

func (f *fakeConverter) ToMarkdown(path string, from types.Format) (string, error) {
	f.format = from
	return f.out, nil
}

func TestDispatcher_Routing(t *testing.T) {
	conv := &fakeConverter{out: "from pandoc"}
	pdfImp := &fakeImporter{output: "from pdf heuristic"}
	d := &Dispatcher{pandoc: conv, pdf: pdfImp}

	out, err := d.Import("report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from pandoc" {
		t.Errorf("docx import = %q, want pandoc output", out)
	}
	if conv.format != types.FormatDocx {
		t.Errorf("pandoc called with format %q, want docx", conv.format)
	}

	out, err = d.Import("paper.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from pdf heuristic" {
		t.Errorf("pdf import = %q, want pdf backend output", out)
	}

	if _, err := d.Import("data.xlsx"); err == nil {
		t.Error("unsupported format should error")
	}
}

func TestImportFile(t *testing.T) {
	tests := []struct {
		name       string
		importer   *fakeImporter
		preCreate  bool // create output MD before running
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful import",
			importer:   &fakeImporter{output: "# Title\n\nContent here."},
			wantStatus: types.ConversionDone,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing markdown",
			importer:   &fakeImporter{output: "should not be called"},
			preCreate:  true,
			wantStatus: types.ConversionNone,
			wantLog:    "skipped:",
		},
		{
			name:       "import failure",
			importer:   &fakeImporter{err: errors.New("pandoc crashed")},
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docPath, tmpDir := setupDoc(t, "report.docx")
			outDir := filepath.Join(tmpDir, "out")

			if tt.preCreate {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(outDir, "report.md"), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ImportFile(tt.importer, docPath, outDir, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestImportFile_WritesMarkdown(t *testing.T) {
	docPath, tmpDir := setupDoc(t, "report.docx")
	outDir := filepath.Join(tmpDir, "out")
	imp := &fakeImporter{output: "# Report\n\nBody."}

	var log bytes.Buffer
	if status := ImportFile(imp, docPath, outDir, &log); status != types.ConversionDone {
		t.Fatalf("expected ConversionDone, got %q", status)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "report.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "# Report\n\nBody." {
		t.Errorf("written markdown = %q", data)
	}
}

func TestImportBatch(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	var paths []string
	for _, name := range []string{"a.docx", "b.docx", "c.docx"} {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte("doc"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	// Pre-create output for "b" to trigger skip.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "b.md"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	imp := &selectiveImporter{
		outputs: map[string]string{
			paths[0]: "# Doc A",
			paths[1]: "# Doc B",
		},
		errors: map[string]error{
			paths[2]: errors.New("bad document"),
		},
	}

	var log bytes.Buffer
	result := ImportBatch(imp, paths, outDir, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain summary line")
	}

	if len(result.Outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(result.Outcomes))
	}
	if result.Outcomes[0].TargetPath != filepath.Join(outDir, "a.md") {
		t.Errorf("outcome target = %q", result.Outcomes[0].TargetPath)
	}
	if result.Outcomes[2].Status != types.ConversionFailed {
		t.Errorf("outcome status = %q, want failed", result.Outcomes[2].Status)
	}
}

func TestPDFImporter(t *testing.T) {
	imp := NewPDFImporter(types.HeuristicConfig{})
	imp.extract = func(path string) (string, error) {
		return "Introduction\n\nThis is the first paragraph of the document, spanning more than seventy-nine characters of text.", nil
	}

	out, err := imp.Import("paper.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "## Introduction\n\nThis is the first paragraph of the document, spanning more than seventy-nine characters of text."
	if out != want {
		t.Errorf("Import() = %q, want %q", out, want)
	}
}

func TestPDFImporter_ExtractionError(t *testing.T) {
	imp := NewPDFImporter(types.HeuristicConfig{})
	imp.extract = func(path string) (string, error) {
		return "", errors.New("no text layer")
	}

	_, err := imp.Import("scan.pdf")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "scan.pdf") {
		t.Errorf("error should name the file, got: %v", err)
	}
}
