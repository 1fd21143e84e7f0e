// Copyright OMD Tools Inc., 2026. All rights reserved.

package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omdtools/omd/pkg/types"
)

// fakeWriter records the last FromMarkdown call.
type fakeWriter struct {
	markdown string
	outPath  string
	format   types.Format
	err      error
}

func (f *fakeWriter) FromMarkdown(markdown string, outPath string, to types.Format) error {
	f.markdown = markdown
	f.outPath = outPath
	f.format = to
	return f.err
}

func TestExport(t *testing.T) {
	f := &fakeWriter{}
	e := &Exporter{pandoc: f}

	if err := e.Export("# Doc", "out.docx", types.FormatDocx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.markdown != "# Doc" || f.outPath != "out.docx" || f.format != types.FormatDocx {
		t.Errorf("FromMarkdown called with (%q, %q, %q)", f.markdown, f.outPath, f.format)
	}
}

func TestExport_MarkdownTargetRejected(t *testing.T) {
	e := &Exporter{pandoc: &fakeWriter{}}
	if err := e.Export("text", "out.md", types.FormatMarkdown); err == nil {
		t.Error("expected error for markdown-to-markdown export")
	}
}

func TestExportFile(t *testing.T) {
	tmpDir := t.TempDir()
	mdPath := filepath.Join(tmpDir, "doc.md")
	if err := os.WriteFile(mdPath, []byte("# Doc\n\nBody."), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &fakeWriter{}
	e := &Exporter{pandoc: f}

	var log bytes.Buffer
	err := e.ExportFile(mdPath, filepath.Join(tmpDir, "doc.pdf"), "", &log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.format != types.FormatPDF {
		t.Errorf("format = %q, want pdf (inferred from extension)", f.format)
	}
	if f.markdown != "# Doc\n\nBody." {
		t.Errorf("markdown = %q", f.markdown)
	}
	if !strings.Contains(log.String(), "exported: doc.md") {
		t.Errorf("log = %q", log.String())
	}
}

func TestExportFile_UnknownExtension(t *testing.T) {
	e := &Exporter{pandoc: &fakeWriter{}}
	var log bytes.Buffer
	if err := e.ExportFile("doc.md", "out.xyz", "", &log); err == nil {
		t.Error("expected error for unknown output extension")
	}
}

func TestExportFile_Failure(t *testing.T) {
	tmpDir := t.TempDir()
	mdPath := filepath.Join(tmpDir, "doc.md")
	if err := os.WriteFile(mdPath, []byte("body"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &fakeWriter{err: errors.New("wkhtmltopdf missing")}
	e := &Exporter{pandoc: f}

	var log bytes.Buffer
	err := e.ExportFile(mdPath, "out.pdf", types.FormatPDF, &log)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Errorf("log = %q, want failure line", log.String())
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML([]byte("## Title\n\nSome *emphasis* here."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "Title") {
		t.Errorf("html = %q, want an h2 heading", html)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("html = %q, want emphasis markup", html)
	}
}

func TestRenderHTML_GFMTables(t *testing.T) {
	md := "| a | b |\n|---|---|\n| 1 | 2 |"
	out, err := RenderHTML([]byte(md))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("html = %q, want a table", out)
	}
}

func TestRenderHTMLPage(t *testing.T) {
	out, err := RenderHTMLPage([]byte("content"), "My Doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := string(out)
	for _, frag := range []string{"<!DOCTYPE html>", `<meta charset="utf-8">`, "<title>My Doc</title>", "content"} {
		if !strings.Contains(page, frag) {
			t.Errorf("page missing %q:\n%s", frag, page)
		}
	}
}

func TestWriteTempHTML(t *testing.T) {
	path, err := WriteTempHTML([]byte("<p>hello</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	if filepath.Base(path) != "omd_export.html" {
		t.Errorf("temp file name = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<p>hello</p>" {
		t.Errorf("temp content = %q", data)
	}
}
