// Copyright OMD Tools Inc., 2026. All rights reserved.

package exporter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// tempHTMLName is the fixed temp file written for previews and for feeding
// wkhtmltopdf; successive exports overwrite it.
const tempHTMLName = "omd_export.html"

// engine renders Markdown fragments with GFM extensions. goldmark instances
// are stateless, so one shared engine serves all calls.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderHTML converts a Markdown fragment into an HTML fragment.
func RenderHTML(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderHTMLPage converts Markdown into a complete, standalone HTML page.
func RenderHTMLPage(markdown []byte, title string) ([]byte, error) {
	body, err := RenderHTML(markdown)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", title)
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// WriteTempHTML writes HTML content to a well-known file in the system
// temp directory and returns its path.
func WriteTempHTML(content []byte) (string, error) {
	path := filepath.Join(os.TempDir(), tempHTMLName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing temp HTML: %w", err)
	}
	return path, nil
}
