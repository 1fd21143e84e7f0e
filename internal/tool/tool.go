// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package tool implements detection and execution of the external
// command-line tools the converter depends on: pandoc for format
// conversion, wkhtmltopdf as the PDF engine, and winget for installation.
package tool

import (
	"fmt"
	"io"
	"os/exec"
)

const (
	BinPandoc      = "pandoc"
	BinWkhtmltopdf = "wkhtmltopdf"
	BinWinget      = "winget"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// RunPiped wires the given streams to the child process and waits for it to
// exit. cmd.Run both closes the pipes and reaps the process, so there is no
// path that leaks a handle.
func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Tool is one external binary the converter shells out to.
type Tool struct {
	bin  string
	exec executor
}

func newTool(bin string, exec executor) *Tool {
	return &Tool{bin: bin, exec: exec}
}

// Pandoc returns the pandoc tool backed by the real executor.
func Pandoc() *Tool { return newTool(BinPandoc, defaultExec) }

// Wkhtmltopdf returns the wkhtmltopdf tool backed by the real executor.
func Wkhtmltopdf() *Tool { return newTool(BinWkhtmltopdf, defaultExec) }

// Winget returns the winget tool backed by the real executor.
func Winget() *Tool { return newTool(BinWinget, defaultExec) }

// Name returns the binary name.
func (t *Tool) Name() string { return t.bin }

// Available reports whether the binary is on PATH and answers a --version
// probe.
func (t *Tool) Available() bool {
	if _, err := t.exec.LookPath(t.bin); err != nil {
		return false
	}
	return t.exec.RunSilent(t.bin, "--version") == nil
}

// Run executes the tool with the given arguments and piped streams.
func (t *Tool) Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := t.exec.RunPiped(t.bin, args, stdin, stdout, stderr); err != nil {
		return fmt.Errorf("running %s: %w", t.bin, err)
	}
	return nil
}

// Status reports which external tools are usable.
type Status struct {
	Pandoc      bool
	Wkhtmltopdf bool
	Winget      bool
}

// CanImport reports whether non-PDF imports and non-PDF exports can run.
func (s Status) CanImport() bool { return s.Pandoc }

// CanExportPDF reports whether Markdown-to-PDF export can run.
func (s Status) CanExportPDF() bool { return s.Pandoc && s.Wkhtmltopdf }

// Detect probes all external tools.
func Detect() Status {
	return detect(defaultExec)
}

func detect(exec executor) Status {
	return Status{
		Pandoc:      newTool(BinPandoc, exec).Available(),
		Wkhtmltopdf: newTool(BinWkhtmltopdf, exec).Available(),
		Winget:      newTool(BinWinget, exec).Available(),
	}
}
