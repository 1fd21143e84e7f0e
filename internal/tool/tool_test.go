// Copyright OMD Tools Inc., 2026. All rights reserved.

package tool

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
	pipedCalls    [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	m.pipedCalls = append(m.pipedCalls, append([]string{name}, args...))
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout, stderr)
	}
	return nil
}

// versionOK marks bins as present and answering --version.
func versionOK(bins ...string) *mockExecutor {
	m := &mockExecutor{
		availableBins: map[string]bool{},
		runnableCmds:  map[string]bool{},
	}
	for _, b := range bins {
		m.availableBins[b] = true
		m.runnableCmds[b+" --version"] = true
	}
	return m
}

func TestToolAvailable(t *testing.T) {
	tests := []struct {
		name string
		exec *mockExecutor
		bin  string
		want bool
	}{
		{
			name: "present and responding",
			exec: versionOK("pandoc"),
			bin:  BinPandoc,
			want: true,
		},
		{
			name: "missing from PATH",
			exec: versionOK(),
			bin:  BinPandoc,
			want: false,
		},
		{
			name: "on PATH but version probe fails",
			exec: &mockExecutor{
				availableBins: map[string]bool{"wkhtmltopdf": true},
				runnableCmds:  map[string]bool{},
			},
			bin:  BinWkhtmltopdf,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTool(tt.bin, tt.exec).Available()
			if got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		exec *mockExecutor
		want Status
	}{
		{
			name: "all tools present",
			exec: versionOK("pandoc", "wkhtmltopdf", "winget"),
			want: Status{Pandoc: true, Wkhtmltopdf: true, Winget: true},
		},
		{
			name: "pandoc only",
			exec: versionOK("pandoc"),
			want: Status{Pandoc: true},
		},
		{
			name: "nothing installed",
			exec: versionOK(),
			want: Status{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(tt.exec)
			if got != tt.want {
				t.Errorf("detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatusCapabilities(t *testing.T) {
	full := Status{Pandoc: true, Wkhtmltopdf: true, Winget: true}
	if !full.CanImport() || !full.CanExportPDF() {
		t.Error("full status should allow import and PDF export")
	}

	noEngine := Status{Pandoc: true}
	if !noEngine.CanImport() {
		t.Error("pandoc alone should allow import")
	}
	if noEngine.CanExportPDF() {
		t.Error("PDF export should require wkhtmltopdf")
	}
}

func TestToolRun(t *testing.T) {
	exec := &mockExecutor{
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("out: " + string(data)))
			return nil
		},
	}
	tl := newTool(BinPandoc, exec)

	var out bytes.Buffer
	err := tl.Run([]string{"-f", "docx"}, strings.NewReader("body"), &out, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "out: body" {
		t.Errorf("got output %q", got)
	}
	if len(exec.pipedCalls) != 1 || exec.pipedCalls[0][0] != "pandoc" {
		t.Errorf("unexpected piped calls: %v", exec.pipedCalls)
	}
}

func TestToolRun_Error(t *testing.T) {
	exec := &mockExecutor{
		runPipedFunc: func(string, []string, io.Reader, io.Writer, io.Writer) error {
			return errors.New("exit status 1")
		},
	}
	err := newTool(BinPandoc, exec).Run(nil, nil, io.Discard, io.Discard)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "pandoc") {
		t.Errorf("error should name the binary, got: %v", err)
	}
}
