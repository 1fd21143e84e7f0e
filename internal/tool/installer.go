// Copyright OMD Tools Inc., 2026. All rights reserved.

package tool

import (
	"bytes"
	"fmt"
)

// packageIDs maps a tool binary to its winget package identifier.
var packageIDs = map[string]string{
	BinWkhtmltopdf: "wkhtmltopdf.wkhtmltox",
	BinPandoc:      "JohnMacFarlane.Pandoc",
}

// Installer installs missing tools through the winget package manager.
type Installer struct {
	winget *Tool
}

// NewInstaller returns an installer backed by the system winget binary.
func NewInstaller() *Installer {
	return newInstaller(defaultExec)
}

func newInstaller(exec executor) *Installer {
	return &Installer{winget: newTool(BinWinget, exec)}
}

// Install installs the named tool (pandoc or wkhtmltopdf). It requires
// winget to be available; a failed installation surfaces winget's combined
// output in the error.
func (i *Installer) Install(bin string) error {
	id, ok := packageIDs[bin]
	if !ok {
		return fmt.Errorf("no winget package known for %q", bin)
	}
	if !i.winget.Available() {
		return fmt.Errorf("winget is not available; install %s manually", bin)
	}

	args := []string{
		"install", "-e", "--id", id,
		"--accept-source-agreements", "--accept-package-agreements",
	}

	var stdout, stderr bytes.Buffer
	if err := i.winget.Run(args, nil, &stdout, &stderr); err != nil {
		return fmt.Errorf("installing %s (%s): %w: %s %s",
			bin, id, err, stdout.String(), stderr.String())
	}
	return nil
}
