// Copyright OMD Tools Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/tool"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Check and install the external conversion tools",
	Long: `Tools manages the external binaries omd depends on: pandoc for format
conversion, wkhtmltopdf for PDF rendering, and winget for installation.`,
}

var toolsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which external tools are available",
	RunE: func(cmd *cobra.Command, args []string) error {
		status := tool.Detect()

		printTool(tool.BinPandoc, status.Pandoc)
		printTool(tool.BinWkhtmltopdf, status.Wkhtmltopdf)
		printTool(tool.BinWinget, status.Winget)

		if !status.CanImport() {
			fmt.Fprintln(os.Stdout, "\nDocument import/export unavailable: install pandoc.")
		}
		if status.Pandoc && !status.CanExportPDF() {
			fmt.Fprintln(os.Stdout, "\nPDF export unavailable: install wkhtmltopdf.")
		}
		if !status.Pandoc || !status.Wkhtmltopdf {
			return fmt.Errorf("missing external tools")
		}
		return nil
	},
}

var toolsInstallCmd = &cobra.Command{
	Use:   "install <pandoc|wkhtmltopdf>",
	Short: "Install a missing tool through winget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		fmt.Fprintf(os.Stdout, "installing %s via winget...\n", name)
		if err := tool.NewInstaller().Install(name); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "installed: %s\n", name)
		return nil
	},
}

func printTool(name string, ok bool) {
	state := "missing"
	if ok {
		state = "ok"
	}
	fmt.Fprintf(os.Stdout, "%-12s %s\n", name, state)
}

func init() {
	toolsCmd.AddCommand(toolsCheckCmd)
	toolsCmd.AddCommand(toolsInstallCmd)

	rootCmd.AddCommand(toolsCmd)
}
