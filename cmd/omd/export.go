// Copyright OMD Tools Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/exporter"
	"github.com/omdtools/omd/internal/importer"
	"github.com/omdtools/omd/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.md>",
	Short: "Convert a Markdown file to another format",
	Long: `Export converts a Markdown file to docx, html, pdf, odt, rtf, latex,
or epub through pandoc. PDF output renders through wkhtmltopdf.

With --preview, the Markdown is rendered to a standalone HTML page in the
system temp directory instead, and its path is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	mdPath := args[0]

	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		return runPreview(cmd, mdPath)
	}

	importCfg, exportCfg, err := conversionConfig(cmd)
	if err != nil {
		return err
	}

	to, _ := cmd.Flags().GetString("to")
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		if to == "" {
			return fmt.Errorf("target unknown: pass --to, --out, or both")
		}
		outPath = strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + extForFormat(types.Format(to))
	}

	e := exporter.New(importCfg, exportCfg)
	err = e.ExportFile(mdPath, outPath, types.Format(to), os.Stdout)

	status := types.ConversionDone
	detail := ""
	if err != nil {
		status = types.ConversionFailed
		detail = err.Error()
	}
	recordHistory(cmd, types.ConversionRecord{
		SourcePath: mdPath,
		TargetPath: outPath,
		Direction:  types.DirectionExport,
		Format:     exportFormat(to, outPath),
		Status:     status,
		Detail:     detail,
	})
	return err
}

func runPreview(cmd *cobra.Command, mdPath string) error {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mdPath, err)
	}

	title := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	page, err := exporter.RenderHTMLPage(data, title)
	if err != nil {
		return err
	}

	path, err := exporter.WriteTempHTML(page)
	if err != nil {
		return err
	}
	fmt.Println(path)

	recordHistory(cmd, types.ConversionRecord{
		SourcePath: mdPath,
		TargetPath: path,
		Direction:  types.DirectionExport,
		Format:     types.FormatHTML,
		Status:     types.ConversionDone,
	})
	return nil
}

// extForFormat maps a target format to its conventional file extension.
func extForFormat(f types.Format) string {
	switch f {
	case types.FormatLaTeX:
		return ".tex"
	case types.FormatMarkdown:
		return ".md"
	default:
		return "." + string(f)
	}
}

// exportFormat resolves the recorded format from the --to flag or, failing
// that, the output path extension.
func exportFormat(to, outPath string) types.Format {
	if to != "" {
		return types.Format(to)
	}
	if f, err := importer.DetectFormat(outPath); err == nil {
		return f
	}
	return ""
}

func init() {
	exportCmd.Flags().String("to", "", "target format: docx, html, pdf, odt, rtf, latex, or epub")
	exportCmd.Flags().String("out", "", "output file path (default: input name with the target extension)")
	exportCmd.Flags().Bool("preview", false, "render to a temp HTML page and print its path")
	exportCmd.Flags().String("pdf-engine", "", "pandoc --pdf-engine for PDF export (default wkhtmltopdf)")
	exportCmd.Flags().String("profile", "", "conversion profile name")
	exportCmd.Flags().String("profiles-file", "", "profiles YAML file (default omd-profiles.yaml)")

	rootCmd.AddCommand(exportCmd)
}
