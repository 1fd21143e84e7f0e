// Copyright OMD Tools Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/fetch"
	"github.com/omdtools/omd/internal/importer"
	"github.com/omdtools/omd/internal/profile"
	"github.com/omdtools/omd/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Convert documents to Markdown",
	Long: `Import converts Word, HTML, ODT, RTF, LaTeX, and EPUB documents to
Markdown through pandoc, and PDFs through text extraction plus a heading
heuristic. Each input produces a .md file in the output directory; inputs
whose Markdown already exists are skipped.

Remote documents can be fetched first with --url.`,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	importCfg, exportCfg, err := conversionConfig(cmd)
	if err != nil {
		return err
	}

	paths := args

	urls, _ := cmd.Flags().GetStringSlice("url")
	for _, u := range urls {
		p, err := fetch.Download(context.Background(), http.DefaultClient, u, importCfg.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "fetched: %s\n", p)
		paths = append(paths, p)
	}

	if len(paths) == 0 {
		return fmt.Errorf("no input files: pass file paths or --url")
	}

	d := importer.New(importCfg, exportCfg)
	result := importer.ImportBatch(d, paths, importCfg.OutputDir, os.Stdout)

	recordImports(cmd, result.Outcomes)

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to import", result.Failed)
	}
	return nil
}

// recordImports appends batch outcomes to the conversion history. History
// failures only warn; the conversion itself already succeeded.
func recordImports(cmd *cobra.Command, outcomes []importer.Outcome) {
	records := make([]types.ConversionRecord, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Status == types.ConversionNone {
			continue
		}
		format, err := importer.DetectFormat(o.SourcePath)
		if err != nil {
			format = ""
		}
		records = append(records, types.ConversionRecord{
			SourcePath: o.SourcePath,
			TargetPath: o.TargetPath,
			Direction:  types.DirectionImport,
			Format:     format,
			Status:     o.Status,
		})
	}
	recordHistory(cmd, records...)
}

// conversionConfig assembles import and export settings from flags, the
// config file, and an optional profile.
func conversionConfig(cmd *cobra.Command) (types.ImportConfig, types.ExportConfig, error) {
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = viperString("import.output_dir", ".")
	}
	mediaDir, _ := cmd.Flags().GetString("media-dir")
	if mediaDir == "" {
		mediaDir = viperString("import.media_dir", ".")
	}
	maxLen, _ := cmd.Flags().GetInt("max-heading-length")
	maxLines, _ := cmd.Flags().GetInt("max-heading-lines")
	pdfEngine, _ := cmd.Flags().GetString("pdf-engine")
	if pdfEngine == "" {
		pdfEngine = viperString("export.pdf_engine", "")
	}

	importCfg := types.ImportConfig{
		OutputDir: outDir,
		MediaDir:  mediaDir,
		Heuristic: types.HeuristicConfig{
			MaxHeadingLength: maxLen,
			MaxHeadingLines:  maxLines,
		},
	}
	exportCfg := types.ExportConfig{PDFEngine: pdfEngine}

	name, _ := cmd.Flags().GetString("profile")
	if name == "" {
		return importCfg, exportCfg, nil
	}

	profilesFile, _ := cmd.Flags().GetString("profiles-file")
	if profilesFile == "" {
		profilesFile = viperString("profiles_file", "omd-profiles.yaml")
	}
	f, err := profile.Read(profilesFile)
	if err != nil {
		return importCfg, exportCfg, err
	}
	p, err := f.Find(name)
	if err != nil {
		return importCfg, exportCfg, err
	}

	// Explicit flags win over profile values.
	pImport := p.ImportConfig()
	if outDir == "." && pImport.OutputDir != "" {
		importCfg.OutputDir = pImport.OutputDir
	}
	if maxLen == 0 {
		importCfg.Heuristic.MaxHeadingLength = pImport.Heuristic.MaxHeadingLength
	}
	if maxLines == 0 {
		importCfg.Heuristic.MaxHeadingLines = pImport.Heuristic.MaxHeadingLines
	}
	if pdfEngine == "" {
		exportCfg.PDFEngine = p.ExportConfig().PDFEngine
	}
	return importCfg, exportCfg, nil
}

func init() {
	importCmd.Flags().String("out-dir", "", "directory for Markdown output (default \".\")")
	importCmd.Flags().String("media-dir", "", "directory for media extracted from documents (default \".\")")
	importCmd.Flags().StringSlice("url", nil, "fetch a remote document before importing (repeatable)")
	importCmd.Flags().Int("max-heading-length", 0, "heading heuristic: maximum joined length in bytes (0 = default 80)")
	importCmd.Flags().Int("max-heading-lines", 0, "heading heuristic: maximum lines per heading (0 = default 2)")
	importCmd.Flags().String("pdf-engine", "", "pandoc --pdf-engine for PDF export (default wkhtmltopdf)")
	importCmd.Flags().String("profile", "", "conversion profile name")
	importCmd.Flags().String("profiles-file", "", "profiles YAML file (default omd-profiles.yaml)")

	rootCmd.AddCommand(importCmd)
}
