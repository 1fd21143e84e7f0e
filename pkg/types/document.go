// Copyright OMD Tools Inc., 2026. All rights reserved.

package types

import "time"

// Format identifies a document format handled by the converter.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatDocx     Format = "docx"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatODT      Format = "odt"
	FormatRTF      Format = "rtf"
	FormatLaTeX    Format = "latex"
	FormatEPUB     Format = "epub"
)

// Direction distinguishes conversions into Markdown from conversions out of it.
type Direction string

const (
	DirectionImport Direction = "import"
	DirectionExport Direction = "export"
)

// ConversionStatus indicates the outcome of a single conversion.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionRecord describes one import or export run for the history store.
type ConversionRecord struct {
	// SourcePath is the input file as given by the caller.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TargetPath is the file the conversion wrote, empty on failure.
	TargetPath string `json:"target_path" yaml:"target_path"`

	// Direction is import or export.
	Direction Direction `json:"direction" yaml:"direction"`

	// Format is the non-Markdown side of the conversion (docx, pdf, html, ...).
	Format Format `json:"format" yaml:"format"`

	// Status records whether the conversion succeeded.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Detail carries the error message for failed conversions.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	// CreatedAt is when the conversion ran.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
