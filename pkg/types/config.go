package types

// HeuristicConfig holds the thresholds for the plain-text heading heuristic.
// The defaults match the converter's historical behaviour; changing them
// changes which blocks are promoted to headings.
type HeuristicConfig struct {
	// MaxHeadingLength is the maximum joined length, in bytes, for a block
	// to qualify as a heading (default 80, exclusive).
	MaxHeadingLength int `json:"max_heading_length" yaml:"max_heading_length"`

	// MaxHeadingLines is the maximum number of lines in a heading block
	// (default 2, inclusive).
	MaxHeadingLines int `json:"max_heading_lines" yaml:"max_heading_lines"`
}

// ImportConfig holds settings for converting foreign documents into Markdown.
type ImportConfig struct {
	// OutputDir is where imported Markdown files are written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MediaDir is where pandoc extracts embedded media (default ".").
	MediaDir string `json:"media_dir" yaml:"media_dir"`

	// Heuristic configures the PDF text-to-Markdown classifier.
	Heuristic HeuristicConfig `json:"heuristic" yaml:"heuristic"`
}

// ExportConfig holds settings for converting Markdown into other formats.
type ExportConfig struct {
	// PDFEngine is the pandoc --pdf-engine value for PDF output
	// (default "wkhtmltopdf").
	PDFEngine string `json:"pdf_engine" yaml:"pdf_engine"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// HistoryDir is the directory containing the SQLite database
	// (default "~/.local/share/omd" resolution is the caller's concern).
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults caps history queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Import  ImportConfig  `json:"import" yaml:"import"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	History HistoryConfig `json:"history" yaml:"history"`
}
