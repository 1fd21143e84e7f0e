// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package textmd reconstructs Markdown structure from flat extracted text.
// PDF text extraction yields lines with no font or layout metadata; this
// package groups them into blocks on blank-line boundaries and promotes
// short, unpunctuated blocks to headings.
package textmd

import (
	"strings"

	"github.com/omdtools/omd/pkg/types"
)

const (
	// DefaultMaxHeadingLength is the exclusive byte-length bound on a
	// heading's joined text.
	DefaultMaxHeadingLength = 80

	// DefaultMaxHeadingLines is the inclusive line-count bound on a heading
	// block.
	DefaultMaxHeadingLines = 2
)

// headingStops are the trailing characters that disqualify a block from
// being a heading. A title does not end mid-sentence.
const headingStops = ".,;:!?"

// Kind classifies a block of extracted text.
type Kind string

const (
	Heading   Kind = "heading"
	Paragraph Kind = "paragraph"
)

// Segment groups lines into blocks separated by blank lines. Lines are
// trimmed of surrounding whitespace; whitespace-only lines act as block
// separators. Every returned block has at least one line, in input order.
// Consecutive, leading, and trailing blank lines produce nothing.
func Segment(lines []string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, trimmed)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// Classifier applies the heading heuristic. The zero value is not usable;
// construct one with NewClassifier.
type Classifier struct {
	maxLen   int
	maxLines int
}

// NewClassifier builds a Classifier from cfg, substituting the default
// thresholds for zero or negative values.
func NewClassifier(cfg types.HeuristicConfig) Classifier {
	c := Classifier{maxLen: cfg.MaxHeadingLength, maxLines: cfg.MaxHeadingLines}
	if c.maxLen <= 0 {
		c.maxLen = DefaultMaxHeadingLength
	}
	if c.maxLines <= 0 {
		c.maxLines = DefaultMaxHeadingLines
	}
	return c
}

// Classify joins a block's lines with single spaces and decides whether the
// block is a heading or a paragraph. A block is a heading only when the
// joined text is shorter than the length bound, does not end in sentence
// punctuation, and the block spans at most the line bound.
func (c Classifier) Classify(block []string) (Kind, string) {
	joined := strings.Join(block, " ")
	if len(joined) < c.maxLen &&
		len(block) <= c.maxLines &&
		!endsWithStop(joined) {
		return Heading, joined
	}
	return Paragraph, joined
}

// Render emits a single classified block as Markdown. Headings use one
// fixed level; nothing distinguishes chapter titles from section titles in
// layout-free text.
func Render(kind Kind, joined string) string {
	if kind == Heading {
		return "## " + joined
	}
	return joined
}

// RenderDocument classifies and renders every block, separating rendered
// blocks with exactly one blank line. Blocks whose joined text is empty are
// skipped.
func (c Classifier) RenderDocument(blocks [][]string) string {
	var b strings.Builder
	first := true
	for _, block := range blocks {
		kind, joined := c.Classify(block)
		if joined == "" {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		b.WriteString(Render(kind, joined))
		first = false
	}
	return b.String()
}

// FromText runs the full pipeline over raw extracted text: split into
// lines, segment into blocks, classify, and render. Empty input yields an
// empty document.
func (c Classifier) FromText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return c.RenderDocument(Segment(strings.Split(text, "\n")))
}

func endsWithStop(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsRune(headingStops, rune(s[len(s)-1]))
}
