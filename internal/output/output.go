// Package output renders ranked n-gram results. It supports text, JSON,
// and table formats with optional terminal coloring.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gstewart/loggram/internal/ngram"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Report is the full result of one ranking run.
type Report struct {
	LogType   string              `json:"log_type"`
	NGramSize int                 `json:"ngram_size"`
	Files     int                 `json:"files"`
	Records   int                 `json:"records"`
	NGrams    []ngram.ScoredNGram `json:"ngrams"`
}

// Writer handles writing formatted reports.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer.
func New(w io.Writer, format Format, color ColorMode) *Writer {
	return &Writer{w: w, format: format, color: color}
}

// WriteReport outputs a ranking report in the configured format.
func (wr *Writer) WriteReport(r Report) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(r)
	case FormatTable:
		return wr.writeTable(r)
	default:
		return wr.writeText(r)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeText(r Report) error {
	colorize := shouldColorize(wr.color, wr.w)

	fmt.Fprintf(wr.w, "Identified %d files for parsing\n", r.Files)
	fmt.Fprintf(wr.w, "There are %d log records in this data\n\n", r.Records)

	if len(r.NGrams) == 0 {
		fmt.Fprintln(wr.w, "No matching log records found - nothing to rank.")
		return nil
	}

	label := fmt.Sprintf("%d-GRAMS", r.NGramSize)
	header := fmt.Sprintf("%-65s%s", label, "TF-IDF VALUE")
	if colorize {
		header = colorBold + header + colorReset
	}
	fmt.Fprintln(wr.w, header)

	for _, g := range r.NGrams {
		fmt.Fprintf(wr.w, "%-70s%5.2f\n", g.Text, g.Score)
	}
	return nil
}

func (wr *Writer) writeTable(r Report) error {
	if len(r.NGrams) == 0 {
		fmt.Fprintln(wr.w, "No matching log records found - nothing to rank.")
		return nil
	}

	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tDOCS\tN-GRAM")
	fmt.Fprintln(tw, "----\t-----\t----\t------")

	for i, g := range r.NGrams {
		text := g.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%d\t%s\n", i+1, g.Score, g.DocFreq, text)
	}

	return tw.Flush()
}
