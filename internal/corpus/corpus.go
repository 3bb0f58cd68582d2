// Package corpus builds the document set over which n-gram statistics
// are computed.
//
// Each input file becomes one Document: the ordered sequence of normalized
// messages its lines produced. Files are the fixed unit of document
// frequency; documents are never merged or split.
package corpus

import (
	"bufio"
	"log/slog"
	"os"

	"github.com/gstewart/loggram/internal/logtype"
)

// Document is the ordered sequence of normalized messages from one file.
type Document struct {
	Source   string
	Messages []string
}

// Builder constructs Documents from log files using a log-type parser.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a Builder. A nil logger falls back to slog.Default.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Build parses each file into one Document, in the given path order.
//
// Lines the parser does not match are skipped silently. A file with zero
// matched lines still yields an empty Document: empty documents count
// toward the total document count N used by IDF smoothing. Unreadable
// files are logged as warnings and excluded entirely; they never abort
// the run.
func (b *Builder) Build(paths []string, parser logtype.Parser) []Document {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		doc, err := b.buildOne(path, parser)
		if err != nil {
			b.logger.Warn("skipping unreadable file", "path", path, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

func (b *Builder) buildOne(path string, parser logtype.Parser) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	doc := Document{Source: path}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		msg, ok := parser.Parse(logtype.RawLine{
			Source: path,
			Number: lineNum,
			Text:   scanner.Text(),
		})
		if !ok {
			continue
		}
		doc.Messages = append(doc.Messages, msg)
	}

	if err := scanner.Err(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// TotalMessages returns the number of normalized messages across all documents.
func TotalMessages(docs []Document) int {
	total := 0
	for _, d := range docs {
		total += len(d.Messages)
	}
	return total
}
