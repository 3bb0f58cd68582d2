// Package logtype provides per-format log line parsers.
//
// Each supported log format implements the Parser interface and is
// registered under a selector string (e.g. "apache-error"). Adding a new
// format means implementing Parser and registering it; nothing downstream
// changes.
package logtype

import (
	"fmt"
	"sort"
	"sync"
)

// RawLine is a single line of text read from a source file.
type RawLine struct {
	Source string // originating file path
	Number int    // 1-based line number, for diagnostics
	Text   string
}

// Parser converts raw log lines of one format into normalized messages.
//
// Parse returns the normalized message and true on a match. Lines that do
// not conform to the format return ("", false) and are excluded from the
// corpus. A matched message is never empty.
type Parser interface {
	// Name returns the selector string this parser is registered under.
	Name() string

	// FilePatterns returns the glob patterns used to locate this format's
	// log files inside an input directory (e.g. "error_log*").
	FilePatterns() []string

	// Parse normalizes a single raw line.
	Parse(line RawLine) (string, bool)
}

// Factory constructs a Parser wired with the given generalizer.
// A nil generalizer yields a parser that leaves messages untouched.
type Factory func(gen *Generalizer) Parser

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a parser factory to the registry under a selector name.
// A factory registered under an existing name overwrites the previous one.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("logtype: cannot register parser without a name and factory")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Lookup builds the parser registered under the given selector.
func Lookup(name string, gen *Generalizer) (Parser, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown log type %q (valid types: %v)", name, names())
	}
	return f(gen), nil
}

// Names returns all registered selector strings in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return names()
}

func names() []string {
	list := make([]string, 0, len(registry))
	for name := range registry {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}
