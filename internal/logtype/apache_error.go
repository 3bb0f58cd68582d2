package logtype

import (
	"regexp"
	"strings"
)

// errorBracketField matches one leading bracket field of an Apache error
// log line, including the spaces separating it from what follows (or end
// of line, for a field with nothing after it):
//
//	[Wed Oct 11 14:32:52 2000] [error] [client 127.0.0.1] File does not exist
//	[Fri Sep 09 10:42:29.902022 2011] [core:error] [pid 35708:tid 4328636416] [client 72.15.99.187] ...
//
// Fields are stripped one at a time so a line consisting solely of bracket
// fields leaves an empty remainder instead of a trailing field being
// mistaken for the message.
var errorBracketField = regexp.MustCompile(`^\[[^\]]*\](?: +|$)`)

// ApacheErrorParser normalizes Apache web server error log lines.
//
// The bracketed timestamp, level, pid and client fields are stripped and
// volatile substrings inside the message (client addresses, ids) are
// generalized, so structurally identical errors from different clients
// collapse to the same token sequence.
type ApacheErrorParser struct {
	gen *Generalizer
}

// NewApacheErrorParser creates an ApacheErrorParser.
// A nil generalizer leaves messages untouched.
func NewApacheErrorParser(gen *Generalizer) *ApacheErrorParser {
	if gen == nil {
		gen = NewGeneralizer(false, nil)
	}
	return &ApacheErrorParser{gen: gen}
}

// Name returns the registry selector for this parser.
func (p *ApacheErrorParser) Name() string { return "apache-error" }

// FilePatterns returns the filename globs that locate Apache error logs.
func (p *ApacheErrorParser) FilePatterns() []string {
	return []string{"error_log*", "ssl_error_log*", "error.log*"}
}

// Parse extracts the message portion of an error log line.
// At least two bracket fields (timestamp and level) must be present, and
// something must remain after the last one; lines without that structure
// do not match.
func (p *ApacheErrorParser) Parse(line RawLine) (string, bool) {
	rest := strings.TrimRight(line.Text, " \t\r")

	fields := 0
	for {
		prefix := errorBracketField.FindString(rest)
		if prefix == "" {
			break
		}
		rest = rest[len(prefix):]
		fields++
	}
	if fields < 2 {
		return "", false
	}

	msg := strings.TrimSpace(p.gen.Apply(rest))
	if msg == "" {
		return "", false
	}
	return msg, true
}

func init() {
	Register("apache-error", func(gen *Generalizer) Parser {
		return NewApacheErrorParser(gen)
	})
}
