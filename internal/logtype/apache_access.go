package logtype

import (
	"regexp"
	"strings"
)

// apacheAccessLine matches the Apache common/combined access log format:
//
//	127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326
//
// with optional trailing referer and user-agent fields (combined format).
var apacheAccessLine = regexp.MustCompile(`^(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+)(?: "[^"]*" "[^"]*")?$`)

// numericSegment matches path segments that are purely numeric, e.g. the
// "123" in /user/123/profile.
var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// ApacheAccessParser normalizes Apache access log lines into
// "METHOD path status" strings.
//
// The client address, identity, timestamp, protocol version, response size
// and referer/user-agent fields are dropped; numeric path segments and
// query strings are generalized so that requests for the same route
// collapse to the same token sequence.
type ApacheAccessParser struct {
	gen *Generalizer
}

// NewApacheAccessParser creates an ApacheAccessParser.
// A nil generalizer leaves messages untouched.
func NewApacheAccessParser(gen *Generalizer) *ApacheAccessParser {
	if gen == nil {
		gen = NewGeneralizer(false, nil)
	}
	return &ApacheAccessParser{gen: gen}
}

// Name returns the registry selector for this parser.
func (p *ApacheAccessParser) Name() string { return "apache-access" }

// FilePatterns returns the filename globs that locate Apache access logs.
func (p *ApacheAccessParser) FilePatterns() []string {
	return []string{"access_log*", "ssl_access_log*", "access.log*"}
}

// Parse normalizes an access log line to "METHOD path status".
// Lines that do not conform to the common/combined format, or whose
// request line is malformed (e.g. "-"), do not match.
func (p *ApacheAccessParser) Parse(line RawLine) (string, bool) {
	m := apacheAccessLine.FindStringSubmatch(strings.TrimRight(line.Text, " \t\r"))
	if m == nil {
		return "", false
	}

	request, status := m[5], m[6]
	fields := strings.Fields(request)
	if len(fields) < 2 {
		return "", false
	}
	method, path := fields[0], templatePath(fields[1])

	msg := strings.TrimSpace(p.gen.Apply(method + " " + path + " " + status))
	if msg == "" {
		return "", false
	}
	return msg, true
}

// templatePath strips the query string and replaces purely numeric path
// segments with a placeholder, turning /user/123?tab=posts into /user/<n>.
func templatePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for {
		replaced := numericSegment.ReplaceAllString(path, "/<n>$1")
		if replaced == path {
			return path
		}
		path = replaced
	}
}

func init() {
	Register("apache-access", func(gen *Generalizer) Parser {
		return NewApacheAccessParser(gen)
	})
}
