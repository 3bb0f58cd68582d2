package logtype

import (
	"regexp"
)

// GeneralizePattern defines a built-in pattern for volatile substrings.
//
// Matches are replaced with a constant placeholder token so that
// structurally identical messages from different clients or requests
// collapse to the same token sequence.
type GeneralizePattern struct {
	Name        string
	Regex       *regexp.Regexp
	Placeholder string
	Description string
}

var (
	// IPv4 addresses: 192.168.1.1
	ipv4Regex = regexp.MustCompile(`\b(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(?::\d{1,5})?\b`)

	// IPv6 addresses: 2001:db8::1, fe80::1
	ipv6Regex = regexp.MustCompile(`(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,7}:|(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,5}(?::[0-9a-fA-F]{1,4}){1,2}|(?:[0-9a-fA-F]{1,4}:){1,4}(?::[0-9a-fA-F]{1,4}){1,3}|(?:[0-9a-fA-F]{1,4}:){1,3}(?::[0-9a-fA-F]{1,4}){1,4}|(?:[0-9a-fA-F]{1,4}:){1,2}(?::[0-9a-fA-F]{1,4}){1,5}|[0-9a-fA-F]{1,4}:(?::[0-9a-fA-F]{1,4}){1,6}|:(?::[0-9a-fA-F]{1,4}){1,7}`)

	// Process/thread ids: pid 35708, pid=1234, tid: 4328636416
	pidRegex = regexp.MustCompile(`(?i)\b[pt]id[ =:]+\d+\b`)

	// Request ids in UUID form: 550e8400-e29b-41d4-a716-446655440000
	requestIDRegex = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)

	// Long bare hex identifiers (session tokens, trace ids)
	hexIDRegex = regexp.MustCompile(`\b[0-9a-f]{12,}\b`)
)

// BuiltInGeneralizePatterns contains all available generalization patterns,
// selectable by name via configuration.
var BuiltInGeneralizePatterns = map[string]GeneralizePattern{
	"ipv4": {
		Name:        "ipv4",
		Regex:       ipv4Regex,
		Placeholder: "<ip>",
		Description: "IPv4 addresses with optional port",
	},
	"ipv6": {
		Name:        "ipv6",
		Regex:       ipv6Regex,
		Placeholder: "<ip>",
		Description: "IPv6 addresses",
	},
	"pid": {
		Name:        "pid",
		Regex:       pidRegex,
		Placeholder: "<pid>",
		Description: "Process and thread ids",
	},
	"request_id": {
		Name:        "request_id",
		Regex:       requestIDRegex,
		Placeholder: "<id>",
		Description: "UUID-style request ids",
	},
	"hex_id": {
		Name:        "hex_id",
		Regex:       hexIDRegex,
		Placeholder: "<id>",
		Description: "Long bare hex identifiers",
	},
}

// DefaultGeneralizePatterns returns the pattern set enabled by default.
// hex_id is excluded because short hex words (e.g. "deadbeef" constants in
// messages) produce false positives.
func DefaultGeneralizePatterns() []string {
	return []string{"ipv4", "ipv6", "pid", "request_id"}
}

// Generalizer replaces volatile substrings in normalized messages with
// stable placeholder tokens.
type Generalizer struct {
	enabled  bool
	patterns []GeneralizePattern
}

// NewGeneralizer creates a Generalizer using the named patterns.
// Unknown pattern names are silently ignored; an empty selection falls
// back to the default set. If enabled is false, Apply returns text unchanged.
func NewGeneralizer(enabled bool, patternNames []string) *Generalizer {
	patterns := generalizePatterns(patternNames)
	if len(patterns) == 0 {
		patterns = generalizePatterns(DefaultGeneralizePatterns())
	}
	return &Generalizer{enabled: enabled, patterns: patterns}
}

// Apply replaces every match of every configured pattern with its
// placeholder token.
func (g *Generalizer) Apply(text string) string {
	if !g.enabled {
		return text
	}
	result := text
	for _, p := range g.patterns {
		result = p.Regex.ReplaceAllString(result, p.Placeholder)
	}
	return result
}

func generalizePatterns(names []string) []GeneralizePattern {
	patterns := make([]GeneralizePattern, 0, len(names))
	for _, name := range names {
		if p, ok := BuiltInGeneralizePatterns[name]; ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
