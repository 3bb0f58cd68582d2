// Package config provides configuration types and helpers for loggram.
package config

// Defaults applied by the CLI layer when neither flags, environment, nor
// config file set a value.
const (
	DefaultNGramSize   = 5
	DefaultTopK        = 10
	DefaultAggregation = "sum"
	DefaultFormat      = "text"
)

// Config holds the application-wide configuration.
type Config struct {
	LogType     string           `mapstructure:"log_type"`
	NGramSize   int              `mapstructure:"ngram_size"`
	TopK        int              `mapstructure:"top"`
	Aggregation string           `mapstructure:"aggregation"`
	Format      string           `mapstructure:"format"`
	Color       string           `mapstructure:"color"`
	Verbose     bool             `mapstructure:"verbose"`
	Generalize  GeneralizeConfig `mapstructure:"generalize"`
}

// GeneralizeConfig controls volatile-field generalization during parsing.
type GeneralizeConfig struct {
	// Enabled controls whether generalization is active.
	Enabled bool `mapstructure:"enabled"`

	// Patterns selects which generalization patterns to use.
	// Available: ipv4, ipv6, pid, request_id, hex_id
	Patterns []string `mapstructure:"patterns"`
}
