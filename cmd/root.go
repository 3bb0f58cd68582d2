package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gstewart/loggram/internal/config"
	"github.com/gstewart/loggram/internal/logtype"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "loggram",
	Short: "Rank the most significant n-grams in a directory of log files",
	Long: `Loggram identifies the most characteristic recurring patterns in a
directory of log files of a known type, so an operator can triage logs
without reading every line.

It parses each file into normalized messages, extracts n-grams, and ranks
them by a TF-IDF importance measure: patterns concentrated in a few files
score higher than background noise present everywhere.

Examples:
  loggram rank -t apache-error -n 5 /var/log/httpd
  loggram rank -t apache-access -n 3 --top 20 /var/log/httpd
  loggram types`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.loggram.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", config.DefaultFormat, "output format (text, json, table)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto, always, never)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".loggram")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGGRAM")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", config.DefaultFormat)
	viper.SetDefault("color", "auto")
	viper.SetDefault("verbose", false)
	viper.SetDefault("ngram_size", config.DefaultNGramSize)
	viper.SetDefault("top", config.DefaultTopK)
	viper.SetDefault("aggregation", config.DefaultAggregation)
	viper.SetDefault("generalize.enabled", true)
	viper.SetDefault("generalize.patterns", logtype.DefaultGeneralizePatterns())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	slog.SetDefault(newLogger(viper.GetBool("verbose")))
}

// newLogger builds the stderr logger. Warnings about skipped files are
// always shown; verbose mode adds informational progress logging.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
