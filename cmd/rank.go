package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gstewart/loggram/internal/config"
	"github.com/gstewart/loggram/internal/corpus"
	"github.com/gstewart/loggram/internal/logtype"
	"github.com/gstewart/loggram/internal/ngram"
	"github.com/gstewart/loggram/internal/output"
)

var rankCmd = &cobra.Command{
	Use:   "rank [flags] <input-dir>",
	Short: "Rank the top n-grams across the log files in a directory",
	Long: `Parse every matching log file in the input directory, extract n-grams
from the normalized messages, and print the top entries ranked by TF-IDF.

Each file forms one document for the document-frequency statistics, so
patterns concentrated in a few files outrank noise spread across all of them.

Examples:
  loggram rank -t apache-error -n 5 /var/log/httpd
  loggram rank -t apache-access -n 3 --top 20 /var/log/httpd
  loggram rank -t apache-error -n 2 --agg max --format json /var/log/httpd`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringP("log-type", "t", "", "type of logs to analyze (see 'loggram types')")
	rankCmd.Flags().IntP("num-grams", "n", config.DefaultNGramSize, "number n in n-grams")
	rankCmd.Flags().Int("top", config.DefaultTopK, "number of top n-grams to show")
	rankCmd.Flags().String("agg", config.DefaultAggregation, "score aggregation across documents (sum, max)")

	_ = rankCmd.MarkFlagRequired("log-type")

	_ = viper.BindPFlag("log_type", rankCmd.Flags().Lookup("log-type"))
	_ = viper.BindPFlag("ngram_size", rankCmd.Flags().Lookup("num-grams"))
	_ = viper.BindPFlag("top", rankCmd.Flags().Lookup("top"))
	_ = viper.BindPFlag("aggregation", rankCmd.Flags().Lookup("agg"))

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	inputDir := args[0]

	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate all configuration before touching any file.
	if cfg.NGramSize < 1 {
		return fmt.Errorf("--num-grams must be at least 1, got %d", cfg.NGramSize)
	}
	if cfg.TopK < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", cfg.TopK)
	}
	agg, err := ngram.ParseAggregation(cfg.Aggregation)
	if err != nil {
		return err
	}

	gen := logtype.NewGeneralizer(cfg.Generalize.Enabled, cfg.Generalize.Patterns)
	parser, err := logtype.Lookup(cfg.LogType, gen)
	if err != nil {
		return err
	}

	files, err := config.DiscoverFiles(inputDir, parser.FilePatterns())
	if err != nil {
		return err
	}
	slog.Info("discovered log files", "count", len(files), "dir", inputDir)

	docs := corpus.NewBuilder(slog.Default()).Build(files, parser)
	if len(docs) == 0 {
		return fmt.Errorf("none of the %d matching files in %s could be read", len(files), inputDir)
	}

	ranked, err := ngram.Score(docs, cfg.NGramSize, agg)
	if err != nil {
		return err
	}

	report := output.Report{
		LogType:   parser.Name(),
		NGramSize: cfg.NGramSize,
		Files:     len(docs),
		Records:   corpus.TotalMessages(docs),
		NGrams:    ngram.Top(ranked, cfg.TopK),
	}

	writer := output.New(cmd.OutOrStdout(),
		output.ParseFormat(cfg.Format),
		output.ParseColorMode(cfg.Color))
	return writer.WriteReport(report)
}
