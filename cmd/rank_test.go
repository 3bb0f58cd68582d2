package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gstewart/loggram/internal/logtype"
	"github.com/gstewart/loggram/internal/output"
)

func writeTempFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func newRankTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "rank"}
	cmd.SetOut(out)
	return cmd
}

func setRankDefaults(logType string) {
	viper.Reset()
	viper.Set("format", "text")
	viper.Set("color", "never")
	viper.Set("log_type", logType)
	viper.Set("ngram_size", 2)
	viper.Set("top", 10)
	viper.Set("aggregation", "sum")
	viper.Set("generalize.enabled", true)
	viper.Set("generalize.patterns", logtype.DefaultGeneralizePatterns())
}

func TestRankErrorLogs(t *testing.T) {
	setRankDefaults("apache-error")

	dir := t.TempDir()
	writeTempFile(t, dir, "error_log.1", []string{
		"[Wed Oct 11 14:32:52 2000] [error] [client 10.0.0.1] connection timeout",
		"[Wed Oct 11 14:32:53 2000] [error] [client 10.0.0.2] connection timeout",
	})
	writeTempFile(t, dir, "error_log.2", []string{
		"[Wed Oct 11 14:33:00 2000] [error] [client 10.0.0.3] connection refused",
	})

	var out bytes.Buffer
	cmd := newRankTestCmd(&out)

	if err := runRank(cmd, []string{dir}); err != nil {
		t.Fatalf("runRank() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Identified 2 files for parsing") {
		t.Errorf("expected file count line, got:\n%s", got)
	}
	if !strings.Contains(got, "There are 3 log records in this data") {
		t.Errorf("expected record count line, got:\n%s", got)
	}
	timeoutIdx := strings.Index(got, "connection timeout")
	refusedIdx := strings.Index(got, "connection refused")
	if timeoutIdx < 0 || refusedIdx < 0 {
		t.Fatalf("expected both bigrams in output:\n%s", got)
	}
	if timeoutIdx > refusedIdx {
		t.Errorf("connection timeout should rank above connection refused:\n%s", got)
	}
}

func TestRankAccessLogsJSON(t *testing.T) {
	setRankDefaults("apache-access")
	viper.Set("format", "json")
	viper.Set("ngram_size", 3)

	dir := t.TempDir()
	writeTempFile(t, dir, "access_log", []string{
		`10.0.0.1 - - [26/Jan/2025:10:00:01 -0500] "GET /user/42 HTTP/1.1" 200 100`,
		`10.0.0.2 - - [26/Jan/2025:10:00:02 -0500] "GET /user/99 HTTP/1.1" 200 100`,
		`10.0.0.3 - - [26/Jan/2025:10:00:03 -0500] "POST /login HTTP/1.1" 401 50`,
	})

	var out bytes.Buffer
	cmd := newRankTestCmd(&out)

	if err := runRank(cmd, []string{dir}); err != nil {
		t.Fatalf("runRank() error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v\noutput: %s", err, out.String())
	}
	if report.Files != 1 || report.Records != 3 {
		t.Errorf("report counts = %d files, %d records, want 1 and 3", report.Files, report.Records)
	}
	if len(report.NGrams) == 0 {
		t.Fatal("expected ranked n-grams in report")
	}
	if report.NGrams[0].Text != "GET /user/<n> 200" {
		t.Errorf("top n-gram = %q, want templated GET route", report.NGrams[0].Text)
	}
}

func TestRankTopTruncation(t *testing.T) {
	setRankDefaults("apache-error")
	viper.Set("ngram_size", 1)
	viper.Set("top", 2)
	viper.Set("format", "json")

	dir := t.TempDir()
	writeTempFile(t, dir, "error_log", []string{
		"[Wed Oct 11 14:32:52 2000] [error] [client 10.0.0.1] alpha beta gamma delta epsilon",
	})

	var out bytes.Buffer
	cmd := newRankTestCmd(&out)
	if err := runRank(cmd, []string{dir}); err != nil {
		t.Fatalf("runRank() error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
	if len(report.NGrams) != 2 {
		t.Errorf("got %d n-grams, want top 2", len(report.NGrams))
	}
}

func TestRankGeneralizeConfigRespected(t *testing.T) {
	setRankDefaults("apache-error")
	viper.Set("format", "json")
	viper.Set("generalize.enabled", false)

	dir := t.TempDir()
	writeTempFile(t, dir, "error_log", []string{
		"[Wed Oct 11 14:32:52 2000] [error] [client 10.0.0.1] refused by 10.9.9.9 upstream",
	})

	var out bytes.Buffer
	cmd := newRankTestCmd(&out)
	if err := runRank(cmd, []string{dir}); err != nil {
		t.Fatalf("runRank() error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
	found := false
	for _, g := range report.NGrams {
		if strings.Contains(g.Text, "10.9.9.9") {
			found = true
		}
		if strings.Contains(g.Text, "<ip>") {
			t.Errorf("generalization ran despite generalize.enabled=false: %q", g.Text)
		}
	}
	if !found {
		t.Errorf("raw address missing from n-grams: %+v", report.NGrams)
	}
}

func TestRankEmptyCorpusIsNotFatal(t *testing.T) {
	setRankDefaults("apache-error")

	dir := t.TempDir()
	writeTempFile(t, dir, "error_log", []string{
		"none of these lines",
		"match the error format",
	})

	var out bytes.Buffer
	cmd := newRankTestCmd(&out)

	if err := runRank(cmd, []string{dir}); err != nil {
		t.Fatalf("empty corpus must not be fatal, got error: %v", err)
	}
	if !strings.Contains(out.String(), "No matching log records found") {
		t.Errorf("expected explicit no-data line, got:\n%s", out.String())
	}
}

func TestRankInvalidConfiguration(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "error_log", []string{
		"[Wed Oct 11 14:32:52 2000] [error] [client 10.0.0.1] ok",
	})

	tests := []struct {
		name  string
		setup func()
		arg   string
	}{
		{
			name:  "zero ngram size",
			setup: func() { setRankDefaults("apache-error"); viper.Set("ngram_size", 0) },
			arg:   dir,
		},
		{
			name:  "negative top",
			setup: func() { setRankDefaults("apache-error"); viper.Set("top", -1) },
			arg:   dir,
		},
		{
			name:  "unknown log type",
			setup: func() { setRankDefaults("syslog") },
			arg:   dir,
		},
		{
			name:  "unknown aggregation",
			setup: func() { setRankDefaults("apache-error"); viper.Set("aggregation", "median") },
			arg:   dir,
		},
		{
			name:  "missing input directory",
			setup: func() { setRankDefaults("apache-error") },
			arg:   filepath.Join(dir, "missing"),
		},
		{
			name:  "directory with no matching files",
			setup: func() { setRankDefaults("apache-access") },
			arg:   dir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			var out bytes.Buffer
			cmd := newRankTestCmd(&out)
			if err := runRank(cmd, []string{tt.arg}); err == nil {
				t.Error("expected configuration error, got nil")
			}
			if out.Len() != 0 {
				t.Errorf("configuration errors must produce no partial output, got:\n%s", out.String())
			}
		})
	}
}

func TestTypesCommand(t *testing.T) {
	var out bytes.Buffer
	typesCmd.SetOut(&out)
	defer typesCmd.SetOut(nil)

	typesCmd.Run(typesCmd, nil)

	got := out.String()
	for _, want := range []string{"apache-error", "apache-access", "error_log*", "access_log*"} {
		if !strings.Contains(got, want) {
			t.Errorf("types output missing %q:\n%s", want, got)
		}
	}
}
