package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverFiles locates log files inside dir matching any of the filename
// glob patterns, which may use doublestar syntax (e.g. "**/error_log*").
//
// The input directory must exist and be a directory; zero matches is an
// error so a misconfigured run fails before any parsing starts. Matches
// are deduplicated and ordered by modification time (oldest first), with
// path order breaking ties so the result is stable.
func DiscoverFiles(dir string, patterns []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no file patterns provided")
	}

	files := make([]string, 0)
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern),
			doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %v in %s", patterns, dir)
	}

	sort.Slice(files, func(i, j int) bool {
		mi, mj := mtime(files[i]), mtime(files[j])
		if !mi.Equal(mj) {
			return mi.Before(mj)
		}
		return files[i] < files[j]
	})
	return files, nil
}

func mtime(path string) time.Time {
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}
