package docpatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// TargetStats tracks target expansion statistics
type TargetStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesMatched    int // Files kept after filtering
	FilesSkipped    int // Files skipped by .gitignore
}

// loadGitIgnore compiles root/.gitignore.
// Gracefully degrades to nil if the file doesn't exist.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipTarget reports whether path is ignored by gi.
// Only paths inside root are checked; gitignore patterns are root-relative.
func shouldSkipTarget(gi *ignore.GitIgnore, root, path string) bool {
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}

// expandTargets expands glob patterns under root to regular files, deduplicated
// and in pattern order.
func expandTargets(root string, patterns []string, skipIgnored bool) ([]string, TargetStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := TargetStats{}

	var gi *ignore.GitIgnore
	if skipIgnored {
		gi = loadGitIgnore(root)
	}

	for _, pattern := range patterns {
		fullPattern := pattern
		if !filepath.IsAbs(pattern) {
			fullPattern = filepath.Join(root, pattern)
		}

		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipTarget(gi, root, match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesMatched++
		}
	}

	return files, stats, nil
}
