package docpatch

import (
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders a unified diff between the old and rewritten file content.
// Header paths are relative to root when path lies under it.
// It returns "" when both are equal.
func unifiedDiff(root, path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	name := diffName(root, path)
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  2,
	})
}

// diffName returns the slash-separated header path for a file.
func diffName(root, path string) string {
	if root == "" {
		root = "."
	}
	absRoot, rootErr := filepath.Abs(root)
	absPath, pathErr := filepath.Abs(path)
	if rootErr == nil && pathErr == nil {
		rel, err := filepath.Rel(absRoot, absPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "/")
}
