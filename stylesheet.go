package docpatch

import (
	"fmt"
	"strings"

	"github.com/yacobolo/docpatch/internal/stylesheet"
)

// DefaultStyleTarget is the GitBook theme stylesheet patched by default.
const DefaultStyleTarget = "docs/gitbook/style.css"

// DefaultColorRules returns the inline-code color rules for the GitBook theme:
// red inline code, and inherited light gray inside code blocks.
func DefaultColorRules() []ColorRule {
	return []ColorRule{
		{Marker: "markdown-section code{", Declaration: "color:#bf616a;"},
		{Marker: "markdown-section pre>code{", Declaration: "color:#ccc;"},
	}
}

// ApplyColorRules appends each rule's declaration after every occurrence of its marker.
// Rules are applied in order, each one to the output of the previous.
// A rule whose marker is absent leaves the content unchanged and reports Count 0.
func ApplyColorRules(content string, rules []ColorRule) (string, []RuleHit) {
	hits := make([]RuleHit, 0, len(rules))
	for _, rule := range rules {
		if rule.Marker == "" {
			hits = append(hits, RuleHit{Rule: rule})
			continue
		}
		count := strings.Count(content, rule.Marker)
		if count > 0 {
			content = strings.ReplaceAll(content, rule.Marker, rule.Marker+rule.Declaration)
		}
		hits = append(hits, RuleHit{Rule: rule, Count: count})
	}
	return content, hits
}

// AugmentStylesheet is the stylesheet augmenter entry point.
// It is not idempotent: every run appends the declarations again.
func AugmentStylesheet(config StyleConfig) (*StyleResult, error) {
	result := &StyleResult{}

	root := config.Root
	if root == "" {
		root = "."
	}
	targets := config.Targets
	if len(targets) == 0 {
		targets = []string{DefaultStyleTarget}
	}
	rules := config.Rules
	if len(rules) == 0 {
		rules = DefaultColorRules()
	}

	// 1. Expand targets
	files, stats, err := expandTargets(root, targets, config.SkipIgnored)
	if err != nil {
		return nil, &OpError{Op: "style.scan", Kind: KindInvalidInput, Err: err}
	}
	result.FilesScanned = stats.FilesMatched
	if len(files) == 0 {
		return nil, &OpError{
			Op:   "style.scan",
			Kind: KindNotFound,
			Path: strings.Join(targets, ","),
			Err:  fmt.Errorf("no stylesheet matched"),
		}
	}

	if config.Verbose {
		fmt.Printf("Found %d stylesheets (%d ignored)\n", stats.FilesMatched, stats.FilesSkipped)
	}

	// 2. Rewrite each file
	for _, path := range files {
		file, warnings, err := augmentFile(path, rules, config)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, *file)
		result.Warnings = append(result.Warnings, warnings...)
	}

	return result, nil
}

// augmentFile applies rules to a single stylesheet and overwrites it
func augmentFile(path string, rules []ColorRule, config StyleConfig) (*StyleFile, []string, error) {
	var warnings []string

	if config.Verbose {
		fmt.Printf("Patching %s\n", path)
	}

	data, mode, err := readFile("style.read", path)
	if err != nil {
		return nil, nil, err
	}
	before := string(data)

	after, hits := ApplyColorRules(before, rules)
	file := &StyleFile{Path: path, Hits: hits}

	for _, h := range hits {
		if h.Count == 0 {
			warnings = append(warnings, fmt.Sprintf("marker %q not found in %s", h.Rule.Marker, path))
		}
	}

	if config.Verify {
		w, err := verifyStylesheet(path, before, after, file)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
	}

	if config.DryRun {
		file.Diff, err = unifiedDiff(config.Root, path, before, after)
		if err != nil {
			return nil, nil, &OpError{Op: "style.diff", Kind: KindExecution, Path: path, Err: err}
		}
		return file, warnings, nil
	}

	// Overwrite even when nothing matched.
	if err := writeFile("style.write", path, []byte(after), mode); err != nil {
		return nil, nil, err
	}

	return file, warnings, nil
}

// verifyStylesheet tokenizes both versions and rejects edits that break the grammar.
func verifyStylesheet(path, before, after string, file *StyleFile) ([]string, error) {
	var warnings []string

	var err error
	file.Before, err = stylesheet.Inspect(before)
	if err != nil {
		return nil, &OpError{Op: "style.verify", Kind: KindInvalidInput, Path: path, Err: err}
	}
	file.After, err = stylesheet.Inspect(after)
	if err != nil {
		return nil, &OpError{Op: "style.verify", Kind: KindInvalidInput, Path: path, Err: err}
	}

	if file.After.Invalid > file.Before.Invalid {
		return nil, &OpError{
			Op:   "style.verify",
			Kind: KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("rewrite introduced %d malformed rules", file.After.Invalid-file.Before.Invalid),
		}
	}
	if file.After.Rulesets != file.Before.Rulesets {
		warnings = append(warnings, fmt.Sprintf("%s: ruleset count changed from %d to %d",
			path, file.Before.Rulesets, file.After.Rulesets))
	}

	return warnings, nil
}
