package docpatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const (
	// DefaultBaseURL is the tree URL the commit ids are appended to.
	DefaultBaseURL = "https://github.com/rcore-os/rCore_tutorial/tree/"
	// DefaultCommitMap lists "<chapter path>: <commit id>" pairs.
	DefaultCommitMap = "commit_ids.txt"
	// DefaultLabel is the reference-link label rewritten in every chapter.
	DefaultLabel = "CODE"

	commitDelimiter = ": "
)

// ParseCommitMap reads "<path>: <commit-id>" lines.
// Blank lines are skipped; any other line must contain the delimiter exactly once.
func ParseCommitMap(r io.Reader) ([]CommitEntry, error) {
	var entries []CommitEntry

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if n := strings.Count(line, commitDelimiter); n != 1 {
			msg := "missing \": \" delimiter"
			if n > 1 {
				msg = "more than one \": \" delimiter"
			}
			return nil, &ParseError{Line: lineNum, Text: line, Msg: msg}
		}

		path, id, _ := strings.Cut(line, commitDelimiter)
		path = strings.TrimSpace(path)
		id = strings.TrimSpace(id)
		if path == "" || id == "" {
			return nil, &ParseError{Line: lineNum, Text: line, Msg: "empty path or commit id"}
		}

		entries = append(entries, CommitEntry{Path: path, CommitID: id, Line: lineNum})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseCommitMapFile reads and parses a mapping file
func ParseCommitMapFile(path string) ([]CommitEntry, error) {
	// #nosec G304 - path comes from trusted configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpError{Op: "commits.read_map", Kind: KindNotFound, Path: path, Err: err}
	}
	defer f.Close()

	entries, err := ParseCommitMap(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, &OpError{Op: "commits.parse_map", Kind: KindInvalidInput, Path: path, Err: err}
	}
	return entries, nil
}

// LinePattern matches a whole reference-link line for label: ^\[CODE\].*
func LinePattern(label string) string {
	return `^\[` + regexp.QuoteMeta(label) + `\].*`
}

// ReplacementLine renders the reference-link line pointing at commit id.
func ReplacementLine(label, baseURL, id string) string {
	return fmt.Sprintf("[%s]: %s%s", label, baseURL, id)
}

// FillCommitLinks is the commit-link updater entry point.
// A failing entry does not stop the others; every failure is returned joined.
func FillCommitLinks(config CommitConfig) (*CommitResult, error) {
	return FillCommitLinksWith(config, nil)
}

// FillCommitLinksWith is FillCommitLinks with an explicit Substituter.
// A nil sub selects one from config.Engine.
func FillCommitLinksWith(config CommitConfig, sub Substituter) (*CommitResult, error) {
	config = withCommitDefaults(config)

	if sub == nil {
		var err error
		sub, err = substituterFor(config.Engine)
		if err != nil {
			return nil, err
		}
	}

	// 1. Parse mapping
	mapPath := resolvePath(config.Root, config.MapFile)
	entries, err := ParseCommitMapFile(mapPath)
	if err != nil {
		return nil, err
	}
	if config.Verbose {
		fmt.Printf("Read %d entries from %s\n", len(entries), mapPath)
	}

	// 2. Optionally verify ids against a local clone
	if config.Repo != "" {
		if err := VerifyCommits(config.Repo, entries); err != nil {
			return nil, err
		}
		if config.Verbose {
			fmt.Printf("Verified %d commits in %s\n", len(entries), config.Repo)
		}
	}

	// 3. Rewrite chapters
	result := &CommitResult{}
	var errs []error
	pattern := LinePattern(config.Label)

	for _, entry := range entries {
		update := CommitUpdate{
			Entry: entry,
			File:  resolvePath(config.Root, entry.Path+config.Extension),
		}
		s := Substitution{
			Find:    pattern,
			Replace: ReplacementLine(config.Label, config.BaseURL, entry.CommitID),
		}

		if config.Verbose {
			fmt.Printf("Linking %s to %s\n", update.File, entry.CommitID)
		}

		if config.DryRun {
			update.Replaced, update.Diff, update.Err = previewSubstitution(config.Root, update.File, s)
		} else {
			update.Replaced, update.Err = sub.Substitute(update.File, s)
		}

		switch {
		case update.Err != nil:
			result.Failed++
			errs = append(errs, update.Err)
		case update.Replaced == 0:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("no [%s] line found in %s", config.Label, update.File))
		}
		result.Entries = append(result.Entries, update)
	}

	return result, errors.Join(errs...)
}

// previewSubstitution computes the diff a substitution would produce without writing
func previewSubstitution(root, path string, s Substitution) (int, string, error) {
	data, _, err := readFile("commits.read", path)
	if err != nil {
		return 0, "", err
	}
	out, count, err := s.Apply(string(data))
	if err != nil {
		return 0, "", &OpError{Op: "commits.substitute", Kind: KindInvalidInput, Path: path, Err: err}
	}
	diff, err := unifiedDiff(root, path, string(data), out)
	if err != nil {
		return 0, "", &OpError{Op: "commits.diff", Kind: KindExecution, Path: path, Err: err}
	}
	return count, diff, nil
}

// substituterFor maps an engine name to its implementation
func substituterFor(engine Engine) (Substituter, error) {
	switch engine {
	case "", EngineBuiltin:
		return BuiltinSubstituter{}, nil
	case EngineSed:
		return SedSubstituter{Stderr: os.Stderr}, nil
	default:
		return nil, &OpError{
			Op:   "commits.engine",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("unknown engine %q (want %s or %s)", engine, EngineBuiltin, EngineSed),
		}
	}
}

func withCommitDefaults(config CommitConfig) CommitConfig {
	if config.MapFile == "" {
		config.MapFile = DefaultCommitMap
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Label == "" {
		config.Label = DefaultLabel
	}
	if config.Extension == "" {
		config.Extension = ".md"
	}
	return config
}
