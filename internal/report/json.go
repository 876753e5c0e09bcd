package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/docpatch"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	DryRun    bool          `json:"dry_run"`
	Style     *JSONStyle    `json:"style,omitempty"`
	Commits   *JSONCommits  `json:"commits,omitempty"`
	Registry  *JSONRegistry `json:"registry,omitempty"`
}

// JSONStyle contains the stylesheet augmenter outcome
type JSONStyle struct {
	FilesScanned int             `json:"files_scanned"`
	Files        []JSONStyleFile `json:"files"`
	Warnings     []string        `json:"warnings"`
}

// JSONStyleFile describes one augmented stylesheet
type JSONStyleFile struct {
	Path         string             `json:"path"`
	Hits         []docpatch.RuleHit `json:"hits"`
	Rulesets     int                `json:"rulesets"`
	Declarations int                `json:"declarations"`
	Diff         string             `json:"diff,omitempty"`
}

// JSONCommits contains the commit-link updater outcome
type JSONCommits struct {
	Total    int          `json:"total"`
	Failed   int          `json:"failed"`
	Entries  []JSONCommit `json:"entries"`
	Warnings []string     `json:"warnings"`
}

// JSONCommit represents a single mapping entry
type JSONCommit struct {
	docpatch.CommitEntry
	File     string `json:"file"`
	Replaced int    `json:"replaced"`
	Error    string `json:"error,omitempty"`
	Diff     string `json:"diff,omitempty"`
}

// JSONRegistry contains the syntax-registry patcher outcome
type JSONRegistry struct {
	File        string `json:"file"`
	Language    string `json:"language"`
	Replaced    bool   `json:"replaced"`
	GrammarPath string `json:"grammar_path,omitempty"`
	Diff        string `json:"diff,omitempty"`
}

// WriteJSON writes the results as JSON
func WriteJSON(w io.Writer, results Results) error {
	output := buildJSONOutput(results)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Results to JSONOutput
func buildJSONOutput(results Results) JSONOutput {
	output := JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		DryRun:    results.DryRun,
	}

	if s := results.Style; s != nil {
		files := make([]JSONStyleFile, len(s.Files))
		for i, f := range s.Files {
			files[i] = JSONStyleFile{
				Path:         f.Path,
				Hits:         f.Hits,
				Rulesets:     f.After.Rulesets,
				Declarations: f.After.Declarations,
				Diff:         f.Diff,
			}
		}
		output.Style = &JSONStyle{
			FilesScanned: s.FilesScanned,
			Files:        files,
			Warnings:     nonNil(s.Warnings),
		}
	}

	if c := results.Commits; c != nil {
		entries := make([]JSONCommit, len(c.Entries))
		for i, u := range c.Entries {
			entries[i] = JSONCommit{
				CommitEntry: u.Entry,
				File:        u.File,
				Replaced:    u.Replaced,
				Diff:        u.Diff,
			}
			if u.Err != nil {
				entries[i].Error = u.Err.Error()
			}
		}
		output.Commits = &JSONCommits{
			Total:    len(c.Entries),
			Failed:   c.Failed,
			Entries:  entries,
			Warnings: nonNil(c.Warnings),
		}
	}

	if r := results.Registry; r != nil {
		output.Registry = &JSONRegistry{
			File:        r.File,
			Language:    r.Language,
			Replaced:    r.Replaced,
			GrammarPath: r.GrammarPath,
			Diff:        r.Diff,
		}
	}

	return output
}

// nonNil keeps empty lists as [] instead of null
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
