package report

import (
	"io"
	"os"

	"github.com/yacobolo/docpatch"
)

// OutputFormat selects how results are rendered
type OutputFormat string

const (
	OutputText  OutputFormat = "text"  // Human-readable, colored when supported
	OutputJSON  OutputFormat = "json"  // Machine-readable export
	OutputQuiet OutputFormat = "quiet" // Exit code only
)

// Results bundles the outcome of one invocation. Nil fields were not run.
type Results struct {
	DryRun   bool
	Style    *docpatch.StyleResult
	Commits  *docpatch.CommitResult
	Registry *docpatch.RegistryResult
}

// DetermineOutputFormat selects the appropriate output format based on flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet flag wins (exit code only)
	if quiet {
		return OutputQuiet
	}

	switch formatFlag {
	case "json":
		return OutputJSON
	default:
		// Unknown formats fall back to text
		return OutputText
	}
}

// WriteOutput writes the results in the specified format
func WriteOutput(w io.Writer, results Results, format OutputFormat, opts Options) {
	switch format {
	case OutputQuiet:
		return

	case OutputJSON:
		if err := WriteJSON(w, results); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}

	default:
		reporter := NewReporter(w, Options{UseColors: opts.UseColors, ShowDiffs: opts.ShowDiffs || results.DryRun})
		reporter.PrintStyle(results.Style)
		reporter.PrintCommits(results.Commits)
		reporter.PrintRegistry(results.Registry)
	}
}
