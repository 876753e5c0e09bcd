// Package report formats patcher results for the terminal and for tooling.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/docpatch"
)

// Options controls reporter output
type Options struct {
	UseColors bool // Force colors; otherwise auto-detected
	ShowDiffs bool // Print dry-run diffs
}

// Reporter handles formatting and outputting patch results
type Reporter struct {
	w         io.Writer
	useColors bool
	showDiffs bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(opts.UseColors),
		showDiffs: opts.ShowDiffs,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintStyle outputs the stylesheet augmenter result
func (r *Reporter) PrintStyle(result *docpatch.StyleResult) {
	if result == nil {
		return
	}

	for _, f := range result.Files {
		applied := 0
		for _, h := range f.Hits {
			applied += h.Count
		}
		fmt.Fprintf(r.w, "%s %s\n",
			RenderStyle(StyleCyan, f.Path+":", r.useColors),
			pluralizeCount(applied, "declaration added", "declarations added"))

		for _, h := range f.Hits {
			if h.Count == 0 {
				continue
			}
			fmt.Fprintf(r.w, "\t%s after %q (x%d)\n",
				RenderStyle(StyleGreen, "+ "+h.Rule.Declaration, r.useColors), h.Rule.Marker, h.Count)
		}
		r.printDiff(f.Diff)
	}

	r.PrintWarnings(result.Warnings)
}

// PrintCommits outputs the commit-link updater result
func (r *Reporter) PrintCommits(result *docpatch.CommitResult) {
	if result == nil {
		return
	}

	for _, u := range result.Entries {
		location := fmt.Sprintf("%s:", u.File)
		switch {
		case u.Err != nil:
			fmt.Fprintf(r.w, "%s %s\n",
				RenderStyle(StyleCyan, location, r.useColors),
				RenderStyle(StyleRed, u.Err.Error(), r.useColors))
		case u.Replaced < 0:
			fmt.Fprintf(r.w, "%s linked %s\n",
				RenderStyle(StyleCyan, location, r.useColors), u.Entry.CommitID)
		default:
			fmt.Fprintf(r.w, "%s linked %s (%s)\n",
				RenderStyle(StyleCyan, location, r.useColors), u.Entry.CommitID,
				pluralizeCount(u.Replaced, "line", "lines"))
		}
		r.printDiff(u.Diff)
	}

	r.PrintWarnings(result.Warnings)

	if result.Failed > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleRed,
			fmt.Sprintf("%s of %d failed", pluralizeCount(result.Failed, "entry", "entries"), len(result.Entries)),
			r.useColors))
	}
}

// PrintRegistry outputs the syntax-registry patcher result
func (r *Reporter) PrintRegistry(result *docpatch.RegistryResult) {
	if result == nil {
		return
	}

	verb := "registered"
	if result.Replaced {
		verb = "replaced"
	}
	fmt.Fprintf(r.w, "%s %s language %q\n",
		RenderStyle(StyleCyan, result.File+":", r.useColors), verb, result.Language)
	if result.GrammarPath != "" {
		fmt.Fprintf(r.w, "%s grammar installed\n", RenderStyle(StyleCyan, result.GrammarPath+":", r.useColors))
	}
	r.printDiff(result.Diff)
}

// PrintWarnings shows patcher warnings
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printDiff writes a unified diff, coloring added and removed lines
func (r *Reporter) printDiff(diff string) {
	if !r.showDiffs || diff == "" {
		return
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"), strings.HasPrefix(text, "@@"):
			text = RenderStyle(StyleGray, text, r.useColors)
		case strings.HasPrefix(text, "+"):
			text = RenderStyle(StyleGreen, text, r.useColors)
		case strings.HasPrefix(text, "-"):
			text = RenderStyle(StyleRed, text, r.useColors)
		}
		fmt.Fprintln(r.w, text)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
