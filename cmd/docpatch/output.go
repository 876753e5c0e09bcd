package main

import (
	"io"

	"github.com/yacobolo/docpatch/internal/report"
)

// writeResults renders results in the configured output format.
func writeResults(w io.Writer, results report.Results) {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "output-format", "")
	format := report.DetermineOutputFormat(outputFormat, quiet)

	report.WriteOutput(w, results, format, report.Options{
		UseColors: getBoolWithFallback("color", "color", false),
		ShowDiffs: results.DryRun,
	})
}
