// Package main provides the docpatch CLI for post-processing the tutorial's docs build.
package main

import (
	"fmt"
	"os"

	"github.com/yacobolo/docpatch/internal/report"
)

func main() {
	if err := registerFlagCompletions(); err != nil {
		fail(err)
	}
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, report.RenderStyle(report.StyleRed, "Error: "+err.Error(), report.ShouldUseColors(false)))
	os.Exit(1)
}
