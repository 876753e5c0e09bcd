package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/docpatch"
	"github.com/yacobolo/docpatch/internal/report"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Add color declarations to the GitBook stylesheet",
	Long: `Append a declaration after every occurrence of each configured marker.
By default "color:#bf616a;" follows "markdown-section code{" and
"color:#ccc;" follows "markdown-section pre>code{" in docs/gitbook/style.css.

The rewrite is not idempotent: running it twice appends the declarations twice.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildStyleConfig()

		result, err := docpatch.AugmentStylesheet(config)
		if err != nil {
			return fmt.Errorf("style failed: %w", err)
		}

		writeResults(cmd.OutOrStdout(), report.Results{DryRun: config.DryRun, Style: result})
		return nil
	},
}

func init() {
	f := styleCmd.Flags()
	f.StringSlice("target", []string{docpatch.DefaultStyleTarget}, "Stylesheet paths or glob patterns")
	f.Bool("verify", true, "Tokenize the stylesheet before and after rewriting")
	f.Bool("skip-ignored", false, "Skip targets matched by .gitignore")
}
