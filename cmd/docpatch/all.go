package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/docpatch"
	"github.com/yacobolo/docpatch/internal/report"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run style, commits and registry in order",
	Long: `Run every patch step with its configured settings. A failing step does
not stop the following ones; all failures are reported together.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			results = report.Results{DryRun: getBoolWithFallback("dry-run", "dry-run", false)}
			errs    []error
			err     error
		)

		if results.Style, err = docpatch.AugmentStylesheet(buildStyleConfig()); err != nil {
			errs = append(errs, fmt.Errorf("style failed: %w", err))
		}
		if results.Commits, err = docpatch.FillCommitLinks(buildCommitConfig()); err != nil {
			errs = append(errs, fmt.Errorf("commits failed: %w", err))
		}
		if results.Registry, err = docpatch.RegisterLanguage(buildRegistryConfig()); err != nil {
			errs = append(errs, fmt.Errorf("registry failed: %w", err))
		}

		writeResults(cmd.OutOrStdout(), results)
		return errors.Join(errs...)
	},
}
