package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docpatch",
	Short: "Post-processing patches for the tutorial's GitBook build",
	Long: `Patch a generated documentation tree in place.

  style     add color declarations to the GitBook stylesheet
  commits   point every chapter's [CODE] link at its commit
  registry  register the RISC-V language with Prism

Each step is independent; "docpatch all" runs them in order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".docpatch.yaml", "Config file path")
	rootCmd.PersistentFlags().String("root", ".", "Documentation tree that relative paths resolve against")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Show diffs instead of writing files")
	rootCmd.PersistentFlags().String("output-format", "", "Output format: text|json")

	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
