package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/docpatch"
	"github.com/yacobolo/docpatch/internal/report"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Register a language in Prism's components.json",
	Long: `Add or overwrite languages.<language> in node_modules/prismjs/components.json
and write the file back with sorted keys. With --install-grammar the
grammar is copied to components/prism-<language>.js as well.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildRegistryConfig()

		result, err := docpatch.RegisterLanguage(config)
		if err != nil {
			return fmt.Errorf("registry failed: %w", err)
		}

		writeResults(cmd.OutOrStdout(), report.Results{DryRun: config.DryRun, Registry: result})
		return nil
	},
}

func init() {
	def := docpatch.DefaultLanguageEntry()

	f := registryCmd.Flags()
	f.String("file", docpatch.DefaultRegistryFile, "Prism component registry")
	f.String("path", docpatch.DefaultRegistryPath, "JSONPath of the language collection")
	f.String("language", "riscv", "Language id")
	f.String("title", def.Title, "Language title")
	f.String("owner", def.Owner, "Language owner")
	f.StringSlice("require", nil, "Languages this grammar depends on")
	f.StringSlice("alias", nil, "Alternative language ids")
	f.Int("indent", docpatch.DefaultIndent, "Spaces per indentation level (-1 = compact)")
	f.Bool("install-grammar", false, "Also install the grammar file")
	f.String("grammar-file", "", "Grammar source (default: embedded grammar)")
}
