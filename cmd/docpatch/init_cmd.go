package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .docpatch.yaml config file",
	Long:  `Create a .docpatch.yaml configuration file (or the --config path) holding the built-in defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = ".docpatch.yaml"
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# docpatch configuration

# Shared settings
root: .
verbose: false
dry-run: false
output-format: text   # text | json

# Stylesheet augmenter
style:
  targets:
    - docs/gitbook/style.css
  verify: true
  skip-ignored: false
  rules:
    - marker: "markdown-section code{"
      declaration: "color:#bf616a;"
    - marker: "markdown-section pre>code{"
      declaration: "color:#ccc;"

# Commit-link updater
commits:
  map: commit_ids.txt
  base-url: https://github.com/rcore-os/rCore_tutorial/tree/
  label: CODE
  extension: .md
  engine: builtin      # builtin | sed
  repo: ""             # git repository to verify commit ids against

# Syntax-registry patcher
registry:
  file: node_modules/prismjs/components.json
  path: $.languages
  language: riscv
  title: RISC-V
  owner: shinbokuow2
  indent: 4
  install-grammar: false
  grammar-file: ""
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
