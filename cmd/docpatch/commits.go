package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/docpatch"
	"github.com/yacobolo/docpatch/internal/report"
)

var commitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Point each chapter's [CODE] link at its commit",
	Long: `Read "<chapter path>: <commit id>" lines from commit_ids.txt and rewrite
every line starting with [CODE] in <chapter path>.md to

  [CODE]: https://github.com/rcore-os/rCore_tutorial/tree/<commit id>

A failing chapter does not stop the others; the exit status is non-zero
when any chapter failed.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildCommitConfig()

		result, err := docpatch.FillCommitLinks(config)
		if result != nil {
			writeResults(cmd.OutOrStdout(), report.Results{DryRun: config.DryRun, Commits: result})
		}
		if err != nil {
			return fmt.Errorf("commits failed: %w", err)
		}
		return nil
	},
}

func init() {
	f := commitsCmd.Flags()
	f.String("map", docpatch.DefaultCommitMap, "Commit mapping file")
	f.String("base-url", docpatch.DefaultBaseURL, "URL prefix the commit id is appended to")
	f.String("label", docpatch.DefaultLabel, "Reference-link label to rewrite")
	f.String("ext", ".md", "Chapter file extension")
	f.String("engine", string(docpatch.EngineBuiltin), "Substitution engine: builtin|sed")
	f.String("repo", "", "Git repository used to verify commit ids before rewriting")
}
