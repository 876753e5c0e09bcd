package main

import (
	"errors"
	"sync"

	"github.com/spf13/cobra"
	"github.com/yacobolo/docpatch"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for docpatch commands and flags.

Flag values complete too: --engine offers builtin and sed, --output-format
offers text and json, and path flags such as --file or --target only list
files with the matching extension.`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := registerFlagCompletions(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

// fileExt completes paths ending in one of exts
func fileExt(exts ...string) cobra.CompletionFunc {
	return cobra.FixedCompletions(exts, cobra.ShellCompDirectiveFilterFileExt)
}

// choices completes a fixed set of values and no files
func choices(values ...string) cobra.CompletionFunc {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

var (
	registerCompletionsOnce sync.Once
	registerCompletionsErr  error
)

// registerFlagCompletions attaches value completion to the enum and path flags.
// Subcommand flags are defined in each file's init, so this runs from main.
func registerFlagCompletions() error {
	registerCompletionsOnce.Do(func() {
		completions := []struct {
			cmd  *cobra.Command
			flag string
			fn   cobra.CompletionFunc
		}{
			{rootCmd, "config", fileExt("yaml", "yml")},
			{rootCmd, "output-format", choices("text", "json")},
			{styleCmd, "target", fileExt("css")},
			{commitsCmd, "engine", choices(string(docpatch.EngineBuiltin), string(docpatch.EngineSed))},
			{commitsCmd, "map", fileExt("txt")},
			{commitsCmd, "ext", choices(".md", ".markdown")},
			{registryCmd, "file", fileExt("json")},
			{registryCmd, "grammar-file", fileExt("js")},
		}
		var errs []error
		for _, c := range completions {
			errs = append(errs, c.cmd.RegisterFlagCompletionFunc(c.flag, c.fn))
		}
		registerCompletionsErr = errors.Join(errs...)
	})
	return registerCompletionsErr
}
