package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/docpatch"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".docpatch.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). With a nil koanf only explicitly
	// set flags are loaded, so flag defaults never mask config file keys.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (DOCPATCH_* prefix)
	if err := k.Load(env.Provider("DOCPATCH_", ".", func(s string) string {
		// DOCPATCH_STYLE_VERIFY -> style.verify
		// DOCPATCH_COMMITS_ENGINE -> commits.engine
		// DOCPATCH_ROOT -> root
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "DOCPATCH_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildStyleConfig constructs the library's StyleConfig struct from koanf state.
func buildStyleConfig() docpatch.StyleConfig {
	config := docpatch.StyleConfig{
		Root:        getStringWithFallback("root", "root", "."),
		Verify:      getBoolWithFallback("verify", "style.verify", true),
		SkipIgnored: getBoolWithFallback("skip-ignored", "style.skip-ignored", false),
		DryRun:      getBoolWithFallback("dry-run", "dry-run", false),
		Verbose:     getBoolWithFallback("verbose", "verbose", false),
	}

	// Handle targets: check flag key first, then config key
	if targets := k.Strings("target"); len(targets) > 0 {
		config.Targets = targets
	} else if targets := k.Strings("style.targets"); len(targets) > 0 {
		config.Targets = targets
	} else {
		config.Targets = []string{docpatch.DefaultStyleTarget}
	}

	// Rules are only configurable from the file
	for _, rk := range k.Slices("style.rules") {
		config.Rules = append(config.Rules, docpatch.ColorRule{
			Marker:      rk.String("marker"),
			Declaration: rk.String("declaration"),
		})
	}
	if len(config.Rules) == 0 {
		config.Rules = docpatch.DefaultColorRules()
	}

	return config
}

// buildCommitConfig constructs the library's CommitConfig struct from koanf state.
func buildCommitConfig() docpatch.CommitConfig {
	return docpatch.CommitConfig{
		Root:      getStringWithFallback("root", "root", "."),
		MapFile:   getStringWithFallback("map", "commits.map", docpatch.DefaultCommitMap),
		BaseURL:   getStringWithFallback("base-url", "commits.base-url", docpatch.DefaultBaseURL),
		Label:     getStringWithFallback("label", "commits.label", docpatch.DefaultLabel),
		Extension: getStringWithFallback("ext", "commits.extension", ".md"),
		Engine:    docpatch.Engine(getStringWithFallback("engine", "commits.engine", string(docpatch.EngineBuiltin))),
		Repo:      getStringWithFallback("repo", "commits.repo", ""),
		DryRun:    getBoolWithFallback("dry-run", "dry-run", false),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
	}
}

// buildRegistryConfig constructs the library's RegistryConfig struct from koanf state.
func buildRegistryConfig() docpatch.RegistryConfig {
	def := docpatch.DefaultLanguageEntry()

	return docpatch.RegistryConfig{
		Root:     getStringWithFallback("root", "root", "."),
		File:     getStringWithFallback("file", "registry.file", docpatch.DefaultRegistryFile),
		Path:     getStringWithFallback("path", "registry.path", docpatch.DefaultRegistryPath),
		Language: getStringWithFallback("language", "registry.language", "riscv"),
		Entry: docpatch.LanguageEntry{
			Title:   getStringWithFallback("title", "registry.title", def.Title),
			Owner:   getStringWithFallback("owner", "registry.owner", def.Owner),
			Require: getStringsWithFallback("require", "registry.require"),
			Alias:   getStringsWithFallback("alias", "registry.alias"),
		},
		Indent:         getIntWithFallback("indent", "registry.indent", docpatch.DefaultIndent),
		InstallGrammar: getBoolWithFallback("install-grammar", "registry.install-grammar", false),
		GrammarFile:    getStringWithFallback("grammar-file", "registry.grammar-file", ""),
		DryRun:         getBoolWithFallback("dry-run", "dry-run", false),
		Verbose:        getBoolWithFallback("verbose", "verbose", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns nil.
func getStringsWithFallback(flagKey, configKey string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return nil
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
