// Package docpatch provides the documentation-build patchers for GitBook sites.
//
// Each patcher is a single pass over one kind of file: read it, transform the
// text or data, and write it back in place. The patchers share no state and
// never call each other.
//
// # Stylesheet augmenter
//
// Inject color declarations into known selector blocks:
//
//	result, err := docpatch.AugmentStylesheet(docpatch.StyleConfig{
//		Targets: []string{"docs/gitbook/style.css"},
//		Rules:   docpatch.DefaultColorRules(),
//		Verify:  true,
//	})
//
// Running it twice appends every declaration twice.
//
// # Commit-link updater
//
// Rewrite the [CODE] reference line of each chapter listed in commit_ids.txt:
//
//	result, err := docpatch.FillCommitLinks(docpatch.CommitConfig{
//		MapFile: "commit_ids.txt",
//		BaseURL: docpatch.DefaultBaseURL,
//		Label:   "CODE",
//	})
//
// # Syntax-registry patcher
//
// Register a Prism language in node_modules/prismjs/components.json:
//
//	result, err := docpatch.RegisterLanguage(docpatch.RegistryConfig{
//		File:     "node_modules/prismjs/components.json",
//		Language: "riscv",
//		Entry:    docpatch.LanguageEntry{Title: "RISC-V", Owner: "shinbokuow2"},
//	})
//
// # CLI Tool
//
//	go install github.com/yacobolo/docpatch/cmd/docpatch@latest
package docpatch
