package docpatch

import "github.com/yacobolo/docpatch/internal/stylesheet"

// ColorRule appends Declaration right after every occurrence of Marker.
type ColorRule struct {
	Marker      string `json:"marker"`      // "markdown-section code{"
	Declaration string `json:"declaration"` // "color:#bf616a;"
}

// RuleHit records how many times a rule's marker was found in one file.
type RuleHit struct {
	Rule  ColorRule `json:"rule"`
	Count int       `json:"count"`
}

// StyleConfig holds stylesheet augmenter configuration
type StyleConfig struct {
	Root        string      // Base directory for Targets (default: ".")
	Targets     []string    // ["docs/gitbook/style.css"], doublestar patterns
	Rules       []ColorRule // Applied in order
	Verify      bool        // Tokenize the result before writing
	SkipIgnored bool        // Drop matches ignored by Root/.gitignore
	DryRun      bool        // Compute diffs, write nothing
	Verbose     bool
}

// StyleFile describes the outcome for one stylesheet.
type StyleFile struct {
	Path   string
	Hits   []RuleHit
	Diff   string // Only set in dry-run mode
	Before stylesheet.Summary
	After  stylesheet.Summary
}

// Changed reports whether any rule matched.
func (f StyleFile) Changed() bool {
	for _, h := range f.Hits {
		if h.Count > 0 {
			return true
		}
	}
	return false
}

// StyleResult contains augmenter stats
type StyleResult struct {
	Files        []StyleFile
	FilesScanned int
	Warnings     []string
}

// CommitEntry is one "<path>: <commit-id>" line from the mapping file.
type CommitEntry struct {
	Path     string `json:"path"`
	CommitID string `json:"commit_id"`
	Line     int    `json:"line"`
}

// Engine selects how commit links are substituted.
type Engine string

const (
	// EngineBuiltin rewrites files in-process with Go regexps.
	EngineBuiltin Engine = "builtin"
	// EngineSed shells out to sed -i -E.
	EngineSed Engine = "sed"
)

// CommitConfig holds commit-link updater configuration
type CommitConfig struct {
	Root      string // Base directory for MapFile and chapter paths (default: ".")
	MapFile   string // "commit_ids.txt"
	BaseURL   string // "https://github.com/rcore-os/rCore_tutorial/tree/"
	Label     string // "CODE" -> lines starting with [CODE]
	Extension string // ".md"
	Engine    Engine
	Repo      string // Optional git repository used to verify commit ids
	DryRun    bool
	Verbose   bool
}

// CommitUpdate is the outcome for one mapping entry.
type CommitUpdate struct {
	Entry    CommitEntry
	File     string
	Replaced int // -1 when the engine cannot count (sed)
	Diff     string
	Err      error
}

// CommitResult contains updater stats
type CommitResult struct {
	Entries  []CommitUpdate
	Failed   int
	Warnings []string
}

// LanguageEntry is the value stored under languages.<name> in Prism's components.json.
type LanguageEntry struct {
	Title   string   `json:"title"`
	Owner   string   `json:"owner"`
	Require []string `json:"require,omitempty"`
	Alias   []string `json:"alias,omitempty"`
}

// RegistryConfig holds syntax-registry patcher configuration
type RegistryConfig struct {
	Root           string // Base directory for File (default: ".")
	File           string // "node_modules/prismjs/components.json"
	Path           string // JSONPath of the language collection (default: "$.languages")
	Language       string // "riscv"
	Entry          LanguageEntry
	Indent         int    // Spaces per level (default: 4, negative for compact output)
	InstallGrammar bool   // Also write components/prism-<language>.js
	GrammarFile    string // Grammar source; the embedded grammar is used for riscv when empty
	DryRun         bool
	Verbose        bool
}

// RegistryResult contains patcher stats
type RegistryResult struct {
	File        string
	Language    string
	Replaced    bool   // An entry for Language already existed
	GrammarPath string // Set when a grammar was installed
	Diff        string
}
