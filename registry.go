package docpatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/PaesslerAG/jsonpath"
	"github.com/yacobolo/docpatch/internal/grammars"
)

const (
	// DefaultRegistryFile is Prism's component registry inside node_modules.
	DefaultRegistryFile = "node_modules/prismjs/components.json"
	// DefaultRegistryPath selects the language collection in the registry.
	DefaultRegistryPath = "$.languages"
	// DefaultIndent is the number of spaces per nesting level.
	DefaultIndent = 4
)

// DefaultLanguageEntry is the RISC-V registration.
func DefaultLanguageEntry() LanguageEntry {
	return LanguageEntry{Title: "RISC-V", Owner: "shinbokuow2"}
}

// toMap converts the entry to a map so its keys are serialized in sorted order.
func (e LanguageEntry) toMap() map[string]interface{} {
	m := map[string]interface{}{
		"title": e.Title,
		"owner": e.Owner,
	}
	if len(e.Require) == 1 {
		m["require"] = e.Require[0]
	} else if len(e.Require) > 1 {
		m["require"] = stringsToAny(e.Require)
	}
	if len(e.Alias) == 1 {
		m["alias"] = e.Alias[0]
	} else if len(e.Alias) > 1 {
		m["alias"] = stringsToAny(e.Alias)
	}
	return m
}

func stringsToAny(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// PatchRegistry sets container[language] = entry, where container is the
// object selected by the JSONPath expression path, and re-serializes doc
// with sorted keys. It reports whether an existing entry was overwritten.
// The document is not otherwise validated.
func PatchRegistry(doc []byte, path, language string, entry LanguageEntry, indent int) ([]byte, bool, error) {
	if language == "" {
		return nil, false, fmt.Errorf("language id is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, false, fmt.Errorf("decode registry: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, false, fmt.Errorf("decode registry: trailing data after top-level value")
	}

	container, err := jsonpath.Get(path, root)
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s: %w", path, err)
	}
	languages, ok := container.(map[string]interface{})
	if !ok {
		return nil, false, fmt.Errorf("lookup %s: expected object, got %T", path, container)
	}

	_, replaced := languages[language]
	languages[language] = entry.toMap()

	out, err := MarshalSorted(root, indent)
	if err != nil {
		return nil, false, err
	}
	return out, replaced, nil
}

// MarshalSorted serializes v in the layout of a key-sorted JSON dump:
// object keys sorted, ": " between key and value, non-ASCII and control
// characters escaped as \uXXXX, no HTML escaping and no trailing newline.
//
// With indent >= 0 every member goes on its own line, indented by indent
// spaces per level (0 gives newlines without indentation) and separated by
// ",". A negative indent keeps the document on one line with ", " between
// members. Numbers decoded as json.Number are written verbatim.
func MarshalSorted(v interface{}, indent int) ([]byte, error) {
	e := &sortedEncoder{indent: indent}
	if err := e.encode(v, 0); err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return e.buf.Bytes(), nil
}

type sortedEncoder struct {
	buf    bytes.Buffer
	indent int
}

func (e *sortedEncoder) encode(v interface{}, depth int) error {
	switch x := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		if x {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
	case string:
		e.writeString(x)
	case json.Number:
		e.buf.WriteString(x.String())
	case map[string]interface{}:
		if len(x) == 0 {
			e.buf.WriteString("{}")
			return nil
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		e.buf.WriteByte('{')
		for i, k := range keys {
			e.member(i, depth+1)
			e.writeString(k)
			e.buf.WriteString(": ")
			if err := e.encode(x[k], depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	case []interface{}:
		if len(x) == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, item := range x {
			e.member(i, depth+1)
			if err := e.encode(item, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	default:
		// Anything else is normalized through encoding/json first
		data, err := json.Marshal(x)
		if err != nil {
			return err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var generic interface{}
		if err := dec.Decode(&generic); err != nil {
			return err
		}
		return e.encode(generic, depth)
	}
	return nil
}

// member writes the separator before the i-th member of a container
func (e *sortedEncoder) member(i, depth int) {
	if i > 0 {
		e.buf.WriteByte(',')
		if e.indent < 0 {
			e.buf.WriteByte(' ')
		}
	}
	e.newline(depth)
}

func (e *sortedEncoder) newline(depth int) {
	if e.indent < 0 {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(" ", e.indent*depth))
}

// writeString quotes s using only printable ASCII,
// with surrogate pairs outside the Basic Multilingual Plane.
func (e *sortedEncoder) writeString(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		case '\b':
			e.buf.WriteString(`\b`)
		case '\f':
			e.buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				e.buf.WriteRune(r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(&e.buf, `\u%04x\u%04x`, r1, r2)
			default:
				fmt.Fprintf(&e.buf, `\u%04x`, r)
			}
		}
	}
	e.buf.WriteByte('"')
}

// RegisterLanguage is the syntax-registry patcher entry point.
func RegisterLanguage(config RegistryConfig) (*RegistryResult, error) {
	config = withRegistryDefaults(config)

	file := resolvePath(config.Root, config.File)
	result := &RegistryResult{File: file, Language: config.Language}

	if config.Verbose {
		fmt.Printf("Registering %s in %s\n", config.Language, file)
	}

	data, mode, err := readFile("registry.read", file)
	if err != nil {
		return nil, err
	}

	out, replaced, err := PatchRegistry(data, config.Path, config.Language, config.Entry, config.Indent)
	if err != nil {
		return nil, &OpError{Op: "registry.patch", Kind: KindInvalidInput, Path: file, Err: err}
	}
	result.Replaced = replaced

	if config.InstallGrammar {
		result.GrammarPath, err = installGrammar(config, file)
		if err != nil {
			return nil, err
		}
	}

	if config.DryRun {
		result.Diff, err = unifiedDiff(config.Root, file, string(data), string(out))
		if err != nil {
			return nil, &OpError{Op: "registry.diff", Kind: KindExecution, Path: file, Err: err}
		}
		return result, nil
	}

	if err := writeFile("registry.write", file, out, mode); err != nil {
		return nil, err
	}
	return result, nil
}

// installGrammar writes the language definition next to the registry as
// components/prism-<language>.js and returns its path.
func installGrammar(config RegistryConfig, registryFile string) (string, error) {
	var source []byte
	if config.GrammarFile != "" {
		src := resolvePath(config.Root, config.GrammarFile)
		data, _, err := readFile("registry.read_grammar", src)
		if err != nil {
			return "", err
		}
		source = data
	} else {
		g, ok := grammars.Lookup(config.Language)
		if !ok {
			return "", &OpError{
				Op:   "registry.grammar",
				Kind: KindNotFound,
				Err: fmt.Errorf("no embedded grammar for %q (embedded: %s); set a grammar file",
					config.Language, strings.Join(grammars.Languages(), ", ")),
			}
		}
		source = []byte(g)
	}

	dir := filepath.Join(filepath.Dir(registryFile), "components")
	path := filepath.Join(dir, "prism-"+config.Language+".js")

	if config.DryRun {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &OpError{Op: "registry.mkdir", Kind: KindExecution, Path: dir, Err: err}
	}
	if err := writeFile("registry.write_grammar", path, source, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func withRegistryDefaults(config RegistryConfig) RegistryConfig {
	if config.File == "" {
		config.File = DefaultRegistryFile
	}
	if config.Path == "" {
		config.Path = DefaultRegistryPath
	}
	if config.Language == "" {
		config.Language = "riscv"
		if config.Entry.Title == "" && config.Entry.Owner == "" {
			config.Entry = DefaultLanguageEntry()
		}
	}
	if config.Indent == 0 {
		config.Indent = DefaultIndent
	}
	return config
}
