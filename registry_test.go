package docpatch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const componentsJSON = `{"core":{"meta":{"path":"prism-core.js"}},"languages":{"meta":{"path":"components/prism-{id}","noCSS":true},"markup":{"title":"Markup","owner":"Golmote"}}}`

func TestPatchRegistry(t *testing.T) {
	out, replaced, err := PatchRegistry([]byte(componentsJSON), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 4)
	require.NoError(t, err)
	assert.False(t, replaced)

	want := `{
    "core": {
        "meta": {
            "path": "prism-core.js"
        }
    },
    "languages": {
        "markup": {
            "owner": "Golmote",
            "title": "Markup"
        },
        "meta": {
            "noCSS": true,
            "path": "components/prism-{id}"
        },
        "riscv": {
            "owner": "shinbokuow2",
            "title": "RISC-V"
        }
    }
}`
	assert.Equal(t, want, string(out))
}

func TestPatchRegistry_MissingKeyFails(t *testing.T) {
	_, _, err := PatchRegistry([]byte(`{"core":{}}`), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 4)
	require.Error(t, err)
}

func TestPatchRegistry_NotAnObject(t *testing.T) {
	_, _, err := PatchRegistry([]byte(`{"languages":[1,2]}`), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected object")
}

func TestPatchRegistry_OverwritesExisting(t *testing.T) {
	doc := `{"languages":{"riscv":{"title":"Old","owner":"someone","extra":1}}}`

	out, replaced, err := PatchRegistry([]byte(doc), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 2)
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, "{\n  \"languages\": {\n    \"riscv\": {\n      \"owner\": \"shinbokuow2\",\n      \"title\": \"RISC-V\"\n    }\n  }\n}", string(out))
}

func TestPatchRegistry_OptionalFields(t *testing.T) {
	entry := LanguageEntry{Title: "RISC-V", Owner: "me", Require: []string{"clike"}, Alias: []string{"rv", "rv64"}}

	out, _, err := PatchRegistry([]byte(`{"languages":{}}`), DefaultRegistryPath, "riscv", entry, -1)
	require.NoError(t, err)
	assert.Equal(t, `{"languages": {"riscv": {"alias": ["rv", "rv64"], "owner": "me", "require": "clike", "title": "RISC-V"}}}`, string(out))
}

func TestPatchRegistry_NestedPath(t *testing.T) {
	out, _, err := PatchRegistry([]byte(`{"a":{"b":{}}}`), "$.a.b", "x", LanguageEntry{Title: "X", Owner: "o"}, -1)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": {"x": {"owner": "o", "title": "X"}}}}`, string(out))
}

func TestPatchRegistry_InvalidJSON(t *testing.T) {
	_, _, err := PatchRegistry([]byte(`{`), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 4)
	require.Error(t, err)
}

func TestPatchRegistry_TrailingData(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "second object", doc: `{"languages":{}} {"core":{"meta":1}}`},
		{name: "stray bracket", doc: `{"languages":{}}]`},
		{name: "stray scalar", doc: "{\"languages\":{}}\n1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := PatchRegistry([]byte(tt.doc), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 4)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "trailing data")
		})
	}

	// Trailing whitespace is not data
	_, _, err := PatchRegistry([]byte("{\"languages\":{}}\n\n"), DefaultRegistryPath, "riscv", DefaultLanguageEntry(), 4)
	require.NoError(t, err)
}

func TestRegisterLanguage_TrailingDataKeepsFile(t *testing.T) {
	root := t.TempDir()
	doc := `{"languages":{}} {"core":{"meta":1}}`
	path := writeRegistry(t, root, doc)

	_, err := RegisterLanguage(RegistryConfig{Root: root})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))
}

func TestMarshalSorted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "numbers kept verbatim",
			input: `{"b":1.50,"a":12345678901234567890}`,
			want:  `{"a": 12345678901234567890, "b": 1.50}`,
		},
		{
			name:  "non-ascii escaped",
			input: `{"t":"café"}`,
			want:  `{"t": "caf\u00e9"}`,
		},
		{
			name:  "astral plane uses surrogate pair",
			input: `{"t":"😀"}`,
			want:  `{"t": "\ud83d\ude00"}`,
		},
		{
			name:  "html not escaped",
			input: `{"t":"<a>&/"}`,
			want:  `{"t": "<a>&/"}`,
		},
		{
			name:  "empty containers",
			input: `{"a":{},"b":[]}`,
			want:  `{"a": {}, "b": []}`,
		},
		{
			name:  "control characters escaped",
			input: `{"t":"a\tb\u0001\u007f\"\\"}`,
			want:  `{"t": "a\tb\u0001\u007f\"\\"}`,
		},
		{
			name:  "scalars and nesting",
			input: `{"z":[true,false,null],"a":[{"b":1}]}`,
			want:  `{"a": [{"b": 1}], "z": [true, false, null]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decodeForTest(t, tt.input)
			got, err := MarshalSorted(v, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func decodeForTest(t *testing.T, input string) interface{} {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v interface{}
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestMarshalSorted_ZeroIndent(t *testing.T) {
	v := decodeForTest(t, `{"languages":{"a":1,"b":[1,2]}}`)

	got, err := MarshalSorted(v, 0)
	require.NoError(t, err)
	assert.Equal(t, "{\n\"languages\": {\n\"a\": 1,\n\"b\": [\n1,\n2\n]\n}\n}", string(got))
}

func TestMarshalSorted_TypedValues(t *testing.T) {
	got, err := MarshalSorted(map[string]interface{}{"entry": DefaultLanguageEntry(), "n": 3}, -1)
	require.NoError(t, err)
	assert.Equal(t, `{"entry": {"owner": "shinbokuow2", "title": "RISC-V"}, "n": 3}`, string(got))
}

func TestMarshalSorted_NoTrailingNewline(t *testing.T) {
	got, err := MarshalSorted(map[string]interface{}{"a": []interface{}{}}, 4)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": []\n}", string(got))
}

func writeRegistry(t *testing.T, root, content string) string {
	t.Helper()
	path := filepath.Join(root, DefaultRegistryFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRegisterLanguage(t *testing.T) {
	root := t.TempDir()
	path := writeRegistry(t, root, componentsJSON)

	result, err := RegisterLanguage(RegistryConfig{Root: root})
	require.NoError(t, err)
	assert.Equal(t, "riscv", result.Language)
	assert.False(t, result.Replaced)
	assert.Empty(t, result.GrammarPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "        \"riscv\": {\n            \"owner\": \"shinbokuow2\",\n            \"title\": \"RISC-V\"\n        }")

	// Second run overwrites the entry in place
	result, err = RegisterLanguage(RegistryConfig{Root: root})
	require.NoError(t, err)
	assert.True(t, result.Replaced)

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestRegisterLanguage_MissingFile(t *testing.T) {
	_, err := RegisterLanguage(RegistryConfig{Root: t.TempDir()})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestRegisterLanguage_MissingLanguages(t *testing.T) {
	root := t.TempDir()
	writeRegistry(t, root, `{"core":{}}`)

	_, err := RegisterLanguage(RegistryConfig{Root: root})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))
}

func TestRegisterLanguage_InstallGrammar(t *testing.T) {
	root := t.TempDir()
	writeRegistry(t, root, componentsJSON)

	result, err := RegisterLanguage(RegistryConfig{Root: root, InstallGrammar: true})
	require.NoError(t, err)

	want := filepath.Join(root, "node_modules", "prismjs", "components", "prism-riscv.js")
	assert.Equal(t, want, result.GrammarPath)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Prism.languages.riscv")
}

func TestRegisterLanguage_InstallGrammarUnknownLanguage(t *testing.T) {
	root := t.TempDir()
	writeRegistry(t, root, componentsJSON)

	_, err := RegisterLanguage(RegistryConfig{
		Root:           root,
		Language:       "mips",
		Entry:          LanguageEntry{Title: "MIPS", Owner: "me"},
		InstallGrammar: true,
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestRegisterLanguage_GrammarFile(t *testing.T) {
	root := t.TempDir()
	writeRegistry(t, root, componentsJSON)
	require.NoError(t, os.WriteFile(filepath.Join(root, "prism-mips.js"), []byte("Prism.languages.mips = {};\n"), 0644))

	result, err := RegisterLanguage(RegistryConfig{
		Root:           root,
		Language:       "mips",
		Entry:          LanguageEntry{Title: "MIPS", Owner: "me"},
		InstallGrammar: true,
		GrammarFile:    "prism-mips.js",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(result.GrammarPath)
	require.NoError(t, err)
	assert.Equal(t, "Prism.languages.mips = {};\n", string(data))
}

func TestRegisterLanguage_DryRun(t *testing.T) {
	root := t.TempDir()
	path := writeRegistry(t, root, componentsJSON)

	result, err := RegisterLanguage(RegistryConfig{Root: root, DryRun: true, InstallGrammar: true})
	require.NoError(t, err)
	assert.Contains(t, result.Diff, "+        \"riscv\": {")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, componentsJSON, string(data))

	_, err = os.Stat(result.GrammarPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRegisterLanguage_CompactIndent(t *testing.T) {
	root := t.TempDir()
	path := writeRegistry(t, root, `{"languages":{}}`)

	_, err := RegisterLanguage(RegistryConfig{Root: root, Indent: -1})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"languages": {"riscv": {"owner": "shinbokuow2", "title": "RISC-V"}}}`, string(data))
}
