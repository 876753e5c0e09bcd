package docpatch

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitMap(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []CommitEntry
		wantErr string
	}{
		{
			name:  "single entry",
			input: "a/b: deadbeef\n",
			want:  []CommitEntry{{Path: "a/b", CommitID: "deadbeef", Line: 1}},
		},
		{
			name:  "last line without newline keeps full id",
			input: "ch1/intro: 1a2b3c\nch2/boot: 4d5e6f",
			want: []CommitEntry{
				{Path: "ch1/intro", CommitID: "1a2b3c", Line: 1},
				{Path: "ch2/boot", CommitID: "4d5e6f", Line: 2},
			},
		},
		{
			name:  "crlf and blank lines",
			input: "a: 1\r\n\r\nb: 2\r\n",
			want: []CommitEntry{
				{Path: "a", CommitID: "1", Line: 1},
				{Path: "b", CommitID: "2", Line: 3},
			},
		},
		{
			name:    "missing delimiter",
			input:   "a/b deadbeef\n",
			wantErr: "missing",
		},
		{
			name:    "two delimiters",
			input:   "a: b: c\n",
			wantErr: "more than one",
		},
		{
			name:    "empty id",
			input:   "a/b: \n",
			wantErr: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommitMap(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var pe *ParseError
				assert.True(t, errors.As(err, &pe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplacementLine(t *testing.T) {
	assert.Equal(t,
		"[CODE]: https://github.com/rcore-os/rCore_tutorial/tree/deadbeef",
		ReplacementLine(DefaultLabel, DefaultBaseURL, "deadbeef"))
}

func TestLinePattern(t *testing.T) {
	assert.Equal(t, `^\[CODE\].*`, LinePattern("CODE"))
	assert.Equal(t, `^\[a\.b\].*`, LinePattern("a.b"))
}

func TestLinePattern_MatchesWholeLines(t *testing.T) {
	re := regexp.MustCompile("(?m)" + LinePattern("CODE"))

	text := "intro [CODE]: inline\n[CODE]: old-link\n[CODEX]: other\n[CODE]\n"
	assert.Equal(t, []string{"[CODE]: old-link", "[CODE]"}, re.FindAllString(text, -1))
	assert.False(t, regexp.MustCompile("(?m)"+LinePattern("a.b")).MatchString("[axb]: x"))
}

// writeChapters creates root/commit_ids.txt and one markdown file per entry.
func writeChapters(t *testing.T, root, mapping string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultCommitMap), []byte(mapping), 0644))
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func TestFillCommitLinks(t *testing.T) {
	root := t.TempDir()
	writeChapters(t, root, "a/b: deadbeef\n", map[string]string{
		"a/b.md": "# Chapter\n\nSee the [code][CODE].\n\n[CODE]: https://example.com/old\n",
	})

	result, err := FillCommitLinks(CommitConfig{Root: root})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 1, result.Entries[0].Replaced)
	assert.Equal(t, 0, result.Failed)

	data, err := os.ReadFile(filepath.Join(root, "a", "b.md"))
	require.NoError(t, err)
	assert.Equal(t,
		"# Chapter\n\nSee the [code][CODE].\n\n[CODE]: https://github.com/rcore-os/rCore_tutorial/tree/deadbeef\n",
		string(data))
}

func TestFillCommitLinks_PlaceholderLine(t *testing.T) {
	root := t.TempDir()
	writeChapters(t, root, "a/b: deadbeef\n", map[string]string{
		"a/b.md": "intro\n[CODE]\noutro\n[CODE]: again\n",
	})

	result, err := FillCommitLinks(CommitConfig{Root: root})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Entries[0].Replaced)

	data, err := os.ReadFile(filepath.Join(root, "a", "b.md"))
	require.NoError(t, err)
	line := "[CODE]: https://github.com/rcore-os/rCore_tutorial/tree/deadbeef"
	assert.Equal(t, "intro\n"+line+"\noutro\n"+line+"\n", string(data))
}

func TestFillCommitLinks_ContinuesAfterFailure(t *testing.T) {
	root := t.TempDir()
	writeChapters(t, root, "missing: 111\nok: 222\nplain: 333\n", map[string]string{
		"ok.md":    "[CODE]: x\n",
		"plain.md": "no link here\n",
	})

	result, err := FillCommitLinks(CommitConfig{Root: root})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))

	require.Len(t, result.Entries, 3)
	assert.Equal(t, 1, result.Failed)
	assert.Error(t, result.Entries[0].Err)
	assert.Equal(t, 1, result.Entries[1].Replaced)
	assert.Equal(t, 0, result.Entries[2].Replaced)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "plain.md")

	data, err := os.ReadFile(filepath.Join(root, "ok.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tree/222")
}

func TestFillCommitLinks_DryRun(t *testing.T) {
	root := t.TempDir()
	writeChapters(t, root, "a: abc\n", map[string]string{"a.md": "[CODE]: old\n"})

	result, err := FillCommitLinks(CommitConfig{Root: root, DryRun: true, Engine: EngineSed})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Entries[0].Replaced)
	assert.Contains(t, result.Entries[0].Diff, "+[CODE]: "+DefaultBaseURL+"abc")
	assert.Contains(t, result.Entries[0].Diff, "+++ b/a.md\n")

	data, err := os.ReadFile(filepath.Join(root, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "[CODE]: old\n", string(data))
}

func TestFillCommitLinks_CustomLabelAndExtension(t *testing.T) {
	root := t.TempDir()
	writeChapters(t, root, "ch: 42\n", map[string]string{"ch.markdown": "[SRC]: old\n[CODE]: keep\n"})

	_, err := FillCommitLinks(CommitConfig{
		Root:      root,
		Label:     "SRC",
		BaseURL:   "https://git.example.com/tree/",
		Extension: ".markdown",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "ch.markdown"))
	require.NoError(t, err)
	assert.Equal(t, "[SRC]: https://git.example.com/tree/42\n[CODE]: keep\n", string(data))
}

func TestFillCommitLinks_MissingMap(t *testing.T) {
	_, err := FillCommitLinks(CommitConfig{Root: t.TempDir()})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestFillCommitLinks_UnknownEngine(t *testing.T) {
	_, err := FillCommitLinks(CommitConfig{Root: t.TempDir(), Engine: "awk"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))
}

type recordingSubstituter struct {
	calls []Substitution
	paths []string
}

func (r *recordingSubstituter) Substitute(path string, s Substitution) (int, error) {
	r.paths = append(r.paths, path)
	r.calls = append(r.calls, s)
	return -1, nil
}

func TestFillCommitLinksWith_CustomSubstituter(t *testing.T) {
	root := t.TempDir()
	writeChapters(t, root, "a/b: deadbeef\n", nil)

	rec := &recordingSubstituter{}
	result, err := FillCommitLinksWith(CommitConfig{Root: root}, rec)
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, filepath.Join(root, "a", "b.md"), rec.paths[0])
	assert.Equal(t, `^\[CODE\].*`, rec.calls[0].Find)
	assert.Equal(t, "[CODE]: https://github.com/rcore-os/rCore_tutorial/tree/deadbeef", rec.calls[0].Replace)
	assert.Equal(t, -1, result.Entries[0].Replaced)
	assert.Empty(t, result.Warnings)
}
