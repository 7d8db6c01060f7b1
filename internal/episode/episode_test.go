package episode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSumMarkdown = `---
id: two-sum
title: Two Sum
leetcodeSlug: two-sum
difficulty: Easy
pattern:
  - Hash Map
objectives:
  - Use a hash map for O(1) lookups
storyboard:
  - time: "00:00"
    visual: Problem introduction
    voiceover: Today we solve Two Sum.
  - time: "01:30"
    visual: Hash map walkthrough
    voiceover: We store each number as we go.
---
# Two Sum

Find two numbers that add up to a target.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func validData() Data {
	return Data{
		"id":           "two-sum",
		"title":        "Two Sum",
		"leetcodeSlug": "two-sum",
		"difficulty":   "Easy",
		"pattern":      []any{"Hash Map"},
		"objectives":   []any{"Learn hash maps"},
	}
}

func TestLoadMarkdown(t *testing.T) {
	path := writeFile(t, "two-sum.md", twoSumMarkdown)

	data, err := LoadMarkdown(path)
	require.NoError(t, err)

	id, ok := data.ID()
	require.True(t, ok)
	assert.Equal(t, "two-sum", id)
	assert.Equal(t, "Two Sum", data.Title())
	assert.Equal(t, []string{"Hash Map"}, data.Strings("pattern"))
	assert.Equal(t, "# Two Sum\n\nFind two numbers that add up to a target.", data["body"])
	assert.Equal(t, []string{"Today we solve Two Sum.", "We store each number as we go."}, data.Narration())
}

func TestLoadYAMLKeepsStoryboard(t *testing.T) {
	content := `id: two-sum
title: Two Sum
leetcodeSlug: two-sum
difficulty: Easy
pattern: [Hash Map]
objectives: [Use a hash map]
storyboard:
  - time: "00:00"
    visual: Intro
    voiceover: Today we solve Two Sum.
`
	data, err := LoadYAML(writeFile(t, "two-sum.yaml", content))
	require.NoError(t, err)

	board := data.Storyboard()
	require.Len(t, board, 1)
	assert.Equal(t, "Intro", board[0]["visual"])
	assert.Equal(t, []string{"Today we solve Two Sum."}, data.Narration())
}

func TestStoryboardAcceptsNestedData(t *testing.T) {
	data := Data{"storyboard": []any{Data{"time": "00:10", "voiceover": "Hi"}, "skip"}}

	require.Len(t, data.Storyboard(), 1)
	assert.Equal(t, []string{"Hi"}, data.Narration())
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		data    Data
		want    string
		wantErr bool
	}{
		{"id", "episodes/a.md", Data{"id": "two-sum"}, "two-sum", false},
		{"file name fallback", "episodes/valid-parentheses.md", Data{}, "valid-parentheses", false},
		{"blank id", "episodes/b.json", Data{"id": "  "}, "b", false},
		{"parent escape", "a.md", Data{"id": "../../x"}, "", true},
		{"nested", "a.md", Data{"id": "a/b"}, "", true},
		{"backslash", "a.md", Data{"id": `..\x`}, "", true},
		{"dot dot", "a.md", Data{"id": ".."}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputName(tt.path, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsafeID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMarkdownWithoutFrontMatter(t *testing.T) {
	path := writeFile(t, "plain.md", "# Just a heading\n")

	_, err := LoadMarkdown(path)
	assert.ErrorIs(t, err, ErrNoFrontMatter)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadMarkdown(filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveMarkdownRoundTrip(t *testing.T) {
	data := validData()
	data["body"] = "Body text"
	path := filepath.Join(t.TempDir(), "out.md")

	require.NoError(t, SaveMarkdown(path, data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "---\n")
	assert.NotContains(t, string(raw), "body:")

	loaded, err := LoadMarkdown(path)
	require.NoError(t, err)
	assert.Equal(t, "Body text", loaded["body"])
	assert.Equal(t, "Two Sum", loaded.Title())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "ep.json", `{"id":"1","title":"T","leetcodeSlug":"s","difficulty":"Hard","pattern":[],"objectives":[]}`)

	data, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hard", data.Difficulty())

	bad := writeFile(t, "bad.json", `{"id":`)
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("episode.txt")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(Data)
		wantErr string
	}{
		{name: "valid", mutate: func(Data) {}},
		{name: "bad difficulty", mutate: func(d Data) { d["difficulty"] = "Impossible" }, wantErr: "difficulty must be one of"},
		{name: "missing id", mutate: func(d Data) { delete(d, "id") }, wantErr: "id is required"},
		{name: "missing objectives", mutate: func(d Data) { delete(d, "objectives") }, wantErr: "objectives is required"},
		{name: "wrong type", mutate: func(d Data) { d["pattern"] = "Hash Map" }, wantErr: "pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			tt.mutate(data)

			err := Validate(data)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDataDefaults(t *testing.T) {
	data := Data{}

	_, ok := data.ID()
	assert.False(t, ok)
	assert.Equal(t, "LeetCode Explainer", data.Title())
	assert.Equal(t, "Unknown", data.Difficulty())
	assert.Empty(t, data.Slug())
	assert.Nil(t, data.Narration())

	_, ok = Data{"id": 42}.ID()
	assert.False(t, ok)
}
