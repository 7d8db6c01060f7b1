package episode

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsafeID is returned for an episode id that cannot name an output directory
var ErrUnsafeID = errors.New("episode id must be a single path element")

// Data is the opaque episode mapping as loaded from disk
type Data map[string]any

// ID returns the episode identifier. Missing or non-string ids report false.
func (d Data) ID() (string, bool) {
	return d.str("id")
}

func (d Data) Title() string {
	if title, ok := d.str("title"); ok {
		return title
	}
	return "LeetCode Explainer"
}

func (d Data) Difficulty() string {
	if difficulty, ok := d.str("difficulty"); ok {
		return difficulty
	}
	return "Unknown"
}

func (d Data) Slug() string {
	slug, _ := d.str("leetcodeSlug")
	return slug
}

// Strings reads a list of strings, skipping non-string entries
func (d Data) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Storyboard returns storyboard entries as maps, in file order
func (d Data) Storyboard() []map[string]any {
	raw, ok := d["storyboard"].([]any)
	if !ok {
		if typed, ok := d["storyboard"].([]map[string]any); ok {
			return typed
		}
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, m)
		case Data:
			out = append(out, m)
		}
	}
	return out
}

func (d Data) str(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// StoryboardItem is one timed storyboard beat
type StoryboardItem struct {
	Time      string `json:"time,omitempty" yaml:"time,omitempty"`
	Visual    string `json:"visual,omitempty" yaml:"visual,omitempty"`
	Voiceover string `json:"voiceover,omitempty" yaml:"voiceover,omitempty"`
}

// Episode is the typed view used for schema validation
type Episode struct {
	ID              string           `json:"id" validate:"required"`
	Title           string           `json:"title" validate:"required"`
	LeetcodeSlug    string           `json:"leetcodeSlug" validate:"required"`
	Difficulty      string           `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Pattern         []string         `json:"pattern" validate:"required"`
	Objectives      []string         `json:"objectives" validate:"required"`
	RecognitionCues []string         `json:"recognitionCues,omitempty"`
	Approaches      []map[string]any `json:"approaches,omitempty"`
	CodeSnippets    []map[string]any `json:"codeSnippets,omitempty"`
	Storyboard      []StoryboardItem `json:"storyboard,omitempty"`
	Quizzes         []map[string]any `json:"quizzes,omitempty"`
	Accessibility   map[string]any   `json:"accessibility,omitempty"`
	Distribution    map[string]any   `json:"distribution,omitempty"`
	Body            string           `json:"body,omitempty"`
}

// Typed converts the opaque mapping into an Episode. Wrong field types are reported as errors.
func (d Data) Typed() (*Episode, error) {
	raw, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, fmt.Errorf("encode episode: %w", err)
	}
	var ep Episode
	if err := json.Unmarshal(raw, &ep); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("episode field %q: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return nil, fmt.Errorf("decode episode: %w", err)
	}
	return &ep, nil
}

// OutputName is the directory name for an episode: its id, or the file name
// without extension when the id is missing. Ids with path separators are rejected.
func OutputName(path string, d Data) (string, error) {
	id, ok := d.ID()
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeID, id)
	}
	return id, nil
}

// Narration returns the voiceover lines of the storyboard in order
func (d Data) Narration() []string {
	var lines []string
	for _, item := range d.Storyboard() {
		if v, ok := item["voiceover"].(string); ok && strings.TrimSpace(v) != "" {
			lines = append(lines, strings.TrimSpace(v))
		}
	}
	return lines
}
