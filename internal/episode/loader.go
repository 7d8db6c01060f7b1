package episode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoFrontMatter = errors.New("no valid YAML front matter found")

var frontMatterRe = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// Load reads an episode file, choosing the format by extension
func Load(path string) (Data, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return LoadMarkdown(path)
	case ".json":
		return LoadJSON(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("unsupported episode format: %s", path)
	}
}

// LoadMarkdown parses a Markdown file with YAML front matter. The body is stored under "body".
func LoadMarkdown(path string) (Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	match := frontMatterRe.FindSubmatch(bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")))
	if match == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFrontMatter)
	}

	data, err := decodeYAML(match[1])
	if err != nil {
		return nil, fmt.Errorf("parse front matter %s: %w", path, err)
	}
	data["body"] = strings.TrimSpace(string(match[2]))

	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// SaveMarkdown writes the episode as YAML front matter followed by the body
func SaveMarkdown(path string, data Data) error {
	front := make(map[string]any, len(data))
	for k, v := range data {
		if k != "body" {
			front[k] = v
		}
	}
	body, _ := data["body"].(string)

	raw, err := yaml.Marshal(front)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(raw)
	buf.WriteString("---\n")
	buf.WriteString(body)

	return os.WriteFile(path, buf.Bytes(), 0644)
}

func LoadJSON(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func LoadYAML(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err := decodeYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// decodeYAML decodes into a plain map so nested mappings stay map[string]any
func decodeYAML(raw []byte) (Data, error) {
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return Data(m), nil
}
