package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultProblemAPI = "https://alfa-leetcode-api.onrender.com"

// Problem is the raw problem record returned by the problem API
type Problem map[string]any

func (p Problem) Title() string {
	return p.first("Unknown Problem", "title", "questionTitle")
}

func (p Problem) Difficulty() string {
	return p.first("Unknown", "difficulty")
}

func (p Problem) Slug() string {
	return p.first("", "titleSlug", "slug")
}

// Description returns the statement as plain text
func (p Problem) Description() string {
	desc := p.first("", "description", "question", "content")
	if desc == "" {
		return "No description provided."
	}
	return HTMLToText(desc)
}

// Examples returns the examples list, or the raw example test cases split by line
func (p Problem) Examples() []any {
	if ex, ok := p["examples"].([]any); ok {
		return ex
	}
	if raw, ok := p["exampleTestcases"].(string); ok && raw != "" {
		lines := strings.Split(strings.TrimSpace(raw), "\n")
		out := make([]any, len(lines))
		for i, l := range lines {
			out[i] = l
		}
		return out
	}
	return []any{}
}

// Topics returns the topic tag names
func (p Problem) Topics() []string {
	tags, _ := p["topicTags"].([]any)
	var out []string
	for _, t := range tags {
		switch v := t.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				out = append(out, name)
			}
		}
	}
	return out
}

func (p Problem) first(def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := p[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}

// HTMLToText strips tags from a problem statement, keeping paragraph breaks
func HTMLToText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script, style").Remove()

	var parts []string
	doc.Find("p, pre, li").Each(func(i int, s *goquery.Selection) {
		if s.ParentsFiltered("p, pre, li").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			if goquery.NodeName(s) == "li" {
				text = "- " + text
			}
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(parts, "\n\n")
}

// ProblemFetcher loads problems from the unofficial LeetCode API with an LRU cache by slug
type ProblemFetcher struct {
	APIBase string
	Client  *http.Client

	cache *lru.Cache[string, Problem]
}

func NewProblemFetcher(apiBase string, cacheSize int) (*ProblemFetcher, error) {
	if apiBase == "" {
		apiBase = DefaultProblemAPI
	}
	if cacheSize <= 0 {
		cacheSize = 64
	}
	cache, err := lru.New[string, Problem](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("problem cache: %w", err)
	}
	return &ProblemFetcher{
		APIBase: strings.TrimRight(apiBase, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}, nil
}

func (f *ProblemFetcher) Fetch(ctx context.Context, slug string) (Problem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("fetch problem: empty slug")
	}
	if p, ok := f.cache.Get(slug); ok {
		return p, nil
	}

	endpoint := f.APIBase + "/problems/" + url.PathEscape(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch problem %s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch problem %s: status %d: %s", slug, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var p Problem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode problem %s: %w", slug, err)
	}
	f.cache.Add(slug, p)
	return p, nil
}
