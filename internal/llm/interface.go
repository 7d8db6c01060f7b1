package llm

import (
	"context"
	"fmt"
)

// Interface simulates the LeetCode workflow for an LLM: fetch, solve, extract code and cues
type Interface struct {
	Model        Model
	Fetcher      *ProblemFetcher
	PromptTokens int
}

func NewInterface(model Model, fetcher *ProblemFetcher) *Interface {
	return &Interface{Model: model, Fetcher: fetcher, PromptTokens: DefaultPromptTokens}
}

func (i *Interface) FetchProblem(ctx context.Context, slug string) (Problem, error) {
	if i.Fetcher == nil {
		return nil, fmt.Errorf("fetch problem: no fetcher configured")
	}
	return i.Fetcher.Fetch(ctx, slug)
}

// GenerateUMPIREScript asks the model for a structured script
func (i *Interface) GenerateUMPIREScript(ctx context.Context, p Problem) (*Script, error) {
	raw, err := i.Model.GenerateJSON(ctx, UMPIRESystem, BuildUMPIREPrompt(p, i.PromptTokens))
	if err != nil {
		return nil, err
	}
	return ParseScript(raw)
}

// SolveProblem fetches a problem and generates its script
func (i *Interface) SolveProblem(ctx context.Context, slug string) (Problem, *Script, error) {
	p, err := i.FetchProblem(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	s, err := i.GenerateUMPIREScript(ctx, p)
	if err != nil {
		return p, nil, fmt.Errorf("solve %s: %w", slug, err)
	}
	return p, s, nil
}

// GenerateCodeSnippet returns the Implement phase code, or "" when the script has none
func (i *Interface) GenerateCodeSnippet(ctx context.Context, p Problem) (string, error) {
	s, err := i.GenerateUMPIREScript(ctx, p)
	if err != nil {
		return "", err
	}
	code, _ := s.Implementation()
	return code, nil
}

func (i *Interface) SuggestRecognitionCues(ctx context.Context, p Problem) ([]string, error) {
	raw, err := i.Model.GenerateJSON(ctx, CuesSystem, buildCuesPrompt(p))
	if err != nil {
		return nil, err
	}
	var cues []string
	if err := decodeJSON(raw, &cues); err != nil {
		return nil, fmt.Errorf("parse cues: %w", err)
	}
	return cues, nil
}
