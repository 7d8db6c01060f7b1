package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ivlev/leet2video/internal/episode"
)

// Step is one UMPIRE phase of the teaching script
type Step struct {
	Phase       string `json:"phase" yaml:"phase"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Narration   string `json:"narration" yaml:"narration"`
	Code        string `json:"code" yaml:"code"`
}

type Quiz struct {
	Question string   `json:"question" yaml:"question"`
	Choices  []string `json:"choices" yaml:"choices"`
	Answer   int      `json:"answer" yaml:"answer"`
}

// Script is the structured UMPIRE output of the model
type Script struct {
	Objectives  []string                 `json:"objectives" yaml:"objectives"`
	UmpireSteps []Step                   `json:"umpireSteps" yaml:"umpireSteps"`
	Storyboard  []episode.StoryboardItem `json:"storyboard" yaml:"storyboard"`
	Quizzes     []Quiz                   `json:"quizzes" yaml:"quizzes"`
}

var errEmptyResponse = errors.New("llm: empty model response")

// ParseScript decodes model output, repairing malformed JSON when needed
func ParseScript(raw string) (*Script, error) {
	var s Script
	if err := decodeJSON(raw, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

func decodeJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errEmptyResponse
	}
	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}

	fixed, repairErr := jsonrepair.JSONRepair(raw)
	if repairErr != nil {
		return errors.Join(err, repairErr)
	}
	return json.Unmarshal([]byte(fixed), v)
}

// Implementation returns the code of the Implement phase
func (s *Script) Implementation() (string, bool) {
	for _, step := range s.UmpireSteps {
		if strings.EqualFold(step.Phase, "Implement") {
			return step.Code, true
		}
	}
	return "", false
}

// Apply writes the script's objectives, storyboard and quizzes into episode data
func (s *Script) Apply(data episode.Data) {
	if len(s.Objectives) > 0 {
		objectives := make([]any, len(s.Objectives))
		for i, o := range s.Objectives {
			objectives[i] = o
		}
		data["objectives"] = objectives
	}

	if len(s.Storyboard) > 0 {
		board := make([]any, 0, len(s.Storyboard))
		for _, item := range s.Storyboard {
			board = append(board, map[string]any{
				"time":      item.Time,
				"visual":    item.Visual,
				"voiceover": item.Voiceover,
			})
		}
		data["storyboard"] = board
	}

	if len(s.Quizzes) > 0 {
		quizzes := make([]any, 0, len(s.Quizzes))
		for _, q := range s.Quizzes {
			choices := make([]any, len(q.Choices))
			for i, c := range q.Choices {
				choices[i] = c
			}
			quizzes = append(quizzes, map[string]any{
				"question": q.Question,
				"choices":  choices,
				"answer":   q.Answer,
			})
		}
		data["quizzes"] = quizzes
	}
}
