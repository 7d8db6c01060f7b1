package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const (
	UMPIRESystem = "You are an expert LeetCode tutor. Use UMPIRE method: Understand, Match, Plan, Implement, Review, Evaluate. Output structured JSON with steps, code, and narration."
	CuesSystem   = "Output JSON array of recognition cues."

	// DefaultPromptTokens caps the problem description inside the prompt
	DefaultPromptTokens = 3000
)

const umpireSchema = `{
  "objectives": ["learning goal 1", "learning goal 2"],
  "umpireSteps": [
    {
      "phase": "Understand",
      "explanation": "Restate the problem and constraints.",
      "narration": "In this problem, we need to...",
      "code": "N/A"
    },
    {
      "phase": "Match",
      "explanation": "Identify the pattern or data structure.",
      "narration": "This matches the [pattern] pattern because...",
      "code": "N/A"
    },
    {
      "phase": "Plan",
      "explanation": "Outline the approach with pseudocode.",
      "narration": "We'll use a [data structure] to...",
      "code": "Pseudocode here"
    },
    {
      "phase": "Implement",
      "explanation": "Write the solution code with comments.",
      "narration": "Now, let's implement the code step by step.",
      "code": "def solution(nums, target):\n    # Comment explaining logic"
    },
    {
      "phase": "Review",
      "explanation": "Dry-run with examples and edge cases.",
      "narration": "Let's test with the examples...",
      "code": "N/A"
    },
    {
      "phase": "Evaluate",
      "explanation": "Analyze complexity and alternatives.",
      "narration": "This solution runs in O(n) time...",
      "code": "N/A"
    }
  ],
  "storyboard": [
    {"time": "00:00", "visual": "Problem introduction", "voiceover": "Today we solve..."}
  ],
  "quizzes": [
    {"question": "What is the time complexity?", "choices": ["O(n)", "O(n^2)"], "answer": 0}
  ]
}`

// BuildUMPIREPrompt renders the script request for a problem.
// The description is truncated to maxTokens (DefaultPromptTokens when <= 0).
func BuildUMPIREPrompt(p Problem, maxTokens int) string {
	if maxTokens <= 0 {
		maxTokens = DefaultPromptTokens
	}
	examples, err := json.MarshalIndent(p.Examples(), "", "  ")
	if err != nil {
		examples = []byte("[]")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a detailed UMPIRE script for the LeetCode problem '%s' (Difficulty: %s).\n\n", p.Title(), p.Difficulty())
	fmt.Fprintf(&sb, "Problem Description:\n%s\n\n", TruncateToTokens(p.Description(), maxTokens))
	fmt.Fprintf(&sb, "Examples:\n%s\n\n", examples)
	fmt.Fprintf(&sb, "Output JSON:\n%s\n", umpireSchema)
	return sb.String()
}

func buildCuesPrompt(p Problem) string {
	return fmt.Sprintf("Based on this problem: %s. Suggest recognition cues for patterns.", p.Title())
}

var (
	encOnce  sync.Once
	encoding *tiktoken.Tiktoken

	// loadEncoding may download the BPE ranks on first use
	loadEncoding = func() (*tiktoken.Tiktoken, error) {
		return tiktoken.GetEncoding("cl100k_base")
	}
)

func tokenizer() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		if enc, err := loadEncoding(); err == nil {
			encoding = enc
		}
	})
	return encoding
}

// EstimateTokens is the cheap heuristic: max(runes/4, words)
func EstimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	estimate := len([]rune(trimmed)) / 4
	if words := len(strings.Fields(trimmed)); estimate < words {
		estimate = words
	}
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}

// TruncateToTokens cuts text to about maxTokens tokens.
// Texts that are clearly short skip the tokenizer.
func TruncateToTokens(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text)*2 <= maxTokens {
		return text
	}
	if enc := tokenizer(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) <= maxTokens {
			return text
		}
		// A token boundary can fall inside a multi-byte rune
		return trimPartialRune(enc.Decode(tokens[:maxTokens])) + "..."
	}

	runes := []rune(text)
	limit := maxTokens * 4
	if limit >= len(runes) {
		return text
	}
	return string(runes[:limit]) + "..."
}

// trimPartialRune drops an incomplete UTF-8 sequence from the end of s
func trimPartialRune(s string) string {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if r != utf8.RuneError || size > 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}
