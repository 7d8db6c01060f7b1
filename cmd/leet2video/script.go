package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/llm"
)

func newScriptCommand(a *app) *cobra.Command {
	var out string
	var cues bool
	cmd := &cobra.Command{
		Use:   "script <slug>",
		Short: "Fetch a problem and generate an UMPIRE script with Gemini",
		Long: `Fetch a problem from the LeetCode API mirror and ask Gemini for a structured
UMPIRE (Understand, Match, Plan, Implement, Review, Evaluate) script.

The script is printed as JSON. With --episode it is also saved as an episode
Markdown file that "leet2video render" accepts.

Examples:
  leet2video script two-sum
  leet2video script two-sum --episode episodes/two-sum.md --cues`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			slug := args[0]

			model, err := llm.NewGeminiClient(ctx, a.cfg.Gemini.APIKey, a.cfg.Gemini.Model)
			if err != nil {
				return err
			}
			fetcher, err := llm.NewProblemFetcher(a.cfg.Gemini.ProblemAPI, 0)
			if err != nil {
				return err
			}
			iface := llm.NewInterface(model, fetcher)
			if a.cfg.Gemini.PromptTokens > 0 {
				iface.PromptTokens = a.cfg.Gemini.PromptTokens
			}

			a.log.Info("[*] generating script", "slug", slug, "model", model.Model())
			problem, script, err := iface.SolveProblem(ctx, slug)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(script); err != nil {
				return err
			}
			if out == "" {
				return nil
			}

			data := episodeFromScript(slug, problem, script)
			if cues {
				list, err := iface.SuggestRecognitionCues(ctx, problem)
				if err != nil {
					a.log.Warn("[!] recognition cues skipped", "error", err)
				} else {
					data["recognitionCues"] = toAny(list)
				}
			}
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return err
			}
			if err := episode.SaveMarkdown(out, data); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s %s\n", green("[+]"), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "episode", "", "also save an episode Markdown file")
	cmd.Flags().BoolVar(&cues, "cues", false, "ask for recognition cues as well")
	return cmd
}

// episodeFromScript builds episode data for a generated script
func episodeFromScript(slug string, p llm.Problem, s *llm.Script) episode.Data {
	data := episode.Data{
		"id":           slug,
		"title":        p.Title(),
		"leetcodeSlug": slug,
		"difficulty":   p.Difficulty(),
		"pattern":      toAny(p.Topics()),
		"objectives":   []any{},
		"body":         p.Description(),
	}
	s.Apply(data)

	if code, ok := s.Implementation(); ok && code != "" {
		data["codeSnippets"] = []any{map[string]any{"language": "python", "code": code}}
	}
	return data
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Ask Gemini to review a rendered episode video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := llm.NewGeminiClient(cmd.Context(), a.cfg.Gemini.APIKey, a.cfg.Gemini.Model)
			if err != nil {
				return err
			}
			text, err := model.AnalyzeVideo(cmd.Context(), args[0], prompt)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "Review this coding tutorial video. Is the narration in sync with the visuals? List concrete issues.", "question for the model")
	return cmd
}
