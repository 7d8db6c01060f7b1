package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/leet2video/internal/episode"
)

func TestMain(m *testing.M) {
	// Keep tests offline: no BPE download
	loadEncoding = func() (*tiktoken.Tiktoken, error) {
		return nil, errors.New("offline")
	}
	os.Exit(m.Run())
}

type fakeModel struct {
	response string
	err      error
	system   string
	prompt   string
}

func (f *fakeModel) GenerateJSON(_ context.Context, system, prompt string) (string, error) {
	f.system, f.prompt = system, prompt
	return f.response, f.err
}

const scriptJSON = `{
  "objectives": ["Use a hash map"],
  "umpireSteps": [
    {"phase": "Understand", "explanation": "e", "narration": "n", "code": "N/A"},
    {"phase": "Implement", "explanation": "e", "narration": "n", "code": "def two_sum(): pass"}
  ],
  "storyboard": [{"time": "00:00", "visual": "Intro", "voiceover": "Today we solve Two Sum."}],
  "quizzes": [{"question": "Time?", "choices": ["O(n)", "O(n^2)"], "answer": 0}]
}`

func TestParseScript(t *testing.T) {
	s, err := ParseScript(scriptJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"Use a hash map"}, s.Objectives)
	require.Len(t, s.UmpireSteps, 2)

	code, ok := s.Implementation()
	assert.True(t, ok)
	assert.Equal(t, "def two_sum(): pass", code)
}

func TestParseScriptRepairsTrailingComma(t *testing.T) {
	s, err := ParseScript(`{"objectives": ["a", "b",], "umpireSteps": [],}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Objectives)
}

func TestParseScriptEmpty(t *testing.T) {
	_, err := ParseScript("   ")
	assert.Error(t, err)
}

func TestScriptApply(t *testing.T) {
	s, err := ParseScript(scriptJSON)
	require.NoError(t, err)

	data := episode.Data{"id": "two-sum"}
	s.Apply(data)

	assert.Equal(t, []string{"Use a hash map"}, data.Strings("objectives"))
	assert.Equal(t, []string{"Today we solve Two Sum."}, data.Narration())
	assert.NotNil(t, data["quizzes"])
}

func TestHTMLToText(t *testing.T) {
	html := `<p>Given an array <code>nums</code>.</p><pre>Input: 1</pre><ul><li>one</li><li>two</li></ul>`
	assert.Equal(t, "Given an array nums.\n\nInput: 1\n\n- one\n\n- two", HTMLToText(html))
	assert.Equal(t, "plain text", HTMLToText("  plain text "))
}

func TestBuildUMPIREPrompt(t *testing.T) {
	p := Problem{
		"questionTitle": "Two Sum",
		"difficulty":    "Easy",
		"question":      "<p>Find two numbers.</p>",
		"examples":      []any{map[string]any{"input": "[2,7]", "output": "[0,1]"}},
	}

	prompt := BuildUMPIREPrompt(p, 0)
	assert.Contains(t, prompt, "'Two Sum' (Difficulty: Easy)")
	assert.Contains(t, prompt, "Problem Description:\nFind two numbers.\n")
	assert.Contains(t, prompt, "\"input\": \"[2,7]\"")
	assert.Contains(t, prompt, `"phase": "Evaluate"`)
}

func TestBuildUMPIREPromptDefaults(t *testing.T) {
	prompt := BuildUMPIREPrompt(Problem{}, 0)
	assert.Contains(t, prompt, "'Unknown Problem' (Difficulty: Unknown)")
	assert.Contains(t, prompt, "No description provided.")
	assert.Contains(t, prompt, "Examples:\n[]")
}

func TestTruncateToTokens(t *testing.T) {
	short := "a short statement"
	assert.Equal(t, short, TruncateToTokens(short, 100))

	long := strings.Repeat("abcd ", 200)
	out := TruncateToTokens(long, 10)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.Less(t, len(out), len(long))

	assert.Equal(t, 0, EstimateTokens("  "))
	assert.Equal(t, 3, EstimateTokens("one two three"))
}

func TestTrimPartialRune(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"héllo"[:2], "h"},
		{"日本"[:4], "日"},
		{"日本", "日本"},
		{"abc", "abc"},
		{"\xff\xfe", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := trimPartialRune(tt.in)
		assert.Equal(t, tt.want, got)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestProblemFetcher(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/problems/two-sum":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"questionTitle":"Two Sum","difficulty":"Easy","topicTags":[{"name":"Array"},{"name":"Hash Table"}]}`))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f, err := NewProblemFetcher(srv.URL+"/", 8)
	require.NoError(t, err)

	p, err := f.Fetch(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", p.Title())
	assert.Equal(t, []string{"Array", "Hash Table"}, p.Topics())

	_, err = f.Fetch(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = f.Fetch(context.Background(), "missing")
	assert.ErrorContains(t, err, "status 404")

	_, err = f.Fetch(context.Background(), " ")
	assert.Error(t, err)
}

func TestInterface(t *testing.T) {
	model := &fakeModel{response: scriptJSON}
	iface := NewInterface(model, nil)
	p := Problem{"title": "Two Sum"}

	code, err := iface.GenerateCodeSnippet(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "def two_sum(): pass", code)
	assert.Equal(t, UMPIRESystem, model.system)

	model.response = `{"objectives": [], "umpireSteps": [{"phase": "Plan", "code": "x"}]}`
	code, err = iface.GenerateCodeSnippet(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, code)

	model.response = `["sorted input", "pair sum"]`
	cues, err := iface.SuggestRecognitionCues(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"sorted input", "pair sum"}, cues)
	assert.Equal(t, CuesSystem, model.system)
	assert.Contains(t, model.prompt, "Two Sum")

	model.err = errors.New("quota")
	_, err = iface.GenerateUMPIREScript(context.Background(), p)
	assert.Error(t, err)

	_, _, err = iface.SolveProblem(context.Background(), "two-sum")
	assert.Error(t, err)
}

func TestNewGeminiClientMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
