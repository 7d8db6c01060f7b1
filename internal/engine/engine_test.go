package engine

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/leet2video/internal/captions"
	"github.com/ivlev/leet2video/internal/config"
	"github.com/ivlev/leet2video/internal/director"
	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/metrics"
	"github.com/ivlev/leet2video/internal/scene"
	"github.com/ivlev/leet2video/internal/tts"
)

const episodeMarkdown = `---
id: two-sum
title: Two Sum
leetcodeSlug: two-sum
difficulty: Easy
pattern: [Hash Map]
objectives: [Use a hash map]
storyboard:
  - time: "00:00"
    visual: Intro
    voiceover: Today we solve Two Sum.
  - time: "00:30"
    visual: Walkthrough
    voiceover: Store each number.
---
Body
`

func writeEpisode(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		OutputDir:       t.TempDir(),
		Scenes:          []string{"stack", "narrated_stack"},
		Width:           1280,
		Height:          720,
		FPS:             24,
		Workers:         2,
		CaptionLanguage: "en",
		VideoEncoder:    "libx264",
		Quality:         23,
	}
}

// silentSynth returns a tenth of a second of silence per character
type silentSynth struct{}

func (silentSynth) Synthesize(_ context.Context, text string, _ tts.Voice) ([]byte, error) {
	return tts.Silence(captions.EstimateDuration(text), 16000), nil
}

type recordingEncoder struct {
	mu     sync.Mutex
	frames []image.Image
	audio  string
	out    string
	params config.SegmentParams
}

func (r *recordingEncoder) EncodeEpisode(_ context.Context, frame image.Image, audioPath, videoPath string, params config.SegmentParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	r.audio, r.out, r.params = audioPath, videoPath, params
	return nil
}

func TestRunWritesEpisodeOutputs(t *testing.T) {
	cfg := testConfig(t)
	path := writeEpisode(t, t.TempDir(), "two-sum.md", episodeMarkdown)

	res, err := NewEpisodeProject(cfg, path, Deps{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "two-sum", res.EpisodeID)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "two-sum"), res.Dir)
	for _, f := range []string{ScenarioFile, "captions.srt", "captions.vtt", "transcript.txt", ThumbnailFile, DescriptionFile, ChaptersFile} {
		assert.FileExists(t, filepath.Join(res.Dir, f))
	}
	assert.NoFileExists(t, filepath.Join(res.Dir, NarrationFile))
	assert.Empty(t, res.Video)

	transcript, err := os.ReadFile(res.Captions.Transcript)
	require.NoError(t, err)
	assert.Equal(t, "Today we solve Two Sum.\nStore each number.\n"+scene.NarrationLine, string(transcript))

	chapters, err := os.ReadFile(res.Chapters)
	require.NoError(t, err)
	assert.Equal(t, "0:00 Intro\n0:30 Walkthrough", string(chapters))

	// 85 characters of narration at 0.1s each
	assert.InDelta(t, 8.5, res.NarrationSeconds, 1e-9)

	scenario, err := director.ReadScenario(filepath.Join(res.Dir, ScenarioFile))
	require.NoError(t, err)
	assert.InDelta(t, res.NarrationSeconds, scenario.TotalDuration, 2.0/24)
	require.Len(t, scenario.Scenes, 2)
	assert.Equal(t, []string{scene.NarrationLine}, scenario.Scenes[1].Narration)
}

func TestRunWithTTSAndEncoder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Encode = true
	cfg.BurnCaptions = true
	cfg.TTS.UseFallback = true
	path := writeEpisode(t, t.TempDir(), "two-sum.md", episodeMarkdown)

	enc := &recordingEncoder{}
	m := metrics.New()
	res, err := NewEpisodeProject(cfg, path, Deps{Fallback: silentSynth{}, Encoder: enc, Metrics: m}).Run(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, res.Audio)
	assert.Equal(t, filepath.Join(res.Dir, NarrationFile), res.Audio)

	require.Len(t, enc.frames, 1)
	assert.Equal(t, 1280, enc.frames[0].Bounds().Dx())
	assert.Equal(t, res.Audio, enc.audio)
	assert.Equal(t, filepath.Join(res.Dir, VideoFile), enc.out)
	assert.Equal(t, res.Captions.SRT, enc.params.CaptionsPath)
	assert.Contains(t, enc.params.Filter, "subtitles=")
	assert.InDelta(t, res.NarrationSeconds, enc.params.Duration, 2.0/24)

	promFile := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteFile(promFile))
	raw, err := os.ReadFile(promFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "leet2video_caption_cues_total 3")
	assert.Contains(t, string(raw), `leet2video_stage_duration_seconds_count{stage="encode"} 1`)
}

func TestRunArchivesScenario(t *testing.T) {
	cfg := testConfig(t)
	cfg.ScenarioDir = filepath.Join(t.TempDir(), "scenarios")
	path := writeEpisode(t, t.TempDir(), "two-sum.md", episodeMarkdown)

	res, err := NewEpisodeProject(cfg, path, Deps{}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(res.ScenarioArchive), "scenario_two-sum_"))

	latest, err := director.FindLatestScenario(cfg.ScenarioDir)
	require.NoError(t, err)
	assert.Equal(t, res.ScenarioArchive, latest)

	archived, err := director.ReadScenario(latest)
	require.NoError(t, err)
	assert.Equal(t, res.Scenario.TotalDuration, archived.TotalDuration)
	assert.Len(t, archived.Scenes, 2)
}

func TestRunRejectsUnsafeEpisodeID(t *testing.T) {
	cfg := testConfig(t)
	content := strings.Replace(episodeMarkdown, "id: two-sum", "id: ../../escaped", 1)
	path := writeEpisode(t, t.TempDir(), "two-sum.md", content)

	_, err := NewEpisodeProject(cfg, path, Deps{}).Run(context.Background())
	assert.ErrorIs(t, err, episode.ErrUnsafeID)
	assert.NoDirExists(t, filepath.Join(cfg.OutputDir, "..", "..", "escaped"))
}

func TestPlanEpisodeMatchesRunNarration(t *testing.T) {
	cfg := testConfig(t)
	path := writeEpisode(t, t.TempDir(), "two-sum.md", episodeMarkdown)
	data, err := episode.Load(path)
	require.NoError(t, err)

	scenario, err := PlanEpisode(cfg, data)
	require.NoError(t, err)
	segments := NarrationSegments(data, scenario)
	require.Len(t, segments, 3)
	assert.Equal(t, scene.NarrationLine, segments[2].Text)
}

func TestNarrationSegmentsFallsBackToTitle(t *testing.T) {
	segments := NarrationSegments(episode.Data{"title": "Valid Parentheses"}, nil)
	assert.Equal(t, []captions.Segment{{Text: "Valid Parentheses"}}, segments)
}

func TestRunErrors(t *testing.T) {
	cfg := testConfig(t)

	_, err := NewEpisodeProject(cfg, filepath.Join(t.TempDir(), "missing.md"), Deps{}).Run(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg.Scenes = []string{"heap"}
	path := writeEpisode(t, t.TempDir(), "two-sum.md", episodeMarkdown)
	_, err = NewEpisodeProject(cfg, path, Deps{}).Run(context.Background())
	assert.ErrorIs(t, err, scene.ErrUnknownScene)

	cfg.Scenes = nil
	_, err = NewEpisodeProject(cfg, path, Deps{}).Run(context.Background())
	assert.ErrorIs(t, err, director.ErrNoScenes)
}

func TestRenderBatch(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	paths := []string{
		writeEpisode(t, dir, "a.md", episodeMarkdown),
		writeEpisode(t, dir, "b.json", `{"id":"valid-parentheses","title":"Valid Parentheses","leetcodeSlug":"valid-parentheses","difficulty":"Easy","pattern":["Stack"],"objectives":["Match brackets"]}`),
	}
	m := metrics.New()

	results, err := RenderBatch(context.Background(), cfg, paths, Deps{Metrics: m})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "two-sum", results[0].EpisodeID)
	assert.Equal(t, "valid-parentheses", results[1].EpisodeID)

	_, err = RenderBatch(context.Background(), cfg, append(paths, filepath.Join(dir, "missing.md")), Deps{Metrics: m})
	assert.ErrorContains(t, err, "missing.md")
}

func TestRenderBatchCancelled(t *testing.T) {
	cfg := testConfig(t)
	path := writeEpisode(t, t.TempDir(), "a.md", episodeMarkdown)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := RenderBatch(ctx, cfg, []string{path}, Deps{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
