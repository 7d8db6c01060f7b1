package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ivlev/leet2video/internal/captions"
	"github.com/ivlev/leet2video/internal/config"
	"github.com/ivlev/leet2video/internal/director"
	"github.com/ivlev/leet2video/internal/distribution"
	"github.com/ivlev/leet2video/internal/effects"
	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/logger"
	"github.com/ivlev/leet2video/internal/metrics"
	"github.com/ivlev/leet2video/internal/scene"
	"github.com/ivlev/leet2video/internal/system"
	"github.com/ivlev/leet2video/internal/thumbnail"
	"github.com/ivlev/leet2video/internal/tts"
	"github.com/ivlev/leet2video/internal/video"
)

// Output file names inside the episode directory
const (
	ScenarioFile    = "scenario.yaml"
	ThumbnailFile   = "thumbnail.png"
	DescriptionFile = "description.txt"
	ChaptersFile    = "chapters.txt"
	NarrationFile   = "narration.wav"
	VideoFile       = "episode.mp4"
)

// Deps are the collaborators shared by every episode of a batch
type Deps struct {
	Log      *logger.Logger
	Metrics  *metrics.Metrics
	Primary  tts.Synthesizer
	Fallback tts.Synthesizer
	Encoder  video.VideoEncoder
}

// Result lists what a run produced
type Result struct {
	RunID            string
	EpisodeID        string
	Dir              string
	Scenario         *director.Scenario
	ScenarioArchive  string
	Captions         captions.Files
	Thumbnail        string
	Description      string
	Chapters         string
	Audio            string
	Video            string
	NarrationSeconds float64
}

// EpisodeProject renders one episode. It owns its scenes and generators.
type EpisodeProject struct {
	Config    *config.Config
	InputPath string

	log      *logger.Logger
	metrics  *metrics.Metrics
	tts      *tts.Generator
	encoder  video.VideoEncoder
	effect   effects.Effect
	captions *captions.Generator
}

func NewEpisodeProject(cfg *config.Config, inputPath string, deps Deps) *EpisodeProject {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	var gen *tts.Generator
	if deps.Primary != nil || deps.Fallback != nil {
		gen = tts.NewGenerator(deps.Primary, deps.Fallback, cfg.TTS.UseFallback, log)
		gen.Voice = tts.Voice{
			LanguageCode: cfg.TTS.LanguageCode,
			Name:         cfg.TTS.Voice,
			SpeakingRate: cfg.TTS.SpeakingRate,
		}
	}

	var enc video.VideoEncoder
	if cfg.Encode {
		enc = deps.Encoder
		if enc == nil {
			enc = video.NewFFmpegEncoder(cfg.VideoEncoder, cfg.Quality)
		}
	}

	return &EpisodeProject{
		Config:    cfg,
		InputPath: inputPath,
		log:       log,
		metrics:   deps.Metrics,
		tts:       gen,
		encoder:   enc,
		effect:    effects.NewEffect(cfg.BurnCaptions),
		captions:  captions.NewGenerator(cfg.CaptionLanguage),
	}
}

func (p *EpisodeProject) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID, "input", p.InputPath)

	start := time.Now()
	data, err := episode.Load(p.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load episode: %w", err)
	}
	p.metrics.ObserveStage("load", start)

	id, err := episode.OutputName(p.InputPath, data)
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: runID, EpisodeID: id, Dir: filepath.Join(p.Config.OutputDir, id)}
	log = log.With("episode", id)
	log.Info("[*] rendering episode", "title", data.Title(), "scenes", p.Config.Scenes)

	if err := os.MkdirAll(res.Dir, 0755); err != nil {
		return nil, err
	}

	// Scenes -> timeline
	start = time.Now()
	scenario, err := PlanEpisode(p.Config, data)
	if err != nil {
		return nil, err
	}
	res.Scenario = scenario
	p.metrics.ObserveStage("scenes", start)

	// Captions
	start = time.Now()
	segments := NarrationSegments(data, scenario)
	res.Captions, err = p.captions.WriteFiles(res.Dir, segments)
	if err != nil {
		return nil, fmt.Errorf("write captions: %w", err)
	}
	res.NarrationSeconds = p.captions.TotalDuration(segments)
	p.metrics.AddCues(len(p.captions.Timeline(segments)))
	p.metrics.ObserveStage("captions", start)

	// Narration audio
	start = time.Now()
	res.Audio, err = p.narration(ctx, res, segments)
	if err != nil {
		return nil, err
	}
	if res.Audio != "" {
		p.metrics.ObserveStage("tts", start)
	}
	p.metrics.ObserveNarration(res.NarrationSeconds)

	director.Scale(scenario, res.NarrationSeconds, p.Config.FPS)
	if err := director.WriteScenario(scenario, filepath.Join(res.Dir, ScenarioFile)); err != nil {
		return nil, fmt.Errorf("write scenario: %w", err)
	}
	if p.Config.ScenarioDir != "" {
		res.ScenarioArchive = director.GenerateScenarioPath(p.Config.ScenarioDir, id)
		if err := director.WriteScenario(scenario, res.ScenarioArchive); err != nil {
			return nil, fmt.Errorf("archive scenario: %w", err)
		}
	}

	// Thumbnail and distribution metadata
	start = time.Now()
	thumbs, err := NewThumbnailGenerator(p.Config)
	if err != nil {
		return nil, err
	}
	frame, err := thumbs.Render(data)
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	png, err := thumbnail.Encode(frame)
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	res.Thumbnail = filepath.Join(res.Dir, ThumbnailFile)
	res.Description = filepath.Join(res.Dir, DescriptionFile)
	res.Chapters = filepath.Join(res.Dir, ChaptersFile)
	outputs := map[string][]byte{
		res.Thumbnail:   png,
		res.Description: []byte(distribution.YouTubeDescription(data) + "\n"),
		res.Chapters:    []byte(distribution.FormatChapters(distribution.Chapters(data))),
	}
	for path, content := range outputs {
		if err := os.WriteFile(path, content, 0644); err != nil {
			return nil, err
		}
	}
	p.metrics.ObserveStage("distribution", start)

	if p.encoder != nil {
		start = time.Now()
		params := config.SegmentParams{
			Width:    p.Config.Width,
			Height:   p.Config.Height,
			FPS:      p.Config.FPS,
			Duration: scenario.TotalDuration,
		}
		if p.Config.BurnCaptions {
			params.CaptionsPath = res.Captions.SRT
		}
		params.Filter = p.effect.GenerateFilter(params)

		res.Video = filepath.Join(res.Dir, VideoFile)
		if err := p.encoder.EncodeEpisode(ctx, frame, res.Audio, res.Video, params); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		p.metrics.ObserveStage("encode", start)
	}

	log.Info("[+] episode ready", "dir", res.Dir, "duration", scenario.TotalDuration)
	return res, nil
}

// NewThumbnailGenerator returns a thumbnail generator using the configured theme colors
func NewThumbnailGenerator(cfg *config.Config) (*thumbnail.Generator, error) {
	gen, err := thumbnail.NewGenerator()
	if err != nil {
		return nil, err
	}
	if cfg.Theme.Background != "" {
		gen.BgColor = cfg.Theme.Background
	}
	if cfg.Theme.Text != "" {
		gen.TextColor = cfg.Theme.Text
	}
	return gen, nil
}

// PlanEpisode builds the configured scenes for an episode and lays them on a timeline.
// The scenario is not yet scaled to the narration.
func PlanEpisode(cfg *config.Config, data episode.Data) (*director.Scenario, error) {
	theme := scene.Theme{
		"color":      cfg.Theme.Accent,
		"background": cfg.Theme.Background,
		"text":       cfg.Theme.Text,
	}
	scenes := make([]scene.Scene, 0, len(cfg.Scenes))
	for _, kind := range cfg.Scenes {
		s, err := scene.New(kind, data, theme)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}

	scenario, err := director.NewDirector().Plan(data, scenes)
	if err != nil {
		return nil, fmt.Errorf("plan scenes: %w", err)
	}
	return scenario, nil
}

// narration writes narration.wav and returns its path, or "" when there is no audio.
// An external audio file from the config takes precedence over synthesis.
func (p *EpisodeProject) narration(ctx context.Context, res *Result, segments []captions.Segment) (string, error) {
	if p.Config.AudioPath != "" {
		audio := p.Config.AudioPath
		if fi, err := os.Stat(audio); err == nil && fi.IsDir() {
			audio, err = system.FindLatestAudio(audio)
			if err != nil {
				return "", err
			}
		}
		duration, err := system.GetAudioDuration(ctx, audio)
		if err != nil {
			return "", fmt.Errorf("audio duration: %w", err)
		}
		res.NarrationSeconds = duration
		return audio, nil
	}

	if p.tts == nil {
		return "", nil
	}
	clips, err := p.tts.GenerateSegments(ctx, segments)
	if err != nil {
		return "", fmt.Errorf("tts: %w", err)
	}
	wav, err := tts.JoinWAV(clips)
	if err != nil {
		// Разные форматы у основного и резервного движка
		p.log.Warn("[!] narration audio skipped", "error", err)
		return "", nil
	}
	if d, err := tts.WAVDuration(wav); err == nil {
		res.NarrationSeconds = d.Seconds()
	}

	path := filepath.Join(res.Dir, NarrationFile)
	if err := os.WriteFile(path, wav, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// NarrationSegments collects storyboard voiceovers (or the title when there are none)
// followed by narration queued by the scenes
func NarrationSegments(data episode.Data, scenario *director.Scenario) []captions.Segment {
	lines := data.Narration()
	if len(lines) == 0 {
		lines = []string{data.Title()}
	}
	if scenario != nil {
		for _, entry := range scenario.Scenes {
			lines = append(lines, entry.Narration...)
		}
	}
	return captions.SegmentsFromText(lines)
}
