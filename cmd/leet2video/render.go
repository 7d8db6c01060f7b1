package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/leet2video/internal/engine"
	"github.com/ivlev/leet2video/internal/metrics"
	"github.com/ivlev/leet2video/internal/system"
	"github.com/ivlev/leet2video/internal/tts"
)

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [episode...]",
		Short: "Render episodes into output/<id>/",
		Long: `Render one or more episode files (.md with front matter, .json, .yaml).

Without arguments the newest episode in the configured input directory is used.

Examples:
  leet2video render episodes/two-sum.md
  leet2video render --encode --tts episodes/*.md
  leet2video render --preset 9:16 --encode --burn-captions two-sum.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), args)
		},
	}

	f := cmd.Flags()
	f.String("input", "", "episode file or directory used when no arguments are given")
	f.String("scenario-dir", "", "also keep a timestamped copy of each scenario in this directory")
	f.String("audio", "", "narration audio file or directory (newest file is used) instead of TTS")
	f.StringSlice("scenes", nil, "scene kinds, in order (default pseudo_leetcode,stack)")
	f.Bool("encode", false, "encode episode.mp4 with ffmpeg")
	f.Bool("burn-captions", false, "burn captions into the video")
	f.Bool("tts", false, "synthesize narration.wav")
	f.String("preset", "", "frame preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	f.String("video-encoder", "", "video encoder: libx264, h264_nvenc, h264_videotoolbox or auto")
	f.Int("quality", 0, "quality (0: auto; x264 CRF, VideoToolbox bitrate = Q*100 kbit/s)")
	f.Int("workers", 0, "episodes rendered in parallel")
	f.Bool("stats", false, "print a performance report")
	f.String("metrics-file", "", "write Prometheus metrics to this textfile")

	for key, flag := range map[string]string{
		"input":         "input",
		"audio":         "audio",
		"scenario_dir":  "scenario-dir",
		"scenes":        "scenes",
		"encode":        "encode",
		"burn_captions": "burn-captions",
		"tts.enabled":   "tts",
		"preset":        "preset",
		"video_encoder": "video-encoder",
		"quality":       "quality",
		"workers":       "workers",
		"show_stats":    "stats",
		"metrics_file":  "metrics-file",
	} {
		a.v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

func (a *app) render(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	paths, err := a.episodePaths(args)
	if err != nil {
		return err
	}

	cfg := a.cfg
	if cfg.Encode && cfg.VideoEncoder == "auto" {
		cfg.VideoEncoder = system.GetBestH264Encoder(ctx)
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Hardware encoder detected: %s\n", cfg.VideoEncoder)
		}
		cfg.ResolveQuality()
	}

	deps := engine.Deps{Log: a.log, Metrics: metrics.New()}
	if cfg.TTS.Enabled {
		deps.Primary, deps.Fallback = a.synthesizers(ctx)
		if closer, ok := deps.Primary.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	}

	fmt.Println("--- [LEET2VIDEO] ---")
	fmt.Printf("[*] Episodes: %d | Scenes: %s\n", len(paths), strings.Join(cfg.Scenes, ", "))
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Workers: %d\n", cfg.Width, cfg.Height, cfg.FPS, cfg.Workers)
	fmt.Println("--------------------")

	start := time.Now()
	results, err := engine.RenderBatch(ctx, cfg, paths, deps)

	failed := 0
	for i, res := range results {
		if res == nil {
			failed++
			continue
		}
		fmt.Printf("%s %s -> %s\n", green("[+]"), paths[i], res.Dir)
	}

	if cfg.ShowStats {
		fmt.Print(system.CollectStats(cfg.BuildVersion, len(paths), failed, time.Since(start)).Report())
	}
	if werr := deps.Metrics.WriteFile(cfg.MetricsFile); werr != nil {
		a.log.Warn("[!] metrics file not written", "path", cfg.MetricsFile, "error", werr)
	}
	return err
}

// episodePaths resolves the arguments, falling back to the newest episode in cfg.InputPath
func (a *app) episodePaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	input := a.cfg.InputPath
	if input == "" {
		input = "episodes"
	}
	fi, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("no episode given and %s is not readable: %w", input, err)
	}
	if !fi.IsDir() {
		return []string{input}, nil
	}
	latest, err := system.FindLatestEpisode(input)
	if err != nil {
		return nil, err
	}
	fmt.Printf("[*] Selected episode: %s\n", latest)
	return []string{latest}, nil
}

// synthesizers builds Cloud TTS when credentials exist and espeak as the fallback
func (a *app) synthesizers(ctx context.Context) (primary, fallback tts.Synthesizer) {
	cfg := a.cfg.TTS
	if g, err := tts.NewGoogleSynthesizer(ctx, cfg.CredentialsPath); err == nil {
		primary = g
	} else {
		a.log.Warn("[!] Google TTS unavailable", "error", err)
	}

	if cfg.UseFallback {
		if es := tts.NewEspeakSynthesizer(); es.Available() {
			fallback = es
		} else {
			a.log.Warn("[!] espeak-ng not found on PATH, no fallback")
		}
	}
	return primary, fallback
}
