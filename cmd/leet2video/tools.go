package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/leet2video/internal/captions"
	"github.com/ivlev/leet2video/internal/director"
	"github.com/ivlev/leet2video/internal/distribution"
	"github.com/ivlev/leet2video/internal/engine"
	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/scene"
)

// episodeDir is output/<id> for an episode, falling back to the file name
func (a *app) episodeDir(path string, data episode.Data) (string, error) {
	id, err := episode.OutputName(path, data)
	if err != nil {
		return "", err
	}
	return filepath.Join(a.cfg.OutputDir, id), nil
}

func newCaptionsCommand(a *app) *cobra.Command {
	var stdout string
	cmd := &cobra.Command{
		Use:   "captions <episode>",
		Short: "Write captions.srt, captions.vtt and transcript.txt for an episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := episode.Load(args[0])
			if err != nil {
				return err
			}
			scenario, err := engine.PlanEpisode(a.cfg, data)
			if err != nil {
				return err
			}
			gen := captions.NewGenerator(a.cfg.CaptionLanguage)
			segments := engine.NarrationSegments(data, scenario)

			switch stdout {
			case "":
			case "srt":
				fmt.Print(gen.GenerateSRT(segments))
				return nil
			case "vtt":
				fmt.Print(gen.GenerateWebVTT(segments))
				return nil
			case "txt":
				fmt.Println(gen.GenerateTranscript(segments))
				return nil
			default:
				return fmt.Errorf("unknown format %q (want srt, vtt or txt)", stdout)
			}

			dir, err := a.episodeDir(args[0], data)
			if err != nil {
				return err
			}
			files, err := gen.WriteFiles(dir, segments)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n%s %s\n%s %s\n", green("[+]"), files.SRT, green("[+]"), files.VTT, green("[+]"), files.Transcript)
			fmt.Printf("[*] Narration: %s\n", captions.FormatTime(gen.TotalDuration(segments)))
			return nil
		},
	}
	cmd.Flags().StringVar(&stdout, "print", "", "print one format to stdout instead of writing files: srt, vtt or txt")
	return cmd
}

func newSceneCommand(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "scene <kind> [episode]",
		Short: "Render a single scene and print its metadata as JSON",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				for _, k := range scene.Kinds() {
					fmt.Println(k)
				}
				return nil
			}

			data := episode.Data{}
			if len(args) == 2 {
				var err error
				if data, err = episode.Load(args[1]); err != nil {
					return err
				}
			}

			s, err := scene.New(args[0], data, scene.Theme{"color": a.cfg.Theme.Accent})
			if err != nil {
				return err
			}
			meta, err := scene.Render(s)
			if err != nil {
				return err
			}

			objects := make([]map[string]any, 0, meta.Mobjects)
			for _, m := range scene.BaseOf(s).Mobjects() {
				obj := m.Serialize()
				obj["kind"] = m.Kind()
				objects = append(objects, obj)
			}
			out := map[string]any{
				"metadata":   meta,
				"objects":    objects,
				"animations": scene.BaseOf(s).Animations(),
				"narration":  scene.BaseOf(s).Narration(),
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list scene kinds")
	return cmd
}

func newThumbnailCommand(a *app) *cobra.Command {
	var out string
	var noQR bool
	cmd := &cobra.Command{
		Use:   "thumbnail <episode>",
		Short: "Generate the 1280x720 PNG thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := episode.Load(args[0])
			if err != nil {
				return err
			}
			gen, err := engine.NewThumbnailGenerator(a.cfg)
			if err != nil {
				return err
			}
			gen.QRCode = !noQR
			png, err := gen.Generate(data)
			if err != nil {
				return err
			}

			if out == "" {
				dir, err := a.episodeDir(args[0], data)
				if err != nil {
					return err
				}
				out = filepath.Join(dir, engine.ThumbnailFile)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0644); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", green("[+]"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "f", "", "output file (default <output>/<id>/thumbnail.png)")
	cmd.Flags().BoolVar(&noQR, "no-qr", false, "omit the QR code")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <episode...>",
		Short: "Check episode files against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := episode.Load(path); err != nil {
					failed++
					fmt.Printf("%s %s: %v\n", red("✗"), path, err)
					continue
				}
				fmt.Printf("%s %s\n", green("✓"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d episodes invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newDescribeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <episode>",
		Short: "Print the YouTube description, chapters and deep links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := episode.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Println(distribution.YouTubeDescription(data))

			if chapters := distribution.Chapters(data); len(chapters) > 0 {
				fmt.Printf("\n%s\n%s\n", cyan("Chapters:"), distribution.FormatChapters(chapters))
			}
			links := distribution.DeepLinks(data)
			fmt.Printf("\n%s %s\n%s %s\n", yellow("leetcode:"), links["leetcode"], yellow("leetcode.cn:"), links["leetcode_cn"])
			return nil
		},
	}
}

func newTimelineCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline [scenario.yaml|dir]",
		Short: "Print a scenario timeline (the newest one when given a directory)",
		Long: `Print the scene timeline of a scenario file.

Without arguments the newest scenario in the configured scenario_dir is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.ScenarioDir
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no scenario given and scenario_dir is not set")
			}

			fi, err := os.Stat(path)
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if path, err = director.FindLatestScenario(path); err != nil {
					return err
				}
				fmt.Printf("[*] Selected scenario: %s\n", path)
			}

			scenario, err := director.ReadScenario(path)
			if err != nil {
				return fmt.Errorf("read scenario %s: %w", path, err)
			}

			fmt.Printf("%s %s (%.2fs, %d scenes)\n", cyan("Episode:"), scenario.EpisodeID, scenario.TotalDuration, len(scenario.Scenes))
			for _, entry := range scenario.Scenes {
				fmt.Printf("  [%d] %-16s %7.2fs -> %7.2fs  mobjects=%d animations=%d\n",
					entry.ID, entry.Kind, entry.Start, entry.End(), entry.Mobjects, len(entry.Animations))
			}
			return nil
		},
	}
}
