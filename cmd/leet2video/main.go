package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/leet2video/internal/config"
	"github.com/ivlev/leet2video/internal/logger"
)

// BuildVersion is set with -ldflags "-X main.BuildVersion=..."
var BuildVersion = "dev"

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// app carries state shared by the subcommands
type app struct {
	v          *viper.Viper
	configPath string

	cfg *config.Config
	log *logger.Logger
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	cfg.BuildVersion = BuildVersion

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) close(cmd *cobra.Command, args []string) {
	if a.log != nil {
		a.log.Sync()
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:               "leet2video",
		Short:             "Generate LeetCode explainer episodes: scenes, captions, thumbnails and video",
		Version:           BuildVersion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
		PersistentPostRun: a.close,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./leet2video.yaml)")
	root.PersistentFlags().String("log-mode", "dev", "log mode: dev or prod")
	root.PersistentFlags().StringP("output", "o", "output", "output directory")
	a.v.BindPFlag("log_mode", root.PersistentFlags().Lookup("log-mode"))
	a.v.BindPFlag("output", root.PersistentFlags().Lookup("output"))

	root.AddCommand(
		newRenderCommand(a),
		newCaptionsCommand(a),
		newSceneCommand(a),
		newThumbnailCommand(a),
		newValidateCommand(a),
		newDescribeCommand(a),
		newScriptCommand(a),
		newAnalyzeCommand(a),
		newTimelineCommand(a),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("[-]"), err)
		os.Exit(1)
	}
}
