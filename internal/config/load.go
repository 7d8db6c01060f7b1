package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "LEET2VIDEO"
	ConfigName = "leet2video"
)

// Defaults applies the built-in configuration to v
func Defaults(v *viper.Viper) {
	v.SetDefault("output", "output")
	v.SetDefault("scenario_dir", "") // пусто: без архива сценариев
	v.SetDefault("scenes", []string{"pseudo_leetcode", "stack"})
	v.SetDefault("width", 1280)
	v.SetDefault("height", 720)
	v.SetDefault("fps", 24)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("encode", false)
	v.SetDefault("burn_captions", false)
	v.SetDefault("video_encoder", "libx264")
	v.SetDefault("quality", 0) // 0: по энкодеру
	v.SetDefault("preset", "")
	v.SetDefault("caption_language", "en")
	v.SetDefault("log_mode", "dev")

	v.SetDefault("tts.enabled", false)
	v.SetDefault("tts.voice", "en-US-Wavenet-D")
	v.SetDefault("tts.language_code", "en-US")
	v.SetDefault("tts.speaking_rate", 1.0)
	v.SetDefault("tts.use_fallback", true)

	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.problem_api", "https://alfa-leetcode-api.onrender.com")
	v.SetDefault("gemini.prompt_tokens", 3000)

	v.SetDefault("theme.background", "#1a1a1a")
	v.SetDefault("theme.text", "#ffffff")
	v.SetDefault("theme.accent", "#ffc400")
}

// Load reads .env, then the config file (explicit path or leet2video.yaml in
// the working directory), then LEET2VIDEO_* environment variables.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	Defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.TTS.CredentialsPath == "" {
		cfg.TTS.CredentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if err := ApplyPreset(&cfg, cfg.Preset); err != nil {
		return nil, err
	}
	cfg.ResolveQuality()
	return &cfg, nil
}
