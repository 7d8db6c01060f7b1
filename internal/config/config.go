package config

type Config struct {
	InputPath       string   `mapstructure:"input"`
	AudioPath       string   `mapstructure:"audio"`
	OutputDir       string   `mapstructure:"output"`
	ScenarioDir     string   `mapstructure:"scenario_dir"`
	Scenes          []string `mapstructure:"scenes"`
	Width           int      `mapstructure:"width"`
	Height          int      `mapstructure:"height"`
	FPS             int      `mapstructure:"fps"`
	Workers         int      `mapstructure:"workers"`
	Encode          bool     `mapstructure:"encode"`
	BurnCaptions    bool     `mapstructure:"burn_captions"`
	VideoEncoder    string   `mapstructure:"video_encoder"`
	Quality         int      `mapstructure:"quality"`
	Preset          string   `mapstructure:"preset"`
	CaptionLanguage string   `mapstructure:"caption_language"`
	ShowStats       bool     `mapstructure:"show_stats"`
	MetricsFile     string   `mapstructure:"metrics_file"`
	LogMode         string   `mapstructure:"log_mode"`

	TTS    TTSConfig    `mapstructure:"tts"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Theme  ThemeConfig  `mapstructure:"theme"`

	BuildVersion string `mapstructure:"-"`
}

type TTSConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	CredentialsPath string  `mapstructure:"credentials"`
	Voice           string  `mapstructure:"voice"`
	LanguageCode    string  `mapstructure:"language_code"`
	SpeakingRate    float64 `mapstructure:"speaking_rate"`
	UseFallback     bool    `mapstructure:"use_fallback"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	ProblemAPI   string `mapstructure:"problem_api"`
	PromptTokens int    `mapstructure:"prompt_tokens"`
}

type ThemeConfig struct {
	Background string `mapstructure:"background"`
	Text       string `mapstructure:"text"`
	Accent     string `mapstructure:"accent"`
}

// ResolveQuality fills a zero quality from the encoder. "auto" is left for the caller to detect.
func (c *Config) ResolveQuality() {
	if c.Quality == 0 && c.VideoEncoder != "auto" {
		c.Quality = DefaultQuality(c.VideoEncoder)
	}
}

// SegmentParams describes one encoded clip
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	CaptionsPath  string
	Filter        string
}
