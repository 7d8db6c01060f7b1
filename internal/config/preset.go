package config

import "fmt"

// ApplyPreset sets the frame size for a named aspect preset. An empty preset is a no-op.
func ApplyPreset(cfg *Config, preset string) error {
	switch preset {
	case "":
		return nil
	case "16:9":
		cfg.Width, cfg.Height = 1280, 720
	case "9:16": // Shorts/TikTok
		cfg.Width, cfg.Height = 720, 1280
	case "4:5": // Instagram
		cfg.Width, cfg.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q (want 16:9, 9:16 or 4:5)", preset)
	}
	return nil
}

// DefaultQuality returns the quality used when none is configured
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // битрейт = Q*100 кбит/с
	case "h264_nvenc":
		return 28 // эквивалент CRF для NVENC
	default:
		return 23 // стандартный CRF для x264
	}
}
