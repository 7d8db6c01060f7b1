package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivlev/leet2video/internal/captions"
	"github.com/ivlev/leet2video/internal/logger"
)

// ErrNoSynthesizer is returned when neither a primary nor a fallback engine is configured
var ErrNoSynthesizer = errors.New("tts: no synthesizer configured")

// Voice selects language, voice name and speaking rate
type Voice struct {
	LanguageCode string
	Name         string
	SpeakingRate float64
}

// DefaultVoice matches the Wavenet voice used for episodes
var DefaultVoice = Voice{LanguageCode: "en-US", Name: "en-US-Wavenet-D", SpeakingRate: 1.0}

// Synthesizer turns text into WAV audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
}

// Generator synthesizes narration with the primary engine and optionally
// switches to the fallback when the primary fails.
type Generator struct {
	Primary     Synthesizer
	Fallback    Synthesizer
	UseFallback bool
	Voice       Voice

	log *logger.Logger
}

func NewGenerator(primary, fallback Synthesizer, useFallback bool, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		Primary:     primary,
		Fallback:    fallback,
		UseFallback: useFallback,
		Voice:       DefaultVoice,
		log:         log,
	}
}

// Generate synthesizes a single text
func (g *Generator) Generate(ctx context.Context, text string) ([]byte, error) {
	if g.Primary == nil {
		if g.Fallback == nil {
			return nil, ErrNoSynthesizer
		}
		return g.Fallback.Synthesize(ctx, text, g.Voice)
	}

	audio, err := g.Primary.Synthesize(ctx, text, g.Voice)
	if err == nil {
		return audio, nil
	}
	if !g.UseFallback || g.Fallback == nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	g.log.Warn("[!] primary tts failed, using fallback", "error", err)
	audio, fbErr := g.Fallback.Synthesize(ctx, text, g.Voice)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback synthesize: %w", errors.Join(err, fbErr))
	}
	return audio, nil
}

// GenerateSegments returns audio for every segment, in order.
// Blank segments get a short silence so indices stay aligned.
func (g *Generator) GenerateSegments(ctx context.Context, segments []captions.Segment) ([][]byte, error) {
	out := make([][]byte, len(segments))
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(seg.Text) == "" {
			out[i] = Silence(captions.EstimateDuration(seg.Text), DefaultSampleRate)
			continue
		}
		audio, err := g.Generate(ctx, seg.Text)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i+1, err)
		}
		out[i] = audio
	}
	return out, nil
}
