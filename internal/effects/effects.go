package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/leet2video/internal/config"
)

type Effect interface {
	GenerateFilter(params config.SegmentParams) string
}

// FitEffect scales the frame into WxH keeping aspect ratio and pads the rest
type FitEffect struct{}

func (e *FitEffect) GenerateFilter(p config.SegmentParams) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1",
		p.Width, p.Height, p.Width, p.Height,
	)
}

// CaptionEffect burns the subtitle file into the fitted frame
type CaptionEffect struct {
	FontSize     int
	PrimaryColor string // ASS &HBBGGRR& form
}

func NewCaptionEffect() *CaptionEffect {
	return &CaptionEffect{FontSize: 24, PrimaryColor: "&H00FFFFFF&"}
}

func (e *CaptionEffect) GenerateFilter(p config.SegmentParams) string {
	fit := (&FitEffect{}).GenerateFilter(p)
	if p.CaptionsPath == "" {
		return fit
	}
	style := fmt.Sprintf("FontSize=%d,PrimaryColour=%s,Outline=1,MarginV=40", e.FontSize, e.PrimaryColor)
	return fmt.Sprintf("%s,subtitles='%s':force_style='%s'", fit, escapeFilterPath(p.CaptionsPath), style)
}

// escapeFilterPath quotes a path for use inside a single-quoted filter argument
func escapeFilterPath(path string) string {
	r := strings.NewReplacer(`\`, `/`, `'`, `'\''`, `:`, `\:`)
	return r.Replace(path)
}

// NewEffect picks the caption burn-in or the plain fit
func NewEffect(burnCaptions bool) Effect {
	if burnCaptions {
		return NewCaptionEffect()
	}
	return &FitEffect{}
}
