package tts

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
)

// EspeakSynthesizer is the offline fallback built on espeak-ng
type EspeakSynthesizer struct {
	Binary string
}

func NewEspeakSynthesizer() *EspeakSynthesizer {
	return &EspeakSynthesizer{Binary: "espeak-ng"}
}

// Available reports whether the binary is on PATH
func (s *EspeakSynthesizer) Available() bool {
	_, err := exec.LookPath(s.Binary)
	return err == nil
}

func (s *EspeakSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	tmp, err := os.CreateTemp("", "leet2video_espeak_*.wav")
	if err != nil {
		return nil, err
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	cmd := exec.CommandContext(ctx, s.Binary, s.args(path, text, voice)...)
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak error: %w, output: %s", err, out.String())
	}
	return os.ReadFile(path)
}

func (s *EspeakSynthesizer) args(path, text string, voice Voice) []string {
	args := []string{"-w", path}
	if voice.LanguageCode != "" {
		args = append(args, "-v", voice.LanguageCode)
	}
	if voice.SpeakingRate > 0 {
		// espeak speaks ~175 words per minute at its default rate
		args = append(args, "-s", strconv.Itoa(int(math.Round(175*voice.SpeakingRate))))
	}
	return append(args, "--", text)
}
