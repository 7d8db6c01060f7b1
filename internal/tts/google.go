package tts

import (
	"context"
	"errors"
	"fmt"
	"os"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// GoogleSynthesizer uses Cloud Text-to-Speech with LINEAR16 output
type GoogleSynthesizer struct {
	client *texttospeech.Client
}

// NewGoogleSynthesizer creates a client from a service account file.
// A missing credentials file is reported as os.ErrNotExist.
func NewGoogleSynthesizer(ctx context.Context, credentialsPath string) (*GoogleSynthesizer, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("google tts credentials: %w", os.ErrNotExist)
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("google tts credentials: %w", err)
	}

	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("texttospeech client: %w", err)
	}
	return &GoogleSynthesizer{client: client}, nil
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("google tts: client not initialized")
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			Name:         voice.Name,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_LINEAR16,
			SpeakingRate:  voice.SpeakingRate,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.GetAudioContent(), nil
}

func (s *GoogleSynthesizer) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
