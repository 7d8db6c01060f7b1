package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when no Gemini key is configured
var ErrMissingAPIKey = errors.New("llm: GEMINI_API_KEY environment variable or api key required")

const DefaultModel = "gemini-1.5-flash"

// Model generates JSON text from a system instruction and a prompt
type Model interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

// GeminiClient talks to the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string

	// filePoll is the interval between upload state checks
	filePoll time.Duration
}

// NewGeminiClient uses apiKey, or GEMINI_API_KEY when apiKey is empty
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model, filePoll: 2 * time.Second}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// AnalyzeVideo uploads a rendered episode and asks the model about it
func (c *GeminiClient) AnalyzeVideo(ctx context.Context, videoPath, prompt string) (string, error) {
	file, err := c.client.Files.UploadFromPath(ctx, videoPath, &genai.UploadFileConfig{MIMEType: "video/mp4"})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", videoPath, err)
	}

	// Видео обрабатывается асинхронно, ждем готовности файла
	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.filePoll):
		}
		file, err = c.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return "", fmt.Errorf("file status: %w", err)
		}
	}
	if file.State == genai.FileStateFailed {
		return "", fmt.Errorf("file %s failed processing", file.Name)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
