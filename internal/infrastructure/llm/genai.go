package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("genai: empty response")

// contentGenerator is the slice of the GenAI client this package calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIGenerator sends single-turn text prompts to Gemini.
type GenAIGenerator struct {
	models contentGenerator
	model  string
}

// NewGenAIGenerator creates a generator backed by the Gemini API.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGenerator(client.Models, model), nil
}

func newGenerator(models contentGenerator, model string) *GenAIGenerator {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &GenAIGenerator{models: models, model: model}
}

// GenerateText returns the model's text for prompt. The text is passed through unparsed.
func (g *GenAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
