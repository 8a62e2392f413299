package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiProvider reaches the Gemini API through the official SDK. It is a
// request/response backend like OpenRouter; the SDK owns the transport.
type geminiProvider struct {
	model  string
	apiKey string
}

var geminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
}

func newGeminiProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini requires an API key")
	}

	return &geminiProvider{
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}, nil
}

func (p *geminiProvider) Name() string {
	return ProviderGemini
}

func (p *geminiProvider) SendPrompt(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &ProviderError{Provider: ProviderGemini, Kind: ErrConnection, Err: fmt.Errorf("failed to create gemini client: %w", err)}
	}

	temperature := float32(0.0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", classifyTransportError(ProviderGemini, err)
	}

	if resp == nil {
		return "", &ProviderError{Provider: ProviderGemini, Kind: ErrEmptyOutput}
	}

	text := resp.Text()
	if text == "" {
		return "", &ProviderError{Provider: ProviderGemini, Kind: ErrEmptyOutput}
	}

	return text, nil
}

// ListModels implements ModelLister with the static catalog.
func (p *geminiProvider) ListModels(ctx context.Context) ([]string, error) {
	models := make([]string, len(geminiModels))
	copy(models, geminiModels)
	return models, nil
}
