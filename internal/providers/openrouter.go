package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// openRouterProvider is a request/response backend: one HTTP call with a
// chat-completions JSON body, message content out.
type openRouterProvider struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

var openRouterModels = []string{
	"mistralai/mistral-small",
	"meta-llama/llama-3-70b-instruct",
	"anthropic/claude-3.5-sonnet",
}

func newOpenRouterProvider(cfg Config) (Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL(ProviderOpenRouter)
	}

	return &openRouterProvider{
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}, nil
}

func (p *openRouterProvider) Name() string {
	return ProviderOpenRouter
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
	Stream      *bool         `json:"stream,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *openRouterProvider) SendPrompt(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Temperature: 0.0,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "http://localhost")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyTransportError(ProviderOpenRouter, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &ProviderError{
			Provider: ProviderOpenRouter,
			Kind:     ErrUpstream,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", bytes.TrimSpace(snippet)),
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{Provider: ProviderOpenRouter, Kind: ErrUpstream, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &ProviderError{Provider: ProviderOpenRouter, Kind: ErrEmptyOutput}
	}

	return parsed.Choices[0].Message.Content, nil
}

// ListModels implements ModelLister with the static catalog; OpenRouter
// exposes thousands of models and the UI only offers the supported set.
func (p *openRouterProvider) ListModels(ctx context.Context) ([]string, error) {
	models := make([]string, len(openRouterModels))
	copy(models, openRouterModels)
	return models, nil
}
