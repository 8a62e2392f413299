package providers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ollamaProvider is a streaming-chunk backend: the response body is a
// sequence of newline-delimited partial-message objects that must be
// concatenated in arrival order before any parsing.
type ollamaProvider struct {
	model   string
	baseURL string
	client  *http.Client
}

func newOllamaProvider(cfg Config) (Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL(ProviderOllama)
	}

	return &ollamaProvider{
		model:   cfg.Model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}, nil
}

func (p *ollamaProvider) Name() string {
	return ProviderOllama
}

type ollamaChunk struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

func (p *ollamaProvider) SendPrompt(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  p.model,
		"stream": true,
		"messages": []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyTransportError(ProviderOllama, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &ProviderError{
			Provider: ProviderOllama,
			Kind:     ErrUpstream,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", bytes.TrimSpace(snippet)),
		}
	}

	// Consume the chunk stream eagerly to a single string. The stream is
	// bounded by the model's reply; losing chunk order corrupts the
	// payload, so chunks are appended as they arrive.
	var output strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk ollamaChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", &ProviderError{Provider: ProviderOllama, Kind: ErrUpstream, Err: fmt.Errorf("failed to decode chunk: %w", err)}
		}
		if chunk.Error != "" {
			return "", &ProviderError{Provider: ProviderOllama, Kind: ErrUpstream, Err: fmt.Errorf("%s", chunk.Error)}
		}

		output.WriteString(chunk.Message.Content)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", classifyTransportError(ProviderOllama, err)
	}

	if output.Len() == 0 {
		return "", &ProviderError{Provider: ProviderOllama, Kind: ErrEmptyOutput}
	}

	return output.String(), nil
}

// ListModels queries the local Ollama instance for installed models.
func (p *ollamaProvider) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ProviderOllama, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: ProviderOllama, Kind: ErrUpstream, Status: resp.StatusCode}
	}

	var parsed struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	names := make([]string, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
