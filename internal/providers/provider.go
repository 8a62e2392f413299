// Package providers implements the uniform gateway over the supported LLM
// backends. Every backend satisfies the same one-method contract: given a
// prompt, perform a single synchronous call and return the model's raw
// text output. Failures are reported through ProviderError so the
// orchestrator can route them to the fallback synthesizer.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
)

// Provider is a single LLM backend reachable through the gateway.
type Provider interface {
	Name() string
	// SendPrompt performs one request-response call. The returned text is
	// raw model output, not yet assumed to be valid JSON. No retries.
	SendPrompt(ctx context.Context, prompt string) (string, error)
}

// ModelLister is implemented by providers that can enumerate their
// available models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Factory builds a provider from a resolved configuration.
type Factory func(cfg Config) (Provider, error)

// registry is the closed set of supported backends.
var registry = map[string]Factory{
	ProviderOpenRouter: newOpenRouterProvider,
	ProviderOllama:     newOllamaProvider,
	ProviderGemini:     newGeminiProvider,
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderGemini     = "gemini"
)

// New resolves a provider by name from the registry.
func New(cfg Config) (Provider, error) {
	factory, ok := registry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// Names returns the registered provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name is in the registry.
func IsSupported(name string) bool {
	_, ok := registry[name]
	return ok
}

// ErrorKind classifies a provider failure. All kinds are recoverable at
// the orchestrator level.
type ErrorKind string

const (
	ErrTimeout     ErrorKind = "timeout"
	ErrConnection  ErrorKind = "connection"
	ErrUpstream    ErrorKind = "upstream"
	ErrEmptyOutput ErrorKind = "empty output"
)

// ProviderError is a typed failure from a backend call.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// classifyTransportError maps a failed HTTP round trip onto the taxonomy:
// deadline and net timeouts become ErrTimeout, everything else is a
// connection failure.
func classifyTransportError(provider string, err error) *ProviderError {
	kind := ErrConnection

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrTimeout
	} else if errors.As(err, &netErr) && netErr.Timeout() {
		kind = ErrTimeout
	}

	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}
