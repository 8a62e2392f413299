package providers

import (
	"context"
	"log"
	"time"
)

// Gateway resolves the active configuration on every call and dispatches
// the prompt to the selected backend. Each call is a single attempt with
// an explicit timeout; retries, if desired, are a caller-level concern of
// re-submitting the whole document.
type Gateway struct {
	store   *ConfigStore
	timeout time.Duration
}

func NewGateway(store *ConfigStore, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Gateway{
		store:   store,
		timeout: timeout,
	}
}

// Send performs one LLM call with the currently active provider. The
// config is snapshotted up front: a concurrent config update does not
// affect a call already in flight.
func (g *Gateway) Send(ctx context.Context, prompt string) (string, error) {
	cfg := g.store.Current()

	provider, err := New(cfg)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Printf("🤖 Sending prompt to %s (model=%s, %d characters)\n", cfg.Provider, cfg.Model, len(prompt))

	return provider.SendPrompt(ctx, prompt)
}

// ActiveConfig returns a copy of the configuration the next call will use.
func (g *Gateway) ActiveConfig() Config {
	return g.store.Current()
}
