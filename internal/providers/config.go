package providers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Config selects the active backend. Exactly one is active at a time,
// read by every gateway invocation.
type Config struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
}

// DefaultBaseURL returns the well-known endpoint for a provider. Gemini
// goes through the genai SDK and has no configurable endpoint.
func DefaultBaseURL(provider string) string {
	switch provider {
	case ProviderOllama:
		return "http://127.0.0.1:11434"
	case ProviderOpenRouter:
		return "https://openrouter.ai/api/v1/chat/completions"
	default:
		return ""
	}
}

func defaultConfig() Config {
	return Config{
		Provider: ProviderOpenRouter,
		Model:    "mistralai/mistral-small",
		APIKey:   "",
		BaseURL:  DefaultBaseURL(ProviderOpenRouter),
	}
}

// ConfigStore holds the active provider configuration, backed by a single
// mutable JSON file. Updates are atomic (temp file + rename); readers get
// value copies, so an in-flight run never observes a partial write.
type ConfigStore struct {
	path string

	mu      sync.RWMutex
	current Config
}

func NewConfigStore(path string) (*ConfigStore, error) {
	s := &ConfigStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.current = defaultConfig()
		return s.persist(s.current)
	}
	if err != nil {
		return fmt.Errorf("failed to read provider config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse provider config: %w", err)
	}

	// Repair a base URL that does not match its provider. A stale URL
	// left over from a provider switch would silently send requests to
	// the wrong backend.
	if expected := DefaultBaseURL(cfg.Provider); expected != "" && cfg.BaseURL != expected {
		log.Printf("🔧 Fixing base_url for %s: %s -> %s\n", cfg.Provider, cfg.BaseURL, expected)
		cfg.BaseURL = expected
		if err := s.persist(cfg); err != nil {
			return err
		}
	}

	s.current = cfg
	return nil
}

// Current returns a copy of the active configuration.
func (s *ConfigStore) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and persists a new configuration. The base URL falls
// back to the provider default when left empty.
func (s *ConfigStore) Update(cfg Config) error {
	if !IsSupported(cfg.Provider) {
		return fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
	if cfg.Model == "" {
		return fmt.Errorf("model is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL(cfg.Provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(cfg); err != nil {
		return err
	}

	s.current = cfg
	log.Printf("✅ Provider config saved: provider=%s model=%s\n", cfg.Provider, cfg.Model)
	return nil
}

func (s *ConfigStore) persist(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal provider config: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write provider config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace provider config: %w", err)
	}

	return nil
}
