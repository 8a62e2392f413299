package providers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigStoreCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "llm_config.json")

	store, err := NewConfigStore(path)
	if err != nil {
		t.Fatalf("NewConfigStore: %v", err)
	}

	cfg := store.Current()
	if cfg.Provider != ProviderOpenRouter {
		t.Errorf("provider = %q, want openrouter default", cfg.Provider)
	}
	if cfg.Model != "mistralai/mistral-small" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.BaseURL != DefaultBaseURL(ProviderOpenRouter) {
		t.Errorf("base URL = %q", cfg.BaseURL)
	}

	// The default must be persisted so a restart sees the same config.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestConfigStoreRepairsStaleBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm_config.json")

	stale := Config{
		Provider: ProviderOllama,
		Model:    "llama3",
		BaseURL:  "https://openrouter.ai/api/v1/chat/completions",
	}
	data, _ := json.Marshal(stale)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	store, err := NewConfigStore(path)
	if err != nil {
		t.Fatalf("NewConfigStore: %v", err)
	}

	cfg := store.Current()
	if cfg.BaseURL != DefaultBaseURL(ProviderOllama) {
		t.Errorf("base URL = %q, want repaired to ollama default", cfg.BaseURL)
	}

	// Repair is written back to disk.
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var parsed Config
	if err := json.Unmarshal(onDisk, &parsed); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if parsed.BaseURL != DefaultBaseURL(ProviderOllama) {
		t.Errorf("persisted base URL = %q", parsed.BaseURL)
	}
}

func TestConfigStoreUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm_config.json")
	store, err := NewConfigStore(path)
	if err != nil {
		t.Fatalf("NewConfigStore: %v", err)
	}

	err = store.Update(Config{Provider: ProviderGemini, Model: "gemini-2.5-flash", APIKey: "secret"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	cfg := store.Current()
	if cfg.Provider != ProviderGemini || cfg.Model != "gemini-2.5-flash" {
		t.Errorf("current = %+v", cfg)
	}

	// No temp file left behind after the atomic replace.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestConfigStoreUpdateValidation(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "llm_config.json"))
	if err != nil {
		t.Fatalf("NewConfigStore: %v", err)
	}

	if err := store.Update(Config{Provider: "huggingface", Model: "x"}); err == nil {
		t.Error("expected error for unsupported provider")
	}
	if err := store.Update(Config{Provider: ProviderOllama}); err == nil {
		t.Error("expected error for missing model")
	}

	// A rejected update leaves the active config untouched.
	if got := store.Current().Provider; got != ProviderOpenRouter {
		t.Errorf("provider = %q, want unchanged default", got)
	}
}

func TestConfigStoreUpdateFillsDefaultBaseURL(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "llm_config.json"))
	if err != nil {
		t.Fatalf("NewConfigStore: %v", err)
	}

	if err := store.Update(Config{Provider: ProviderOllama, Model: "llama3"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := store.Current().BaseURL; got != DefaultBaseURL(ProviderOllama) {
		t.Errorf("base URL = %q, want ollama default", got)
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	expected := []string{ProviderGemini, ProviderOllama, ProviderOpenRouter}
	if len(names) != len(expected) {
		t.Fatalf("names = %v", names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}

	if !IsSupported(ProviderOllama) || IsSupported("huggingface") {
		t.Error("IsSupported misclassifies providers")
	}

	if _, err := New(Config{Provider: "huggingface"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
