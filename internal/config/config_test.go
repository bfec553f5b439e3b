package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				Backend: BackendConfig{Provider: "anthropic"},
			},
			wantErr: true,
		},
		{
			name: "gemini without keys",
			config: Config{
				Backend: BackendConfig{Provider: "gemini"},
			},
			wantErr: true,
		},
		{
			name: "gemini with keys",
			config: Config{
				Backend: BackendConfig{Provider: "gemini"},
				Gemini:  GeminiConfig{APIKeys: []string{"key-1"}},
			},
			wantErr: false,
		},
		{
			name: "openai without key",
			config: Config{
				Backend: BackendConfig{Provider: "openai"},
			},
			wantErr: true,
		},
		{
			name: "negative wpm",
			config: Config{
				Reading: ReadingConfig{Wpm: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Backend.Provider != "ollama" {
		t.Errorf("Provider = %v, want ollama", cfg.Backend.Provider)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %v", cfg.Ollama.BaseURL)
	}
	if cfg.Reading.Wpm != 250 {
		t.Errorf("Wpm = %v, want 250", cfg.Reading.Wpm)
	}
	if cfg.Reading.Rate != 1.0 {
		t.Errorf("Rate = %v, want 1.0", cfg.Reading.Rate)
	}
	if cfg.Chunking.ChunkWords != 3500 {
		t.Errorf("ChunkWords = %v, want 3500", cfg.Chunking.ChunkWords)
	}
	if cfg.Store.DBPath != "data/reader.db" {
		t.Errorf("DBPath = %v", cfg.Store.DBPath)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
backend:
  provider: "ollama"
  model: "qwen2.5:7b"

ollama:
  base_url: "http://127.0.0.1:11434"
  context_window: 16384

reading:
  wpm: 300

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.Model != "qwen2.5:7b" {
		t.Errorf("Model = %v, want %v", cfg.Backend.Model, "qwen2.5:7b")
	}
	if cfg.Ollama.BaseURL != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %v", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.ContextWindow != 16384 {
		t.Errorf("ContextWindow = %v, want 16384", cfg.Ollama.ContextWindow)
	}
	if cfg.Reading.Wpm != 300 {
		t.Errorf("Wpm = %v, want 300", cfg.Reading.Wpm)
	}
	if cfg.Reading.Rate != 1.0 {
		t.Errorf("Rate default = %v, want 1.0", cfg.Reading.Rate)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
