package config

import "fmt"

type Config struct {
	Backend     BackendConfig     `yaml:"backend"`
	Ollama      OllamaConfig      `yaml:"ollama"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Reading     ReadingConfig     `yaml:"reading"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Paths       PathsConfig       `yaml:"paths"`
	Store       StoreConfig       `yaml:"store"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type BackendConfig struct {
	// Provider selects the generation backend: ollama, gemini or openai.
	Provider string `yaml:"provider"`

	// Model forces a specific model; empty means saved/auto selection.
	Model string `yaml:"model"`
}

type OllamaConfig struct {
	BaseURL       string `yaml:"base_url"`
	ContextWindow int    `yaml:"context_window"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type ReadingConfig struct {
	Wpm  int     `yaml:"wpm"`
	Rate float64 `yaml:"rate"`
}

type ChunkingConfig struct {
	ChunkWords    int `yaml:"chunk_words"`
	CondenseWords int `yaml:"condense_words"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type StoreConfig struct {
	DBPath string `yaml:"db_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Backend.Provider == "" {
		c.Backend.Provider = "ollama"
	}
	switch c.Backend.Provider {
	case "ollama", "gemini", "openai":
	default:
		return fmt.Errorf("backend.provider %q is not one of ollama, gemini, openai", c.Backend.Provider)
	}

	if c.Backend.Provider == "gemini" && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required when backend.provider is gemini")
	}
	if c.Backend.Provider == "openai" && c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required when backend.provider is openai")
	}

	if c.Reading.Wpm < 0 {
		return fmt.Errorf("reading.wpm must not be negative")
	}
	if c.Reading.Rate < 0 {
		return fmt.Errorf("reading.rate must not be negative")
	}

	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Reading.Wpm == 0 {
		c.Reading.Wpm = 250
	}
	if c.Reading.Rate == 0 {
		c.Reading.Rate = 1.0
	}
	if c.Chunking.ChunkWords == 0 {
		c.Chunking.ChunkWords = 3500
	}
	if c.Chunking.CondenseWords == 0 {
		c.Chunking.CondenseWords = 1500
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Store.DBPath == "" {
		c.Store.DBPath = "data/reader.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
