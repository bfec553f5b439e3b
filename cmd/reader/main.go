package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/kinetic-reader/internal/config"
	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
	"github.com/nguyentantai21042004/kinetic-reader/internal/store"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "reader",
		Short: "Turn video transcripts into paced reading documents",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig falls back to defaults when no config file exists, so the
// CLI works out of the box against a local Ollama.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &config.Config{}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load(configPath)
}

func buildGenerator(cfg *config.Config, log logger.Logger) generate.Generator {
	switch cfg.Backend.Provider {
	case "gemini":
		return generate.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	case "openai":
		return generate.NewOpenAI(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, log)
	default:
		var opts []generate.OllamaOption
		if cfg.Ollama.ContextWindow > 0 {
			opts = append(opts, generate.WithContextWindow(cfg.Ollama.ContextWindow))
		}
		return generate.NewOllama(cfg.Ollama.BaseURL, log, opts...)
	}
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.Store.DBPath)
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
