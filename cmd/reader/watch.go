package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/kinetic-reader/internal/config"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
	"github.com/nguyentantai21042004/kinetic-reader/internal/pipeline"
	"github.com/nguyentantai21042004/kinetic-reader/internal/prompts"
	"github.com/nguyentantai21042004/kinetic-reader/internal/session"
	"github.com/nguyentantai21042004/kinetic-reader/internal/watcher"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and process transcripts as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level)
			ctx := cmd.Context()

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			gen := buildGenerator(cfg, log)
			pipe := pipeline.New(gen, st, log,
				pipeline.WithChunkWords(cfg.Chunking.ChunkWords),
				pipeline.WithCondenseWords(cfg.Chunking.CondenseWords),
			)
			mgr := session.New(pipe, st, log)

			handler := func(ctx context.Context, filePath string) error {
				return handleTranscript(ctx, cfg, mgr, filePath)
			}

			w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				if err := w.Start(ctx); err != nil && err != context.Canceled {
					errChan <- err
				}
			}()

			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "Press Ctrl+C to stop")

			select {
			case <-sigChan:
				log.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				log.Error(ctx, "Watcher error: %v", err)
			}

			cancel()
			return nil
		},
	}
}

// handleTranscript processes one dropped transcript file, writes the
// document to the output dir and archives the source file.
func handleTranscript(ctx context.Context, cfg *config.Config, mgr session.Manager, filePath string) error {
	_, text, err := readTranscript(filePath)
	if err != nil {
		return err
	}

	sourceID := sourceIDFor(filePath)
	sess := mgr.Create(sourceID, sourceID)
	defer mgr.End(sess.ID)

	opts := pipeline.Options{
		Model:        cfg.Backend.Model,
		VideoContext: &prompts.VideoContext{Title: sourceID},
	}
	doc, err := mgr.Process(ctx, sess.ID, text, opts)
	if err != nil {
		return describeFailure(err)
	}

	outPath := filepath.Join(cfg.Paths.Output, sourceID+".json")
	if err := writeDocument(outPath, doc); err != nil {
		return err
	}

	archived := filepath.Join(cfg.Paths.Archived, filepath.Base(filePath))
	if err := os.Rename(filePath, archived); err != nil {
		return fmt.Errorf("archive transcript: %w", err)
	}

	return nil
}
