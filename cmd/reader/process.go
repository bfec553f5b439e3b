package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
	"github.com/nguyentantai21042004/kinetic-reader/internal/pipeline"
	"github.com/nguyentantai21042004/kinetic-reader/internal/prompts"
	"github.com/nguyentantai21042004/kinetic-reader/internal/session"
	"github.com/nguyentantai21042004/kinetic-reader/internal/transcript"
)

// chapterMark is the on-disk shape of one entry in a --chapters file.
type chapterMark struct {
	Title   string  `json:"title"`
	StartMs float64 `json:"startMs"`
}

func processCmd() *cobra.Command {
	var (
		model        string
		title        string
		duration     float64
		chaptersPath string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "process [transcript file]",
		Short: "Process a transcript into a reading document",
		Long: "Process reads a transcript (.srt, .json caption export, or plain .txt),\n" +
			"restructures it through the configured backend and writes the resulting\n" +
			"document as JSON. Results are cached per source; reprocessing the same\n" +
			"file returns the cached document.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level)

			segments, text, err := readTranscript(args[0])
			if err != nil {
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

			sourceID := sourceIDFor(args[0])
			if title == "" {
				title = sourceID
			}

			if model == "" {
				model = cfg.Backend.Model
			}
			opts := pipeline.Options{
				DurationSeconds: duration,
				Model:           model,
				VideoContext:    &prompts.VideoContext{Title: title},
				Progress:        printProgress,
			}

			ctx := cmd.Context()
			sess := mgr.Create(sourceID, title)

			var doc *document.Document
			if chaptersPath != "" {
				chapters, err := loadChapters(chaptersPath, segments)
				if err != nil {
					return err
				}
				doc, err = mgr.ProcessWithChapters(ctx, sess.ID, chapters, opts)
				if err != nil {
					return describeFailure(err)
				}
			} else {
				doc, err = mgr.Process(ctx, sess.ID, text, opts)
				if err != nil {
					return describeFailure(err)
				}
			}

			if outPath == "" {
				outPath = filepath.Join(cfg.Paths.Output, sourceID+".json")
				if err := os.MkdirAll(cfg.Paths.Output, 0755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := writeDocument(outPath, doc); err != nil {
				return err
			}

			fmt.Printf("Document written to %s\n", outPath)
			fmt.Printf("Sections: %d, thoughts: %d, takeaways: %d\n",
				len(doc.Sections), doc.ThoughtCount(), len(doc.Takeaways))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model to use (default: saved or auto-selected)")
	cmd.Flags().StringVar(&title, "title", "", "video title for context")
	cmd.Flags().Float64Var(&duration, "duration", 0, "video duration in seconds")
	cmd.Flags().StringVar(&chaptersPath, "chapters", "", "json file with chapter markers")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: <output dir>/<source>.json)")

	return cmd
}

// readTranscript loads a transcript file, returning timed segments when
// the format carries timing and the joined plain text either way.
func readTranscript(path string) ([]transcript.Segment, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read transcript: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		segments := transcript.ParseSRT(string(data))
		return segments, transcript.PlainText(segments), nil
	case ".json":
		segments, err := transcript.ParseJSON3(data)
		if err != nil {
			return nil, "", err
		}
		return segments, transcript.PlainText(segments), nil
	default:
		return nil, string(data), nil
	}
}

// loadChapters reads chapter markers and slices the transcript segments
// under them. Chapter processing needs timed segments, so plain text
// input is rejected.
func loadChapters(path string, segments []transcript.Segment) ([]pipeline.Chapter, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("chapter processing needs a timed transcript (.srt or .json)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chapters: %w", err)
	}
	var marks []chapterMark
	if err := json.Unmarshal(data, &marks); err != nil {
		return nil, fmt.Errorf("parse chapters: %w", err)
	}

	ranges := make([]transcript.Chapter, 0, len(marks))
	for _, m := range marks {
		ranges = append(ranges, transcript.Chapter{Title: m.Title, StartMs: m.StartMs})
	}

	sliced := transcript.MapSegmentsToChapters(segments, ranges)
	if len(sliced) == 0 {
		return nil, fmt.Errorf("no transcript text fell inside the given chapters")
	}

	chapters := make([]pipeline.Chapter, 0, len(sliced))
	for _, c := range sliced {
		chapters = append(chapters, pipeline.Chapter{Title: c.Title, Text: c.Text})
	}
	return chapters, nil
}

func sourceIDFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printProgress(p pipeline.Progress) {
	if p.Total > 0 {
		fmt.Printf("[%s] %s (%d/%d)\n", p.Stage, p.Message, p.Completed, p.Total)
		return
	}
	fmt.Printf("[%s] %s\n", p.Stage, p.Message)
}

// describeFailure prefixes pipeline errors with their stable code so
// scripts can match on it.
func describeFailure(err error) error {
	if code := pipeline.Code(err); code != "" && code != pipeline.CodeUnknown {
		return fmt.Errorf("%s: %w", code, err)
	}
	return err
}

func writeDocument(path string, doc *document.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
