package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/prompts"
)

// Stage identifies a phase of a processing run for progress reporting.
type Stage string

const (
	StageConnecting  Stage = "connecting"
	StageModelCheck  Stage = "model_check"
	StageArcAnalysis Stage = "arc_analysis"
	StageGenerating  Stage = "generating"
	StageDone        Stage = "done"
)

// Progress is one progress notification. Completed/Total count
// generation calls during the generating stage.
type Progress struct {
	Stage     Stage
	Message   string
	Completed int
	Total     int
}

// ProgressFunc receives progress notifications. Delivery is synchronous
// on the pipeline goroutine; consumers must not block.
type ProgressFunc func(Progress)

// Chapter is one host-supplied chapter boundary with its transcript slice.
type Chapter struct {
	Title string
	Text  string
}

// Options carries the optional inputs of a processing run.
type Options struct {
	// DurationSeconds is the source video length, 0 if unknown. It
	// decides single-pass vs chunked; word count is the fallback.
	DurationSeconds float64

	// Model forces a specific model instead of saved/auto selection.
	Model string

	// VideoContext is host metadata injected into the first request.
	VideoContext *prompts.VideoContext

	// Progress receives stage notifications; may be nil.
	Progress ProgressFunc
}

// ModelStore persists the last selected model between runs. The saved
// value is re-validated against installed models on every run.
type ModelStore interface {
	SavedModel() (string, error)
	SaveModel(name string) error
}

// Pipeline turns raw transcripts into validated reading documents.
type Pipeline interface {
	ProcessTranscript(ctx context.Context, transcript string, opts Options) (*document.Document, error)
	ProcessWithChapters(ctx context.Context, chapters []Chapter, opts Options) (*document.Document, error)
}
