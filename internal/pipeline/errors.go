package pipeline

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
)

// Terminal pipeline failures. Generation and parse failures keep their
// generate package types and are wrapped with call context.
var (
	// ErrBackendUnavailable means the generation service is unreachable
	// or not running.
	ErrBackendUnavailable = errors.New("generation backend is not running")

	// ErrNoModelsInstalled means the backend is up but has no models.
	// The pipeline must not start generation in this state.
	ErrNoModelsInstalled = errors.New("no models installed")

	// ErrModelNotFound means an explicitly requested model is not
	// installed.
	ErrModelNotFound = errors.New("requested model not found")

	// ErrProcessingFailed means the backend output was structurally
	// invalid after repair: missing sections, titles, thoughts or text.
	ErrProcessingFailed = errors.New("ai processing produced an invalid document")
)

// Error codes as surfaced to the host application, which maps them to
// user-facing guidance.
const (
	CodeBackendUnavailable = "OLLAMA_NOT_RUNNING"
	CodeNoModelsInstalled  = "NO_MODELS_INSTALLED"
	CodeModelNotFound      = "MODEL_NOT_FOUND"
	CodeProcessingFailed   = "AI_PROCESSING_FAILED"
	CodeGenerationFailed   = "GENERATION_FAILED"
	CodeMalformedResponse  = "MALFORMED_RESPONSE"
	CodeAborted            = "ABORTED"
	CodeUnknown            = "UNKNOWN"
)

// Code maps a pipeline error to its terminal taxonomy string.
// Cancellation maps to ABORTED and is not a failure; hosts should
// suppress it from error surfaces.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return CodeAborted
	case errors.Is(err, ErrBackendUnavailable):
		return CodeBackendUnavailable
	case errors.Is(err, ErrNoModelsInstalled):
		return CodeNoModelsInstalled
	case errors.Is(err, ErrModelNotFound):
		return CodeModelNotFound
	case errors.Is(err, ErrProcessingFailed):
		return CodeProcessingFailed
	}

	var parseErr *generate.ParseError
	if errors.As(err, &parseErr) {
		return CodeMalformedResponse
	}
	var genErr *generate.GenerationError
	if errors.As(err, &genErr) {
		// Includes the composed 120s request timeout: a slow backend is
		// a generation failure, not an abort.
		return CodeGenerationFailed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeAborted
	}
	return CodeUnknown
}
