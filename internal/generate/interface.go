package generate

import (
	"context"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

// Options carries backend tuning knobs for one request.
type Options struct {
	ContextWindow int `json:"num_ctx,omitempty"`
}

// Kind names the response shape a request expects. Backends with
// structured-output support use it to pick the response schema; the
// Ollama backend ignores it.
type Kind string

const (
	KindRestructure Kind = "restructure"
	KindChapter     Kind = "chapter"
	KindArc         Kind = "arc"
)

// Request is one generation call. Format is always "json" for this
// system; the backend is expected to return a JSON document matching the
// request's prompt contract.
type Request struct {
	Kind Kind `json:"-"`

	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	System  string   `json:"system"`
	Format  string   `json:"format"`
	Stream  bool     `json:"stream"`
	Options *Options `json:"options,omitempty"`
}

// ModelDetail describes one installed model as reported by the backend.
type ModelDetail struct {
	Name         string
	ParamSize    string // e.g. "7.6B"
	Quantization string
	Family       string
	SizeBytes    int64
}

// Health is the result of a backend liveness probe.
type Health struct {
	Running bool
	Models  []string
	Details []ModelDetail
}

// ModelCheck is the result of resolving a model name against the
// installed set.
type ModelCheck struct {
	Available     bool
	ResolvedModel string
	Models        []string
}

// ProgressFunc receives advisory token counts while a streaming response
// arrives. It never gates correctness.
type ProgressFunc func(tokens int)

// Generator invokes the external text-generation service. Implementations
// must honor ctx cancellation mid-flight.
type Generator interface {
	Health(ctx context.Context) Health
	CheckModel(ctx context.Context, name string) ModelCheck
	Generate(ctx context.Context, req Request) (*document.Raw, error)
	GenerateArc(ctx context.Context, req Request) (*document.RawArc, error)
}
