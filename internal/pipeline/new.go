package pipeline

import (
	"github.com/nguyentantai21042004/kinetic-reader/internal/chunker"
	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
)

type implPipeline struct {
	gen           generate.Generator
	models        ModelStore
	logger        logger.Logger
	chunkWords    int
	condenseWords int
}

// Option customizes a Pipeline.
type Option func(*implPipeline)

// WithChunkWords overrides the per-chunk word budget.
func WithChunkWords(n int) Option {
	return func(p *implPipeline) {
		if n > 0 {
			p.chunkWords = n
		}
	}
}

// WithCondenseWords overrides the arc-analysis sample word budget.
func WithCondenseWords(n int) Option {
	return func(p *implPipeline) {
		if n > 0 {
			p.condenseWords = n
		}
	}
}

// New creates a new Pipeline instance. models may be nil, in which case
// selection is not persisted across runs.
func New(gen generate.Generator, models ModelStore, log logger.Logger, opts ...Option) Pipeline {
	p := &implPipeline{
		gen:           gen,
		models:        models,
		logger:        log,
		chunkWords:    chunker.DefaultChunkWords,
		condenseWords: chunker.DefaultCondenseWords,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
