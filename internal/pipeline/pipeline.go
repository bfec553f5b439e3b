package pipeline

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/kinetic-reader/internal/chunker"
	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/prompts"
)

// Transcripts at or under these limits go through in a single request.
// Longer content gets chunked: very long outputs make the JSON
// unreliable, and the model loses track of early material.
const (
	singlePassDurationSeconds = 20 * 60
	singlePassWordLimit       = 3500
)

// ProcessTranscript runs the single-pass or chunked pipeline over a raw
// transcript and returns the validated document. Chunks are processed
// strictly sequentially: the backend serves one model instance, and each
// chunk's prompt embeds arc context derived from its position.
func (p *implPipeline) ProcessTranscript(ctx context.Context, transcript string, opts Options) (*document.Document, error) {
	model, err := p.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	wordCount := chunker.CountWords(transcript)
	singlePass := wordCount <= singlePassWordLimit
	if opts.DurationSeconds > 0 {
		singlePass = opts.DurationSeconds <= singlePassDurationSeconds
	}

	if singlePass {
		p.report(opts, Progress{Stage: StageGenerating, Total: 1})
		req := prompts.BuildRestructureRequest(transcript, model, opts.VideoContext, "")
		raw, err := p.gen.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		p.report(opts, Progress{Stage: StageGenerating, Completed: 1, Total: 1})
		return p.finish(ctx, raw, opts)
	}

	// Arc analysis over a condensed sample. Uniquely non-fatal: without
	// a profile the chunks simply run with no arc guidance.
	profile := p.analyzeArc(ctx, transcript, model, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks := chunker.SplitIntoSentenceChunks(transcript, p.chunkWords)
	p.report(opts, Progress{Stage: StageGenerating, Total: len(chunks)})

	chunkWords := make([]int, len(chunks))
	totalWords := 0
	for i, c := range chunks {
		chunkWords[i] = chunker.CountWords(c)
		totalWords += chunkWords[i]
	}

	merged := &document.Raw{}
	cumWords := 0
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		startPct := float64(cumWords) / float64(totalWords)
		cumWords += chunkWords[i]
		endPct := float64(cumWords) / float64(totalWords)
		arcCtx := prompts.ArcContext(profile, startPct, endPct)

		// Video context only prefixes the first chunk; repeating it
		// wastes context window on every later request.
		vc := opts.VideoContext
		if i > 0 {
			vc = nil
		}

		req := prompts.BuildRestructureRequest(chunk, model, vc, arcCtx)
		raw, err := p.gen.Generate(ctx, req)
		if err != nil {
			// No partial results: a lost chunk would silently corrupt
			// the merged document.
			return nil, fmt.Errorf("generate chunk %d/%d: %w", i+1, len(chunks), err)
		}

		merged.Sections = append(merged.Sections, raw.Sections...)
		if i == len(chunks)-1 {
			// Last chunk wins: it has seen the conclusion, which is the
			// best single view of the overall takeaways.
			merged.Takeaways = raw.Takeaways
		}

		p.report(opts, Progress{Stage: StageGenerating, Completed: i + 1, Total: len(chunks)})
	}

	return p.finish(ctx, merged, opts)
}

// prepare runs the connecting and model_check stages shared by both
// entry points, returning the resolved model name.
func (p *implPipeline) prepare(ctx context.Context, opts Options) (string, error) {
	p.report(opts, Progress{Stage: StageConnecting})
	health := p.gen.Health(ctx)
	if !health.Running {
		return "", ErrBackendUnavailable
	}

	p.report(opts, Progress{Stage: StageModelCheck})
	model, err := p.selectModel(ctx, health, opts.Model)
	if err != nil {
		return "", err
	}
	p.logger.Info(ctx, "Using model: %s", model)
	return model, nil
}

// analyzeArc runs the arc-analysis call over a condensed transcript
// sample, returning nil on any failure.
func (p *implPipeline) analyzeArc(ctx context.Context, transcript, model string, opts Options) *document.ArcProfile {
	p.report(opts, Progress{Stage: StageArcAnalysis})

	sample := chunker.CondenseTranscript(transcript, p.condenseWords)
	req := prompts.BuildArcRequest(sample, model)
	raw, err := p.gen.GenerateArc(ctx, req)
	if err != nil {
		p.logger.Warn(ctx, "Arc analysis failed, continuing without arc guidance: %v", err)
		return nil
	}

	profile := raw.Profile()
	p.logger.Info(ctx, "Narrative arc: %s (climax zone %.0f%%-%.0f%%)",
		profile.Shape, profile.ClimaxZoneStart*100, profile.ClimaxZoneEnd*100)
	return profile
}

// finish validates, normalizes and arc-constrains a merged raw result.
func (p *implPipeline) finish(ctx context.Context, raw *document.Raw, opts Options) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := validateAndNormalize(raw)
	if err != nil {
		return nil, err
	}
	enforceArc(doc)

	p.report(opts, Progress{Stage: StageDone})
	p.logger.Info(ctx, "Processed document: %d sections, %d thoughts, %d takeaways",
		len(doc.Sections), doc.ThoughtCount(), len(doc.Takeaways))
	return doc, nil
}

func (p *implPipeline) report(opts Options, prog Progress) {
	if opts.Progress != nil {
		opts.Progress(prog)
	}
}
