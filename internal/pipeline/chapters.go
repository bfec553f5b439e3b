package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/kinetic-reader/internal/chunker"
	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/prompts"
)

// ProcessWithChapters runs the chapter pipeline: each host-supplied
// chapter becomes one section, processed independently. Chapter
// boundaries already impose structure, so no arc-analysis call is made;
// each chapter gets arc context from its position among the chapters
// against a fixed neutral profile.
func (p *implPipeline) ProcessWithChapters(ctx context.Context, chapters []Chapter, opts Options) (*document.Document, error) {
	model, err := p.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Chapters over the chunk budget are sub-chunked, so the call count
	// for progress is the total across all chapters.
	chapterChunks := make([][]string, len(chapters))
	totalCalls := 0
	for i, ch := range chapters {
		chapterChunks[i] = chunker.SplitChapterIntoSubChunks(ch.Text, p.chunkWords)
		totalCalls += len(chapterChunks[i])
	}
	p.report(opts, Progress{Stage: StageGenerating, Total: totalCalls})

	neutral := document.NeutralArc()
	merged := &document.Raw{}
	completed := 0

	for i, ch := range chapters {
		arcCtx := prompts.ArcContext(neutral,
			float64(i)/float64(len(chapters)),
			float64(i+1)/float64(len(chapters)))

		var thoughts document.LenientThoughts
		var recap document.LenientString
		for _, chunk := range chapterChunks[i] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			req := prompts.BuildChapterRequest(ch.Title, chunk, model, arcCtx)
			raw, err := p.gen.Generate(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("generate chapter %q: %w", ch.Title, err)
			}
			completed++
			p.report(opts, Progress{Stage: StageGenerating, Completed: completed, Total: totalCalls})

			thoughts = append(thoughts, raw.Thoughts...)
			if raw.Recap != "" {
				// Last non-empty recap wins; the final sub-chunk has
				// seen the chapter's conclusion.
				recap = raw.Recap
			}
		}

		merged.Sections = append(merged.Sections, document.RawSection{
			Title:    document.LenientString(ch.Title),
			Recap:    recap,
			Thoughts: thoughts,
		})
	}

	// The chapter prompt does not ask for takeaways; derive them from
	// the section recaps instead.
	takeaways := document.LenientStrings{}
	for _, s := range merged.Sections {
		if r := strings.TrimSpace(string(s.Recap)); r != "" {
			takeaways = append(takeaways, r)
		}
	}
	merged.Takeaways = takeaways

	return p.finish(ctx, merged, opts)
}
