package prompts

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
)

const (
	maxContextKeywords    = 15
	maxContextDescription = 500
)

// VideoContext is optional host metadata injected ahead of the transcript
// so the model knows what kind of video it is restructuring.
type VideoContext struct {
	Title       string
	Category    string
	Keywords    []string
	Description string
}

// BuildRestructureRequest assembles a full-transcript or chunk
// restructuring request. vc and arcContext are both optional; when
// present they are prepended to the user content as labeled blocks.
func BuildRestructureRequest(transcript, model string, vc *VideoContext, arcContext string) generate.Request {
	prompt := transcript

	var blocks []string
	if vc != nil {
		parts := []string{"[VIDEO CONTEXT]"}
		if vc.Title != "" {
			parts = append(parts, "Title: "+vc.Title)
		}
		if vc.Category != "" {
			parts = append(parts, "Category: "+vc.Category)
		}
		if len(vc.Keywords) > 0 {
			kw := vc.Keywords
			if len(kw) > maxContextKeywords {
				kw = kw[:maxContextKeywords]
			}
			parts = append(parts, "Keywords: "+strings.Join(kw, ", "))
		}
		if vc.Description != "" {
			desc := vc.Description
			if len(desc) > maxContextDescription {
				desc = desc[:maxContextDescription]
			}
			parts = append(parts, "Description: "+desc)
		}
		blocks = append(blocks, strings.Join(parts, "\n"))
	}
	if arcContext != "" {
		blocks = append(blocks, "[NARRATIVE ARC CONTEXT]\n"+arcContext)
	}
	if len(blocks) > 0 {
		prompt = strings.Join(blocks, "\n\n") + "\n\n[TRANSCRIPT]\n" + transcript
	}

	return generate.Request{
		Kind:   generate.KindRestructure,
		Model:  model,
		Prompt: prompt,
		System: RestructurePrompt,
		Format: "json",
	}
}

// BuildChapterRequest assembles a single-chapter restructuring request.
// The chapter title is carried in the system text so the model does not
// echo it back into the thoughts.
func BuildChapterRequest(title, text, model, arcContext string) generate.Request {
	system := fmt.Sprintf("The following transcript is from the chapter titled %q.\n\n%s", title, ChapterRestructurePrompt)
	prompt := text
	if arcContext != "" {
		prompt = "[NARRATIVE ARC CONTEXT]\n" + arcContext + "\n\n[TRANSCRIPT]\n" + text
	}
	return generate.Request{
		Kind:   generate.KindChapter,
		Model:  model,
		Prompt: prompt,
		System: system,
		Format: "json",
	}
}

// BuildArcRequest assembles the one-shot narrative arc analysis request
// over a condensed transcript sample.
func BuildArcRequest(sample, model string) generate.Request {
	return generate.Request{
		Kind:   generate.KindArc,
		Model:  model,
		Prompt: sample,
		System: ArcAnalysisPrompt,
		Format: "json",
	}
}
