// Package transcript turns caption files into the plain text the
// processing pipeline consumes, preserving timing so segments can be
// grouped under chapter boundaries.
package transcript

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Segment is one timed caption.
type Segment struct {
	Text       string
	StartMs    float64
	DurationMs float64
	EndMs      float64
}

// Chapter is a host-declared chapter boundary.
type Chapter struct {
	Title   string
	StartMs float64
}

// ChapterText is the transcript slice belonging to one chapter.
type ChapterText struct {
	Title string
	Text  string
}

// json3 wire shapes. Only the fields we read are declared; caption
// events without segs (window styling, karaoke cues) carry no text.
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    float64    `json:"tStartMs"`
	DurationMs float64    `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// ParseJSON3 parses the json3 caption format into timed segments.
// Events without text are dropped.
func ParseJSON3(data []byte) ([]Segment, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json3 captions: %w", err)
	}

	var segments []Segment
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:       text,
			StartMs:    ev.StartMs,
			DurationMs: ev.DurationMs,
			EndMs:      ev.StartMs + ev.DurationMs,
		})
	}

	return segments, nil
}

// PlainText joins segment texts with single spaces.
func PlainText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// MapSegmentsToChapters groups segments under the chapter whose time
// range contains their start. Chapters that end up with no text are
// dropped. Returns nil when no chapters are given.
func MapSegmentsToChapters(segments []Segment, chapters []Chapter) []ChapterText {
	if len(chapters) == 0 {
		return nil
	}

	sorted := make([]Chapter, len(chapters))
	copy(sorted, chapters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMs < sorted[j].StartMs
	})

	var out []ChapterText
	for i, ch := range sorted {
		end := -1.0
		if i < len(sorted)-1 {
			end = sorted[i+1].StartMs
		}

		var parts []string
		for _, seg := range segments {
			if seg.StartMs < ch.StartMs {
				continue
			}
			if end >= 0 && seg.StartMs >= end {
				continue
			}
			parts = append(parts, seg.Text)
		}

		text := strings.TrimSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		out = append(out, ChapterText{Title: ch.Title, Text: text})
	}

	return out
}
