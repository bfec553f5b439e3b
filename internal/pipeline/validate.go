package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

const maxEmphasis = 3

// validateAndNormalize turns a repaired raw response into a canonical
// Document. Structural defects (no sections, missing titles, empty
// thought lists, empty text) are fatal; cosmetic defects (bad enums,
// out-of-range complexity, missing recap or emphasis) are repaired in
// place with safe defaults. The function is idempotent: normalizing an
// already-normal document changes nothing.
func validateAndNormalize(raw *document.Raw) (*document.Document, error) {
	if raw == nil || len(raw.Sections) == 0 {
		return nil, fmt.Errorf("response has no sections: %w", ErrProcessingFailed)
	}

	doc := &document.Document{
		Sections:  make([]document.Section, 0, len(raw.Sections)),
		Takeaways: []string{},
	}

	for i := range raw.Sections {
		rs := &raw.Sections[i]
		if rs.Title == "" {
			return nil, fmt.Errorf("section %d has no title: %w", i+1, ErrProcessingFailed)
		}
		if len(rs.Thoughts) == 0 {
			return nil, fmt.Errorf("section %q has no thoughts: %w", rs.Title, ErrProcessingFailed)
		}

		sec := document.Section{
			Title:    string(rs.Title),
			Recap:    string(rs.Recap),
			Thoughts: make([]document.Thought, 0, len(rs.Thoughts)),
		}

		for j := range rs.Thoughts {
			rt := &rs.Thoughts[j]
			text := string(rt.Text)
			if strings.TrimSpace(text) == "" {
				return nil, fmt.Errorf("section %q thought %d has no text: %w", rs.Title, j+1, ErrProcessingFailed)
			}

			energy := document.Energy(rt.Energy)
			if !energy.Valid() {
				energy = document.DefaultEnergy
			}
			mode := document.Mode(rt.Mode)
			if !mode.Valid() {
				mode = document.DefaultMode
			}

			emphasis := []string(rt.Emphasis)
			if emphasis == nil {
				emphasis = []string{}
			}
			if len(emphasis) > maxEmphasis {
				emphasis = emphasis[:maxEmphasis]
			}

			sec.Thoughts = append(sec.Thoughts, document.Thought{
				Text:       text,
				Emphasis:   emphasis,
				Mode:       mode,
				Energy:     energy,
				Complexity: normalizeComplexity(rt.Complexity),
			})
		}

		doc.Sections = append(doc.Sections, sec)
	}

	if raw.Takeaways != nil {
		doc.Takeaways = append(doc.Takeaways, raw.Takeaways...)
	}

	return doc, nil
}

// normalizeComplexity keeps an in-range number as-is and otherwise
// coerces to [0,1], defaulting to 0.5 when nothing usable was supplied.
func normalizeComplexity(n document.LenientNumber) float64 {
	if n.IsNumber && n.Value >= 0 && n.Value <= 1 {
		return n.Value
	}
	c, ok := n.Float()
	if !ok || c == 0 {
		c = 0.5
	}
	return math.Min(1, math.Max(0, c))
}
