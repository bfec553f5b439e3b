package generate

import (
	"fmt"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

// Repair applies the structural repair pass to a freshly decoded backend
// response: every section gets a thoughts array and a title, sections
// left with no thoughts are dropped, and takeaways is always an array.
// Semantic validation stays with the pipeline.
func Repair(raw *document.Raw) {
	if raw == nil {
		return
	}

	kept := raw.Sections[:0]
	for i := range raw.Sections {
		s := raw.Sections[i]
		if s.Thoughts == nil {
			s.Thoughts = document.LenientThoughts{}
		}
		if s.Title == "" {
			s.Title = document.LenientString(fmt.Sprintf("Section %d", i+1))
		}
		if len(s.Thoughts) > 0 {
			kept = append(kept, s)
		}
	}
	raw.Sections = kept

	if raw.Takeaways == nil {
		raw.Takeaways = document.LenientStrings{}
	}
}
