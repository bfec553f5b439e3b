package pipeline

import (
	"math"
	"sort"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

// climaxBudgetRatio caps how much of a document may carry climax energy.
const climaxBudgetRatio = 0.15

// enforceArc applies the narrative-arc constraints to a normalized
// document, mutating thought energies in place:
//
//  1. At most ceil(total*0.15) climax thoughts survive; when over
//     budget, the most complex climaxes are kept and the rest are
//     downgraded to building_tension.
//  2. Every surviving climax must be set up: its predecessor is forced
//     to building_tension unless already building_tension or climax.
//     The very first thought has no predecessor, so it can never stay
//     climax.
func enforceArc(doc *document.Document) {
	var thoughts []*document.Thought
	for si := range doc.Sections {
		sec := &doc.Sections[si]
		for ti := range sec.Thoughts {
			thoughts = append(thoughts, &sec.Thoughts[ti])
		}
	}
	if len(thoughts) == 0 {
		return
	}

	maxClimax := int(math.Ceil(float64(len(thoughts)) * climaxBudgetRatio))

	var climaxes []int
	for i, t := range thoughts {
		if t.Energy == document.EnergyClimax {
			climaxes = append(climaxes, i)
		}
	}

	if len(climaxes) > maxClimax {
		ranked := append([]int(nil), climaxes...)
		sort.SliceStable(ranked, func(a, b int) bool {
			return thoughts[ranked[a]].Complexity > thoughts[ranked[b]].Complexity
		})
		keep := make(map[int]bool, maxClimax)
		for _, i := range ranked[:maxClimax] {
			keep[i] = true
		}
		for _, i := range climaxes {
			if !keep[i] {
				thoughts[i].Energy = document.EnergyBuildingTension
			}
		}
	}

	for i, t := range thoughts {
		if t.Energy != document.EnergyClimax {
			continue
		}
		if i == 0 {
			t.Energy = document.EnergyBuildingTension
			continue
		}
		prev := thoughts[i-1]
		if prev.Energy != document.EnergyBuildingTension && prev.Energy != document.EnergyClimax {
			prev.Energy = document.EnergyBuildingTension
		}
	}
}
