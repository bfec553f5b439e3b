package prompts

import (
	"fmt"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

// Narrative phase of a chunk within the overall arc.
type phase struct {
	name     string
	guidance string
}

var (
	phaseStaging = phase{
		name:     "staging",
		guidance: "Set context calmly. Favor calm_intro and explanation energies. No climax yet.",
	}
	phaseDevelopment = phase{
		name:     "development",
		guidance: "Develop the core ideas. Favor explanation, enumeration and contrast energies. No climax yet.",
	}
	phaseTension = phase{
		name:     "tension-building",
		guidance: "The content is heading toward its peak. Favor building_tension energy and keep explanations tight. No climax yet; save it for the climax zone.",
	}
	phaseClimax = phase{
		name:     "climax",
		guidance: "This part holds the video's key insight. 1-3 climax thoughts are appropriate here, each preceded by at least one building_tension thought.",
	}
	phaseResolution = phase{
		name:     "resolution",
		guidance: "Wrap up. Favor resolution and emotional energies. No new climax.",
	}
)

// ArcContext computes the narrative phase of a chunk spanning
// [startPct, endPct) of the transcript and renders the directive that is
// injected verbatim into that chunk's request. This is what keeps
// independently generated chunks coherent on narrative pacing. A nil
// profile yields an empty directive.
func ArcContext(profile *document.ArcProfile, startPct, endPct float64) string {
	if profile == nil {
		return ""
	}

	mid := (startPct + endPct) / 2
	var ph phase
	switch {
	case mid < profile.StagingEndPct:
		ph = phaseStaging
	case mid < profile.TensionStartPct:
		ph = phaseDevelopment
	case mid < profile.ClimaxZoneStart:
		ph = phaseTension
	case mid < profile.ClimaxZoneEnd:
		ph = phaseClimax
	default:
		ph = phaseResolution
	}

	return fmt.Sprintf(
		"This excerpt spans %.0f%%-%.0f%% of the full transcript. The overall narrative arc is %q, with its climax zone at %.0f%%-%.0f%% and resolution from %.0f%%. This excerpt falls in the %s phase. %s",
		startPct*100, endPct*100,
		string(profile.Shape),
		profile.ClimaxZoneStart*100, profile.ClimaxZoneEnd*100,
		profile.ResolutionStart*100,
		ph.name, ph.guidance,
	)
}
