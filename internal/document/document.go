package document

// Mode is the display layout category for a thought.
type Mode string

const (
	ModeFlow   Mode = "flow"
	ModeStack  Mode = "stack"
	ModeImpact Mode = "impact"
)

// DefaultMode is applied when the backend returns an unknown mode.
const DefaultMode = ModeFlow

// Valid reports whether m is one of the known display modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeFlow, ModeStack, ModeImpact:
		return true
	}
	return false
}

// Energy is the rhetorical/emotional register of a thought. It drives
// pacing multipliers and entrance styling in the renderer.
type Energy string

const (
	EnergyCalmIntro       Energy = "calm_intro"
	EnergyExplanation     Energy = "explanation"
	EnergyBuildingTension Energy = "building_tension"
	EnergyClimax          Energy = "climax"
	EnergyEnumeration     Energy = "enumeration"
	EnergyContrast        Energy = "contrast"
	EnergyEmotional       Energy = "emotional"
	EnergyQuestion        Energy = "question"
	EnergyResolution      Energy = "resolution"
)

// DefaultEnergy is applied when the backend returns an unknown energy.
const DefaultEnergy = EnergyExplanation

// Valid reports whether e is one of the known energy states.
func (e Energy) Valid() bool {
	switch e {
	case EnergyCalmIntro, EnergyExplanation, EnergyBuildingTension,
		EnergyClimax, EnergyEnumeration, EnergyContrast,
		EnergyEmotional, EnergyQuestion, EnergyResolution:
		return true
	}
	return false
}

// Thought is the smallest addressable unit of restructured content,
// displayed as one timed reading beat.
type Thought struct {
	Text       string   `json:"text"`
	Emphasis   []string `json:"emphasis"`
	Mode       Mode     `json:"mode"`
	Energy     Energy   `json:"energy"`
	Complexity float64  `json:"complexity"`
}

// Section is an ordered group of thoughts sharing a topic, with a
// one-sentence summary shown at the section break.
type Section struct {
	Title    string    `json:"title"`
	Recap    string    `json:"recap"`
	Thoughts []Thought `json:"thoughts"`
}

// Document is the canonical result of one processing run. Sections are
// ordered; Takeaways may be empty.
type Document struct {
	Sections  []Section `json:"sections"`
	Takeaways []string  `json:"takeaways"`
}

// ThoughtCount returns the total number of thoughts across all sections.
func (d *Document) ThoughtCount() int {
	n := 0
	for i := range d.Sections {
		n += len(d.Sections[i].Thoughts)
	}
	return n
}

// ArcShape describes the overall narrative shape of a transcript.
type ArcShape string

const (
	ArcRise         ArcShape = "rise"
	ArcFall         ArcShape = "fall"
	ArcFallThenRise ArcShape = "fall_then_rise"
	ArcRiseThenFall ArcShape = "rise_then_fall"
	ArcUniform      ArcShape = "uniform"
)

// Valid reports whether s is one of the known arc shapes.
func (s ArcShape) Valid() bool {
	switch s {
	case ArcRise, ArcFall, ArcFallThenRise, ArcRiseThenFall, ArcUniform:
		return true
	}
	return false
}

// ArcProfile describes where the narrative phases of a transcript fall,
// as fractions of total length in [0,1]. It only biases generation
// prompts and post-hoc validation; a nil profile degrades gracefully.
type ArcProfile struct {
	Shape           ArcShape `json:"arc_shape"`
	StagingEndPct   float64  `json:"staging_end_pct"`
	TensionStartPct float64  `json:"tension_start_pct"`
	ClimaxZoneStart float64  `json:"climax_zone_start_pct"`
	ClimaxZoneEnd   float64  `json:"climax_zone_end_pct"`
	ResolutionStart float64  `json:"resolution_start_pct"`
}

// NeutralArc is the fixed rise-shaped profile used for chapter runs,
// where chapter boundaries already impose structure.
func NeutralArc() *ArcProfile {
	return &ArcProfile{
		Shape:           ArcRise,
		StagingEndPct:   0.15,
		TensionStartPct: 0.5,
		ClimaxZoneStart: 0.7,
		ClimaxZoneEnd:   0.9,
		ResolutionStart: 0.9,
	}
}
