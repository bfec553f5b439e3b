package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The generation backend is a language model, so its output structure is
// only probabilistically correct. Raw and its field types decode whatever
// the backend returned without failing on shape mismatches; type-mismatched
// fields collapse to their zero value and the pipeline's validation pass
// decides what is fatal and what gets a default.

// Raw is the decode target for every backend response shape: restructure
// runs fill Sections/Takeaways, chapter runs fill Thoughts/Recap.
type Raw struct {
	Sections  LenientSections `json:"sections"`
	Takeaways LenientStrings  `json:"takeaways"`
	Thoughts  LenientThoughts `json:"thoughts"`
	Recap     LenientString   `json:"recap"`
}

// RawSection mirrors Section with lenient field decoding.
type RawSection struct {
	Title    LenientString   `json:"title"`
	Recap    LenientString   `json:"recap"`
	Thoughts LenientThoughts `json:"thoughts"`
}

// RawThought mirrors Thought with lenient field decoding.
type RawThought struct {
	Text       LenientString  `json:"text"`
	Emphasis   LenientStrings `json:"emphasis"`
	Mode       LenientString  `json:"mode"`
	Energy     LenientString  `json:"energy"`
	Complexity LenientNumber  `json:"complexity"`
}

// RawArc is the decode target for arc-analysis responses.
type RawArc struct {
	Shape           LenientString `json:"arc_shape"`
	StagingEndPct   LenientNumber `json:"staging_end_pct"`
	TensionStartPct LenientNumber `json:"tension_start_pct"`
	ClimaxZoneStart LenientNumber `json:"climax_zone_start_pct"`
	ClimaxZoneEnd   LenientNumber `json:"climax_zone_end_pct"`
	ResolutionStart LenientNumber `json:"resolution_start_pct"`
}

// Profile converts a RawArc into an ArcProfile, clamping every breakpoint
// into [0,1] and defaulting an unknown shape to rise.
func (a RawArc) Profile() *ArcProfile {
	shape := ArcShape(a.Shape)
	if !shape.Valid() {
		shape = ArcRise
	}
	pct := func(n LenientNumber, def float64) float64 {
		v, ok := n.Float()
		if !ok {
			return def
		}
		return math.Min(1, math.Max(0, v))
	}
	return &ArcProfile{
		Shape:           shape,
		StagingEndPct:   pct(a.StagingEndPct, 0.15),
		TensionStartPct: pct(a.TensionStartPct, 0.5),
		ClimaxZoneStart: pct(a.ClimaxZoneStart, 0.7),
		ClimaxZoneEnd:   pct(a.ClimaxZoneEnd, 0.9),
		ResolutionStart: pct(a.ResolutionStart, 0.9),
	}
}

// LenientString decodes a JSON string; any other type yields "".
type LenientString string

func (s *LenientString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err == nil {
		*s = LenientString(v)
	}
	return nil
}

// LenientStrings decodes a JSON array, keeping only its string elements;
// any other type yields nil.
type LenientStrings []string

func (s *LenientStrings) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var v string
		if err := json.Unmarshal(item, &v); err == nil {
			out = append(out, v)
		}
	}
	*s = out
	return nil
}

// LenientSections decodes a JSON array of sections; any other type yields nil.
type LenientSections []RawSection

func (s *LenientSections) UnmarshalJSON(b []byte) error {
	var v []RawSection
	if err := json.Unmarshal(b, &v); err == nil {
		*s = v
	}
	return nil
}

// LenientThoughts decodes a JSON array of thoughts; any other type yields nil.
type LenientThoughts []RawThought

func (s *LenientThoughts) UnmarshalJSON(b []byte) error {
	var v []RawThought
	if err := json.Unmarshal(b, &v); err == nil {
		*s = v
	}
	return nil
}

// LenientNumber decodes a JSON number directly, and coerces numeric
// strings and booleans the way a loosely typed backend might emit them.
type LenientNumber struct {
	Value    float64
	IsNumber bool // the JSON value was an actual number
	Coerced  bool // Value holds a usable coercion
}

func (n *LenientNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = LenientNumber{Value: f, IsNumber: true, Coerced: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = LenientNumber{Value: f, Coerced: true}
		}
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		if v {
			*n = LenientNumber{Value: 1, Coerced: true}
		} else {
			*n = LenientNumber{Value: 0, Coerced: true}
		}
	}
	return nil
}

// Float returns the coerced value, reporting false when nothing usable
// was decoded.
func (n LenientNumber) Float() (float64, bool) {
	return n.Value, n.Coerced
}
