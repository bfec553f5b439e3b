package document

import (
	"encoding/json"
	"testing"
)

func TestRawDecodeWellFormed(t *testing.T) {
	data := []byte(`{
		"sections": [
			{"title": "Opening", "recap": "It began.", "thoughts": [
				{"text": "First.", "emphasis": ["First"], "mode": "flow", "energy": "calm_intro", "complexity": 0.3}
			]}
		],
		"takeaways": ["one", "two"]
	}`)

	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(raw.Sections) != 1 {
		t.Fatalf("sections = %d", len(raw.Sections))
	}
	sec := raw.Sections[0]
	if sec.Title != "Opening" || sec.Recap != "It began." {
		t.Errorf("section = %+v", sec)
	}
	th := sec.Thoughts[0]
	if th.Text != "First." || th.Mode != "flow" || th.Energy != "calm_intro" {
		t.Errorf("thought = %+v", th)
	}
	if v, ok := th.Complexity.Float(); !ok || v != 0.3 || !th.Complexity.IsNumber {
		t.Errorf("complexity = %+v", th.Complexity)
	}
	if len(raw.Takeaways) != 2 {
		t.Errorf("takeaways = %v", raw.Takeaways)
	}
}

func TestRawDecodeShapeMismatches(t *testing.T) {
	// Every field carries the wrong type; decoding must not fail and
	// each field must collapse to its zero value.
	data := []byte(`{
		"sections": "not an array",
		"takeaways": {"not": "an array"},
		"thoughts": 17,
		"recap": ["not", "a", "string"]
	}`)

	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw.Sections != nil || raw.Takeaways != nil || raw.Thoughts != nil || raw.Recap != "" {
		t.Errorf("mismatched fields did not collapse: %+v", raw)
	}
}

func TestLenientStringsKeepsOnlyStrings(t *testing.T) {
	var s LenientStrings
	if err := json.Unmarshal([]byte(`["a", 3, null, "b", {"x":1}]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s) != 2 || s[0] != "a" || s[1] != "b" {
		t.Errorf("got %v, want [a b]", s)
	}
}

func TestLenientNumberCoercions(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		value    float64
		isNumber bool
		coerced  bool
	}{
		{"number", `0.7`, 0.7, true, true},
		{"zero number", `0`, 0, true, true},
		{"numeric string", `"0.35"`, 0.35, false, true},
		{"padded string", `" 0.4 "`, 0.4, false, true},
		{"true", `true`, 1, false, true},
		{"false", `false`, 0, false, true},
		{"garbage string", `"high"`, 0, false, false},
		{"object", `{"v": 1}`, 0, false, false},
		{"null", `null`, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n LenientNumber
			if err := json.Unmarshal([]byte(tt.json), &n); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if n.Value != tt.value || n.IsNumber != tt.isNumber || n.Coerced != tt.coerced {
				t.Errorf("got %+v, want value=%v isNumber=%v coerced=%v",
					n, tt.value, tt.isNumber, tt.coerced)
			}
		})
	}
}

func TestRawArcProfile(t *testing.T) {
	data := []byte(`{
		"arc_shape": "rise_then_fall",
		"staging_end_pct": 0.2,
		"tension_start_pct": "0.45",
		"climax_zone_start_pct": 1.7,
		"climax_zone_end_pct": -0.3,
		"resolution_start_pct": null
	}`)

	var arc RawArc
	if err := json.Unmarshal(data, &arc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := arc.Profile()

	if p.Shape != ArcRiseThenFall {
		t.Errorf("shape = %v", p.Shape)
	}
	if p.StagingEndPct != 0.2 {
		t.Errorf("staging = %v", p.StagingEndPct)
	}
	if p.TensionStartPct != 0.45 {
		t.Errorf("tension (string coerced) = %v", p.TensionStartPct)
	}
	if p.ClimaxZoneStart != 1 {
		t.Errorf("climax start clamped = %v, want 1", p.ClimaxZoneStart)
	}
	if p.ClimaxZoneEnd != 0 {
		t.Errorf("climax end clamped = %v, want 0", p.ClimaxZoneEnd)
	}
	if p.ResolutionStart != 0.9 {
		t.Errorf("resolution default = %v, want 0.9", p.ResolutionStart)
	}
}

func TestRawArcProfileUnknownShape(t *testing.T) {
	var arc RawArc
	if err := json.Unmarshal([]byte(`{"arc_shape": "spiral"}`), &arc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := arc.Profile()
	if p.Shape != ArcRise {
		t.Errorf("shape = %v, want default rise", p.Shape)
	}
	if p.StagingEndPct != 0.15 || p.TensionStartPct != 0.5 {
		t.Errorf("defaults = %+v", p)
	}
}

func TestThoughtCount(t *testing.T) {
	doc := Document{
		Sections: []Section{
			{Thoughts: []Thought{{Text: "a"}, {Text: "b"}}},
			{Thoughts: []Thought{{Text: "c"}}},
			{},
		},
	}
	if got := doc.ThoughtCount(); got != 3 {
		t.Errorf("ThoughtCount = %d, want 3", got)
	}
}

func TestEnumValidity(t *testing.T) {
	if !ModeStack.Valid() || Mode("grid").Valid() {
		t.Error("mode validity wrong")
	}
	if !EnergyClimax.Valid() || Energy("frantic").Valid() {
		t.Error("energy validity wrong")
	}
	if !ArcUniform.Valid() || ArcShape("spiral").Valid() {
		t.Error("arc shape validity wrong")
	}
}
