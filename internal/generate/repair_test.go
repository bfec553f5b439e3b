package generate

import (
	"testing"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

func thought(text string) document.RawThought {
	return document.RawThought{Text: document.LenientString(text)}
}

func TestRepairFillsTitles(t *testing.T) {
	raw := &document.Raw{
		Sections: document.LenientSections{
			{Title: "Named", Thoughts: document.LenientThoughts{thought("a")}},
			{Thoughts: document.LenientThoughts{thought("b")}},
			{Thoughts: document.LenientThoughts{thought("c")}},
		},
	}
	Repair(raw)

	if string(raw.Sections[0].Title) != "Named" {
		t.Errorf("title 0 = %q", raw.Sections[0].Title)
	}
	// Generated titles use the section's original position, not its
	// position after filtering.
	if string(raw.Sections[1].Title) != "Section 2" {
		t.Errorf("title 1 = %q", raw.Sections[1].Title)
	}
	if string(raw.Sections[2].Title) != "Section 3" {
		t.Errorf("title 2 = %q", raw.Sections[2].Title)
	}
}

func TestRepairDropsEmptySections(t *testing.T) {
	raw := &document.Raw{
		Sections: document.LenientSections{
			{Title: "Empty"},
			{Thoughts: document.LenientThoughts{thought("kept")}},
			{Title: "Also empty", Thoughts: document.LenientThoughts{}},
		},
	}
	Repair(raw)

	if len(raw.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(raw.Sections))
	}
	// The surviving section was second before filtering.
	if string(raw.Sections[0].Title) != "Section 2" {
		t.Errorf("title = %q", raw.Sections[0].Title)
	}
}

func TestRepairCoercesTakeaways(t *testing.T) {
	raw := &document.Raw{}
	Repair(raw)
	if raw.Takeaways == nil {
		t.Error("takeaways still nil")
	}
	if raw.Sections == nil {
		// An all-dropped or absent sections list stays an empty slice;
		// validation decides that this is fatal.
		t.Log("sections nil is acceptable for an absent list")
	}
}

func TestRepairNil(t *testing.T) {
	Repair(nil) // must not panic
}

func TestSchemaForStrictness(t *testing.T) {
	kinds := []Kind{KindRestructure, KindChapter, KindArc}
	names := map[Kind]string{
		KindRestructure: "ReadingDocument",
		KindChapter:     "ChapterDocument",
		KindArc:         "ArcProfile",
	}

	for _, kind := range kinds {
		name, schema := SchemaFor(kind)
		if name != names[kind] {
			t.Errorf("SchemaFor(%v) name = %q, want %q", kind, name, names[kind])
		}
		assertStrict(t, string(kind), schema)
	}
}

// assertStrict walks a schema checking every object node is closed and
// requires all of its properties.
func assertStrict(t *testing.T, path string, node map[string]interface{}) {
	t.Helper()

	if typ, _ := node["type"].(string); typ == "object" {
		if ap, ok := node["additionalProperties"].(bool); !ok || ap {
			t.Errorf("%s: additionalProperties not false", path)
		}
		props, _ := node["properties"].(map[string]interface{})
		required, _ := node["required"].([]string)
		reqSet := make(map[string]bool, len(required))
		for _, r := range required {
			reqSet[r] = true
		}
		// required may round-trip as []interface{} depending on how the
		// schema was produced.
		if ifaces, ok := node["required"].([]interface{}); ok {
			for _, r := range ifaces {
				if s, ok := r.(string); ok {
					reqSet[s] = true
				}
			}
		}
		for name := range props {
			if !reqSet[name] {
				t.Errorf("%s: property %q not required", path, name)
			}
		}
	}

	for _, key := range []string{"properties", "items"} {
		switch v := node[key].(type) {
		case map[string]interface{}:
			if key == "items" {
				assertStrict(t, path+".items", v)
				continue
			}
			for name, prop := range v {
				if pm, ok := prop.(map[string]interface{}); ok {
					assertStrict(t, path+"."+name, pm)
				}
			}
		}
	}
}

func TestSchemaForRestructureShape(t *testing.T) {
	_, schema := SchemaFor(KindRestructure)
	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("schema has no properties: %v", schema)
	}
	for _, want := range []string{"sections", "takeaways"} {
		if _, ok := props[want]; !ok {
			t.Errorf("restructure schema missing %q", want)
		}
	}
}
