package generate

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Response schemas for backends with structured-output support. These
// mirror the JSON contracts described in the system prompts.

type thoughtSchema struct {
	Text       string   `json:"text"`
	Emphasis   []string `json:"emphasis"`
	Mode       string   `json:"mode"`
	Energy     string   `json:"energy"`
	Complexity float64  `json:"complexity"`
}

type sectionSchema struct {
	Title    string          `json:"title"`
	Recap    string          `json:"recap"`
	Thoughts []thoughtSchema `json:"thoughts"`
}

type restructureSchema struct {
	Sections  []sectionSchema `json:"sections"`
	Takeaways []string        `json:"takeaways"`
}

type chapterSchema struct {
	Thoughts []thoughtSchema `json:"thoughts"`
	Recap    string          `json:"recap"`
}

type arcSchema struct {
	ArcShape           string  `json:"arc_shape"`
	StagingEndPct      float64 `json:"staging_end_pct"`
	TensionStartPct    float64 `json:"tension_start_pct"`
	ClimaxZoneStartPct float64 `json:"climax_zone_start_pct"`
	ClimaxZoneEndPct   float64 `json:"climax_zone_end_pct"`
	ResolutionStartPct float64 `json:"resolution_start_pct"`
}

// SchemaFor returns the schema name and object for a request kind.
func SchemaFor(kind Kind) (string, map[string]interface{}) {
	switch kind {
	case KindChapter:
		return "ChapterDocument", generateSchema[chapterSchema]()
	case KindArc:
		return "ArcProfile", generateSchema[arcSchema]()
	default:
		return "ReadingDocument", generateSchema[restructureSchema]()
	}
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	schemaObj, err := schemaToMap(schema)
	if err != nil {
		panic(err)
	}
	ensureStrictCompliance(schemaObj)
	return schemaObj
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// ensureStrictCompliance marks every object closed and every property
// required, which strict json_schema response formats insist on.
func ensureStrictCompliance(schema map[string]interface{}) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false

		if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
			var requiredFields []string
			for propName := range properties {
				requiredFields = append(requiredFields, propName)
			}
			if len(requiredFields) > 0 {
				schema[requiredKey] = requiredFields
			}
		}
	}

	if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				ensureStrictCompliance(propMap)
			}
		}
	}

	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		ensureStrictCompliance(items)
	}

	if additionalProps, ok := schema[additionalPropertiesKey].(map[string]interface{}); ok {
		ensureStrictCompliance(additionalProps)
	}
}
