package generate

import (
	"context"
	"encoding/json"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
)

// OpenAI is a Generator for any OpenAI-compatible endpoint. Responses are
// constrained to the request's schema via strict structured output, so
// the repair pass usually has nothing to fix. Like every core backend it
// never retries; a failed call propagates to the pipeline.
type OpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI creates an OpenAI-backed Generator. baseURL may be empty for
// the hosted API or point at any compatible server.
func NewOpenAI(baseURL, apiKey, model string, log logger.Logger) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAI{
		client: &client,
		model:  model,
		logger: log,
	}
}

// Health reports whether the client is configured; the configured model
// is the only entry in the listing.
func (o *OpenAI) Health(ctx context.Context) Health {
	if o.model == "" {
		return Health{}
	}
	return Health{
		Running: true,
		Models:  []string{o.model},
		Details: []ModelDetail{{Name: o.model}},
	}
}

// CheckModel resolves any request for the configured model.
func (o *OpenAI) CheckModel(ctx context.Context, name string) ModelCheck {
	h := o.Health(ctx)
	if !h.Running {
		return ModelCheck{}
	}
	if name == o.model || name == "" {
		return ModelCheck{Available: true, ResolvedModel: o.model, Models: h.Models}
	}
	return ModelCheck{Models: h.Models}
}

// Generate runs one restructuring request and returns the repaired raw
// document.
func (o *OpenAI) Generate(ctx context.Context, req Request) (*document.Raw, error) {
	payload, err := o.generateText(ctx, req)
	if err != nil {
		return nil, err
	}
	var raw document.Raw
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	Repair(&raw)
	return &raw, nil
}

// GenerateArc runs one arc-analysis request.
func (o *OpenAI) GenerateArc(ctx context.Context, req Request) (*document.RawArc, error) {
	payload, err := o.generateText(ctx, req)
	if err != nil {
		return nil, err
	}
	var arc document.RawArc
	if err := json.Unmarshal([]byte(payload), &arc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &arc, nil
}

func (o *OpenAI) generateText(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	schemaName, schema := SchemaFor(req.Kind)
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:   schemaName,
			Schema: schema,
			Strict: openai.Bool(true),
			Type:   "json_schema",
		},
	}

	model := req.Model
	if model == "" {
		model = o.model
	}

	params := responses.ResponseNewParams{
		Model:        model,
		Instructions: openai.String(req.System),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Prompt, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	o.logger.Debug(ctx, "generate: model=%s prompt=%d bytes schema=%s", model, len(req.Prompt), schemaName)

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return resp.OutputText(), nil
}
