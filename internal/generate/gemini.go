package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
)

// Gemini is an alternate Generator backed by the Gemini API. It rotates
// through the supplied API keys on quota errors. There is no local model
// install concept, so Health and CheckModel report the configured model.
type Gemini struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Gemini-backed Generator.
func NewGemini(apiKeys []string, model string, log logger.Logger) *Gemini {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Health reports whether the client is usable at all; the configured
// model is the only entry in the listing.
func (g *Gemini) Health(ctx context.Context) Health {
	if len(g.apiKeys) == 0 {
		return Health{}
	}
	return Health{
		Running: true,
		Models:  []string{g.model},
		Details: []ModelDetail{{Name: g.model, Family: "gemini"}},
	}
}

// CheckModel resolves any request for the configured model.
func (g *Gemini) CheckModel(ctx context.Context, name string) ModelCheck {
	h := g.Health(ctx)
	if !h.Running {
		return ModelCheck{}
	}
	if name == g.model || name == "" {
		return ModelCheck{Available: true, ResolvedModel: g.model, Models: h.Models}
	}
	return ModelCheck{Models: h.Models}
}

// Generate runs one restructuring request and returns the repaired raw
// document.
func (g *Gemini) Generate(ctx context.Context, req Request) (*document.Raw, error) {
	payload, err := g.generateText(ctx, req)
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
func (g *Gemini) GenerateArc(ctx context.Context, req Request) (*document.RawArc, error) {
	payload, err := g.generateText(ctx, req)
	if err != nil {
		return nil, err
	}
	var arc document.RawArc
	if err := json.Unmarshal([]byte(payload), &arc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &arc, nil
}

// generateText sends the request to Gemini and returns the JSON text.
// Rotates API keys on 429 / quota errors.
func (g *Gemini) generateText(ctx context.Context, req Request) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("no Gemini API keys configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", &GenerationError{Err: err}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", &GenerationError{Err: fmt.Errorf("empty response from Gemini")}
	}

	return "", &GenerationError{Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (g *Gemini) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
