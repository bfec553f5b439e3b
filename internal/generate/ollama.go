package generate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
)

const (
	// DefaultOllamaBase is the stock local Ollama endpoint.
	DefaultOllamaBase = "http://localhost:11434"

	healthTimeout   = 3 * time.Second
	generateTimeout = 120 * time.Second
)

// Ollama talks to a local Ollama server over its HTTP API.
type Ollama struct {
	baseURL    string
	client     *http.Client
	logger     logger.Logger
	options    *Options
	onProgress ProgressFunc
}

// OllamaOption customizes an Ollama client.
type OllamaOption func(*Ollama)

// WithProgress registers an advisory token-progress callback, invoked as
// streaming tokens arrive.
func WithProgress(fn ProgressFunc) OllamaOption {
	return func(o *Ollama) {
		o.onProgress = fn
	}
}

// WithContextWindow sets the num_ctx sent with every generate request.
// A non-positive n leaves the server default in place.
func WithContextWindow(n int) OllamaOption {
	return func(o *Ollama) {
		if n > 0 {
			o.options = &Options{ContextWindow: n}
		}
	}
}

// NewOllama creates an Ollama-backed Generator.
func NewOllama(baseURL string, log logger.Logger, opts ...OllamaOption) *Ollama {
	if baseURL == "" {
		baseURL = DefaultOllamaBase
	}
	o := &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type ollamaTagsResponse struct {
	Models []struct {
		Name    string `json:"name"`
		Size    int64  `json:"size"`
		Details struct {
			ParameterSize     string `json:"parameter_size"`
			QuantizationLevel string `json:"quantization_level"`
			Family            string `json:"family"`
		} `json:"details"`
	} `json:"models"`
}

// Health probes the listing endpoint. It never returns an error: an
// unreachable server simply reports Running=false.
func (o *Ollama) Health(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return Health{}
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return Health{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Health{}
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return Health{}
	}

	h := Health{Running: true}
	for _, m := range tags.Models {
		h.Models = append(h.Models, m.Name)
		h.Details = append(h.Details, ModelDetail{
			Name:         m.Name,
			ParamSize:    m.Details.ParameterSize,
			Quantization: m.Details.QuantizationLevel,
			Family:       m.Details.Family,
			SizeBytes:    m.Size,
		})
	}
	return h
}

// CheckModel resolves name against the installed models, matching either
// exactly or as a tag prefix ("qwen2.5" matches "qwen2.5:7b").
func (o *Ollama) CheckModel(ctx context.Context, name string) ModelCheck {
	h := o.Health(ctx)
	if !h.Running {
		return ModelCheck{}
	}
	for _, m := range h.Models {
		if m == name || strings.HasPrefix(m, name+":") {
			return ModelCheck{Available: true, ResolvedModel: m, Models: h.Models}
		}
	}
	return ModelCheck{Models: h.Models}
}

// Generate runs one restructuring request and returns the repaired raw
// document. The 120s hard timeout composes with ctx: whichever fires
// first aborts the in-flight request.
func (o *Ollama) Generate(ctx context.Context, req Request) (*document.Raw, error) {
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
func (o *Ollama) GenerateArc(ctx context.Context, req Request) (*document.RawArc, error) {
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

type ollamaGenerateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// generateText posts the request and returns the JSON text the model
// produced, following either the buffered or the streaming envelope.
func (o *Ollama) generateText(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	if req.Options == nil {
		req.Options = o.options
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	o.logger.Debug(ctx, "generate: model=%s prompt=%d bytes stream=%v", req.Model, len(req.Prompt), req.Stream)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &GenerationError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if req.Stream {
		return o.readStream(resp.Body)
	}

	var chunk ollamaGenerateChunk
	if err := json.NewDecoder(resp.Body).Decode(&chunk); err != nil {
		return "", &ParseError{Err: err}
	}
	return chunk.Response, nil
}

// readStream accumulates NDJSON response fragments, reporting token
// progress as they arrive.
func (o *Ollama) readStream(r io.Reader) (string, error) {
	var b strings.Builder
	tokens := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk ollamaGenerateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", &ParseError{Err: err}
		}
		b.WriteString(chunk.Response)
		tokens++
		if o.onProgress != nil {
			o.onProgress(tokens)
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &GenerationError{Err: err}
	}
	return b.String(), nil
}
