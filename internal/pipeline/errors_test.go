package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"backend down", ErrBackendUnavailable, CodeBackendUnavailable},
		{"no models", fmt.Errorf("prepare: %w", ErrNoModelsInstalled), CodeNoModelsInstalled},
		{"model not found", ErrModelNotFound, CodeModelNotFound},
		{"invalid document", fmt.Errorf("section 1 has no title: %w", ErrProcessingFailed), CodeProcessingFailed},
		{
			"generation failure",
			fmt.Errorf("generate chunk 2/4: %w", &generate.GenerationError{StatusCode: 500, Err: errors.New("boom")}),
			CodeGenerationFailed,
		},
		{
			"malformed payload",
			fmt.Errorf("generate: %w", &generate.ParseError{Err: errors.New("bad json")}),
			CodeMalformedResponse,
		},
		{"canceled", context.Canceled, CodeAborted},
		{
			"canceled inside a generation error",
			&generate.GenerationError{Err: fmt.Errorf("do request: %w", context.Canceled)},
			CodeAborted,
		},
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), CodeAborted},
		{"unrecognized", errors.New("disk on fire"), CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
