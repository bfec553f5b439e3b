package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nguyentantai21042004/kinetic-reader/internal/generate"
	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
)

func TestParseParamSize(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"7.6B", 7.6},
		{"70b", 70},
		{"3.2B", 3.2},
		{"815M", 0.815},
		{"500K", 0.0005},
		{"7.6 B", 7.6},
		{"", 0},
		{"large", 0},
	}
	for _, tt := range tests {
		if got := parseParamSize(tt.label); got != tt.want {
			t.Errorf("parseParamSize(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func details(pairs ...string) []generate.ModelDetail {
	var out []generate.ModelDetail
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, generate.ModelDetail{Name: pairs[i], ParamSize: pairs[i+1]})
	}
	return out
}

func TestPickBestModel(t *testing.T) {
	tests := []struct {
		name    string
		details []generate.ModelDetail
		want    string
	}{
		{
			name:    "largest under the cap wins",
			details: details("llama3.2:3b", "3.2B", "qwen2.5:7b", "7.6B", "llama3.1:70b", "70B"),
			want:    "qwen2.5:7b",
		},
		{
			name:    "all over the cap falls back to smallest",
			details: details("llama3.1:70b", "70B", "qwen2.5:32b", "32B"),
			want:    "qwen2.5:32b",
		},
		{
			name:    "single model",
			details: details("llama3.2:3b", "3.2B"),
			want:    "llama3.2:3b",
		},
		{
			name:    "empty",
			details: nil,
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickBestModel(tt.details); got != tt.want {
				t.Errorf("pickBestModel = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeModelStore struct {
	saved     string
	saveErr   error
	loadErr   error
	saveCalls []string
}

func (f *fakeModelStore) SavedModel() (string, error) {
	return f.saved, f.loadErr
}

func (f *fakeModelStore) SaveModel(name string) error {
	f.saveCalls = append(f.saveCalls, name)
	if f.saveErr == nil {
		f.saved = name
	}
	return f.saveErr
}

func testHealth() generate.Health {
	return generate.Health{
		Running: true,
		Models:  []string{"llama3.2:3b", "qwen2.5:7b", "llama3.1:70b"},
		Details: details("llama3.2:3b", "3.2B", "qwen2.5:7b", "7.6B", "llama3.1:70b", "70B"),
	}
}

func newSelectPipeline(store ModelStore) *implPipeline {
	return &implPipeline{gen: &fakeGen{health: testHealth()}, models: store, logger: logger.New("error")}
}

func TestSelectModelRequested(t *testing.T) {
	p := newSelectPipeline(nil)

	got, err := p.selectModel(context.Background(), testHealth(), "llama3.1:70b")
	if err != nil || got != "llama3.1:70b" {
		t.Errorf("requested exact = %q, %v", got, err)
	}

	got, err = p.selectModel(context.Background(), testHealth(), "llama3.2")
	if err != nil || got != "llama3.2:3b" {
		t.Errorf("requested prefix = %q, %v", got, err)
	}

	_, err = p.selectModel(context.Background(), testHealth(), "mistral")
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("missing requested model err = %v", err)
	}
}

// Model verification goes through the backend's CheckModel so prefix
// resolution stays the backend's business.
func TestSelectModelVerifiesThroughBackend(t *testing.T) {
	gen := &fakeGen{health: testHealth()}
	p := &implPipeline{gen: gen, logger: logger.New("error")}

	got, err := p.selectModel(context.Background(), gen.health, "qwen2.5")
	if err != nil || got != "qwen2.5:7b" {
		t.Fatalf("selectModel = %q, %v", got, err)
	}
	if gen.checkCalls != 1 {
		t.Errorf("CheckModel calls = %d, want 1", gen.checkCalls)
	}
}

func TestSelectModelNoModels(t *testing.T) {
	p := newSelectPipeline(nil)
	_, err := p.selectModel(context.Background(), generate.Health{Running: true}, "")
	if !errors.Is(err, ErrNoModelsInstalled) {
		t.Errorf("err = %v, want ErrNoModelsInstalled", err)
	}
}

func TestSelectModelAutoSelectsAndPersists(t *testing.T) {
	store := &fakeModelStore{}
	p := newSelectPipeline(store)

	got, err := p.selectModel(context.Background(), testHealth(), "")
	if err != nil || got != "qwen2.5:7b" {
		t.Fatalf("auto-select = %q, %v", got, err)
	}
	if len(store.saveCalls) != 1 || store.saveCalls[0] != "qwen2.5:7b" {
		t.Errorf("save calls = %v", store.saveCalls)
	}
}

func TestSelectModelReusesSaved(t *testing.T) {
	store := &fakeModelStore{saved: "llama3.2:3b"}
	p := newSelectPipeline(store)

	got, err := p.selectModel(context.Background(), testHealth(), "")
	if err != nil || got != "llama3.2:3b" {
		t.Errorf("saved reuse = %q, %v", got, err)
	}
	if len(store.saveCalls) != 0 {
		t.Errorf("saved model re-persisted: %v", store.saveCalls)
	}
}

func TestSelectModelSavedUninstalled(t *testing.T) {
	// The saved model was removed from the backend between runs; the
	// pipeline must fall back to auto-selection and persist the new
	// choice.
	store := &fakeModelStore{saved: "mistral:7b"}
	p := newSelectPipeline(store)

	got, err := p.selectModel(context.Background(), testHealth(), "")
	if err != nil || got != "qwen2.5:7b" {
		t.Errorf("self-heal = %q, %v", got, err)
	}
	if store.saved != "qwen2.5:7b" {
		t.Errorf("new choice not persisted: %q", store.saved)
	}
}

func TestSelectModelStoreFailuresAreNonFatal(t *testing.T) {
	store := &fakeModelStore{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	p := newSelectPipeline(store)

	got, err := p.selectModel(context.Background(), testHealth(), "")
	if err != nil || got != "qwen2.5:7b" {
		t.Errorf("selection with broken store = %q, %v", got, err)
	}
}
