package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDoc() *document.Document {
	return &document.Document{
		Sections: []document.Section{{
			Title: "Opening",
			Recap: "It begins",
			Thoughts: []document.Thought{
				{Text: "First beat.", Mode: document.ModeFlow, Energy: document.EnergyCalmIntro, Complexity: 0.3, Emphasis: []string{"First"}},
			},
		}},
		Takeaways: []string{"one thing"},
	}
}

func TestSavedModelRoundTrip(t *testing.T) {
	s := newTestStore(t)

	got, err := s.SavedModel()
	if err != nil {
		t.Fatalf("SavedModel: %v", err)
	}
	if got != "" {
		t.Fatalf("SavedModel on empty store = %q, want empty", got)
	}

	if err := s.SaveModel("qwen2.5:7b"); err != nil {
		t.Fatalf("SaveModel: %v", err)
	}
	if err := s.SaveModel("llama3.2:3b"); err != nil {
		t.Fatalf("SaveModel overwrite: %v", err)
	}

	got, err = s.SavedModel()
	if err != nil {
		t.Fatalf("SavedModel: %v", err)
	}
	if got != "llama3.2:3b" {
		t.Errorf("SavedModel = %q, want llama3.2:3b", got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	doc := sampleDoc()

	saved, err := s.SaveDocument("video-abc", "How It Works", "qwen2.5:7b", doc)
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved document has empty id")
	}

	got, err := s.GetDocument("video-abc")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Title != "How It Works" || got.Model != "qwen2.5:7b" {
		t.Errorf("metadata = %q/%q", got.Title, got.Model)
	}
	if len(got.Document.Sections) != 1 || got.Document.Sections[0].Thoughts[0].Text != "First beat." {
		t.Errorf("document body did not round-trip: %+v", got.Document)
	}
	if len(got.Document.Takeaways) != 1 {
		t.Errorf("takeaways = %v", got.Document.Takeaways)
	}
}

func TestSaveDocumentReplacesSameSource(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveDocument("vid", "Old", "m1", sampleDoc()); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if _, err := s.SaveDocument("vid", "New", "m2", sampleDoc()); err != nil {
		t.Fatalf("SaveDocument replace: %v", err)
	}

	got, err := s.GetDocument("vid")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Title != "New" || got.Model != "m2" {
		t.Errorf("got %q/%q after replace, want New/m2", got.Title, got.Model)
	}

	docs, err := s.ListDocuments(10)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("ListDocuments returned %d rows, want 1", len(docs))
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetDocument("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDocument error = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveDocument("vid", "T", "m", sampleDoc()); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if err := s.DeleteDocument("vid"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if err := s.DeleteDocument("vid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
