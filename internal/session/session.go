package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/pipeline"
	"github.com/nguyentantai21042004/kinetic-reader/internal/store"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

func (m *implManager) Create(sourceID, title string) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		Title:     title,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug(context.Background(), "Session %s created for source %s", s.ID, sourceID)
	return s
}

func (m *implManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *implManager) Process(ctx context.Context, id, transcript string, opts pipeline.Options) (*document.Document, error) {
	return m.run(ctx, id, opts, func(s *Session) (*document.Document, error) {
		return m.pipe.ProcessTranscript(ctx, transcript, opts)
	})
}

func (m *implManager) ProcessWithChapters(ctx context.Context, id string, chapters []pipeline.Chapter, opts pipeline.Options) (*document.Document, error) {
	return m.run(ctx, id, opts, func(s *Session) (*document.Document, error) {
		return m.pipe.ProcessWithChapters(ctx, chapters, opts)
	})
}

// run resolves the session, serves a cached document when one exists
// for the source, and otherwise processes and caches the result.
func (m *implManager) run(ctx context.Context, id string, opts pipeline.Options, process func(*Session) (*document.Document, error)) (*document.Document, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	if m.store != nil {
		saved, err := m.store.GetDocument(s.SourceID)
		if err == nil {
			m.logger.Info(ctx, "Serving cached document for source %s", s.SourceID)
			m.attach(s, saved.Document, true)
			return saved.Document, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			m.logger.Warn(ctx, "Document cache lookup failed for %s: %v", s.SourceID, err)
		}
	}

	doc, err := process(s)
	if err != nil {
		return nil, fmt.Errorf("process source %s: %w", s.SourceID, err)
	}

	if m.store != nil {
		if _, err := m.store.SaveDocument(s.SourceID, s.Title, opts.Model, doc); err != nil {
			// The document is still usable; caching is best effort.
			m.logger.Warn(ctx, "Failed to cache document for %s: %v", s.SourceID, err)
		}
	}

	m.attach(s, doc, false)
	return doc, nil
}

func (m *implManager) attach(s *Session, doc *document.Document, fromCache bool) {
	m.mu.Lock()
	s.Document = doc
	s.FromCache = fromCache
	m.mu.Unlock()
}

func (m *implManager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
