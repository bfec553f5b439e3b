package session

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
	"github.com/nguyentantai21042004/kinetic-reader/internal/pipeline"
)

// Session tracks one source through processing and playback. A session
// holds the processed document once available; the manager keeps a
// persistent cache so reopening a source never reprocesses it.
type Session struct {
	ID        string
	SourceID  string
	Title     string
	Document  *document.Document
	FromCache bool
	CreatedAt time.Time
}

// Manager owns the active sessions.
type Manager interface {
	// Create starts a session for a source and returns it. The
	// document is nil until Process or ProcessWithChapters succeeds.
	Create(sourceID, title string) *Session

	// Get returns the session with the given id.
	Get(id string) (*Session, bool)

	// Process runs the transcript through the pipeline, consulting the
	// document cache first, and attaches the result to the session.
	Process(ctx context.Context, id, transcript string, opts pipeline.Options) (*document.Document, error)

	// ProcessWithChapters is Process for chaptered sources.
	ProcessWithChapters(ctx context.Context, id string, chapters []pipeline.Chapter, opts pipeline.Options) (*document.Document, error)

	// End discards the session state. The cached document survives.
	End(id string)
}
