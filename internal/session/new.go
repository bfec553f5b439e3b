package session

import (
	"sync"

	"github.com/nguyentantai21042004/kinetic-reader/internal/logger"
	"github.com/nguyentantai21042004/kinetic-reader/internal/pipeline"
	"github.com/nguyentantai21042004/kinetic-reader/internal/store"
)

type implManager struct {
	pipe   pipeline.Pipeline
	store  *store.Store
	logger logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a new Manager instance. st may be nil, in which case
// every Process call goes through the pipeline.
func New(pipe pipeline.Pipeline, st *store.Store, log logger.Logger) Manager {
	return &implManager{
		pipe:     pipe,
		store:    st,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}
