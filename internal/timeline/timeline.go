// Package timeline converts a processed document into a deterministic
// playback schedule and drives the play/pause/seek state machine that
// external renderers consume through events.
package timeline

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

const (
	// DefaultWpm is the reading speed used when the caller passes none.
	DefaultWpm = 250

	// minDisplayMs is the floor for a thought's on-screen time.
	minDisplayMs = 1200

	// breathePauseMs is the fixed pause inserted before a thought that
	// opens a new section.
	breathePauseMs = 2500

	// minRecapReadMs is the floor for reading a section recap.
	minRecapReadMs = 2000

	// punctuationBonusMs is added per sentence boundary beyond the first.
	punctuationBonusMs = 200

	// frameInterval is the tick cadence of the playback clock.
	frameInterval = 16 * time.Millisecond
)

// energyMultipliers scale display time by rhetorical register: climaxes
// and emotional beats linger, tension and enumerations move.
var energyMultipliers = map[document.Energy]float64{
	document.EnergyClimax:          1.4,
	document.EnergyEmotional:       1.3,
	document.EnergyBuildingTension: 0.9,
	document.EnergyEnumeration:     0.85,
}

// FlatThought is a document thought annotated with its position in the
// section structure.
type FlatThought struct {
	document.Thought
	SectionIndex   int
	SectionTitle   string
	SectionRecap   string
	FirstInSection bool
	LastInSection  bool
}

// ScheduledThought is the derived timing of one thought. StartMs already
// includes the thought's own breathe pause; EndMs includes its recap
// pause, so consecutive entries are exactly contiguous.
type ScheduledThought struct {
	Index          int
	StartMs        float64
	EndMs          float64
	DisplayMs      float64
	BreathePauseMs float64
	RecapPauseMs   float64
}

// Timeline owns the schedule and the playback position exclusively.
// Consumers read through events and accessors and never mutate schedule
// state directly. All methods are safe for concurrent use; events are
// delivered synchronously in order on the calling goroutine.
type Timeline struct {
	mu sync.Mutex

	thoughts []FlatThought
	sections []document.Section
	schedule []ScheduledThought

	currentIndex  int
	currentTime   float64
	wpm           int
	rate          float64
	playing       bool
	totalDuration float64

	lastFrame             time.Time
	lastSectionEndEmitted int

	now    func() time.Time
	manual bool
	stopCh chan struct{}

	listeners map[EventType]map[int]Listener
	nextSubID int
}

// Option customizes a Timeline.
type Option func(*Timeline)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timeline) {
		t.now = now
	}
}

// WithManualTicks disables the internal frame goroutine; the caller
// drives playback by calling Step.
func WithManualTicks() Option {
	return func(t *Timeline) {
		t.manual = true
	}
}

// New creates an empty Timeline.
func New(opts ...Option) *Timeline {
	t := &Timeline{
		wpm:                   DefaultWpm,
		rate:                  1.0,
		now:                   time.Now,
		lastSectionEndEmitted: -1,
		listeners:             make(map[EventType]map[int]Listener),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load flattens the document and builds a fresh schedule at the given
// reading speed, resetting the playback position.
func (t *Timeline) Load(doc *document.Document, wpm int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if wpm > 0 {
		t.wpm = wpm
	}
	t.sections = doc.Sections
	t.thoughts = t.thoughts[:0]

	for si := range doc.Sections {
		sec := &doc.Sections[si]
		for ti := range sec.Thoughts {
			t.thoughts = append(t.thoughts, FlatThought{
				Thought:        sec.Thoughts[ti],
				SectionIndex:   si,
				SectionTitle:   sec.Title,
				SectionRecap:   sec.Recap,
				FirstInSection: ti == 0,
				LastInSection:  ti == len(sec.Thoughts)-1,
			})
		}
	}

	t.buildSchedule()
	t.currentIndex = 0
	t.currentTime = 0
	t.lastSectionEndEmitted = -1
}

// buildSchedule recomputes the whole schedule from the flattened
// thoughts and the current wpm. It is a pure function of those inputs
// and always replaces the schedule atomically. Callers hold t.mu.
func (t *Timeline) buildSchedule() {
	t.schedule = make([]ScheduledThought, 0, len(t.thoughts))
	clock := 0.0

	for i := range t.thoughts {
		th := &t.thoughts[i]

		wordCount := len(strings.Fields(th.Text))
		baseMs := float64(wordCount) / float64(t.wpm) * 60000

		complexityMultiplier := 1 + (th.Complexity-0.5)*0.4
		energyMultiplier := 1.0
		if m, ok := energyMultipliers[th.Energy]; ok {
			energyMultiplier = m
		}
		punctuationBonus := float64(maxInt(0, countSentenceMarks(th.Text)-1)) * punctuationBonusMs
		displayMs := math.Max(minDisplayMs, baseMs*complexityMultiplier*energyMultiplier+punctuationBonus)

		breathe := 0.0
		if th.FirstInSection && i > 0 {
			breathe = breathePauseMs
		}

		// The recap pause reserves reading time for the recap plus a
		// fixed breathe window; the renderer shows transition UI in
		// this gap after displayMs.
		recapPause := 0.0
		if th.LastInSection && th.SectionRecap != "" {
			recapWords := len(strings.Fields(th.SectionRecap))
			readMs := math.Max(minRecapReadMs, float64(recapWords)/float64(t.wpm)*60000)
			recapPause = readMs + breathePauseMs
		}

		start := clock + breathe
		end := start + displayMs

		t.schedule = append(t.schedule, ScheduledThought{
			Index:          i,
			StartMs:        start,
			EndMs:          end + recapPause,
			DisplayMs:      displayMs,
			BreathePauseMs: breathe,
			RecapPauseMs:   recapPause,
		})

		clock = end + recapPause
	}

	t.totalDuration = clock
}

// indexAtTime returns the last schedule entry whose start is at or
// before timeMs. The schedule is sorted by construction, so a backward
// scan finds it. Callers hold t.mu.
func (t *Timeline) indexAtTime(timeMs float64) int {
	for i := len(t.schedule) - 1; i >= 0; i-- {
		if timeMs >= t.schedule[i].StartMs {
			return i
		}
	}
	return 0
}

// Thoughts returns the flattened thought list.
func (t *Timeline) Thoughts() []FlatThought {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.thoughts
}

// Schedule returns the current schedule.
func (t *Timeline) Schedule() []ScheduledThought {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.schedule
}

// CurrentIndex returns the active thought index.
func (t *Timeline) CurrentIndex() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentIndex
}

// CurrentTime returns the playback clock position in milliseconds.
func (t *Timeline) CurrentTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentTime
}

// TotalDuration returns the full schedule length in milliseconds.
func (t *Timeline) TotalDuration() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalDuration
}

// Playing reports whether the clock is advancing.
func (t *Timeline) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// GetRemainingTime returns the milliseconds left at the current position.
func (t *Timeline) GetRemainingTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return math.Max(0, t.totalDuration-t.currentTime)
}

// VideoSavings compares reading time against the source video duration.
type VideoSavings struct {
	VideoDuration float64
	ReadingTime   float64
	SavedSeconds  float64
}

// GetVideoSavings reports how much time reading saves over watching.
func (t *Timeline) GetVideoSavings(videoDurationSec float64) VideoSavings {
	t.mu.Lock()
	defer t.mu.Unlock()
	reading := t.totalDuration / 1000
	return VideoSavings{
		VideoDuration: videoDurationSec,
		ReadingTime:   reading,
		SavedSeconds:  math.Max(0, videoDurationSec-reading),
	}
}

func countSentenceMarks(text string) int {
	n := 0
	inRun := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inRun {
				n++
				inRun = true
			}
		default:
			inRun = false
		}
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
