package timeline

import (
	"math"
	"time"
)

// Play starts the frame-driven clock. Idempotent: calling it while
// already playing is a no-op and emits nothing.
func (t *Timeline) Play() {
	t.mu.Lock()
	if t.playing {
		t.mu.Unlock()
		return
	}
	t.playing = true
	t.lastFrame = t.now()
	if !t.manual {
		t.stopCh = make(chan struct{})
		go t.run(t.stopCh)
	}
	t.mu.Unlock()

	t.emit(Event{Type: EventPlay})
}

// Pause halts the clock.
func (t *Timeline) Pause() {
	t.mu.Lock()
	t.playing = false
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	t.mu.Unlock()

	t.emit(Event{Type: EventPause})
}

// TogglePlay dispatches to Play or Pause.
func (t *Timeline) TogglePlay() {
	if t.Playing() {
		t.Pause()
	} else {
		t.Play()
	}
}

func (t *Timeline) run(stop chan struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.Step()
		}
	}
}

// Step advances the clock by the wall time elapsed since the previous
// frame, scaled by rate, and emits the resulting events. It is driven
// by the internal ticker, or by the caller under WithManualTicks.
func (t *Timeline) Step() {
	t.mu.Lock()
	if !t.playing {
		t.mu.Unlock()
		return
	}

	now := t.now()
	delta := float64(now.Sub(t.lastFrame).Microseconds()) / 1000 * t.rate
	t.lastFrame = now
	t.currentTime += delta

	var events []Event

	newIndex := t.indexAtTime(t.currentTime)
	if newIndex != t.currentIndex {
		prevIndex := t.currentIndex
		// Reset the guard so sectionEnd can fire again on a later visit.
		t.lastSectionEndEmitted = -1
		t.currentIndex = newIndex
		events = append(events, Event{
			Type:      EventThoughtChange,
			Index:     newIndex,
			PrevIndex: prevIndex,
			Thought:   &t.thoughts[newIndex],
		})
		if t.thoughts[newIndex].SectionIndex != t.thoughts[prevIndex].SectionIndex {
			si := t.thoughts[newIndex].SectionIndex
			events = append(events, Event{
				Type:         EventSectionChange,
				SectionIndex: si,
				Section:      &t.sections[si],
			})
		}
	}

	if t.currentTime >= t.totalDuration {
		t.playing = false
		if t.stopCh != nil {
			close(t.stopCh)
			t.stopCh = nil
		}
		events = append(events, Event{Type: EventEnd})
		t.mu.Unlock()
		t.emit(events...)
		return
	}

	// sectionEnd fires the first time the clock crosses into the recap
	// gap of a section-closing thought. It precedes the sectionChange
	// that follows on a later frame, so the renderer shows transition
	// content during the reserved gap rather than after it.
	if t.currentIndex < len(t.schedule) {
		sched := t.schedule[t.currentIndex]
		th := &t.thoughts[t.currentIndex]
		if th.LastInSection && th.SectionRecap != "" &&
			t.currentTime >= sched.StartMs+sched.DisplayMs &&
			t.lastSectionEndEmitted != t.currentIndex {
			t.lastSectionEndEmitted = t.currentIndex
			events = append(events, Event{
				Type:         EventSectionEnd,
				SectionIndex: th.SectionIndex,
				Section:      &t.sections[th.SectionIndex],
			})
		}

		progress := math.Min(1, (t.currentTime-sched.StartMs)/sched.DisplayMs)
		events = append(events, Event{
			Type:          EventTick,
			Time:          t.currentTime,
			Index:         t.currentIndex,
			Thought:       th,
			Progress:      progress,
			TotalProgress: t.currentTime / t.totalDuration,
		})
	}

	t.mu.Unlock()
	t.emit(events...)
}

// Next jumps to the start of the following thought.
func (t *Timeline) Next() {
	t.mu.Lock()
	if t.currentIndex >= len(t.thoughts)-1 {
		t.mu.Unlock()
		return
	}
	prev := t.currentIndex
	t.currentIndex++
	t.currentTime = t.schedule[t.currentIndex].StartMs
	events := t.seekEvents(prev)
	t.mu.Unlock()
	t.emit(events...)
}

// Prev jumps to the start of the preceding thought.
func (t *Timeline) Prev() {
	t.mu.Lock()
	if t.currentIndex <= 0 {
		t.mu.Unlock()
		return
	}
	prev := t.currentIndex
	t.currentIndex--
	t.currentTime = t.schedule[t.currentIndex].StartMs
	events := t.seekEvents(prev)
	t.mu.Unlock()
	t.emit(events...)
}

// SeekToIndex jumps to the start of the given thought. Out-of-range
// indices are ignored.
func (t *Timeline) SeekToIndex(index int) {
	t.mu.Lock()
	if index < 0 || index >= len(t.thoughts) {
		t.mu.Unlock()
		return
	}
	prev := t.currentIndex
	t.currentIndex = index
	t.currentTime = t.schedule[index].StartMs
	events := t.seekEvents(prev)
	t.mu.Unlock()
	t.emit(events...)
}

// SeekToTime jumps the clock to timeMs, clamped into the schedule, and
// re-derives the active index.
func (t *Timeline) SeekToTime(timeMs float64) {
	t.mu.Lock()
	if len(t.schedule) == 0 {
		t.mu.Unlock()
		return
	}
	prev := t.currentIndex
	t.currentTime = math.Max(0, math.Min(timeMs, t.totalDuration-1))
	t.currentIndex = t.indexAtTime(t.currentTime)
	events := t.seekEvents(prev)
	t.mu.Unlock()
	t.emit(events...)
}

// seekEvents builds the unified seek notification set: thoughtChange,
// sectionChange when a boundary was crossed, and a tick so progress UI
// stays correct even while paused. Callers hold t.mu.
func (t *Timeline) seekEvents(prevIndex int) []Event {
	events := []Event{{
		Type:      EventThoughtChange,
		Index:     t.currentIndex,
		PrevIndex: prevIndex,
		Thought:   &t.thoughts[t.currentIndex],
	}}

	if t.thoughts[t.currentIndex].SectionIndex != t.thoughts[prevIndex].SectionIndex {
		si := t.thoughts[t.currentIndex].SectionIndex
		events = append(events, Event{
			Type:         EventSectionChange,
			SectionIndex: si,
			Section:      &t.sections[si],
		})
	}

	totalProgress := 0.0
	if t.totalDuration > 0 {
		totalProgress = t.currentTime / t.totalDuration
	}
	events = append(events, Event{
		Type:          EventTick,
		Time:          t.currentTime,
		Index:         t.currentIndex,
		Thought:       &t.thoughts[t.currentIndex],
		TotalProgress: totalProgress,
	})
	return events
}

// SetRate sets the playback rate multiplier, clamped to [0.25, 4].
func (t *Timeline) SetRate(rate float64) {
	t.mu.Lock()
	t.rate = math.Max(0.25, math.Min(4, rate))
	r := t.rate
	t.mu.Unlock()
	t.emit(Event{Type: EventRateChange, Rate: r})
}

// Rate returns the playback rate multiplier.
func (t *Timeline) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rate
}

// SetWpm rebuilds the schedule at a new reading speed, anchoring the
// clock to the start of the thought that was active. An anchored jump
// beats a proportional rescale: the displayed thought must not move
// mid-sentence when the user changes speed.
func (t *Timeline) SetWpm(wpm int) {
	t.mu.Lock()
	if wpm <= 0 {
		t.mu.Unlock()
		return
	}
	t.wpm = wpm
	saved := t.currentIndex
	t.buildSchedule()
	if saved < len(t.schedule) {
		t.currentTime = t.schedule[saved].StartMs
	}

	var events []Event
	if !t.playing && len(t.schedule) > 0 && t.currentIndex < len(t.thoughts) {
		totalProgress := 0.0
		if t.totalDuration > 0 {
			totalProgress = t.currentTime / t.totalDuration
		}
		events = append(events, Event{
			Type:          EventTick,
			Time:          t.currentTime,
			Index:         t.currentIndex,
			Thought:       &t.thoughts[t.currentIndex],
			TotalProgress: totalProgress,
		})
	}
	t.mu.Unlock()
	t.emit(events...)
}

// Wpm returns the current reading speed.
func (t *Timeline) Wpm() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wpm
}

// Destroy stops playback and drops all listeners.
func (t *Timeline) Destroy() {
	t.Pause()
	t.mu.Lock()
	t.listeners = make(map[EventType]map[int]Listener)
	t.mu.Unlock()
}
