package timeline

import (
	"sort"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

// EventType names the notifications a Timeline emits.
type EventType string

const (
	EventPlay          EventType = "play"
	EventPause         EventType = "pause"
	EventThoughtChange EventType = "thoughtChange"
	EventSectionChange EventType = "sectionChange"
	EventSectionEnd    EventType = "sectionEnd"
	EventTick          EventType = "tick"
	EventEnd           EventType = "end"
	EventRateChange    EventType = "rateChange"
)

// Event carries the payload of one notification. Fields are populated
// according to Type; unspecified fields are zero.
type Event struct {
	Type EventType

	// thoughtChange
	Index     int
	PrevIndex int
	Thought   *FlatThought

	// sectionChange, sectionEnd
	SectionIndex int
	Section      *document.Section

	// tick
	Time          float64
	Progress      float64
	TotalProgress float64

	// rateChange
	Rate float64
}

// Listener receives events synchronously on the goroutine that produced
// them. Listeners must not block; sectionEnd is guaranteed to arrive
// before the sectionChange that follows it.
type Listener func(Event)

// On subscribes fn to an event type and returns a subscription id for Off.
func (t *Timeline) On(et EventType, fn Listener) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listeners[et] == nil {
		t.listeners[et] = make(map[int]Listener)
	}
	t.nextSubID++
	t.listeners[et][t.nextSubID] = fn
	return t.nextSubID
}

// Off removes a subscription.
func (t *Timeline) Off(et EventType, id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.listeners[et], id)
}

// emit delivers events in order. It must be called without t.mu held so
// listeners can call back into the Timeline.
func (t *Timeline) emit(events ...Event) {
	for _, ev := range events {
		t.mu.Lock()
		subs := t.listeners[ev.Type]
		fns := make([]Listener, 0, len(subs))
		ids := make([]int, 0, len(subs))
		for id := range subs {
			ids = append(ids, id)
		}
		// Map order is random; deliver in subscription order.
		sort.Ints(ids)
		for _, id := range ids {
			fns = append(fns, subs[id])
		}
		t.mu.Unlock()

		for _, fn := range fns {
			fn(ev)
		}
	}
}
