package emit

import "sync"

// BufferedEmitter captures events in memory, organized by graph, for tests
// and post-assembly inspection.
//
// All events are retained until cleared, so long-lived tooling should call
// Clear between assemblies.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // graphID -> events in emission order
}

// NewBufferedEmitter returns an empty in-memory emitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[string][]Event)}
}

// Emit appends the event to its graph's history.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.GraphID] = append(b.events[event.GraphID], event)
}

// History returns the captured events for a graph in emission order.
func (b *BufferedEmitter) History(graphID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	history := make([]Event, len(b.events[graphID]))
	copy(history, b.events[graphID])
	return history
}

// HistoryFilter selects a subset of a graph's history. Empty fields match
// everything; set fields are combined with AND.
type HistoryFilter struct {
	NodeID string
	Msg    string
}

// FilteredHistory returns the captured events for a graph matching the
// filter, in emission order.
func (b *BufferedEmitter) FilteredHistory(graphID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Event
	for _, ev := range b.events[graphID] {
		if filter.NodeID != "" && ev.NodeID != filter.NodeID {
			continue
		}
		if filter.Msg != "" && ev.Msg != filter.Msg {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Clear drops the history for one graph, or for all graphs when graphID is
// empty.
func (b *BufferedEmitter) Clear(graphID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if graphID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, graphID)
}
