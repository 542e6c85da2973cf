package metrics

import "sync"

// MemoryObserver buffers events in memory; it backs tests and the run
// summary, never production metric shipping.
type MemoryObserver struct {
	mu     sync.Mutex
	Events []MetricsEvent
}

func NewMemoryObserver() *MemoryObserver {
	return &MemoryObserver{}
}

func (m *MemoryObserver) RecordEvent(ev MetricsEvent) {
	m.mu.Lock()
	m.Events = append(m.Events, ev)
	m.mu.Unlock()
}

// Snapshot copies the recorded events for inspection.
func (m *MemoryObserver) Snapshot() []MetricsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MetricsEvent, len(m.Events))
	copy(out, m.Events)
	return out
}

// Count returns how many events carry the given name.
func (m *MemoryObserver) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.Events {
		if ev.Name == name {
			n++
		}
	}
	return n
}
