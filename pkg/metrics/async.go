package metrics

import (
	"sync"
	"sync/atomic"
)

// AsyncObserver decouples event recording from the generation hot path.
// Events are handed to the inner observer on a single drain goroutine;
// when the buffer is full the event is dropped and counted, never blocked
// on.
type AsyncObserver struct {
	inner   Observer
	ch      chan MetricsEvent
	dropped int64
	closed  atomic.Bool
	once    sync.Once
}

func NewAsyncObserver(inner Observer, buffer int) *AsyncObserver {
	if buffer <= 0 {
		buffer = 256
	}
	a := &AsyncObserver{
		inner: inner,
		ch:    make(chan MetricsEvent, buffer),
	}
	go a.drain()
	return a
}

func (a *AsyncObserver) RecordEvent(ev MetricsEvent) {
	if a == nil || a.closed.Load() {
		return
	}
	select {
	case a.ch <- ev:
	default:
		atomic.AddInt64(&a.dropped, 1)
	}
}

// Dropped reports how many events were discarded on a full buffer.
func (a *AsyncObserver) Dropped() int64 {
	return atomic.LoadInt64(&a.dropped)
}

// Close stops intake. Buffered events still reach the inner observer.
func (a *AsyncObserver) Close() {
	if a == nil {
		return
	}
	a.once.Do(func() {
		a.closed.Store(true)
		close(a.ch)
	})
}

func (a *AsyncObserver) drain() {
	for ev := range a.ch {
		a.inner.RecordEvent(ev)
	}
}
