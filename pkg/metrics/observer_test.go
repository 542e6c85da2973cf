package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMemoryObserverRecords(t *testing.T) {
	m := NewMemoryObserver()
	m.RecordEvent(MetricsEvent{Name: EventConversationAccepted, Value: 8})
	m.RecordEvent(MetricsEvent{Name: EventTurnGenerated, Value: 1.2})
	if len(m.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(m.Events))
	}
	if m.Count(EventConversationAccepted) != 1 {
		t.Fatalf("accepted count = %d, want 1", m.Count(EventConversationAccepted))
	}
}

func TestJSONLObserverWritesLines(t *testing.T) {
	var buf bytes.Buffer
	o := NewJSONLObserver(&buf)
	o.RecordEvent(MetricsEvent{
		Name:  EventAudioSynthesized,
		Time:  time.Now(),
		Value: 2.5,
		Tags:  map[string]string{"provider": "elevenlabs"},
	})

	line := strings.TrimSpace(buf.String())
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("not jsonl: %v", err)
	}
	if payload["name"] != EventAudioSynthesized {
		t.Fatalf("name = %v", payload["name"])
	}
	if payload["provider"] != "elevenlabs" {
		t.Fatalf("tag missing: %v", payload)
	}
}

func TestAsyncObserverDelivers(t *testing.T) {
	mem := NewMemoryObserver()
	a := NewAsyncObserver(mem, 8)
	for i := 0; i < 5; i++ {
		a.RecordEvent(MetricsEvent{Name: EventTurnGenerated})
	}

	deadline := time.After(time.Second)
	for {
		n := len(mem.Snapshot())
		if n == 5 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("delivered = %d, want 5", n)
		case <-time.After(5 * time.Millisecond):
		}
	}
	a.Close()
	a.RecordEvent(MetricsEvent{Name: EventTurnGenerated})
	if a.Dropped() != 0 {
		t.Fatalf("dropped = %d", a.Dropped())
	}
}
