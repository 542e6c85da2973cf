package metrics

import "time"

// Event names emitted by the generation engine.
const (
	EventConversationAccepted = "conversation_accepted"
	EventConversationRetried  = "conversation_retried"
	EventConversationSkipped  = "conversation_skipped"
	EventTurnGenerated        = "turn_generated"
	EventAudioSynthesized     = "audio_synthesized"
	EventRateLimit            = "rate_limit"
	EventBreakerOpen          = "breaker_open"
	EventBreakerClose         = "breaker_close"
	EventBreakerDenied        = "breaker_denied"
)

type MetricsEvent struct {
	Name   string
	Time   time.Time
	Value  float64
	Tags   map[string]string
	Fields map[string]any
}

type Observer interface {
	RecordEvent(ev MetricsEvent)
}

type Flusher interface {
	Flush() error
}

type NoopObserver struct{}

func (NoopObserver) RecordEvent(MetricsEvent) {}
