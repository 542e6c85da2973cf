package tts

import "context"

// Quality tiers as declared by each provider.
const (
	QualityVeryHigh = "very_high"
	QualityHigh     = "high"
	QualityBasic    = "basic"
)

// Request is one synthesis job: text rendered with a provider-specific
// voice handle into an artifact at OutputPath.
type Request struct {
	Text       string
	VoiceID    string
	OutputPath string
	SampleRate int
	Channels   int
}

// Result describes a produced audio artifact. Duration is measured from
// the decoded waveform when the provider allows it; otherwise it is a
// characters-per-second estimate and Estimated is set, so treat it as
// approximate in duration-sensitive use.
type Result struct {
	Provider   string
	Quality    string
	Path       string
	Duration   float64
	SampleRate int
	Channels   int
	FileSize   int64
	Estimated  bool
}

// Provider is the contract for one TTS vendor implementation.
type Provider interface {
	// Name returns the provider key for registry lookups and logging.
	Name() string
	// Quality returns the provider's declared quality tier.
	Quality() string
	// Synthesize renders text to an audio file, or fails with a
	// provider-specific error.
	Synthesize(ctx context.Context, req Request) (Result, error)
}

// EstimateDuration is the fixed characters-per-second heuristic used when
// a provider reports no exact timing. Approximate by construction.
func EstimateDuration(text string, secondsPerChar float64) float64 {
	return float64(len([]rune(text))) * secondsPerChar
}
