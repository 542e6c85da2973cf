package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/metrics"
	"github.com/harunnryd/sentez/pkg/resilience"
	"github.com/harunnryd/sentez/pkg/voice"
)

// reuseSecondsPerChar estimates duration for artifacts found on disk,
// where the original waveform timing was never recorded.
const reuseSecondsPerChar = 0.08

// Chain tries a speaker's providers in declared priority order and stops at
// the first success. With AllowBasicFallback unset, exhausting the declared
// providers is a hard failure for the turn: quality is never silently
// degraded.
type Chain struct {
	reg                *voice.Registry
	providers          map[string]Provider
	baseline           string
	allowBasicFallback bool
	obs                metrics.Observer
	log                *slog.Logger
}

type ChainConfig struct {
	AllowBasicFallback bool
	// Baseline names the guaranteed-available provider consulted last,
	// only when AllowBasicFallback is set.
	Baseline string
}

func NewChain(reg *voice.Registry, cfg ChainConfig, obs metrics.Observer, log *slog.Logger) *Chain {
	if obs == nil {
		obs = metrics.NoopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Chain{
		reg:                reg,
		providers:          make(map[string]Provider),
		baseline:           cfg.Baseline,
		allowBasicFallback: cfg.AllowBasicFallback,
		obs:                obs,
		log:                log,
	}
}

// Register makes a provider available to the chain under its own name.
func (c *Chain) Register(p Provider) {
	c.providers[strings.ToLower(strings.TrimSpace(p.Name()))] = p
}

// Synthesize renders text for the bound speaker voice. An artifact already
// present at the canonical path is reused rather than re-synthesized.
func (c *Chain) Synthesize(ctx context.Context, text, speakerID, outputPath string) (Result, error) {
	if info, err := os.Stat(outputPath); err == nil && info.Size() > 0 {
		return Result{
			Provider:   "existing",
			Path:       outputPath,
			Duration:   EstimateDuration(text, reuseSecondsPerChar),
			FileSize:   info.Size(),
			SampleRate: 16000,
			Channels:   1,
			Estimated:  true,
		}, nil
	}

	profile, ok := c.reg.Lookup(speakerID)
	if !ok {
		return Result{}, errorsx.Wrap(fmt.Errorf("unknown speaker %q", speakerID), errorsx.ReasonTTSSynthesize)
	}

	var failures []string
	for _, step := range c.steps(profile) {
		provider, ok := c.providers[step.provider]
		if !ok {
			continue
		}
		res, err := provider.Synthesize(ctx, Request{
			Text:       text,
			VoiceID:    step.voiceID,
			OutputPath: outputPath,
		})
		if err == nil {
			c.record(res, speakerID)
			return res, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		c.log.Warn("tts provider failed",
			slog.String("provider", provider.Name()),
			slog.String("speaker_id", speakerID),
			slog.String("error", err.Error()))
		failures = append(failures, fmt.Sprintf("%s: %v", provider.Name(), err))
		if resilience.IsRateLimit(err) {
			failures[len(failures)-1] = fmt.Sprintf("%s: rate limited", provider.Name())
		}
	}

	err := fmt.Errorf("tts chain exhausted for %s: %s", speakerID, strings.Join(failures, "; "))
	if len(failures) == 0 {
		err = fmt.Errorf("no tts provider registered for %s", speakerID)
	}
	return Result{}, errorsx.Wrap(err, errorsx.ReasonTTSSynthesize)
}

type chainStep struct {
	provider string
	voiceID  string
}

func (c *Chain) steps(profile voice.Profile) []chainStep {
	steps := []chainStep{{provider: strings.ToLower(profile.Provider), voiceID: profile.VoiceID}}
	if profile.FallbackProvider != "" {
		fb := chainStep{provider: strings.ToLower(profile.FallbackProvider), voiceID: profile.FallbackVoice}
		if fb != steps[0] {
			steps = append(steps, fb)
		}
	}
	if c.allowBasicFallback && c.baseline != "" {
		steps = append(steps, chainStep{provider: strings.ToLower(c.baseline)})
	}
	return steps
}

func (c *Chain) record(res Result, speakerID string) {
	c.obs.RecordEvent(metrics.MetricsEvent{
		Name:  metrics.EventAudioSynthesized,
		Time:  time.Now(),
		Value: res.Duration,
		Tags: map[string]string{
			"component":  "tts",
			"provider":   res.Provider,
			"speaker_id": speakerID,
		},
	})
}
