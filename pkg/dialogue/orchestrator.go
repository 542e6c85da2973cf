package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/metrics"
	"github.com/harunnryd/sentez/pkg/resilience"
)

// SpeakerBinder assigns the per-conversation voice pair. The first call for
// a conversation id decides; later calls return the same pair.
type SpeakerBinder interface {
	Bind(conversationID int, agentName string) (agentVoice, userVoice string)
}

// AudioInfo is the per-turn synthesis outcome merged into the turn record.
type AudioInfo struct {
	Path       string
	Duration   float64
	SampleRate int
	Channels   int
	FileSize   int64
	Provider   string
}

// AudioSynthesizer renders one transcript to an audio artifact.
type AudioSynthesizer interface {
	Synthesize(ctx context.Context, text, speakerID, outputPath string) (AudioInfo, error)
}

type OrchestratorConfig struct {
	MinTurns         int
	MaxTurns         int
	MinChars         int
	MaxChars         int
	AgentTemperature float64
	UserTemperature  float64
	MaxAttempts      int
	AudioEnabled     bool
	AudioDir         string
	AgentNames       []string
}

// Orchestrator drives one conversation at a time through the turn loop,
// wrapping each conversation in a bounded retry. Failed attempts leave no
// trace: a conversation is accepted whole or not at all.
type Orchestrator struct {
	cfg       OrchestratorConfig
	gen       *TurnGenerator
	policy    *InstructionPolicy
	prompts   *PromptRenderer
	scenarios map[string]Scenario
	binder    SpeakerBinder
	synth     AudioSynthesizer
	gate      *resilience.Gate
	obs       metrics.Observer
	log       *slog.Logger
	rng       *rand.Rand
}

func NewOrchestrator(
	cfg OrchestratorConfig,
	gen *TurnGenerator,
	scenarios map[string]Scenario,
	binder SpeakerBinder,
	synth AudioSynthesizer,
	gate *resilience.Gate,
	obs metrics.Observer,
	log *slog.Logger,
	rng *rand.Rand,
) *Orchestrator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if len(cfg.AgentNames) == 0 {
		cfg.AgentNames = AgentNames()
	}
	if obs == nil {
		obs = metrics.NoopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Orchestrator{
		cfg:       cfg,
		gen:       gen,
		policy:    NewInstructionPolicy(),
		prompts:   NewPromptRenderer(cfg.MinChars, cfg.MaxChars, rng),
		scenarios: scenarios,
		binder:    binder,
		synth:     synth,
		gate:      gate,
		obs:       obs,
		log:       log,
		rng:       rng,
	}
}

// Generate produces one accepted conversation or an attempts_exhausted
// error. Parse, synthesis, and validation failures abort only the current
// attempt; context cancellation aborts immediately.
func (o *Orchestrator) Generate(ctx context.Context, conversationID int, scenarioName string) ([]Turn, error) {
	maxTurns := o.cfg.MaxTurns
	if maxTurns%2 != 0 {
		// an odd ceiling rounds up by one at draw time
		maxTurns++
	}
	bounds := Bounds{
		MinTurns:     o.cfg.MinTurns,
		MaxTurns:     maxTurns,
		MinChars:     o.cfg.MinChars,
		MaxChars:     o.cfg.MaxChars,
		RequireAudio: o.cfg.AudioEnabled,
	}

	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		history, err := o.attempt(ctx, conversationID, scenarioName)
		if err == nil {
			err = ValidateConversation(history, bounds)
		}
		if err == nil {
			o.record(metrics.EventConversationAccepted, conversationID, scenarioName, float64(len(history)))
			return history, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		o.log.Warn("conversation attempt failed",
			slog.Int("conversation_id", conversationID),
			slog.Int("attempt", attempt),
			slog.String("reason", string(errorsx.Reason(err))),
			slog.String("error", err.Error()))
		o.record(metrics.EventConversationRetried, conversationID, scenarioName, float64(attempt))
	}

	return nil, errorsx.Wrap(
		fmt.Errorf("conversation %d rejected after %d attempts", conversationID, o.cfg.MaxAttempts),
		errorsx.ReasonAttemptsExhausted)
}

func (o *Orchestrator) attempt(ctx context.Context, conversationID int, scenarioName string) ([]Turn, error) {
	agentName := o.cfg.AgentNames[o.rng.Intn(len(o.cfg.AgentNames))]
	totalTurns := o.drawTurnCount()
	scenario := o.scenarios[scenarioName]
	history := make([]Turn, 0, totalTurns)

	for turnNumber := 1; turnNumber <= totalTurns; turnNumber++ {
		if err := o.gate.Wait(ctx); err != nil {
			return nil, err
		}

		role := RoleForTurn(turnNumber)
		agentVoice, userVoice := o.binder.Bind(conversationID, agentName)
		speakerID := agentVoice
		if role == RoleUser {
			speakerID = userVoice
		}

		prompt := o.prompts.Render(TurnContext{
			ConversationID: conversationID,
			AgentName:      agentName,
			Scenario:       scenario,
			Role:           role,
			TurnNumber:     turnNumber,
			TotalTurns:     totalTurns,
			SpeakerID:      speakerID,
			History:        history,
			Directive:      o.policy.Instruct(role, scenarioName, history, totalTurns, turnNumber, agentName),
		})

		temperature := o.cfg.AgentTemperature
		if role == RoleUser {
			temperature = o.cfg.UserTemperature
		}

		started := time.Now()
		parsed, err := o.gen.Generate(ctx, prompt, temperature)
		if err != nil {
			return nil, err
		}

		turn := Turn{
			ConversationID: conversationID,
			TurnNumber:     turnNumber,
			Role:           role,
			SpeakerID:      speakerID,
			Transcript:     parsed.Transcript,
			Intent:         parsed.Intent,
			Slot:           parsed.Slot,
		}

		if o.cfg.AudioEnabled {
			info, err := o.synth.Synthesize(ctx, turn.Transcript, speakerID, o.audioPath(conversationID, turnNumber, role))
			if err != nil {
				return nil, err
			}
			turn.AudioFilepath = info.Path
			turn.AudioDuration = info.Duration
			turn.SampleRate = info.SampleRate
			turn.Channels = info.Channels
			turn.FileSize = info.FileSize
		}

		history = append(history, turn)
		o.record(metrics.EventTurnGenerated, conversationID, scenarioName, time.Since(started).Seconds())
	}
	return history, nil
}

// drawTurnCount picks an even conversation length, rounding an odd draw up
// by one so the agent-closing/user-thanks pattern always fits.
func (o *Orchestrator) drawTurnCount() int {
	n := o.cfg.MinTurns + o.rng.Intn(o.cfg.MaxTurns-o.cfg.MinTurns+1)
	if n%2 != 0 {
		n++
	}
	return n
}

// audioPath is the canonical artifact location for a turn. One path per
// (conversation, turn) pair, assigned up front, so re-runs can never strand
// duplicate files.
func (o *Orchestrator) audioPath(conversationID, turnNumber int, role Role) string {
	return filepath.Join(o.cfg.AudioDir, string(role), fmt.Sprintf("%04d_%02d.wav", conversationID, turnNumber))
}

func (o *Orchestrator) record(name string, conversationID int, scenario string, value float64) {
	o.obs.RecordEvent(metrics.MetricsEvent{
		Name:  name,
		Time:  time.Now(),
		Value: value,
		Tags: map[string]string{
			"component":       "orchestrator",
			"scenario":        scenario,
			"conversation_id": fmt.Sprintf("%d", conversationID),
		},
	})
}
