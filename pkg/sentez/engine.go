package sentez

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harunnryd/sentez/pkg/configutil"
	"github.com/harunnryd/sentez/pkg/corpus"
	"github.com/harunnryd/sentez/pkg/dialogue"
	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/llm"
	"github.com/harunnryd/sentez/pkg/logging"
	"github.com/harunnryd/sentez/pkg/metrics"
	"github.com/harunnryd/sentez/pkg/providers/googletts"
	"github.com/harunnryd/sentez/pkg/resilience"
	"github.com/harunnryd/sentez/pkg/tts"
	"github.com/harunnryd/sentez/pkg/voice"
)

// Summary is the outcome of one batch run.
type Summary struct {
	RunID           string
	Requested       int
	Accepted        int
	Skipped         int
	Utterances      int
	AgentUtterances int
	AudioSeconds    float64
	FirstID         int
	LastID          int
	Elapsed         time.Duration
}

// Engine owns one batch: scenario assignment, id allocation, the worker
// pool, and corpus persistence. Conversations that exhaust their attempts
// are skipped; the batch continues.
type Engine struct {
	cfg      Config
	registry *ProviderRegistry
	log      *slog.Logger
}

func NewEngine(cfg Config, registry *ProviderRegistry, log *slog.Logger) *Engine {
	if registry == nil {
		registry = DefaultProviderRegistry()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: cfg, registry: registry, log: log}
}

func (e *Engine) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := e.log.With(slog.String("run_id", runID))

	if err := e.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	obs, flush, err := e.buildObserver()
	if err != nil {
		return Summary{}, err
	}
	defer flush()

	writer, err := corpus.NewWriter(e.cfg.Output.Dir)
	if err != nil {
		return Summary{}, err
	}
	state, err := corpus.LoadRunState(e.cfg.Output.Dir)
	if err != nil {
		return Summary{}, err
	}
	startID := state.LastConversationID + 1

	seed := e.cfg.Conversations.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	weights := e.cfg.Scenarios
	if len(weights) == 0 {
		weights = dialogue.DefaultScenarioWeights()
	}
	selector, err := dialogue.NewScenarioSelector(weights, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Summary{}, errorsx.Wrap(err, errorsx.ReasonConfig)
	}
	count := e.cfg.Conversations.Count
	assignments := selector.Distribution(count)

	model, err := e.buildModel(obs, log)
	if err != nil {
		return Summary{}, err
	}

	voices := voice.DefaultRegistry()
	binding := voice.NewBinding(voices, rand.New(rand.NewSource(seed+1)))

	var synth dialogue.AudioSynthesizer
	if e.cfg.Audio.Enabled {
		synth, err = e.buildSynth(voices, obs, log)
		if err != nil {
			return Summary{}, err
		}
	}

	gate := resilience.NewGate(time.Duration(e.cfg.Conversations.CallDelayMS) * time.Millisecond)
	retry := llm.RetryConfig{MaxAttempts: e.cfg.Conversations.MaxAttempts}
	gen := dialogue.NewTurnGenerator(model, retry, logging.NewComponentLogger(log, "turn_generator"))

	orchCfg := dialogue.OrchestratorConfig{
		MinTurns:         e.cfg.Conversations.MinTurns,
		MaxTurns:         e.cfg.Conversations.MaxTurns,
		MinChars:         e.cfg.Conversations.MinChars,
		MaxChars:         e.cfg.Conversations.MaxChars,
		AgentTemperature: e.cfg.Conversations.AgentTemperature,
		UserTemperature:  e.cfg.Conversations.UserTemperature,
		MaxAttempts:      e.cfg.Conversations.MaxAttempts,
		AudioEnabled:     e.cfg.Audio.Enabled,
		AudioDir:         filepath.Join(e.cfg.Output.Dir, "audio"),
	}

	summary := Summary{
		RunID:     runID,
		Requested: count,
		FirstID:   startID,
		LastID:    startID + count - 1,
	}
	var mu sync.Mutex

	workers := e.cfg.Workers
	if workers > count {
		workers = count
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			orch := dialogue.NewOrchestrator(
				orchCfg, gen, dialogue.DefaultScenarios(), binding, synth, gate, obs,
				logging.NewComponentLogger(log, "orchestrator"),
				rand.New(rand.NewSource(seed+int64(worker)+2)),
			)
			for idx := range jobs {
				e.runOne(ctx, orch, writer, obs, log, startID+idx, assignments[idx], &mu, &summary)
			}
		}(w)
	}

	for idx := 0; idx < count; idx++ {
		if ctx.Err() != nil {
			break
		}
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if err := corpus.SaveRunState(e.cfg.Output.Dir, corpus.RunState{LastConversationID: summary.LastID}); err != nil {
		return summary, err
	}

	summary.Elapsed = time.Since(started)
	log.Info("run complete",
		slog.Int("requested", summary.Requested),
		slog.Int("accepted", summary.Accepted),
		slog.Int("skipped", summary.Skipped),
		slog.Int("utterances", summary.Utterances),
		slog.Float64("audio_seconds", summary.AudioSeconds),
		slog.Duration("elapsed", summary.Elapsed))

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (e *Engine) runOne(
	ctx context.Context,
	orch *dialogue.Orchestrator,
	writer *corpus.Writer,
	obs metrics.Observer,
	log *slog.Logger,
	conversationID int,
	scenario string,
	mu *sync.Mutex,
	summary *Summary,
) {
	turns, err := orch.Generate(ctx, conversationID, scenario)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn("conversation skipped",
			slog.Int("conversation_id", conversationID),
			slog.String("scenario", scenario),
			slog.String("reason", string(errorsx.Reason(err))))
		obs.RecordEvent(metrics.MetricsEvent{
			Name:  metrics.EventConversationSkipped,
			Time:  time.Now(),
			Value: 1,
			Tags: map[string]string{
				"component":       "engine",
				"scenario":        scenario,
				"conversation_id": fmt.Sprintf("%d", conversationID),
			},
		})
		mu.Lock()
		summary.Skipped++
		mu.Unlock()
		return
	}

	if err := writer.AppendConversation(turns); err != nil {
		log.Error("corpus write failed",
			slog.Int("conversation_id", conversationID),
			slog.String("error", err.Error()))
		mu.Lock()
		summary.Skipped++
		mu.Unlock()
		return
	}

	mu.Lock()
	summary.Accepted++
	summary.Utterances += len(turns)
	for _, t := range turns {
		if t.Role == dialogue.RoleAgent {
			summary.AgentUtterances++
		}
		summary.AudioSeconds += t.AudioDuration
	}
	mu.Unlock()
}

func (e *Engine) buildObserver() (metrics.Observer, func(), error) {
	if e.cfg.Output.MetricsLog == "" {
		return metrics.NoopObserver{}, func() {}, nil
	}
	f, err := os.OpenFile(e.cfg.Output.MetricsLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errorsx.Errorf(errorsx.ReasonConfig, "open metrics log: %w", err)
	}
	async := metrics.NewAsyncObserver(metrics.NewJSONLObserver(f), 256)
	return async, func() {
		async.Close()
		f.Close()
	}, nil
}

func (e *Engine) buildModel(obs metrics.Observer, log *slog.Logger) (llm.ModelClient, error) {
	inner, err := e.registry.BuildModel(e.cfg.Vendors.LLM.Provider, e.cfg, log)
	if err != nil {
		return nil, err
	}
	breaker := resilience.NewCircuitBreaker(5, 30*time.Second)
	client := llm.NewCircuitBreakerClient(inner, breaker)
	client.SetObserver(obs)
	return client, nil
}

func (e *Engine) buildSynth(voices *voice.Registry, obs metrics.Observer, log *slog.Logger) (dialogue.AudioSynthesizer, error) {
	primary, err := e.registry.BuildTTS(e.cfg.Vendors.TTS.Provider, e.cfg, log)
	if err != nil {
		return nil, err
	}
	chain := tts.NewChain(voices, tts.ChainConfig{
		AllowBasicFallback: e.cfg.Audio.AllowBasicFallback,
		Baseline:           "basic",
	}, obs, logging.NewComponentLogger(log, "tts_chain"))
	chain.Register(primary)
	if primary.Name() == "elevenlabs" {
		// The registry fallback for elevenlabs voices is a Google voice;
		// it participates only when a key for it is configured.
		var s struct {
			GoogleAPIKey string `mapstructure:"google_api_key"`
		}
		if configutil.DecodeSettings(e.cfg.Vendors.TTS.Settings, &s) == nil && s.GoogleAPIKey != "" {
			chain.Register(googletts.New(googletts.Config{APIKey: s.GoogleAPIKey}))
		}
	}
	if e.cfg.Audio.AllowBasicFallback && primary.Name() != "basic" {
		baseline, err := e.registry.BuildTTS("basic", e.cfg, log)
		if err == nil {
			chain.Register(baseline)
		}
	}
	return chainSynth{chain: chain}, nil
}

// chainSynth narrows the provider chain to the orchestrator's view of
// audio synthesis.
type chainSynth struct {
	chain *tts.Chain
}

func (s chainSynth) Synthesize(ctx context.Context, text, speakerID, outputPath string) (dialogue.AudioInfo, error) {
	res, err := s.chain.Synthesize(ctx, text, speakerID, outputPath)
	if err != nil {
		return dialogue.AudioInfo{}, err
	}
	return dialogue.AudioInfo{
		Path:       res.Path,
		Duration:   res.Duration,
		SampleRate: res.SampleRate,
		Channels:   res.Channels,
		FileSize:   res.FileSize,
		Provider:   res.Provider,
	}, nil
}
