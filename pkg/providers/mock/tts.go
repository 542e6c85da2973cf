package mock

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/harunnryd/sentez/pkg/tts"
)

type TTSConfig struct {
	Name       string
	Quality    string
	Err        error
	SampleRate int
	// SkipWrite leaves no file behind; useful for pure chain-order tests.
	SkipWrite bool
}

// TTSProvider is a deterministic in-memory provider for tests. On success
// it writes a small placeholder artifact and reports a fixed duration.
type TTSProvider struct {
	cfg   TTSConfig
	mu    sync.Mutex
	calls int
}

func NewTTSProvider(cfg TTSConfig) *TTSProvider {
	if cfg.Name == "" {
		cfg.Name = "mock_tts"
	}
	if cfg.Quality == "" {
		cfg.Quality = tts.QualityBasic
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &TTSProvider{cfg: cfg}
}

func (p *TTSProvider) Name() string    { return p.cfg.Name }
func (p *TTSProvider) Quality() string { return p.cfg.Quality }

func (p *TTSProvider) Synthesize(ctx context.Context, req tts.Request) (tts.Result, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return tts.Result{}, err
	}
	if p.cfg.Err != nil {
		return tts.Result{}, p.cfg.Err
	}

	payload := []byte("mock-audio")
	if !p.cfg.SkipWrite {
		if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
			return tts.Result{}, err
		}
		if err := os.WriteFile(req.OutputPath, payload, 0o644); err != nil {
			return tts.Result{}, err
		}
	}
	return tts.Result{
		Provider:   p.cfg.Name,
		Quality:    p.cfg.Quality,
		Path:       req.OutputPath,
		Duration:   1.5,
		SampleRate: p.cfg.SampleRate,
		Channels:   1,
		FileSize:   int64(len(payload)),
	}, nil
}

func (p *TTSProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

var _ tts.Provider = (*TTSProvider)(nil)
