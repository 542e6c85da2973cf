package sentez

import (
	"log/slog"
	"strings"

	"github.com/harunnryd/sentez/pkg/configutil"
	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/llm"
	"github.com/harunnryd/sentez/pkg/providers/basictts"
	"github.com/harunnryd/sentez/pkg/providers/elevenlabs"
	"github.com/harunnryd/sentez/pkg/providers/gemini"
	"github.com/harunnryd/sentez/pkg/providers/googletts"
	"github.com/harunnryd/sentez/pkg/providers/mock"
	"github.com/harunnryd/sentez/pkg/providers/openaicompat"
	"github.com/harunnryd/sentez/pkg/tts"
)

type ModelFactory func(cfg Config, log *slog.Logger) (llm.ModelClient, error)
type TTSFactory func(cfg Config, log *slog.Logger) (tts.Provider, error)

type ProviderRegistry struct {
	models map[string]ModelFactory
	tts    map[string]TTSFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		models: make(map[string]ModelFactory),
		tts:    make(map[string]TTSFactory),
	}
}

func (r *ProviderRegistry) RegisterModel(name string, factory ModelFactory) {
	r.models[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) RegisterTTS(name string, factory TTSFactory) {
	r.tts[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) BuildModel(provider string, cfg Config, log *slog.Logger) (llm.ModelClient, error) {
	fn := r.models[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, errorsx.Errorf(errorsx.ReasonConfig, "model provider not registered: %s", provider)
	}
	return fn(cfg, log)
}

func (r *ProviderRegistry) BuildTTS(provider string, cfg Config, log *slog.Logger) (tts.Provider, error) {
	fn := r.tts[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, errorsx.Errorf(errorsx.ReasonConfig, "tts provider not registered: %s", provider)
	}
	return fn(cfg, log)
}

// DefaultProviderRegistry registers the built-in model and speech vendors.
func DefaultProviderRegistry() *ProviderRegistry {
	r := NewProviderRegistry()

	r.RegisterModel("gemini", func(cfg Config, _ *slog.Logger) (llm.ModelClient, error) {
		var s struct {
			APIKey string `mapstructure:"api_key"`
			Model  string `mapstructure:"model"`
		}
		if err := decodeVendorSettings(cfg.Vendors.LLM, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"model"},
		}, &s); err != nil {
			return nil, err
		}
		return gemini.NewAdapter(s.APIKey, s.Model), nil
	})

	r.RegisterModel("openai", func(cfg Config, _ *slog.Logger) (llm.ModelClient, error) {
		var s struct {
			APIKey  string `mapstructure:"api_key"`
			Model   string `mapstructure:"model"`
			BaseURL string `mapstructure:"base_url"`
		}
		if err := decodeVendorSettings(cfg.Vendors.LLM, configutil.Schema{
			Required: []string{"api_key", "model"},
			Optional: []string{"base_url"},
		}, &s); err != nil {
			return nil, err
		}
		return openaicompat.NewAdapter(openaicompat.Config{
			APIKey:  s.APIKey,
			Model:   s.Model,
			BaseURL: s.BaseURL,
		}), nil
	})

	r.RegisterModel("mock", func(cfg Config, _ *slog.Logger) (llm.ModelClient, error) {
		var s struct {
			ResponseText string `mapstructure:"response_text"`
		}
		if err := decodeVendorSettings(cfg.Vendors.LLM, configutil.Schema{
			Optional: []string{"response_text"},
		}, &s); err != nil {
			return nil, err
		}
		return mock.NewModelClient(mock.LLMConfig{ResponseText: s.ResponseText}), nil
	})

	r.RegisterTTS("elevenlabs", func(cfg Config, log *slog.Logger) (tts.Provider, error) {
		var s struct {
			APIKey     string `mapstructure:"api_key"`
			ModelID    string `mapstructure:"model_id"`
			SampleRate int    `mapstructure:"sample_rate"`
		}
		if err := decodeVendorSettings(cfg.Vendors.TTS, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"model_id", "sample_rate", "google_api_key"},
		}, &s); err != nil {
			return nil, err
		}
		return elevenlabs.New(elevenlabs.Config{
			APIKey:     s.APIKey,
			ModelID:    s.ModelID,
			SampleRate: s.SampleRate,
		}, log), nil
	})

	r.RegisterTTS("google", func(cfg Config, _ *slog.Logger) (tts.Provider, error) {
		var s struct {
			APIKey     string `mapstructure:"api_key"`
			SampleRate int    `mapstructure:"sample_rate"`
		}
		if err := decodeVendorSettings(cfg.Vendors.TTS, configutil.Schema{
			Required: []string{"api_key"},
			Optional: []string{"sample_rate"},
		}, &s); err != nil {
			return nil, err
		}
		return googletts.New(googletts.Config{APIKey: s.APIKey, SampleRate: s.SampleRate}), nil
	})

	r.RegisterTTS("basic", func(cfg Config, _ *slog.Logger) (tts.Provider, error) {
		return basictts.New(), nil
	})

	r.RegisterTTS("mock", func(cfg Config, _ *slog.Logger) (tts.Provider, error) {
		var s struct {
			Name string `mapstructure:"name"`
		}
		if err := decodeVendorSettings(cfg.Vendors.TTS, configutil.Schema{
			Optional: []string{"name"},
		}, &s); err != nil {
			return nil, err
		}
		return mock.NewTTSProvider(mock.TTSConfig{Name: s.Name}), nil
	})

	return r
}

func decodeVendorSettings(vendor VendorConfig, schema configutil.Schema, out any) error {
	if err := configutil.ValidateSettings(vendor.Settings, schema); err != nil {
		return errorsx.Errorf(errorsx.ReasonConfig, "%s settings: %w", vendor.Provider, err)
	}
	if err := configutil.DecodeSettings(vendor.Settings, out); err != nil {
		return errorsx.Errorf(errorsx.ReasonConfig, "%s settings: %w", vendor.Provider, err)
	}
	return nil
}
