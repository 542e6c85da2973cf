package sentez

import (
	"errors"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/harunnryd/sentez/pkg/dialogue"
	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/spf13/viper"
)

type Config struct {
	Conversations ConversationConfig `mapstructure:"conversations"`
	Scenarios     map[string]float64 `mapstructure:"scenarios"`
	Audio         AudioConfig        `mapstructure:"audio"`
	Vendors       VendorsConfig      `mapstructure:"vendors"`
	Output        OutputConfig       `mapstructure:"output"`
	Workers       int                `mapstructure:"workers"`
	LogLevel      string             `mapstructure:"log_level"`
	LogFormat     string             `mapstructure:"log_format"`
}

type ConversationConfig struct {
	Count            int     `mapstructure:"count"`
	MinTurns         int     `mapstructure:"min_turns"`
	MaxTurns         int     `mapstructure:"max_turns"`
	MinChars         int     `mapstructure:"min_chars"`
	MaxChars         int     `mapstructure:"max_chars"`
	AgentTemperature float64 `mapstructure:"agent_temperature"`
	UserTemperature  float64 `mapstructure:"user_temperature"`
	MaxAttempts      int     `mapstructure:"max_attempts"`
	CallDelayMS      int     `mapstructure:"call_delay_ms"`
	Seed             int64   `mapstructure:"seed"`
}

type AudioConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	AllowBasicFallback bool `mapstructure:"allow_basic_fallback"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	LLM VendorConfig `mapstructure:"llm"`
	TTS VendorConfig `mapstructure:"tts"`
}

type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	MetricsLog string `mapstructure:"metrics_log"`
}

func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("conversations.count", 10)
	v.SetDefault("conversations.min_turns", 6)
	v.SetDefault("conversations.max_turns", 16)
	v.SetDefault("conversations.min_chars", 20)
	v.SetDefault("conversations.max_chars", 200)
	v.SetDefault("conversations.agent_temperature", 0.7)
	v.SetDefault("conversations.user_temperature", 0.9)
	v.SetDefault("conversations.max_attempts", 3)
	v.SetDefault("conversations.call_delay_ms", 2000)
	v.SetDefault("conversations.seed", 0)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.allow_basic_fallback", false)
	v.SetDefault("vendors.llm.provider", "mock")
	v.SetDefault("vendors.tts.provider", "mock")
	v.SetDefault("output.dir", "data")
	v.SetDefault("output.metrics_log", "")
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// A missing file means defaults only; anything else is a real failure.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errorsx.Errorf(errorsx.ReasonConfig, "read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errorsx.Errorf(errorsx.ReasonConfig, "unmarshal config: %w", err)
	}

	expandEnvStrings(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return errorsx.Errorf(errorsx.ReasonConfig, format, args...)
	}
	if c.Conversations.Count < 1 {
		return fail("conversations.count must be at least 1")
	}
	if c.Conversations.MinTurns < 2 {
		return fail("conversations.min_turns must be at least 2")
	}
	if c.Conversations.MaxTurns < c.Conversations.MinTurns {
		return fail("conversations.max_turns must be >= min_turns")
	}
	if c.Conversations.MinChars < 1 || c.Conversations.MaxChars < c.Conversations.MinChars {
		return fail("transcript length bounds are invalid")
	}
	if c.Conversations.MaxAttempts < 1 {
		return fail("conversations.max_attempts must be at least 1")
	}
	if c.Conversations.AgentTemperature < 0 || c.Conversations.UserTemperature < 0 {
		return fail("temperatures must be non-negative")
	}
	if c.Workers < 1 {
		return fail("workers must be at least 1")
	}
	if strings.TrimSpace(c.Vendors.LLM.Provider) == "" {
		return fail("vendors.llm.provider is required")
	}
	if strings.TrimSpace(c.Vendors.TTS.Provider) == "" && c.Audio.Enabled {
		return fail("vendors.tts.provider is required when audio is enabled")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fail("output.dir is required")
	}
	if len(c.Scenarios) > 0 {
		known := dialogue.DefaultScenarios()
		var sum float64
		for name, w := range c.Scenarios {
			if _, ok := known[name]; !ok {
				return fail("unknown scenario %q", name)
			}
			if w < 0 {
				return fail("scenario %q has negative weight", name)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > 0.01 {
			return fail("scenario weights sum to %.3f, expected 1.0", sum)
		}
	}
	return nil
}

func expandEnvStrings(cfg *Config) {
	expandValue(reflect.ValueOf(cfg))
	cfg.Vendors.LLM.Settings = expandSettings(cfg.Vendors.LLM.Settings)
	cfg.Vendors.TTS.Settings = expandSettings(cfg.Vendors.TTS.Settings)
}

func expandSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	for k, v := range settings {
		settings[k] = expandAny(v)
	}
	return settings
}

func expandAny(v any) any {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case []any:
		for i := range val {
			val[i] = expandAny(val[i])
		}
		return val
	case map[string]any:
		for k, v := range val {
			val[k] = expandAny(v)
		}
		return val
	default:
		return v
	}
}

func expandValue(v reflect.Value) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		expandValue(v.Elem())
		return
	}
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandValue(v.Field(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.ExpandEnv(v.String()))
		}
	}
}
