package dialogue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/llm"
	"github.com/harunnryd/sentez/pkg/resilience"
)

// TurnGenerator invokes the model once per turn and extracts the embedded
// JSON turn. Transport-level failures are retried inside llm.Retry; a
// response that cannot be parsed comes back as a recoverable llm_parse
// error, never a panic.
type TurnGenerator struct {
	client llm.ModelClient
	retry  llm.RetryConfig
	log    *slog.Logger
}

func NewTurnGenerator(client llm.ModelClient, retry llm.RetryConfig, log *slog.Logger) *TurnGenerator {
	if log == nil {
		log = slog.Default()
	}
	return &TurnGenerator{client: client, retry: retry, log: log}
}

func (g *TurnGenerator) Generate(ctx context.Context, prompt string, temperature float64) (ParsedTurn, error) {
	raw, err := llm.Retry(ctx, g.retry, func(ctx context.Context) (string, error) {
		return g.client.Generate(ctx, prompt, temperature)
	})
	if err != nil {
		reason := errorsx.ReasonLLMGenerate
		if resilience.IsRateLimit(err) {
			reason = errorsx.ReasonLLMRateLimit
		}
		return ParsedTurn{}, errorsx.Wrap(err, reason)
	}

	result := ExtractTurn(raw)
	if result.Status != ParseOK {
		g.log.Debug("model output rejected",
			slog.String("status", result.Status.String()),
			slog.Int("response_len", len(raw)))
		return ParsedTurn{}, errorsx.Wrap(fmt.Errorf("model output: %s", result.Status), errorsx.ReasonLLMParse)
	}
	if result.Turn.Transcript == "" || result.Turn.Intent == "" || result.Turn.Role == "" {
		return ParsedTurn{}, errorsx.Wrap(fmt.Errorf("model output missing required fields"), errorsx.ReasonLLMParse)
	}
	return result.Turn, nil
}
