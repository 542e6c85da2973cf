package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/harunnryd/sentez/pkg/resilience"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// turnSchema mirrors the JSON object a turn prompt demands, enforced by
// the structured-output format so compatible backends cannot ramble.
type turnSchema struct {
	ConversationID int               `json:"conversation_id"`
	AudioFilepath  string            `json:"audio_filepath"`
	Transcript     string            `json:"transcript"`
	SpeakerID      string            `json:"speaker_id"`
	Role           string            `json:"role"`
	Intent         string            `json:"intent"`
	Slot           map[string]string `json:"slot"`
}

var responseSchema = generateSchema[turnSchema]()

// Adapter is the enterprise-path model client: any OpenAI-compatible
// endpoint (OpenAI itself, or a gateway such as Vertex AI's compatible
// surface) selected purely by base URL.
type Adapter struct {
	client openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func NewAdapter(cfg Config) *Adapter {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Adapter{client: openai.NewClient(opts...), model: cfg.Model}
}

func (a *Adapter) Name() string { return "openai" }

func (a *Adapter) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if a.model == "" {
		return "", errors.New("openai: model is empty")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "ConversationTurn",
			Schema:      responseSchema,
			Strict:      openai.Bool(false),
			Description: openai.String("One customer-service conversation turn"),
			Type:        "json_schema",
		},
	}

	resp, err := a.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           a.model,
		Temperature:     openai.Float(temperature),
		MaxOutputTokens: openai.Int(600),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{Format: format},
	})
	if err != nil {
		if isRateLimit(err) {
			return "", resilience.RateLimitError{Provider: "openai", Message: err.Error()}
		}
		return "", err
	}

	text := resp.OutputText()
	if text == "" {
		return "", errors.New("openai: empty response")
	}
	return text, nil
}

func isRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests")
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}
