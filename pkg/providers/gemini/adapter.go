package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/harunnryd/sentez/pkg/resilience"
)

// Adapter is the free-tier Gemini client over the generativelanguage REST
// API. Rate limiting is the common failure mode here; 429s surface as
// RateLimitError so the circuit breaker can react.
type Adapter struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

func NewAdapter(apiKey, model string) *Adapter {
	if model == "" {
		model = "gemini-1.5-pro"
	}
	return &Adapter{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *Adapter) Name() string { return "gemini" }

func (a *Adapter) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature": temperature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := a.BaseURL + "/models/" + a.Model + ":generateContent?key=" + a.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		msg, _ := io.ReadAll(resp.Body)
		return "", resilience.RateLimitError{Provider: "gemini", Message: string(msg)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return "", errors.New(string(msg))
	}

	var payload2 map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload2); err != nil {
		return "", err
	}
	return extractText(payload2)
}

func extractText(payload map[string]any) (string, error) {
	candidates, _ := payload["candidates"].([]any)
	if len(candidates) == 0 {
		return "", errors.New("gemini: no candidates")
	}
	first, _ := candidates[0].(map[string]any)
	content, _ := first["content"].(map[string]any)
	parts, _ := content["parts"].([]any)
	if len(parts) == 0 {
		return "", errors.New("gemini: empty content")
	}
	part, _ := parts[0].(map[string]any)
	text, _ := part["text"].(string)
	if text == "" {
		return "", errors.New("gemini: empty text part")
	}
	return text, nil
}

func (a *Adapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}
