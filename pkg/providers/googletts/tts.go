package googletts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/harunnryd/sentez/pkg/resilience"
	"github.com/harunnryd/sentez/pkg/tts"
)

// secondsPerChar approximates Turkish speech pacing for Wavenet voices;
// the synthesize endpoint reports no timing.
const secondsPerChar = 0.09

type Config struct {
	APIKey     string
	SampleRate int
}

// TTS calls the Google Cloud text:synthesize REST endpoint. LINEAR16
// responses arrive as a base64 WAV, written to the artifact path as-is.
type TTS struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *TTS {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &TTS{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *TTS) Name() string    { return "google" }
func (t *TTS) Quality() string { return tts.QualityHigh }

func (t *TTS) Synthesize(ctx context.Context, req tts.Request) (tts.Result, error) {
	if t.cfg.APIKey == "" {
		return tts.Result{}, errors.New("missing google cloud tts api key")
	}
	voice := req.VoiceID
	if voice == "" {
		voice = "tr-TR-Wavenet-B"
	}

	payload := map[string]any{
		"input": map[string]any{"text": req.Text},
		"voice": map[string]any{
			"languageCode": "tr-TR",
			"name":         voice,
			"ssmlGender":   "NEUTRAL",
		},
		"audioConfig": map[string]any{
			"audioEncoding":   "LINEAR16",
			"sampleRateHertz": t.cfg.SampleRate,
			"speakingRate":    1.0,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return tts.Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://texttospeech.googleapis.com/v1/text:synthesize?key="+t.cfg.APIKey,
		bytes.NewReader(body))
	if err != nil {
		return tts.Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return tts.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		msg, _ := io.ReadAll(resp.Body)
		return tts.Result{}, resilience.RateLimitError{Provider: "google", Message: string(msg)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return tts.Result{}, errors.New("google tts: " + string(msg))
	}

	var decoded struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return tts.Result{}, err
	}
	audio, err := base64.StdEncoding.DecodeString(decoded.AudioContent)
	if err != nil {
		return tts.Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return tts.Result{}, err
	}
	if err := os.WriteFile(req.OutputPath, audio, 0o644); err != nil {
		return tts.Result{}, err
	}

	return tts.Result{
		Provider:   "google",
		Quality:    tts.QualityHigh,
		Path:       req.OutputPath,
		Duration:   tts.EstimateDuration(req.Text, secondsPerChar),
		SampleRate: t.cfg.SampleRate,
		Channels:   1,
		FileSize:   int64(len(audio)),
		Estimated:  true,
	}, nil
}

var _ tts.Provider = (*TTS)(nil)
