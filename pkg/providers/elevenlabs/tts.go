package elevenlabs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/harunnryd/sentez/pkg/resilience"
	"github.com/harunnryd/sentez/pkg/tts"
)

type Config struct {
	APIKey       string
	ModelID      string
	OutputFormat string
	SampleRate   int
	ReadTimeout  time.Duration
}

// TTS renders one utterance per call over the ElevenLabs stream-input
// websocket, collecting PCM chunks until the final message and writing a
// WAV artifact. Duration is measured from the decoded waveform.
type TTS struct {
	cfg Config
	log *slog.Logger
}

func New(cfg Config, log *slog.Logger) *TTS {
	if cfg.ModelID == "" {
		cfg.ModelID = "eleven_multilingual_v2"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "pcm_16000"
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &TTS{cfg: cfg, log: log}
}

func (t *TTS) Name() string    { return "elevenlabs" }
func (t *TTS) Quality() string { return tts.QualityVeryHigh }

func (t *TTS) Synthesize(ctx context.Context, req tts.Request) (tts.Result, error) {
	if t.cfg.APIKey == "" {
		return tts.Result{}, errors.New("missing elevenlabs api key")
	}
	if req.VoiceID == "" {
		return tts.Result{}, errors.New("missing voice id")
	}

	dialer := websocket.Dialer{Proxy: http.ProxyFromEnvironment}
	conn, resp, err := dialer.DialContext(ctx, t.buildURL(req.VoiceID), http.Header{
		"xi-api-key": []string{t.cfg.APIKey},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return tts.Result{}, resilience.RateLimitError{Provider: "elevenlabs", Message: resp.Status}
		}
		return tts.Result{}, err
	}
	defer conn.Close()

	text := req.Text
	if text != "" && text[len(text)-1] != ' ' {
		text += " "
	}
	messages := []map[string]any{
		{
			"text": " ",
			"voice_settings": map[string]any{
				"stability":        0.5,
				"similarity_boost": 0.75,
			},
		},
		{"text": text, "try_trigger_generation": true},
		{"text": ""}, // end of input
	}
	for _, msg := range messages {
		if err := writeJSON(conn, msg); err != nil {
			return tts.Result{}, err
		}
	}

	pcm, err := t.collect(ctx, conn)
	if err != nil {
		return tts.Result{}, err
	}
	if len(pcm) == 0 {
		return tts.Result{}, errors.New("elevenlabs returned no audio")
	}

	if err := tts.WriteWAV(req.OutputPath, pcm, t.cfg.SampleRate, 1, 16); err != nil {
		return tts.Result{}, err
	}

	t.log.Debug("elevenlabs synthesis complete",
		slog.String("voice_id", req.VoiceID),
		slog.Int("pcm_bytes", len(pcm)))

	return tts.Result{
		Provider:   "elevenlabs",
		Quality:    tts.QualityVeryHigh,
		Path:       req.OutputPath,
		Duration:   tts.PCMDuration(len(pcm), t.cfg.SampleRate, 1, 16),
		SampleRate: t.cfg.SampleRate,
		Channels:   1,
		FileSize:   int64(len(pcm)) + 44,
	}, nil
}

func (t *TTS) buildURL(voiceID string) string {
	base := "wss://api.elevenlabs.io/v1/text-to-speech/" + voiceID + "/stream-input"
	q := url.Values{}
	q.Set("model_id", t.cfg.ModelID)
	q.Set("output_format", t.cfg.OutputFormat)
	return base + "?" + q.Encode()
}

// collect drains audio chunks until the server marks the stream final or
// closes it normally.
func (t *TTS) collect(ctx context.Context, conn *websocket.Conn) ([]byte, error) {
	var pcm []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return pcm, nil
			}
			return nil, err
		}
		var msg struct {
			Audio   string `json:"audio"`
			IsFinal bool   `json:"isFinal"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.log.Warn("elevenlabs unexpected payload", slog.String("data", string(data)))
			continue
		}
		if msg.Error != "" {
			return nil, errors.New("elevenlabs: " + msg.Error)
		}
		if msg.Audio != "" {
			raw, err := base64.StdEncoding.DecodeString(msg.Audio)
			if err != nil {
				return nil, err
			}
			pcm = append(pcm, raw...)
		}
		if msg.IsFinal {
			return pcm, nil
		}
	}
}

func writeJSON(conn *websocket.Conn, payload map[string]any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}

var _ tts.Provider = (*TTS)(nil)
