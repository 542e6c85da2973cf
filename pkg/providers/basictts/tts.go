package basictts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harunnryd/sentez/pkg/resilience"
	"github.com/harunnryd/sentez/pkg/tts"
)

const secondsPerChar = 0.1

// TTS is the guaranteed-available baseline provider backed by the public
// Google Translate speech endpoint. No credentials, basic quality, MP3
// output, only consulted when the deployment allows low-quality fallback.
type TTS struct {
	client *http.Client
}

func New() *TTS {
	return &TTS{client: &http.Client{Timeout: 30 * time.Second}}
}

func (t *TTS) Name() string    { return "basic" }
func (t *TTS) Quality() string { return tts.QualityBasic }

func (t *TTS) Synthesize(ctx context.Context, req tts.Request) (tts.Result, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", "tr")
	q.Set("q", req.Text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://translate.google.com/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return tts.Result{}, err
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return tts.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return tts.Result{}, resilience.RateLimitError{Provider: "basic", Message: resp.Status}
	}
	if resp.StatusCode != http.StatusOK {
		return tts.Result{}, errors.New("basic tts: " + resp.Status)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return tts.Result{}, err
	}
	if len(audio) == 0 {
		return tts.Result{}, errors.New("basic tts returned no audio")
	}

	// MP3 passthrough, no transcode; the artifact keeps its real format.
	path := strings.TrimSuffix(req.OutputPath, filepath.Ext(req.OutputPath)) + ".mp3"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return tts.Result{}, err
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return tts.Result{}, err
	}

	return tts.Result{
		Provider:   "basic",
		Quality:    tts.QualityBasic,
		Path:       path,
		Duration:   tts.EstimateDuration(req.Text, secondsPerChar),
		SampleRate: 24000,
		Channels:   1,
		FileSize:   int64(len(audio)),
		Estimated:  true,
	}, nil
}

var _ tts.Provider = (*TTS)(nil)
