package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/harunnryd/sentez/pkg/dialogue"
	"github.com/harunnryd/sentez/pkg/errorsx"
)

const (
	ManifestFile = "training_manifest.jsonl"
	ASRFile      = "asr_training_data.jsonl"
	TTSFile      = "tts_training_data.jsonl"
)

// Writer appends accepted conversations to the three corpus files.
// A conversation lands in all files or in none; partial conversations
// never reach disk. Safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	dir string
}

func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errorsx.Errorf(errorsx.ReasonCorpusWrite, "create corpus dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// AppendConversation writes every turn to the manifest and ASR files and
// the agent turns to the TTS file. All lines are encoded before any byte
// is written, so an encode failure leaves the files untouched.
func (w *Writer) AppendConversation(turns []dialogue.Turn) error {
	if len(turns) == 0 {
		return errorsx.Errorf(errorsx.ReasonCorpusWrite, "empty conversation")
	}

	var manifest, tts []byte
	for _, t := range turns {
		line, err := json.Marshal(RecordFromTurn(t))
		if err != nil {
			return errorsx.Errorf(errorsx.ReasonCorpusWrite, "encode record: %w", err)
		}
		line = append(line, '\n')
		manifest = append(manifest, line...)
		if t.Role == dialogue.RoleAgent {
			tts = append(tts, line...)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.appendFile(ManifestFile, manifest); err != nil {
		return err
	}
	if err := w.appendFile(ASRFile, manifest); err != nil {
		return err
	}
	return w.appendFile(TTSFile, tts)
}

func (w *Writer) appendFile(name string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	path := filepath.Join(w.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errorsx.Errorf(errorsx.ReasonCorpusWrite, "open %s: %w", name, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return errorsx.Errorf(errorsx.ReasonCorpusWrite, "append %s: %w", name, err)
	}
	return f.Sync()
}
