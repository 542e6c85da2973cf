package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/harunnryd/sentez/pkg/errorsx"
)

const RunStateFile = "run_state.json"

// RunState tracks the highest conversation id ever written to the corpus,
// so interrupted or repeated runs keep allocating dense, non-colliding ids.
type RunState struct {
	LastConversationID int `json:"last_conversation_id"`
}

// LoadRunState reads run_state.json from dir. When the file does not exist
// but a manifest does, the manifest is scanned once to recover the highest
// id from corpora produced before run state was recorded.
func LoadRunState(dir string) (RunState, error) {
	path := filepath.Join(dir, RunStateFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return migrateFromManifest(dir)
	}
	if err != nil {
		return RunState{}, errorsx.Errorf(errorsx.ReasonCorpusWrite, "read run state: %w", err)
	}
	var st RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return RunState{}, errorsx.Errorf(errorsx.ReasonCorpusWrite, "decode run state: %w", err)
	}
	if st.LastConversationID < 0 {
		st.LastConversationID = 0
	}
	return st, nil
}

// SaveRunState writes run_state.json atomically via a temp file rename.
func SaveRunState(dir string, st RunState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errorsx.Errorf(errorsx.ReasonCorpusWrite, "encode run state: %w", err)
	}
	tmp := filepath.Join(dir, RunStateFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errorsx.Errorf(errorsx.ReasonCorpusWrite, "write run state: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, RunStateFile)); err != nil {
		return errorsx.Errorf(errorsx.ReasonCorpusWrite, "commit run state: %w", err)
	}
	return nil
}

func migrateFromManifest(dir string) (RunState, error) {
	f, err := os.Open(filepath.Join(dir, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return RunState{}, nil
	}
	if err != nil {
		return RunState{}, errorsx.Errorf(errorsx.ReasonCorpusWrite, "scan manifest: %w", err)
	}
	defer f.Close()

	var st RunState
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var rec struct {
			ConversationID int `json:"conversation_id"`
		}
		if json.Unmarshal(sc.Bytes(), &rec) != nil {
			continue
		}
		if rec.ConversationID > st.LastConversationID {
			st.LastConversationID = rec.ConversationID
		}
	}
	if err := sc.Err(); err != nil {
		return RunState{}, errorsx.Errorf(errorsx.ReasonCorpusWrite, "scan manifest: %w", err)
	}
	return st, nil
}
