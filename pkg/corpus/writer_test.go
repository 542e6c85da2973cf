package corpus

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harunnryd/sentez/pkg/dialogue"
)

func sampleConversation(id int) []dialogue.Turn {
	return []dialogue.Turn{
		{
			ConversationID: id,
			TurnNumber:     1,
			Role:           dialogue.RoleAgent,
			SpeakerID:      "agent_female_001",
			Transcript:     "Merhaba, ben Ayşe. Size nasıl yardımcı olabilirim?",
			Intent:         dialogue.IntentGreeting,
			Slot:           map[string]any{},
			AudioFilepath:  "audio/agent/0001_01.wav",
			AudioDuration:  3.2,
			SampleRate:     16000,
			Channels:       1,
			FileSize:       102400,
		},
		{
			ConversationID: id,
			TurnNumber:     2,
			Role:           dialogue.RoleUser,
			SpeakerID:      "user_male_002",
			Transcript:     "Merhaba, faturamda anlamadığım bir ücret var.",
			Intent:         dialogue.IntentComplaint,
			Slot:           map[string]any{"konu": "fatura"},
		},
	}
}

func readLines(t *testing.T, path string) []Record {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	var out []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		out = append(out, rec)
	}
	return out
}

func TestAppendConversation(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.AppendConversation(sampleConversation(1)); err != nil {
		t.Fatalf("AppendConversation: %v", err)
	}

	manifest := readLines(t, filepath.Join(dir, ManifestFile))
	if len(manifest) != 2 {
		t.Fatalf("manifest lines = %d, want 2", len(manifest))
	}
	if manifest[0].Role != "agent" || manifest[1].Role != "user" {
		t.Fatalf("manifest roles = %s, %s", manifest[0].Role, manifest[1].Role)
	}
	if manifest[0].AudioFilepath != "audio/agent/0001_01.wav" {
		t.Fatalf("audio_filepath = %q", manifest[0].AudioFilepath)
	}

	asr := readLines(t, filepath.Join(dir, ASRFile))
	if len(asr) != 2 {
		t.Fatalf("asr lines = %d, want 2", len(asr))
	}

	tts := readLines(t, filepath.Join(dir, TTSFile))
	if len(tts) != 1 {
		t.Fatalf("tts lines = %d, want 1", len(tts))
	}
	if tts[0].Role != "agent" {
		t.Fatalf("tts role = %s, want agent", tts[0].Role)
	}
}

func TestAppendConversationAccumulates(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for id := 1; id <= 3; id++ {
		if err := w.AppendConversation(sampleConversation(id)); err != nil {
			t.Fatalf("AppendConversation %d: %v", id, err)
		}
	}
	manifest := readLines(t, filepath.Join(dir, ManifestFile))
	if len(manifest) != 6 {
		t.Fatalf("manifest lines = %d, want 6", len(manifest))
	}
	if manifest[4].ConversationID != 3 {
		t.Fatalf("conversation_id = %d, want 3", manifest[4].ConversationID)
	}
}

func TestAppendConversationEmpty(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.AppendConversation(nil); err == nil {
		t.Fatal("expected error for empty conversation")
	}
}

func TestRecordFromTurnNilSlot(t *testing.T) {
	rec := RecordFromTurn(dialogue.Turn{Transcript: "tamam", Intent: "confirmation"})
	if rec.Slot == nil {
		t.Fatal("slot should be initialized")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["slot"]; !ok {
		t.Fatal("slot key missing from encoded record")
	}
	if _, ok := raw["audio_filepath"]; ok {
		t.Fatal("audio_filepath should be omitted for text-only turns")
	}
}
