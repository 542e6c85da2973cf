package corpus

import "github.com/harunnryd/sentez/pkg/dialogue"

// Record is the persisted line shape shared by all three corpus views.
// Turn ordering inside a conversation is positional within the file.
type Record struct {
	ConversationID int            `json:"conversation_id"`
	AudioFilepath  string         `json:"audio_filepath,omitempty"`
	Transcript     string         `json:"transcript"`
	SpeakerID      string         `json:"speaker_id"`
	Role           string         `json:"role"`
	Intent         string         `json:"intent"`
	Slot           map[string]any `json:"slot"`
	AudioDuration  float64        `json:"audio_duration,omitempty"`
	SampleRate     int            `json:"sample_rate,omitempty"`
	Channels       int            `json:"channels,omitempty"`
	FileSize       int64          `json:"file_size,omitempty"`
}

func RecordFromTurn(t dialogue.Turn) Record {
	slot := t.Slot
	if slot == nil {
		slot = map[string]any{}
	}
	return Record{
		ConversationID: t.ConversationID,
		AudioFilepath:  t.AudioFilepath,
		Transcript:     t.Transcript,
		SpeakerID:      t.SpeakerID,
		Role:           string(t.Role),
		Intent:         t.Intent,
		Slot:           slot,
		AudioDuration:  t.AudioDuration,
		SampleRate:     t.SampleRate,
		Channels:       t.Channels,
		FileSize:       t.FileSize,
	}
}
