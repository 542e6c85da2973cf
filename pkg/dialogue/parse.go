package dialogue

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// ParseStatus tags the outcome of extracting a turn from model output.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseNoMatch
	ParseInvalidJSON
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseNoMatch:
		return "no_match"
	case ParseInvalidJSON:
		return "invalid_json"
	}
	return "unknown"
}

// ParsedTurn is the model-authored view of a turn. The orchestrator treats
// conversation_id, speaker_id, role and the audio path as advisory only; the
// authoritative values come from the attempt state.
type ParsedTurn struct {
	ConversationID int
	AudioFilepath  string
	Transcript     string
	SpeakerID      string
	Role           string
	Intent         string
	Slot           map[string]any
}

// ParseResult is a tagged extraction result. It never carries a Go error:
// malformed model output is an expected condition, not an exception.
type ParseResult struct {
	Status ParseStatus
	Turn   ParsedTurn
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractTurn scans free-form model output for one embedded JSON object:
// a fenced code block first, else the first balanced-brace substring.
func ExtractTurn(raw string) ParseResult {
	var candidate string
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else {
		candidate = balancedBraces(raw)
	}
	if candidate == "" {
		return ParseResult{Status: ParseNoMatch}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return ParseResult{Status: ParseInvalidJSON}
	}

	turn := ParsedTurn{
		ConversationID: intValue(payload["conversation_id"]),
		AudioFilepath:  stringValue(payload["audio_filepath"]),
		Transcript:     strings.TrimSpace(stringValue(payload["transcript"])),
		SpeakerID:      stringValue(payload["speaker_id"]),
		Role:           stringValue(payload["role"]),
		Intent:         stringValue(payload["intent"]),
		Slot:           map[string]any{},
	}
	if slot, ok := payload["slot"].(map[string]any); ok {
		turn.Slot = slot
	}
	return ParseResult{Status: ParseOK, Turn: turn}
}

// balancedBraces returns the first brace-delimited substring whose braces
// balance, tracking JSON string and escape state so braces inside strings
// do not count.
func balancedBraces(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	}
	return 0
}
