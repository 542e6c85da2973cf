package dialogue

// Role identifies which side of the call produced a turn.
type Role string

const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// RoleForTurn returns the role speaking at a 1-based turn position.
// The agent always opens, so odd positions belong to the agent.
func RoleForTurn(turnNumber int) Role {
	if turnNumber%2 != 0 {
		return RoleAgent
	}
	return RoleUser
}

// Intent labels steered by the policy. The vocabulary is open; this fixed
// subset is structurally required at specific conversation positions.
const (
	IntentGreeting     = "greeting"
	IntentComplaint    = "complaint"
	IntentInfoRequest  = "info_request"
	IntentInfoProvide  = "info_provide"
	IntentSolution     = "solution"
	IntentOptions      = "options_presentation"
	IntentClosing      = "closing"
	IntentThanks       = "thanks"
	IntentConfirmation = "confirmation"
)

// Turn is a single utterance with its annotations and, when audio generation
// is enabled, the synthesized artifact metadata.
type Turn struct {
	ConversationID int            `json:"conversation_id"`
	TurnNumber     int            `json:"turn_number"`
	Role           Role           `json:"role"`
	SpeakerID      string         `json:"speaker_id"`
	Transcript     string         `json:"transcript"`
	Intent         string         `json:"intent"`
	Slot           map[string]any `json:"slot"`
	AudioFilepath  string         `json:"audio_filepath,omitempty"`
	AudioDuration  float64        `json:"audio_duration,omitempty"`
	SampleRate     int            `json:"sample_rate,omitempty"`
	Channels       int            `json:"channels,omitempty"`
	FileSize       int64          `json:"file_size,omitempty"`
}
