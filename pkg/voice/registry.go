package voice

import (
	"sort"
	"strings"
)

// Profile describes one synthetic voice: which provider renders it, the
// provider-specific handle, and the declared fallback. Profiles are loaded
// once at startup and never mutated.
type Profile struct {
	Provider         string
	VoiceID          string
	FallbackProvider string
	FallbackVoice    string
	Gender           Gender
	Characteristics  string
}

// Registry is the process-wide read-only voice table keyed by speaker id.
type Registry struct {
	profiles map[string]Profile
}

func NewRegistry(profiles map[string]Profile) *Registry {
	return &Registry{profiles: profiles}
}

func (r *Registry) Lookup(speakerID string) (Profile, bool) {
	p, ok := r.profiles[speakerID]
	return p, ok
}

// Pool returns the sorted speaker ids whose key carries the given role and
// gender prefix, e.g. agent_male_*. Sorted so a seeded rng draws the same
// voices run over run.
func (r *Registry) Pool(role string, gender Gender) []string {
	prefix := role + "_" + string(gender) + "_"
	var out []string
	for id := range r.profiles {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry is the built-in gender-split ElevenLabs voice table with
// Google Cloud TTS as the declared fallback for every profile.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Profile{
		"agent_male_001": {
			Provider: "elevenlabs", VoiceID: "pNInz6obpgDQGcFmaJgB",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-B",
			Gender: GenderMale, Characteristics: "professional male, calm, helpful",
		},
		"agent_male_002": {
			Provider: "elevenlabs", VoiceID: "ErXwobaYiN019PkySvjV",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-B",
			Gender: GenderMale, Characteristics: "professional male, clear, authoritative",
		},
		"agent_male_003": {
			Provider: "elevenlabs", VoiceID: "VR6AewLTigWG4xSOukaG",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-B",
			Gender: GenderMale, Characteristics: "professional male, confident, mature",
		},
		"agent_female_001": {
			Provider: "elevenlabs", VoiceID: "EXAVITQu4vr4xnSDxMaL",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-C",
			Gender: GenderFemale, Characteristics: "professional female, warm, confident",
		},
		"agent_female_002": {
			Provider: "elevenlabs", VoiceID: "pMsXgVXv3BLzUgSXRplE",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-C",
			Gender: GenderFemale, Characteristics: "professional female, authoritative, clear",
		},
		"agent_female_003": {
			Provider: "elevenlabs", VoiceID: "ThT5KcBeYPX3keUQqHPh",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-C",
			Gender: GenderFemale, Characteristics: "professional female, energetic, helpful",
		},
		"user_male_001": {
			Provider: "elevenlabs", VoiceID: "flq6f7yk4E4fJM5XTYuZ",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-A",
			Gender: GenderMale, Characteristics: "natural male, casual, friendly",
		},
		"user_male_002": {
			Provider: "elevenlabs", VoiceID: "pNInz6obpgDQGcFmaJgB",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-A",
			Gender: GenderMale, Characteristics: "natural male, concerned, mature",
		},
		"user_male_003": {
			Provider: "elevenlabs", VoiceID: "ErXwobaYiN019PkySvjV",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-A",
			Gender: GenderMale, Characteristics: "natural male, patient, elderly",
		},
		"user_female_001": {
			Provider: "elevenlabs", VoiceID: "21m00Tcm4TlvDq8ikWAM",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-D",
			Gender: GenderFemale, Characteristics: "natural female, slightly concerned",
		},
		"user_female_002": {
			Provider: "elevenlabs", VoiceID: "EXAVITQu4vr4xnSDxMaL",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-D",
			Gender: GenderFemale, Characteristics: "natural female, patient, mature",
		},
		"user_female_003": {
			Provider: "elevenlabs", VoiceID: "ThT5KcBeYPX3keUQqHPh",
			FallbackProvider: "google", FallbackVoice: "tr-TR-Wavenet-D",
			Gender: GenderFemale, Characteristics: "natural female, energetic, young",
		},
	})
}
