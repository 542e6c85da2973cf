package dialogue

import (
	"math/rand"
	"strings"
	"testing"
)

func promptContext(historyLen int) TurnContext {
	history := make([]Turn, historyLen)
	for i := range history {
		history[i] = Turn{
			TurnNumber: i + 1,
			Role:       RoleForTurn(i + 1),
			Transcript: "geçmiş tur",
			Intent:     IntentInfoProvide,
		}
	}
	return TurnContext{
		ConversationID: 42,
		AgentName:      "Zeynep",
		Scenario:       DefaultScenarios()[ScenarioBillingDispute],
		Role:           RoleAgent,
		TurnNumber:     historyLen + 1,
		TotalTurns:     10,
		SpeakerID:      "agent_female_001",
		History:        history,
		Directive:      Directive{Text: "Bilgi iste.", Intent: IntentInfoRequest},
	}
}

func TestRenderCarriesTurnState(t *testing.T) {
	r := NewPromptRenderer(20, 200, rand.New(rand.NewSource(1)))
	prompt := r.Render(promptContext(2))

	for _, want := range []string{
		"Zeynep",
		"**Tur**: 3/10",
		"**Görüşme ID**: 42",
		"billing_dispute",
		"Bilgi iste.",
		`Intent: "info_request"`,
		"20-200 karakter",
		"agent_female_001",
		"JSON YANITI:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRenderWindowsHistory(t *testing.T) {
	r := NewPromptRenderer(20, 200, rand.New(rand.NewSource(1)))
	prompt := r.Render(promptContext(8))

	if n := strings.Count(prompt, `"turn_number"`); n != historyWindow {
		t.Fatalf("history lines = %d, want %d", n, historyWindow)
	}
	// oldest surviving turn is number 6 of 8
	if !strings.Contains(prompt, `"turn_number":6`) {
		t.Fatal("rolling window kept the wrong turns")
	}
	if strings.Contains(prompt, `"turn_number":5`) {
		t.Fatal("window leaked an old turn")
	}
}
