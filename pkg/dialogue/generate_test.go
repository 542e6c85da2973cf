package dialogue

import (
	"context"
	"testing"

	"github.com/harunnryd/sentez/pkg/errorsx"
	"github.com/harunnryd/sentez/pkg/llm"
	"github.com/harunnryd/sentez/pkg/providers/mock"
)

func TestGenerateAcceptsCompleteTurn(t *testing.T) {
	client := mock.NewModelClient(mock.LLMConfig{
		ResponseText: `{"transcript": "Merhaba, size nasıl yardımcı olabilirim?", "intent": "greeting", "role": "agent", "slot": {}}`,
	})
	gen := NewTurnGenerator(client, llm.RetryConfig{MaxAttempts: 1}, nil)

	turn, err := gen.Generate(context.Background(), "prompt", 0.7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if turn.Intent != IntentGreeting || turn.Role != "agent" {
		t.Fatalf("unexpected turn: %+v", turn)
	}
}

func TestGenerateRejectsIncompleteTurn(t *testing.T) {
	cases := map[string]string{
		"missing role":       `{"transcript": "Merhaba, hoş geldiniz efendim.", "intent": "greeting", "slot": {}}`,
		"missing intent":     `{"transcript": "Merhaba, hoş geldiniz efendim.", "role": "agent", "slot": {}}`,
		"missing transcript": `{"intent": "greeting", "role": "agent", "slot": {}}`,
	}
	for name, reply := range cases {
		client := mock.NewModelClient(mock.LLMConfig{ResponseText: reply})
		gen := NewTurnGenerator(client, llm.RetryConfig{MaxAttempts: 1}, nil)
		_, err := gen.Generate(context.Background(), "prompt", 0.7)
		if err == nil {
			t.Errorf("%s: expected parse error", name)
			continue
		}
		if !errorsx.HasReason(err, errorsx.ReasonLLMParse) {
			t.Errorf("%s: want llm_parse reason, got %v", name, err)
		}
	}
}
