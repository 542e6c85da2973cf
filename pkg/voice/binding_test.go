package voice

import (
	"math/rand"
	"strings"
	"testing"
)

func TestInferGender(t *testing.T) {
	cases := map[string]Gender{
		"Ahmet":   GenderMale,
		"Mehmet":  GenderMale,
		"Ayşe":    GenderFemale,
		"Zeynep":  GenderFemale,
		"Bilinmez": GenderMale,
		"Derya":   GenderFemale, // suffix heuristic
	}
	for name, want := range cases {
		if got := InferGender(name); got != want {
			t.Errorf("InferGender(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestBindIsStable(t *testing.T) {
	b := NewBinding(DefaultRegistry(), rand.New(rand.NewSource(5)))

	agent1, user1 := b.Bind(1, "Ayşe")
	agent2, user2 := b.Bind(1, "Ahmet")
	if agent1 != agent2 || user1 != user2 {
		t.Fatalf("pair changed on rebind: %s/%s vs %s/%s", agent1, user1, agent2, user2)
	}
}

func TestBindFollowsAgentGender(t *testing.T) {
	b := NewBinding(DefaultRegistry(), rand.New(rand.NewSource(5)))

	agent, user := b.Bind(1, "Ayşe")
	if !strings.HasPrefix(agent, "agent_female_") {
		t.Fatalf("agent voice %q does not match female persona", agent)
	}
	if !strings.HasPrefix(user, "user_") {
		t.Fatalf("user voice %q outside the user pool", user)
	}

	agent, _ = b.Bind(2, "Ahmet")
	if !strings.HasPrefix(agent, "agent_male_") {
		t.Fatalf("agent voice %q does not match male persona", agent)
	}
}

func TestBindIndependentPerConversation(t *testing.T) {
	b := NewBinding(DefaultRegistry(), rand.New(rand.NewSource(6)))

	seen := map[string]bool{}
	for id := 1; id <= 30; id++ {
		_, user := b.Bind(id, "Ali")
		seen[user] = true
	}
	if len(seen) < 2 {
		t.Fatalf("user voices never varied across 30 conversations: %v", seen)
	}
}

func TestPickFallsBackOnEmptyPool(t *testing.T) {
	reg := NewRegistry(map[string]Profile{
		"agent_male_001": {Provider: "elevenlabs", VoiceID: "x", Gender: GenderMale},
	})
	b := NewBinding(reg, rand.New(rand.NewSource(7)))

	_, user := b.Bind(1, "Ali")
	if user != DefaultSpeaker {
		t.Fatalf("user voice = %q, want default speaker", user)
	}
}

func TestPoolSortedAndScoped(t *testing.T) {
	reg := DefaultRegistry()
	pool := reg.Pool("agent", GenderFemale)
	if len(pool) != 3 {
		t.Fatalf("pool size = %d, want 3", len(pool))
	}
	for i := 1; i < len(pool); i++ {
		if pool[i-1] >= pool[i] {
			t.Fatalf("pool not sorted: %v", pool)
		}
	}
	for _, id := range pool {
		if !strings.HasPrefix(id, "agent_female_") {
			t.Fatalf("foreign id in pool: %s", id)
		}
	}
}
