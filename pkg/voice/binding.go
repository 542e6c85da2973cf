package voice

import (
	"math/rand"
	"sync"
)

// DefaultSpeaker is used when gender inference finds no matching pool.
const DefaultSpeaker = "agent_male_001"

// Pair is a conversation's fixed (agent, user) voice assignment.
type Pair struct {
	Agent string
	User  string
}

// Binding memoizes one voice pair per conversation id. The first Bind call
// for an id decides the pair; every later call returns it unchanged, so a
// conversation keeps the same two voices for all of its turns. Safe for
// concurrent workers.
type Binding struct {
	mu    sync.Mutex
	pairs map[int]Pair
	reg   *Registry
	rng   *rand.Rand
}

func NewBinding(reg *Registry, rng *rand.Rand) *Binding {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Binding{
		pairs: make(map[int]Pair),
		reg:   reg,
		rng:   rng,
	}
}

// Bind returns the voice pair for a conversation, assigning it on first
// use. The agent pool follows the persona name's inferred gender; the user
// gender is drawn at random for corpus diversity. The persona argument is
// ignored once a pair exists.
func (b *Binding) Bind(conversationID int, agentName string) (agentVoice, userVoice string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pair, ok := b.pairs[conversationID]; ok {
		return pair.Agent, pair.User
	}

	agent := b.pick("agent", InferGender(agentName))
	userGender := GenderMale
	if b.rng.Intn(2) == 1 {
		userGender = GenderFemale
	}
	user := b.pick("user", userGender)

	b.pairs[conversationID] = Pair{Agent: agent, User: user}
	return agent, user
}

func (b *Binding) pick(role string, gender Gender) string {
	pool := b.reg.Pool(role, gender)
	if len(pool) == 0 {
		return DefaultSpeaker
	}
	return pool[b.rng.Intn(len(pool))]
}
