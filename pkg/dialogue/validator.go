package dialogue

import (
	"fmt"

	"github.com/harunnryd/sentez/pkg/errorsx"
)

// Bounds are the structural limits an accepted conversation must satisfy.
type Bounds struct {
	MinTurns     int
	MaxTurns     int
	MinChars     int
	MaxChars     int
	RequireAudio bool
}

// ValidateConversation checks a completed turn list against every corpus
// invariant, short-circuiting on the first failure. It is pure: the same
// history always yields the same verdict, and nothing is mutated.
//
// Invariants, in check order: turn count even and within bounds, strict
// role alternation starting with the agent, transcript length bounds per
// turn (plus audio metadata when required), agent closing at position
// len-1, user thanks/confirmation at the final position.
func ValidateConversation(history []Turn, b Bounds) error {
	n := len(history)
	if n < b.MinTurns || n > b.MaxTurns {
		return fail("turn count %d outside [%d, %d]", n, b.MinTurns, b.MaxTurns)
	}
	if n%2 != 0 {
		return fail("turn count %d is odd", n)
	}
	if n < 2 {
		return fail("conversation needs at least one exchange, got %d turns", n)
	}

	for i, turn := range history {
		if expected := RoleForTurn(i + 1); turn.Role != expected {
			return fail("turn %d role %q, expected %q", i+1, turn.Role, expected)
		}
		if l := len([]rune(turn.Transcript)); l < b.MinChars || l > b.MaxChars {
			return fail("turn %d transcript length %d outside [%d, %d]", i+1, l, b.MinChars, b.MaxChars)
		}
		if b.RequireAudio && turn.AudioDuration <= 0 {
			return fail("turn %d missing audio duration", i+1)
		}
	}

	closing := history[n-2]
	if closing.Role != RoleAgent || closing.Intent != IntentClosing {
		return fail("turn %d must be agent closing, got %s/%s", n-1, closing.Role, closing.Intent)
	}
	last := history[n-1]
	if last.Role != RoleUser || (last.Intent != IntentThanks && last.Intent != IntentConfirmation) {
		return fail("final turn must be user thanks or confirmation, got %s/%s", last.Role, last.Intent)
	}
	return nil
}

func fail(format string, args ...any) error {
	return errorsx.Wrap(fmt.Errorf(format, args...), errorsx.ReasonValidation)
}
