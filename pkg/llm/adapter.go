package llm

import "context"

// ModelClient is the capability a conversation generator needs from a
// language model: one prompt in, free text out, with the caller choosing
// the sampling temperature per turn role.
type ModelClient interface {
	Name() string
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}
