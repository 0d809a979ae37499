// Package llm talks to hosted text-generation models and turns their free text
// into recipe suggestions.
package llm

import (
	"context"
	"errors"
)

// FallbackText is shown whenever no suggestion could be produced
const FallbackText = "No suggestion available."

var (
	ErrMissingAPIKey = errors.New("llm: missing API key")
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Generator produces a completion for a single user prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
