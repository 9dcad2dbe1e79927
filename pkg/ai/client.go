// Package ai wraps the generative text provider behind a one-method
// contract so the search pipeline stays vendor-agnostic.
package ai

import (
	"context"
)

// Completer sends a prompt to a text-completion provider and returns the
// raw response text. Implementations do not retry; a failed call surfaces
// immediately so the caller can fall back.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
