package completion

import (
	"context"
	"errors"
)

// ErrCompletion wraps every failure of the completion provider
var ErrCompletion = errors.New("completion failed")

// Completer turns a single prompt into the model's plain-text answer
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt)
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
