// Package qa wraps the question-answering capability docqa delegates to:
// given a question and a context passage, return an answer string.
package qa

import (
	"context"
	"fmt"

	"github.com/metcalfc/docqa/internal/config"
)

// Answerer answers a question from a context passage. Callers truncate the
// context; implementations use whatever they are given.
type Answerer interface {
	Answer(ctx context.Context, question, passage string) (string, error)
}

// Func adapts a plain function to Answerer.
type Func func(ctx context.Context, question, passage string) (string, error)

// Answer calls f.
func (f Func) Answer(ctx context.Context, question, passage string) (string, error) {
	return f(ctx, question, passage)
}

// New builds the backend selected by cfg.Backend.
func New(cfg config.Answerer) (Answerer, error) {
	switch cfg.Backend {
	case config.BackendExtractive, "":
		return NewExtractive(), nil
	case config.BackendOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unknown answerer backend %q", cfg.Backend)
	}
}
