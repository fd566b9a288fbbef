package suggest

import (
	"context"
	"fmt"

	"github.com/csheth/plainword/internal/llm"
	"github.com/csheth/plainword/internal/readability"
)

// LLM rewrites sentences with a language model and scores both sides
// locally, since models do not report a readability score.
type LLM struct {
	client llm.Client
}

// NewLLM wraps an llm.Client as a Source.
func NewLLM(client llm.Client) *LLM {
	return &LLM{client: client}
}

func (l *LLM) Name() string { return l.client.Name() }

func (l *LLM) Suggest(ctx context.Context, sentence string) (Result, error) {
	rewrite, err := l.client.Simplify(ctx, sentence)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Result{
		Original:      sentence,
		OriginalScore: scorePtr(readability.Douma(sentence)),
		Simplified:    rewrite,
		Score:         readability.Douma(rewrite),
	}, nil
}
