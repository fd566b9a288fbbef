// Package suggest produces simplified rewrites of single sentences. Sources
// are interchangeable: a local mock, the remote suggestion service, an LLM,
// or any of those behind an on-disk cache.
package suggest

import (
	"context"
	"errors"
	"log"
)

// ErrUnavailable reports that a source could not produce a rewrite for a
// sentence. Batch skips such sentences.
var ErrUnavailable = errors.New("suggestion unavailable")

// Result is one rewrite. OriginalScore is nil when the source did not score
// the input sentence.
type Result struct {
	Original      string   `json:"original"`
	OriginalScore *float64 `json:"originalScore,omitempty"`
	Simplified    string   `json:"simplified"`
	Score         float64  `json:"score"`
}

// Source rewrites one sentence.
type Source interface {
	Suggest(ctx context.Context, sentence string) (Result, error)
	Name() string
}

// Batch asks src for a rewrite of every sentence, one request at a time and
// in input order. Failed sentences are logged and left out of the result.
// Only a cancelled context stops the batch early; the results gathered so far
// are returned with the context error.
func Batch(ctx context.Context, src Source, sentences []string) ([]Result, error) {
	results := make([]Result, 0, len(sentences))
	for i, s := range sentences {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := src.Suggest(ctx, s)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return results, ctxErr
			}
			log.Printf("[suggest] %s: sentence %d skipped: %v", src.Name(), i+1, err)
			continue
		}
		results = append(results, res)
	}
	log.Printf("[suggest] %s: %d/%d sentences rewritten", src.Name(), len(results), len(sentences))
	return results, nil
}

func scorePtr(v float64) *float64 {
	return &v
}
