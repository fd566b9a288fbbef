package suggest

import (
	"context"
	"regexp"
	"strings"
)

// DefaultMockScore sits inside the default acceptance band so every mock
// rewrite reaches the review queue.
const DefaultMockScore = 42

var (
	connectiveRe = regexp.MustCompile(`(?i)\b(daarom|echter|desondanks)\b`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// Mock rewrites sentences locally with a fixed transform. It never fails.
type Mock struct {
	Score float64
}

// NewMock returns a mock source that reports score for every rewrite.
func NewMock(score float64) *Mock {
	return &Mock{Score: score}
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Suggest(ctx context.Context, sentence string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{
		Original:   sentence,
		Simplified: Simplify(sentence),
		Score:      m.Score,
	}, nil
}

// Simplify is the mock transform: commas go, a few formal connectives become
// "omdat", whitespace is collapsed and the sentence ends with punctuation.
func Simplify(sentence string) string {
	out := strings.ReplaceAll(sentence, ",", "")
	out = connectiveRe.ReplaceAllString(out, "omdat")
	out = spaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return "."
	}
	switch out[len(out)-1] {
	case '.', '!', '?':
		return out
	}
	return out + "."
}
