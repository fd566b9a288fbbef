// Package review holds the suggestion lifecycle: the paginated queue of
// pending rewrites, the session that accepts, denies, edits and regenerates
// them, and the undo history that reverses those actions in LIFO order.
package review

import (
	"github.com/google/uuid"

	"github.com/csheth/plainword/internal/suggest"
)

// Status is where a suggestion is in its lifecycle.
type Status int

const (
	Pending Status = iota
	Accepted
	Denied
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Denied:
		return "denied"
	default:
		return "pending"
	}
}

// Original is the sentence as it appeared in the document. It never changes
// and is the only way to find the sentence again.
type Original struct {
	Text  string
	Score *float64
}

// Candidate is the rewrite currently on offer. Pristine is the text the
// source produced, so a manual edit can be told apart from it.
type Candidate struct {
	Text     string
	Score    *float64
	Pristine string
}

// Edited reports whether the candidate differs from what the source produced.
func (c Candidate) Edited() bool {
	return c.Text != c.Pristine
}

// Suggestion is one sentence under review.
type Suggestion struct {
	ID       uuid.UUID
	Original Original
	Current  Candidate
	Status   Status
}

// NewSuggestion turns a source result into a pending suggestion.
func NewSuggestion(res suggest.Result) *Suggestion {
	score := res.Score
	return &Suggestion{
		ID:       uuid.New(),
		Original: Original{Text: res.Original, Score: res.OriginalScore},
		Current: Candidate{
			Text:     res.Simplified,
			Score:    &score,
			Pristine: res.Simplified,
		},
		Status: Pending,
	}
}

// Band is the closed score interval a candidate must fall in to be shown.
type Band struct {
	Min float64
	Max float64
}

// DefaultBand matches the readability range of B1-level Dutch.
var DefaultBand = Band{Min: 36.18, Max: 50.07}

// Contains reports whether score lies inside the band, bounds included.
func (b Band) Contains(score float64) bool {
	return score >= b.Min && score <= b.Max
}
