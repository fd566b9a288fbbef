// Package mutate applies and reverts single text replacements against a live
// document. Spans are located by searching for text that is known to be in
// the document, so a span the user edited by hand can no longer be found.
package mutate

import (
	"context"
	"errors"
	"fmt"

	"github.com/csheth/plainword/internal/document"
)

// DefaultMaxPattern is the longest search pattern handed to the host.
const DefaultMaxPattern = 250

// ErrTextNotFound means the anchor text is no longer in the document. Nothing
// was changed.
var ErrTextNotFound = errors.New("text not found in document")

// Host is the document capability the mutator needs.
type Host interface {
	Search(ctx context.Context, pattern string) (document.Range, bool, error)
	MatchAt(ctx context.Context, offset int, pattern string) (document.Range, bool, error)
	Slice(ctx context.Context, r document.Range) (string, error)
	Replace(ctx context.Context, r document.Range, text string) error
	Select(ctx context.Context, r document.Range) error
	ClearSelection()
}

// Mutator replaces the first occurrence of an anchor text.
type Mutator struct {
	host       Host
	maxPattern int
}

// New returns a Mutator over host. maxPattern <= 0 selects DefaultMaxPattern.
func New(host Host, maxPattern int) *Mutator {
	if maxPattern <= 0 {
		maxPattern = DefaultMaxPattern
	}
	return &Mutator{host: host, maxPattern: maxPattern}
}

// Apply replaces the first occurrence of anchor with newText and returns the
// document text it overwrote. That text equals anchor up to whitespace; keep
// it to restore line breaks on Revert. Only the first match is ever touched,
// even when the same text appears more than once.
func (m *Mutator) Apply(ctx context.Context, newText, anchor string) (string, error) {
	span, err := m.locate(ctx, anchor)
	if err != nil {
		return "", err
	}
	replaced, err := m.host.Slice(ctx, span)
	if err != nil {
		return "", fmt.Errorf("read matched text: %w", err)
	}
	if err := m.host.Replace(ctx, span, newText); err != nil {
		return "", fmt.Errorf("replace text: %w", err)
	}
	return replaced, nil
}

// Revert puts original back where applied was written.
func (m *Mutator) Revert(ctx context.Context, original, applied string) error {
	_, err := m.Apply(ctx, original, applied)
	return err
}

// Highlight selects the first occurrence of text.
func (m *Mutator) Highlight(ctx context.Context, text string) error {
	span, err := m.locate(ctx, text)
	if err != nil {
		return err
	}
	return m.host.Select(ctx, span)
}

// ClearHighlight drops the selection.
func (m *Mutator) ClearHighlight() {
	m.host.ClearSelection()
}

// locate searches for a bounded prefix of anchor and then checks that the
// whole anchor matches from the same offset, so the returned span covers the
// full text.
func (m *Mutator) locate(ctx context.Context, anchor string) (document.Range, error) {
	if anchor == "" {
		return document.Range{}, ErrTextNotFound
	}
	pattern := truncate(anchor, m.maxPattern)
	match, ok, err := m.host.Search(ctx, pattern)
	if err != nil {
		return document.Range{}, fmt.Errorf("search document: %w", err)
	}
	if !ok {
		return document.Range{}, ErrTextNotFound
	}
	if len(pattern) == len(anchor) {
		return match, nil
	}
	span, ok, err := m.host.MatchAt(ctx, match.Start, anchor)
	if err != nil || !ok {
		return document.Range{}, ErrTextNotFound
	}
	return span, nil
}

func truncate(text string, limit int) string {
	count := 0
	for idx := range text {
		if count == limit {
			return text[:idx]
		}
		count++
	}
	return text
}
