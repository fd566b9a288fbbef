package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/plainword/internal/suggest"
)

func scored(text string, score float64) *Suggestion {
	return NewSuggestion(suggest.Result{Original: text, Simplified: text, Score: score})
}

func TestLoadBandIsInclusive(t *testing.T) {
	q := NewQueue(1)
	low := scored("low", 36.18)
	high := scored("high", 50.07)
	q.Load([]*Suggestion{
		scored("too low", 36.17),
		low,
		scored("too high", 50.08),
		high,
		{Current: Candidate{Text: "unscored"}},
	}, DefaultBand)

	require.Equal(t, 2, q.Len())
	assert.Equal(t, []*Suggestion{low, high}, q.Items())
	assert.Equal(t, 1, q.Page())
}

func TestRemoveLastItemOnLastPageMovesCursor(t *testing.T) {
	q := NewQueue(2)
	items := []*Suggestion{scored("a", 40), scored("b", 40), scored("c", 40), scored("d", 40), scored("e", 40)}
	q.Load(items, DefaultBand)
	require.Equal(t, 3, q.PageCount())

	require.True(t, q.NextPage())
	require.True(t, q.NextPage())
	assert.False(t, q.NextPage())
	assert.Equal(t, []*Suggestion{items[4]}, q.CurrentPageItems())

	idx, ok := q.Remove(items[4])
	require.True(t, ok)
	assert.Equal(t, 4, idx)
	assert.Equal(t, 2, q.Page())
	assert.Equal(t, 2, q.PageCount())
}

func TestCursorStaysOneWhenEmpty(t *testing.T) {
	q := NewQueue(1)
	a := scored("a", 40)
	q.Load([]*Suggestion{a}, DefaultBand)

	_, ok := q.Remove(a)
	require.True(t, ok)
	assert.True(t, q.Empty())
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 0, q.PageCount())
	assert.Nil(t, q.CurrentPageItems())
	assert.False(t, q.PrevPage())
	assert.False(t, q.NextPage())
}

func TestInsertAtClampsAndFocuses(t *testing.T) {
	q := NewQueue(1)
	a, b, c := scored("a", 40), scored("b", 40), scored("c", 40)
	q.Load([]*Suggestion{a, b}, DefaultBand)

	assert.Equal(t, 2, q.InsertAt(c, 99))
	assert.Equal(t, 3, q.Page())
	assert.Equal(t, []*Suggestion{a, b, c}, q.Items())

	_, ok := q.Remove(a)
	require.True(t, ok)
	assert.Equal(t, 0, q.InsertAt(a, -3))
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, []*Suggestion{a, b, c}, q.Items())
}

func TestFindAndRemoveUnknown(t *testing.T) {
	q := NewQueue(0)
	a := scored("a", 40)
	q.Load([]*Suggestion{a}, DefaultBand)

	got, idx, ok := q.Find(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 0, idx)

	_, ok = q.Remove(scored("x", 40))
	assert.False(t, ok)
	assert.Equal(t, 1, q.PageSize())
}

func TestHistoryIsLIFO(t *testing.T) {
	var h History
	a, b := scored("a", 40), scored("b", 40)
	h.Push(DenyRecord{Suggestion: a})
	h.Push(ModifyRecord{Suggestion: b})

	top, ok := h.Peek()
	require.True(t, ok)
	assert.Same(t, b, top.Target())

	first, _ := h.Pop()
	second, _ := h.Pop()
	assert.Same(t, b, first.Target())
	assert.Same(t, a, second.Target())
	_, ok = h.Pop()
	assert.False(t, ok)
}
