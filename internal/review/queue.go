package review

import "github.com/google/uuid"

// Queue is the ordered list of pending suggestions with a 1-based page
// cursor. Resolved suggestions are removed, so positions shift.
type Queue struct {
	items    []*Suggestion
	pageSize int
	page     int
}

// NewQueue returns an empty queue. Page sizes below one are treated as one.
func NewQueue(pageSize int) *Queue {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Queue{pageSize: pageSize, page: 1}
}

// Load replaces the queue with the suggestions whose current score is in
// band and resets the cursor to the first page.
func (q *Queue) Load(suggestions []*Suggestion, band Band) {
	q.items = make([]*Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s == nil || s.Current.Score == nil || !band.Contains(*s.Current.Score) {
			continue
		}
		q.items = append(q.items, s)
	}
	q.page = 1
}

// Remove takes s out of the queue and returns the index it had. The cursor
// is clamped to the new last page.
func (q *Queue) Remove(s *Suggestion) (int, bool) {
	for i, item := range q.items {
		if item.ID != s.ID {
			continue
		}
		q.items = append(q.items[:i], q.items[i+1:]...)
		q.clamp()
		return i, true
	}
	return -1, false
}

// InsertAt puts s back at index, clamped to [0, Len], and moves the cursor
// to the page that now shows it.
func (q *Queue) InsertAt(s *Suggestion, index int) int {
	if index < 0 {
		index = 0
	}
	if index > len(q.items) {
		index = len(q.items)
	}
	q.items = append(q.items, nil)
	copy(q.items[index+1:], q.items[index:])
	q.items[index] = s
	q.focus(index)
	return index
}

// CurrentPageItems returns the suggestions on the current page.
func (q *Queue) CurrentPageItems() []*Suggestion {
	start := (q.page - 1) * q.pageSize
	if start >= len(q.items) {
		return nil
	}
	end := min(start+q.pageSize, len(q.items))
	out := make([]*Suggestion, end-start)
	copy(out, q.items[start:end])
	return out
}

// NextPage advances the cursor and reports whether it moved.
func (q *Queue) NextPage() bool {
	if q.page >= q.PageCount() {
		return false
	}
	q.page++
	return true
}

// PrevPage moves the cursor back and reports whether it moved.
func (q *Queue) PrevPage() bool {
	if q.page <= 1 {
		return false
	}
	q.page--
	return true
}

func (q *Queue) Page() int     { return q.page }
func (q *Queue) PageSize() int { return q.pageSize }
func (q *Queue) Len() int      { return len(q.items) }
func (q *Queue) Empty() bool   { return len(q.items) == 0 }

// PageCount is ceil(Len/PageSize); zero for an empty queue.
func (q *Queue) PageCount() int {
	return (len(q.items) + q.pageSize - 1) / q.pageSize
}

// Find returns the pending suggestion with id and its index.
func (q *Queue) Find(id uuid.UUID) (*Suggestion, int, bool) {
	for i, item := range q.items {
		if item.ID == id {
			return item, i, true
		}
	}
	return nil, -1, false
}

// Items returns a copy of the queue in order.
func (q *Queue) Items() []*Suggestion {
	out := make([]*Suggestion, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Queue) focus(index int) {
	q.page = index/q.pageSize + 1
	q.clamp()
}

func (q *Queue) clamp() {
	last := max(1, q.PageCount())
	if q.page > last {
		q.page = last
	}
	if q.page < 1 {
		q.page = 1
	}
}
