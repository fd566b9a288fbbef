package review

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/csheth/plainword/internal/erruser"
	"github.com/csheth/plainword/internal/sentence"
	"github.com/csheth/plainword/internal/suggest"
)

// Mutator edits the document by anchored search.
type Mutator interface {
	// Apply returns the document text it replaced.
	Apply(ctx context.Context, newText, anchor string) (string, error)
	Revert(ctx context.Context, original, applied string) error
}

// Document is the text an export reads sentences from.
type Document interface {
	Text(ctx context.Context) (string, error)
}

// Options configure a session.
type Options struct {
	Band     Band
	PageSize int
}

// Session is the controller for one editing session. All state changes go
// through it; the UI only reads Snapshots.
type Session struct {
	mu       sync.Mutex
	mutator  Mutator
	source   suggest.Source
	band     Band
	queue    *Queue
	history  History
	inflight map[uuid.UUID]struct{}
	loaded   bool
	busy     atomic.Bool
}

// NewSession wires a session to the document mutator and suggestion source.
// A zero band uses DefaultBand.
func NewSession(mutator Mutator, source suggest.Source, opts Options) *Session {
	band := opts.Band
	if band == (Band{}) {
		band = DefaultBand
	}
	return &Session{
		mutator:  mutator,
		source:   source,
		band:     band,
		queue:    NewQueue(opts.PageSize),
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// ExportResult summarises one export run.
type ExportResult struct {
	Sentences int
	Rewritten int
	Queued    int
}

// Export reads the document, asks the source for a rewrite of every sentence
// and loads the in-band results into the queue. The history is cleared since
// its records refer to the previous queue. Only one export runs at a time.
func (s *Session) Export(ctx context.Context, doc Document) (ExportResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return ExportResult{}, erruser.New("An export is already running.", ErrBusy)
	}
	defer s.busy.Store(false)

	text, err := doc.Text(ctx)
	if err != nil {
		return ExportResult{}, erruser.New("Could not read the document.", err)
	}
	if strings.TrimSpace(text) == "" {
		return ExportResult{}, erruser.New("The document is empty.", ErrEmptyDocument)
	}

	sentences := sentence.Split(text)
	results, err := suggest.Batch(ctx, s.source, sentences)
	if err != nil {
		return ExportResult{}, erruser.New("Export was cancelled.", err)
	}

	suggestions := make([]*Suggestion, 0, len(results))
	for _, res := range results {
		suggestions = append(suggestions, NewSuggestion(res))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Load(suggestions, s.band)
	s.history.Clear()
	clear(s.inflight)
	s.loaded = true

	out := ExportResult{Sentences: len(sentences), Rewritten: len(results), Queued: s.queue.Len()}
	log.Printf("[session] export: %d sentences, %d rewritten, %d queued", out.Sentences, out.Rewritten, out.Queued)
	return out, nil
}

// Accept writes text into the document in place of the original sentence.
// An empty text accepts the current candidate. When the original cannot be
// found nothing changes and the returned error matches ErrTextNotFound.
func (s *Session) Accept(ctx context.Context, id uuid.UUID, text string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sug, _, ok := s.queue.Find(id)
	if !ok {
		return Event{}, unknown(id)
	}
	if text == "" {
		text = sug.Current.Text
	}
	if strings.TrimSpace(text) == "" {
		return Event{}, erruser.New("The suggestion is empty.", ErrEmptyCandidate)
	}

	replaced, err := s.mutator.Apply(ctx, text, sug.Original.Text)
	if err != nil {
		if errors.Is(err, ErrTextNotFound) {
			return Event{}, erruser.New("The original sentence is no longer in the document.", fmt.Errorf("accept %s: %w", id, err))
		}
		return Event{}, erruser.New("Could not update the document.", err)
	}

	previous := sug.Current
	pos, _ := s.queue.Remove(sug)
	s.history.Push(ReplaceRecord{
		Suggestion:  sug,
		TextBefore:  replaced,
		TextApplied: text,
		Previous:    previous,
		Position:    pos,
	})
	if text != previous.Text {
		sug.Current.Text = text
		sug.Current.Score = nil
	}
	sug.Status = Accepted

	return s.event(CmdAccept, sug, text, previous.Text, pos), nil
}

// Deny drops the card without touching the document.
func (s *Session) Deny(id uuid.UUID) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sug, _, ok := s.queue.Find(id)
	if !ok {
		return Event{}, unknown(id)
	}
	pos, _ := s.queue.Remove(sug)
	s.history.Push(DenyRecord{Suggestion: sug, Position: pos})
	sug.Status = Denied

	return s.event(CmdDeny, sug, sug.Current.Text, sug.Current.Text, pos), nil
}

// Modify replaces the candidate of a pending card with a manual edit. The
// edit carries no score. Setting the same text again is a no-op.
func (s *Session) Modify(id uuid.UUID, text string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sug, pos, ok := s.queue.Find(id)
	if !ok {
		return Event{}, unknown(id)
	}
	if strings.TrimSpace(text) == "" {
		return Event{}, erruser.New("The suggestion cannot be empty.", ErrEmptyCandidate)
	}
	next := sug.Current
	next.Text = text
	next.Score = nil
	return s.modify(CmdModify, sug, next, pos), nil
}

// Regenerate asks the source again for the card's original sentence and
// swaps in the new candidate. A card can only regenerate once at a time;
// other cards stay usable while the request runs.
func (s *Session) Regenerate(ctx context.Context, id uuid.UUID) (Event, error) {
	s.mu.Lock()
	sug, _, ok := s.queue.Find(id)
	if !ok {
		s.mu.Unlock()
		return Event{}, unknown(id)
	}
	if _, running := s.inflight[id]; running {
		s.mu.Unlock()
		return Event{}, erruser.New("This suggestion is already being regenerated.", ErrBusy)
	}
	s.inflight[id] = struct{}{}
	original := sug.Original.Text
	s.mu.Unlock()

	res, err := s.source.Suggest(ctx, original)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
	if err != nil {
		return Event{}, erruser.New("Could not get a new suggestion.", err)
	}
	sug, pos, ok := s.queue.Find(id)
	if !ok {
		return Event{}, unknown(id)
	}
	if strings.TrimSpace(res.Simplified) == "" {
		return Event{}, erruser.New("The new suggestion was empty.", ErrEmptyCandidate)
	}
	score := res.Score
	next := Candidate{Text: res.Simplified, Score: &score, Pristine: res.Simplified}
	return s.modify(CmdRegenerate, sug, next, pos), nil
}

// Regenerating reports whether a regenerate request for id is running.
func (s *Session) Regenerating(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[id]
	return ok
}

func (s *Session) modify(kind CommandKind, sug *Suggestion, next Candidate, pos int) Event {
	previous := sug.Current
	if next.Text == previous.Text {
		ev := s.event(kind, sug, previous.Text, previous.Text, pos)
		ev.Changed = false
		return ev
	}
	s.history.Push(ModifyRecord{Suggestion: sug, Previous: previous})
	sug.Current = next
	return s.event(kind, sug, next.Text, previous.Text, pos)
}

// Undo reverses the most recent action. If a reverted accept cannot find its
// text in the document, the record stays on the stack and nothing changes.
func (s *Session) Undo(ctx context.Context) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.history.Pop()
	if !ok {
		return Event{}, erruser.New("Nothing to undo.", ErrEmptyHistory)
	}

	sug := rec.Target()
	var ev Event
	switch r := rec.(type) {
	case ReplaceRecord:
		if err := s.mutator.Revert(ctx, r.TextBefore, r.TextApplied); err != nil {
			s.history.Push(r)
			if errors.Is(err, ErrTextNotFound) {
				return Event{}, erruser.New("The accepted text is no longer in the document.", fmt.Errorf("undo %s: %w", sug.ID, err))
			}
			return Event{}, erruser.New("Could not update the document.", err)
		}
		sug.Current = r.Previous
		sug.Status = Pending
		pos := s.queue.InsertAt(sug, r.Position)
		ev = s.event(CmdUndo, sug, r.TextBefore, r.TextApplied, pos)
		ev.Undone = CmdAccept
	case DenyRecord:
		sug.Status = Pending
		pos := s.queue.InsertAt(sug, r.Position)
		ev = s.event(CmdUndo, sug, sug.Current.Text, sug.Current.Text, pos)
		ev.Undone = CmdDeny
	case ModifyRecord:
		edited := sug.Current.Text
		sug.Current = r.Previous
		_, pos, _ := s.queue.Find(sug.ID)
		ev = s.event(CmdUndo, sug, sug.Current.Text, edited, pos)
		ev.Undone = CmdModify
	default:
		return Event{}, fmt.Errorf("unknown history record %T", rec)
	}
	return ev, nil
}

// NextPage and PrevPage move the page cursor.
func (s *Session) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.NextPage()
}

func (s *Session) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.PrevPage()
}

// Busy reports whether an export is running.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Items        []Suggestion
	Page         int
	PageCount    int
	Pending      int
	HistoryDepth int
	Loaded       bool
	Done         bool
	Busy         bool
	Regenerating map[uuid.UUID]bool
}

// CanUndo reports whether there is anything on the history stack.
func (s Snapshot) CanUndo() bool {
	return s.HistoryDepth > 0
}

// Snapshot copies the current page and counters.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.queue.CurrentPageItems()
	items := make([]Suggestion, len(page))
	for i, sug := range page {
		items[i] = *sug
	}
	regen := make(map[uuid.UUID]bool, len(s.inflight))
	for id := range s.inflight {
		regen[id] = true
	}
	return Snapshot{
		Items:        items,
		Page:         s.queue.Page(),
		PageCount:    s.queue.PageCount(),
		Pending:      s.queue.Len(),
		HistoryDepth: s.history.Len(),
		Loaded:       s.loaded,
		Done:         s.loaded && s.queue.Empty(),
		Busy:         s.busy.Load(),
		Regenerating: regen,
	}
}

func (s *Session) event(kind CommandKind, sug *Suggestion, text, previous string, pos int) Event {
	return Event{
		Kind:         kind,
		SuggestionID: sug.ID,
		Original:     sug.Original.Text,
		Text:         text,
		Previous:     previous,
		Position:     pos,
		Status:       sug.Status,
		Changed:      true,
		Done:         s.loaded && s.queue.Empty(),
	}
}

func unknown(id uuid.UUID) error {
	return erruser.New("That suggestion is no longer pending.", fmt.Errorf("%w: %s", ErrUnknownSuggestion, id))
}
