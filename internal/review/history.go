package review

// Record is one reversible action. The concrete types are ReplaceRecord,
// DenyRecord and ModifyRecord.
type Record interface {
	Target() *Suggestion
	isRecord()
}

// ReplaceRecord undoes an accept: TextApplied goes back to TextBefore in the
// document and the card returns at Position with its Previous candidate.
type ReplaceRecord struct {
	Suggestion  *Suggestion
	TextBefore  string
	TextApplied string
	Previous    Candidate
	Position    int
}

// DenyRecord undoes a deny by returning the card to Position.
type DenyRecord struct {
	Suggestion *Suggestion
	Position   int
}

// ModifyRecord undoes an edit or regeneration of a pending card.
type ModifyRecord struct {
	Suggestion *Suggestion
	Previous   Candidate
}

func (r ReplaceRecord) Target() *Suggestion { return r.Suggestion }
func (r DenyRecord) Target() *Suggestion    { return r.Suggestion }
func (r ModifyRecord) Target() *Suggestion  { return r.Suggestion }

func (ReplaceRecord) isRecord() {}
func (DenyRecord) isRecord()    {}
func (ModifyRecord) isRecord()  {}

// History is a LIFO stack of records.
type History struct {
	records []Record
}

func (h *History) Push(r Record) {
	h.records = append(h.records, r)
}

// Pop removes and returns the most recent record.
func (h *History) Pop() (Record, bool) {
	if len(h.records) == 0 {
		return nil, false
	}
	last := h.records[len(h.records)-1]
	h.records[len(h.records)-1] = nil
	h.records = h.records[:len(h.records)-1]
	return last, true
}

// Peek returns the most recent record without removing it.
func (h *History) Peek() (Record, bool) {
	if len(h.records) == 0 {
		return nil, false
	}
	return h.records[len(h.records)-1], true
}

func (h *History) Len() int { return len(h.records) }

func (h *History) Clear() {
	clear(h.records)
	h.records = h.records[:0]
}
