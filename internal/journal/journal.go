// Package journal keeps an append-only audit trail of review decisions. It is
// never read back into a session.
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/plainword/internal/review"
)

// Entry is one resolving action or undo.
type Entry struct {
	Kind         string    `json:"kind"`
	Undone       string    `json:"undone,omitempty"`
	SuggestionID uuid.UUID `json:"suggestionId"`
	Original     string    `json:"original"`
	Applied      string    `json:"applied,omitempty"`
	Previous     string    `json:"previous,omitempty"`
	Document     string    `json:"document,omitempty"`
	At           time.Time `json:"at"`
}

// FromEvent builds an entry for a session event. Page moves and no-op edits
// carry nothing worth auditing and report false.
func FromEvent(ev review.Event, document string) (Entry, bool) {
	switch ev.Kind {
	case review.CmdAccept, review.CmdDeny, review.CmdModify, review.CmdRegenerate, review.CmdUndo:
	default:
		return Entry{}, false
	}
	if !ev.Changed {
		return Entry{}, false
	}
	entry := Entry{
		Kind:         ev.Kind.String(),
		SuggestionID: ev.SuggestionID,
		Original:     ev.Original,
		Applied:      ev.Text,
		Previous:     ev.Previous,
		Document:     document,
		At:           time.Now().UTC(),
	}
	if ev.Kind == review.CmdUndo {
		entry.Undone = ev.Undone.String()
	}
	if ev.Kind == review.CmdDeny {
		entry.Applied = ""
		entry.Previous = ""
	}
	return entry, true
}

// Journal serialises appends to one file.
type Journal struct {
	mu   sync.Mutex
	path string
}

// Open returns a journal writing to path. An empty path disables it.
func Open(path string) *Journal {
	return &Journal{path: path}
}

// Path is where entries are written; empty when disabled.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Append adds entries to the journal file, creating it if necessary.
func (j *Journal) Append(entries ...Entry) error {
	if j == nil || j.path == "" || len(entries) == 0 {
		return nil
	}
	raws := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		raws = append(raws, raw)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return appendEntries(j.path, raws)
}

// Load returns every entry stored at path.
func Load(path string) ([]Entry, error) {
	raws, err := loadEntries(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func appendEntries(path string, newEntries []json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	entries, err := loadEntries(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		entries = nil
	}
	entries = append(entries, newEntries...)
	return writeEntries(path, entries)
}

func writeEntries(path string, entries []json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func loadEntries(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
