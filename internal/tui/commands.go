package tui

import (
	"context"

	"github.com/google/uuid"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/plainword/internal/document"
	"github.com/csheth/plainword/internal/journal"
	"github.com/csheth/plainword/internal/review"
)

type exportResultMsg struct {
	result review.ExportResult
	err    error
}

type regenerateResultMsg struct {
	id    uuid.UUID
	event review.Event
	err   error
}

type writeResultMsg struct {
	path string
	err  error
}

type journalResultMsg struct {
	err error
}

type documentChangedMsg struct{}

type watchErrorMsg struct {
	err error
}

func exportJob(session *review.Session, doc review.Document) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		res, err := session.Export(ctx, doc)
		return exportResultMsg{result: res, err: err}, err
	}
}

func regenerateJob(session *review.Session, id uuid.UUID) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		ev, err := session.Regenerate(ctx, id)
		return regenerateResultMsg{id: id, event: ev, err: err}, err
	}
}

func writeDocumentJob(buf *document.Buffer) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := buf.Save()
		return writeResultMsg{path: buf.SavePath(), err: err}, err
	}
}

func journalJob(j *journal.Journal, entry journal.Entry) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := j.Append(entry)
		return journalResultMsg{err: err}, err
	}
}

// waitForDocumentChange blocks until the watcher reports an outside edit.
// The model re-arms it after every message.
func waitForDocumentChange(w *document.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return documentChangedMsg{}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrorMsg{err: err}
		}
	}
}
