package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// jobKind names the background work the review screen runs off the update
// loop. Accept, deny, modify and undo only touch the in-memory buffer and run
// inline.
type jobKind string

type jobStatus string

const (
	jobKindExport     jobKind = "export"
	jobKindRegenerate jobKind = "regenerate"
	jobKindWrite      jobKind = "write"
	jobKindJournal    jobKind = "journal"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

// jobLabelRunes keeps a sentence label to one status-bar badge.
const jobLabelRunes = 24

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Label       string
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
}

func newJobBus() *jobBus {
	return &jobBus{}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start runs runner in a tea command. label says what the job works on: the
// document for an export or a write, the original sentence for a regenerate.
// The model sees a running snapshot first and the payload wrapped in the
// finished snapshot afterwards.
func (b *jobBus) Start(kind jobKind, label string, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	label = clipLabel(label)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Label: label, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		log.Printf("[jobs] %s %q started", id, label)
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(context.Background())
		snapshot := startSnapshot
		snapshot.CompletedAt = time.Now()
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
			log.Printf("[jobs] %s %q failed after %s: %v", id, label, snapshot.Duration, err)
		} else {
			snapshot.Status = jobStatusSucceeded
			log.Printf("[jobs] %s %q done in %s", id, label, snapshot.Duration)
		}
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

func clipLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= jobLabelRunes {
		return label
	}
	return string(runes[:jobLabelRunes-1]) + "…"
}
