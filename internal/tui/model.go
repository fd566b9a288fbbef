package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/csheth/plainword/internal/document"
	"github.com/csheth/plainword/internal/erruser"
	"github.com/csheth/plainword/internal/journal"
	"github.com/csheth/plainword/internal/mutate"
	"github.com/csheth/plainword/internal/review"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Session    *review.Session
	Document   *document.Buffer
	Mutator    *mutate.Mutator
	Journal    *journal.Journal
	Watcher    *document.Watcher
	SourceName string
	// AutoExport starts an export as soon as the program runs.
	AutoExport bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 12)
	vp.MouseWheelEnabled = true

	editor := textarea.New()
	editor.Placeholder = editorPlaceholder
	editor.ShowLineNumbers = false
	editor.CharLimit = 2000
	editor.SetWidth(76)
	editor.SetHeight(3)
	// A sentence is one line; enter saves instead of breaking it.
	editor.KeyMap.InsertNewline.SetEnabled(false)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = 1
	pager.ActiveDot = activeDotStyle.Render("•")
	pager.InactiveDot = inactiveDotStyle.Render("•")

	m := &model{
		config:       config,
		stage:        stageIdle,
		keys:         newKeyMap(),
		spinner:      spin,
		preview:      vp,
		editor:       editor,
		pager:        pager,
		layout:       newPageLayout(),
		jobs:         newJobBus(),
		activeJobs:   map[string]jobSnapshot{},
		regenerating: map[uuid.UUID]bool{},
		previewDirty: true,
		infoMessage:  "Press e to export the document for review.",
	}
	m.refreshSnapshot()
	return m
}

type model struct {
	config Config
	stage  stage
	keys   keyMap

	spinner spinner.Model
	preview viewport.Model
	editor  textarea.Model
	pager   paginator.Model
	layout  pageLayout
	jobs    *jobBus

	snapshot     review.Snapshot
	cursor       int
	editing      uuid.UUID
	activeJobs   map[string]jobSnapshot
	regenerating map[uuid.UUID]bool
	previewDirty bool
	infoMessage  string
	errorMessage string
	helpVisible  bool
}

func (m *model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.config.AutoExport {
		cmds = append(cmds, m.startExport())
	}
	if cmd := waitForDocumentChange(m.config.Watcher); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.spinnerActive() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.preview.Width = m.layout.viewportWidth
		m.preview.Height = m.layout.previewHeight
		m.editor.SetWidth(m.layout.viewportWidth - 2)
		m.editor.SetHeight(m.layout.editorHeight)
		m.markPreviewDirty()
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case jobSignalMsg:
		m.trackJob(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.trackJob(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case exportResultMsg:
		m.stage = stageReview
		m.refreshSnapshot()
		m.cursor = 0
		if msg.err != nil {
			m.showError(msg.err)
			m.syncStage()
			return m, nil
		}
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("%d of %d sentences need review.", msg.result.Queued, msg.result.Sentences)
		m.syncStage()
		return m, nil
	case regenerateResultMsg:
		delete(m.regenerating, msg.id)
		m.refreshSnapshot()
		if msg.err != nil {
			m.showError(msg.err)
			return m, nil
		}
		m.errorMessage = ""
		if !msg.event.Changed {
			m.infoMessage = "The source returned the same suggestion."
			return m, nil
		}
		m.infoMessage = "New suggestion ready."
		return m, m.journalCmd(msg.event)
	case writeResultMsg:
		if msg.err != nil {
			m.showError(erruser.New("Could not write the document.", msg.err))
			return m, nil
		}
		m.errorMessage = ""
		m.infoMessage = "Saved to " + msg.path
		return m, nil
	case journalResultMsg:
		if msg.err != nil {
			m.errorMessage = "Journal write failed: " + msg.err.Error()
		}
		return m, nil
	case documentChangedMsg:
		m.errorMessage = "The file changed on disk. Writing will overwrite those changes."
		return m, waitForDocumentChange(m.config.Watcher)
	case watchErrorMsg:
		log.Printf("[watch] %v", msg.err)
		return m, waitForDocumentChange(m.config.Watcher)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.stage == stageEdit {
		return m.handleEditKey(msg)
	}
	if m.stage == stageExporting {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.startExport()
	case key.Matches(msg, m.keys.Write):
		return m, m.startWrite()
	case key.Matches(msg, m.keys.Undo):
		return m, m.dispatch(review.Command{Kind: review.CmdUndo})
	case key.Matches(msg, m.keys.PrevPage):
		m.cursor = 0
		return m, m.dispatch(review.Command{Kind: review.CmdPrevPage})
	case key.Matches(msg, m.keys.NextPage):
		m.cursor = 0
		return m, m.dispatch(review.Command{Kind: review.CmdNextPage})
	case key.Matches(msg, m.keys.PrevCard):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextCard):
		m.moveCursor(1)
		return m, nil
	}

	item, ok := m.currentItem()
	if !ok || m.stage != stageReview {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Accept):
		return m, m.dispatch(review.Command{Kind: review.CmdAccept, SuggestionID: item.ID})
	case key.Matches(msg, m.keys.Deny):
		return m, m.dispatch(review.Command{Kind: review.CmdDeny, SuggestionID: item.ID})
	case key.Matches(msg, m.keys.Modify):
		return m, m.startEdit(item)
	case key.Matches(msg, m.keys.Regenerate):
		return m, m.startRegenerate(item)
	}
	return m, nil
}

func (m *model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.EditCancel):
		m.stopEdit()
		m.infoMessage = "Edit cancelled."
		return m, nil
	case key.Matches(msg, m.keys.EditApply), key.Matches(msg, m.keys.EditKeep):
		text := strings.TrimSpace(m.editor.Value())
		if text == "" {
			m.errorMessage = "The suggestion cannot be empty."
			return m, nil
		}
		kind := review.CmdModify
		if key.Matches(msg, m.keys.EditApply) {
			kind = review.CmdAccept
		}
		id := m.editing
		m.stopEdit()
		return m, m.dispatch(review.Command{Kind: kind, SuggestionID: id, Text: text})
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *model) startEdit(item review.Suggestion) tea.Cmd {
	m.editing = item.ID
	m.editor.SetValue(item.Current.Text)
	m.stage = stageEdit
	m.errorMessage = ""
	m.infoMessage = "Editing. Enter saves and applies, Tab keeps the edit, Esc cancels."
	m.refreshKeys()
	return m.editor.Focus()
}

func (m *model) stopEdit() {
	m.editor.Blur()
	m.editor.SetValue("")
	m.editing = uuid.Nil
	m.stage = stageReview
	m.syncStage()
}

func (m *model) startExport() tea.Cmd {
	if m.stage == stageExporting || m.snapshot.Busy {
		m.infoMessage = "An export is already running."
		return nil
	}
	if m.config.Session == nil || m.config.Document == nil {
		m.errorMessage = "No document loaded."
		return nil
	}
	m.stage = stageExporting
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Exporting sentences via %s…", m.sourceName())
	m.refreshKeys()
	return tea.Batch(
		m.jobs.Start(jobKindExport, m.documentLabel(), exportJob(m.config.Session, m.config.Document)),
		m.spinner.Tick,
	)
}

func (m *model) startRegenerate(item review.Suggestion) tea.Cmd {
	if m.isRegenerating(item.ID) {
		m.infoMessage = "Already regenerating this suggestion."
		return nil
	}
	m.regenerating[item.ID] = true
	m.errorMessage = ""
	m.infoMessage = "Asking for a new suggestion…"
	m.refreshKeys()
	return tea.Batch(
		m.jobs.Start(jobKindRegenerate, item.Original.Text, regenerateJob(m.config.Session, item.ID)),
		m.spinner.Tick,
	)
}

func (m *model) startWrite() tea.Cmd {
	buf := m.config.Document
	if buf == nil || buf.SavePath() == "" {
		m.errorMessage = "This document has no file to write to."
		return nil
	}
	m.infoMessage = "Writing " + buf.SavePath() + "…"
	return m.jobs.Start(jobKindWrite, filepath.Base(buf.SavePath()), writeDocumentJob(buf))
}

// dispatch runs a session command synchronously; the session only touches
// the in-memory buffer, so there is nothing to wait for.
func (m *model) dispatch(cmd review.Command) tea.Cmd {
	if m.config.Session == nil {
		return nil
	}
	ev, err := m.config.Session.Dispatch(context.Background(), cmd)
	m.refreshSnapshot()
	if err != nil {
		m.showError(err)
		m.syncStage()
		return nil
	}
	m.errorMessage = ""
	if msg := describeEvent(ev); msg != "" {
		m.infoMessage = msg
	}
	m.syncStage()
	return m.journalCmd(ev)
}

func (m *model) journalCmd(ev review.Event) tea.Cmd {
	if m.config.Journal.Path() == "" {
		return nil
	}
	docPath := ""
	if m.config.Document != nil {
		docPath = m.config.Document.Path()
	}
	entry, ok := journal.FromEvent(ev, docPath)
	if !ok {
		return nil
	}
	return m.jobs.Start(jobKindJournal, entry.Kind, journalJob(m.config.Journal, entry))
}

func (m *model) documentLabel() string {
	if m.config.Document == nil || m.config.Document.Path() == "" {
		return "untitled"
	}
	return filepath.Base(m.config.Document.Path())
}

func describeEvent(ev review.Event) string {
	switch ev.Kind {
	case review.CmdAccept:
		return "Suggestion applied to the document."
	case review.CmdDeny:
		return "Suggestion dismissed."
	case review.CmdModify:
		if !ev.Changed {
			return "Suggestion unchanged."
		}
		return "Edit kept. Press a to apply it."
	case review.CmdUndo:
		return fmt.Sprintf("Undid %s.", ev.Undone)
	default:
		return ""
	}
}

// syncStage derives the stage from the session state unless a modal stage
// is active.
func (m *model) syncStage() {
	if m.stage == stageEdit || m.stage == stageExporting {
		return
	}
	switch {
	case !m.snapshot.Loaded:
		m.stage = stageIdle
	case m.snapshot.Done:
		m.stage = stageDone
		m.infoMessage = doneMessage
	default:
		m.stage = stageReview
	}
	m.refreshKeys()
}

func (m *model) showError(err error) {
	m.errorMessage = erruser.Message(err)
	if details := erruser.Details(err); details != "" {
		log.Printf("[tui] %s: %s", m.errorMessage, details)
	}
	if errors.Is(err, review.ErrEmptyHistory) {
		m.errorMessage = ""
		m.infoMessage = "Nothing to undo."
	}
}

func (m *model) refreshSnapshot() {
	if m.config.Session != nil {
		m.snapshot = m.config.Session.Snapshot()
	}
	if m.cursor >= len(m.snapshot.Items) {
		m.cursor = max(0, len(m.snapshot.Items)-1)
	}
	m.pager.PerPage = 1
	m.pager.SetTotalPages(max(1, m.snapshot.PageCount))
	m.pager.Page = max(0, m.snapshot.Page-1)
	m.refreshKeys()
	m.markPreviewDirty()
}

// refreshKeys enables only the controls that can act right now.
func (m *model) refreshKeys() {
	item, hasItem := m.currentItem()
	reviewing := m.stage == stageReview && hasItem
	m.keys.Export.SetEnabled(m.stage != stageExporting && !m.snapshot.Busy)
	m.keys.Accept.SetEnabled(reviewing)
	m.keys.Deny.SetEnabled(reviewing)
	m.keys.Modify.SetEnabled(reviewing)
	m.keys.Regenerate.SetEnabled(reviewing && !m.isRegenerating(item.ID))
	m.keys.Undo.SetEnabled(m.stage != stageExporting && m.snapshot.CanUndo())
	m.keys.PrevPage.SetEnabled(m.snapshot.Page > 1)
	m.keys.NextPage.SetEnabled(m.snapshot.Page < m.snapshot.PageCount)
	m.keys.PrevCard.SetEnabled(len(m.snapshot.Items) > 1)
	m.keys.NextCard.SetEnabled(len(m.snapshot.Items) > 1)
	m.keys.Write.SetEnabled(m.config.Document != nil && m.config.Document.SavePath() != "")
}

func (m *model) currentItem() (review.Suggestion, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Items) {
		return review.Suggestion{}, false
	}
	return m.snapshot.Items[m.cursor], true
}

func (m *model) moveCursor(delta int) {
	if len(m.snapshot.Items) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.snapshot.Items)) % len(m.snapshot.Items)
	m.refreshKeys()
	m.markPreviewDirty()
}

func (m *model) isRegenerating(id uuid.UUID) bool {
	return m.regenerating[id] || m.snapshot.Regenerating[id]
}

func (m *model) spinnerActive() bool {
	return m.stage == stageExporting || len(m.regenerating) > 0
}

func (m *model) trackJob(snap jobSnapshot) {
	if snap.Status == jobStatusRunning {
		m.activeJobs[snap.ID] = snap
		return
	}
	delete(m.activeJobs, snap.ID)
}

func (m *model) sourceName() string {
	if m.config.SourceName != "" {
		return m.config.SourceName
	}
	return "the suggestion service"
}

func (m *model) markPreviewDirty() {
	m.previewDirty = true
}

func (m *model) refreshPreviewIfDirty() {
	if m.previewDirty {
		m.refreshPreview()
	}
}

// refreshPreview highlights the sentence under review in the document and
// scrolls it into view.
func (m *model) refreshPreview() {
	m.previewDirty = false
	buf := m.config.Document
	if buf == nil {
		m.preview.SetContent("")
		return
	}
	if m.config.Mutator != nil {
		item, ok := m.currentItem()
		if ok && m.stage != stageDone {
			if err := m.config.Mutator.Highlight(context.Background(), item.Original.Text); err != nil {
				m.config.Mutator.ClearHighlight()
			}
		} else {
			m.config.Mutator.ClearHighlight()
		}
	}
	sel, hasSelection := buf.Selection()
	content, line := renderPreview(buf.Source(), sel, hasSelection, m.wrapWidth(2))
	m.preview.SetContent(content)
	m.preview.SetYOffset(max(0, line-2))
}

func (m *model) wrapWidth(padding int) int {
	width := m.preview.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
