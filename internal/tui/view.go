package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/plainword/internal/review"
)

func (m *model) View() string {
	m.refreshPreviewIfDirty()

	parts := []string{m.heroView(), m.sessionMeterView()}
	switch m.stage {
	case stageIdle:
		parts = append(parts, helperStyle.Render(wordwrap.String(
			fmt.Sprintf("Press e to send every sentence to %s for a simpler version.", m.sourceName()),
			m.wrapWidth(0),
		)))
	case stageExporting:
		parts = append(parts, fmt.Sprintf("%s Exporting sentences…", m.spinner.View()))
	case stageReview:
		parts = append(parts, m.cardsView())
	case stageEdit:
		parts = append(parts, m.cardsView(), m.editorView())
	case stageDone:
		parts = append(parts, doneBoxStyle.Render(wordwrap.String(doneMessage, m.wrapWidth(6))))
	}

	parts = append(parts, sectionHeaderStyle.Render("Document"), m.preview.View())
	parts = append(parts, m.statusView(), m.keyLegendView())
	if m.helpVisible {
		parts = append(parts, m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := heroTitleStyle.Render("plainword")
	lines := []string{title}
	if buf := m.config.Document; buf != nil && buf.Path() != "" {
		lines = append(lines, helperStyle.Render(fmt.Sprintf("%s (%s)", filepath.Base(buf.Path()), buf.Format())))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroBoxStyle.Render(strings.Join(lines, "\n")),
		taglineStyle.Render(heroTagline),
	)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func (m *model) sessionMeterView() string {
	stats := []string{
		fmt.Sprintf("Mode %s", m.stage),
		fmt.Sprintf("Pending %d", m.snapshot.Pending),
		fmt.Sprintf("Undo %d", m.snapshot.HistoryDepth),
		"Source " + m.sourceName(),
	}
	if buf := m.config.Document; buf != nil && buf.Dirty() {
		stats = append(stats, "Unsaved")
	}
	if jobBadges := m.jobStatusBadges(); len(jobBadges) > 0 {
		stats = append(stats, jobBadges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	counts := map[jobKind]int{}
	labels := map[jobKind]string{}
	for _, snap := range m.activeJobs {
		counts[snap.Kind]++
		labels[snap.Kind] = snap.Label
	}
	var badges []string
	for _, kind := range []jobKind{jobKindExport, jobKindRegenerate, jobKindWrite} {
		switch n := counts[kind]; {
		case n == 1 && labels[kind] != "":
			badges = append(badges, fmt.Sprintf("%s “%s”…", kind, labels[kind]))
		case n == 1:
			badges = append(badges, string(kind)+"…")
		case n > 1:
			badges = append(badges, fmt.Sprintf("%s×%d…", kind, n))
		}
	}
	return badges
}

func (m *model) cardsView() string {
	if len(m.snapshot.Items) == 0 {
		return ""
	}
	header := sectionHeaderStyle.Render(fmt.Sprintf("Suggestion %d of %d", m.snapshot.Page, m.snapshot.PageCount))
	rows := []string{header}
	width := m.wrapWidth(6)
	for i, item := range m.snapshot.Items {
		style := cardStyle
		if i == m.cursor && len(m.snapshot.Items) > 1 {
			style = activeCardStyle
		}
		rows = append(rows, style.Render(m.cardView(item, width)))
	}
	if m.snapshot.PageCount > 1 {
		rows = append(rows, m.pager.View())
	}
	return strings.Join(rows, "\n")
}

func (m *model) cardView(item review.Suggestion, width int) string {
	originalLabel := "Original" + formatScore(item.Original.Score)
	suggestionLabel := "Suggestion" + formatScore(item.Current.Score)
	if item.Current.Edited() {
		suggestionLabel += " " + editedBadgeStyle.Render("edited")
	}
	if m.isRegenerating(item.ID) {
		suggestionLabel += " " + m.spinner.View() + " regenerating"
	}
	return strings.Join([]string{
		helperStyle.Render(originalLabel),
		originalTextStyle.Render(wordwrap.String(item.Original.Text, width)),
		helperStyle.Render(suggestionLabel),
		suggestionTextStyle.Render(wordwrap.String(item.Current.Text, width)),
	}, "\n")
}

func formatScore(score *float64) string {
	if score == nil {
		return ""
	}
	return fmt.Sprintf(" · score %.2f", *score)
}

func (m *model) editorView() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Edit suggestion"),
		m.editor.View(),
	})
}

func (m *model) statusView() string {
	var lines []string
	if m.errorMessage != "" {
		lines = append(lines, errorStyle.Render(wordwrap.String(m.errorMessage, m.wrapWidth(0))))
	}
	if m.infoMessage != "" && !(m.stage == stageDone && m.infoMessage == doneMessage) {
		lines = append(lines, helperStyle.Render(wordwrap.String(m.infoMessage, m.wrapWidth(0))))
	}
	return strings.Join(lines, "\n")
}

// keyLegendView renders the active key set; bindings that cannot act right
// now are dimmed rather than hidden.
func (m *model) keyLegendView() string {
	bindings := m.keys.reviewHints()
	if m.stage == stageEdit {
		bindings = m.keys.editHints()
	}
	const columns = 4
	var rows []string
	for i := 0; i < len(bindings); i += columns {
		end := min(i+columns, len(bindings))
		var cells []string
		for _, binding := range bindings[i:end] {
			cells = append(cells, keyHintView(binding))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func keyHintView(binding key.Binding) string {
	help := binding.Help()
	if !binding.Enabled() {
		return disabledKeyStyle.Render(help.Key) + disabledKeyDescStyle.Render(" "+help.Desc+"  ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(help.Key), keyDescStyle.Render(" "+help.Desc+"  "))
}

func (m *model) helpView() string {
	lines := []string{
		sectionHeaderStyle.Render("Cheatsheet"),
		helperStyle.Render("• e exports the document; every sentence outside the B1 band is skipped."),
		helperStyle.Render("• a writes the suggestion into the document, d dismisses it, m opens the editor."),
		helperStyle.Render("• in the editor Enter saves and applies, Tab keeps the edit on the card, Esc cancels."),
		helperStyle.Render("• r asks for a fresh suggestion; u (or Ctrl+Z) undoes the last action."),
		helperStyle.Render("• ←/→ page through suggestions, w writes the file, q quits."),
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

var (
	sectionHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	previewHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("190"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	heroTitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	heroBoxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Foreground(heroTextColor).Background(heroEmberColor).Padding(0, 2)
	taglineStyle         = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle             = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	disabledKeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Background(lipgloss.Color("#26233a")).Padding(0, 1)
	disabledKeyDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Strikethrough(true)
	legendBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	helpBoxStyle         = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	doneBoxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#a3be8c")).Foreground(lipgloss.Color("#a3be8c")).Bold(true).Padding(1, 2)

	cardStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	activeCardStyle     = cardStyle.Copy().BorderForeground(heroAccentColor)
	originalTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	suggestionTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c")).Italic(true)
	editedBadgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#bde0fe")).Padding(0, 1)
	activeDotStyle      = lipgloss.NewStyle().Foreground(heroAccentColor)
	inactiveDotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#56526e"))
)
