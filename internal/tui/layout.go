package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/plainword/internal/document"
)

type pageLayout struct {
	windowWidth   int
	windowHeight  int
	viewportWidth int
	previewHeight int
	editorHeight  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth: 80,
		previewHeight: 12,
		editorHeight:  3,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.editorHeight = 3
	// hero, status bar, card, legend and the gaps between them
	const chrome = 16
	usable := height - chrome
	if usable < 4 {
		usable = 4
	}
	l.previewHeight = usable
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

// renderPreview wraps the document to width and paints the selected span.
// It returns the content and the wrapped line the span starts on.
func renderPreview(source string, sel document.Range, hasSelection bool, width int) (string, int) {
	if !hasSelection || sel.Start < 0 || sel.End > len(source) || sel.Start >= sel.End {
		return wordwrap.String(source, width), 0
	}
	before := source[:sel.Start]
	line := strings.Count(wordwrap.String(before, width), "\n")

	cb := &contentBuilder{}
	cb.WriteString(before)
	for i, part := range strings.Split(source[sel.Start:sel.End], "\n") {
		if i > 0 {
			cb.WriteRune('\n')
		}
		cb.WriteString(previewHighlightStyle.Render(part))
	}
	cb.WriteString(source[sel.End:])
	return wordwrap.String(cb.String(), width), line
}
