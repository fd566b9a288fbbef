package tui

import (
	"strings"
	"testing"

	"github.com/csheth/plainword/internal/document"
)

func TestPageLayoutUpdate(t *testing.T) {
	var l pageLayout
	l.Update(80, 24)
	if l.viewportWidth != 76 {
		t.Fatalf("viewportWidth = %d, want 76", l.viewportWidth)
	}
	if l.previewHeight != 8 {
		t.Fatalf("previewHeight = %d, want 8", l.previewHeight)
	}

	l.Update(20, 10)
	if l.viewportWidth != minViewportWidth {
		t.Fatalf("narrow viewportWidth = %d, want %d", l.viewportWidth, minViewportWidth)
	}
	if l.previewHeight != 4 {
		t.Fatalf("short previewHeight = %d, want 4", l.previewHeight)
	}
}

func TestRenderPreviewWithoutSelection(t *testing.T) {
	content, line := renderPreview("Een korte zin.", document.Range{}, false, 40)
	if content != "Een korte zin." || line != 0 {
		t.Fatalf("got %q at line %d", content, line)
	}
}

func TestRenderPreviewReportsSelectionLine(t *testing.T) {
	source := "Eerste regel.\nTweede zin hier."
	sel := document.Range{Start: 14, End: len(source)}
	content, line := renderPreview(source, sel, true, 40)
	if line != 1 {
		t.Fatalf("line = %d, want 1", line)
	}
	if !strings.Contains(content, "Tweede zin hier.") {
		t.Fatalf("content lost the selected text: %q", content)
	}
}

func TestRenderPreviewIgnoresStaleSelection(t *testing.T) {
	content, line := renderPreview("kort", document.Range{Start: 2, End: 40}, true, 40)
	if content != "kort" || line != 0 {
		t.Fatalf("got %q at line %d", content, line)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	got := joinNonEmpty([]string{"a", "  ", "", "b"})
	if got != "a\n\nb" {
		t.Fatalf("joinNonEmpty = %q", got)
	}
}
