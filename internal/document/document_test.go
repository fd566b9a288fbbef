package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSearchFindsFirstOccurrence(t *testing.T) {
	buf := New("Een zin. Een zin. Nog een.")
	r, ok, err := buf.Search(context.Background(), "Een zin.")
	if err != nil || !ok {
		t.Fatalf("expected a match, ok=%v err=%v", ok, err)
	}
	if r.Start != 0 || r.End != len("Een zin.") {
		t.Fatalf("unexpected range %+v", r)
	}
	if _, ok, _ := buf.Search(context.Background(), "ontbreekt"); ok {
		t.Fatal("missing text should not match")
	}
}

func TestSearchToleratesWrappedWhitespace(t *testing.T) {
	ctx := context.Background()
	source := "Kop\n\nDit is, echter,\n  een lange zin. Klaar."
	buf := New(source)
	r, ok, err := buf.Search(ctx, "Dit is, echter, een lange zin.")
	if err != nil || !ok {
		t.Fatalf("expected a match, ok=%v err=%v", ok, err)
	}
	if got := source[r.Start:r.End]; got != "Dit is, echter,\n  een lange zin." {
		t.Fatalf("matched %q", got)
	}
	if _, ok, _ := buf.Search(ctx, "Dit is,echter,"); ok {
		t.Fatal("missing whitespace must not match")
	}
	if _, ok, _ := buf.Search(ctx, "  \n"); ok {
		t.Fatal("a blank pattern must not match")
	}
	if _, ok, _ := buf.Search(ctx, "zin. (Klaar"); ok {
		t.Fatal("pattern metacharacters must be literal")
	}
}

func TestMatchAtAnchorsOffset(t *testing.T) {
	ctx := context.Background()
	buf := New("een zin.\neen zin.")
	r, ok, err := buf.MatchAt(ctx, 9, "een zin.")
	if err != nil || !ok || r != (Range{Start: 9, End: 17}) {
		t.Fatalf("unexpected match %+v ok=%v err=%v", r, ok, err)
	}
	if _, ok, _ := buf.MatchAt(ctx, 1, "een zin."); ok {
		t.Fatal("a later match must not count as a match at the offset")
	}
	if _, _, err := buf.MatchAt(ctx, 40, "een"); err != ErrRangeOutOfBounds {
		t.Fatalf("expected ErrRangeOutOfBounds, got %v", err)
	}
}

func TestReplaceAndSelectionShift(t *testing.T) {
	ctx := context.Background()
	buf := New("Eerste zin. Tweede zin.")
	second, _, _ := buf.Search(ctx, "Tweede zin.")
	if err := buf.Select(ctx, second); err != nil {
		t.Fatalf("select: %v", err)
	}
	first, _, _ := buf.Search(ctx, "Eerste zin.")
	if err := buf.Replace(ctx, first, "Kort."); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := buf.Source(); got != "Kort. Tweede zin." {
		t.Fatalf("unexpected source %q", got)
	}
	sel, ok := buf.Selection()
	if !ok {
		t.Fatal("selection should survive an edit before it")
	}
	if text, _ := buf.Slice(ctx, sel); text != "Tweede zin." {
		t.Fatalf("selection not shifted, covers %q", text)
	}
	if !buf.Dirty() {
		t.Fatal("replace should mark the buffer dirty")
	}
}

func TestReplaceRejectsOutOfBounds(t *testing.T) {
	buf := New("kort")
	if err := buf.Replace(context.Background(), Range{Start: 2, End: 10}, "x"); err != ErrRangeOutOfBounds {
		t.Fatalf("expected ErrRangeOutOfBounds, got %v", err)
	}
}

func TestOpenMarkdownRendersPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.md")
	src := "# Onderwerp\n\nDit is een **vette** zin.\nEn een tweede regel.\n\n```\ncode. blijft buiten.\n```\n\n- Punt een.\n- Punt twee.\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	buf, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if buf.Format() != FormatMarkdown {
		t.Fatalf("unexpected format %s", buf.Format())
	}
	text, err := buf.Text(context.Background())
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	for _, want := range []string{"Onderwerp", "Dit is een vette zin.\nEn een tweede regel.", "Punt een.", "Punt twee."} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "code. blijft buiten.") || strings.Contains(text, "**") {
		t.Fatalf("markup or code leaked into text:\n%s", text)
	}
	if buf.Source() != src {
		t.Fatal("markdown source should be kept verbatim")
	}
}

func TestSaveWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.txt")
	if err := os.WriteFile(path, []byte("Oude zin."), 0o644); err != nil {
		t.Fatal(err)
	}
	buf, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	r, _, _ := buf.Search(ctx, "Oude zin.")
	if err := buf.Replace(ctx, r, "Nieuwe zin."); err != nil {
		t.Fatal(err)
	}
	if err := buf.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Nieuwe zin." {
		t.Fatalf("unexpected file contents %q", data)
	}
	if buf.Dirty() {
		t.Fatal("save should clear the dirty flag")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should be renamed away")
	}
}

func TestSaveWithoutFile(t *testing.T) {
	if err := New("tekst").Save(); err == nil {
		t.Fatal("in-memory buffer should refuse to save")
	}
}

func TestWatcherReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.txt")
	if err := os.WriteFile(path, []byte("Zin."), 0o644); err != nil {
		t.Fatal(err)
	}
	buf, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := Watch(buf)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("Andere zin."), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}
