// Package document holds the live document that suggestions are applied to.
// A Buffer exposes the small capability set the review core relies on: read
// the full text, find the first occurrence of a bounded substring, and
// replace or select the matched range.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Format identifies how a document was loaded and how it is written back.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ErrRangeOutOfBounds is returned when a Range does not fit the buffer.
var ErrRangeOutOfBounds = errors.New("range outside document")

// Range is a half-open byte span [Start, End) in the buffer source.
type Range struct {
	Start int
	End   int
}

// Len reports the span width in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Buffer is an in-memory document. The zero value is not usable; build one
// with New or Open.
type Buffer struct {
	mu        sync.RWMutex
	source    string
	format    Format
	path      string
	savePath  string
	selection *Range
	dirty     bool
	savedAt   time.Time
}

// New returns a plain-text buffer that is not backed by a file.
func New(text string) *Buffer {
	return &Buffer{source: text, format: FormatText}
}

// Open loads path into a buffer. The format is picked from the extension:
// .md and .markdown keep their Markdown source, .pdf is reduced to plain text
// and saved next to the original as .txt, everything else is plain text.
func Open(path string) (*Buffer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve document path: %w", err)
	}
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".pdf":
		text, err := extractPDFText(abs)
		if err != nil {
			return nil, err
		}
		return &Buffer{
			source:   text,
			format:   FormatPDF,
			path:     abs,
			savePath: strings.TrimSuffix(abs, filepath.Ext(abs)) + ".txt",
		}, nil
	case ".md", ".markdown":
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		return &Buffer{source: string(data), format: FormatMarkdown, path: abs, savePath: abs}, nil
	default:
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		return &Buffer{source: string(data), format: FormatText, path: abs, savePath: abs}, nil
	}
}

// Path is the file the buffer was loaded from, or "" for in-memory buffers.
func (b *Buffer) Path() string {
	return b.path
}

// SavePath is where Save writes.
func (b *Buffer) SavePath() string {
	return b.savePath
}

// Format reports how the buffer was loaded.
func (b *Buffer) Format() Format {
	return b.format
}

// Source returns the raw buffer contents, including Markdown markup.
func (b *Buffer) Source() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.source
}

// Text returns the readable text of the document. For Markdown this is the
// rendered text without markup; for other formats it equals Source.
func (b *Buffer) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.RLock()
	source, format := b.source, b.format
	b.mu.RUnlock()
	if format == FormatMarkdown {
		return markdownText([]byte(source))
	}
	return source, nil
}

// Search finds the first occurrence of pattern. Any whitespace run in
// pattern matches any whitespace run in the buffer, so a sentence that was
// hard-wrapped over several lines is still found. The returned Range covers
// the buffer text that matched, which may differ from pattern in its
// whitespace. The boolean is false when there is no match.
func (b *Buffer) Search(ctx context.Context, pattern string) (Range, bool, error) {
	if err := ctx.Err(); err != nil {
		return Range{}, false, err
	}
	re := searchPattern(pattern)
	if re == nil {
		return Range{}, false, nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	loc := re.FindStringIndex(b.source)
	if loc == nil {
		return Range{}, false, nil
	}
	return Range{Start: loc[0], End: loc[1]}, true, nil
}

// MatchAt reports whether pattern matches starting exactly at offset, with
// the same whitespace rules as Search.
func (b *Buffer) MatchAt(ctx context.Context, offset int, pattern string) (Range, bool, error) {
	if err := ctx.Err(); err != nil {
		return Range{}, false, err
	}
	re := searchPattern(pattern)
	if re == nil {
		return Range{}, false, nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset > len(b.source) {
		return Range{}, false, ErrRangeOutOfBounds
	}
	loc := re.FindStringIndex(b.source[offset:])
	if loc == nil || loc[0] != 0 {
		return Range{}, false, nil
	}
	return Range{Start: offset, End: offset + loc[1]}, true, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// searchPattern quotes text literally except for whitespace runs. It returns
// nil for text that is empty or only whitespace.
func searchPattern(text string) *regexp.Regexp {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := whitespaceRun.Split(text, -1)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile(strings.Join(parts, `\s+`))
}

// Slice returns the source text covered by r.
func (b *Buffer) Slice(ctx context.Context, r Range) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.inBounds(r) {
		return "", ErrRangeOutOfBounds
	}
	return b.source[r.Start:r.End], nil
}

// Replace swaps the text covered by r for text. A selection that overlaps
// the replaced span is cleared.
func (b *Buffer) Replace(ctx context.Context, r Range, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inBounds(r) {
		return ErrRangeOutOfBounds
	}
	b.source = b.source[:r.Start] + text + b.source[r.End:]
	b.dirty = true
	if b.selection != nil {
		sel := *b.selection
		switch {
		case sel.End <= r.Start:
		case sel.Start >= r.End:
			shift := len(text) - r.Len()
			b.selection = &Range{Start: sel.Start + shift, End: sel.End + shift}
		default:
			b.selection = nil
		}
	}
	return nil
}

// Select marks r as the current selection.
func (b *Buffer) Select(ctx context.Context, r Range) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inBounds(r) {
		return ErrRangeOutOfBounds
	}
	sel := r
	b.selection = &sel
	return nil
}

// ClearSelection drops the current selection, if any.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	b.selection = nil
	b.mu.Unlock()
}

// Selection returns the current selection.
func (b *Buffer) Selection() (Range, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.selection == nil {
		return Range{}, false
	}
	return *b.selection, true
}

// Dirty reports whether the buffer has edits that were not saved.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// Save writes the buffer to SavePath through a temp file and rename.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.savePath == "" {
		return errors.New("document has no file to save to")
	}
	if err := os.MkdirAll(filepath.Dir(b.savePath), 0o755); err != nil {
		return err
	}
	tmp := b.savePath + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.source), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, b.savePath); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	b.dirty = false
	b.savedAt = time.Now()
	return nil
}

// SavedAt reports when Save last succeeded.
func (b *Buffer) SavedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.savedAt
}

func (b *Buffer) inBounds(r Range) bool {
	return r.Start >= 0 && r.End >= r.Start && r.End <= len(b.source)
}
