package review

import (
	"errors"

	"github.com/csheth/plainword/internal/mutate"
)

var (
	ErrEmptyDocument     = errors.New("document has no text")
	ErrEmptyHistory      = errors.New("nothing to undo")
	ErrBusy              = errors.New("operation already running")
	ErrUnknownSuggestion = errors.New("unknown suggestion")
	ErrEmptyCandidate    = errors.New("candidate text is empty")
	// ErrTextNotFound is returned when the document no longer contains the
	// text an accept or undo needs to replace.
	ErrTextNotFound = mutate.ErrTextNotFound
)
