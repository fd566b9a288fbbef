package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CommandKind names a user action.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdAccept
	CmdDeny
	CmdModify
	CmdRegenerate
	CmdUndo
	CmdNextPage
	CmdPrevPage
)

func (k CommandKind) String() string {
	switch k {
	case CmdAccept:
		return "accept"
	case CmdDeny:
		return "deny"
	case CmdModify:
		return "modify"
	case CmdRegenerate:
		return "regenerate"
	case CmdUndo:
		return "undo"
	case CmdNextPage:
		return "next-page"
	case CmdPrevPage:
		return "prev-page"
	default:
		return "none"
	}
}

// Command is one user action against the session. Text is the candidate for
// accept (empty means the current one) and the new text for modify.
type Command struct {
	Kind         CommandKind
	SuggestionID uuid.UUID
	Text         string
}

// Event describes what a command did. For undo, Undone names the reversed
// action, Text is what the card shows again and Previous what was removed.
type Event struct {
	Kind         CommandKind
	Undone       CommandKind
	SuggestionID uuid.UUID
	Original     string
	Text         string
	Previous     string
	Position     int
	Status       Status
	Changed      bool
	Done         bool
}

// Dispatch runs cmd against the session.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (Event, error) {
	switch cmd.Kind {
	case CmdAccept:
		return s.Accept(ctx, cmd.SuggestionID, cmd.Text)
	case CmdDeny:
		return s.Deny(cmd.SuggestionID)
	case CmdModify:
		return s.Modify(cmd.SuggestionID, cmd.Text)
	case CmdRegenerate:
		return s.Regenerate(ctx, cmd.SuggestionID)
	case CmdUndo:
		return s.Undo(ctx)
	case CmdNextPage:
		return Event{Kind: cmd.Kind, Changed: s.NextPage()}, nil
	case CmdPrevPage:
		return Event{Kind: cmd.Kind, Changed: s.PrevPage()}, nil
	default:
		return Event{}, fmt.Errorf("unknown command %d", cmd.Kind)
	}
}
