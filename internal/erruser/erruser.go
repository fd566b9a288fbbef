// Package erruser attaches a short, user-facing message to an error while
// keeping the technical cause reachable through errors.Is / errors.As.
package erruser

import "errors"

// Err carries the message shown in the status line and the cause that goes
// to the log.
type Err struct {
	Msg string
	Err error
}

// Error returns the user-facing message only.
func (e *Err) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

// Unwrap exposes the cause. A nil receiver is valid.
func (e *Err) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New wraps err with msg. When err is nil the result is a plain error with
// msg and nothing to unwrap.
func New(msg string, err error) error {
	if err == nil {
		return errors.New(msg)
	}
	return &Err{Msg: msg, Err: err}
}

// Message returns the first user-facing message found in err's chain, or
// err.Error() when the chain carries none.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *Err
	if errors.As(err, &ue) && ue.Msg != "" {
		return ue.Msg
	}
	return err.Error()
}

// Details returns the technical cause behind a user-facing error, or "" when
// there is none.
func Details(err error) string {
	var ue *Err
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return ""
}
