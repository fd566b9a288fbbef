package tuitest

import (
	"bytes"
	"io"
)

// termenv asks the terminal for its colours while lipgloss picks a
// palette, and follows each OSC query with a cursor position request so it
// can tell when a terminal stays silent. A PTY has nobody to answer, so the
// responder plays a dark terminal.
type queryReply struct {
	query string
	reply string
}

var terminalReplies = []queryReply{
	{query: "\x1b]11;?\x07", reply: "\x1b]11;rgb:0000/0000/0000\x07"},
	{query: "\x1b]11;?\x1b\\", reply: "\x1b]11;rgb:0000/0000/0000\x1b\\"},
	{query: "\x1b]10;?\x07", reply: "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{query: "\x1b]10;?\x1b\\", reply: "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{query: "\x1b[6n", reply: "\x1b[1;1R"},
}

// longestQuery bounds how much unmatched output must be kept between reads.
var longestQuery = func() int {
	n := 0
	for _, qr := range terminalReplies {
		n = max(n, len(qr.query))
	}
	return n
}()

type terminalResponder struct {
	w        io.Writer
	pending  []byte
	answered int
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w}
}

// Process scans program output for queries, including ones split across
// reads, and answers them in the order they were sent.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.pending = append(tr.pending, chunk...)
	for {
		idx, qr := tr.nextQuery()
		if idx < 0 {
			break
		}
		_, _ = io.WriteString(tr.w, qr.reply)
		tr.answered++
		tr.pending = tr.pending[idx+len(qr.query):]
	}
	if keep := longestQuery - 1; len(tr.pending) > keep {
		tr.pending = append(tr.pending[:0], tr.pending[len(tr.pending)-keep:]...)
	}
}

func (tr *terminalResponder) nextQuery() (int, queryReply) {
	best := -1
	var found queryReply
	for _, qr := range terminalReplies {
		idx := bytes.Index(tr.pending, []byte(qr.query))
		if idx >= 0 && (best < 0 || idx < best) {
			best, found = idx, qr
		}
	}
	return best, found
}
