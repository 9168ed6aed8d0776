// Package dialog provides the blocking alert, confirm and prompt dialogs the
// controller asks before destructive or text-entry operations.
package dialog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Provider interface {
	Alert(message string)
	Confirm(message string) bool
	// Prompt returns the reply and false when the user cancels.
	Prompt(message, initial string) (string, bool)
}

// Terminal asks on a line-oriented reader/writer pair, typically stdin and
// stderr. End of input cancels.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Alert(message string) {
	fmt.Fprintln(t.out, message)
}

func (t *Terminal) Confirm(message string) bool {
	fmt.Fprintf(t.out, "%s [y/N] ", message)
	line, ok := t.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// Prompt shows initial in brackets; an empty reply keeps it.
func (t *Terminal) Prompt(message, initial string) (string, bool) {
	if initial != "" {
		fmt.Fprintf(t.out, "%s [%s] ", message, initial)
	} else {
		fmt.Fprintf(t.out, "%s ", message)
	}
	line, ok := t.readLine()
	if !ok {
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return initial, true
	}
	return line, true
}

func (t *Terminal) readLine() (string, bool) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return line, true
}

// Preset answers with values decided ahead of time, for callers that ran
// their own dialog (the TUI modals) or want no interaction (--yes).
type Preset struct {
	Confirmed bool
	Reply     string
	Cancelled bool
	Alerts    []string
}

func (p *Preset) Alert(message string) {
	p.Alerts = append(p.Alerts, message)
}

func (p *Preset) Confirm(string) bool {
	return p.Confirmed
}

func (p *Preset) Prompt(string, string) (string, bool) {
	if p.Cancelled {
		return "", false
	}
	return p.Reply, true
}

// LastAlert returns the most recent alert and clears the queue.
func (p *Preset) LastAlert() (string, bool) {
	if len(p.Alerts) == 0 {
		return "", false
	}
	last := p.Alerts[len(p.Alerts)-1]
	p.Alerts = p.Alerts[:0]
	return last, true
}

// Scripted replays queued answers in order and records every question.
// Running out of answers behaves like the user dismissing the dialog.
type Scripted struct {
	Confirms []bool
	Replies  []*string
	Asked    []string
	Alerts   []string
}

func (s *Scripted) Alert(message string) {
	s.Alerts = append(s.Alerts, message)
}

func (s *Scripted) Confirm(message string) bool {
	s.Asked = append(s.Asked, message)
	if len(s.Confirms) == 0 {
		return false
	}
	ok := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return ok
}

func (s *Scripted) Prompt(message, initial string) (string, bool) {
	s.Asked = append(s.Asked, message)
	if len(s.Replies) == 0 {
		return "", false
	}
	reply := s.Replies[0]
	s.Replies = s.Replies[1:]
	if reply == nil {
		return "", false
	}
	return *reply, true
}

// Reply is a helper for building Scripted.Replies.
func Reply(s string) *string { return &s }
