package token

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a single diagnostic produced by the lexer, parser or resolver,
// tied to a resolved source Position.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.Filename == "" && e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList accumulates diagnostics across a single lex/parse/resolve pass so
// that as many as possible can be reported together, per spec.md §7's
// parser recovery policy.
type ErrorList struct {
	errs []*Error
}

// Add appends a new error at the given position.
func (l *ErrorList) Add(pos Position, msg string) {
	l.errs = append(l.errs, &Error{Pos: pos, Msg: msg})
}

// Len returns the number of accumulated errors.
func (l *ErrorList) Len() int { return len(l.errs) }

// Sort orders the errors by filename, then line, then column.
func (l *ErrorList) Sort() {
	sort.SliceStable(l.errs, func(i, j int) bool {
		a, b := l.errs[i].Pos, l.errs[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

// Err returns nil if the list is empty, otherwise itself as an error. The
// returned error implements Unwrap() []error so callers may use errors.Is/As
// or range over errors.Join-style inspection.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

func (l *ErrorList) Error() string {
	switch len(l.errs) {
	case 0:
		return "no errors"
	case 1:
		return l.errs[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(l.errs[0].Error())
	fmt.Fprintf(&sb, " (and %d more errors)", len(l.errs)-1)
	return sb.String()
}

// Unwrap exposes every accumulated error so the standard errors package can
// traverse the list with errors.Is / errors.As.
func (l *ErrorList) Unwrap() []error {
	errs := make([]error, len(l.errs))
	for i, e := range l.errs {
		errs[i] = e
	}
	return errs
}

// Errors returns the accumulated diagnostics directly.
func (l *ErrorList) Errors() []*Error { return l.errs }
