package parserlib

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrInvalidArgument marks misuse of the library: a malformed grammar
// definition rather than malformed input. Combinators panic with an error
// wrapping it; use errors.Cause to recognize it.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// ParseError is the one error surfaced when a top-level parse fails.
type ParseError struct {
	ctx      *Context
	pos      int
	expected string
}

func newParseError(ctx *Context) *ParseError {
	return &ParseError{
		ctx:      ctx,
		pos:      ctx.failPos,
		expected: ctx.failDesc,
	}
}

// Pos is the byte offset the failing parser was at.
func (pe *ParseError) Pos() int { return pe.pos }

// Expected describes the parser that failed last.
func (pe *ParseError) Expected() string { return pe.expected }

func (pe *ParseError) Input() string { return pe.ctx.input }

func (pe *ParseError) Index() Index {
	idx, err := pe.ctx.IndexAt(pe.pos)
	if err != nil {
		// failPos is always a cursor value, which SetPos keeps in range
		panic(err)
	}
	return idx
}

// Callstack is nil unless the parse was run with diagnostics.
func (pe *ParseError) Callstack() *Callstack {
	return pe.ctx.callstack
}

// Unexpected is the character at the failure position, or "end of file".
func (pe *ParseError) Unexpected() string {
	if pe.pos >= len(pe.ctx.input) {
		return "end of file"
	}
	r, _ := utf8.DecodeRuneInString(pe.ctx.input[pe.pos:])
	return string(r)
}

func (pe *ParseError) Error() string {
	idx := pe.Index()
	return fmt.Sprintf(
		"Parsing error\nline %d, column %d:\nunexpected %s\nexpecting %s\n",
		idx.Line, idx.Column, pe.Unexpected(), pe.expected,
	)
}

func (pe *ParseError) ShowInContext() string {
	idx := pe.Index()
	return fmt.Sprintf(
		"%s: unexpected %s, expecting %s\n%s",
		idx.String(), pe.Unexpected(), pe.expected, idx.ShowInContext(pe.ctx.input),
	)
}
