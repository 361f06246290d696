package parserlib

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Index is a position in the input: a byte offset plus the 1-based line
// and column it falls on. Columns count runes.
type Index struct {
	Pos    int
	Line   int
	Column int
}

// CalculateIndex locates pos in input. The segment considered runs from the
// start of the input through the character at pos, so a position sitting on
// a newline reports the column of that newline.
func CalculateIndex(input string, pos int) (Index, error) {
	if pos < 0 {
		return Index{}, errors.Wrapf(ErrInvalidArgument, "pos must be non-negative; got %d", pos)
	}
	if pos > len(input) {
		return Index{}, errors.Wrapf(ErrInvalidArgument, "pos %d is greater than input length %d", pos, len(input))
	}

	end := pos
	if end < len(input) {
		_, size := utf8.DecodeRuneInString(input[end:])
		end += size
	}
	segment := input[:end]
	if segment == "" {
		return Index{Pos: pos, Line: 1, Column: 1}, nil
	}

	line := strings.Count(segment, "\n") + 1
	last := segment[strings.LastIndexByte(segment, '\n')+1:]
	if strings.HasSuffix(segment, "\n") {
		// the newline itself closes the last line
		line--
		last = segment[strings.LastIndexByte(segment[:len(segment)-1], '\n')+1:]
	}
	return Index{
		Pos:    pos,
		Line:   line,
		Column: utf8.RuneCountInString(last),
	}, nil
}

func (idx Index) String() string {
	return fmt.Sprintf("line %d, column %d", idx.Line, idx.Column)
}

func (idx Index) CompactString() string {
	return fmt.Sprintf("%d:%d", idx.Line, idx.Column)
}

// ShowInContext renders the line containing idx with a caret under its column.
func (idx Index) ShowInContext(input string) string {
	lines := strings.Split(input, "\n")
	lineIdx := idx.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return ""
	}
	line := strings.TrimSuffix(lines[lineIdx], "\r")
	col := idx.Column
	if col < 1 {
		col = 1
	}
	return fmt.Sprintf("%s\n%s^", line, strings.Repeat(" ", col-1))
}
