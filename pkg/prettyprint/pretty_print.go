package prettyprint

import (
	"fmt"
	"strings"
)

// Loosely based on http://homepages.inf.ed.ac.uk/wadler/papers/prettier/prettier.pdf,
// minus the layout search: docs render exactly as built.

type Doc interface {
	// String returns the rendered text.
	String() string
	// Debug returns a representation of the doc tree.
	Debug() string
}

// Text

type text struct {
	str string
}

var _ Doc = &text{}

func Text(s string) Doc {
	return &text{str: s}
}

func Textf(format string, args ...interface{}) Doc {
	return Text(fmt.Sprintf(format, args...))
}

func (t *text) String() string {
	return t.str
}

func (t *text) Debug() string {
	return fmt.Sprintf("Text(%#v)", t.str)
}

// Nest

type nest struct {
	doc Doc
	by  int
}

var _ Doc = &nest{}

// Nest indents every non-empty line of d by `by` spaces.
func Nest(by int, d Doc) Doc {
	return &nest{doc: d, by: by}
}

func (n *nest) String() string {
	indent := strings.Repeat(" ", n.by)
	lines := strings.Split(n.doc.String(), "\n")
	var sb strings.Builder
	for idx, line := range lines {
		if idx > 0 {
			sb.WriteByte('\n')
		}
		if line != "" {
			sb.WriteString(indent)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func (n *nest) Debug() string {
	return fmt.Sprintf("Nest(%d, %s)", n.by, n.doc.Debug())
}

// Empty

type empty struct{}

var Empty Doc = &empty{}

func (*empty) String() string { return "" }

func (*empty) Debug() string { return "Empty" }

// Seq

type concat struct {
	docs []Doc
}

var _ Doc = &concat{}

func Seq(docs ...Doc) Doc {
	return &concat{docs: docs}
}

func (c *concat) String() string {
	var sb strings.Builder
	for _, doc := range c.docs {
		sb.WriteString(doc.String())
	}
	return sb.String()
}

func (c *concat) Debug() string {
	docStrs := make([]string, len(c.docs))
	for idx, doc := range c.docs {
		docStrs[idx] = doc.Debug()
	}
	return fmt.Sprintf("Seq(%s)", strings.Join(docStrs, ", "))
}

// Newline

type newline struct{}

var Newline Doc = &newline{}

func (*newline) String() string { return "\n" }

func (*newline) Debug() string { return "Newline" }

// Combinators

func Join(docs []Doc, sep Doc) Doc {
	var out []Doc
	for idx, doc := range docs {
		if idx > 0 {
			out = append(out, sep)
		}
		out = append(out, doc)
	}
	return Seq(out...)
}

// Lines joins docs with newlines.
func Lines(docs []Doc) Doc {
	return Join(docs, Newline)
}

var Comma = Text(",")

var CommaNewline = Seq(Comma, Newline)
