package parserlib

import (
	"fmt"

	pp "github.com/vilterp/parsec/pkg/prettyprint"
)

type CallStatus string

const (
	StatusStart   CallStatus = "start"
	StatusSuccess CallStatus = "success"
	StatusFailure CallStatus = "failure"
)

// CallstackEntry is one event in a parse: a parser starting, succeeding
// or failing at Pos. Depth is the nesting level after the event.
type CallstackEntry struct {
	Status CallStatus
	Depth  int
	Parser string
	Pos    int
	Result interface{} `json:",omitempty"`
}

// Callstack is an append-only log of parser invocations. Parsing logic
// never reads it; it exists for debugging grammars.
type Callstack struct {
	Entries []CallstackEntry
	depth   int
}

func (cs *Callstack) start(desc string, pos int) {
	cs.depth++
	cs.Entries = append(cs.Entries, CallstackEntry{
		Status: StatusStart,
		Depth:  cs.depth,
		Parser: desc,
		Pos:    pos,
	})
}

func (cs *Callstack) success(desc string, pos int, result interface{}) {
	cs.depth--
	cs.Entries = append(cs.Entries, CallstackEntry{
		Status: StatusSuccess,
		Depth:  cs.depth,
		Parser: desc,
		Pos:    pos,
		Result: result,
	})
}

func (cs *Callstack) failure(desc string, pos int) {
	cs.depth--
	cs.Entries = append(cs.Entries, CallstackEntry{
		Status: StatusFailure,
		Depth:  cs.depth,
		Parser: desc,
		Pos:    pos,
	})
}

func (cs *Callstack) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Entries)
}

func (e CallstackEntry) Format() pp.Doc {
	switch e.Status {
	case StatusSuccess:
		return pp.Textf("%d %s %s => %#v", e.Pos, e.Status, e.Parser, e.Result)
	default:
		return pp.Textf("%d %s %s", e.Pos, e.Status, e.Parser)
	}
}

// Format renders the callstack one entry per line, indented by depth.
func (cs *Callstack) Format() pp.Doc {
	if cs == nil {
		return pp.Empty
	}
	docs := make([]pp.Doc, len(cs.Entries))
	for idx, entry := range cs.Entries {
		depth := entry.Depth
		if entry.Status != StatusStart {
			// line results up with their start
			depth++
		}
		if depth < 1 {
			depth = 1
		}
		docs[idx] = pp.Nest(2*(depth-1), entry.Format())
	}
	return pp.Lines(docs)
}

func (cs *Callstack) String() string {
	return cs.Format().String()
}

var _ fmt.Stringer = &Callstack{}
