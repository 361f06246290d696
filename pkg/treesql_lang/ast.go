package treesql_lang

import (
	"fmt"

	pp "github.com/vilterp/parsec/pkg/prettyprint"
)

// Query is `ONE|MANY table [WHERE col = expr] { selections }`.
type Query struct {
	One        bool `json:",omitempty"`
	Table      string
	Where      *Where `json:",omitempty"`
	Selections []*Selection
}

type Where struct {
	Column string
	Value  Expr
}

// Selection picks a column, or with SubQuery set, nests a query under
// that name.
type Selection struct {
	Name     string
	SubQuery *Query `json:",omitempty"`
}

// Expr is a literal or a column reference.
type Expr struct {
	ColumnRef string  `json:",omitempty"`
	String    *string `json:",omitempty"`
	Int       *int    `json:",omitempty"`
}

func (e Expr) Format() pp.Doc {
	switch {
	case e.String != nil:
		return pp.Textf("%q", *e.String)
	case e.Int != nil:
		return pp.Textf("%d", *e.Int)
	default:
		return pp.Text(e.ColumnRef)
	}
}

func (q *Query) Format() pp.Doc {
	keyword := "MANY"
	if q.One {
		keyword = "ONE"
	}
	header := []pp.Doc{pp.Textf("%s %s ", keyword, q.Table)}
	if q.Where != nil {
		header = append(header, pp.Textf("WHERE %s = ", q.Where.Column), q.Where.Value.Format(), pp.Text(" "))
	}
	if len(q.Selections) == 0 {
		return pp.Seq(append(header, pp.Text("{}"))...)
	}

	selections := make([]pp.Doc, len(q.Selections))
	for idx, sel := range q.Selections {
		if sel.SubQuery == nil {
			selections[idx] = pp.Text(sel.Name)
			continue
		}
		selections[idx] = pp.Seq(pp.Textf("%s: ", sel.Name), sel.SubQuery.Format())
	}
	return pp.Seq(append(header,
		pp.Text("{"),
		pp.Newline,
		pp.Nest(2, pp.Join(selections, pp.CommaNewline)),
		pp.Newline,
		pp.Text("}"),
	)...)
}

func (q *Query) String() string {
	return q.Format().String()
}

// Tables lists every table the query reads, outermost first.
func (q *Query) Tables() []string {
	tables := []string{q.Table}
	for _, sel := range q.Selections {
		if sel.SubQuery != nil {
			tables = append(tables, sel.SubQuery.Tables()...)
		}
	}
	return tables
}

var _ fmt.Stringer = &Query{}
