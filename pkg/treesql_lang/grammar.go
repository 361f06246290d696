package treesql_lang

import (
	"strconv"

	p "github.com/vilterp/parsec/pkg/parserlib"
)

const StartRule = "query"

var Grammar *p.Grammar

var Language *p.Language

func init() {
	grammar, err := p.NewGrammar(grammarRules)
	if err != nil {
		panic(err)
	}
	Grammar = grammar
	Language = &p.Language{
		Name:      "treesql",
		Grammar:   grammar,
		StartRule: StartRule,
	}
}

// Parse parses one query into a *Query.
func Parse(input string) (*Query, error) {
	res, err := Language.Parse(input)
	if err != nil {
		return nil, err
	}
	return res.(*Query), nil
}

var grammarRules = map[string]p.RuleFunc{
	"query": func(g *p.Grammar) *p.Parser {
		return p.Spaced(g.Ref("select"))
	},
	"select": func(g *p.Grammar) *p.Parser {
		return p.SeqMap(
			func(values ...interface{}) interface{} {
				query := &Query{
					One:        values[0].(bool),
					Table:      values[2].(string),
					Selections: values[6].([]*Selection),
				}
				if where, ok := values[4].(*Where); ok {
					query.Where = where
				}
				return query
			},
			p.Alt(
				p.String("ONE").Result(true),
				p.String("MANY").Result(false),
			),
			p.Whitespace(),
			g.Ref("table_name"),
			p.Whitespace(),
			p.Optional(g.Ref("where_clause")),
			p.OptWhitespace(),
			g.Ref("selection"),
		)
	},
	"table_name": func(g *p.Grammar) *p.Parser {
		return p.Ident()
	},
	"column_name": func(g *p.Grammar) *p.Parser {
		return p.Ident()
	},
	"where_clause": func(g *p.Grammar) *p.Parser {
		return p.SeqMap(
			func(values ...interface{}) interface{} {
				return &Where{
					Column: values[2].(string),
					Value:  values[6].(Expr),
				}
			},
			p.String("WHERE"),
			p.Whitespace(),
			g.Ref("column_name"),
			p.OptWhitespace(),
			p.String("="),
			p.OptWhitespace(),
			g.Ref("expr"),
		)
	},
	"selection": func(g *p.Grammar) *p.Parser {
		return p.Wrap(
			p.String("{"),
			p.String("}"),
			p.Spaced(g.Ref("selection_fields")),
		)
	},
	"selection_fields": func(g *p.Grammar) *p.Parser {
		return p.SepBy(g.Ref("selection_field"), p.CommaOptWhitespace()).Fmap(func(res interface{}) interface{} {
			items := res.([]interface{})
			selections := make([]*Selection, len(items))
			for idx, item := range items {
				selections[idx] = item.(*Selection)
			}
			return selections
		})
	},
	"selection_field": func(g *p.Grammar) *p.Parser {
		return p.SeqMap(
			func(values ...interface{}) interface{} {
				sel := &Selection{Name: values[0].(string)}
				if sub, ok := values[1].(*Query); ok {
					sel.SubQuery = sub
				}
				return sel
			},
			g.Ref("column_name"),
			p.Optional(p.String(":").Skip(p.OptWhitespace()).Next(g.Ref("select"))),
		)
	},
	"expr": func(g *p.Grammar) *p.Parser {
		return p.Alt(
			p.SignedIntLit().Bind(func(res interface{}) *p.Parser {
				n, err := strconv.Atoi(res.(string))
				if err != nil {
					return p.Failed("integer in range")
				}
				return p.Succeed(Expr{Int: &n})
			}),
			p.StringLit().Bind(func(res interface{}) *p.Parser {
				s, err := strconv.Unquote(res.(string))
				if err != nil {
					return p.Failed("valid string escape")
				}
				return p.Succeed(Expr{String: &s})
			}),
			p.Ident().Fmap(func(res interface{}) interface{} {
				return Expr{ColumnRef: res.(string)}
			}),
		)
	},
}
