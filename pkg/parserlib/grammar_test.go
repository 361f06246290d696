package parserlib

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// arithRules is a small arithmetic grammar:
//
//	expr   := term (("+" | "-") term)*
//	term   := factor (("*" | "/") factor)*
//	factor := int | "(" expr ")"
func arithRules() map[string]RuleFunc {
	binop := func(operand *Parser, ops string) *Parser {
		return SeqMap(func(values ...interface{}) interface{} {
			acc := values[0].(int)
			for _, item := range values[1].([]interface{}) {
				pair := item.([]interface{})
				rhs := pair[1].(int)
				switch pair[0].(string) {
				case "+":
					acc += rhs
				case "-":
					acc -= rhs
				case "*":
					acc *= rhs
				case "/":
					acc /= rhs
				}
			}
			return acc
		}, operand, Many(Seq(Spaced(OneOf(ops)), operand)))
	}
	return map[string]RuleFunc{
		"expr": func(g *Grammar) *Parser {
			return binop(g.Ref("term"), "+-")
		},
		"term": func(g *Grammar) *Parser {
			return binop(g.Ref("factor"), "*/")
		},
		"factor": func(g *Grammar) *Parser {
			return Alt(
				Regexp(regexp.MustCompile(`[0-9]+`)).Fmap(func(res interface{}) interface{} {
					n := 0
					for _, r := range res.(string) {
						n = n*10 + int(r-'0')
					}
					return n
				}),
				Wrap(String("("), String(")"), Spaced(g.Ref("expr"))),
			)
		},
	}
}

func TestGrammarParse(t *testing.T) {
	g, err := NewGrammar(arithRules())
	require.NoError(t, err)

	cases := []struct {
		input  string
		output int
	}{
		{"1", 1},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"((( 4 )))", 4},
		{"10 - 2 - 3", 5},
	}
	for _, testCase := range cases {
		res, err := g.Parse("expr", testCase.input)
		require.NoErrorf(t, err, "input %q", testCase.input)
		require.Equalf(t, testCase.output, res, "input %q", testCase.input)
	}

	_, err = g.Parse("expr", "(1 + 2")
	require.Error(t, err)
	_, isParseErr := err.(*ParseError)
	require.True(t, isParseErr)
}

func TestGrammarRulesAreShared(t *testing.T) {
	g, err := NewGrammar(arithRules())
	require.NoError(t, err)
	require.True(t, g.Rule("expr") == g.Rule("expr"))
	require.Equal(t, []string{"expr", "factor", "term"}, g.RuleNames())
	require.True(t, g.HasRule("term"))
	require.False(t, g.HasRule("statement"))
}

func TestGrammarMissingRef(t *testing.T) {
	_, err := NewGrammar(map[string]RuleFunc{
		"a": func(g *Grammar) *Parser {
			return Seq(String("a"), g.Ref("b"), g.Ref("c"))
		},
	})
	require.EqualError(t, err, `in rule "a": ref not found: "b", "c"`)
}

func TestGrammarNonexistentRule(t *testing.T) {
	g, err := NewGrammar(arithRules())
	require.NoError(t, err)

	requireInvalidArgument(t, func() { g.Rule("statement") })

	_, err = g.Parse("statement", "1")
	require.EqualError(t, err, "nonexistent start rule: statement")
	_, err = g.ParseWithCallstack("statement", "1")
	require.Error(t, err)
}

func TestGrammarSerialize(t *testing.T) {
	g, err := NewGrammar(map[string]RuleFunc{
		"bool": func(g *Grammar) *Parser {
			return Alt(String("true"), String("false"))
		},
		"list": func(g *Grammar) *Parser {
			return SepBy(g.Ref("bool"), String(","))
		},
	})
	require.NoError(t, err)

	require.Equal(t, &SerializedGrammar{
		Rules: map[string]string{
			"bool": `alt(string("true"), string("false"))`,
			"list": `sep_by(bool, string(","))`,
		},
	}, g.Serialize())
	require.Equal(t, "bool: alt(string(\"true\"), string(\"false\"))\nlist: sep_by(bool, string(\",\"))", g.String())
}

func TestLanguage(t *testing.T) {
	g, err := NewGrammar(arithRules())
	require.NoError(t, err)
	lang := &Language{Name: "arith", Grammar: g, StartRule: "expr"}

	res, err := lang.Parse("2 * (3 + 4)")
	require.NoError(t, err)
	require.Equal(t, 14, res)

	_, err = lang.ParseWithCallstack("2 *")
	require.Error(t, err)
	require.NotZero(t, err.(*ParseError).Callstack().Len())
}
