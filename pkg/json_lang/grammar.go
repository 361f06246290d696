package json_lang

import (
	"regexp"
	"strconv"

	p "github.com/vilterp/parsec/pkg/parserlib"
)

const StartRule = "document"

var Grammar *p.Grammar

var Language *p.Language

func init() {
	grammar, err := p.NewGrammar(grammarRules)
	if err != nil {
		panic(err)
	}
	Grammar = grammar
	Language = &p.Language{
		Name:      "json",
		Grammar:   grammar,
		StartRule: StartRule,
	}
}

// Parse decodes a JSON document into the same shapes encoding/json uses:
// nil, bool, float64, string, []interface{} and map[string]interface{}.
func Parse(input string) (interface{}, error) {
	return Language.Parse(input)
}

var grammarRules = map[string]p.RuleFunc{
	"document": func(g *p.Grammar) *p.Parser {
		return p.Spaced(g.Ref("value"))
	},
	"value": func(g *p.Grammar) *p.Parser {
		return p.Alt(
			g.Ref("null"),
			g.Ref("bool"),
			g.Ref("number"),
			g.Ref("string"),
			g.Ref("array"),
			g.Ref("object"),
		)
	},
	"null": func(g *p.Grammar) *p.Parser {
		return p.String("null").Result(nil)
	},
	"bool": func(g *p.Grammar) *p.Parser {
		return p.Alt(
			p.String("true").Result(true),
			p.String("false").Result(false),
		)
	},
	"number": func(g *p.Grammar) *p.Parser {
		return p.Regexp(numberRegexp).Bind(func(res interface{}) *p.Parser {
			n, err := strconv.ParseFloat(res.(string), 64)
			if err != nil {
				return p.Failed("number in range")
			}
			return p.Succeed(n)
		})
	},
	"string": func(g *p.Grammar) *p.Parser {
		return p.Wrap(
			p.String(`"`),
			p.String(`"`),
			p.Many(p.Alt(p.NoneOf(`"\`), escapedChar())).Join(""),
		)
	},
	"array": func(g *p.Grammar) *p.Parser {
		return p.Wrap(
			p.String("["),
			p.OptWhitespace().Next(p.String("]")),
			p.SepBy(p.Spaced(g.Ref("value")), p.String(",")),
		)
	},
	"member": func(g *p.Grammar) *p.Parser {
		return p.Seq(
			g.Ref("string").Skip(p.Spaced(p.String(":"))),
			g.Ref("value"),
		)
	},
	"object": func(g *p.Grammar) *p.Parser {
		return p.Wrap(
			p.String("{"),
			p.OptWhitespace().Next(p.String("}")),
			p.SepBy(p.Spaced(g.Ref("member")), p.String(",")),
		).Fmap(func(res interface{}) interface{} {
			members := res.([]interface{})
			obj := make(map[string]interface{}, len(members))
			for _, member := range members {
				pair := member.([]interface{})
				obj[pair[0].(string)] = pair[1]
			}
			return obj
		})
	},
}

var numberRegexp = regexp.MustCompile(`[-+]?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?`)

var (
	escapedCharKey   = p.NewRuleKey("escaped_char")
	fourHexDigitsKey = p.NewRuleKey("four_hex_digits")
)

func fourHexDigits() *p.Parser {
	return p.Memoize(fourHexDigitsKey, func() *p.Parser {
		return p.Regexp(regexp.MustCompile(`[0-9a-fA-F]{4}`))
	})
}

func escapedChar() *p.Parser {
	return p.Memoize(escapedCharKey, func() *p.Parser {
		return p.String(`\`).Next(p.Alt(
			p.String(`"`),
			p.String(`\`),
			p.String("/"),
			p.String("f").Result("\f"),
			p.String("b").Result("\b"),
			p.String("r").Result("\r"),
			p.String("n").Result("\n"),
			p.String("t").Result("\t"),
			p.String("u").Next(fourHexDigits()).Fmap(func(res interface{}) interface{} {
				code, err := strconv.ParseUint(res.(string), 16, 32)
				if err != nil {
					// four hex digits always fit
					panic(err)
				}
				return string(rune(code))
			}),
		)).WithDesc("escaped_char")
	})
}
