package parserlib

import (
	"fmt"
	"strings"
	"sync"
)

func descs(parsers []*Parser) string {
	strs := make([]string, len(parsers))
	for idx, p := range parsers {
		strs[idx] = p.desc
	}
	return strings.Join(strs, ", ")
}

// Alt returns the value of the first parser that succeeds, restoring the
// cursor between attempts. When all fail, the last one's failure is what
// gets reported.
func Alt(parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		panic(invalidArgumentf("no parsers specified"))
	}
	return NewParser(fmt.Sprintf("alt(%s)", descs(parsers)), func(ctx *Context, _ *Parser) (interface{}, bool) {
		start := ctx.pos
		for _, p := range parsers {
			if res, ok := p.Run(ctx); ok {
				return res, true
			}
			ctx.SetPos(start)
		}
		return nil, false
	})
}

// Seq runs parsers in order and returns their values. It does not
// backtrack: the cursor stays wherever the failing parser left it.
func Seq(parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		panic(invalidArgumentf("no parsers specified"))
	}
	return NewParser(fmt.Sprintf("seq(%s)", descs(parsers)), func(ctx *Context, _ *Parser) (interface{}, bool) {
		results := make([]interface{}, len(parsers))
		for idx, p := range parsers {
			res, ok := p.Run(ctx)
			if !ok {
				return nil, false
			}
			results[idx] = res
		}
		return results, true
	})
}

// SeqMap is Seq, with the values passed as arguments to combine.
func SeqMap(combine func(values ...interface{}) interface{}, parsers ...*Parser) *Parser {
	if len(parsers) == 0 {
		panic(invalidArgumentf("no parsers specified"))
	}
	return Seq(parsers...).Fmap(func(res interface{}) interface{} {
		return combine(res.([]interface{})...)
	})
}

// Many matches p zero or more times. It never fails.
func Many(p *Parser) *Parser {
	return NewParser(fmt.Sprintf("many(%s)", p.desc), func(ctx *Context, _ *Parser) (interface{}, bool) {
		results := []interface{}{}
		for {
			start := ctx.pos
			res, ok := p.Run(ctx)
			if !ok {
				ctx.SetPos(start)
				return results, true
			}
			results = append(results, res)
			if ctx.pos == start {
				// p matched without consuming; it would match forever
				return results, true
			}
		}
	})
}

// Optional returns p's value, or nil without consuming anything.
func Optional(p *Parser) *Parser {
	return Alt(p, Succeed(nil))
}

// SepBy1 matches one or more p separated by sep. A trailing sep is
// consumed.
func SepBy1(p, sep *Parser) *Parser {
	return SeqMap(func(values ...interface{}) interface{} {
		return append([]interface{}{values[0]}, values[1].([]interface{})...)
	}, p, Many(sep.Next(p)), Optional(sep)).WithDesc(fmt.Sprintf("sep_by_1(%s, %s)", p.desc, sep.desc))
}

// SepBy matches zero or more p separated by sep, tolerating a trailing sep.
func SepBy(p, sep *Parser) *Parser {
	return Alt(SepBy1(p, sep), Succeed([]interface{}{})).
		WithDesc(fmt.Sprintf("sep_by(%s, %s)", p.desc, sep.desc))
}

// Wrap expects before, p, after and returns p's value.
func Wrap(before, after, p *Parser) *Parser {
	return before.Next(p).Skip(after)
}

// Lazy defers calling build until the parser is first run, then keeps the
// result. Recursive rules refer to each other through it.
func Lazy(desc string, build func() *Parser) *Parser {
	var (
		once  sync.Once
		built *Parser
	)
	return NewParser(desc, func(ctx *Context, _ *Parser) (interface{}, bool) {
		once.Do(func() {
			built = build()
		})
		return built.Run(ctx)
	})
}

// Lookahead runs p and rewinds. It returns "" and fails when p fails.
func Lookahead(p *Parser) *Parser {
	return NewParser(fmt.Sprintf("lookahead(%s)", p.desc), func(ctx *Context, _ *Parser) (interface{}, bool) {
		start := ctx.pos
		if _, ok := p.Run(ctx); !ok {
			return nil, false
		}
		ctx.SetPos(start)
		return "", true
	})
}

// NotFollowedBy succeeds with nil, consuming nothing, only when p fails at
// the cursor.
func NotFollowedBy(p *Parser) *Parser {
	return NewParser("not "+p.desc, func(ctx *Context, self *Parser) (interface{}, bool) {
		start := ctx.pos
		_, ok := p.Run(ctx)
		ctx.SetPos(start)
		if ok {
			return self.Fail(ctx)
		}
		return nil, true
	})
}

// Succeed consumes nothing and returns value.
func Succeed(value interface{}) *Parser {
	return NewParser(fmt.Sprintf("succeed(%v)", value), func(*Context, *Parser) (interface{}, bool) {
		return value, true
	})
}

// Failed consumes nothing and always fails, reporting message as what
// was expected.
func Failed(message string) *Parser {
	return NewParser(message, func(ctx *Context, self *Parser) (interface{}, bool) {
		return self.Fail(ctx)
	})
}
