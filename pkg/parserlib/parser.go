package parserlib

import (
	"fmt"
	"strings"
)

// ParseFunc is the behavior of a Parser. It returns the parsed value and
// true on success. On failure it must return p.Fail(ctx), which records
// the failure without allocating; callers that can recover (Alt, Many,
// Times, Optional...) restore the cursor and carry on.
type ParseFunc func(ctx *Context, p *Parser) (interface{}, bool)

// Parser is a composable unit of grammar. Parsers hold no per-parse state
// and can be shared between goroutines, each parsing with its own Context.
type Parser struct {
	desc string
	fn   ParseFunc
}

func NewParser(desc string, fn ParseFunc) *Parser {
	return &Parser{
		desc: desc,
		fn:   fn,
	}
}

func (p *Parser) Desc() string {
	return p.desc
}

func (p *Parser) String() string {
	return p.desc
}

// WithDesc relabels p and returns it. Call it while building the grammar,
// never once parsing has started.
func (p *Parser) WithDesc(desc string) *Parser {
	p.desc = desc
	return p
}

// Parse runs p over the whole input. Matching only a prefix is a failure.
func (p *Parser) Parse(input string) (interface{}, error) {
	return p.ParseContext(NewContext(input))
}

// ParseWithCallstack is Parse with diagnostics: the returned ParseError
// carries the Callstack of the run.
func (p *Parser) ParseWithCallstack(input string) (interface{}, error) {
	return p.ParseContext(NewContextWithCallstack(input))
}

// ParseContext runs p on an already open Context and requires it to end
// at end of input.
func (p *Parser) ParseContext(ctx *Context) (interface{}, error) {
	res, ok := p.Run(ctx)
	if ok {
		_, ok = EOF().Run(ctx)
	}
	if !ok {
		if ctx.failDesc == "" {
			ctx.failPos, ctx.failDesc = ctx.pos, p.desc
		}
		return nil, newParseError(ctx)
	}
	return res, nil
}

// Run executes p against ctx, leaving the cursor just past what it
// consumed. Use it to run sub-parsers from custom ParseFuncs.
func (p *Parser) Run(ctx *Context) (interface{}, bool) {
	ctx.startParse(p)
	res, ok := p.fn(ctx, p)
	if !ok {
		ctx.failureParse(p)
		return nil, false
	}
	ctx.successParse(p, res)
	return res, true
}

// Fail signals that p did not match at the cursor.
func (p *Parser) Fail(ctx *Context) (interface{}, bool) {
	ctx.recordFailure(p)
	return nil, false
}

// Or tries p, and if it fails tries other from the same position.
func (p *Parser) Or(other *Parser) *Parser {
	return NewParser(fmt.Sprintf("or(%s, %s)", p.desc, other.desc), func(ctx *Context, _ *Parser) (interface{}, bool) {
		start := ctx.pos
		if res, ok := p.Run(ctx); ok {
			return res, true
		}
		ctx.SetPos(start)
		return other.Run(ctx)
	})
}

// Skip expects other after p and returns p's value.
func (p *Parser) Skip(other *Parser) *Parser {
	return NewParser(fmt.Sprintf("%s.skip(%s)", p.desc, other.desc), func(ctx *Context, _ *Parser) (interface{}, bool) {
		res, ok := p.Run(ctx)
		if !ok {
			return nil, false
		}
		if _, ok := other.Run(ctx); !ok {
			return nil, false
		}
		return res, true
	})
}

// Next expects other after p and returns other's value.
func (p *Parser) Next(other *Parser) *Parser {
	return NewParser(fmt.Sprintf("%s.next(%s)", p.desc, other.desc), func(ctx *Context, _ *Parser) (interface{}, bool) {
		if _, ok := p.Run(ctx); !ok {
			return nil, false
		}
		return other.Run(ctx)
	})
}

// Fmap transforms p's value with fun. Panics inside fun are not parse
// failures; they propagate to the caller.
func (p *Parser) Fmap(fun func(interface{}) interface{}) *Parser {
	return NewParser(p.desc+".fmap", func(ctx *Context, _ *Parser) (interface{}, bool) {
		res, ok := p.Run(ctx)
		if !ok {
			return nil, false
		}
		return fun(res), true
	})
}

// Bind runs p, then the parser fun builds from p's value.
func (p *Parser) Bind(fun func(interface{}) *Parser) *Parser {
	return NewParser(p.desc+".bind", func(ctx *Context, _ *Parser) (interface{}, bool) {
		res, ok := p.Run(ctx)
		if !ok {
			return nil, false
		}
		return fun(res).Run(ctx)
	})
}

// Chain is an alias for Bind.
func (p *Parser) Chain(fun func(interface{}) *Parser) *Parser {
	return p.Bind(fun)
}

func (p *Parser) Many() *Parser {
	return Many(p)
}

// Result returns a parser with p's behavior that yields value.
func (p *Parser) Result(value interface{}) *Parser {
	return p.Fmap(func(interface{}) interface{} { return value })
}

// Fallback yields value without consuming anything when p fails.
func (p *Parser) Fallback(value interface{}) *Parser {
	return p.Or(Succeed(value))
}

// Trim expects other on both sides of p.
func (p *Parser) Trim(other *Parser) *Parser {
	return other.Next(p).Skip(other)
}

func (p *Parser) Wrap(before, after *Parser) *Parser {
	return Wrap(before, after, p)
}

// NotFollowedBy yields p's value only if other does not match right after it.
func (p *Parser) NotFollowedBy(other *Parser) *Parser {
	return p.Skip(NotFollowedBy(other))
}

// Join concatenates p's value, which must be a sequence of strings.
func (p *Parser) Join(separator string) *Parser {
	return p.Fmap(func(res interface{}) interface{} {
		items := res.([]interface{})
		strs := make([]string, len(items))
		for idx, item := range items {
			strs[idx] = item.(string)
		}
		return strings.Join(strs, separator)
	})
}

// Times runs p min times, then up to max-min more times, stopping quietly
// at the first optional repetition that fails.
func (p *Parser) Times(min, max int) *Parser {
	if min < 0 || max < min {
		panic(invalidArgumentf("invalid attributes: min `%d`, max `%d`", min, max))
	}
	return NewParser(fmt.Sprintf("%s.times(%d, %d)", p.desc, min, max), func(ctx *Context, _ *Parser) (interface{}, bool) {
		results := make([]interface{}, 0, min)
		for i := 0; i < min; i++ {
			res, ok := p.Run(ctx)
			if !ok {
				return nil, false
			}
			results = append(results, res)
		}
		for i := min; i < max; i++ {
			start := ctx.pos
			res, ok := p.Run(ctx)
			if !ok {
				ctx.SetPos(start)
				break
			}
			results = append(results, res)
		}
		return results, true
	})
}

// Exactly is Times(n, n).
func (p *Parser) Exactly(n int) *Parser {
	return p.Times(n, n)
}

func (p *Parser) AtLeast(n int) *Parser {
	return SeqMap(func(values ...interface{}) interface{} {
		head := values[0].([]interface{})
		rest := values[1].([]interface{})
		return append(head, rest...)
	}, p.Exactly(n), p.Many()).WithDesc(fmt.Sprintf("%s.at_least(%d)", p.desc, n))
}

func (p *Parser) AtMost(n int) *Parser {
	return p.Times(0, n)
}
