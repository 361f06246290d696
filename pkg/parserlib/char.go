package parserlib

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Satisfy matches one character for which pred returns true.
func Satisfy(desc string, pred func(r rune) bool) *Parser {
	return NewParser(desc, func(ctx *Context, self *Parser) (interface{}, bool) {
		if ctx.EOF() {
			return self.Fail(ctx)
		}
		r, size := utf8.DecodeRuneInString(ctx.ReadAll())
		if !pred(r) {
			return self.Fail(ctx)
		}
		ctx.Advance(size)
		return ctx.input[ctx.pos-size : ctx.pos], true
	})
}

// String matches literal exactly.
func String(literal string) *Parser {
	return NewParser(fmt.Sprintf("string(%q)", literal), func(ctx *Context, self *Parser) (interface{}, bool) {
		if !strings.HasPrefix(ctx.ReadAll(), literal) {
			return self.Fail(ctx)
		}
		ctx.Advance(len(literal))
		return literal, true
	})
}

func anchor(re *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + re.String() + `)`)
}

// Regexp matches re starting exactly at the cursor and returns the text
// of the whole match.
func Regexp(re *regexp.Regexp) *Parser {
	return RegexpGroup(re, 0)
}

// RegexpGroup is Regexp, returning the text of capture group `group`
// (empty if the group did not participate). The whole match is consumed
// either way.
func RegexpGroup(re *regexp.Regexp, group int) *Parser {
	if group < 0 || group > re.NumSubexp() {
		panic(invalidArgumentf("regexp /%s/ has no group %d", re, group))
	}
	anchored := anchor(re)
	return NewParser(fmt.Sprintf("regexp(/%s/)", re), func(ctx *Context, self *Parser) (interface{}, bool) {
		rest := ctx.ReadAll()
		loc := anchored.FindStringSubmatchIndex(rest)
		if loc == nil {
			return self.Fail(ctx)
		}
		var res string
		if loc[2*group] >= 0 {
			res = rest[loc[2*group]:loc[2*group+1]]
		}
		ctx.Advance(loc[1])
		return res, true
	})
}

// RegexpChar matches one character that re matches.
func RegexpChar(re *regexp.Regexp) *Parser {
	anchored := regexp.MustCompile(`^(?:` + re.String() + `)$`)
	return Satisfy(fmt.Sprintf("regexp_char(/%s/)", re), func(r rune) bool {
		return anchored.MatchString(string(r))
	})
}

func OneOf(chars string) *Parser {
	return Satisfy(fmt.Sprintf("one_of(%s)", chars), func(r rune) bool {
		return strings.ContainsRune(chars, r)
	})
}

func NoneOf(chars string) *Parser {
	return Satisfy(fmt.Sprintf("none_of(%s)", chars), func(r rune) bool {
		return !strings.ContainsRune(chars, r)
	})
}

// TakeWhile matches the longest run of characters satisfying pred. It
// never fails.
func TakeWhile(pred func(r rune) bool) *Parser {
	return Satisfy("take_while", pred).Many().Join("")
}

// Spaced trims optional whitespace from both sides of p.
func Spaced(p *Parser) *Parser {
	return p.Trim(OptWhitespace())
}

// The parameterless primitives below are built once and shared.

type stdKey string

func AnyChar() *Parser {
	return Memoize(stdKey("any_char"), func() *Parser {
		return Satisfy("any_char", func(rune) bool { return true })
	})
}

// Remainder consumes and returns the rest of the input, which may be "".
func Remainder() *Parser {
	return Memoize(stdKey("remainder"), func() *Parser {
		return NewParser("remainder", func(ctx *Context, _ *Parser) (interface{}, bool) {
			rest := ctx.ReadAll()
			ctx.Advance(len(rest))
			return rest, true
		})
	})
}

// EOF matches only at end of input, returning nil.
func EOF() *Parser {
	return Memoize(stdKey("eof"), func() *Parser {
		return NewParser("end of file", func(ctx *Context, self *Parser) (interface{}, bool) {
			if !ctx.EOF() {
				return self.Fail(ctx)
			}
			return nil, true
		})
	})
}

func CR() *Parser {
	return Memoize(stdKey("cr"), func() *Parser { return String("\r") })
}

func LF() *Parser {
	return Memoize(stdKey("lf"), func() *Parser { return String("\n") })
}

func CRLF() *Parser {
	return Memoize(stdKey("crlf"), func() *Parser { return String("\r\n") })
}

// Newline matches any kind of line ending.
func Newline() *Parser {
	return Memoize(stdKey("newline"), func() *Parser { return Alt(CRLF(), LF(), CR()) })
}

// EndOfLine matches a line ending or end of input.
func EndOfLine() *Parser {
	return Memoize(stdKey("end_of_line"), func() *Parser { return Alt(Newline(), EOF()) })
}

func Letter() *Parser {
	return Memoize(stdKey("letter"), func() *Parser {
		return RegexpChar(regexp.MustCompile(`(?i)[a-z]`))
	})
}

func Letters() *Parser {
	return Memoize(stdKey("letters"), func() *Parser {
		return Regexp(regexp.MustCompile(`(?i)[a-z]+`))
	})
}

func OptLetters() *Parser {
	return Memoize(stdKey("opt_letters"), func() *Parser {
		return Regexp(regexp.MustCompile(`(?i)[a-z]*`))
	})
}

func Digit() *Parser {
	return Memoize(stdKey("digit"), func() *Parser {
		return RegexpChar(regexp.MustCompile(`[0-9]`))
	})
}

func Digits() *Parser {
	return Memoize(stdKey("digits"), func() *Parser {
		return Regexp(regexp.MustCompile(`[0-9]+`))
	})
}

func OptDigits() *Parser {
	return Memoize(stdKey("opt_digits"), func() *Parser {
		return Regexp(regexp.MustCompile(`[0-9]*`))
	})
}

func Whitespace() *Parser {
	return Memoize(stdKey("ws"), func() *Parser {
		return Regexp(regexp.MustCompile(`\s+`))
	})
}

func OptWhitespace() *Parser {
	return Memoize(stdKey("opt_ws"), func() *Parser {
		return Regexp(regexp.MustCompile(`\s*`))
	})
}
