package parserlib

import "regexp"

func WhitespaceSeq(items ...*Parser) *Parser {
	// hoo, a generic intercalate function sure would be nice
	var outItems []*Parser
	for idx, item := range items {
		if idx > 0 {
			outItems = append(outItems, Whitespace())
		}
		outItems = append(outItems, item)
	}
	return Seq(outItems...).Fmap(func(res interface{}) interface{} {
		all := res.([]interface{})
		out := make([]interface{}, 0, len(items))
		for idx := 0; idx < len(all); idx += 2 {
			out = append(out, all[idx])
		}
		return out
	})
}

func CommaOptWhitespace() *Parser {
	return Memoize(stdKey("comma_opt_ws"), func() *Parser {
		return String(",").Skip(OptWhitespace())
	})
}

func UnsignedIntLit() *Parser {
	return Memoize(stdKey("unsigned_int_lit"), func() *Parser {
		return Regexp(regexp.MustCompile("[0-9]+"))
	})
}

func SignedIntLit() *Parser {
	return Memoize(stdKey("signed_int_lit"), func() *Parser {
		return Regexp(regexp.MustCompile("-?[0-9]+"))
	})
}

// StringLit matches a double-quoted string with backslash escapes and
// returns it quotes included.
// Thank you https://stackoverflow.com/a/2039820
func StringLit() *Parser {
	return Memoize(stdKey("string_lit"), func() *Parser {
		return Regexp(regexp.MustCompile(`"(\\.|[^"\\])*"`))
	})
}

func Ident() *Parser {
	return Memoize(stdKey("ident"), func() *Parser {
		return Regexp(regexp.MustCompile("[a-zA-Z_][a-zA-Z0-9_]*"))
	})
}
