package parserlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombinators(t *testing.T) {
	altTrueOrFalse := Alt(String("true"), String("false"))
	sepByDigits := SepBy(Digits(), String(","))
	sepBy1Digits := SepBy1(Digits(), String(","))
	wrapped := Wrap(String("{"), String("}"), Letters())

	runParseCases(t, []parseCase{
		// NotFollowedBy
		{parser: Seq(NotFollowedBy(String("a")), String("b")), input: "b", output: []interface{}{nil, "b"}},
		{parser: NotFollowedBy(String("a")), input: "a", error: true},
		// Lookahead
		{parser: Seq(Lookahead(String("42")), Digits()), input: "42", output: strs("", "42")},
		{parser: Lookahead(String("Alf")), input: "Paco", error: true},
		// Succeed / Failed
		{parser: Seq(Succeed("Paco"), Remainder()), input: "<3", output: strs("Paco", "<3")},
		{parser: Seq(Failed("message"), Remainder()), input: "Paco", error: true},
		// Alt
		{parser: altTrueOrFalse, input: "true", output: "true"},
		{parser: altTrueOrFalse, input: "false", output: "false"},
		{parser: altTrueOrFalse, input: "null", error: true},
		{parser: Alt(String("t").Skip(Remainder()), String("true")), input: "true", output: "t"},
		// Seq
		{parser: Seq(String("pa"), String("co")), input: "paco", output: strs("pa", "co")},
		{parser: Seq(String("pa"), String("co")), input: "Paco", error: true},
		// SeqMap
		{
			parser: SeqMap(func(values ...interface{}) interface{} {
				return values[1].(string) + values[0].(string)
			}, String("pa"), String("co")).Skip(Remainder()),
			input:  "paco!",
			output: "copa",
		},
		{
			parser: SeqMap(func(values ...interface{}) interface{} {
				return values[1].(string) + values[0].(string)
			}, String("pa"), String("co")).Skip(Remainder()),
			input: "Paco",
			error: true,
		},
		// Many
		{parser: Many(Digit()).Skip(Remainder()), input: "123", output: strs("1", "2", "3")},
		{parser: Many(Digit()).Skip(Remainder()), input: "Paco", output: strs()},
		{parser: Many(OptDigits()).Skip(Remainder()), input: "12a", output: strs("12", "")},
		// Optional
		{parser: Optional(String("Paco")).Skip(Remainder()), input: "Paco!", output: "Paco"},
		{parser: Optional(String("Paco")).Skip(Remainder()), input: "paco", output: nil},
		// SepBy
		{parser: sepByDigits, input: "1,2,3", output: strs("1", "2", "3")},
		{parser: sepByDigits, input: "1,2,3,", output: strs("1", "2", "3")},
		{parser: sepByDigits, input: "", output: strs()},
		{parser: sepByDigits.Skip(Remainder()), input: "paco", output: strs()},
		{parser: sepByDigits, input: ",2,3", error: true},
		// SepBy1
		{parser: sepBy1Digits, input: "1,2,3", output: strs("1", "2", "3")},
		{parser: sepBy1Digits, input: "1,2,3,", output: strs("1", "2", "3")},
		{parser: sepBy1Digits, input: "", error: true},
		{parser: sepBy1Digits.Skip(Remainder()), input: "paco", error: true},
		{parser: sepBy1Digits, input: ",2,3", error: true},
		// Wrap
		{parser: wrapped, input: "{Paco}", output: "Paco"},
		{parser: wrapped, input: "{Пако}", error: true},
		{parser: wrapped, input: "{Paco", error: true},
	})
}

func TestNoParsersSpecified(t *testing.T) {
	requireInvalidArgument(t, func() { Alt() })
	requireInvalidArgument(t, func() { Seq() })
	requireInvalidArgument(t, func() {
		SeqMap(func(...interface{}) interface{} { return nil })
	})
}

func TestAltLastFailureWins(t *testing.T) {
	parser := Alt(String("nul").Next(String("l")), String("true"), String("false"))
	_, err := parser.Parse("nulx")
	require.Error(t, err)
	pe := err.(*ParseError)
	// the first alternative got further, but the last alternative's failure is reported
	require.Equal(t, `string("false")`, pe.Expected())
	require.Equal(t, 0, pe.Pos())
}

func TestAltRestoresCursor(t *testing.T) {
	ctx := NewContext("abd")
	res, ok := Alt(Seq(String("a"), String("b"), String("c")), String("ab")).Run(ctx)
	require.True(t, ok)
	require.Equal(t, "ab", res)
	require.Equal(t, 2, ctx.Pos())
}

func TestSeqDoesNotBacktrack(t *testing.T) {
	ctx := NewContext("abd")
	_, ok := Seq(String("a"), String("b"), String("c")).Run(ctx)
	require.False(t, ok)
	require.Equal(t, 2, ctx.Pos())
}

func TestManyStopsAtFirstFailure(t *testing.T) {
	ctx := NewContext("aaab")
	res, ok := Many(String("a")).Run(ctx)
	require.True(t, ok)
	require.Equal(t, strs("a", "a", "a"), res)
	require.Equal(t, 3, ctx.Pos())
}

func TestLookaheadDoesNotConsume(t *testing.T) {
	ctx := NewContext("42")
	res, ok := Lookahead(Digits()).Run(ctx)
	require.True(t, ok)
	require.Equal(t, "", res)
	require.Equal(t, 0, ctx.Pos())
}

func TestLazy(t *testing.T) {
	called := 0
	parser := Lazy("lazy", func() *Parser {
		called++
		return Failed("message")
	})
	// referencing doesn't build
	require.Equal(t, 0, called)

	_, err := parser.Parse("Paco")
	require.Error(t, err)
	require.Equal(t, "message", err.(*ParseError).Expected())
	require.Equal(t, 1, called)

	_, err = parser.Parse("Paco")
	require.Error(t, err)
	require.Equal(t, 1, called)
}

func TestLazyRecursion(t *testing.T) {
	// nested := "(" nested ")" | ""
	var nested *Parser
	nested = Alt(
		Wrap(String("("), String(")"), Lazy("nested", func() *Parser { return nested })).
			Fmap(func(res interface{}) interface{} { return res.(int) + 1 }),
		Succeed(0),
	)

	runParseCases(t, []parseCase{
		{parser: nested, input: "", output: 0},
		{parser: nested, input: "()", output: 1},
		{parser: nested, input: "((()))", output: 3},
		{parser: nested, input: "(()", error: true},
	})
}
