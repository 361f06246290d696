package json_lang

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	p "github.com/vilterp/parsec/pkg/parserlib"
	"github.com/vilterp/parsec/pkg/util"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input  string
		output interface{}
	}{
		{`null`, nil},
		{`true`, true},
		{` false `, false},
		{`42`, 42.0},
		{`-1.5e2`, -150.0},
		{`+3`, 3.0},
		{`""`, ""},
		{`"Paco \"<3\" \\ \/ \n\t"`, "Paco \"<3\" \\ / \n\t"},
		{`"Пако"`, "Пако"},
		{`[]`, []interface{}{}},
		{`[ ]`, []interface{}{}},
		{`[1, "a", [null]]`, []interface{}{1.0, "a", []interface{}{nil}}},
		{`{}`, map[string]interface{}{}},
		{
			`{"a": [1, 2.5, "x", true, null], "b" : {"c": {}}}`,
			map[string]interface{}{
				"a": []interface{}{1.0, 2.5, "x", true, nil},
				"b": map[string]interface{}{"c": map[string]interface{}{}},
			},
		},
	}

	for idx, testCase := range cases {
		actual, err := Parse(testCase.input)
		require.NoErrorf(t, err, "case %d: %s", idx, testCase.input)
		require.Equalf(t, testCase.output, actual, "case %d: %s", idx, testCase.input)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		error string
	}{
		{
			`nul`,
			"Parsing error\nline 1, column 1:\nunexpected n\nexpecting string(\"{\")\n",
		},
		// value's last alternative is object, whose failure gets reported
		{
			`[1, 2`,
			"Parsing error\nline 1, column 1:\nunexpected [\nexpecting string(\"{\")\n",
		},
		{
			"{\"a\":\n  tru}",
			"Parsing error\nline 1, column 2:\nunexpected \"\nexpecting string(\"}\")\n",
		},
		// out of float64 range
		{
			`1e999`,
			"Parsing error\nline 1, column 1:\nunexpected 1\nexpecting string(\"{\")\n",
		},
	}

	for idx, testCase := range cases {
		_, err := Parse(testCase.input)
		util.AssertError(t, idx, testCase.error, err)
		_, isParseErr := err.(*p.ParseError)
		require.True(t, isParseErr)
	}
}

func TestMatchesEncodingJSON(t *testing.T) {
	inputs := []string{
		`{"name": "parsec", "tags": ["parser", "combinator"], "stars": 3, "meta": {"draft": false, "parent": null}}`,
		`[[[]], {"": ""}, -0.25, 1E3]`,
		"\n\t{ \"nested\" : [ { \"deep\" : [ 1 , 2 ] } ] }\n",
	}
	for _, input := range inputs {
		var expected interface{}
		require.NoError(t, json.Unmarshal([]byte(input), &expected))
		actual, err := Parse(input)
		require.NoError(t, err)
		require.Equal(t, expected, actual)
	}
}

func TestGrammarRules(t *testing.T) {
	require.Equal(t, []string{
		"array", "bool", "document", "member", "null", "number", "object", "string", "value",
	}, Grammar.RuleNames())

	serialized := Grammar.Serialize()
	require.Equal(t, "alt(null, bool, number, string, array, object)", serialized.Rules["value"])
}

func TestParseWithCallstack(t *testing.T) {
	_, err := Language.ParseWithCallstack(`[1, ]`)
	require.NoError(t, err)

	_, err = Language.ParseWithCallstack(`[1 2]`)
	require.Error(t, err)
	cs := err.(*p.ParseError).Callstack()
	require.NotNil(t, cs)
	require.Equal(t, 0, cs.Entries[cs.Len()-1].Depth)
}
