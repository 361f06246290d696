package util

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAreEqualJSON(t *testing.T) {
	cases := []struct {
		a     string
		b     string
		equal bool
		error string
	}{
		{`{"a": 1, "b": [true, null]}`, `{"b":[true,null],"a":1}`, true, ""},
		{`{"a": 1}`, `{"a": 2}`, false, ""},
		{`[1, 2]`, `[2, 1]`, false, ""},
		{`{`, `{}`, false, "error parsing string 1: unexpected end of JSON input"},
		{`{}`, `nope`, false, "error parsing string 2: invalid character 'o' in literal null (expecting 'u')"},
	}

	for idx, testCase := range cases {
		equal, err := AreEqualJSON(testCase.a, testCase.b)
		if AssertError(t, idx, testCase.error, err) {
			continue
		}
		require.Equalf(t, testCase.equal, equal, "case %d", idx)
	}
}

func TestAssertError(t *testing.T) {
	require.False(t, AssertError(t, 0, "", nil))
	require.True(t, AssertError(t, 0, "boom", errors.New("boom")))
}

func TestRequireEqualJSON(t *testing.T) {
	RequireEqualJSON(t, `{"Rules": {"a": "b"}}`, struct {
		Rules map[string]string
	}{
		Rules: map[string]string{"a": "b"},
	})
}
