package util

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// AreEqualJSON reports whether two JSON documents decode to the same value,
// regardless of key order and whitespace.
// From https://gist.github.com/turtlemonvh/e4f7404e28387fadb8ad275a99596f67
func AreEqualJSON(s1, s2 string) (bool, error) {
	var o1 interface{}
	var o2 interface{}

	if err := json.Unmarshal([]byte(s1), &o1); err != nil {
		return false, errors.Wrap(err, "error parsing string 1")
	}
	if err := json.Unmarshal([]byte(s2), &o2); err != nil {
		return false, errors.Wrap(err, "error parsing string 2")
	}

	return reflect.DeepEqual(o1, o2), nil
}

// RequireEqualJSON fails the test unless actual encodes to the same JSON
// as the expected document.
func RequireEqualJSON(t *testing.T, expected string, actual interface{}) {
	t.Helper()
	actualJSON, err := json.Marshal(actual)
	require.NoError(t, err)
	equal, err := AreEqualJSON(expected, string(actualJSON))
	require.NoError(t, err)
	require.Truef(t, equal, "expected %s; got %s", expected, actualJSON)
}

// fails the test if the actual error doesn't match the expected error.
// if an error is expected and matches, returns true.
// i.e. the return value is "shouldContinue"
func AssertError(t *testing.T, caseIdx int, expected string, err error) bool {
	t.Helper()
	if err != nil {
		if expected == "" {
			t.Fatalf(`case %d: expected success; got error "%s"`, caseIdx, err.Error())
			return false
		}
		if err.Error() != expected {
			t.Fatalf(`case %d: expected error "%s"; got "%s"`, caseIdx, expected, err.Error())
			return false
		}
		return true
	}
	if expected != "" {
		t.Fatalf(`case %d: expected error "%s"; got success`, caseIdx, expected)
		return false
	}
	return false
}
