package parserlib

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMemoizeBuildsOnce(t *testing.T) {
	m := NewMemoizer()
	key := NewRuleKey("digits")

	builds := 0
	build := func() *Parser {
		builds++
		return Digits()
	}

	first := m.Memoize(key, build)
	second := m.Memoize(key, build)
	require.True(t, first == second)
	require.Equal(t, 1, builds)
	require.Equal(t, 1, m.Len())

	// a different key with the same name is a different rule
	third := m.Memoize(NewRuleKey("digits"), func() *Parser { return Letters() })
	require.False(t, first == third)
	require.Equal(t, 2, m.Len())
}

func TestMemoizeConcurrentFirstUse(t *testing.T) {
	m := NewMemoizer()
	key := NewRuleKey("rule")

	var builds int32
	results := make([]*Parser, 50)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Memoize(key, func() *Parser {
				atomic.AddInt32(&builds, 1)
				return String("x")
			})
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&builds))
	for _, p := range results {
		require.True(t, p == results[0])
	}
}

func TestMemoizeNestedKeys(t *testing.T) {
	m := NewMemoizer()
	inner := NewRuleKey("inner")
	outer := NewRuleKey("outer")

	p := m.Memoize(outer, func() *Parser {
		return Many(m.Memoize(inner, func() *Parser { return Digit() }))
	})
	res, err := p.Parse("123")
	require.NoError(t, err)
	require.Equal(t, strs("1", "2", "3"), res)
	require.Equal(t, 2, m.Len())
}

func TestMemoizeMutualRecursion(t *testing.T) {
	// list := "[" sep_by(value, ",") "]"
	// value := digits | list
	m := NewMemoizer()
	listKey := NewRuleKey("list")
	valueKey := NewRuleKey("value")

	var value func() *Parser
	list := func() *Parser {
		return m.Memoize(listKey, func() *Parser {
			return Wrap(String("["), String("]"), SepBy(Lazy("value", value), String(",")))
		})
	}
	value = func() *Parser {
		return m.Memoize(valueKey, func() *Parser {
			return Alt(Digits(), Lazy("list", list))
		})
	}

	res, err := value().Parse("[1,[2,3],[]]")
	require.NoError(t, err)
	require.Equal(t, []interface{}{
		"1",
		strs("2", "3"),
		strs(),
	}, res)

	_, err = value().Parse("[1,[2,3]")
	require.Error(t, err)
}

func TestMemoizeBuildPanicLeavesKeyUnbuilt(t *testing.T) {
	m := NewMemoizer()
	key := NewRuleKey("flaky")

	require.Panics(t, func() {
		m.Memoize(key, func() *Parser { panic("boom") })
	})
	p := m.Memoize(key, func() *Parser { return String("ok") })
	res, err := p.Parse("ok")
	require.NoError(t, err)
	require.Equal(t, "ok", res)
}

func TestParsersAreSafeForConcurrentUse(t *testing.T) {
	parser := SepBy(Digits(), String(","))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := parser.Parse("1,22,333")
			if err != nil {
				errs <- err
				return
			}
			if len(res.([]interface{})) != 3 {
				errs <- errors.Errorf("expected 3 items; got %v", res)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
