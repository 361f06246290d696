package parserlib

import "sync"

// RuleKey identifies a grammar rule for memoization. Keys compare by
// pointer, so every NewRuleKey call yields a distinct rule.
type RuleKey struct {
	name string
}

func NewRuleKey(name string) *RuleKey {
	return &RuleKey{name: name}
}

func (k *RuleKey) String() string {
	return k.name
}

// Memoizer builds each rule's Parser once and hands out the same Parser
// on every later request, so rules referenced from many places (or from
// themselves, through Lazy) share one instance.
type Memoizer struct {
	mu      sync.Mutex
	entries map[interface{}]*memoEntry
}

type memoEntry struct {
	mu     sync.Mutex
	parser *Parser
}

func NewMemoizer() *Memoizer {
	return &Memoizer{
		entries: make(map[interface{}]*memoEntry),
	}
}

// DefaultMemoizer lives for the whole process. The built-in primitives
// are cached here under their own key type.
var DefaultMemoizer = NewMemoizer()

// Memoize returns the Parser cached under key, calling build to create it
// on first use. Concurrent first uses of one key build it once. key must
// be comparable.
//
// build may memoize other keys, but must not ask for its own key: a rule
// that refers to itself does so through Lazy.
func (m *Memoizer) Memoize(key interface{}, build func() *Parser) *Parser {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &memoEntry{}
		m.entries[key] = entry
	}
	m.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.parser == nil {
		entry.parser = build()
	}
	return entry.parser
}

// Len is the number of keys seen so far.
func (m *Memoizer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Memoize memoizes through DefaultMemoizer.
func Memoize(key interface{}, build func() *Parser) *Parser {
	return DefaultMemoizer.Memoize(key, build)
}
