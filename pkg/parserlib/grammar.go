package parserlib

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// RuleFunc builds a rule's parser. It refers to other rules (including
// its own) with g.Ref.
type RuleFunc func(g *Grammar) *Parser

// Grammar is a set of named, mutually recursive rules. Each rule is built
// once, through the grammar's own Memoizer.
type Grammar struct {
	builders map[string]RuleFunc
	memo     *Memoizer

	// names passed to Ref that have no rule
	mu          sync.Mutex
	missingRefs map[string]bool
}

type ruleName string

func NewGrammar(rules map[string]RuleFunc) (*Grammar, error) {
	g := &Grammar{
		builders:    rules,
		memo:        NewMemoizer(),
		missingRefs: make(map[string]bool),
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grammar) validate() error {
	for _, name := range g.RuleNames() {
		g.Rule(name)
		if missing := g.takeMissingRefs(); len(missing) > 0 {
			return errors.Errorf(`in rule "%s": ref not found: %s`, name, strings.Join(missing, ", "))
		}
	}
	return nil
}

func (g *Grammar) takeMissingRefs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var missing []string
	for ref := range g.missingRefs {
		missing = append(missing, fmt.Sprintf("%q", ref))
	}
	sort.Strings(missing)
	g.missingRefs = make(map[string]bool)
	return missing
}

// Rule returns the parser for the named rule, building it on first use.
// It panics if there is no such rule.
func (g *Grammar) Rule(name string) *Parser {
	build, ok := g.builders[name]
	if !ok {
		panic(invalidArgumentf("nonexistent rule: %s", name))
	}
	return g.memo.Memoize(ruleName(name), func() *Parser {
		return build(g)
	})
}

// Ref refers to the named rule without building it, so rules can be
// recursive.
func (g *Grammar) Ref(name string) *Parser {
	if _, ok := g.builders[name]; !ok {
		g.mu.Lock()
		g.missingRefs[name] = true
		g.mu.Unlock()
	}
	return Lazy(name, func() *Parser {
		return g.Rule(name)
	})
}

func (g *Grammar) HasRule(name string) bool {
	_, ok := g.builders[name]
	return ok
}

func (g *Grammar) RuleNames() []string {
	names := make([]string, 0, len(g.builders))
	for name := range g.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Grammar) Parse(startRuleName string, input string) (interface{}, error) {
	if !g.HasRule(startRuleName) {
		return nil, errors.Errorf("nonexistent start rule: %s", startRuleName)
	}
	return g.Rule(startRuleName).Parse(input)
}

func (g *Grammar) ParseWithCallstack(startRuleName string, input string) (interface{}, error) {
	if !g.HasRule(startRuleName) {
		return nil, errors.Errorf("nonexistent start rule: %s", startRuleName)
	}
	return g.Rule(startRuleName).ParseWithCallstack(input)
}

func (g *Grammar) String() string {
	var rulesStrings []string
	for _, name := range g.RuleNames() {
		rulesStrings = append(rulesStrings, fmt.Sprintf("%s: %s", name, g.Rule(name)))
	}
	return strings.Join(rulesStrings, "\n")
}

// SerializedGrammar is the grammar in a JSON-friendly form: each rule's
// name and description.
type SerializedGrammar struct {
	Rules map[string]string
}

func (g *Grammar) Serialize() *SerializedGrammar {
	sg := &SerializedGrammar{
		Rules: make(map[string]string),
	}
	for _, name := range g.RuleNames() {
		sg.Rules[name] = g.Rule(name).Desc()
	}
	return sg
}

// Language bundles a grammar with the rule that parses a whole document.
type Language struct {
	Name      string
	Grammar   *Grammar
	StartRule string
}

func (l *Language) Parse(input string) (interface{}, error) {
	return l.Grammar.Parse(l.StartRule, input)
}

func (l *Language) ParseWithCallstack(input string) (interface{}, error) {
	return l.Grammar.ParseWithCallstack(l.StartRule, input)
}
