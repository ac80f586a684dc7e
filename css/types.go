package css

import (
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// URL returns CSS url() function referencing location, always double quoted.
func URL(location string) string {
	return `url("` + cssEscapeDoubleQuoted(location) + `")`
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string   // Property name as written (e.g. "background-image")
	Value     string   // Value text with whitespace runs collapsed, without !important
	Important bool     // true when value was followed by !important
	Comments  []string // Comments written right before the declaration
}

// Is reports whether declaration sets the named property (case-insensitive).
func (d Declaration) Is(property string) bool {
	return strings.EqualFold(d.Property, property)
}

// Rule is a qualified rule: selector list, ordered declarations and nested
// items (nested rules, at-rules and trailing comments), printed after
// declarations.
type Rule struct {
	Selector     string // Selector list as written, whitespace collapsed (e.g. "a, .b:hover")
	Declarations []Declaration
	Items        []Item
}

// Get returns the last declaration for a property, or false if not found.
func (r *Rule) Get(property string) (Declaration, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Is(property) {
			return r.Declarations[i], true
		}
	}
	return Declaration{}, false
}

// Append adds declarations after all existing ones.
func (r *Rule) Append(decls ...Declaration) {
	r.Declarations = append(r.Declarations, decls...)
}

// Block is an at-rule with a body, e.g. @media, @supports, @font-face or
// @keyframes. Body may hold declarations (@font-face, @page) as well as
// nested items (@media).
type Block struct {
	Name         string // At-keyword including "@" (e.g. "@media")
	Prelude      string // Text between keyword and "{" (e.g. "screen and (min-width: 10px)")
	Declarations []Declaration
	Items        []Item
	Raw          string // Body of @-rules unknown to the tokenizer (e.g. @layer), whitespace collapsed
}

// AtRule is an at-rule without a body, e.g. @import or @charset.
type AtRule struct {
	Name    string
	Prelude string
}

// Item is a single entry in a stylesheet or a block body.
// Exactly one of Rule, Block, AtRule or Comment is non-nil.
type Item struct {
	Rule    *Rule
	Block   *Block
	AtRule  *AtRule
	Comment *string
}

// Stylesheet is a parsed stylesheet preserving source order of everything it
// contains.
type Stylesheet struct {
	Items []Item
}

// WalkRules calls fn for every rule in document order (depth first, rules
// nested in blocks and in other rules included, a rule before its nested
// ones) passing the flat rule index. Walk stops when fn
// returns false.
func (s *Stylesheet) WalkRules(fn func(index int, rule *Rule) bool) {
	index := 0
	walkItems(s.Items, &index, fn)
}

func walkItems(items []Item, index *int, fn func(int, *Rule) bool) bool {
	for i := range items {
		switch {
		case items[i].Rule != nil:
			if !fn(*index, items[i].Rule) {
				return false
			}
			*index++
			if !walkItems(items[i].Rule.Items, index, fn) {
				return false
			}
		case items[i].Block != nil:
			if !walkItems(items[i].Block.Items, index, fn) {
				return false
			}
		}
	}
	return true
}

// Rule returns rule with given flat index (see WalkRules) or nil.
func (s *Stylesheet) Rule(index int) *Rule {
	var found *Rule
	s.WalkRules(func(i int, r *Rule) bool {
		if i == index {
			found = r
			return false
		}
		return true
	})
	return found
}

// Rules returns all rules in WalkRules order, so Rules()[i] has flat index i.
func (s *Stylesheet) Rules() []*Rule {
	var rules []*Rule
	s.WalkRules(func(_ int, r *Rule) bool {
		rules = append(rules, r)
		return true
	})
	return rules
}

// RuleCount returns number of rules reachable by WalkRules.
func (s *Stylesheet) RuleCount() int {
	count := 0
	s.WalkRules(func(int, *Rule) bool {
		count++
		return true
	})
	return count
}

// RulesBySelector returns all rules (nested ones included) with exactly matching selector.
func (s *Stylesheet) RulesBySelector(selector string) []*Rule {
	var matches []*Rule
	s.WalkRules(func(_ int, r *Rule) bool {
		if r.Selector == selector {
			matches = append(matches, r)
		}
		return true
	})
	return matches
}
