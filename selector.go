package reveal

import (
	"fmt"
	"strings"
)

// Selector is a parsed selector list: comma-separated compound selectors
// built from a tag name, #id, .class, [attr] and [attr=value] parts.
// Combinators are not supported.
type Selector struct {
	groups []compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// ParseSelector parses s. An empty or malformed selector is an error.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Selector{}, fmt.Errorf("parse selector %q: empty compound", s)
		}
		c, err := parseCompound(part)
		if err != nil {
			return Selector{}, fmt.Errorf("parse selector %q: %w", s, err)
		}
		sel.groups = append(sel.groups, c)
	}
	return sel, nil
}

// MustParseSelector is like ParseSelector but panics on error. Intended for
// package-level selector constants.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic("reveal: " + err.Error())
	}
	return sel
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	name := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}
	if i < len(s) && isIdentByte(s[i]) {
		c.tag = name()
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			if c.id = name(); c.id == "" {
				return c, fmt.Errorf("missing id at %d", i)
			}
		case '.':
			i++
			cls := name()
			if cls == "" {
				return c, fmt.Errorf("missing class at %d", i)
			}
			c.classes = append(c.classes, cls)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute at %d", i)
			}
			body := s[i+1 : i+end]
			i += end + 1
			am := attrMatch{name: body}
			if k, v, ok := strings.Cut(body, "="); ok {
				am = attrMatch{name: k, value: strings.Trim(v, `"'`), hasValue: true}
			}
			if am.name == "" {
				return c, fmt.Errorf("empty attribute name")
			}
			c.attrs = append(c.attrs, am)
		default:
			return c, fmt.Errorf("unexpected %q at %d", s[i], i)
		}
	}
	return c, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Matches reports whether e satisfies any compound of the selector.
func (sel Selector) Matches(e *Element) bool {
	for i := range sel.groups {
		if sel.groups[i].matches(e) {
			return true
		}
	}
	return false
}

func (c *compound) matches(e *Element) bool {
	if c.tag != "" && c.tag != e.Tag {
		return false
	}
	if c.id != "" {
		if id, _ := e.Attr("id"); id != c.id {
			return false
		}
	}
	for _, cls := range c.classes {
		if !e.HasClass(cls) {
			return false
		}
	}
	for _, am := range c.attrs {
		v, ok := e.Attr(am.name)
		if !ok || (am.hasValue && v != am.value) {
			return false
		}
	}
	return true
}

// Matches parses sel and reports whether e satisfies it. Malformed selectors
// match nothing.
func (e *Element) Matches(sel string) bool {
	s, err := ParseSelector(sel)
	if err != nil {
		return false
	}
	return s.Matches(e)
}

// QueryAll returns the descendants of e (not e itself) matching sel, in
// document order.
func (e *Element) QueryAll(sel Selector) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if sel.Matches(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first descendant of e matching sel, or nil.
func (e *Element) Query(sel Selector) *Element {
	var found *Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if found != nil {
				return false
			}
			if sel.Matches(n) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}
