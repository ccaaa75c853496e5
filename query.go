package tagml

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Selector is a compiled predicate over parsed tags. The expression sees
// four variables: name (the canonical tag name), attrs (a map of attribute
// values), text (the tag's concatenated descendant text) and depth (the
// nesting level, zero at the top of the forest).
//
//	sel, err := CompileSelector(`name == "A" && attrs["href"] != ""`)
type Selector struct {
	prog *vm.Program
}

// CompileSelector compiles a selector expression. The expression must
// evaluate to a boolean.
func CompileSelector(src string) (*Selector, error) {
	prog, err := expr.Compile(src,
		expr.Env(selectorEnv("", nil, "", 0)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile selector: %w", err)
	}
	return &Selector{prog: prog}, nil
}

func selectorEnv(name string, attrs map[string]string, text string, depth int) map[string]any {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return map[string]any{
		"name":  name,
		"attrs": attrs,
		"text":  text,
		"depth": depth,
	}
}

// Find walks the forest and collects every tag the selector matches, in
// document order. Children of a matching tag are searched too.
func (s *Selector) Find(tokens []Token) ([]*Tag, error) {
	var out []*Tag
	_, err := s.walk(tokens, 0, func(t *Tag) bool {
		out = append(out, t)
		return true
	})
	return out, err
}

// First returns the first matching tag in document order, or nil when
// nothing matches.
func (s *Selector) First(tokens []Token) (*Tag, error) {
	var found *Tag
	_, err := s.walk(tokens, 0, func(t *Tag) bool {
		found = t
		return false
	})
	return found, err
}

// walk visits tags depth-first. The visit callback returns false to stop
// the traversal.
func (s *Selector) walk(tokens []Token, depth int, visit func(*Tag) bool) (bool, error) {
	for _, tok := range tokens {
		t, ok := tok.(*Tag)
		if !ok {
			continue
		}
		res, err := expr.Run(s.prog, selectorEnv(t.Name, t.AttrMap(), t.Text(), depth))
		if err != nil {
			return false, fmt.Errorf("eval selector: %w", err)
		}
		if res.(bool) && !visit(t) {
			return false, nil
		}
		more, err := s.walk(t.Children, depth+1, visit)
		if err != nil || !more {
			return more, err
		}
	}
	return true, nil
}
