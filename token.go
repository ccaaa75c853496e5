// Package tagml parses an HTML-like tag mini-language into a token forest
// and formats that forest into an output tree through caller-supplied
// per-tag handlers.
//
// The parser is deliberately permissive: it is not an HTML or XML parser,
// performs no entity decoding and accepts malformed input with a fixed,
// deterministic recovery policy instead of reporting errors.
package tagml

import "strings"

// A Token is one node of the parsed forest: either a *Text run or a *Tag
// element with nested children.
type Token interface {
	isToken()
}

// Text is a verbatim fragment of the input.
type Text struct {
	Data string
}

func (*Text) isToken() {}

// Tag is a parsed element. Name is stored upper-case; opening and closing
// tags are matched case-insensitively. Children holds the nested forest.
// A self-closing tag and an empty element pair both end up with no
// children.
type Tag struct {
	Name     string
	Attrs    []Attribute
	Children []Token
}

func (*Tag) isToken() {}

// Attribute is a single key/value pair of a tag. Keys keep their original
// spelling and case; a flag attribute (written without =value) carries an
// empty value.
type Attribute struct {
	Key string
	Val string
}

// Attr returns the value of the named attribute. Lookup is exact and
// case-sensitive.
func (t *Tag) Attr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrMap returns the attributes as a map.
func (t *Tag) AttrMap() map[string]string {
	m := make(map[string]string, len(t.Attrs))
	for _, a := range t.Attrs {
		m[a.Key] = a.Val
	}
	return m
}

// Text returns the concatenated text of the tag's descendants in document
// order.
func (t *Tag) Text() string {
	var b strings.Builder
	writeText(&b, t)
	return b.String()
}

func writeText(b *strings.Builder, t *Tag) {
	for _, c := range t.Children {
		switch v := c.(type) {
		case *Text:
			b.WriteString(v.Data)
		case *Tag:
			writeText(b, v)
		}
	}
}

// setAttr adds or overwrites an attribute. Keys stay unique; a repeated
// key keeps the position of its first occurrence.
func (t *Tag) setAttr(key, val string) {
	for i := range t.Attrs {
		if t.Attrs[i].Key == key {
			t.Attrs[i].Val = val
			return
		}
	}
	t.Attrs = append(t.Attrs, Attribute{Key: key, Val: val})
}

// startMarkup renders the tag's opening markup with double-quoted
// attributes in insertion order, regardless of how they were quoted in the
// input. A childless tag renders in self-closing form: <NAME/> without
// attributes, <NAME attr="v" /> with them.
func (t *Tag) startMarkup() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, a := range t.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Val)
		b.WriteByte('"')
	}
	if len(t.Children) == 0 {
		if len(t.Attrs) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("/>")
	} else {
		b.WriteByte('>')
	}
	return b.String()
}

func (t *Tag) endMarkup() string {
	return "</" + t.Name + ">"
}

// MarshalMarkup renders a token forest back to markup in canonical form:
// upper-case tag names, double-quoted attributes in insertion order and
// self-closing syntax for childless tags. Parsing the result again yields
// a structurally identical forest for any well-formed input.
func MarshalMarkup(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		writeMarkup(&b, tok)
	}
	return b.String()
}

func writeMarkup(b *strings.Builder, tok Token) {
	switch t := tok.(type) {
	case *Text:
		b.WriteString(t.Data)
	case *Tag:
		b.WriteString(t.startMarkup())
		if len(t.Children) > 0 {
			for _, c := range t.Children {
				writeMarkup(b, c)
			}
			b.WriteString(t.endMarkup())
		}
	}
}
