package tagml

import "strings"

const whitespace = " \t\r\n\f"

// parser holds the scanning state of one Parse call: the input, a single
// forward cursor and the stack of open tag names. closeTo carries the
// stack index of the element a closing tag matched, so the recursion can
// unwind to it; it is -1 when no close is pending.
type parser struct {
	src     string
	pos     int
	open    []string
	closeTo int
}

// Parse scans text into an ordered token forest. It is a pure function of
// its input and never fails: malformed markup degrades to plain text,
// silently dropped tags or auto-closed nesting. There is no implicit root
// token; the top level is the forest itself.
func Parse(text string) []Token {
	p := &parser{src: text, closeTo: -1}
	return p.parseContent()
}

// parseContent accumulates plain text and dispatches on tag candidates
// until the input ends or a closing tag terminates an enclosing element.
// Accumulated text is flushed before every dispatch decision, so runs on
// either side of a dropped closing tag stay segmented.
func (p *parser) parseContent() []Token {
	var content []Token
	start := p.pos

	flush := func(end int) {
		if end > start {
			content = append(content, &Text{Data: p.src[start:end]})
		}
	}

	for p.pos < len(p.src) {
		if p.src[p.pos] != '<' {
			p.pos++
			continue
		}

		if p.byteAt(p.pos+1) == '/' {
			if !isNameStart(p.byteAt(p.pos + 2)) {
				// "</" without a tag name is ordinary text.
				p.pos++
				continue
			}
			flush(p.pos)
			name, terminated := p.scanCloseTag()
			if terminated {
				if i := p.lastOpen(name); i >= 0 {
					// Close the nearest enclosing tag with this name.
					// Anything opened in between is auto-closed on the
					// way out.
					p.open = p.open[:i]
					p.closeTo = i
					return content
				}
			}
			// No matching open tag: the closer is consumed and dropped.
			start = p.pos
			continue
		}

		if !isNameStart(p.byteAt(p.pos + 1)) {
			// "<" not followed by a tag name is ordinary text.
			p.pos++
			continue
		}

		flush(p.pos)
		if tok := p.parseTag(); tok != nil {
			content = append(content, tok)
		}
		if p.closeTo >= 0 {
			// A closing tag inside parseTag matched an outer element;
			// keep unwinding.
			return content
		}
		start = p.pos
	}

	flush(p.pos)
	return content
}

// parseTag parses an element whose opening '<' is at the cursor; the
// caller has verified that a tag-name character follows. A nil return
// means the tag was malformed and produces no token. The malformed tag's
// name stays on the open stack, so closing tags for ancestors keep
// matching at the right depth.
func (p *parser) parseTag() *Tag {
	p.pos++ // consume '<'
	name := strings.ToUpper(p.scanName())
	p.open = append(p.open, name)
	myIdx := len(p.open) - 1

	tag := &Tag{Name: name}
	selfClosing, ok := p.parseAttrs(tag)
	if !ok {
		return nil
	}
	if selfClosing {
		p.open = p.open[:myIdx]
		return tag
	}

	tag.Children = p.parseContent()

	switch {
	case p.closeTo == myIdx:
		// The closing tag was for this element; stop unwinding. The stack
		// was already truncated at the close site.
		p.closeTo = -1
	case p.closeTo < 0 && len(p.open) > myIdx:
		// End of input: implicitly close this element.
		p.open = p.open[:myIdx]
	}
	return tag
}

// parseAttrs reads the attribute list of an open tag up to '>' or '/>' and
// reports whether the tag is self-closing. ok is false when the input ends
// inside the attribute list or inside a quoted value; that aborts the
// whole tag.
func (p *parser) parseAttrs(tag *Tag) (selfClosing, ok bool) {
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return false, false
		}
		switch c := p.src[p.pos]; {
		case c == '>':
			p.pos++
			return false, true
		case c == '/':
			if p.byteAt(p.pos+1) == '>' {
				p.pos += 2
				return true, true
			}
			p.pos++ // stray '/'
		case c == '"' || c == '\'':
			// A quote at the start of a name scan opens a quoted literal;
			// its content is stored as a flag attribute. Quotes anywhere
			// else in a name are plain name characters.
			lit, ok := p.scanQuoted(c)
			if !ok {
				return false, false
			}
			tag.setAttr(lit, "")
		default:
			key := p.scanAttrName()
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == '=' {
				p.pos++
				p.skipSpace()
				val, ok := p.scanAttrValue()
				if !ok {
					return false, false
				}
				tag.setAttr(key, val)
			} else {
				// Flag attribute.
				tag.setAttr(key, "")
			}
		}
	}
}

// scanName reads a tag name: everything up to whitespace, '/', '>' or the
// end of input.
func (p *parser) scanName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '/' || c == '>' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// scanAttrName reads an attribute name: one or more characters that are
// not whitespace, '=', '/' or '>'.
func (p *parser) scanAttrName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '=' || c == '/' || c == '>' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// scanAttrValue reads an attribute value: quoted verbatim up to the
// matching quote (no escape interpretation), or unquoted up to whitespace,
// '/' or '>'. ok is false only for an unterminated quote.
func (p *parser) scanAttrValue() (string, bool) {
	if p.pos < len(p.src) && (p.src[p.pos] == '"' || p.src[p.pos] == '\'') {
		return p.scanQuoted(p.src[p.pos])
	}
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) || c == '/' || c == '>' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos], true
}

// scanQuoted consumes a quoted run verbatim up to the next matching quote
// character. ok is false when the input ends first; the cursor is then at
// the end of input.
func (p *parser) scanQuoted(q byte) (string, bool) {
	p.pos++ // opening quote
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != q {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", false
	}
	val := p.src[start:p.pos]
	p.pos++ // closing quote
	return val, true
}

// scanCloseTag consumes a closing tag at the cursor and returns its
// canonical name. Stray characters between the name and '>' are discarded.
// terminated is false when the input ends before '>'; such a closer never
// matches.
func (p *parser) scanCloseTag() (name string, terminated bool) {
	p.pos += 2 // consume "</"
	name = strings.ToUpper(p.scanName())
	for p.pos < len(p.src) && p.src[p.pos] != '>' {
		p.pos++
	}
	if p.pos < len(p.src) {
		p.pos++ // consume '>'
		return name, true
	}
	return name, false
}

// lastOpen returns the stack index of the most recently opened tag with
// the given name, or -1.
func (p *parser) lastOpen(name string) int {
	for i := len(p.open) - 1; i >= 0; i-- {
		if p.open[i] == name {
			return i
		}
	}
	return -1
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// byteAt returns the byte at i, or 0 past the end of input.
func (p *parser) byteAt(i int) byte {
	if i < len(p.src) {
		return p.src[i]
	}
	return 0
}

func isSpace(c byte) bool {
	return strings.IndexByte(whitespace, c) >= 0
}

func isNameStart(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}
