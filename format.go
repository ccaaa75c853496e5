package tagml

import (
	"io"
	"log/slog"
	"strings"
)

// TagHandler converts a parsed tag into an output value. index is the
// token's position within its parent's children, a stable identity hint
// for the consuming render layer. aux is the auxiliary state of the
// current pass, nil unless an AuxState producer is configured. A nil
// return means the tag renders to nothing.
type TagHandler func(index int, tag TagData, aux any) any

// TextHandler converts a text run into an output value.
type TextHandler func(index int, text string, aux any) any

// TagData is the view of a tag passed to handlers: the canonical name,
// the attributes in insertion order and the already-formatted children.
type TagData struct {
	Name     string
	Attrs    []Attribute
	Children []any
}

// Attr returns the value of the named attribute. Lookup is exact and
// case-sensitive.
func (t TagData) Attr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Group is the transparent grouping node the walker wraps results in,
// keyed by the positional index. It lets a nil handler result and "no
// children" both be represented one level up.
type Group struct {
	Key      int
	Children []any
}

// Literal is synthesized tag markup produced for a kept unknown tag. It
// must be rendered as non-interpreted text, so the angle brackets display
// instead of being parsed again.
type Literal struct {
	Key    int
	Markup string
}

// Options configures a Formatter. The zero value is usable: text passes
// through unchanged and unregistered tags are elided, keeping their
// children.
type Options struct {
	// TextHandler converts text runs. The default returns the text
	// verbatim.
	TextHandler TextHandler

	// TagHandlers maps tag names to handlers. Lookup is case-insensitive;
	// names are canonicalized once at construction.
	TagHandlers map[string]TagHandler

	// DefaultTagHandler, when set, receives every tag without an entry in
	// TagHandlers. It takes precedence over KeepUnknownTags.
	DefaultTagHandler TagHandler

	// KeepUnknownTags renders unregistered tags as literal markup instead
	// of eliding them.
	KeepUnknownTags bool

	// AuxState, when set, is invoked once per Format pass; its result is
	// passed unchanged to every handler invocation of that pass.
	AuxState func() any

	// Logger receives debug traces. Defaults to a discard logger.
	Logger *slog.Logger
}

// Formatter converts raw markup into an output tree by walking the parsed
// token forest and dispatching per-tag handlers. A Formatter is immutable
// after New and meant to be reused across many Format calls; two calls
// with the same input produce structurally identical output, so callers
// may memoize on the input text.
type Formatter struct {
	text        TextHandler
	tags        map[string]TagHandler
	defaultTag  TagHandler
	keepUnknown bool
	auxState    func() any
	logger      *slog.Logger
}

// New builds a Formatter from opts.
func New(opts Options) *Formatter {
	f := &Formatter{
		text:        opts.TextHandler,
		tags:        make(map[string]TagHandler, len(opts.TagHandlers)),
		defaultTag:  opts.DefaultTagHandler,
		keepUnknown: opts.KeepUnknownTags,
		auxState:    opts.AuxState,
		logger:      opts.Logger,
	}
	for name, h := range opts.TagHandlers {
		f.tags[strings.ToUpper(name)] = h
	}
	if f.text == nil {
		f.text = func(_ int, text string, _ any) any { return text }
	}
	if f.logger == nil {
		f.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return f
}

// Format parses text and walks the resulting forest. An empty input
// produces an empty top-level Group. Panics raised by handlers are not
// recovered.
func (f *Formatter) Format(text string) any {
	return f.FormatTokens(Parse(text))
}

// FormatTokens walks an already-parsed forest. It allows callers to cache
// the Parse result externally and reformat it.
func (f *Formatter) FormatTokens(tokens []Token) any {
	var aux any
	if f.auxState != nil {
		aux = f.auxState()
	}
	f.logger.Debug("format pass", "tokens", len(tokens))
	return f.formatTokens(tokens, 0, aux)
}

func (f *Formatter) formatTokens(tokens []Token, index int, aux any) any {
	g := &Group{Key: index}
	for i, tok := range tokens {
		g.Children = append(g.Children, f.formatToken(tok, i, aux))
	}
	return g
}

func (f *Formatter) formatToken(tok Token, index int, aux any) any {
	switch t := tok.(type) {
	case *Text:
		g := &Group{Key: index}
		if r := f.text(index, t.Data, aux); r != nil {
			g.Children = []any{r}
		}
		return g

	case *Tag:
		children := make([]any, 0, len(t.Children))
		for i, c := range t.Children {
			children = append(children, f.formatToken(c, i, aux))
		}
		data := TagData{Name: t.Name, Attrs: t.Attrs, Children: children}

		if h, ok := f.tags[t.Name]; ok {
			return h(index, data, aux)
		}
		if f.defaultTag != nil {
			return f.defaultTag(index, data, aux)
		}
		if f.keepUnknown {
			f.logger.Debug("keeping unknown tag", "name", t.Name)
			return f.keepTag(t, index, children)
		}
		// Elide the tag; its children still render.
		return &Group{Key: index, Children: children}
	}
	return nil
}

// keepTag wraps the formatted children in the tag's literal markup.
func (f *Formatter) keepTag(t *Tag, index int, children []any) any {
	g := &Group{Key: index}
	g.Children = append(g.Children, &Literal{Key: index, Markup: t.startMarkup()})
	if len(t.Children) > 0 {
		g.Children = append(g.Children, children...)
		g.Children = append(g.Children, &Literal{Key: index, Markup: t.endMarkup()})
	}
	return g
}
