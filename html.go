package tagml

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToNode converts a Format result into an html.Node tree rooted at a
// document node. Groups flatten into their children, strings become text
// nodes, *html.Node values attach as-is and Literals become <code>
// elements so the synthesized markup displays verbatim. Any other value is
// stringified into a text node.
func ToNode(v any) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	appendValue(root, v)
	return root
}

func appendValue(dst *html.Node, v any) {
	switch t := v.(type) {
	case nil:
	case *Group:
		for _, c := range t.Children {
			appendValue(dst, c)
		}
	case *Literal:
		code := &html.Node{Type: html.ElementNode, DataAtom: atom.Code, Data: "code"}
		code.AppendChild(&html.Node{Type: html.TextNode, Data: t.Markup})
		dst.AppendChild(code)
	case *html.Node:
		dst.AppendChild(t)
	case string:
		dst.AppendChild(&html.Node{Type: html.TextNode, Data: t})
	case []any:
		for _, c := range t {
			appendValue(dst, c)
		}
	default:
		dst.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprint(t)})
	}
}

// RenderHTML serializes a Format result as HTML.
func RenderHTML(v any) (string, error) {
	var b strings.Builder
	root := ToNode(v)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return b.String(), nil
}

// ElementHandler returns a TagHandler that builds an html.Node element
// named after the tag, carrying its attributes and formatted children.
// Registered per tag, or installed as the DefaultTagHandler, it turns a
// Formatter into a plain HTML renderer.
func ElementHandler() TagHandler {
	return func(_ int, tag TagData, _ any) any {
		name := strings.ToLower(tag.Name)
		n := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(name)),
			Data:     name,
		}
		for _, a := range tag.Attrs {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		for _, c := range tag.Children {
			appendValue(n, c)
		}
		return n
	}
}
