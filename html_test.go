package tagml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLFlattensGroups(t *testing.T) {
	v := &Group{Key: 0, Children: []any{
		&Group{Key: 0, Children: []any{"a"}},
		nil,
		&Group{Key: 1, Children: []any{
			&Group{Key: 0, Children: []any{"b"}},
		}},
	}}

	out, err := RenderHTML(v)
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestRenderHTMLEscapesText(t *testing.T) {
	f := New(Options{})

	out, err := RenderHTML(f.Format("1 < 2 & 3"))
	require.NoError(t, err)
	assert.Equal(t, "1 &lt; 2 &amp; 3", out)
}

func TestRenderHTMLLiteralMarkup(t *testing.T) {
	f := New(Options{KeepUnknownTags: true})

	out, err := RenderHTML(f.Format("<p>x</p>"))
	require.NoError(t, err)
	// Synthesized markup displays verbatim instead of parsing again.
	assert.Equal(t, "<code>&lt;P&gt;</code>x<code>&lt;/P&gt;</code>", out)
}

func TestElementHandlerAsDefault(t *testing.T) {
	f := New(Options{DefaultTagHandler: ElementHandler()})

	out, err := RenderHTML(f.Format(`a <div id="d">x <span>y</span></div>`))
	require.NoError(t, err)
	assert.Equal(t, `a <div id="d">x <span>y</span></div>`, out)
}

func TestElementHandlerSelfClosing(t *testing.T) {
	f := New(Options{DefaultTagHandler: ElementHandler()})

	out, err := RenderHTML(f.Format("a<br/>b"))
	require.NoError(t, err)
	assert.Equal(t, "a<br/>b", out)
}
