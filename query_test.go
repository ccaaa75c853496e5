package tagml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryDoc = `<div id="top"><span class="x">hello</span><span>mid</span></div><span class="x">bye</span>`

func TestSelectorFind(t *testing.T) {
	tokens := Parse(queryDoc)

	sel, err := CompileSelector(`name == "SPAN"`)
	require.NoError(t, err)

	tags, err := sel.Find(tokens)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "hello", tags[0].Text())
	assert.Equal(t, "mid", tags[1].Text())
	assert.Equal(t, "bye", tags[2].Text())
}

func TestSelectorAttrs(t *testing.T) {
	tokens := Parse(queryDoc)

	sel, err := CompileSelector(`"class" in attrs && attrs["class"] == "x"`)
	require.NoError(t, err)

	tags, err := sel.Find(tokens)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "SPAN", tags[0].Name)
}

func TestSelectorDepthAndText(t *testing.T) {
	tokens := Parse(queryDoc)

	sel, err := CompileSelector(`depth == 0 && text == "bye"`)
	require.NoError(t, err)

	tag, err := sel.First(tokens)
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "SPAN", tag.Name)

	deep, err := CompileSelector(`depth == 2`)
	require.NoError(t, err)
	none, err := deep.First(tokens)
	require.NoError(t, err)
	assert.Nil(t, none, "nothing nests two levels down")
}

func TestSelectorFirstStopsEarly(t *testing.T) {
	tokens := Parse(queryDoc)

	sel, err := CompileSelector(`name == "SPAN"`)
	require.NoError(t, err)

	tag, err := sel.First(tokens)
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "hello", tag.Text())
}

func TestCompileSelectorErrors(t *testing.T) {
	_, err := CompileSelector(`name ==`)
	assert.Error(t, err, "syntax error must surface")

	_, err = CompileSelector(`name`)
	assert.Error(t, err, "non-boolean selector must not compile")
}
