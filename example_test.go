package tagml

import (
	"fmt"

	"golang.org/x/net/html"
)

func ExampleParse() {
	tokens := Parse(`a <b class='x'>bold</b>`)
	fmt.Println(MarshalMarkup(tokens))
	// Output: a <B class="x">bold</B>
}

func ExampleFormatter_Format() {
	f := New(Options{
		TagHandlers: map[string]TagHandler{
			"b": func(_ int, tag TagData, _ any) any {
				n := &html.Node{Type: html.ElementNode, Data: "strong"}
				for _, c := range tag.Children {
					appendValue(n, c)
				}
				return n
			},
		},
	})

	out, _ := RenderHTML(f.Format("a <b>bold</b> c"))
	fmt.Println(out)
	// Output: a <strong>bold</strong> c
}

func ExampleCompileSelector() {
	tokens := Parse(`<nav><a href="/home">Home</a><a>skip</a></nav>`)

	sel, _ := CompileSelector(`name == "A" && "href" in attrs`)
	tag, _ := sel.First(tokens)
	href, _ := tag.Attr("href")
	fmt.Println(href)
	// Output: /home
}
