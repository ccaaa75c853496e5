// Command example renders a small piece of loose markup with custom tag
// handlers and prints the result in three forms: formatted HTML, the
// canonical markup round trip and an XML export.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tagml "github.com/dpotapov/go-tagml"
	"golang.org/x/net/html"
)

const input = `Prices today: <price qty="12345" usd/> and <price qty='99' style="color: red; font-weight: bold"/>.
Unknown <gadget mode=fast>markup</gadget> is kept as-is.`

// parseStyle splits an inline style attribute value into a property map.
// This is caller-side convenience code, not part of the tagml core.
func parseStyle(s string) map[string]string {
	m := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m
}

func priceHandler(_ int, tag tagml.TagData, _ any) any {
	qty, _ := tag.Attr("qty")
	_, usd := tag.Attr("usd")

	n := &html.Node{Type: html.ElementNode, Data: "span"}
	if style, ok := tag.Attr("style"); ok {
		if color, ok := parseStyle(style)["color"]; ok {
			n.Attr = append(n.Attr, html.Attribute{Key: "data-color", Val: color})
		}
	}
	text := qty
	if usd {
		text = "$" + qty
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := tagml.New(tagml.Options{
		TagHandlers: map[string]tagml.TagHandler{
			"price": priceHandler,
		},
		KeepUnknownTags: true,
		Logger:          logger,
	})

	out, err := tagml.RenderHTML(f.Format(input))
	if err != nil {
		logger.Error("render", "error", err)
		os.Exit(1)
	}
	fmt.Println("HTML:", out)

	tokens := tagml.Parse(input)
	fmt.Println("Canonical:", tagml.MarshalMarkup(tokens))

	xml, err := tagml.MarshalXML(tokens)
	if err != nil {
		logger.Error("marshal xml", "error", err)
		os.Exit(1)
	}
	fmt.Println("XML:", xml)

	sel, err := tagml.CompileSelector(`name == "PRICE" && "usd" in attrs`)
	if err != nil {
		logger.Error("compile selector", "error", err)
		os.Exit(1)
	}
	tags, err := sel.Find(tokens)
	if err != nil {
		logger.Error("run selector", "error", err)
		os.Exit(1)
	}
	for _, tag := range tags {
		qty, _ := tag.Attr("qty")
		fmt.Println("USD price:", qty)
	}
}
