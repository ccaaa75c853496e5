package tagml

import (
	"fmt"

	"github.com/beevik/etree"
)

// ToDocument exports a parsed forest as an XML document. Text tokens
// become character data and attribute insertion order is preserved. The
// export is for inspection and serialization; it does not attempt to make
// loose input well-formed beyond what Parse already did.
func ToDocument(tokens []Token) *etree.Document {
	doc := etree.NewDocument()
	for _, tok := range tokens {
		addElem(&doc.Element, tok)
	}
	return doc
}

func addElem(parent *etree.Element, tok Token) {
	switch t := tok.(type) {
	case *Text:
		parent.CreateText(t.Data)
	case *Tag:
		el := parent.CreateElement(t.Name)
		for _, a := range t.Attrs {
			el.CreateAttr(a.Key, a.Val)
		}
		for _, c := range t.Children {
			addElem(el, c)
		}
	}
}

// MarshalXML renders a parsed forest as compact XML. The output is not
// indented: mixed text and element content must round-trip unchanged.
func MarshalXML(tokens []Token) (string, error) {
	doc := ToDocument(tokens)
	s, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("write xml: %w", err)
	}
	return s, nil
}
