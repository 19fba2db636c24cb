package codec

import (
	"encoding/xml"
	"io"
)

// XMLDocumentEncoder writes a document made of one root element wrapping a sequence of
// same-named child elements. Framing is driven explicitly by Begin and End so children
// can be appended across many calls.
type XMLDocumentEncoder[T any] struct {
	enc    *xml.Encoder
	root   xml.StartElement
	record xml.StartElement
}

// NewXMLDocumentEncoder returns an encoder writing to w. indent == "" produces compact output.
func NewXMLDocumentEncoder[T any](w io.Writer, rootTag, recordTag, indent string) *XMLDocumentEncoder[T] {
	enc := xml.NewEncoder(w)
	if indent != "" {
		enc.Indent("", indent)
	}
	return &XMLDocumentEncoder[T]{
		enc:    enc,
		root:   xml.StartElement{Name: xml.Name{Local: rootTag}},
		record: xml.StartElement{Name: xml.Name{Local: recordTag}},
	}
}

// Begin writes the root start tag.
func (e *XMLDocumentEncoder[T]) Begin() error {
	if err := e.enc.EncodeToken(e.root); err != nil {
		return err
	}
	return e.enc.Flush()
}

// Encode writes one child element.
func (e *XMLDocumentEncoder[T]) Encode(elem T) error {
	return e.enc.EncodeElement(elem, e.record)
}

// End writes the root end tag.
func (e *XMLDocumentEncoder[T]) End() error {
	if err := e.enc.EncodeToken(e.root.End()); err != nil {
		return err
	}
	return e.enc.Flush()
}

// XMLDecoder decodes one XML value into T.
type XMLDecoder[T any] struct{}

// NewXMLDecoder returns a decoder for T.
func NewXMLDecoder[T any]() *XMLDecoder[T] {
	return &XMLDecoder[T]{}
}

// Decode reads a single value from r.
func (d *XMLDecoder[T]) Decode(r io.Reader) (T, error) {
	var t T
	err := xml.NewDecoder(r).Decode(&t)
	return t, err
}
