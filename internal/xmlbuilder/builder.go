// =============================================================================
// Sephpa - XML Builder Module
// =============================================================================
//
// This module provides the generic element-tree primitive that the SEPA
// generators write into. It knows nothing about SEPA: it only supports
// appending named child elements, optionally with a text value or attributes,
// and serializing the resulting tree with indentation and XML escaping.
//
// STRUCTURE:
//   The builder produces trees of this shape:
//
//   <Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.008.002.02">
//     <CstmrDrctDbtInitn>
//       <GrpHdr>
//         <MsgId>...</MsgId>
//       </GrpHdr>
//       <PmtInf>...</PmtInf>
//     </CstmrDrctDbtInitn>
//   </Document>
//
// The generators depend only on the Node interface, so tests (and any future
// alternative document representation) can substitute their own implementation.
//
// =============================================================================

package xmlbuilder

import (
	"bytes"
	"fmt"
)

// =============================================================================
// NODE INTERFACE
// =============================================================================

// Node is the append-only view of an element the generators write into.
// AddChild and AddChildValue return the newly created child so nested
// structures can be built by chaining calls.
type Node interface {
	// AddChild appends an empty child element and returns it.
	AddChild(name string) Node

	// AddChildValue appends a child element carrying a text value and
	// returns it.
	AddChildValue(name, value string) Node

	// AddAttribute sets an attribute on this element.
	AddAttribute(key, value string)
}

// =============================================================================
// ELEMENT
// =============================================================================

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Element is the concrete tree node produced by the builder.
// An Element holds either a text value or child elements, never both.
type Element struct {
	// Name is the element tag name.
	Name string

	// Value is the text content of the element, empty for container elements.
	Value string

	// Attrs are the element attributes, in insertion order.
	Attrs []Attr

	// Children are the child elements, in insertion order.
	Children []*Element
}

// NewElement creates a new element with the given tag name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// AddChild appends an empty child element and returns it.
func (e *Element) AddChild(name string) Node {
	child := &Element{Name: name}
	e.Children = append(e.Children, child)
	return child
}

// AddChildValue appends a child element with a text value and returns it.
func (e *Element) AddChildValue(name, value string) Node {
	child := &Element{Name: name, Value: value}
	e.Children = append(e.Children, child)
	return child
}

// AddAttribute sets an attribute on this element.
func (e *Element) AddAttribute(key, value string) {
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
}

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name string) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// FindAll returns all direct children with the given name.
func (e *Element) FindAll(name string) []*Element {
	var matches []*Element
	for _, child := range e.Children {
		if child.Name == name {
			matches = append(matches, child)
		}
	}
	return matches
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// SerializeOptions contains options for document serialization.
type SerializeOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string
}

// DefaultSerializeOptions returns the default serialization options.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// Serialize renders the element tree as an XML document with default options.
func Serialize(root *Element) []byte {
	return SerializeWithOptions(root, DefaultSerializeOptions())
}

// SerializeWithOptions renders the element tree as an XML document.
// Calling it twice on the same tree produces byte-identical output.
func SerializeWithOptions(root *Element, options SerializeOptions) []byte {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes()
}

// writeElement writes an element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element *Element, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.Name)

	for _, attr := range element.Attrs {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", attr.Key, escapeXML(attr.Value)))
	}

	// Empty element: self-closing tag.
	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if len(element.Children) == 0 {
		// Simple element with text value.
		buffer.WriteString(escapeXML(element.Value))
	} else {
		// Element with children.
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
