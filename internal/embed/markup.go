package embed

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single HTML attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list; markup preserves the order.
type Attrs []Attr

// Add appends name=value.
func (a Attrs) Add(name, value string) Attrs {
	return append(a, Attr{Name: name, Value: value})
}

// AddInt appends name with an integer value.
func (a Attrs) AddInt(name string, value int) Attrs {
	return a.Add(name, itoa(value))
}

// AddFlag appends a minimised boolean attribute (name="name") when set and
// nothing otherwise.
func (a Attrs) AddFlag(name string, set bool) Attrs {
	if !set {
		return a
	}
	return a.Add(name, name)
}

// AddIfSet appends name=value only for a non-empty value.
func (a Attrs) AddIfSet(name, value string) Attrs {
	if value == "" {
		return a
	}
	return a.Add(name, value)
}

// Markup serializes elements. Attribute values must be HTML-escaped by the
// implementation.
type Markup interface {
	// Element renders an open/close pair around content.
	Element(name, content string, attrs Attrs) string
	// VoidElement renders a self-closed element.
	VoidElement(name string, attrs Attrs) string
}

// Translator localizes user-facing messages.
type Translator interface {
	Translate(message string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(message string) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(message string) string {
	return f(message)
}

// ScriptLoader returns the markup that loads an external script.
type ScriptLoader interface {
	Script(src string) string
}

// ScriptLoaderFunc adapts a function to the ScriptLoader interface.
type ScriptLoaderFunc func(src string) string

// Script implements ScriptLoader.
func (f ScriptLoaderFunc) Script(src string) string {
	return f(src)
}

// HTMLMarkup renders elements through golang.org/x/net/html.
type HTMLMarkup struct{}

// Element implements Markup. Content is escaped as text.
func (HTMLMarkup) Element(name, content string, attrs Attrs) string {
	n := newNode(name, attrs)
	if content != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	}
	return render(n)
}

// VoidElement implements Markup.
func (HTMLMarkup) VoidElement(name string, attrs Attrs) string {
	return render(newNode(name, attrs))
}

func newNode(name string, attrs Attrs) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
		Attr:     make([]html.Attribute, 0, len(attrs)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	return n
}

func render(n *html.Node) string {
	var b strings.Builder
	// strings.Builder never fails; html.Render only errors on writer failures
	// or void elements with children, neither of which can happen here.
	_ = html.Render(&b, n)
	return b.String()
}

type identityTranslator struct{}

func (identityTranslator) Translate(message string) string { return message }

type scriptTagLoader struct {
	markup Markup
}

func (l scriptTagLoader) Script(src string) string {
	return l.markup.Element("script", "", Attrs{{Name: "src", Value: src}})
}
