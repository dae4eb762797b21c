// Package css injects the style rule painting the mark class into an HTML
// document.
package css

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/oligo/todomark/internal/dom"
	"github.com/oligo/todomark/match"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleID identifies the injected style element.
const StyleID = "todo-highlight-style"

// ErrUnsafeColor is returned for colour values that would escape the
// declaration they are written into.
var ErrUnsafeColor = errors.New("unsafe colour value")

// Rule returns the stylesheet painting the mark class with color. The
// second selector covers marks in the rendered preview.
func Rule(color string) string {
	return fmt.Sprintf(".%[1]s {\n  color: %[2]s !important;\n}\nspan.%[1]s {\n  color: %[2]s;\n}\n",
		match.MarkClass, color)
}

func checkColor(color string) error {
	if color == "" || strings.ContainsAny(color, ";{}<>\\\"'\n") {
		return fmt.Errorf("%w: %q", ErrUnsafeColor, color)
	}
	return nil
}

// NewDocument returns an empty HTML document with a head and a body.
func NewDocument() *html.Node {
	doc, _ := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	return doc
}

// Injector owns the single style element of a document.
type Injector struct {
	mu  sync.Mutex
	doc *html.Node
}

// NewInjector returns an injector writing into doc.
func NewInjector(doc *html.Node) *Injector {
	return &Injector{doc: doc}
}

// Apply creates the style element on first use and replaces its content
// with Rule(color) afterwards.
func (i *Injector) Apply(color string) error {
	if err := checkColor(color); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	style := dom.FindByID(i.doc, StyleID)
	if style == nil {
		head, err := i.head()
		if err != nil {
			return err
		}
		style = dom.Element(atom.Style, "id", StyleID)
		head.AppendChild(style)
	}

	dom.RemoveChildren(style)
	style.AppendChild(dom.Text(Rule(color)))
	return nil
}

// Remove deletes the style element. It is a no-op when it is absent.
func (i *Injector) Remove() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if style := dom.FindByID(i.doc, StyleID); style != nil && style.Parent != nil {
		style.Parent.RemoveChild(style)
	}
}

// Text returns the content of the style element, or "" when absent.
func (i *Injector) Text() string {
	i.mu.Lock()
	defer i.mu.Unlock()

	style := dom.FindByID(i.doc, StyleID)
	if style == nil {
		return ""
	}
	return dom.TextContent(style)
}

// Document returns the document the injector writes into.
func (i *Injector) Document() *html.Node {
	return i.doc
}

func (i *Injector) head() (*html.Node, error) {
	if head := dom.FindFirst(i.doc, atom.Head); head != nil {
		return head, nil
	}

	root := dom.FindFirst(i.doc, atom.Html)
	if root == nil {
		return nil, errors.New("document has no html element")
	}
	head := dom.Element(atom.Head)
	root.InsertBefore(head, root.FirstChild)
	return head, nil
}
