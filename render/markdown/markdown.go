// Package markdown renders Markdown to HTML and marks the token occurrences
// of the rendered blocks.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/oligo/todomark/internal/dom"
	"github.com/oligo/todomark/render/htmlpost"
	"github.com/oligo/todomark/textstyle/css"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer wraps goldmark with the block post-processor.
type Renderer struct {
	md   goldmark.Markdown
	post *htmlpost.Processor
}

// New creates a renderer. A nil post-processor uses the node aware
// strategy.
func New(post *htmlpost.Processor) *Renderer {
	if post == nil {
		post = &htmlpost.Processor{}
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{md: md, post: post}
}

// Render converts src to an HTML fragment with marked blocks.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	out, err := r.post.ProcessString(buf.String())
	if err != nil {
		return "", fmt.Errorf("post-process html: %w", err)
	}
	return out, nil
}

// RenderInto converts src and appends the marked blocks to the body of doc,
// a complete HTML document. It returns the number of marks inserted.
func (r *Renderer) RenderInto(src []byte, doc *html.Node) (int, error) {
	body := dom.FindFirst(doc, atom.Body)
	if body == nil {
		return 0, errors.New("document has no body")
	}

	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return 0, fmt.Errorf("convert markdown: %w", err)
	}

	nodes, err := html.ParseFragment(strings.NewReader(buf.String()), body)
	if err != nil {
		return 0, fmt.Errorf("parse html: %w", err)
	}

	container := dom.Element(atom.Div, "class", "markdown-preview")
	for _, n := range nodes {
		container.AppendChild(n)
	}
	body.AppendChild(container)

	return r.post.Process(container), nil
}

// RenderDocument renders src into a standalone HTML page whose head holds
// the highlight rule for color.
func (r *Renderer) RenderDocument(src []byte, color string) (string, error) {
	page := css.NewDocument()
	if err := css.NewInjector(page).Apply(color); err != nil {
		return "", err
	}
	if _, err := r.RenderInto(src, page); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, page); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
