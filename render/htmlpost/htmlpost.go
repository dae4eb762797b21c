// Package htmlpost rewrites rendered HTML blocks so that token occurrences
// are wrapped in a span carrying the mark class.
package htmlpost

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/oligo/todomark/internal/dom"
	"github.com/oligo/todomark/match"
	"github.com/oligo/todomark/render"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strategy selects how a block is rewritten.
type Strategy uint8

const (
	// NodeAware matches over the block's plain text and splits the text
	// nodes holding a whole match. Links, emphasis and other inline markup
	// inside the block survive; a token cut by markup is left unmarked.
	NodeAware Strategy = iota
	// Flatten replaces the block content with its flattened text, wrapping
	// plain runs in neutral spans and token runs in marked spans. Nested
	// markup is lost.
	Flatten
)

func (s Strategy) String() string {
	switch s {
	case NodeAware:
		return "node-aware"
	case Flatten:
		return "flatten"
	default:
		return "unknown"
	}
}

// DefaultBlocks are the block elements rewritten by a Processor.
var DefaultBlocks = []atom.Atom{atom.P, atom.Li}

// Processor rewrites the blocks of rendered HTML.
type Processor struct {
	Strategy Strategy
	// Blocks lists the elements to rewrite. DefaultBlocks when empty.
	Blocks []atom.Atom
	// Skip lists elements whose text is left alone by NodeAware, such as
	// atom.Code.
	Skip []atom.Atom
}

// Process rewrites every block under root and returns the number of marks
// inserted.
func (p *Processor) Process(root *html.Node) int {
	blocks := p.Blocks
	if len(blocks) == 0 {
		blocks = DefaultBlocks
	}

	marks := 0
	for _, block := range dom.FindAll(root, blocks...) {
		// a flattened ancestor has already consumed this block.
		if !attached(block, root) {
			continue
		}
		marks += p.RewriteBlock(block)
	}

	logger.Debug("processed blocks", slog.String("strategy", p.Strategy.String()), slog.Int("marks", marks))
	return marks
}

// RewriteBlock rewrites a single block element and returns the number of
// marks inserted.
func (p *Processor) RewriteBlock(block *html.Node) int {
	if p.Strategy == Flatten {
		return flatten(block)
	}
	return p.splitTextNodes(block)
}

// ProcessString parses an HTML fragment, processes it and renders it back.
func (p *Processor) ProcessString(fragment string) (string, error) {
	body := dom.Element(atom.Body)
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	container := dom.Element(atom.Div)
	for _, n := range nodes {
		container.AppendChild(n)
	}

	p.Process(container)
	return dom.RenderChildren(container)
}

func flatten(block *html.Node) int {
	frags := render.Split(dom.TextContent(block))

	dom.RemoveChildren(block)
	for _, frag := range frags {
		var span *html.Node
		if frag.Kind == render.Marked {
			span = dom.Element(atom.Span, "class", match.MarkClass)
		} else {
			span = dom.Element(atom.Span)
		}
		span.AppendChild(dom.Text(frag.Text))
		block.AppendChild(span)
	}

	return frags.Marked()
}

// textRun is a text node of a block and its offset in the block's plain
// text. Text inside marks or skipped elements is frozen: it counts for word
// boundaries but is never split.
type textRun struct {
	node   *html.Node
	start  int
	frozen bool
}

func (r textRun) end() int {
	return r.start + len(r.node.Data)
}

// splitTextNodes matches over the block's plain text, so that inline
// markup never changes word boundaries, then wraps each match held whole by
// a single text node.
func (p *Processor) splitTextNodes(block *html.Node) int {
	var b strings.Builder
	runs := p.collectText(block, false, &b, nil)
	text := b.String()

	// spans grouped by the run holding them, in document order.
	spans := make(map[int][]match.Span)
	ri := 0
	for span := range match.All(text) {
		for ri < len(runs) && runs[ri].end() <= span.Start {
			ri++
		}
		if ri == len(runs) {
			break
		}
		run := runs[ri]
		if run.frozen || span.Start < run.start || span.End > run.end() {
			continue
		}
		spans[ri] = append(spans[ri], span.Shift(-run.start))
	}

	marks := 0
	for i, run := range runs {
		if len(spans[i]) > 0 {
			marks += splitNode(run.node, spans[i])
		}
	}
	return marks
}

func (p *Processor) collectText(n *html.Node, frozen bool, b *strings.Builder, runs []textRun) []textRun {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			runs = append(runs, textRun{node: c, start: b.Len(), frozen: frozen})
			b.WriteString(c.Data)
		case html.ElementNode:
			runs = p.collectText(c, frozen || p.frozen(c), b, runs)
		}
	}
	return runs
}

func (p *Processor) frozen(n *html.Node) bool {
	return dom.HasClass(n, match.MarkClass) ||
		n.DataAtom == atom.Script || n.DataAtom == atom.Style ||
		slices.Contains(p.Skip, n.DataAtom)
}

// splitNode replaces a text node with plain text and marked spans. spans
// are relative to the node and ordered.
func splitNode(text *html.Node, spans []match.Span) int {
	parent := text.Parent
	data := text.Data
	cursor := 0
	for _, span := range spans {
		if span.Start > cursor {
			parent.InsertBefore(dom.Text(data[cursor:span.Start]), text)
		}
		mark := dom.Element(atom.Span, "class", match.MarkClass)
		mark.AppendChild(dom.Text(span.Text(data)))
		parent.InsertBefore(mark, text)
		cursor = span.End
	}
	if cursor < len(data) {
		parent.InsertBefore(dom.Text(data[cursor:]), text)
	}
	parent.RemoveChild(text)
	return len(spans)
}

func attached(n, root *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
