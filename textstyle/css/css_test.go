package css

import (
	"strings"
	"testing"

	"github.com/oligo/todomark/internal/dom"
	"github.com/oligo/todomark/textstyle"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ textstyle.Sink = (*Injector)(nil)

func render(t *testing.T, doc *html.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, html.Render(&b, doc))
	return b.String()
}

func TestRule(t *testing.T) {
	rule := Rule("#112233")
	require.Contains(t, rule, ".cm-todo {")
	require.Contains(t, rule, "color: #112233 !important;")
	require.Contains(t, rule, "span.cm-todo {")
	require.Contains(t, rule, "color: #112233;")
}

func TestInjectorApplyReplaces(t *testing.T) {
	doc := NewDocument()
	inj := NewInjector(doc)

	require.NoError(t, inj.Apply("#00FF00"))
	require.NoError(t, inj.Apply("#ABCDEF"))

	out := render(t, doc)
	require.Equal(t, 1, strings.Count(out, `id="todo-highlight-style"`))
	require.Contains(t, out, "#ABCDEF")
	require.NotContains(t, out, "#00FF00")
	require.Equal(t, Rule("#ABCDEF"), inj.Text())

	style := dom.FindByID(doc, StyleID)
	require.NotNil(t, style)
	require.Equal(t, "head", style.Parent.Data)
}

func TestInjectorRemove(t *testing.T) {
	doc := NewDocument()
	inj := NewInjector(doc)

	// removing before anything was applied must not fail.
	inj.Remove()

	require.NoError(t, inj.Apply("#112233"))
	inj.Remove()
	inj.Remove()

	require.Nil(t, dom.FindByID(doc, StyleID))
	require.Equal(t, "", inj.Text())
}

func TestInjectorCreatesHead(t *testing.T) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(dom.Element(atom.Html))

	inj := NewInjector(doc)
	require.NoError(t, inj.Apply("#112233"))
	require.NotNil(t, dom.FindByID(doc, StyleID))

	require.Error(t, NewInjector(&html.Node{Type: html.DocumentNode}).Apply("#112233"))
}

func TestInjectorRejectsUnsafeColor(t *testing.T) {
	inj := NewInjector(NewDocument())
	for _, c := range []string{"", "red;} body {display:none", "</style>"} {
		require.ErrorIs(t, inj.Apply(c), ErrUnsafeColor)
	}
	require.Equal(t, "", inj.Text())
}
