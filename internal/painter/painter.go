// Package painter paints the visible lines of a document to a terminal,
// styling the marked runs with lipgloss.
package painter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/oligo/todomark/textstyle/decoration"
)

// Document is the text being painted.
type Document interface {
	Len() int
	Slice(from, to int) string
	// LineStart returns the byte offset of a zero based line.
	LineStart(line int) int
	LineCount() int
}

// Marks looks up the marks of a line.
type Marks interface {
	QueryRange(start, end int) []decoration.Mark
}

// TextPainter paints lines of text with their marks.
type TextPainter struct {
	// Styles maps mark classes to their style. Runs of unknown classes are
	// painted plain.
	Styles map[string]lipgloss.Style
	// LineNumbers prefixes every line with its one based number.
	LineNumbers bool
	gutter      lipgloss.Style
	// runBuffer is reused across lines to decrease allocations.
	runBuffer lineSplitter
}

func NewTextPainter() *TextPainter {
	return &TextPainter{
		Styles: make(map[string]lipgloss.Style),
		gutter: lipgloss.NewStyle().Faint(true),
	}
}

// SetStyle sets the style of the marks of class.
func (tp *TextPainter) SetStyle(class string, style lipgloss.Style) {
	tp.Styles[class] = style
}

// Paint writes count lines of doc starting at line first. Lines past the end
// of the document are not painted.
func (tp *TextPainter) Paint(w io.Writer, doc Document, marks Marks, first, count int) error {
	first = max(first, 0)
	last := min(first+count, doc.LineCount())
	width := len(fmt.Sprint(last))

	for line := first; line < last; line++ {
		start := doc.LineStart(line)
		end := doc.LineStart(line + 1)
		text := strings.TrimSuffix(doc.Slice(start, end), "\n")

		var b strings.Builder
		if tp.LineNumbers {
			b.WriteString(tp.gutter.Render(fmt.Sprintf("%*d ", width, line+1)))
		}
		tp.paintLine(&b, start, text, marks)
		b.WriteByte('\n')

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}

	return nil
}

func (tp *TextPainter) paintLine(b *strings.Builder, lineStart int, text string, marks Marks) {
	var lineMarks []decoration.Mark
	if marks != nil && text != "" {
		lineMarks = marks.QueryRange(lineStart, lineStart+len(text))
	}

	tp.runBuffer.Split(lineStart, len(text), lineMarks)
	for run := range tp.runBuffer.Runs() {
		runText := text[run.start:run.end]
		if style, ok := tp.Styles[run.class]; ok && run.marked() {
			runText = style.Render(runText)
		}
		b.WriteString(runText)
	}
}
