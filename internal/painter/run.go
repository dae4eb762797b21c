package painter

import (
	"iter"

	"github.com/oligo/todomark/textstyle/decoration"
)

// A span is a group of adjacent bytes of a line sharing the same style.
type span struct {
	// start and end are byte offsets relative to the start of the line.
	start, end int
	// class of the mark covering the span, empty for plain text.
	class string
}

func (s *span) size() int {
	return s.end - s.start
}

func (s *span) marked() bool {
	return s.class != ""
}

// lineSplitter splits a line into runs with the same style.
type lineSplitter struct {
	current span
	lineLen int
	runs    []span
}

func (rb *lineSplitter) setup(lineLen int) {
	rb.runs = rb.runs[:0]
	rb.current = span{}
	rb.lineLen = lineLen
}

func (rb *lineSplitter) commitLast() {
	if rb.current.size() > 0 {
		rb.runs = append(rb.runs, rb.current)
		rb.current = span{
			start: rb.current.end,
			end:   rb.current.end,
		}
	}
}

// Split cuts the line starting at document offset lineStart into plain and
// marked runs. marks must be ordered by start and must not overlap.
func (rb *lineSplitter) Split(lineStart, lineLen int, marks []decoration.Mark) {
	rb.setup(lineLen)

	for _, m := range marks {
		start := m.Start - lineStart
		end := m.End - lineStart
		if end <= rb.current.end {
			continue
		}

		// the text not covered by the mark goes in one run.
		rb.readUntil(start)
		rb.commitLast()

		rb.readUntil(end)
		if rb.current.size() > 0 {
			rb.current.class = m.Class
			rb.commitLast()
		}
	}

	rb.readUntil(lineLen)
	rb.commitLast()
}

func (rb *lineSplitter) readUntil(off int) {
	rb.current.end = min(max(off, rb.current.end), rb.lineLen)
}

func (rb *lineSplitter) Runs() iter.Seq[span] {
	return func(yield func(span) bool) {
		for _, run := range rb.runs {
			if !yield(run) {
				return
			}
		}
	}
}

func (rb *lineSplitter) Size() int {
	return len(rb.runs)
}
