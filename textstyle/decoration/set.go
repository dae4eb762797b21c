package decoration

import (
	"cmp"
	"iter"
	"slices"

	"github.com/oligo/todomark/match"
)

// Source is the text a Set is computed from.
type Source interface {
	// Len returns the size of the document in bytes.
	Len() int
	// Slice returns the document text in [from, to).
	Slice(from, to int) string
}

// Window is a contiguous range [From, To) of the document currently
// rendered by the live view.
type Window struct {
	From, To int
}

// Set is the collection of marks applied to the live view. It is built
// wholesale by Build and never patched.
type Set struct {
	marks []Mark
	tree  *DecorationTree
}

// Build scans the visible windows of src and returns the marks of every
// token found in them, in absolute document offsets. Each window is
// processed on its own: a token straddling a window edge is only marked when
// another window holds it whole. Windows with From > To produce nothing.
func Build(src Source, windows []Window) *Set {
	set := &Set{}
	size := src.Len()

	for _, w := range windows {
		from := max(w.From, 0)
		to := min(w.To, size)
		if from >= to {
			continue
		}

		text := src.Slice(from, to)
		for span := range match.All(text) {
			abs := span.Shift(from)
			set.marks = append(set.marks, Mark{
				Start:  abs.Start,
				End:    abs.End,
				Class:  match.MarkClass,
				Source: SourceTODO,
			})
		}
	}

	// hosts report windows top to bottom; sorting keeps the set ordered
	// when they don't.
	slices.SortStableFunc(set.marks, func(a, b Mark) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return set
}

// Marks returns the marks of the set in ascending order.
func (s *Set) Marks() []Mark {
	if s == nil {
		return nil
	}
	return s.marks
}

// Len returns the number of marks.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.marks)
}

// All iterates the marks in ascending order.
func (s *Set) All() iter.Seq[Mark] {
	return func(yield func(Mark) bool) {
		for _, m := range s.Marks() {
			if !yield(m) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same marks in the same order.
func (s *Set) Equal(other *Set) bool {
	return slices.Equal(s.Marks(), other.Marks())
}

// QueryRange returns the marks overlapping [start, end). It is used by
// painters to fetch the marks of a single line.
func (s *Set) QueryRange(start, end int) []Mark {
	if s.Len() == 0 {
		return nil
	}
	if s.tree == nil {
		s.tree = NewDecorationTree()
		s.tree.Insert(s.marks...)
	}
	return s.tree.QueryRange(start, end)
}
