package decoration

import (
	"cmp"
	"slices"

	"github.com/rdleal/intervalst/interval"
)

// DecorationTree leverages a interval tree to stores overlapping marks.
type DecorationTree struct {
	tree *interval.MultiValueSearchTree[Mark, int]
	size int
}

func NewDecorationTree() *DecorationTree {
	tree := interval.NewMultiValueSearchTree[Mark](func(a, b int) int {
		return cmp.Compare(a, b)
	})

	return &DecorationTree{
		tree: tree,
	}
}

// Insert new marks. Empty or inverted ranges are ignored.
func (d *DecorationTree) Insert(marks ...Mark) {
	for _, m := range marks {
		if m.Start >= m.End {
			continue
		}
		if err := d.tree.Insert(m.Start, m.End, m); err == nil {
			d.size++
		}
	}
}

// Len returns the number of marks in the tree.
func (d *DecorationTree) Len() int {
	return d.size
}

// Query returns all marks covering the byte at pos.
func (d *DecorationTree) Query(pos int) []Mark {
	return d.QueryRange(pos, pos+1)
}

// QueryRange returns all marks overlapping [start, end), ordered by start.
func (d *DecorationTree) QueryRange(start, end int) []Mark {
	if start >= end || d.size == 0 {
		return nil
	}

	all, _ := d.tree.AllIntersections(start, end)
	// the tree treats intervals as closed, drop marks only touching the range.
	result := slices.DeleteFunc(all, func(m Mark) bool {
		return !m.overlaps(start, end)
	})
	slices.SortStableFunc(result, func(a, b Mark) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return result
}

// RemoveBySource removes the marks tagged with source.
func (d *DecorationTree) RemoveBySource(source string) {
	maxVals, found := d.tree.MaxEnd()
	if !found {
		return
	}

	_, end := maxVals[0].Range()
	all, _ := d.tree.AllIntersections(0, end)

	// the tree deletes whole intervals, so the tree is rebuilt from the
	// marks to keep.
	d.RemoveAll()
	for _, m := range all {
		if m.Source != source {
			d.Insert(m)
		}
	}
}

// RemoveAll clears the tree.
func (d *DecorationTree) RemoveAll() {
	*d = *NewDecorationTree()
}
