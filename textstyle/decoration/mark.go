package decoration

// SourceTODO tags the marks produced by Build, so they can be removed from
// a shared tree without touching decorations added by others.
const SourceTODO = "todo"

// Mark is an inline mark over the half-open byte range [Start, End) of the
// document, painted with the style attached to Class.
type Mark struct {
	Start, End int
	Class      string
	Source     string
}

func (m Mark) Range() (int, int) {
	return m.Start, m.End
}

// overlaps reports whether m intersects the half-open range [start, end).
func (m Mark) overlaps(start, end int) bool {
	return m.Start < end && start < m.End
}
