package textview

import (
	"github.com/oligo/todomark/textstyle/decoration"
)

// AddDecorations adds host marks painted alongside the token marks. They
// survive recomputes.
func (v *TextView) AddDecorations(marks ...decoration.Mark) error {
	if v.decorations == nil {
		panic("TextView is not properly initialized.")
	}

	for _, m := range marks {
		if m.Source == decoration.SourceTODO {
			return errReservedSource
		}
		if m.Start < 0 || m.End > v.src.Len() {
			return errOutOfRange
		}
	}

	v.decorations.Insert(marks...)
	return nil
}

// ClearDecorations removes the host marks of source, or every host mark
// when source is empty. Token marks are kept.
func (v *TextView) ClearDecorations(source string) {
	if v.decorations == nil {
		panic("TextView is not properly initialized.")
	}

	if source == "" {
		v.decorations.RemoveAll()
		v.decorations.Insert(v.set.Marks()...)
	} else if source != decoration.SourceTODO {
		v.decorations.RemoveBySource(source)
	}
}

// DecorationsInRange returns token and host marks overlapping [start, end),
// ordered by start.
func (v *TextView) DecorationsInRange(start, end int) []decoration.Mark {
	return v.decorations.QueryRange(start, end)
}
