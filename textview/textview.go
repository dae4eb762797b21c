// Package textview adapts an editable document to the live view decorator.
// It keeps the token marks of the visible windows up to date as the
// document and the viewport change.
package textview

import (
	"slices"

	"github.com/oligo/todomark/buffer"
	"github.com/oligo/todomark/textstyle/decoration"
)

// ViewUpdate describes what changed in the view since the last update.
type ViewUpdate struct {
	DocChanged       bool
	ViewportChanged  bool
	SelectionChanged bool
}

// needsRecompute reports whether the marks may be stale after u.
func (u ViewUpdate) needsRecompute() bool {
	return u.DocChanged || u.ViewportChanged
}

// TextView holds the document, its visible windows and the marks of the
// last recompute.
type TextView struct {
	src     *buffer.PieceTable
	windows []decoration.Window
	set     *decoration.Set
	// holds the token marks along with the marks added by the host.
	decorations *decoration.DecorationTree

	selStart, selEnd int
	recomputes       int
}

// NewTextView creates a view over text. Until SetWindows or ScrollTo is
// called the whole document is visible.
func NewTextView(text string) *TextView {
	v := &TextView{
		src:         buffer.NewPieceTable([]byte(text)),
		decorations: decoration.NewDecorationTree(),
	}
	v.windows = []decoration.Window{{From: 0, To: v.src.Len()}}
	v.recompute()
	return v
}

// Update applies a view change. The marks are rebuilt only when the
// document or the viewport changed; it returns true when they were.
func (v *TextView) Update(u ViewUpdate) bool {
	if !u.needsRecompute() {
		return false
	}
	v.recompute()
	return true
}

func (v *TextView) recompute() {
	v.set = decoration.Build(v.src, v.windows)
	v.decorations.RemoveBySource(decoration.SourceTODO)
	v.decorations.Insert(v.set.Marks()...)
	v.recomputes++

	logger.Debug("marks rebuilt", "windows", len(v.windows), "marks", v.set.Len(), "version", v.src.Version())
}

// Decorations returns the token marks of the last recompute.
func (v *TextView) Decorations() *decoration.Set {
	return v.set
}

// Recomputes returns how many times the marks have been rebuilt.
func (v *TextView) Recomputes() int {
	return v.recomputes
}

// Len returns the document size in bytes.
func (v *TextView) Len() int {
	return v.src.Len()
}

// Text returns the whole document.
func (v *TextView) Text() string {
	return v.src.String()
}

// Slice returns the document text in [from, to).
func (v *TextView) Slice(from, to int) string {
	return v.src.Slice(from, to)
}

// LineStart returns the byte offset of a zero based line.
func (v *TextView) LineStart(line int) int {
	return v.src.LineStart(line)
}

// LineCount returns the number of lines of the document.
func (v *TextView) LineCount() int {
	return v.src.LineCount()
}

// Windows returns the visible windows.
func (v *TextView) Windows() []decoration.Window {
	return v.windows
}

// Insert inserts text at the byte offset off.
func (v *TextView) Insert(off int, text string) {
	if !v.src.Insert(off, text) {
		return
	}
	v.growWindows(off, len(text))
	v.Update(ViewUpdate{DocChanged: true})
}

// Erase deletes the text in [start, end).
func (v *TextView) Erase(start, end int) {
	if start > end {
		start, end = end, start
	}
	start, end = max(start, 0), min(end, v.src.Len())
	if !v.src.Erase(start, end) {
		return
	}
	v.shrinkWindows(start, end)
	v.Update(ViewUpdate{DocChanged: true})
}

// SetText replaces the document. The view scrolls back to show all of it.
func (v *TextView) SetText(text string) {
	v.src.SetText([]byte(text))
	v.windows = []decoration.Window{{From: 0, To: v.src.Len()}}
	v.Update(ViewUpdate{DocChanged: true, ViewportChanged: true})
}

// SetWindows replaces the visible windows.
func (v *TextView) SetWindows(windows ...decoration.Window) {
	v.windows = append(v.windows[:0:0], windows...)
	v.Update(ViewUpdate{ViewportChanged: true})
}

// ScrollTo makes lines lines starting at line (zero based) the only
// visible window.
func (v *TextView) ScrollTo(line, lines int) {
	line = max(line, 0)
	from := v.src.LineStart(line)
	to := v.src.LineStart(line + max(lines, 0))
	v.SetWindows(decoration.Window{From: from, To: to})
}

// SetSelection moves the selection. It never touches the marks.
func (v *TextView) SetSelection(start, end int) {
	v.selStart, v.selEnd = start, end
	v.Update(ViewUpdate{SelectionChanged: true})
}

// Selection returns the selected range.
func (v *TextView) Selection() (start, end int) {
	return v.selStart, v.selEnd
}

// growWindows moves the windows after an insertion of n bytes at off, the
// way an editor viewport follows its content. Only the first window holding
// off grows, so adjacent windows never end up overlapping.
func (v *TextView) growWindows(off, n int) {
	owner := slices.IndexFunc(v.windows, func(w decoration.Window) bool {
		return w.From <= off && off <= w.To
	})

	for i := range v.windows {
		w := &v.windows[i]
		switch {
		case i == owner:
			w.To += n
		case w.From >= off:
			w.From += n
			w.To += n
		}
	}
}

func (v *TextView) shrinkWindows(start, end int) {
	shift := func(pos int) int {
		switch {
		case pos >= end:
			return pos - (end - start)
		case pos > start:
			return start
		default:
			return pos
		}
	}
	for i := range v.windows {
		v.windows[i].From = shift(v.windows[i].From)
		v.windows[i].To = shift(v.windows[i].To)
	}
}
