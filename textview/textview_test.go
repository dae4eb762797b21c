package textview

import (
	"fmt"
	"testing"

	"github.com/oligo/todomark/textstyle/decoration"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func starts(set *decoration.Set) []int {
	var out []int
	for m := range set.All() {
		out = append(out, m.Start)
	}
	return out
}

func TestNewTextView(t *testing.T) {
	v := NewTextView("TODO a TODO")
	require.Equal(t, 1, v.Recomputes())
	require.Equal(t, []int{0, 7}, starts(v.Decorations()))

	empty := NewTextView("")
	require.Equal(t, 0, empty.Decorations().Len())
}

func TestUpdateTriggers(t *testing.T) {
	testcases := []struct {
		update    ViewUpdate
		recompute bool
	}{
		{update: ViewUpdate{}, recompute: false},
		{update: ViewUpdate{SelectionChanged: true}, recompute: false},
		{update: ViewUpdate{DocChanged: true}, recompute: true},
		{update: ViewUpdate{ViewportChanged: true}, recompute: true},
		{update: ViewUpdate{DocChanged: true, SelectionChanged: true}, recompute: true},
		{update: ViewUpdate{DocChanged: true, ViewportChanged: true}, recompute: true},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			v := NewTextView("TODO")
			before := v.Recomputes()
			require.Equal(t, tc.recompute, v.Update(tc.update))

			want := before
			if tc.recompute {
				want++
			}
			require.Equal(t, want, v.Recomputes())
		})
	}
}

func TestSelectionKeepsMarks(t *testing.T) {
	v := NewTextView("x TODO y")
	set := v.Decorations()

	v.SetSelection(0, 3)
	start, end := v.Selection()
	require.Equal(t, 0, start)
	require.Equal(t, 3, end)
	require.Same(t, set, v.Decorations())
	require.Equal(t, 1, v.Recomputes())
}

func TestEditing(t *testing.T) {
	v := NewTextView("fix this")

	v.Insert(0, "TODO ")
	require.Equal(t, "TODO fix this", v.Text())
	require.Equal(t, []int{0}, starts(v.Decorations()))

	v.Insert(v.Len(), " TODO")
	require.Equal(t, []int{0, 14}, starts(v.Decorations()))

	// joining letters breaks the boundary.
	v.Insert(4, "S")
	require.Equal(t, "TODOS fix this TODO", v.Text())
	require.Equal(t, []int{15}, starts(v.Decorations()))

	v.Erase(4, 5)
	require.Equal(t, []int{0, 14}, starts(v.Decorations()))

	v.Erase(v.Len(), 0)
	require.Equal(t, "", v.Text())
	require.Equal(t, 0, v.Decorations().Len())

	v.SetText("a\nTODO")
	require.Equal(t, []int{2}, starts(v.Decorations()))
}

func TestNoopEditsSkipRecompute(t *testing.T) {
	v := NewTextView("TODO")
	v.Insert(99, "x")
	v.Insert(0, "")
	v.Erase(2, 2)
	require.Equal(t, 1, v.Recomputes())
}

func TestScrollTo(t *testing.T) {
	v := NewTextView("TODO 0\nline 1\nTODO 2\nTODO 3\n")

	v.ScrollTo(1, 2)
	require.Equal(t, []decoration.Window{{From: 7, To: 21}}, v.Windows())
	require.Equal(t, []int{14}, starts(v.Decorations()))

	v.ScrollTo(3, 10)
	require.Equal(t, []int{21}, starts(v.Decorations()))

	v.ScrollTo(0, 0)
	require.Equal(t, 0, v.Decorations().Len())
}

func TestWindowsFollowEdits(t *testing.T) {
	v := NewTextView("aaaa TODO bbbb")
	v.SetWindows(decoration.Window{From: 5, To: 9})
	require.Equal(t, []int{5}, starts(v.Decorations()))

	v.Insert(0, "xx")
	require.Equal(t, []decoration.Window{{From: 7, To: 11}}, v.Windows())
	require.Equal(t, []int{7}, starts(v.Decorations()))

	v.Erase(0, 2)
	require.Equal(t, []decoration.Window{{From: 5, To: 9}}, v.Windows())
	require.Equal(t, []int{5}, starts(v.Decorations()))
}

func TestHostDecorations(t *testing.T) {
	v := NewTextView("TODO find me")
	search := decoration.Mark{Start: 5, End: 9, Class: "match", Source: "search"}

	require.NoError(t, v.AddDecorations(search))
	require.Error(t, v.AddDecorations(decoration.Mark{Start: 0, End: 4, Source: decoration.SourceTODO}))
	require.Error(t, v.AddDecorations(decoration.Mark{Start: 0, End: 40, Source: "search"}))

	marks := v.DecorationsInRange(0, v.Len())
	require.Len(t, marks, 2)
	require.Equal(t, decoration.SourceTODO, marks[0].Source)
	require.Equal(t, search, marks[1])

	// host marks survive a recompute, token marks are replaced.
	v.Insert(v.Len(), " TODO")
	require.Len(t, v.DecorationsInRange(0, v.Len()), 3)

	v.ClearDecorations("")
	require.Len(t, v.DecorationsInRange(0, v.Len()), 2)

	require.NoError(t, v.AddDecorations(search))
	v.ClearDecorations("search")
	require.Len(t, v.DecorationsInRange(0, v.Len()), 2)
}

func TestProperty_DecorationsMatchFreshBuild(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOf(rapid.SampledFrom([]string{"TODO", "TODOS", "x", " ", "\n", "_TODO", "TODO."}))
		v := NewTextView("")
		for _, w := range words.Draw(t, "words") {
			off := rapid.IntRange(0, v.Len()).Draw(t, "off")
			v.Insert(off, w)
		}

		fresh := decoration.Build(v.src, v.Windows())
		if !fresh.Equal(v.Decorations()) {
			t.Fatalf("stale marks for %q", v.Text())
		}
	})
}

func TestLines(t *testing.T) {
	v := NewTextView("a\nb\nc")
	require.Equal(t, 3, v.LineCount())
	require.Equal(t, 2, v.LineStart(1))
	require.Equal(t, v.Len(), v.LineStart(9))
}

func TestInsertAtSharedWindowEdge(t *testing.T) {
	v := NewTextView("aaaaaaaaa bbbbbbbbbb")
	v.SetWindows(decoration.Window{From: 0, To: 10}, decoration.Window{From: 10, To: 20})

	v.Insert(10, "TODO ")
	require.Equal(t, []decoration.Window{{From: 0, To: 15}, {From: 15, To: 25}}, v.Windows())
	require.Equal(t, []int{10}, starts(v.Decorations()))

	// a window before the insertion point stays put.
	v.SetWindows(decoration.Window{From: 0, To: 5}, decoration.Window{From: 20, To: 25})
	v.Insert(12, "xx")
	require.Equal(t, []decoration.Window{{From: 0, To: 5}, {From: 22, To: 27}}, v.Windows())
}
