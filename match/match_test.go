package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}

// textGen builds texts dense in near-misses of the token.
func textGen() *rapid.Generator[string] {
	pieces := []string{"TODO", "TODO", "T", "O", "D", "todo", "x", "_", "9", " ", ":", "\n", "(", "é", "—"}
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(pieces), 0, 40).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

func TestFind(t *testing.T) {
	testcases := []struct {
		text string
		want []Span
	}{
		{text: "", want: nil},
		{text: "nothing to see", want: nil},
		{text: "TODO", want: []Span{{0, 4}}},
		{text: "TODO: fix this, also TODO later", want: []Span{{0, 4}, {21, 25}}},
		{text: "TODOS MYTODO TODO_1 todo", want: nil},
		{text: "end TODO", want: []Span{{4, 8}}},
		{text: "(TODO)", want: []Span{{1, 5}}},
		{text: "TODO\nTODO", want: []Span{{0, 4}, {5, 9}}},
		{text: "TODOTODO", want: nil},
		{text: "éTODO", want: []Span{{2, 6}}},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			require.Equal(t, tc.want, Find(tc.text))
		})
	}
}

func TestAllIsRestartable(t *testing.T) {
	seq := All("a TODO b TODO")

	var first, second []Span
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}

	require.Len(t, first, 2)
	require.Equal(t, first, second)
}

func TestAllStopsEarly(t *testing.T) {
	n := 0
	for range All("TODO TODO TODO") {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestSpanShift(t *testing.T) {
	s := Span{Start: 2, End: 6}
	require.Equal(t, Span{Start: 12, End: 16}, s.Shift(10))
	require.Equal(t, 4, s.Len())
	require.Equal(t, "TODO", s.Text("a TODO"))
}

func TestProperty_SpansOrderedAndDisjoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := textGen().Draw(rt, "text")
		spans := Find(text)

		for i, s := range spans {
			require.Less(rt, s.Start, s.End)
			if i > 0 {
				require.LessOrEqual(rt, spans[i-1].End, s.Start, "spans must not overlap")
			}
		}
	})
}

func TestProperty_SpansAreWholeTokens(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := textGen().Draw(rt, "text")

		for s := range All(text) {
			require.Equal(rt, Token, s.Text(text))
			if s.Start > 0 {
				require.False(rt, isWordByte(text[s.Start-1]), "word character before %v", s)
			}
			if s.End < len(text) {
				require.False(rt, isWordByte(text[s.End]), "word character after %v", s)
			}
		}
	})
}

func TestProperty_NoMissedTokens(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := textGen().Draw(rt, "text")
		found := make(map[int]bool)
		for s := range All(text) {
			found[s.Start] = true
		}

		for i := 0; i+len(Token) <= len(text); i++ {
			if text[i:i+len(Token)] != Token {
				continue
			}
			bounded := (i == 0 || !isWordByte(text[i-1])) &&
				(i+len(Token) == len(text) || !isWordByte(text[i+len(Token)]))
			require.Equal(rt, bounded, found[i], "offset %d in %q", i, text)
		}
	})
}
