package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/oligo/todomark/match"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSplit(t *testing.T) {
	testcases := []struct {
		text string
		want Fragments
	}{
		{text: "", want: nil},
		{text: "no tokens", want: Fragments{{Plain, "no tokens"}}},
		{text: "TODO", want: Fragments{{Marked, "TODO"}}},
		{
			text: "TODO: fix this, also TODO later",
			want: Fragments{{Marked, "TODO"}, {Plain, ": fix this, also "}, {Marked, "TODO"}, {Plain, " later"}},
		},
		{text: "ends with TODO", want: Fragments{{Plain, "ends with "}, {Marked, "TODO"}}},
		{text: "TODO TODO", want: Fragments{{Marked, "TODO"}, {Plain, " "}, {Marked, "TODO"}}},
		{text: "TODOS and MYTODO", want: Fragments{{Plain, "TODOS and MYTODO"}}},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			frags := Split(tc.text)
			require.Equal(t, tc.want, frags)
			require.Equal(t, tc.text, frags.String())
		})
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "plain", Plain.String())
	require.Equal(t, "marked", Marked.String())
	require.Equal(t, "unknown", Kind(9).String())
}

func TestProperty_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom([]string{"TODO", "TODO", "a", "_", " ", "\n", "é", "<b>", "TODOS"}), 0, 40).Draw(rt, "parts")
		text := strings.Join(parts, "")

		frags := Split(text)
		require.Equal(rt, text, frags.String())
		require.Equal(rt, len(match.Find(text)), frags.Marked())

		for i, f := range frags {
			require.NotEmpty(rt, f.Text)
			if f.Kind == Marked {
				require.Equal(rt, match.Token, f.Text)
			}
			// plain runs are maximal: two plain fragments never follow each other.
			if i > 0 && f.Kind == Plain {
				require.Equal(rt, Marked, frags[i-1].Kind)
			}
		}
	})
}
