// Package match implements the rule deciding which ranges of a text are
// occurrences of the TODO token.
package match

import (
	"iter"
	"regexp"
)

const (
	// Token is the literal word being highlighted.
	Token = "TODO"
	// MarkClass is the class shared by every rendered mark, in the live
	// view and in the rendered preview.
	MarkClass = "cm-todo"
)

// \b uses ASCII word characters ([0-9A-Za-z_]), so "TODOS", "MYTODO" and
// "TODO_1" are not matches while "TODO:" and "(TODO)" are.
var tokenRx = regexp.MustCompile(`\b` + regexp.QuoteMeta(Token) + `\b`)

// Span is a half-open byte range [Start, End) of one token occurrence.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Shift translates the span by base. It is used to turn offsets relative to
// a slice into absolute document offsets.
func (s Span) Shift(base int) Span {
	return Span{Start: s.Start + base, End: s.End + base}
}

// Text returns the part of text covered by the span.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

// All returns the token occurrences in text, in ascending order. The offsets
// are relative to the start of text. The sequence is lazy and can be ranged
// over any number of times.
func All(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		pos := 0
		for pos <= len(text) {
			loc := tokenRx.FindStringIndex(text[pos:])
			if loc == nil {
				return
			}

			span := Span{Start: pos + loc[0], End: pos + loc[1]}
			if !yield(span) {
				return
			}
			// text[span.End] is never a word character, so restarting the
			// scan there cannot invent a boundary.
			pos = span.End
		}
	}
}

// Find collects All into a slice. It returns nil when there is no match.
func Find(text string) []Span {
	var spans []Span
	for span := range All(text) {
		spans = append(spans, span)
	}
	return spans
}
