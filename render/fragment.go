// Package render rebuilds a rendered block's text as an ordered list of
// plain and marked fragments.
package render

import (
	"strings"

	"github.com/oligo/todomark/match"
)

// Kind tags a Fragment.
type Kind uint8

const (
	// Plain is untouched text between marks.
	Plain Kind = iota
	// Marked is a token occurrence.
	Marked
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Marked:
		return "marked"
	default:
		return "unknown"
	}
}

// Fragment is one run of a block's text.
type Fragment struct {
	Kind Kind
	Text string
}

// Fragments reconstructs a block's text: concatenating the fragments in
// order yields the original text.
type Fragments []Fragment

// String concatenates the fragments.
func (f Fragments) String() string {
	var b strings.Builder
	for _, frag := range f {
		b.WriteString(frag.Text)
	}
	return b.String()
}

// Marked returns the number of marked fragments.
func (f Fragments) Marked() int {
	n := 0
	for _, frag := range f {
		if frag.Kind == Marked {
			n++
		}
	}
	return n
}

// Split cuts text into fragments around the token occurrences. Text without
// any occurrence comes back as a single plain fragment; empty text gives an
// empty list.
func Split(text string) Fragments {
	var frags Fragments
	cursor := 0

	for span := range match.All(text) {
		if span.Start > cursor {
			frags = append(frags, Fragment{Kind: Plain, Text: text[cursor:span.Start]})
		}
		frags = append(frags, Fragment{Kind: Marked, Text: span.Text(text)})
		cursor = span.End
	}

	if cursor < len(text) {
		frags = append(frags, Fragment{Kind: Plain, Text: text[cursor:]})
	}

	return frags
}
