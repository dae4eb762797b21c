// Package term paints marks for terminal hosts with lipgloss.
package term

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/oligo/todomark/textstyle"
)

// Sink holds the lipgloss style of the mark class.
type Sink struct {
	mu    sync.RWMutex
	style lipgloss.Style
	set   bool
}

var _ textstyle.Sink = (*Sink)(nil)

func NewSink() *Sink {
	return &Sink{style: lipgloss.NewStyle()}
}

// Apply paints marks in the foreground colour c. Colours are validated with
// the same parser as the other sinks so that every host agrees on what a
// valid colour is.
func (s *Sink) Apply(c string) error {
	if _, err := textstyle.ParseColor(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	s.set = true
	return nil
}

func (s *Sink) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = lipgloss.NewStyle()
	s.set = false
}

// Style returns the style of marked runs. It is unstyled when no colour is
// applied.
func (s *Sink) Style() lipgloss.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// Applied reports whether a colour is currently applied.
func (s *Sink) Applied() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// Render paints text with the mark style.
func (s *Sink) Render(text string) string {
	return s.Style().Render(text)
}
