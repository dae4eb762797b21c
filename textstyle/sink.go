// Package textstyle holds the style sinks painting the shared mark class.
package textstyle

import "errors"

// Sink receives the highlight colour and paints the mark class with it.
type Sink interface {
	// Apply replaces any previously applied colour. It can be called before
	// any mark exists.
	Apply(color string) error
	// Remove reverts marks to their unstyled appearance. It must not fail
	// when nothing is applied.
	Remove()
}

// Sinks fans a colour out to several sinks.
type Sinks []Sink

var _ Sink = Sinks(nil)

// Apply applies color to every sink, even when some of them fail.
func (s Sinks) Apply(color string) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Apply(color); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s Sinks) Remove() {
	for _, sink := range s {
		sink.Remove()
	}
}
