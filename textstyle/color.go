package textstyle

import (
	"fmt"
	"image/color"
	"sync"

	"gioui.org/op"
	"gioui.org/op/paint"
	"github.com/lucasb-eyer/go-colorful"
)

// Color wraps a color.NRGBA color which is widely used by Gio.
// It provides method to convert the non-alpha-premultiplied color
// to a color OP used by Gio ops.
type Color struct {
	val color.NRGBA
	op  op.CallOp
}

// ParseColor parses a hex colour such as "#00FF00" or "#0f0".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}

	r, g, b := c.RGB255()
	return Color{val: color.NRGBA{R: r, G: g, B: b, A: 0xff}}, nil
}

func (c *Color) NRGBA() color.NRGBA {
	return c.val
}

func (c *Color) makeOp() {
	if c.op != (op.CallOp{}) {
		return
	}
	ops := new(op.Ops)
	m := op.Record(ops)
	paint.ColorOp{Color: c.val}.Add(ops)
	c.op = m.Stop()
}

func (c *Color) Op() op.CallOp {
	if c.val == (color.NRGBA{}) {
		return op.CallOp{}
	}

	c.makeOp()
	return c.op
}

// GioSink keeps the mark colour as a Gio paint op. Widgets painting marks
// call Op before drawing each marked run.
type GioSink struct {
	mu    sync.Mutex
	color Color
}

var _ Sink = (*GioSink)(nil)

func (s *GioSink) Apply(c string) error {
	parsed, err := ParseColor(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.color = parsed
	return nil
}

func (s *GioSink) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.color = Color{}
}

// Color returns the applied colour. The zero Color is returned before Apply
// and after Remove.
func (s *GioSink) Color() color.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color.NRGBA()
}

// Op returns the paint op of the applied colour, or an empty op when no
// colour is applied.
func (s *GioSink) Op() op.CallOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color.Op()
}
