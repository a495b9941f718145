// seehuhn.de/go/pdfinterp - a content stream interpreter for PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package extract reconstructs the text of a page from the text events
// produced by the content stream interpreter.
//
// Two strategies are provided.  [LocationStrategy] sorts text chunks by
// their position on the page, which gives the reading order for most
// documents.  [SimpleStrategy] keeps the order of the content stream.
package extract

import (
	"math"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/graphics"
)

// DefaultSpaceThreshold is the smallest single-space width (in device space
// units) for which gaps between chunks are converted into spaces.
const DefaultSpaceThreshold = 0.1

// Option configures a text extraction strategy.
type Option func(*config)

type config struct {
	form           norm.Form
	normalize      bool
	spaceThreshold float64
}

func newConfig(opts []Option) config {
	c := config{spaceThreshold: DefaultSpaceThreshold}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *config) finish(s string) string {
	if !c.normalize {
		return s
	}
	return c.form.String(s)
}

// WithNormalization applies the given Unicode normalization form to the
// extracted text.
func WithNormalization(f norm.Form) Option {
	return func(c *config) {
		c.form = f
		c.normalize = true
	}
}

// WithSpaceThreshold sets the minimal single-space width for which spaces are
// inserted between chunks.  Chunks set in fonts with smaller spaces are
// concatenated without separator.
func WithSpaceThreshold(w float64) Option {
	return func(c *config) {
		c.spaceThreshold = w
	}
}

// A chunk is a piece of text together with its location on the page.
type chunk struct {
	text       string
	start, end vec.Vec2

	// orientation is the angle of the baseline, in milliradians.
	orientation int

	// perp is the distance of the baseline from the origin, measured
	// perpendicular to the baseline.  Chunks on the same line have the
	// same value.
	perp int

	// parStart and parEnd are the positions of the end points along the
	// baseline.
	parStart, parEnd float64

	charSpace float64
}

func newChunk(e *event.Text) *chunk {
	seg := baselineWithoutRise(e)

	dir := seg.End.Sub(seg.Start)
	if l := dir.Length(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = vec.Vec2{X: 1}
	}

	return &chunk{
		text:        e.Text(),
		start:       seg.Start,
		end:         seg.End,
		orientation: int(math.Round(math.Atan2(dir.Y, dir.X) * 1000)),
		perp:        int(math.Round(graphics.Cross(seg.Start, dir))),
		parStart:    graphics.Dot(dir, seg.Start),
		parEnd:      graphics.Dot(dir, seg.End),
		charSpace:   e.SingleSpaceWidth(),
	}
}

// baselineWithoutRise returns the device space baseline of the text, as if
// the text rise was zero.  Superscripts and subscripts thus end up on the
// line they belong to.
func baselineWithoutRise(e *event.Text) event.LineSegment {
	seg := e.Baseline()
	rise := e.State.TextRise
	if rise == 0 {
		return seg
	}
	offs := vec.Vec2{Y: rise}
	if f := e.Font(); f != nil && f.Vertical() {
		offs = vec.Vec2{X: rise}
	}
	d := graphics.ApplyLinear(e.TextToDevice(), offs)
	return seg.Transform(matrix.Translate(-d.X, -d.Y))
}

func (c *chunk) sameLine(other *chunk) bool {
	return c.orientation == other.orientation && c.perp == other.perp
}

// gapAfter returns the distance between the end of prev and the start of c,
// measured along the baseline.
func (c *chunk) gapAfter(prev *chunk) float64 {
	return c.parStart - prev.parEnd
}

func compareChunks(a, b *chunk) int {
	if a.orientation != b.orientation {
		return a.orientation - b.orientation
	}
	if a.perp != b.perp {
		return a.perp - b.perp
	}
	switch {
	case a.parStart < b.parStart:
		return -1
	case a.parStart > b.parStart:
		return 1
	}
	return 0
}

// LocationStrategy collects text events and orders them by their location
// on the page.  Lines are sorted by orientation first, then from top to
// bottom, and the chunks within a line from left to right (for unrotated
// text).
//
// LocationStrategy implements [event.Listener].
type LocationStrategy struct {
	cfg    config
	chunks []*chunk
}

// NewLocationStrategy returns a new, empty LocationStrategy.
func NewLocationStrategy(opts ...Option) *LocationStrategy {
	return &LocationStrategy{cfg: newConfig(opts)}
}

// Event implements [event.Listener].
func (s *LocationStrategy) Event(e event.Event) error {
	if t, ok := e.(*event.Text); ok {
		s.chunks = append(s.chunks, newChunk(t))
	}
	return nil
}

// SupportedEvents implements [event.Listener].
func (s *LocationStrategy) SupportedEvents() []event.Type {
	return []event.Type{event.TypeText}
}

// Text returns the text collected so far.
//
// Chunks on different lines are separated by a newline.  Within a line, a
// space is inserted where the gap between two chunks is wider than half a
// space, unless one of the chunks already has a space at the joint.
func (s *LocationStrategy) Text() string {
	sorted := slices.Clone(s.chunks)
	slices.SortStableFunc(sorted, compareChunks)

	var b strings.Builder
	var last *chunk
	for _, c := range sorted {
		switch {
		case last == nil:
		case c.sameLine(last):
			if s.wordBoundary(c, last) &&
				!strings.HasPrefix(c.text, " ") && !strings.HasSuffix(last.text, " ") {
				b.WriteByte(' ')
			}
		default:
			b.WriteByte('\n')
		}
		b.WriteString(c.text)
		last = c
	}
	return s.cfg.finish(b.String())
}

// Reset discards all collected text.
func (s *LocationStrategy) Reset() {
	s.chunks = s.chunks[:0]
}

func (s *LocationStrategy) wordBoundary(c, prev *chunk) bool {
	if c.charSpace < s.cfg.spaceThreshold {
		return false
	}
	gap := c.gapAfter(prev)
	return gap < -c.charSpace || gap > c.charSpace/2
}
