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

package extract

import (
	"math"
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/graphics"
)

// sameLineTolerance is the maximal distance (in device space) of a chunk
// from the line through the previous chunk, for the chunk to count as being
// on the same line.
const sameLineTolerance = 1

// SimpleStrategy concatenates text in the order it appears in the content
// stream.  A newline is inserted whenever the start of a chunk is not on the
// line through the previous chunk, and a space when the gap to the
// previous chunk is wider than half a space.
//
// SimpleStrategy implements [event.Listener].
type SimpleStrategy struct {
	cfg  config
	buf  strings.Builder
	last *event.LineSegment

	// endsWithSpace records whether the last byte written to buf is a space.
	endsWithSpace bool
}

// NewSimpleStrategy returns a new, empty SimpleStrategy.
func NewSimpleStrategy(opts ...Option) *SimpleStrategy {
	return &SimpleStrategy{cfg: newConfig(opts)}
}

// Event implements [event.Listener].
func (s *SimpleStrategy) Event(e event.Event) error {
	t, ok := e.(*event.Text)
	if !ok {
		return nil
	}
	text := t.Text()
	seg := t.Baseline()

	if s.last != nil {
		if distanceFromLine(seg.Start, *s.last) > sameLineTolerance {
			s.buf.WriteByte('\n')
			s.endsWithSpace = false
		} else if !s.endsWithSpace && !strings.HasPrefix(text, " ") {
			w := t.SingleSpaceWidth()
			if w >= s.cfg.spaceThreshold && s.last.End.Sub(seg.Start).Length() > w/2 {
				s.buf.WriteByte(' ')
				s.endsWithSpace = true
			}
		}
	}
	s.buf.WriteString(text)
	if text != "" {
		s.endsWithSpace = text[len(text)-1] == ' '
	}
	s.last = &seg
	return nil
}

// SupportedEvents implements [event.Listener].
func (s *SimpleStrategy) SupportedEvents() []event.Type {
	return []event.Type{event.TypeText}
}

// Text returns the text collected so far.
func (s *SimpleStrategy) Text() string {
	return s.cfg.finish(s.buf.String())
}

// Reset discards all collected text.
func (s *SimpleStrategy) Reset() {
	s.buf.Reset()
	s.last = nil
	s.endsWithSpace = false
}

// distanceFromLine returns the distance of p from the infinite line through
// the end points of l.  If the end points coincide, the distance to the
// start point is returned.
func distanceFromLine(p vec.Vec2, l event.LineSegment) float64 {
	d := l.End.Sub(l.Start)
	n := d.Length()
	if n == 0 {
		return p.Sub(l.Start).Length()
	}
	return math.Abs(graphics.Cross(d, p.Sub(l.Start))) / n
}
