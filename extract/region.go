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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/listener"
)

// TextRegion returns a filter which accepts text events whose baseline
// touches the given rectangle.  The rectangle is given in device space.
// All other event types are accepted.
//
// Combine the filter with a [listener.FilteringListener] to extract the text
// of several regions in a single pass over the page.
func TextRegion(r rect.Rect) listener.Filter {
	return listener.FilterFunc(func(e event.Event) bool {
		t, ok := e.(*event.Text)
		if !ok {
			return true
		}
		return segmentTouches(r, t.Baseline())
	})
}

// segmentTouches reports whether the line segment l intersects the closed
// rectangle r, using Liang-Barsky clipping.
func segmentTouches(r rect.Rect, l event.LineSegment) bool {
	d := l.End.Sub(l.Start)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}
	return clip(-d.X, l.Start.X-r.LLx) &&
		clip(d.X, r.URx-l.Start.X) &&
		clip(-d.Y, l.Start.Y-r.LLy) &&
		clip(d.Y, r.URy-l.Start.Y)
}

// MarginFinder determines the area of a page covered by text.
//
// MarginFinder implements [event.Listener].
type MarginFinder struct {
	box  rect.Rect
	seen bool
}

// Event implements [event.Listener].
func (m *MarginFinder) Event(e event.Event) error {
	t, ok := e.(*event.Text)
	if !ok {
		return nil
	}
	asc := t.AscentLine()
	desc := t.DescentLine()
	for _, p := range []vec.Vec2{asc.Start, asc.End, desc.Start, desc.End} {
		if !m.seen {
			m.box = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			m.seen = true
			continue
		}
		m.box.LLx = math.Min(m.box.LLx, p.X)
		m.box.LLy = math.Min(m.box.LLy, p.Y)
		m.box.URx = math.Max(m.box.URx, p.X)
		m.box.URy = math.Max(m.box.URy, p.Y)
	}
	return nil
}

// SupportedEvents implements [event.Listener].
func (m *MarginFinder) SupportedEvents() []event.Type {
	return []event.Type{event.TypeText}
}

// TextBox returns the bounding box of all text seen so far, in device
// space.  The second return value is false if no text was seen.
func (m *MarginFinder) TextBox() (rect.Rect, bool) {
	return m.box, m.seen
}
