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

package event

import (
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/font"
	"seehuhn.de/go/pdfinterp/graphics"
)

// A LineSegment is a straight line between two points.
type LineSegment struct {
	Start, End vec.Vec2
}

// Transform applies the matrix M to both end points.
func (l LineSegment) Transform(M matrix.Matrix) LineSegment {
	return LineSegment{Start: M.Apply(l.Start), End: M.Apply(l.End)}
}

// Length returns the distance between the end points.
func (l LineSegment) Length() float64 {
	return l.End.Sub(l.Start).Length()
}

// Text returns the Unicode text of the event.  Glyphs without a known text
// representation are omitted.
func (e *Text) Text() string {
	var b strings.Builder
	for _, g := range e.Glyphs {
		b.WriteString(g.Text)
	}
	return b.String()
}

// TextToDevice returns the matrix which maps text space at the start of the
// string to device space.
func (e *Text) TextToDevice() matrix.Matrix {
	return e.TextMatrix.Mul(e.State.CTM)
}

// Advance returns the displacement of the text matrix caused by showing
// the string, in unscaled text space units.
func (e *Text) Advance() vec.Vec2 {
	return e.State.StringAdvance(e.Glyphs)
}

// width is the advance without the character and word spacing after the
// last glyph.
func (e *Text) width() vec.Vec2 {
	s := e.State
	adv := e.Advance()
	n := len(e.Glyphs)
	if n == 0 {
		return adv
	}
	trail := s.Tc
	if e.Glyphs[n-1].IsSpace {
		trail += s.Tw
	}
	if e.vertical() {
		adv.Y -= trail
	} else {
		adv.X -= trail * s.Th
	}
	return adv
}

func (e *Text) vertical() bool {
	return e.State.Font != nil && e.State.Font.Vertical()
}

// lineWithOffset returns the baseline shifted by the given amount (in text
// space) perpendicular to the writing direction, in device space.
func (e *Text) lineWithOffset(offset float64) LineSegment {
	w := e.width()
	var l LineSegment
	if e.vertical() {
		l = LineSegment{Start: vec.Vec2{X: offset}, End: vec.Vec2{X: offset, Y: w.Y}}
	} else {
		l = LineSegment{Start: vec.Vec2{Y: offset}, End: vec.Vec2{X: w.X, Y: offset}}
	}
	return l.Transform(e.TextToDevice())
}

// Baseline returns the baseline of the text in device space.  The text rise
// is included.
func (e *Text) Baseline() LineSegment {
	return e.lineWithOffset(e.State.TextRise)
}

// AscentLine returns the baseline moved up by the ascent of the font.
func (e *Text) AscentLine() LineSegment {
	return e.lineWithOffset(e.metric(font.Font.Ascent)*e.State.FontSize + e.State.TextRise)
}

// DescentLine returns the baseline moved down by the descent of the font.
func (e *Text) DescentLine() LineSegment {
	return e.lineWithOffset(e.metric(font.Font.Descent)*e.State.FontSize + e.State.TextRise)
}

func (e *Text) metric(get func(font.Font) float64) float64 {
	if e.State.Font == nil {
		return 0
	}
	return get(e.State.Font)
}

// Rise returns the text rise, converted to device space.  The sign of the
// result matches the sign of the text rise.
func (e *Text) Rise() float64 {
	s := e.State
	if s.TextRise == 0 {
		return 0
	}
	d := graphics.ApplyLinear(e.TextToDevice(), vec.Vec2{Y: s.TextRise}).Length()
	return math.Copysign(d, s.TextRise)
}

// SingleSpaceWidth returns the width of a space character with the current
// font and text state, in device space.
func (e *Text) SingleSpaceWidth() float64 {
	s := e.State
	w := (e.metric(font.Font.SpaceWidth)*s.FontSize + s.Tc + s.Tw) * s.Th
	return graphics.ApplyLinear(e.TextToDevice(), vec.Vec2{X: w}).Length()
}

// SplitGlyphs returns one event for every glyph of the string.  The text
// matrix of each event is positioned at the start of the glyph.
func (e *Text) SplitGlyphs() []*Text {
	res := make([]*Text, len(e.Glyphs))
	var pos vec.Vec2
	for i, g := range e.Glyphs {
		res[i] = &Text{
			String:        g.Code,
			Glyphs:        e.Glyphs[i : i+1 : i+1],
			TextMatrix:    matrix.Translate(pos.X, pos.Y).Mul(e.TextMatrix),
			State:         e.State,
			MarkedContent: e.MarkedContent,
		}
		pos = pos.Add(e.State.GlyphAdvance(g))
	}
	return res
}
