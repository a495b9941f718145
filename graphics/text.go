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

package graphics

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/font"
)

// GlyphAdvance returns the displacement of the text matrix caused by
// showing the glyph g, in unscaled text space units.  Character spacing is
// applied to every glyph, word spacing only to glyphs marked as spaces.
//
// See section 9.4.4 of ISO 32000-2:2020.
func (s *State) GlyphAdvance(g font.Glyph) vec.Vec2 {
	spacing := s.Tc
	if g.IsSpace {
		spacing += s.Tw
	}
	if s.Font != nil && s.Font.Vertical() {
		return vec.Vec2{Y: g.Width*s.FontSize + spacing}
	}
	return vec.Vec2{X: (g.Width*s.FontSize + spacing) * s.Th}
}

// StringAdvance returns the total displacement for a sequence of glyphs.
func (s *State) StringAdvance(glyphs []font.Glyph) vec.Vec2 {
	var total vec.Vec2
	for _, g := range glyphs {
		total = total.Add(s.GlyphAdvance(g))
	}
	return total
}

// TextRenderingMatrix returns the matrix which maps glyph space at size 1
// to device space, for text positioned by the text matrix tm.
func (s *State) TextRenderingMatrix(tm matrix.Matrix) matrix.Matrix {
	m := matrix.Matrix{s.FontSize * s.Th, 0, 0, s.FontSize, 0, s.TextRise}
	return m.Mul(tm).Mul(s.CTM)
}
