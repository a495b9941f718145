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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/font"
	"seehuhn.de/go/pdfinterp/pdf"
)

type testFont struct {
	vertical bool
}

func (f testFont) BaseFont() string    { return "Test" }
func (f testFont) Vertical() bool      { return f.vertical }
func (f testFont) Ascent() float64     { return 0.8 }
func (f testFont) Descent() float64    { return -0.2 }
func (f testFont) SpaceWidth() float64 { return 0.25 }

func (f testFont) Decode(s pdf.String) []font.Glyph {
	res := make([]font.Glyph, len(s))
	for i, c := range s {
		res[i] = font.Glyph{Code: s[i : i+1], Text: string(rune(c)), Width: 0.5, IsSpace: c == ' '}
	}
	return res
}

func TestGlyphAdvance(t *testing.T) {
	s := NewState()
	s.Font = testFont{}
	s.FontSize = 10
	s.Tc = 1
	s.Tw = 2
	s.Th = 0.5

	glyphs := s.Font.Decode(pdf.String("a b"))
	if got := s.GlyphAdvance(glyphs[0]); got != (vec.Vec2{X: 3}) {
		t.Errorf("letter: got %v", got)
	}
	if got := s.GlyphAdvance(glyphs[1]); got != (vec.Vec2{X: 4}) {
		t.Errorf("space: got %v", got)
	}
	if got := s.StringAdvance(glyphs); got != (vec.Vec2{X: 10}) {
		t.Errorf("string: got %v", got)
	}

	s.Font = testFont{vertical: true}
	if got := s.GlyphAdvance(glyphs[1]); got != (vec.Vec2{Y: 8}) {
		t.Errorf("vertical: got %v", got)
	}
}

func TestTextRenderingMatrix(t *testing.T) {
	s := NewState()
	s.FontSize = 12
	s.TextRise = 3
	s.CTM = matrix.Translate(100, 200)

	M := s.TextRenderingMatrix(matrix.Translate(10, 20))
	want := matrix.Matrix{12, 0, 0, 12, 110, 223}
	if M != want {
		t.Errorf("got %v, want %v", M, want)
	}
}
