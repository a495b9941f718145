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

package float

import (
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		x    float64
		prec int
		want string
	}{
		{1, 2, "1"},
		{1.5, 2, "1.5"},
		{0.25, 2, ".25"},
		{-0.25, 2, "-.25"},
		{10.001, 2, "10"},
		{-0.001, 2, "0"},
		{123.456, 1, "123.5"},
		{100, 0, "100"},
	} {
		if got := Format(test.x, test.prec); got != test.want {
			t.Errorf("Format(%g, %d) = %q, want %q", test.x, test.prec, got, test.want)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456, 2); got != 1.23 {
		t.Errorf("got %g", got)
	}
	if got := Round(-2.5, 0); got != -3 {
		t.Errorf("got %g", got)
	}
}

func TestComposite(t *testing.T) {
	if got := Vec(vec.Vec2{X: 1.5, Y: -2}, 2); got != "(1.5, -2)" {
		t.Errorf("got %q", got)
	}
	if got := Matrix(matrix.Translate(10, 0.5), 2); got != "[1 0 0 1 10 .5]" {
		t.Errorf("got %q", got)
	}
}
