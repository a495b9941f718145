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

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfinterp/pdf"
)

func TestReadExtGState(t *testing.T) {
	store := pdf.NewStore()
	lwRef := store.Put(pdf.Real(2.5))

	dict := pdf.Dict{
		"Type": pdf.Name("ExtGState"),
		"LW":   lwRef,
		"LC":   pdf.Integer(5), // out of range
		"D":    pdf.Array{pdf.Array{pdf.Integer(3)}, pdf.Integer(1)},
		"Font": pdf.Array{pdf.NewReference(7, 0), pdf.Integer(12)},
		"OP":   pdf.Bool(true),
		"CA":   pdf.Name("bad"),
	}
	e, err := ReadExtGState(store, dict)
	if err != nil {
		t.Fatal(err)
	}

	want := StateLineWidth | StateLineCap | StateLineDash | StateTextFont | StateOverprint
	if e.Set != want {
		t.Errorf("Set = %b, want %b", e.Set, want)
	}
	if e.LineWidth != 2.5 || e.LineCap != LineCapSquare {
		t.Errorf("LW=%g LC=%d", e.LineWidth, e.LineCap)
	}
	if e.FontRef != pdf.NewReference(7, 0) || e.FontSize != 12 {
		t.Errorf("font %v %g", e.FontRef, e.FontSize)
	}
	if !e.OverprintFill {
		t.Error("op does not default to OP")
	}

	s := NewState()
	e.ApplyTo(s)
	if s.LineWidth != 2.5 || s.DashPhase != 1 {
		t.Errorf("LW=%g phase=%g", s.LineWidth, s.DashPhase)
	}
	if d := cmp.Diff([]float64{3}, s.DashPattern); d != "" {
		t.Error(d)
	}
	if s.StrokeAlpha != 1 {
		t.Error("unset field was modified")
	}
	if s.Font != nil {
		t.Error("font must not be applied")
	}
}

func TestDashArray(t *testing.T) {
	for _, a := range []pdf.Array{
		{pdf.Integer(0), pdf.Integer(0)},
		{pdf.Integer(-1)},
	} {
		if _, err := DashArray(nil, a); err == nil {
			t.Errorf("%v: expected error", a)
		}
	}
	res, err := DashArray(nil, pdf.Array{})
	if err != nil || len(res) != 0 {
		t.Errorf("empty pattern: %v %v", res, err)
	}
}
