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
	"seehuhn.de/go/geom/rect"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	if s.CTM != matrix.Identity {
		t.Errorf("CTM = %v", s.CTM)
	}
	if s.ClipPath != nil {
		t.Error("unexpected clipping path")
	}
	if s.Th != 1 || s.LineWidth != 1 || s.MiterLimit != 10 {
		t.Errorf("wrong defaults: Th=%g LW=%g ML=%g", s.Th, s.LineWidth, s.MiterLimit)
	}
	if s.FillColor.Space != DeviceGray || s.FillColor.Values[0] != 0 {
		t.Errorf("fill color %v", s.FillColor)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewState()
	s.ClipPath = NewRectPath(rect.Rect{URx: 100, URy: 100})
	s.DashPattern = []float64{3, 1}
	s.StrokeColor = RGB(1, 0, 0)

	c := s.Clone()
	c.ClipPath.Subpaths[0].Start.X = 50
	c.DashPattern[0] = 7
	c.StrokeColor.Values[1] = 1
	c.CTM = matrix.Scale(2, 2)
	c.FontSize = 12

	if s.ClipPath.Subpaths[0].Start.X != 0 {
		t.Error("clipping path is shared")
	}
	if s.DashPattern[0] != 3 {
		t.Error("dash pattern is shared")
	}
	if s.StrokeColor.Values[1] != 0 {
		t.Error("color values are shared")
	}
	if s.CTM != matrix.Identity || s.FontSize != 0 {
		t.Error("scalar fields changed")
	}
}

func TestInitialColor(t *testing.T) {
	c := InitialColor("CS0", "Separation", 1)
	if len(c.Values) != 1 || c.Values[0] != 1 {
		t.Errorf("Separation: %v", c)
	}
	c = InitialColor(DeviceCMYK, DeviceCMYK, 4)
	if c.Values[3] != 1 {
		t.Errorf("CMYK: %v", c)
	}
	if got := RGB(1, 0.5, 0).String(); got != "DeviceRGB(1 0.5 0)" {
		t.Errorf("String: %q", got)
	}
}
