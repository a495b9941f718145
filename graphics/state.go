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

	"seehuhn.de/go/pdfinterp/font"
	"seehuhn.de/go/pdfinterp/pdf"
)

// State collects all graphical parameters of the PDF processor.
//
// States are copied on "q" using [State.Clone].  All mutable sub-objects
// (dash pattern, clipping path, color values) are deep-copied, so that
// changes to one copy never affect another.
//
// See section 8.4 of ISO 32000-2:2020.
type State struct {
	// CTM is the "current transformation matrix", which maps positions from
	// user coordinates to device coordinates.
	CTM matrix.Matrix

	// ClipPath is the current clipping path, in user space coordinates of
	// the current CTM.  The path is a set of closed polygons, combined
	// using the even-odd rule.  A nil path means that no clipping
	// information is tracked.
	ClipPath *Path

	StrokeColor Color
	FillColor   Color

	// Text State parameters:
	Tc           float64 // character spacing
	Tw           float64 // word spacing
	Th           float64 // horizontal scaling, as a fraction
	Tl           float64 // leading
	Font         font.Font
	FontName     pdf.Name // resource name of the font, if any
	FontSize     float64
	Tmode        TextRenderingMode
	TextRise     float64
	TextKnockout bool

	LineWidth   float64
	LineCap     LineCapStyle
	LineJoin    LineJoinStyle
	MiterLimit  float64
	DashPattern []float64
	DashPhase   float64

	RenderingIntent  pdf.Name
	StrokeAdjustment bool
	BlendMode        pdf.Object
	SoftMask         pdf.Object
	StrokeAlpha      float64
	FillAlpha        float64
	AlphaSourceFlag  bool

	OverprintStroke bool
	OverprintFill   bool
	OverprintMode   int

	// FlatnessTolerance is a positive number specifying the precision with
	// which curves are be rendered on the output device.
	FlatnessTolerance float64

	// SmoothnessTolerance is a number in the range 0 to 1 specifying the
	// precision of smooth shading.
	SmoothnessTolerance float64
}

// NewState returns a new graphics state with default values.
// The CTM is the identity matrix and no clipping path is set.
func NewState() *State {
	return &State{
		CTM: matrix.Identity,

		StrokeColor: Gray(0),
		FillColor:   Gray(0),

		Th:           1,
		TextKnockout: true,

		LineWidth:  1,
		LineCap:    LineCapButt,
		LineJoin:   LineJoinMiter,
		MiterLimit: 10,

		RenderingIntent: "RelativeColorimetric",
		BlendMode:       pdf.Name("Normal"),
		StrokeAlpha:     1,
		FillAlpha:       1,

		FlatnessTolerance: 1,
	}
}

// Clone returns a deep copy of the graphics state.
// Fonts are shared, since they are never modified.
func (s *State) Clone() *State {
	res := *s
	res.ClipPath = s.ClipPath.Clone()
	if s.DashPattern != nil {
		res.DashPattern = append([]float64{}, s.DashPattern...)
	}
	res.StrokeColor = s.StrokeColor.Clone()
	res.FillColor = s.FillColor.Clone()
	return &res
}

// LineCapStyle is the style of the end of a line.
type LineCapStyle uint8

// Possible values for LineCapStyle.
// See section 8.4.3.3 of ISO 32000-2:2020.
const (
	LineCapButt   LineCapStyle = 0
	LineCapRound  LineCapStyle = 1
	LineCapSquare LineCapStyle = 2
)

// LineJoinStyle is the style of the corner of a line.
type LineJoinStyle uint8

// Possible values for LineJoinStyle.
const (
	LineJoinMiter LineJoinStyle = 0
	LineJoinRound LineJoinStyle = 1
	LineJoinBevel LineJoinStyle = 2
)

// TextRenderingMode is the rendering mode for text, set with the "Tr"
// operator.
type TextRenderingMode uint8

// Possible values for TextRenderingMode.
// See section 9.3.6 of ISO 32000-2:2020.
const (
	TextRenderingModeFill TextRenderingMode = iota
	TextRenderingModeStroke
	TextRenderingModeFillStroke
	TextRenderingModeInvisible
	TextRenderingModeFillClip
	TextRenderingModeStrokeClip
	TextRenderingModeFillStrokeClip
	TextRenderingModeClip
)

// FillRule determines which points are inside a path.
type FillRule uint8

// These are the two fill rules defined by PDF.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "even-odd"
	}
	return "nonzero"
}
