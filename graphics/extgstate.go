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
	"errors"
	"fmt"

	"seehuhn.de/go/pdfinterp/pdf"
)

// StateBits is a bit mask for the fields of the [State] struct which can be
// set by an extended graphics state dictionary.
type StateBits uint32

// Possible values for StateBits.
const (
	StateTextFont StateBits = 1 << iota // includes size
	StateTextKnockout
	StateLineWidth
	StateLineCap
	StateLineJoin
	StateMiterLimit
	StateLineDash // pattern and phase
	StateRenderingIntent
	StateStrokeAdjustment
	StateBlendMode
	StateSoftMask
	StateStrokeAlpha
	StateFillAlpha
	StateAlphaSourceFlag
	StateOverprint
	StateOverprintMode
	StateFlatnessTolerance
	StateSmoothnessTolerance
)

// ExtGState represents the contents of a graphics state parameter
// dictionary, as used by the "gs" operator.  Only the fields indicated by
// Set are present in the dictionary.
//
// The font is kept as the unresolved /Font entry.  Loading the font is the
// responsibility of the caller.
type ExtGState struct {
	Set StateBits

	FontRef           pdf.Object
	FontSize          float64
	TextKnockout      bool
	LineWidth         float64
	LineCap           LineCapStyle
	LineJoin          LineJoinStyle
	MiterLimit        float64
	DashPattern       []float64
	DashPhase         float64
	RenderingIntent   pdf.Name
	StrokeAdjustment  bool
	BlendMode         pdf.Object
	SoftMask          pdf.Object
	StrokeAlpha       float64
	FillAlpha         float64
	AlphaSourceFlag   bool
	OverprintStroke   bool
	OverprintFill     bool
	OverprintMode     int
	FlatnessTolerance float64
	Smoothness        float64
}

// ReadExtGState decodes a graphics state parameter dictionary.
// Entries which are malformed are ignored.  Entries which are not
// relevant for content stream interpretation (transfer functions,
// halftones and similar) are ignored, too.
//
// See section 8.4.5 of ISO 32000-2:2020.
func ReadExtGState(r pdf.Getter, dict pdf.Dict) (*ExtGState, error) {
	res := &ExtGState{}
	overprintFillSet := false

	for key, v := range dict {
		switch key {
		case "Font":
			a, err := pdf.GetArray(r, v)
			if err != nil || len(a) != 2 {
				break
			}
			size, err := pdf.GetNumber(r, a[1])
			if err != nil {
				break
			}
			res.FontRef = a[0]
			res.FontSize = size
			res.Set |= StateTextFont
		case "TK":
			if val, err := pdf.GetBool(r, v); err == nil {
				res.TextKnockout = bool(val)
				res.Set |= StateTextKnockout
			}
		case "LW":
			if lw, err := getNumber(r, v); err == nil {
				res.LineWidth = lw
				res.Set |= StateLineWidth
			}
		case "LC":
			if lineCap, err := pdf.GetInt(r, v); err == nil {
				res.LineCap = LineCapStyle(clamp(int(lineCap), 0, 2))
				res.Set |= StateLineCap
			}
		case "LJ":
			if lineJoin, err := pdf.GetInt(r, v); err == nil {
				res.LineJoin = LineJoinStyle(clamp(int(lineJoin), 0, 2))
				res.Set |= StateLineJoin
			}
		case "ML":
			if miterLimit, err := getNumber(r, v); err == nil {
				res.MiterLimit = max(miterLimit, 1)
				res.Set |= StateMiterLimit
			}
		case "D":
			pattern, phase, err := readDash(r, v)
			if err == nil {
				res.DashPattern = pattern
				res.DashPhase = phase
				res.Set |= StateLineDash
			}
		case "RI":
			if ri, err := pdf.GetName(r, v); err == nil && ri != "" {
				res.RenderingIntent = ri
				res.Set |= StateRenderingIntent
			}
		case "SA":
			if val, err := pdf.GetBool(r, v); err == nil {
				res.StrokeAdjustment = bool(val)
				res.Set |= StateStrokeAdjustment
			}
		case "BM":
			res.BlendMode = v
			res.Set |= StateBlendMode
		case "SMask":
			res.SoftMask = v
			res.Set |= StateSoftMask
		case "CA":
			if ca, err := getNumber(r, v); err == nil {
				res.StrokeAlpha = ca
				res.Set |= StateStrokeAlpha
			}
		case "ca":
			if ca, err := getNumber(r, v); err == nil {
				res.FillAlpha = ca
				res.Set |= StateFillAlpha
			}
		case "AIS":
			if ais, err := pdf.GetBool(r, v); err == nil {
				res.AlphaSourceFlag = bool(ais)
				res.Set |= StateAlphaSourceFlag
			}
		case "OP":
			if op, err := pdf.GetBool(r, v); err == nil {
				res.OverprintStroke = bool(op)
				res.Set |= StateOverprint
			}
		case "op":
			if op, err := pdf.GetBool(r, v); err == nil {
				res.OverprintFill = bool(op)
				res.Set |= StateOverprint
				overprintFillSet = true
			}
		case "OPM":
			if opm, err := pdf.GetInt(r, v); err == nil {
				res.OverprintMode = 0
				if opm != 0 {
					res.OverprintMode = 1
				}
				res.Set |= StateOverprintMode
			}
		case "FL":
			if fl, err := getNumber(r, v); err == nil {
				res.FlatnessTolerance = fl
				res.Set |= StateFlatnessTolerance
			}
		case "SM":
			if sm, err := getNumber(r, v); err == nil {
				res.Smoothness = sm
				res.Set |= StateSmoothnessTolerance
			}
		}
	}

	if res.Set&StateOverprint != 0 && !overprintFillSet {
		res.OverprintFill = res.OverprintStroke
	}

	return res, nil
}

// ApplyTo copies the parameters present in the ExtGState into s.
// The font is not changed; see [ExtGState.FontRef].
func (e *ExtGState) ApplyTo(s *State) {
	set := e.Set
	if set&StateTextKnockout != 0 {
		s.TextKnockout = e.TextKnockout
	}
	if set&StateLineWidth != 0 {
		s.LineWidth = e.LineWidth
	}
	if set&StateLineCap != 0 {
		s.LineCap = e.LineCap
	}
	if set&StateLineJoin != 0 {
		s.LineJoin = e.LineJoin
	}
	if set&StateMiterLimit != 0 {
		s.MiterLimit = e.MiterLimit
	}
	if set&StateLineDash != 0 {
		s.DashPattern = append([]float64{}, e.DashPattern...)
		s.DashPhase = e.DashPhase
	}
	if set&StateRenderingIntent != 0 {
		s.RenderingIntent = e.RenderingIntent
	}
	if set&StateStrokeAdjustment != 0 {
		s.StrokeAdjustment = e.StrokeAdjustment
	}
	if set&StateBlendMode != 0 {
		s.BlendMode = e.BlendMode
	}
	if set&StateSoftMask != 0 {
		s.SoftMask = e.SoftMask
	}
	if set&StateStrokeAlpha != 0 {
		s.StrokeAlpha = e.StrokeAlpha
	}
	if set&StateFillAlpha != 0 {
		s.FillAlpha = e.FillAlpha
	}
	if set&StateAlphaSourceFlag != 0 {
		s.AlphaSourceFlag = e.AlphaSourceFlag
	}
	if set&StateOverprint != 0 {
		s.OverprintStroke = e.OverprintStroke
		s.OverprintFill = e.OverprintFill
	}
	if set&StateOverprintMode != 0 {
		s.OverprintMode = e.OverprintMode
	}
	if set&StateFlatnessTolerance != 0 {
		s.FlatnessTolerance = e.FlatnessTolerance
	}
	if set&StateSmoothnessTolerance != 0 {
		s.SmoothnessTolerance = e.Smoothness
	}
}

// readDash decodes a dash pattern given as an array of the form
// [[d1 d2 ...] phase], as used in graphics state parameter dictionaries.
func readDash(r pdf.Getter, obj pdf.Object) ([]float64, float64, error) {
	a, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, 0, err
	}
	if len(a) != 2 {
		return nil, 0, errors.New("malformed dash pattern")
	}
	pattern, err := DashArray(r, a[0])
	if err != nil {
		return nil, 0, err
	}
	phase, err := getNumber(r, a[1])
	if err != nil {
		return nil, 0, err
	}
	return pattern, phase, nil
}

// DashArray converts a PDF array of dash lengths into a slice.
// Negative lengths, and arrays where all lengths are zero, are invalid.
func DashArray(r pdf.Getter, obj pdf.Object) ([]float64, error) {
	a, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	res := make([]float64, len(a))
	allZero := len(a) > 0
	for i, x := range a {
		res[i], err = getNumber(r, x)
		if err != nil {
			return nil, err
		}
		if res[i] < 0 {
			return nil, fmt.Errorf("negative dash length %g", res[i])
		}
		if res[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return nil, errors.New("dash lengths are all zero")
	}
	return res, nil
}

func getNumber(r pdf.Getter, obj pdf.Object) (float64, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, errors.New("missing number")
	}
	return pdf.GetNumber(r, obj)
}

func clamp(x, lo, hi int) int {
	return min(max(x, lo), hi)
}
