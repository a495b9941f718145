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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrNoCurrentPoint is returned when a path segment is appended to a path
// which has no current point.
var ErrNoCurrentPoint = errors.New("no current point")

// SegmentType distinguishes straight lines from Bézier curves.
type SegmentType uint8

// These are the possible segment types.
const (
	LineSegment SegmentType = iota
	CurveSegment
)

// A Segment is a straight line or cubic Bézier curve, starting at the end
// point of the previous segment.  For line segments, only P is used.
type Segment struct {
	Type   SegmentType
	C1, C2 vec.Vec2 // control points
	P      vec.Vec2 // end point
}

// A Subpath is a connected sequence of segments.
type Subpath struct {
	Start    vec.Vec2
	Segments []Segment
	Closed   bool
}

// End returns the current point of the subpath.  For closed subpaths, this
// is the start point.
func (sp *Subpath) End() vec.Vec2 {
	if sp.Closed || len(sp.Segments) == 0 {
		return sp.Start
	}
	return sp.Segments[len(sp.Segments)-1].P
}

// A Path is a sequence of subpaths.
//
// The zero value is an empty path.
type Path struct {
	Subpaths []Subpath
}

// NewRectPath returns a path consisting of a single closed rectangle.
func NewRectPath(r rect.Rect) *Path {
	p := &Path{}
	p.Rect(r.LLx, r.LLy, r.URx-r.LLx, r.URy-r.LLy)
	return p
}

// IsEmpty returns true if the path has no subpaths.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Subpaths) == 0
}

// CurrentPoint returns the current point of the path.  The second return
// value is false if the path has no current point.
func (p *Path) CurrentPoint() (vec.Vec2, bool) {
	if p.IsEmpty() {
		return vec.Vec2{}, false
	}
	return p.Subpaths[len(p.Subpaths)-1].End(), true
}

// MoveTo starts a new subpath at the given point.
// A subpath which consists only of a start point is replaced.
func (p *Path) MoveTo(pt vec.Vec2) {
	if n := len(p.Subpaths); n > 0 {
		last := &p.Subpaths[n-1]
		if len(last.Segments) == 0 && !last.Closed {
			last.Start = pt
			return
		}
	}
	p.Subpaths = append(p.Subpaths, Subpath{Start: pt})
}

// current returns the subpath to which new segments are appended.
// After a subpath has been closed, a new subpath is started at the
// start point of the closed one.
func (p *Path) current() (*Subpath, error) {
	n := len(p.Subpaths)
	if n == 0 {
		return nil, ErrNoCurrentPoint
	}
	last := &p.Subpaths[n-1]
	if last.Closed {
		p.Subpaths = append(p.Subpaths, Subpath{Start: last.Start})
		last = &p.Subpaths[n]
	}
	return last, nil
}

// LineTo appends a straight line segment from the current point to pt.
func (p *Path) LineTo(pt vec.Vec2) error {
	sp, err := p.current()
	if err != nil {
		return err
	}
	sp.Segments = append(sp.Segments, Segment{Type: LineSegment, P: pt})
	return nil
}

// CurveTo appends a cubic Bézier curve from the current point to pt,
// using c1 and c2 as the control points.
func (p *Path) CurveTo(c1, c2, pt vec.Vec2) error {
	sp, err := p.current()
	if err != nil {
		return err
	}
	sp.Segments = append(sp.Segments, Segment{Type: CurveSegment, C1: c1, C2: c2, P: pt})
	return nil
}

// Close closes the current subpath.  The current point becomes the start
// point of the subpath.
func (p *Path) Close() error {
	n := len(p.Subpaths)
	if n == 0 {
		return ErrNoCurrentPoint
	}
	p.Subpaths[n-1].Closed = true
	return nil
}

// Rect appends a closed rectangle as a new subpath.
// This is equivalent to the PDF operator sequence "x y m
// x+w y l x+w y+h l x y+h l h".
func (p *Path) Rect(x, y, w, h float64) {
	p.Subpaths = append(p.Subpaths, Subpath{
		Start: vec.Vec2{X: x, Y: y},
		Segments: []Segment{
			{Type: LineSegment, P: vec.Vec2{X: x + w, Y: y}},
			{Type: LineSegment, P: vec.Vec2{X: x + w, Y: y + h}},
			{Type: LineSegment, P: vec.Vec2{X: x, Y: y + h}},
		},
		Closed: true,
	})
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	res := &Path{
		Subpaths: make([]Subpath, len(p.Subpaths)),
	}
	for i, sp := range p.Subpaths {
		res.Subpaths[i] = Subpath{
			Start:    sp.Start,
			Segments: append([]Segment(nil), sp.Segments...),
			Closed:   sp.Closed,
		}
	}
	return res
}

// CloseAll returns a copy of the path where all subpaths are closed.
func (p *Path) CloseAll() *Path {
	res := p.Clone()
	if res == nil {
		return nil
	}
	for i := range res.Subpaths {
		res.Subpaths[i].Closed = true
	}
	return res
}

// Transform returns a copy of the path where every point, including the
// control points, has been mapped through M.
func (p *Path) Transform(M matrix.Matrix) *Path {
	res := p.Clone()
	if res == nil {
		return nil
	}
	for i := range res.Subpaths {
		sp := &res.Subpaths[i]
		sp.Start = M.Apply(sp.Start)
		for j := range sp.Segments {
			seg := &sp.Segments[j]
			seg.P = M.Apply(seg.P)
			if seg.Type == CurveSegment {
				seg.C1 = M.Apply(seg.C1)
				seg.C2 = M.Apply(seg.C2)
			}
		}
	}
	return res
}

// BBox returns a rectangle which encloses all points of the path,
// including the control points of curves.  For an empty path, the zero
// rectangle is returned.
func (p *Path) BBox() rect.Rect {
	var bbox rect.Rect
	first := true
	add := func(v vec.Vec2) {
		if first {
			bbox = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
			first = false
			return
		}
		bbox.Add(v.X, v.Y)
	}
	if p == nil {
		return bbox
	}
	for _, sp := range p.Subpaths {
		add(sp.Start)
		for _, seg := range sp.Segments {
			if seg.Type == CurveSegment {
				add(seg.C1)
				add(seg.C2)
			}
			add(seg.P)
		}
	}
	return bbox
}

// AsRect checks whether the path consists of a single axis-aligned
// rectangle, and returns the rectangle if this is the case.
func (p *Path) AsRect() (rect.Rect, bool) {
	if p == nil || len(p.Subpaths) != 1 {
		return rect.Rect{}, false
	}
	sp := p.Subpaths[0]
	pts := []vec.Vec2{sp.Start}
	for _, seg := range sp.Segments {
		if seg.Type != LineSegment {
			return rect.Rect{}, false
		}
		pts = append(pts, seg.P)
	}
	if len(pts) == 5 && pts[4] == pts[0] {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return rect.Rect{}, false
	}
	for i := 0; i < 4; i++ {
		a, b := pts[i], pts[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return rect.Rect{}, false
		}
		if a == b {
			return rect.Rect{}, false
		}
	}
	// consecutive edges must alternate between horizontal and vertical
	if (pts[0].X == pts[1].X) == (pts[1].X == pts[2].X) {
		return rect.Rect{}, false
	}
	return p.BBox(), true
}

// Flatten converts the path into a list of polygons, by replacing
// Bézier curves with line segments.  Every subpath gives one polygon,
// the closing edge is implied.  The parameter tolerance is the maximal
// allowed distance between a curve and its approximation.
func (p *Path) Flatten(tolerance float64) [][]vec.Vec2 {
	if p == nil {
		return nil
	}
	if tolerance <= 0 {
		tolerance = 0.05
	}
	var res [][]vec.Vec2
	for _, sp := range p.Subpaths {
		poly := []vec.Vec2{sp.Start}
		current := sp.Start
		for _, seg := range sp.Segments {
			switch seg.Type {
			case LineSegment:
				poly = append(poly, seg.P)
			case CurveSegment:
				poly = flattenCubic(poly, current, seg.C1, seg.C2, seg.P, tolerance)
			}
			current = seg.P
		}
		if len(poly) > 1 && poly[len(poly)-1] == poly[0] {
			poly = poly[:len(poly)-1]
		}
		res = append(res, poly)
	}
	return res
}

// flattenCubic appends the points of a polygonal approximation of
// a cubic Bézier curve to poly.  The start point p0 is not appended.
// The number of segments is chosen using Wang's formula.
func flattenCubic(poly []vec.Vec2, p0, p1, p2, p3 vec.Vec2, tolerance float64) []vec.Vec2 {
	d1 := p0.Sub(p1.Mul(2)).Add(p2) // P0 - 2*P1 + P2
	d2 := p1.Sub(p2.Mul(2)).Add(p3) // P1 - 2*P2 + P3

	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		nFloat := math.Sqrt(3 * m / (4 * tolerance))
		if nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}
	n = min(n, 1000)

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
		poly = append(poly, pt)
	}
	poly[len(poly)-1] = p3
	return poly
}
