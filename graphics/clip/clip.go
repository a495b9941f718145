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

// Package clip maintains clipping regions.
//
// A clipping region is represented as a [graphics.Path] which consists only
// of closed polygons.  The inside of the region is determined using the
// even-odd rule.  Curves in newly added paths are flattened before the
// Boolean operations are performed.
package clip

import (
	"math"

	polyclip "github.com/ctessum/polyclip-go"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/graphics"
)

// Tolerance is the maximal distance between a curve and the polygon used to
// approximate it, in user space units.
const Tolerance = 0.05

// Intersect returns the intersection of the clipping region current with the
// inside of p.  The fill rule determines the inside of p; all subpaths of p
// are closed before use.
//
// If current is empty or nil, the region cannot shrink any further and a
// copy of current is returned.  The arguments are not modified.
func Intersect(current, p *graphics.Path, rule graphics.FillRule) *graphics.Path {
	if current.IsEmpty() {
		return current.Clone()
	}
	if p.IsEmpty() {
		return &graphics.Path{}
	}

	if r1, ok := current.AsRect(); ok {
		if r2, ok := p.AsRect(); ok {
			return intersectRects(r1, r2)
		}
	}

	subject := toPolygon(current.Flatten(Tolerance))
	var clipping polyclip.Polygon
	switch rule {
	case graphics.EvenOdd:
		clipping = evenOdd(p.CloseAll().Flatten(Tolerance))
	default:
		clipping = nonZero(p.CloseAll().Flatten(Tolerance))
	}
	if len(clipping) == 0 {
		return &graphics.Path{}
	}
	return fromPolygon(subject.Construct(polyclip.INTERSECTION, clipping))
}

func intersectRects(a, b rect.Rect) *graphics.Path {
	r := rect.Rect{
		LLx: math.Max(a.LLx, b.LLx),
		LLy: math.Max(a.LLy, b.LLy),
		URx: math.Min(a.URx, b.URx),
		URy: math.Min(a.URy, b.URy),
	}
	if r.LLx >= r.URx || r.LLy >= r.URy {
		return &graphics.Path{}
	}
	return graphics.NewRectPath(r)
}

// Contains reports whether pt lies inside the clipping region.
// A nil region contains every point.
func Contains(region *graphics.Path, pt vec.Vec2) bool {
	if region == nil {
		return true
	}
	inside := false
	for _, poly := range region.Flatten(Tolerance) {
		if winding(poly, pt)%2 != 0 {
			inside = !inside
		}
	}
	return inside
}

// evenOdd combines the polygons using the even-odd rule.
func evenOdd(polys [][]vec.Vec2) polyclip.Polygon {
	var res polyclip.Polygon
	started := false
	for _, poly := range polys {
		if !isProper(poly) {
			continue
		}
		c := polyclip.Polygon{toContour(poly)}
		if !started {
			res, started = c, true
			continue
		}
		res = res.Construct(polyclip.XOR, c)
	}
	return res
}

// nonZero combines the polygons using the nonzero winding rule.
//
// The plane is cut into horizontal slabs at every vertex and at every
// crossing of two edges.  Inside a slab no edges cross, so the winding
// number is constant between neighbouring edges and the inside of the
// region is a list of trapezoids.  Trapezoids in consecutive slabs which
// are bounded by the same pair of edges are joined into one polygon, and
// the resulting polygons are merged.
func nonZero(polys [][]vec.Vec2) polyclip.Polygon {
	edges := windingEdges(polys)
	if len(edges) == 0 {
		return nil
	}
	ys := slabBoundaries(edges)

	type key struct{ left, right int }
	type chain struct {
		left, right []vec.Vec2
	}
	var done []*chain
	open := map[key]*chain{}

	var active []*windingEdge
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		ym := (y0 + y1) / 2

		active = active[:0]
		for _, e := range edges {
			if e.a.Y <= y0 && e.b.Y >= y1 {
				active = append(active, e)
			}
		}
		slices.SortFunc(active, func(a, b *windingEdge) int {
			xa, xb := a.xAt(ym), b.xAt(ym)
			switch {
			case xa < xb:
				return -1
			case xa > xb:
				return 1
			}
			return 0
		})

		next := map[key]*chain{}
		w := 0
		var left *windingEdge
		for _, e := range active {
			before := w
			w += e.dir
			switch {
			case before == 0 && w != 0:
				left = e
			case before != 0 && w == 0:
				kk := key{left.id, e.id}
				c := open[kk]
				if c != nil {
					delete(open, kk)
					c.left = append(c.left, left.at(y1))
					c.right = append(c.right, e.at(y1))
				} else {
					c = &chain{
						left:  []vec.Vec2{left.at(y0), left.at(y1)},
						right: []vec.Vec2{e.at(y0), e.at(y1)},
					}
				}
				next[kk] = c
			}
		}
		for _, c := range open {
			done = append(done, c)
		}
		open = next
	}
	for _, c := range open {
		done = append(done, c)
	}

	var res polyclip.Polygon
	for _, c := range done {
		poly := slices.Clone(c.left)
		for i := len(c.right) - 1; i >= 0; i-- {
			poly = append(poly, c.right[i])
		}
		poly = dedup(poly)
		if !isProper(poly) {
			continue
		}
		part := polyclip.Polygon{toContour(poly)}
		if res == nil {
			res = part
		} else {
			res = res.Construct(polyclip.UNION, part)
		}
	}
	return res
}

// A windingEdge is a non-horizontal polygon edge, stored with a.Y < b.Y.
// Dir is +1 for edges which point upwards in the original polygon.
type windingEdge struct {
	a, b vec.Vec2
	dir  int
	id   int
}

func (e *windingEdge) xAt(y float64) float64 {
	if y <= e.a.Y {
		return e.a.X
	}
	if y >= e.b.Y {
		return e.b.X
	}
	t := (y - e.a.Y) / (e.b.Y - e.a.Y)
	return e.a.X + t*(e.b.X-e.a.X)
}

func (e *windingEdge) at(y float64) vec.Vec2 {
	return vec.Vec2{X: e.xAt(y), Y: y}
}

func windingEdges(polys [][]vec.Vec2) []*windingEdge {
	var edges []*windingEdge
	for _, poly := range polys {
		if !isProper(poly) {
			continue
		}
		for i, p := range poly {
			q := poly[(i+1)%len(poly)]
			switch {
			case p.Y < q.Y:
				edges = append(edges, &windingEdge{a: p, b: q, dir: 1, id: len(edges)})
			case p.Y > q.Y:
				edges = append(edges, &windingEdge{a: q, b: p, dir: -1, id: len(edges)})
			}
		}
	}
	return edges
}

// slabBoundaries returns the sorted y-coordinates of all edge end points
// and of all crossings between edges.
func slabBoundaries(edges []*windingEdge) []float64 {
	var ys []float64
	for i, e := range edges {
		ys = append(ys, e.a.Y, e.b.Y)
		for _, f := range edges[i+1:] {
			if y, ok := crossing(e, f); ok {
				ys = append(ys, y)
			}
		}
	}
	slices.Sort(ys)
	return slices.Compact(ys)
}

// crossing returns the y-coordinate where the interiors of e and f
// intersect.
func crossing(e, f *windingEdge) (float64, bool) {
	lo := math.Max(e.a.Y, f.a.Y)
	hi := math.Min(e.b.Y, f.b.Y)
	if lo >= hi {
		return 0, false
	}
	d := e.b.Sub(e.a)
	g := f.b.Sub(f.a)
	den := graphics.Cross(d, g)
	if den == 0 {
		return 0, false
	}
	t := graphics.Cross(f.a.Sub(e.a), g) / den
	y := e.a.Y + t*d.Y
	if y <= lo || y >= hi {
		return 0, false
	}
	return y, true
}

func dedup(poly []vec.Vec2) []vec.Vec2 {
	res := poly[:0]
	for _, p := range poly {
		if len(res) > 0 && res[len(res)-1] == p {
			continue
		}
		res = append(res, p)
	}
	for len(res) > 1 && res[0] == res[len(res)-1] {
		res = res[:len(res)-1]
	}
	return res
}

// winding computes the winding number of the closed polygon around pt.
func winding(poly []vec.Vec2, pt vec.Vec2) int {
	w := 0
	n := len(poly)
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		isLeft := (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
		if a.Y <= pt.Y {
			if b.Y > pt.Y && isLeft > 0 {
				w++
			}
		} else if b.Y <= pt.Y && isLeft < 0 {
			w--
		}
	}
	return w
}

func signedArea(poly []vec.Vec2) float64 {
	var sum float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += graphics.Cross(p, q)
	}
	return sum / 2
}

func isProper(poly []vec.Vec2) bool {
	return len(poly) >= 3 && signedArea(poly) != 0
}

func toContour(poly []vec.Vec2) polyclip.Contour {
	c := make(polyclip.Contour, len(poly))
	for i, p := range poly {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

func toPolygon(polys [][]vec.Vec2) polyclip.Polygon {
	var res polyclip.Polygon
	for _, poly := range polys {
		if isProper(poly) {
			res = append(res, toContour(poly))
		}
	}
	return res
}

func fromPolygon(poly polyclip.Polygon) *graphics.Path {
	res := &graphics.Path{}
	for _, c := range poly {
		if len(c) < 3 {
			continue
		}
		sp := graphics.Subpath{
			Start:  vec.Vec2{X: c[0].X, Y: c[0].Y},
			Closed: true,
		}
		for _, pt := range c[1:] {
			sp.Segments = append(sp.Segments, graphics.Segment{
				Type: graphics.LineSegment,
				P:    vec.Vec2{X: pt.X, Y: pt.Y},
			})
		}
		res.Subpaths = append(res.Subpaths, sp)
	}
	return res
}
