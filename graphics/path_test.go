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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestLineToWithoutMoveTo(t *testing.T) {
	p := &Path{}
	err := p.LineTo(vec.Vec2{X: 1, Y: 1})
	if !errors.Is(err, ErrNoCurrentPoint) {
		t.Errorf("got %v, want ErrNoCurrentPoint", err)
	}
	err = p.CurveTo(vec.Vec2{}, vec.Vec2{}, vec.Vec2{})
	if !errors.Is(err, ErrNoCurrentPoint) {
		t.Errorf("got %v, want ErrNoCurrentPoint", err)
	}
}

// TestCloseStartsNewSubpath verifies that a segment appended after "h"
// starts a new subpath at the start point of the closed one.
func TestCloseStartsNewSubpath(t *testing.T) {
	p := &Path{}
	p.MoveTo(vec.Vec2{X: 1, Y: 2})
	p.LineTo(vec.Vec2{X: 5, Y: 2})
	p.Close()

	pt, ok := p.CurrentPoint()
	if !ok || pt != (vec.Vec2{X: 1, Y: 2}) {
		t.Errorf("current point: got %v %t", pt, ok)
	}

	p.LineTo(vec.Vec2{X: 1, Y: 7})
	if len(p.Subpaths) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(p.Subpaths))
	}
	if p.Subpaths[1].Start != (vec.Vec2{X: 1, Y: 2}) || p.Subpaths[1].Closed {
		t.Errorf("unexpected second subpath %v", p.Subpaths[1])
	}
}

func TestRepeatedMoveTo(t *testing.T) {
	p := &Path{}
	p.MoveTo(vec.Vec2{X: 1, Y: 1})
	p.MoveTo(vec.Vec2{X: 2, Y: 2})
	if len(p.Subpaths) != 1 || p.Subpaths[0].Start != (vec.Vec2{X: 2, Y: 2}) {
		t.Errorf("unexpected path %v", p.Subpaths)
	}
}

func TestRectBBox(t *testing.T) {
	p := &Path{}
	p.Rect(0, 0, 10, 10)
	q := p.Transform(matrix.Translate(10, 20))

	want := rect.Rect{LLx: 10, LLy: 20, URx: 20, URy: 30}
	if got := q.BBox(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// the original is not modified
	if got := p.BBox(); got != (rect.Rect{URx: 10, URy: 10}) {
		t.Errorf("original changed: %v", got)
	}
}

func TestAsRect(t *testing.T) {
	p := &Path{}
	p.Rect(5, 5, -2, 3)
	r, ok := p.AsRect()
	if !ok {
		t.Fatal("rectangle not recognised")
	}
	if r != (rect.Rect{LLx: 3, LLy: 5, URx: 5, URy: 8}) {
		t.Errorf("got %v", r)
	}

	tri := &Path{}
	tri.MoveTo(vec.Vec2{})
	tri.LineTo(vec.Vec2{X: 1})
	tri.LineTo(vec.Vec2{Y: 1})
	tri.Close()
	if _, ok := tri.AsRect(); ok {
		t.Error("triangle recognised as rectangle")
	}

	c, s := math.Cos(0.3), math.Sin(0.3)
	rot := NewRectPath(rect.Rect{URx: 1, URy: 1}).Transform(matrix.Matrix{c, s, -s, c, 0, 0})
	if _, ok := rot.AsRect(); ok {
		t.Error("rotated rectangle recognised as axis-aligned")
	}
}

func TestCloneIndependent(t *testing.T) {
	p := &Path{}
	p.MoveTo(vec.Vec2{})
	p.LineTo(vec.Vec2{X: 1})
	q := p.Clone()
	q.LineTo(vec.Vec2{X: 2})
	q.Subpaths[0].Segments[0].P.X = 100

	if len(p.Subpaths[0].Segments) != 1 || p.Subpaths[0].Segments[0].P.X != 1 {
		t.Errorf("clone shares memory with original: %v", p.Subpaths)
	}
}

func TestFlatten(t *testing.T) {
	p := &Path{}
	p.MoveTo(vec.Vec2{X: 0, Y: 0})
	p.CurveTo(vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 10, Y: 0})
	p.Close()

	polys := p.Flatten(0.01)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons", len(polys))
	}
	poly := polys[0]
	if len(poly) < 10 {
		t.Errorf("only %d points", len(poly))
	}
	if poly[0] != (vec.Vec2{}) || poly[len(poly)-1] != (vec.Vec2{X: 10}) {
		t.Errorf("wrong end points %v %v", poly[0], poly[len(poly)-1])
	}

	// the curve peaks at y = 7.5 for t = 1/2
	maxY := 0.0
	for _, pt := range poly {
		maxY = math.Max(maxY, pt.Y)
	}
	if math.Abs(maxY-7.5) > 0.01 {
		t.Errorf("maximum height %g, want 7.5", maxY)
	}
}

func TestCloseAll(t *testing.T) {
	p := &Path{}
	p.MoveTo(vec.Vec2{})
	p.LineTo(vec.Vec2{X: 1})
	p.LineTo(vec.Vec2{X: 1, Y: 1})
	q := p.CloseAll()
	if p.Subpaths[0].Closed || !q.Subpaths[0].Closed {
		t.Errorf("got closed=%t/%t, want false/true", p.Subpaths[0].Closed, q.Subpaths[0].Closed)
	}
	if d := cmp.Diff(p.Subpaths[0].Segments, q.Subpaths[0].Segments); d != "" {
		t.Error(d)
	}
}
