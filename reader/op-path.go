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

package reader

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/graphics/clip"
	"seehuhn.de/go/pdfinterp/pdf"
)

// opPathConstruct implements the operators "m", "l", "c", "v", "y", "h"
// and "re".
func opPathConstruct(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	path := c.path

	var err error
	switch op {
	case "m":
		x, y := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		path.MoveTo(vec.Vec2{X: x, Y: y})
	case "l":
		x, y := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		err = path.LineTo(vec.Vec2{X: x, Y: y})
	case "c":
		x1, y1 := p.GetFloat(), p.GetFloat()
		x2, y2 := p.GetFloat(), p.GetFloat()
		x3, y3 := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		err = path.CurveTo(vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2}, vec.Vec2{X: x3, Y: y3})
	case "v": // first control point at the current point
		x2, y2 := p.GetFloat(), p.GetFloat()
		x3, y3 := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		current, _ := path.CurrentPoint()
		err = path.CurveTo(current, vec.Vec2{X: x2, Y: y2}, vec.Vec2{X: x3, Y: y3})
	case "y": // second control point at the end point
		x1, y1 := p.GetFloat(), p.GetFloat()
		x3, y3 := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		end := vec.Vec2{X: x3, Y: y3}
		err = path.CurveTo(vec.Vec2{X: x1, Y: y1}, end, end)
	case "h":
		if err := p.Check(); err != nil {
			return err
		}
		err = path.Close()
	case "re":
		x, y := p.GetFloat(), p.GetFloat()
		w, h := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		path.Rect(x, y, w, h)
	}
	if err != nil {
		// A segment without a current point is dropped.
		c.Log().WithError(err).Warn("malformed path")
	}
	return nil
}

// opClip implements the "W" and "W*" operators.  The clipping path is
// changed by the next path painting operator.
func opClip(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	c.clip = true
	c.clipRule = graphics.NonZero
	if op == "W*" {
		c.clipRule = graphics.EvenOdd
	}
	return nil
}

type paintInfo struct {
	close bool
	op    event.PaintOp
	rule  graphics.FillRule
}

var paintOps = map[string]paintInfo{
	"S":  {op: event.PaintStroke},
	"s":  {close: true, op: event.PaintStroke},
	"f":  {op: event.PaintFill},
	"F":  {op: event.PaintFill},
	"f*": {op: event.PaintFill, rule: graphics.EvenOdd},
	"B":  {op: event.PaintFill | event.PaintStroke},
	"B*": {op: event.PaintFill | event.PaintStroke, rule: graphics.EvenOdd},
	"b":  {close: true, op: event.PaintFill | event.PaintStroke},
	"b*": {close: true, op: event.PaintFill | event.PaintStroke, rule: graphics.EvenOdd},
	"n":  {},
}

// opPathPaint implements the path painting operators.  A path event is
// emitted, and if a clipping operator was used the clipping path is
// updated.  The current path is cleared in all cases.
func opPathPaint(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	info := paintOps[op]

	path := c.path
	c.path = &graphics.Path{}
	pendingClip, clipRule := c.clip, c.clipRule
	c.clip = false

	if info.close {
		_ = path.Close()
	}

	if !path.IsEmpty() && c.Wants(event.TypePath) {
		e := &event.Path{
			Path:          path,
			Op:            info.op,
			Rule:          info.rule,
			Clip:          pendingClip,
			ClipRule:      clipRule,
			State:         c.snapshot(),
			MarkedContent: c.markedContent(),
		}
		err := c.Emit(e)
		if err != nil {
			return err
		}
	}

	if pendingClip {
		newClip := clip.Intersect(c.state.ClipPath, path, clipRule)
		return c.SetClipPath(newClip)
	}
	return nil
}
