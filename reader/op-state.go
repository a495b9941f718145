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
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// opLineStyle implements the operators "w", "J", "j", "M", "d", "ri" and "i".
func opLineStyle(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	switch op {
	case "w":
		x := p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		c.State().LineWidth = x
	case "J":
		x := p.GetInt()
		if err := p.Check(); err != nil {
			return err
		}
		if x < 0 || x > 2 {
			c.Log().WithField("value", x).Warn("invalid line cap style")
			x = 0
		}
		c.State().LineCap = graphics.LineCapStyle(x)
	case "j":
		x := p.GetInt()
		if err := p.Check(); err != nil {
			return err
		}
		if x < 0 || x > 2 {
			c.Log().WithField("value", x).Warn("invalid line join style")
			x = 0
		}
		c.State().LineJoin = graphics.LineJoinStyle(x)
	case "M":
		x := p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		c.State().MiterLimit = max(x, 1)
	case "d":
		a := p.GetArray()
		phase := p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		pattern, err := graphics.DashArray(c.Getter(), a)
		if err != nil {
			return err
		}
		s := c.State()
		s.DashPattern = pattern
		s.DashPhase = phase
	case "ri":
		name := p.GetName()
		if err := p.Check(); err != nil {
			return err
		}
		c.State().RenderingIntent = name
	case "i":
		x := p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		c.State().FlatnessTolerance = x
	}
	return nil
}

// opExtGState implements the "gs" operator.
func opExtGState(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	name := p.GetName()
	if err := p.Check(); err != nil {
		return err
	}

	dict, err := resource.GetExtGState(c.Scope(), name)
	if err != nil {
		return err
	}
	ext, err := graphics.ReadExtGState(c.Getter(), dict)
	if err != nil {
		return err
	}

	s := c.State()
	ext.ApplyTo(s)
	if ext.Set&graphics.StateTextFont != 0 {
		F, err := c.in.fonts.Load(c.Getter(), ext.FontRef)
		if err != nil {
			return err
		}
		s.Font = F
		s.FontName = ""
		s.FontSize = ext.FontSize
	}
	return nil
}

// opPush implements the "q" operator.
func opPush(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	c.Push()
	return nil
}

// opPop implements the "Q" operator.  Since the clipping path may change,
// a clip event is emitted.
func opPop(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	if !c.Pop() {
		c.Log().Warn("graphics state stack underflow")
		return nil
	}
	return c.emitClip()
}

// opTransform implements the "cm" operator.
func opTransform(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	M := p.GetMatrix()
	if err := p.Check(); err != nil {
		return err
	}
	c.UpdateCTM(M)
	return nil
}
