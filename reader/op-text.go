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
	"fmt"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// opBeginText implements the "BT" operator.
func opBeginText(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	if c.inText {
		c.Log().Warn("nested text object")
	}
	c.inText = true
	c.tm = matrix.Identity
	c.tlm = matrix.Identity
	return c.Emit(&event.BeginText{})
}

// opEndText implements the "ET" operator.
func opEndText(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	if !c.inText {
		c.Log().Warn("ET outside text object")
	}
	c.inText = false
	c.tm = matrix.Identity
	c.tlm = matrix.Identity
	return c.Emit(&event.EndText{})
}

// opTextState implements the operators "Tc", "Tw", "Tz", "TL", "Tr" and
// "Ts".
func opTextState(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if op == "Tr" {
		mode := p.GetInt()
		if err := p.Check(); err != nil {
			return err
		}
		if mode < 0 || mode > int(graphics.TextRenderingModeClip) {
			return fmt.Errorf("invalid text rendering mode %d", mode)
		}
		c.State().Tmode = graphics.TextRenderingMode(mode)
		return nil
	}

	x := p.GetFloat()
	if err := p.Check(); err != nil {
		return err
	}
	s := c.State()
	switch op {
	case "Tc":
		s.Tc = x
	case "Tw":
		s.Tw = x
	case "Tz":
		s.Th = x / 100
	case "TL":
		s.Tl = x
	case "Ts":
		s.TextRise = x
	}
	return nil
}

// opFont implements the "Tf" operator.
func opFont(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	name := p.GetName()
	size := p.GetFloat()
	if err := p.Check(); err != nil {
		return err
	}

	obj, err := c.Scope().Lookup(resource.Font, name)
	if err != nil {
		return err
	}
	F, err := c.in.fonts.Load(c.Getter(), obj)
	if err != nil {
		return fmt.Errorf("font %s: %w", name, err)
	}

	s := c.State()
	s.Font = F
	s.FontName = name
	s.FontSize = size
	return nil
}

// opTextPosition implements the operators "Td", "TD", "Tm" and "T*".
func opTextPosition(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	switch op {
	case "Td", "TD":
		dx, dy := p.GetFloat(), p.GetFloat()
		if err := p.Check(); err != nil {
			return err
		}
		if op == "TD" {
			c.State().Tl = -dy
		}
		c.moveText(dx, dy)
	case "Tm":
		M := p.GetMatrix()
		if err := p.Check(); err != nil {
			return err
		}
		c.checkText()
		c.tm = M
		c.tlm = M
	case "T*":
		if err := p.Check(); err != nil {
			return err
		}
		c.nextLine()
	}
	return nil
}

// moveText starts a new line, offset by (dx, dy) from the start of the
// current line.
func (c *Context) moveText(dx, dy float64) {
	c.checkText()
	c.tlm = matrix.Translate(dx, dy).Mul(c.tlm)
	c.tm = c.tlm
}

func (c *Context) nextLine() {
	c.moveText(0, -c.state.Tl)
}

func (c *Context) checkText() {
	if !c.inText {
		c.Log().Warn("text operator outside text object")
	}
}

// opShowText implements the operators "Tj", "'" and '"'.
func opShowText(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	var aw, ac float64
	if op == "\"" {
		aw, ac = p.GetFloat(), p.GetFloat()
	}
	str := p.GetString()
	if err := p.Check(); err != nil {
		return err
	}

	switch op {
	case "'":
		c.nextLine()
	case "\"":
		s := c.State()
		s.Tw = aw
		s.Tc = ac
		c.nextLine()
	default:
		c.checkText()
	}
	return c.showString(str)
}

// opShowTextArray implements the "TJ" operator.
func opShowTextArray(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	a := p.GetArray()
	if err := p.Check(); err != nil {
		return err
	}
	c.checkText()

	for _, elem := range a {
		switch elem := elem.(type) {
		case pdf.String:
			if err := c.showString(elem); err != nil {
				return err
			}
		case pdf.Integer:
			c.kern(float64(elem))
		case pdf.Real:
			c.kern(float64(elem))
		default:
			return fmt.Errorf("unexpected %T in TJ array", elem)
		}
	}
	return nil
}

// kern moves the text position by adj thousandths of text space units,
// against the writing direction.
func (c *Context) kern(adj float64) {
	s := c.state
	d := -adj / 1000 * s.FontSize
	if s.Font != nil && s.Font.Vertical() {
		c.tm = matrix.Translate(0, d).Mul(c.tm)
	} else {
		c.tm = matrix.Translate(d*s.Th, 0).Mul(c.tm)
	}
}

// showString emits a text event for str and advances the text matrix.
func (c *Context) showString(str pdf.String) error {
	s := c.state
	if s.Font == nil {
		return errNoFont
	}
	str = slices.Clone(str)
	glyphs := s.Font.Decode(str)

	if c.Wants(event.TypeText) {
		e := &event.Text{
			String:        str,
			Glyphs:        glyphs,
			TextMatrix:    c.tm,
			State:         c.snapshot(),
			MarkedContent: c.markedContent(),
		}
		if err := c.Emit(e); err != nil {
			return err
		}
	}

	adv := s.StringAdvance(glyphs)
	c.tm = matrix.Translate(adv.X, adv.Y).Mul(c.tm)
	return nil
}

// opGlyphWidth implements the "d0" and "d1" operators, which are only
// meaningful in Type 3 glyph descriptions.
func opGlyphWidth(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	n := 2
	if op == "d1" {
		n = 6
	}
	for range n {
		p.GetFloat()
	}
	return p.Check()
}
