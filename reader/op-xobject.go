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
	"errors"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// opXObject implements the "Do" operator.  The XObject is passed to the
// handler registered for its subtype.
func opXObject(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	name := p.GetName()
	if err := p.Check(); err != nil {
		return err
	}

	stm, ref, err := resource.GetXObject(c.Scope(), name)
	if err != nil {
		return err
	}
	subtype, err := pdf.GetName(c.Getter(), stm.Dict["Subtype"])
	if err != nil {
		return err
	}
	h := c.in.xobjects[subtype]
	if h == nil {
		c.Log().WithField("subtype", subtype).Warn("unsupported XObject type")
		return nil
	}

	saved := c.xref
	c.xref = ref
	err = h(c, name, stm)
	c.xref = saved
	return err
}

// drawImage is the XObject handler for images.
func drawImage(c *Context, name pdf.Name, img *pdf.Stream) error {
	if !c.Wants(event.TypeImage) {
		return nil
	}
	cs, err := c.imageColorSpace(img.Dict["ColorSpace"])
	if err != nil {
		return err
	}
	return c.Emit(&event.Image{
		Name:          name,
		Ref:           c.XObjectRef(),
		Stream:        img,
		ColorSpace:    cs,
		State:         c.snapshot(),
		MarkedContent: c.markedContent(),
	})
}

// drawForm is the XObject handler for form XObjects.  The content stream of
// the form is interpreted in a saved graphics state, with the form's own
// resources if it has any.
//
// See section 8.10 of ISO 32000-2:2020.
func drawForm(c *Context, name pdf.Name, form *pdf.Stream) error {
	if c.depth >= c.in.maxDepth {
		return ErrMaxDepth
	}
	r := c.Getter()

	data, err := pdf.DecodeStream(r, form)
	if err != nil {
		return err
	}

	scope := c.Scope()
	if resObj := form.Dict["Resources"]; resObj != nil {
		scope, err = resource.New(r, resObj)
		if err != nil {
			return err
		}
	}

	c.Push()
	savedBase := c.stackBase
	c.stackBase = len(c.stack)
	savedPath, savedClip := c.path, c.clip
	c.path = &graphics.Path{}
	c.clip = false
	savedMarked := len(c.marked)
	serial := c.clipSerial

	if mObj := form.Dict["Matrix"]; mObj != nil {
		M, err := graphics.MatrixFromArray(r, mObj)
		if err != nil {
			return err
		}
		c.UpdateCTM(M)
	}

	c.PushScope(scope)
	c.depth++
	err = c.ProcessContent(data)
	c.depth--
	c.PopScope()
	if err != nil {
		return err
	}

	// drop states left on the stack by the form
	for i := c.stackBase; i < len(c.stack); i++ {
		c.stack[i] = nil
	}
	c.stack = c.stack[:c.stackBase]
	c.stackBase = savedBase
	c.Pop()

	if len(c.marked) > savedMarked {
		c.Log().Warn("unbalanced marked content in form XObject")
		c.marked = c.marked[:savedMarked]
		c.markedSnap = nil
	}
	c.path, c.clip = savedPath, savedClip

	if c.clipSerial != serial {
		return c.emitClip()
	}
	return nil
}

// opInlineImage implements inline images.  The scanner combines the
// operators "BI", "ID" and "EI" into a single "EI" with the image as the
// only argument.
func opInlineImage(c *Context, op string, args []pdf.Object) error {
	if len(args) != 1 {
		return ErrNotEnoughArgs
	}
	img, ok := args[0].(*pdf.InlineImage)
	if !ok {
		return errors.New("malformed inline image")
	}
	if !c.Wants(event.TypeImage) {
		return nil
	}

	csObj := img.Dict["CS"]
	if csObj == nil {
		csObj = img.Dict["ColorSpace"]
	}
	if name, ok := csObj.(pdf.Name); ok {
		if full, isAbbrev := inlineColorSpaces[name]; isAbbrev {
			csObj = full
		}
	}
	cs, err := c.imageColorSpace(csObj)
	if err != nil {
		return err
	}

	return c.Emit(&event.Image{
		Inline:        img,
		ColorSpace:    cs,
		State:         c.snapshot(),
		MarkedContent: c.markedContent(),
	})
}

var inlineColorSpaces = map[pdf.Name]pdf.Name{
	"G":    graphics.DeviceGray,
	"RGB":  graphics.DeviceRGB,
	"CMYK": graphics.DeviceCMYK,
}

// imageColorSpace resolves the colour space entry of an image dictionary.
// Names of colour space resources are replaced by the resource value.
func (c *Context) imageColorSpace(obj pdf.Object) (pdf.Object, error) {
	obj, err := pdf.Resolve(c.Getter(), obj)
	if err != nil {
		return nil, err
	}
	name, ok := obj.(pdf.Name)
	if !ok {
		return obj, nil
	}
	switch name {
	case graphics.DeviceGray, graphics.DeviceRGB, graphics.DeviceCMYK, graphics.Pattern:
		return name, nil
	}
	return resource.GetResolved(c.Scope(), resource.ColorSpace, name)
}
