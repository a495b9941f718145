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

	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// opColorSpace implements the "CS" and "cs" operators.
func opColorSpace(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	name := p.GetName()
	if err := p.Check(); err != nil {
		return err
	}

	family, n, err := c.colorSpace(name)
	if err != nil {
		return err
	}
	col := graphics.InitialColor(name, family, n)

	s := c.State()
	if op == "CS" {
		s.StrokeColor = col
	} else {
		s.FillColor = col
	}
	return nil
}

// colorSpace determines the family and the number of components of the
// named colour space.  Names other than the device colour spaces and
// "Pattern" are looked up in the ColorSpace resources.
//
// See section 8.6 of ISO 32000-2:2020.
func (c *Context) colorSpace(name pdf.Name) (pdf.Name, int, error) {
	switch name {
	case graphics.DeviceGray:
		return name, 1, nil
	case graphics.DeviceRGB:
		return name, 3, nil
	case graphics.DeviceCMYK:
		return name, 4, nil
	case graphics.Pattern:
		return name, 0, nil
	}

	obj, err := resource.GetResolved(c.Scope(), resource.ColorSpace, name)
	if err != nil {
		return "", 0, err
	}
	return describeColorSpace(c.Getter(), obj)
}

func describeColorSpace(r pdf.Getter, obj pdf.Object) (pdf.Name, int, error) {
	switch obj := obj.(type) {
	case pdf.Name:
		switch obj {
		case graphics.DeviceGray, "CalGray":
			return obj, 1, nil
		case graphics.DeviceRGB, "CalRGB":
			return obj, 3, nil
		case graphics.DeviceCMYK:
			return obj, 4, nil
		case graphics.Pattern:
			return obj, 0, nil
		}
	case pdf.Array:
		if len(obj) == 0 {
			break
		}
		family, err := pdf.GetName(r, obj[0])
		if err != nil {
			return "", 0, err
		}
		switch family {
		case "CalGray", "Separation", "Indexed":
			return family, 1, nil
		case "CalRGB", "Lab":
			return family, 3, nil
		case graphics.Pattern:
			if len(obj) < 2 {
				return family, 0, nil
			}
			// uncoloured patterns take the components of the base space
			base, err := pdf.Resolve(r, obj[1])
			if err != nil {
				return "", 0, err
			}
			_, n, err := describeColorSpace(r, base)
			if err != nil {
				return "", 0, err
			}
			return family, n, nil
		case "DeviceN":
			if len(obj) < 2 {
				break
			}
			names, err := pdf.GetArray(r, obj[1])
			if err != nil {
				return "", 0, err
			}
			return family, len(names), nil
		case "ICCBased":
			if len(obj) < 2 {
				break
			}
			stm, err := pdf.GetStream(r, obj[1])
			if err != nil {
				return "", 0, err
			}
			if stm == nil {
				break
			}
			n, err := pdf.GetInt(r, stm.Dict["N"])
			if err != nil {
				return "", 0, err
			}
			return family, int(n), nil
		default:
			return describeColorSpace(r, family)
		}
	}
	return "", 0, &pdf.MalformedFileError{
		Err: fmt.Errorf("invalid colour space %s", pdf.Format(obj)),
	}
}

// opColor implements the "SC", "SCN", "sc" and "scn" operators.
func opColor(c *Context, op string, args []pdf.Object) error {
	var pattern pdf.Name
	if op == "SCN" || op == "scn" {
		if n := len(args); n > 0 {
			if name, ok := args[n-1].(pdf.Name); ok {
				pattern = name
				args = args[:n-1]
			}
		}
	}
	p := argParser{args: args}
	values := p.GetFloats()
	if err := p.Check(); err != nil {
		return err
	}

	s := c.State()
	col := &s.FillColor
	if op == "SC" || op == "SCN" {
		col = &s.StrokeColor
	}
	switch {
	case len(values) < col.NumComponents:
		return ErrNotEnoughArgs
	case len(values) > col.NumComponents:
		return ErrTooManyArgs
	}
	if pattern != "" {
		if _, err := c.Scope().Lookup(resource.Pattern, pattern); err != nil {
			return err
		}
	}
	*col = graphics.Color{
		Space:         col.Space,
		Family:        col.Family,
		Values:        values,
		Pattern:       pattern,
		NumComponents: col.NumComponents,
	}
	return nil
}

// opDeviceColor implements the operators "G", "g", "RG", "rg", "K" and "k".
func opDeviceColor(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	var col graphics.Color
	switch op {
	case "G", "g":
		col = graphics.Gray(p.GetFloat())
	case "RG", "rg":
		col = graphics.RGB(p.GetFloat(), p.GetFloat(), p.GetFloat())
	case "K", "k":
		col = graphics.CMYK(p.GetFloat(), p.GetFloat(), p.GetFloat(), p.GetFloat())
	}
	if err := p.Check(); err != nil {
		return err
	}

	s := c.State()
	if op == "G" || op == "RG" || op == "K" {
		s.StrokeColor = col
	} else {
		s.FillColor = col
	}
	return nil
}

// opShading implements the "sh" operator.  No event is generated, but the
// shading must exist.
func opShading(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	name := p.GetName()
	if err := p.Check(); err != nil {
		return err
	}
	_, err := c.Scope().Lookup(resource.Shading, name)
	return err
}
