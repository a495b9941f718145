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

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// markedContentArgs parses the arguments of "BMC", "BDC", "MP" and "DP".
// The property list can be given inline, or as the name of a Properties
// resource.
func (c *Context) markedContentArgs(args []pdf.Object, withProperties bool) (event.MarkedContent, error) {
	p := argParser{args: args}
	mc := event.MarkedContent{Tag: p.GetName()}
	var prop pdf.Object
	if withProperties {
		prop = p.GetObject()
	}
	if err := p.Check(); err != nil {
		return mc, err
	}
	if !withProperties {
		return mc, nil
	}

	switch prop := prop.(type) {
	case pdf.Dict:
		mc.Properties = prop
	case pdf.Name:
		dict, err := resource.GetProperties(c.Scope(), prop)
		if err != nil {
			return mc, err
		}
		mc.Properties = dict
	default:
		return mc, fmt.Errorf("expected property list, got %T", prop)
	}
	return mc, nil
}

// opBeginMarked implements the "BMC" and "BDC" operators.
func opBeginMarked(c *Context, op string, args []pdf.Object) error {
	mc, err := c.markedContentArgs(args, op == "BDC")
	if err != nil {
		return err
	}
	c.marked = append(c.marked, mc)
	c.markedSnap = nil
	return nil
}

// opEndMarked implements the "EMC" operator.
func opEndMarked(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	if len(c.marked) == 0 {
		c.Log().Warn("unbalanced EMC")
		return nil
	}
	c.marked = c.marked[:len(c.marked)-1]
	c.markedSnap = nil
	return nil
}

// opMarkPoint implements the "MP" and "DP" operators.  Marked content
// points do not change the marked content stack.
func opMarkPoint(c *Context, op string, args []pdf.Object) error {
	_, err := c.markedContentArgs(args, op == "DP")
	return err
}

// opBeginCompat implements the "BX" operator.  Unknown operators inside a
// compatibility section are ignored without a message.
func opBeginCompat(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	c.compat++
	return nil
}

// opEndCompat implements the "EX" operator.
func opEndCompat(c *Context, op string, args []pdf.Object) error {
	p := argParser{args: args}
	if err := p.Check(); err != nil {
		return err
	}
	if c.compat == 0 {
		c.Log().Warn("unbalanced EX")
		return nil
	}
	c.compat--
	return nil
}
