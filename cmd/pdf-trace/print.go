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

package main

import (
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/internal/float"
)

// printer writes one line per event.
type printer struct {
	w     io.Writer
	prec  int
	color bool
	depth int
}

// Event implements [event.Listener].
func (p *printer) Event(e event.Event) error {
	if _, ok := e.(*event.EndText); ok && p.depth > 0 {
		p.depth--
	}
	indent := strings.Repeat("  ", p.depth)
	if _, ok := e.(*event.BeginText); ok {
		p.depth++
	}

	name := e.Type().String()
	if p.color {
		name = "\x1b[1m" + name + "\x1b[0m"
	}
	desc := describe(e, p.prec)
	if desc != "" {
		desc = " " + desc
	}
	_, err := fmt.Fprintf(p.w, "%s%s%s\n", indent, name, desc)
	return err
}

// SupportedEvents implements [event.Listener].
func (p *printer) SupportedEvents() []event.Type {
	return nil
}

func describe(e event.Event, prec int) string {
	var parts []string
	var mc []event.MarkedContent
	switch e := e.(type) {
	case *event.Text:
		s := e.State
		fontName := string(s.FontName)
		if f := e.Font(); f != nil && f.BaseFont() != "" {
			fontName += "(" + f.BaseFont() + ")"
		}
		parts = append(parts,
			fmt.Sprintf("%q", e.Text()),
			"font="+fontName,
			"size="+float.Format(s.FontSize, prec),
			"at="+float.Vec(e.Baseline().Start, prec))
		mc = e.MarkedContent
	case *event.Path:
		parts = append(parts, e.Op.String())
		if e.Op&event.PaintFill != 0 {
			parts = append(parts, e.Rule.String())
		}
		parts = append(parts, formatRect(e.BBox(), prec))
		if e.Clip {
			parts = append(parts, "clip="+e.ClipRule.String())
		}
		mc = e.MarkedContent
	case *event.Clip:
		p := e.DevicePath()
		if p == nil {
			parts = append(parts, "none")
		} else {
			parts = append(parts, formatRect(p.BBox(), prec))
		}
	case *event.Image:
		if e.IsInline() {
			parts = append(parts, "inline")
		} else {
			parts = append(parts, "/"+string(e.Name))
		}
		parts = append(parts, "ctm="+float.Matrix(e.CTM(), prec))
		mc = e.MarkedContent
	}
	for _, m := range mc {
		parts = append(parts, "in=/"+string(m.Tag))
	}
	return strings.Join(parts, " ")
}

func formatRect(r rect.Rect, prec int) string {
	return "[" + float.Format(r.LLx, prec) + " " + float.Format(r.LLy, prec) + " " +
		float.Format(r.URx, prec) + " " + float.Format(r.URy, prec) + "]"
}
