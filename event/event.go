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

// Package event defines the render events produced by the content stream
// interpreter in package reader.
//
// Events are immutable once they are delivered to a [Listener].  The
// graphics state attached to an event is a snapshot; it is never changed by
// the interpreter after the event has been emitted, and listeners must not
// modify it either.  Several consecutive events may share the same snapshot.
package event

import (
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfinterp/font"
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
)

// Type identifies the kind of an event.
type Type uint8

// These are the event types produced by the interpreter.
const (
	TypeBeginText Type = iota + 1
	TypeText
	TypeEndText
	TypePath
	TypeClip
	TypeImage
)

// AllTypes lists all event types, in the order of their numeric values.
var AllTypes = []Type{
	TypeBeginText, TypeText, TypeEndText, TypePath, TypeClip, TypeImage,
}

func (t Type) String() string {
	switch t {
	case TypeBeginText:
		return "BeginText"
	case TypeText:
		return "Text"
	case TypeEndText:
		return "EndText"
	case TypePath:
		return "Path"
	case TypeClip:
		return "Clip"
	case TypeImage:
		return "Image"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Event is one of [*BeginText], [*Text], [*EndText], [*Path], [*Clip] and
// [*Image].  The set of event types is closed; use a type switch to
// distinguish the cases.
type Event interface {
	Type() Type
	isEvent()
}

// BeginText is emitted for the "BT" operator.
type BeginText struct{}

// EndText is emitted for the "ET" operator.
type EndText struct{}

// PaintOp describes how a path is painted.
type PaintOp uint8

// Flags for PaintOp.  A path which is neither stroked nor filled (operator
// "n") has PaintOp 0.
const (
	PaintStroke PaintOp = 1 << iota
	PaintFill
)

func (op PaintOp) String() string {
	switch op {
	case 0:
		return "none"
	case PaintStroke:
		return "stroke"
	case PaintFill:
		return "fill"
	case PaintStroke | PaintFill:
		return "fill+stroke"
	}
	return "PaintOp(" + strconv.Itoa(int(op)) + ")"
}

// Path is emitted by the path painting operators.
type Path struct {
	// Path is the painted path, in user space.  The CTM in State maps
	// user space to device space.
	Path *graphics.Path

	Op   PaintOp
	Rule graphics.FillRule // fill rule used for filling

	// Clip is set if a "W" or "W*" operator preceded the painting
	// operator.  In this case a [Clip] event follows.
	Clip     bool
	ClipRule graphics.FillRule

	State         *graphics.State
	MarkedContent []MarkedContent
}

// DevicePath returns the painted path in device space.
func (e *Path) DevicePath() *graphics.Path {
	return e.Path.Transform(e.State.CTM)
}

// BBox returns the bounding box of the path in device space.
func (e *Path) BBox() rect.Rect {
	return e.DevicePath().BBox()
}

// Clip is emitted whenever the clipping path changes.  This includes the
// initial clipping path at the start of a page, intersections caused by
// "W" and "W*" and restoring a saved state with "Q".
type Clip struct {
	// Path is the new clipping path, in the user space of State.  A nil
	// path means that the whole plane is visible.
	Path  *graphics.Path
	State *graphics.State
}

// DevicePath returns the clipping path in device space.
// The result is nil if no clipping path is set.
func (e *Clip) DevicePath() *graphics.Path {
	if e.Path == nil {
		return nil
	}
	return e.Path.Transform(e.State.CTM)
}

// Image is emitted for image XObjects and for inline images.
type Image struct {
	// Name is the resource name of an image XObject.  It is empty for
	// inline images.
	Name pdf.Name

	// Ref is the reference of the image stream, if the XObject resource
	// is an indirect object.
	Ref pdf.Reference

	// Exactly one of Stream and Inline is set.
	Stream *pdf.Stream
	Inline *pdf.InlineImage

	// ColorSpace is the colour space of the image, as given in the image
	// dictionary.  If this is the name of a colour space resource, the name
	// has been replaced by the resource value.
	ColorSpace pdf.Object

	State         *graphics.State
	MarkedContent []MarkedContent
}

// CTM returns the matrix which maps the unit square to the image
// position in device space.
func (e *Image) CTM() matrix.Matrix {
	return e.State.CTM
}

// IsInline reports whether the event describes an inline image.
func (e *Image) IsInline() bool {
	return e.Inline != nil
}

// Dict returns the image dictionary.
func (e *Image) Dict() pdf.Dict {
	if e.Inline != nil {
		return e.Inline.Dict
	}
	if e.Stream != nil {
		return e.Stream.Dict
	}
	return nil
}

// Text is emitted for every string shown by "Tj", "TJ", "'" and '"'.
type Text struct {
	// String is the string as it appears in the content stream.
	String pdf.String

	// Glyphs is String decoded using the current font.
	Glyphs []font.Glyph

	// TextMatrix is the text matrix at the start of the string.
	TextMatrix matrix.Matrix

	State         *graphics.State
	MarkedContent []MarkedContent
}

// Font returns the font used to show the text.
func (e *Text) Font() font.Font {
	return e.State.Font
}

func (*BeginText) Type() Type { return TypeBeginText }
func (*EndText) Type() Type   { return TypeEndText }
func (*Path) Type() Type      { return TypePath }
func (*Clip) Type() Type      { return TypeClip }
func (*Image) Type() Type     { return TypeImage }
func (*Text) Type() Type      { return TypeText }

func (*BeginText) isEvent() {}
func (*EndText) isEvent()   {}
func (*Path) isEvent()      {}
func (*Clip) isEvent()      {}
func (*Image) isEvent()     {}
func (*Text) isEvent()      {}
