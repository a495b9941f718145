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

package event

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfinterp/pdf"
)

// A Listener receives the events produced by the interpreter.
type Listener interface {
	// Event is called for every event, in content stream order.  If an
	// error is returned, interpretation stops and the error is returned to
	// the caller of the interpreter.
	Event(e Event) error

	// SupportedEvents returns the event types the listener is interested
	// in.  A nil slice means all event types.
	SupportedEvents() []Type
}

// Accepts reports whether l is interested in events of type t.
func Accepts(l Listener, t Type) bool {
	types := l.SupportedEvents()
	return types == nil || slices.Contains(types, t)
}

// ListenerFunc turns a function into a Listener which accepts all events.
type ListenerFunc func(e Event) error

// Event implements the [Listener] interface.
func (f ListenerFunc) Event(e Event) error {
	return f(e)
}

// SupportedEvents implements the [Listener] interface.
func (f ListenerFunc) SupportedEvents() []Type {
	return nil
}

// MarkedContent describes a marked content sequence, as started by the
// "BMC" and "BDC" operators.
type MarkedContent struct {
	Tag        pdf.Name
	Properties pdf.Dict // nil for BMC
}

// MCID returns the marked content identifier from the property list.
func (mc MarkedContent) MCID() (int, bool) {
	mcid, ok := mc.Properties["MCID"].(pdf.Integer)
	if !ok {
		return 0, false
	}
	return int(mcid), true
}
