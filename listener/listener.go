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

// Package listener contains building blocks for event listeners: filters,
// fan-out to several listeners, splitting text into glyphs and recording
// events.
package listener

import (
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfinterp/event"
)

// A Filter decides whether an event is passed on.
type Filter interface {
	Accept(e event.Event) bool
}

// FilterFunc turns a function into a Filter.
type FilterFunc func(e event.Event) bool

// Accept implements the [Filter] interface.
func (f FilterFunc) Accept(e event.Event) bool {
	return f(e)
}

// TypeFilter accepts events of the given types.
func TypeFilter(types ...event.Type) Filter {
	return FilterFunc(func(e event.Event) bool {
		return slices.Contains(types, e.Type())
	})
}

type attached struct {
	delegate event.Listener
	filters  []Filter
}

// FilteringListener forwards events to several delegates.  Each delegate
// has a list of filters, and receives an event only if all of its filters
// accept the event.  This allows to extract text from several regions of
// a page in one pass.
type FilteringListener struct {
	delegates []attached
}

// NewFilteringListener returns a FilteringListener without delegates.
func NewFilteringListener() *FilteringListener {
	return &FilteringListener{}
}

// Attach adds a delegate.  The delegate will be called for events which
// pass all the given filters.
func (l *FilteringListener) Attach(delegate event.Listener, filters ...Filter) {
	l.delegates = append(l.delegates, attached{delegate, filters})
}

// Event implements the [event.Listener] interface.
func (l *FilteringListener) Event(e event.Event) error {
	tp := e.Type()
delegateLoop:
	for _, d := range l.delegates {
		if !event.Accepts(d.delegate, tp) {
			continue
		}
		for _, f := range d.filters {
			if !f.Accept(e) {
				continue delegateLoop
			}
		}
		if err := d.delegate.Event(e); err != nil {
			return err
		}
	}
	return nil
}

// SupportedEvents implements the [event.Listener] interface.
// The result is the union of the event types supported by the delegates.
func (l *FilteringListener) SupportedEvents() []event.Type {
	listeners := make([]event.Listener, len(l.delegates))
	for i, d := range l.delegates {
		listeners[i] = d.delegate
	}
	return union(listeners)
}

// Multi forwards every event to all listeners, in order.
type Multi []event.Listener

// Event implements the [event.Listener] interface.
func (m Multi) Event(e event.Event) error {
	tp := e.Type()
	for _, l := range m {
		if !event.Accepts(l, tp) {
			continue
		}
		if err := l.Event(e); err != nil {
			return err
		}
	}
	return nil
}

// SupportedEvents implements the [event.Listener] interface.
func (m Multi) SupportedEvents() []event.Type {
	return union(m)
}

// union returns the union of the supported event types, or nil if any of
// the listeners supports all events.
func union(listeners []event.Listener) []event.Type {
	res := []event.Type{}
	for _, l := range listeners {
		types := l.SupportedEvents()
		if types == nil {
			return nil
		}
		res = append(res, types...)
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// GlyphSplitter delivers text events to Delegate one glyph at a time.  All
// other events are passed on unchanged.
type GlyphSplitter struct {
	Delegate event.Listener
}

// Event implements the [event.Listener] interface.
func (g *GlyphSplitter) Event(e event.Event) error {
	text, ok := e.(*event.Text)
	if !ok {
		return g.Delegate.Event(e)
	}
	for _, part := range text.SplitGlyphs() {
		if err := g.Delegate.Event(part); err != nil {
			return err
		}
	}
	return nil
}

// SupportedEvents implements the [event.Listener] interface.
func (g *GlyphSplitter) SupportedEvents() []event.Type {
	return g.Delegate.SupportedEvents()
}

// Recorder keeps all events it receives.
type Recorder struct {
	Events []event.Event

	// Types restricts the recorded event types.  Nil means all types.
	Types []event.Type
}

// Event implements the [event.Listener] interface.
func (r *Recorder) Event(e event.Event) error {
	r.Events = append(r.Events, e)
	return nil
}

// SupportedEvents implements the [event.Listener] interface.
func (r *Recorder) SupportedEvents() []event.Type {
	return r.Types
}

// OfType returns the recorded events of type t.
func (r *Recorder) OfType(t event.Type) []event.Event {
	var res []event.Event
	for _, e := range r.Events {
		if e.Type() == t {
			res = append(res, e)
		}
	}
	return res
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	clear(r.Events)
	r.Events = r.Events[:0]
}
