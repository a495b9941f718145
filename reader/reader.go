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

// Package reader implements an interpreter for PDF content streams.
//
// The interpreter executes the operators of a content stream, keeps track
// of the graphics state and reports what is drawn to an [event.Listener].
// Form XObjects are interpreted recursively.
package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/font"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// An OperatorHandler executes a content stream operator.
//
// The args slice is only valid until the handler returns.
type OperatorHandler func(c *Context, op string, args []pdf.Object) error

// An XObjectHandler draws an XObject of a given subtype, as invoked by the
// "Do" operator.
type XObjectHandler func(c *Context, name pdf.Name, obj *pdf.Stream) error

// Errors returned for malformed operators.
var (
	ErrNotEnoughArgs = errors.New("not enough arguments")
	ErrTooManyArgs   = errors.New("too many arguments")
	ErrMaxDepth      = errors.New("form XObjects nested too deeply")
)

var errNoFont = errors.New("no font set")

// OperatorError describes a fatal error in a content stream.
type OperatorError struct {
	Op     string
	Offset int64 // byte offset of the operator in its content stream
	Err    error
}

func (err *OperatorError) Error() string {
	return fmt.Sprintf("operator %q at offset %d: %v", err.Op, err.Offset, err.Err)
}

func (err *OperatorError) Unwrap() error {
	return err.Err
}

// Interpreter executes content streams.
//
// An Interpreter can be used concurrently by several goroutines, as long
// as [Interpreter.RegisterOperator] and [Interpreter.RegisterXObjectHandler]
// are not called at the same time.
type Interpreter struct {
	pageBox    rect.Rect
	hasPageBox bool
	log        logrus.FieldLogger
	fonts      *font.Loader
	maxDepth   int

	ops      map[string]OperatorHandler
	xobjects map[pdf.Name]XObjectHandler
}

// An Option configures an [Interpreter].
type Option func(*Interpreter)

// WithPageBox sets the visible area of the page.  This rectangle is used as
// the initial clipping path.  If no page box is set, no clipping paths are
// tracked.
func WithPageBox(box rect.Rect) Option {
	return func(in *Interpreter) {
		in.pageBox = box
		in.hasPageBox = true
	}
}

// WithLogger sets the logger used to report recoverable problems in content
// streams.  By default, messages are discarded.
func WithLogger(log logrus.FieldLogger) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// WithFontLoader sets the font cache.  A loader can be shared between
// interpreters.
func WithFontLoader(l *font.Loader) Option {
	return func(in *Interpreter) {
		in.fonts = l
	}
}

// WithMaxDepth sets the maximal nesting depth for form XObjects.
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) {
		in.maxDepth = depth
	}
}

// DefaultMaxDepth is the default nesting limit for form XObjects.
const DefaultMaxDepth = 20

// New creates a new interpreter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		maxDepth: DefaultMaxDepth,
		ops:      make(map[string]OperatorHandler),
		xobjects: map[pdf.Name]XObjectHandler{
			"Image": drawImage,
			"Form":  drawForm,
		},
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		in.log = l
	}
	if in.fonts == nil {
		in.fonts = font.NewLoader()
	}
	return in
}

// RegisterOperator installs a handler for the given operator, replacing
// the built-in implementation.  The previously active handler is
// returned, or nil if the operator was not known.  Registering a nil
// handler restores the built-in behaviour.
func (in *Interpreter) RegisterOperator(op string, h OperatorHandler) OperatorHandler {
	prev := in.handler(op)
	if h == nil {
		delete(in.ops, op)
	} else {
		in.ops[op] = h
	}
	return prev
}

// RegisterXObjectHandler installs a handler for XObjects of the given
// subtype.  The previous handler is returned, or nil if there was none.
// A nil handler disables the subtype; such XObjects are then ignored.
func (in *Interpreter) RegisterXObjectHandler(subtype pdf.Name, h XObjectHandler) XObjectHandler {
	prev := in.xobjects[subtype]
	if h == nil {
		delete(in.xobjects, subtype)
	} else {
		in.xobjects[subtype] = h
	}
	return prev
}

func (in *Interpreter) handler(op string) OperatorHandler {
	if h, ok := in.ops[op]; ok {
		return h
	}
	return builtin(op)
}

// Interpret executes the content stream and reports all drawing operations
// to l, in stream order.  Every call starts with a fresh graphics state.
//
// Errors returned by the listener are returned unchanged.  All other
// errors are of type [*OperatorError], or come from the scanner.
func (in *Interpreter) Interpret(content []byte, res resource.Scope, l event.Listener) error {
	c, err := in.newContext(res, l)
	if err != nil {
		return err
	}
	err = c.emitClip()
	if err != nil {
		return err
	}
	return c.ProcessContent(content)
}
