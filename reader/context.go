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
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
	"seehuhn.de/go/pdfinterp/scanner"
)

// Context holds the state of one run of the interpreter.  A new Context is
// created for every call to [Interpreter.Interpret]; nested form XObjects
// share the Context of the content stream which invokes them.
type Context struct {
	in       *Interpreter
	listener event.Listener

	state *graphics.State
	stack []*graphics.State

	// stackBase is the stack height at the start of the current content
	// stream.  "Q" cannot pop states saved by an enclosing stream.
	stackBase int

	// snap is an immutable copy of state, shared between events.
	// It is cleared whenever state may have changed.
	snap *graphics.State

	path     *graphics.Path
	clip     bool // "W" or "W*" seen since the last painting operator
	clipRule graphics.FillRule

	// clipSerial is incremented whenever the clipping path changes.
	clipSerial int

	inText bool
	tm     matrix.Matrix // text matrix
	tlm    matrix.Matrix // text line matrix

	marked     []event.MarkedContent
	markedSnap []event.MarkedContent

	compat int // nesting level of BX/EX sections

	scopes []resource.Scope
	depth  int

	op     string
	offset int64
	xref   pdf.Reference

	// abort is the error returned by the listener, if any.
	abort error
}

func (in *Interpreter) newContext(res resource.Scope, l event.Listener) (*Context, error) {
	if res == nil {
		empty, err := resource.New(nil, nil)
		if err != nil {
			return nil, err
		}
		res = empty
	}
	state := graphics.NewState()
	if in.hasPageBox {
		state.ClipPath = graphics.NewRectPath(in.pageBox)
	}
	c := &Context{
		in:       in,
		listener: l,
		state:    state,
		path:     &graphics.Path{},
		tm:       matrix.Identity,
		tlm:      matrix.Identity,
		scopes:   []resource.Scope{res},
	}
	return c, nil
}

// State returns the current graphics state.  The state may be modified by
// the caller.
func (c *Context) State() *graphics.State {
	c.snap = nil
	return c.state
}

// snapshot returns a copy of the current graphics state which is never
// modified.
func (c *Context) snapshot() *graphics.State {
	if c.snap == nil {
		c.snap = c.state.Clone()
	}
	return c.snap
}

func (c *Context) markedContent() []event.MarkedContent {
	if c.markedSnap == nil && len(c.marked) > 0 {
		c.markedSnap = slices.Clone(c.marked)
	}
	return c.markedSnap
}

// Push saves a copy of the current graphics state on the stack.
func (c *Context) Push() {
	c.stack = append(c.stack, c.state.Clone())
}

// Pop restores the most recently saved graphics state.  The return value
// is false if no state was saved in the current content stream.
func (c *Context) Pop() bool {
	n := len(c.stack)
	if n <= c.stackBase {
		return false
	}
	c.state = c.stack[n-1]
	c.stack[n-1] = nil
	c.stack = c.stack[:n-1]
	c.snap = nil
	return true
}

// UpdateCTM applies the transformation M to the current user space, as
// done by the "cm" operator.  The clipping path is re-expressed in the new
// coordinates.  If M is not invertible, the CTM is still updated but the
// clipping path is left unchanged.
func (c *Context) UpdateCTM(M matrix.Matrix) {
	s := c.State()
	s.CTM = M.Mul(s.CTM)
	if s.ClipPath == nil {
		return
	}
	inv, err := graphics.Invert(M)
	if err != nil {
		c.Log().WithError(err).Warn("cannot transform clipping path")
		return
	}
	s.ClipPath = s.ClipPath.Transform(inv)
}

// SetClipPath replaces the clipping path and reports the change to the
// listener.
func (c *Context) SetClipPath(p *graphics.Path) error {
	c.State().ClipPath = p
	c.clipSerial++
	return c.emitClip()
}

func (c *Context) emitClip() error {
	return c.Emit(&event.Clip{Path: c.state.ClipPath, State: c.snapshot()})
}

// Wants reports whether the listener accepts events of type t.
func (c *Context) Wants(t event.Type) bool {
	return event.Accepts(c.listener, t)
}

// Emit sends an event to the listener.  Events of types the listener does
// not support are dropped.
func (c *Context) Emit(e event.Event) error {
	if !c.Wants(e.Type()) {
		return nil
	}
	err := c.listener.Event(e)
	if err != nil {
		c.abort = err
	}
	return err
}

// Scope returns the current resource scope.
func (c *Context) Scope() resource.Scope {
	return c.scopes[len(c.scopes)-1]
}

// Getter returns the object store of the current resource scope.
func (c *Context) Getter() pdf.Getter {
	return c.Scope().Getter()
}

// PushScope makes res the current resource scope.
func (c *Context) PushScope(res resource.Scope) {
	c.scopes = append(c.scopes, res)
}

// PopScope restores the previous resource scope.
func (c *Context) PopScope() {
	if len(c.scopes) > 1 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

// CurrentPath returns the path under construction.
func (c *Context) CurrentPath() *graphics.Path {
	return c.path
}

// Depth returns the current form XObject nesting level.
func (c *Context) Depth() int {
	return c.depth
}

// XObjectRef returns the reference of the XObject being drawn by the
// current "Do" operator.  The result is 0 if the XObject is a direct
// object, or outside of XObject handlers.
func (c *Context) XObjectRef() pdf.Reference {
	return c.xref
}

// Log returns a logger annotated with the current operator and offset.
func (c *Context) Log() logrus.FieldLogger {
	return c.in.log.WithFields(logrus.Fields{
		"op":     c.op,
		"offset": c.offset,
	})
}

// ProcessContent executes a content stream within the current context.
func (c *Context) ProcessContent(content []byte) error {
	savedOp, savedOffset := c.op, c.offset
	defer func() {
		c.op, c.offset = savedOp, savedOffset
	}()

	s := scanner.New(content)
	var err error
	ok := s.Scan()(func(op string, args []pdf.Object) bool {
		c.op = op
		c.offset = s.Offset()
		err = c.do(op, args)
		return err == nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return s.Err()
	}
	return nil
}

func (c *Context) do(op string, args []pdf.Object) error {
	offset := c.offset
	switch op {
	case "Tj", "TJ", "'":
		// text showing leaves the graphics state unchanged
	default:
		c.snap = nil
	}

	h := c.in.handler(op)
	if h == nil {
		if c.compat == 0 {
			c.Log().Debug("unknown operator")
		}
		return nil
	}

	err := h(c, op, args)
	if err == nil {
		return nil
	}
	if c.abort != nil {
		return c.abort
	}
	return &OperatorError{Op: op, Offset: offset, Err: err}
}
