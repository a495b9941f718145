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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfinterp/pdf"
)

// argParser provides a scanner-style API for parsing operator arguments.
// After the first error, all further calls return zero values and the
// error is reported by Check.
type argParser struct {
	args []pdf.Object
	err  error
}

func (p *argParser) next() (pdf.Object, bool) {
	if p.err != nil {
		return nil, false
	}
	if len(p.args) == 0 {
		p.err = ErrNotEnoughArgs
		return nil, false
	}
	arg := p.args[0]
	p.args = p.args[1:]
	return arg, true
}

func (p *argParser) GetFloat() float64 {
	arg, ok := p.next()
	if !ok {
		return 0
	}
	switch x := arg.(type) {
	case pdf.Real:
		return float64(x)
	case pdf.Integer:
		return float64(x)
	default:
		p.err = fmt.Errorf("expected number, got %T", arg)
		return 0
	}
}

func (p *argParser) GetInt() int {
	arg, ok := p.next()
	if !ok {
		return 0
	}
	i, ok := arg.(pdf.Integer)
	if !ok {
		p.err = fmt.Errorf("expected integer, got %T", arg)
		return 0
	}
	return int(i)
}

func (p *argParser) GetName() pdf.Name {
	arg, ok := p.next()
	if !ok {
		return ""
	}
	name, ok := arg.(pdf.Name)
	if !ok {
		p.err = fmt.Errorf("expected name, got %T", arg)
		return ""
	}
	return name
}

func (p *argParser) GetArray() pdf.Array {
	arg, ok := p.next()
	if !ok {
		return nil
	}
	arr, ok := arg.(pdf.Array)
	if !ok {
		p.err = fmt.Errorf("expected array, got %T", arg)
		return nil
	}
	return arr
}

func (p *argParser) GetString() pdf.String {
	arg, ok := p.next()
	if !ok {
		return nil
	}
	str, ok := arg.(pdf.String)
	if !ok {
		p.err = fmt.Errorf("expected string, got %T", arg)
		return nil
	}
	return str
}

// GetObject returns the next argument, whatever its type.
func (p *argParser) GetObject() pdf.Object {
	arg, _ := p.next()
	return arg
}

// GetMatrix reads six numbers.
func (p *argParser) GetMatrix() matrix.Matrix {
	var M matrix.Matrix
	for i := range M {
		M[i] = p.GetFloat()
	}
	return M
}

// GetFloats returns all remaining arguments, which must be numbers.
func (p *argParser) GetFloats() []float64 {
	res := make([]float64, 0, len(p.args))
	for len(p.args) > 0 && p.err == nil {
		res = append(res, p.GetFloat())
	}
	return res
}

// Check must be called after all arguments have been read.
func (p *argParser) Check() error {
	if p.err != nil {
		return p.err
	}
	if len(p.args) > 0 {
		return ErrTooManyArgs
	}
	return nil
}
