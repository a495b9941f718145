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

package scanner

import (
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/pdfinterp/pdf"
)

// ParseObject parses a single PDF object, given in PDF syntax.
// Indirect references of the form "n g R" are allowed.
func ParseObject(data []byte) (pdf.Object, error) {
	s := New(data)
	s.allowRefs = true
	var badOp string
	ok := s.Scan()(func(op string, args []pdf.Object) bool {
		badOp = op
		return false
	})
	if !ok {
		if s.err != nil {
			return nil, s.err
		}
		return nil, &pdf.MalformedFileError{
			Pos: s.Offset(),
			Err: fmt.Errorf("unexpected operator %q", badOp),
		}
	}
	if len(s.stack) > 0 {
		return nil, &pdf.MalformedFileError{Err: errUnexpectedEOF}
	}
	rest := s.Rest()
	if len(rest) != 1 {
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("expected one object, found %d", len(rest)),
		}
	}
	return rest[0], nil
}

// ReadObjects reads a sequence of indirect objects of the form
//
//	n g obj <object> endobj
//
// into a new object store.  Stream objects are written as a dictionary,
// followed by the keyword "stream", an end-of-line marker, the data and the
// keyword "endstream".
func ReadObjects(data []byte) (*pdf.Store, error) {
	store := pdf.NewStore()

	s := New(data)
	s.allowRefs = true

	var ref pdf.Reference
	var stm *pdf.Stream
	var inObj bool
	var errOut error
	s.Scan()(func(op string, args []pdf.Object) bool {
		switch op {
		case "obj":
			if inObj || len(args) != 2 {
				errOut = errors.New("unexpected \"obj\"")
				return false
			}
			num, ok1 := args[0].(pdf.Integer)
			gen, ok2 := args[1].(pdf.Integer)
			if !ok1 || !ok2 || num < 0 || gen < 0 {
				errOut = errors.New("invalid object number")
				return false
			}
			ref = pdf.NewReference(uint32(num), uint16(gen))
			inObj = true
			stm = nil
		case "stream":
			dict, ok := singleDict(args)
			if !inObj || !ok {
				errOut = errors.New("unexpected \"stream\"")
				return false
			}
			body, err := s.readStreamData()
			if err != nil {
				errOut = err
				return false
			}
			stm = &pdf.Stream{Dict: dict, Data: body}
		case "endobj":
			if !inObj {
				errOut = errors.New("unexpected \"endobj\"")
				return false
			}
			var obj pdf.Object
			switch {
			case stm != nil && len(args) == 0:
				obj = stm
			case stm == nil && len(args) == 1:
				obj = args[0]
			default:
				errOut = fmt.Errorf("malformed object %s", ref)
				return false
			}
			store.Set(ref, obj)
			inObj = false
		default:
			errOut = fmt.Errorf("unexpected operator %q", op)
			return false
		}
		return true
	})
	if s.err != nil {
		return nil, s.err
	}
	if errOut != nil {
		return nil, &pdf.MalformedFileError{Pos: s.Offset(), Err: errOut}
	}
	if inObj {
		return nil, &pdf.MalformedFileError{Err: errUnexpectedEOF}
	}
	return store, nil
}

func singleDict(args []pdf.Object) (pdf.Dict, bool) {
	if len(args) != 1 {
		return nil, false
	}
	dict, ok := args[0].(pdf.Dict)
	return dict, ok
}

// readStreamData reads the data of a stream object.  On entry, the "stream"
// keyword has been consumed.
func (s *Scanner) readStreamData() ([]byte, error) {
	if s.pos < len(s.data) && s.data[s.pos] == '\r' {
		s.pos++
	}
	if s.pos < len(s.data) && s.data[s.pos] == '\n' {
		s.pos++
	}
	start := s.pos
	idx := bytes.Index(s.data[start:], []byte("endstream"))
	if idx < 0 {
		return nil, errors.New("missing \"endstream\"")
	}
	end := start + idx
	s.pos = end + len("endstream")

	// strip the end-of-line marker before "endstream"
	if end > start && s.data[end-1] == '\n' {
		end--
	}
	if end > start && s.data[end-1] == '\r' {
		end--
	}
	return s.data[start:end:end], nil
}
