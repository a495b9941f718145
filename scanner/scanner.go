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

// Package scanner breaks PDF content streams into statements.
//
// A statement is a list of operands followed by an operator.  Inline
// images (BI ... ID ... EI) are returned as a single "EI" statement with
// one [*pdf.InlineImage] operand.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/pdfinterp/pdf"
)

// A Scanner breaks a content stream into tokens.
//
// Unbalanced array and dictionary delimiters are ignored.  Lexical errors
// inside strings, names and inline images stop the scan, and are reported
// by [Scanner.Err].
type Scanner struct {
	data []byte
	pos  int

	stack []*scanStackFrame
	args  []pdf.Object

	opPos int
	err   error

	// allowRefs enables "n g R" indirect references, which are not allowed
	// inside content streams.
	allowRefs bool
}

type scanStackFrame struct {
	data   []pdf.Object
	isDict bool
}

// New returns a new scanner that reads from data.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Scan return an iterator over all statements in the content stream.
// The iterator returns true if the end of the data was reached without
// error.
//
// The []pdf.Object slice passed to the yield function is owned by the scanner
// and is only valid until the yield returns.
func (s *Scanner) Scan() func(yield func(op string, args []pdf.Object) bool) bool {
	return func(yield func(string, []pdf.Object) bool) bool {
		s.err = nil
		s.stack = s.stack[:0]
		s.args = s.args[:0]

	tokenLoop:
		for {
			tokPos := s.skipWhiteSpace()
			if tokPos >= len(s.data) {
				break
			}
			obj, err := s.nextToken()
			if err != nil {
				s.err = &pdf.MalformedFileError{Pos: int64(tokPos), Err: err}
				return false
			}

			switch obj {
			case operator("<<"):
				s.stack = append(s.stack, &scanStackFrame{isDict: true})
				continue tokenLoop
			case operator(">>"):
				if len(s.stack) == 0 || !s.stack[len(s.stack)-1].isDict {
					// unexpected '>>'
					continue tokenLoop
				}
				entry := s.stack[len(s.stack)-1]
				s.stack = s.stack[:len(s.stack)-1]
				obj = makeDict(entry.data)
			case operator("["):
				s.stack = append(s.stack, &scanStackFrame{})
				continue tokenLoop
			case operator("]"):
				if len(s.stack) == 0 || s.stack[len(s.stack)-1].isDict {
					// unexpected "]"
					continue tokenLoop
				}
				obj = pdf.Array(s.stack[len(s.stack)-1].data)
				s.stack = s.stack[:len(s.stack)-1]
			case operator("R"):
				if s.allowRefs {
					if s.makeReference() {
						continue tokenLoop
					}
				}
			}

			op, isOp := obj.(operator)
			if !isOp {
				if len(s.stack) > 0 { // we are inside a dict or array
					frame := s.stack[len(s.stack)-1]
					frame.data = append(frame.data, obj)
				} else {
					s.args = append(s.args, obj)
				}
				continue
			}

			// An operator ends all open arrays and dictionaries.
			s.stack = s.stack[:0]
			s.opPos = tokPos

			if op == "BI" {
				img, err := s.readInlineImage()
				if err != nil {
					s.err = &pdf.MalformedFileError{Pos: int64(tokPos), Err: err}
					return false
				}
				s.args = append(s.args[:0], img)
				op = "EI"
			}

			args := s.args
			if len(args) == 0 {
				args = nil
			}
			cont := yield(string(op), args)
			s.args = s.args[:0]
			if !cont {
				return false
			}
		}

		return true
	}
}

// Offset returns the byte offset of the most recently returned operator.
// For inline images, this is the position of the "BI" operator.
func (s *Scanner) Offset() int64 {
	return int64(s.opPos)
}

// Err returns the error which stopped the most recent scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Rest returns the operands which were not followed by an operator.
func (s *Scanner) Rest() []pdf.Object {
	return s.args
}

// makeReference replaces two integers at the end of the current operand
// list by an indirect reference.
func (s *Scanner) makeReference() bool {
	list := &s.args
	if len(s.stack) > 0 {
		list = &s.stack[len(s.stack)-1].data
	}
	n := len(*list)
	if n < 2 {
		return false
	}
	num, ok1 := (*list)[n-2].(pdf.Integer)
	gen, ok2 := (*list)[n-1].(pdf.Integer)
	if !ok1 || !ok2 || num < 0 || num > math.MaxUint32 || gen < 0 || gen > math.MaxUint16 {
		return false
	}
	*list = append((*list)[:n-2], pdf.NewReference(uint32(num), uint16(gen)))
	return true
}

func makeDict(data []pdf.Object) pdf.Dict {
	dict := pdf.Dict{}
	for i := 0; i+1 < len(data); i += 2 {
		key, ok := data[i].(pdf.Name)
		if !ok {
			// invalid key
			continue
		}
		val := data[i+1]
		if val == nil {
			continue
		}
		dict[key] = val
	}
	return dict
}

func (s *Scanner) nextToken() (pdf.Object, error) {
	b := s.data[s.pos]
	switch b {
	case '(':
		return s.readString()
	case '<':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
			s.pos += 2
			return operator("<<"), nil
		}
		return s.readHexString()
	case '>':
		if s.pos+1 < len(s.data) && s.data[s.pos+1] == '>' {
			s.pos += 2
			return operator(">>"), nil
		}
		s.pos++
		return operator(">"), nil
	case '/':
		return s.readName()
	}

	start := s.pos
	s.pos++
	if class[b] == regular {
		for s.pos < len(s.data) && class[s.data[s.pos]] == regular {
			s.pos++
		}
	}
	opBytes := s.data[start:s.pos]

	if x, err := parseNumber(opBytes); err == nil {
		return x, nil
	}

	switch string(opBytes) {
	case "false":
		return pdf.Bool(false), nil
	case "true":
		return pdf.Bool(true), nil
	case "null":
		return nil, nil
	}
	return operator(opBytes), nil
}

func (s *Scanner) readString() (pdf.String, error) {
	s.pos++ // skip '('

	var res []byte
	bracketLevel := 1
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		s.pos++
		switch b {
		case '(':
			bracketLevel++
			res = append(res, b)
		case ')':
			bracketLevel--
			if bracketLevel == 0 {
				return pdf.String(res), nil
			}
			res = append(res, b)
		case '\\':
			if s.pos >= len(s.data) {
				return nil, errUnexpectedEOF
			}
			b = s.data[s.pos]
			s.pos++
			switch b {
			case 'n':
				res = append(res, '\n')
			case 'r':
				res = append(res, '\r')
			case 't':
				res = append(res, '\t')
			case 'b':
				res = append(res, '\b')
			case 'f':
				res = append(res, '\f')
			case 10: // LF
				// line continuation
			case 13: // CR or CR+LF
				if s.pos < len(s.data) && s.data[s.pos] == 10 {
					s.pos++
				}
			case '0', '1', '2', '3', '4', '5', '6', '7': // octal
				oct := b - '0'
				for i := 0; i < 2 && s.pos < len(s.data); i++ {
					c := s.data[s.pos]
					if c < '0' || c > '7' {
						break
					}
					s.pos++
					oct = oct*8 + (c - '0')
				}
				res = append(res, oct)
			default: // includes \(, \) and \\
				res = append(res, b)
			}
		default:
			res = append(res, b)
		}
	}
	return nil, errUnexpectedEOF
}

func (s *Scanner) readHexString() (pdf.String, error) {
	s.pos++ // skip '<'

	var res []byte
	first := true
	var hi byte
	for {
		if s.pos >= len(s.data) {
			return nil, errUnexpectedEOF
		}
		b := s.data[s.pos]
		s.pos++

		var lo byte
		switch {
		case b == '>':
			if !first {
				res = append(res, hi)
			}
			return pdf.String(res), nil
		case class[b] == space:
			continue
		case b >= '0' && b <= '9':
			lo = b - '0'
		case b >= 'A' && b <= 'F':
			lo = b - 'A' + 10
		case b >= 'a' && b <= 'f':
			lo = b - 'a' + 10
		default:
			return nil, fmt.Errorf("invalid character %q in hex string", b)
		}
		if first {
			hi = lo << 4
			first = false
		} else {
			res = append(res, hi|lo)
			first = true
		}
	}
}

// readName reads a PDF name object (including the leading slash).
func (s *Scanner) readName() (pdf.Name, error) {
	s.pos++ // skip '/'

	var name []byte
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		if class[b] != regular {
			break
		}
		s.pos++
		if b != '#' {
			name = append(name, b)
			continue
		}
		if s.pos+2 > len(s.data) {
			return "", errUnexpectedEOF
		}
		hi, ok1 := hexDigit(s.data[s.pos])
		lo, ok2 := hexDigit(s.data[s.pos+1])
		if !ok1 || !ok2 {
			return "", errors.New("invalid #-escape in name")
		}
		name = append(name, hi<<4|lo)
		s.pos += 2
	}
	return pdf.Name(name), nil
}

// readInlineImage reads the image dictionary and the image data of an
// inline image.  On entry, the "BI" operator has been consumed.
func (s *Scanner) readInlineImage() (*pdf.InlineImage, error) {
	var entries []pdf.Object
	var stack []*scanStackFrame
dictLoop:
	for {
		tokPos := s.skipWhiteSpace()
		if tokPos >= len(s.data) {
			return nil, errUnexpectedEOF
		}
		obj, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		switch obj {
		case operator("ID"):
			if len(stack) > 0 {
				return nil, errors.New("unterminated array in inline image")
			}
			break dictLoop
		case operator("["):
			stack = append(stack, &scanStackFrame{})
			continue
		case operator("]"):
			if len(stack) == 0 {
				continue
			}
			obj = pdf.Array(stack[len(stack)-1].data)
			stack = stack[:len(stack)-1]
		case operator("<<"):
			stack = append(stack, &scanStackFrame{isDict: true})
			continue
		case operator(">>"):
			if len(stack) == 0 {
				continue
			}
			obj = makeDict(stack[len(stack)-1].data)
			stack = stack[:len(stack)-1]
		}
		if op, ok := obj.(operator); ok {
			return nil, fmt.Errorf("unexpected operator %q in inline image", string(op))
		}
		if len(stack) > 0 {
			stack[len(stack)-1].data = append(stack[len(stack)-1].data, obj)
		} else {
			entries = append(entries, obj)
		}
	}

	// exactly one white-space character follows the ID operator
	if s.pos < len(s.data) && class[s.data[s.pos]] == space {
		s.pos++
	}
	start := s.pos
	for i := start; i+1 < len(s.data); i++ {
		if s.data[i] != 'E' || s.data[i+1] != 'I' {
			continue
		}
		if i > start && class[s.data[i-1]] != space {
			continue
		}
		if i+2 < len(s.data) && class[s.data[i+2]] == regular {
			continue
		}
		end := i
		if end > start && class[s.data[end-1]] == space {
			end--
		}
		s.pos = i + 2
		return &pdf.InlineImage{
			Dict: makeDict(entries),
			Data: s.data[start:end:end],
		}, nil
	}
	return nil, errors.New("missing EI after inline image data")
}

// skipWhiteSpace skips all input (including comments) until a non-whitespace
// character is found.  The function returns the new position.
func (s *Scanner) skipWhiteSpace() int {
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		if class[b] == space {
			s.pos++
		} else if b == '%' {
			// skip everything from a % to the end of the line.
			for s.pos < len(s.data) && s.data[s.pos] != 10 && s.data[s.pos] != 13 {
				s.pos++
			}
		} else {
			break
		}
	}
	return s.pos
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func parseNumber(s []byte) (pdf.Object, error) {
	x, err := strconv.ParseInt(string(s), 10, 64)
	if err == nil {
		return pdf.Integer(x), nil
	}

	isSimple := len(s) > 0
	for i, c := range s {
		if i == 0 && (c == '+' || c == '-') {
			continue
		}
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			isSimple = false
			break
		}
	}

	if isSimple {
		y, err := strconv.ParseFloat(string(s), 64)
		if err == nil && !math.IsInf(y, 0) && !math.IsNaN(y) {
			return pdf.Real(y), nil
		}
	}

	return nil, errParse
}

var (
	errParse         = errors.New("parse error")
	errUnexpectedEOF = errors.New("unexpected end of content stream")
)

// operator is a PDF operator found in a content stream.
type operator pdf.Name

// PDF implements the [pdf.Object] interface.
func (x operator) PDF(w io.Writer) error {
	_, err := w.Write([]byte(x))
	return err
}

type characterClass byte

const (
	regular characterClass = iota
	space
	delimiter
)

var class [256]characterClass

func init() {
	for _, c := range []byte{0, '\t', '\n', '\f', '\r', ' '} {
		class[c] = space
	}
	for _, c := range []byte("()<>[]{}/%") {
		class[c] = delimiter
	}
}
