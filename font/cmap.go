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

package font

import (
	"bytes"
	"errors"

	"golang.org/x/text/encoding/unicode"

	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/scanner"
)

// A CMap maps character codes to CIDs or to Unicode text.
// CMaps are read from embedded CMap streams and ToUnicode streams.
//
// See section 9.7.5 of ISO 32000-2:2020.
type CMap struct {
	Name      pdf.Name
	CodeSpace []CodeRange
	Vertical  bool

	cidSingle map[string]uint32
	cidRanges []cidRange
	uniSingle map[string]string
	uniRanges []uniRange
}

// CodeRange is a range of character codes of a fixed length.
// For code space ranges, each byte of a code must lie between the
// corresponding bytes of Low and High.
type CodeRange struct {
	Low, High []byte
}

type cidRange struct {
	CodeRange
	first uint32
}

type uniRange struct {
	CodeRange
	base   []byte   // UTF-16 text for Low, incremented for later codes
	values []string // explicit values, if base is nil
}

// ReadCMap parses the contents of a CMap stream.
// Entries which cannot be interpreted are skipped.
func ReadCMap(data []byte) (*CMap, error) {
	res := &CMap{
		cidSingle: make(map[string]uint32),
		uniSingle: make(map[string]string),
	}

	var lastName pdf.Name
	s := scanner.New(data)
	ok := s.Scan()(func(op string, args []pdf.Object) bool {
		switch op {
		case "def":
			if len(args) == 2 {
				key, _ := args[0].(pdf.Name)
				switch key {
				case "CMapName":
					res.Name, _ = args[1].(pdf.Name)
				case "WMode":
					wmode, _ := args[1].(pdf.Integer)
					res.Vertical = wmode == 1
				}
			}
		case "endcodespacerange":
			for i := 0; i+1 < len(args); i += 2 {
				if r, ok := makeRange(args[i], args[i+1]); ok {
					res.CodeSpace = append(res.CodeSpace, r)
				}
			}
		case "endcidchar":
			for i := 0; i+1 < len(args); i += 2 {
				code, ok1 := args[i].(pdf.String)
				cid, ok2 := args[i+1].(pdf.Integer)
				if ok1 && ok2 && cid >= 0 {
					res.cidSingle[string(code)] = uint32(cid)
				}
			}
		case "endcidrange":
			for i := 0; i+2 < len(args); i += 3 {
				r, ok1 := makeRange(args[i], args[i+1])
				cid, ok2 := args[i+2].(pdf.Integer)
				if ok1 && ok2 && cid >= 0 {
					res.cidRanges = append(res.cidRanges, cidRange{r, uint32(cid)})
				}
			}
		case "endbfchar":
			for i := 0; i+1 < len(args); i += 2 {
				code, ok := args[i].(pdf.String)
				if !ok {
					continue
				}
				switch dst := args[i+1].(type) {
				case pdf.String:
					res.uniSingle[string(code)] = utf16Text(dst)
				case pdf.Name:
					res.uniSingle[string(code)] = GlyphText(string(dst))
				}
			}
		case "endbfrange":
			for i := 0; i+2 < len(args); i += 3 {
				r, ok := makeRange(args[i], args[i+1])
				if !ok {
					continue
				}
				switch dst := args[i+2].(type) {
				case pdf.String:
					res.uniRanges = append(res.uniRanges, uniRange{
						CodeRange: r,
						base:      bytes.Clone(dst),
					})
				case pdf.Array:
					values := make([]string, len(dst))
					for j, v := range dst {
						if str, ok := v.(pdf.String); ok {
							values[j] = utf16Text(str)
						}
					}
					res.uniRanges = append(res.uniRanges, uniRange{
						CodeRange: r,
						values:    values,
					})
				}
			}
		case "usecmap":
			if len(args) == 1 {
				lastName, _ = args[0].(pdf.Name)
			}
		}
		return true
	})
	if !ok {
		return nil, s.Err()
	}

	if len(res.CodeSpace) == 0 && lastName == "Identity-H" {
		res.CodeSpace = []CodeRange{{Low: []byte{0, 0}, High: []byte{255, 255}}}
	}
	if res.isEmpty() {
		return nil, errEmptyCMap
	}
	return res, nil
}

var errEmptyCMap = errors.New("CMap has no mappings")

func (c *CMap) isEmpty() bool {
	return len(c.CodeSpace) == 0 && len(c.cidSingle) == 0 && len(c.cidRanges) == 0 &&
		len(c.uniSingle) == 0 && len(c.uniRanges) == 0
}

func makeRange(lowObj, highObj pdf.Object) (CodeRange, bool) {
	low, ok1 := lowObj.(pdf.String)
	high, ok2 := highObj.(pdf.String)
	if !ok1 || !ok2 || len(low) != len(high) || len(low) == 0 || len(low) > 4 {
		return CodeRange{}, false
	}
	return CodeRange{Low: bytes.Clone(low), High: bytes.Clone(high)}, true
}

// contains checks whether every byte of code lies in the range given by the
// corresponding bytes of Low and High.
func (r CodeRange) contains(code []byte) bool {
	if len(code) != len(r.Low) {
		return false
	}
	for i, b := range code {
		if b < r.Low[i] || b > r.High[i] {
			return false
		}
	}
	return true
}

// offset returns the position of code within the range, where codes are
// interpreted as big-endian integers.
func (r CodeRange) offset(code []byte) (int, bool) {
	if len(code) != len(r.Low) {
		return 0, false
	}
	x, lo, hi := codeValue(code), codeValue(r.Low), codeValue(r.High)
	if x < lo || x > hi {
		return 0, false
	}
	return int(x - lo), true
}

func codeValue(code []byte) uint32 {
	var x uint32
	for _, b := range code {
		x = x<<8 | uint32(b)
	}
	return x
}

// Next returns the length of the first character code in s.
// If no code space range matches, the shortest code length of the CMap
// is used.
func (c *CMap) Next(s []byte, defaultLength int) int {
	if len(c.CodeSpace) == 0 {
		return min(defaultLength, len(s))
	}
	shortest := 4
	for n := 1; n <= 4 && n <= len(s); n++ {
		for _, r := range c.CodeSpace {
			if len(r.Low) == n && r.contains(s[:n]) {
				return n
			}
		}
	}
	for _, r := range c.CodeSpace {
		shortest = min(shortest, len(r.Low))
	}
	return min(shortest, len(s))
}

// CID returns the CID for a character code.
func (c *CMap) CID(code []byte) (uint32, bool) {
	if cid, ok := c.cidSingle[string(code)]; ok {
		return cid, true
	}
	for _, r := range c.cidRanges {
		if k, ok := r.offset(code); ok {
			return r.first + uint32(k), true
		}
	}
	return 0, false
}

// Text returns the Unicode text for a character code.
func (c *CMap) Text(code []byte) (string, bool) {
	if text, ok := c.uniSingle[string(code)]; ok {
		return text, true
	}
	for _, r := range c.uniRanges {
		k, ok := r.offset(code)
		if !ok {
			continue
		}
		if r.base == nil {
			if k < len(r.values) {
				return r.values[k], true
			}
			return "", false
		}
		return utf16Text(increment(r.base, k)), true
	}
	return "", false
}

// increment adds k to the last bytes of a big-endian number.
func increment(base []byte, k int) []byte {
	res := bytes.Clone(base)
	carry := k
	for i := len(res) - 1; i >= 0 && carry > 0; i-- {
		sum := int(res[i]) + carry
		res[i] = byte(sum)
		carry = sum >> 8
	}
	return res
}

var utf16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func utf16Text(s pdf.String) string {
	text, err := utf16.NewDecoder().Bytes(s)
	if err != nil {
		return ""
	}
	return string(text)
}
