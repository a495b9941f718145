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
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfinterp/pdf"
)

// Composite is a Type0 font with a CIDFont as its descendant.
//
// Character codes are mapped to CIDs using the font's encoding CMap.  For
// the predefined CMaps other than Identity-H and Identity-V, two-byte codes
// are assumed and codes are used as CIDs directly.
type Composite struct {
	geometry

	encoding  *CMap // nil for the identity encodings
	vertical  bool
	toUnicode *CMap

	widths        map[uint32]float64
	defaultWidth  float64
	vWidths       map[uint32]float64
	defaultVWidth float64
}

var _ Font = (*Composite)(nil)

// Vertical implements the [Font] interface.
func (f *Composite) Vertical() bool {
	return f.vertical
}

// Decode implements the [Font] interface.
func (f *Composite) Decode(s pdf.String) []Glyph {
	var res []Glyph
	for len(s) > 0 {
		n := 2
		if f.encoding != nil {
			n = f.encoding.Next(s, 2)
		}
		n = min(n, len(s))
		code := s[:n:n]
		s = s[n:]

		cid, ok := uint32(0), false
		if f.encoding != nil {
			cid, ok = f.encoding.CID(code)
		}
		if !ok {
			cid = codeValue(code)
		}

		g := Glyph{
			Code:    code,
			Width:   f.width(cid),
			IsSpace: n == 1 && code[0] == ' ',
		}
		if f.toUnicode != nil {
			g.Text, _ = f.toUnicode.Text(code)
		}
		res = append(res, g)
	}
	return res
}

func (f *Composite) width(cid uint32) float64 {
	if f.vertical {
		if w, ok := f.vWidths[cid]; ok {
			return w
		}
		return f.defaultVWidth
	}
	if w, ok := f.widths[cid]; ok {
		return w
	}
	return f.defaultWidth
}

func readComposite(r pdf.Getter, dict pdf.Dict) (*Composite, error) {
	res := &Composite{
		widths:        make(map[uint32]float64),
		vWidths:       make(map[uint32]float64),
		defaultWidth:  1,
		defaultVWidth: -1,
	}
	res.baseFont = baseFontName(r, dict["BaseFont"])

	switch enc := resolveOrNil(r, dict["Encoding"]).(type) {
	case pdf.Name:
		res.vertical = strings.HasSuffix(string(enc), "-V")
	case *pdf.Stream:
		data, err := pdf.DecodeStream(r, enc)
		if err != nil {
			return nil, pdf.Wrap(err, "Encoding")
		}
		cmap, err := ReadCMap(data)
		if err != nil {
			return nil, pdf.Wrap(fmt.Errorf("encoding CMap: %w", err), "Encoding")
		}
		res.encoding = cmap
		res.vertical = cmap.Vertical
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("invalid Type0 encoding %s", pdf.Format(enc)),
		}
	}

	descendants, err := pdf.GetArray(r, dict["DescendantFonts"])
	if err != nil {
		return nil, pdf.Wrap(err, "DescendantFonts")
	}
	if len(descendants) != 1 {
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("expected one descendant font, got %d", len(descendants)),
		}
	}
	cidFont, err := pdf.GetDict(r, descendants[0])
	if err != nil {
		return nil, pdf.Wrap(err, "DescendantFonts")
	}

	if dw, err := pdf.GetNumber(r, cidFont["DW"]); err == nil && cidFont["DW"] != nil {
		res.defaultWidth = dw / 1000
	}
	readW(r, cidFont["W"], func(cid uint32, w []float64) {
		res.widths[cid] = w[0] / 1000
	}, 1)
	if dw2, err := pdf.GetArray(r, cidFont["DW2"]); err == nil && len(dw2) == 2 {
		if w1y, err := pdf.GetNumber(r, dw2[1]); err == nil {
			res.defaultVWidth = w1y / 1000
		}
	}
	readW(r, cidFont["W2"], func(cid uint32, w []float64) {
		res.vWidths[cid] = w[0] / 1000
	}, 3)

	desc := readDescriptor(r, cidFont["FontDescriptor"])
	if desc != nil && (desc.ascent != 0 || desc.descent != 0) {
		res.ascent = desc.ascent / 1000
		res.descent = desc.descent / 1000
	} else {
		res.ascent = goRegular.Ascent()
		res.descent = goRegular.Descent()
	}

	if s, _ := pdf.GetStream(r, dict["ToUnicode"]); s != nil {
		if data, err := pdf.DecodeStream(r, s); err == nil {
			res.toUnicode, _ = ReadCMap(data)
		}
	}

	res.spaceWidth = compositeSpaceWidth(res)
	return res, nil
}

// readW decodes a /W or /W2 array.  Every entry consists of n numbers.
// The array consists of elements of the forms
//
//	c [w1 w2 ...]
//	cFirst cLast w
func readW(r pdf.Getter, obj pdf.Object, set func(cid uint32, w []float64), n int) {
	a, err := pdf.GetArray(r, obj)
	if err != nil {
		return
	}
	for len(a) >= 2 {
		first, err := pdf.GetInt(r, a[0])
		if err != nil || first < 0 {
			return
		}
		if ws, ok := resolveOrNil(r, a[1]).(pdf.Array); ok {
			for i := 0; i+n <= len(ws); i += n {
				w, ok := numbers(r, ws[i:i+n])
				if !ok {
					return
				}
				set(uint32(first)+uint32(i/n), w)
			}
			a = a[2:]
			continue
		}

		if len(a) < 2+n {
			return
		}
		last, err := pdf.GetInt(r, a[1])
		if err != nil || last < first || last-first > 0xFFFF {
			return
		}
		w, ok := numbers(r, a[2:2+n])
		if !ok {
			return
		}
		for cid := first; cid <= last; cid++ {
			set(uint32(cid), w)
		}
		a = a[2+n:]
	}
}

func numbers(r pdf.Getter, a pdf.Array) ([]float64, bool) {
	res := make([]float64, len(a))
	for i, obj := range a {
		x, err := pdf.GetNumber(r, obj)
		if err != nil {
			return nil, false
		}
		res[i] = x
	}
	return res, true
}

// compositeSpaceWidth finds the width of a code which maps to a space.
// If no such code is known, the average of the explicit glyph widths is
// used.
func compositeSpaceWidth(f *Composite) float64 {
	for _, code := range []pdf.String{{0, ' '}, {' '}, {0, 3}} {
		if f.toUnicode == nil {
			break
		}
		if text, ok := f.toUnicode.Text(code); ok && text == " " {
			gg := f.Decode(code)
			if len(gg) == 1 && gg[0].Width > 0 {
				return gg[0].Width
			}
		}
	}
	if f.toUnicode != nil {
		var spaces []string
		for code, text := range f.toUnicode.uniSingle {
			if text == " " {
				spaces = append(spaces, code)
			}
		}
		slices.Sort(spaces)
		for _, code := range spaces {
			gg := f.Decode(pdf.String(code))
			if len(gg) == 1 && gg[0].Width > 0 {
				return gg[0].Width
			}
		}
	}

	sum, n := 0.0, 0
	for _, w := range f.widths {
		if w > 0 {
			sum += w
			n++
		}
	}
	if n == 0 {
		return f.defaultWidth
	}
	return sum / float64(n)
}
