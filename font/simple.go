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
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/pdfinterp/pdf"
)

// Simple is a font with single-byte character codes.  This is used for the
// font types Type1, MMType1, TrueType and Type3.
type Simple struct {
	geometry

	// Widths holds the glyph widths for all codes.
	Widths [256]float64

	// Text holds the Unicode text for all codes.
	Text [256]string
}

var _ Font = (*Simple)(nil)

// Decode implements the [Font] interface.
func (f *Simple) Decode(s pdf.String) []Glyph {
	res := make([]Glyph, len(s))
	for i, c := range s {
		res[i] = Glyph{
			Code:    pdf.String{c},
			Text:    f.Text[c],
			Width:   f.Widths[c],
			IsSpace: c == ' ',
		}
	}
	return res
}

// Vertical implements the [Font] interface.
// Simple fonts always use horizontal writing mode.
func (f *Simple) Vertical() bool {
	return false
}

func readSimple(r pdf.Getter, dict pdf.Dict, subtype pdf.Name) (*Simple, error) {
	res := &Simple{}
	res.baseFont = baseFontName(r, dict["BaseFont"])
	if subtype == "Type3" {
		name, _ := pdf.GetName(r, dict["Name"])
		res.baseFont = string(name)
	}

	std := lookupStandard(res.baseFont)
	desc := readDescriptor(r, dict["FontDescriptor"])

	// Glyph widths are given in glyph space.  For Type3 fonts, the font
	// matrix maps glyph space to text space; for all other fonts the
	// map is a scaling by 1/1000.
	toTextX := func(x float64) float64 { return x / 1000 }
	toTextY := toTextX
	if subtype == "Type3" {
		fm, err := pdf.GetMatrix(r, dict["FontMatrix"])
		if err == nil {
			toTextX = func(x float64) float64 { return x * fm[0] }
			toTextY = func(y float64) float64 { return y * fm[3] }
		}
	}

	// text
	symbolic := res.baseFont == "Symbol" || res.baseFont == "ZapfDingbats"
	if desc != nil && desc.symbolic && std == nil {
		symbolic = true
	}
	base := defaultEncoding(subtype, symbolic)
	var differences pdf.Array
	switch enc := resolveOrNil(r, dict["Encoding"]).(type) {
	case pdf.Name:
		if b := builtinEncoding(enc); b != nil {
			base = b
		}
	case pdf.Dict:
		name, _ := pdf.GetName(r, enc["BaseEncoding"])
		if b := builtinEncoding(name); b != nil {
			base = b
		}
		differences, _ = pdf.GetArray(r, enc["Differences"])
	}
	for c := range 256 {
		if base != nil {
			res.Text[c] = base(byte(c))
		}
	}
	applyDifferences(r, &res.Text, differences)

	if s, _ := pdf.GetStream(r, dict["ToUnicode"]); s != nil {
		if data, err := pdf.DecodeStream(r, s); err == nil {
			if toUni, err := ReadCMap(data); err == nil {
				for c := range 256 {
					if text, ok := toUni.Text([]byte{byte(c)}); ok {
						res.Text[c] = text
					}
				}
			}
		}
	}

	// widths
	missing := 0.0
	if desc != nil {
		missing = toTextX(desc.missingWidth)
	}
	widths, _ := pdf.GetArray(r, dict["Widths"])
	if widths != nil {
		firstChar, _ := pdf.GetInt(r, dict["FirstChar"])
		for c := range 256 {
			res.Widths[c] = missing
			k := c - int(firstChar)
			if k >= 0 && k < len(widths) {
				if w, err := pdf.GetNumber(r, widths[k]); err == nil {
					res.Widths[c] = toTextX(w)
				}
			}
		}
	} else if std != nil {
		for c := range 256 {
			res.Widths[c] = missing
			if rr, _ := utf8.DecodeRuneInString(res.Text[c]); rr != utf8.RuneError {
				if w := std.Width(rr); w > 0 {
					res.Widths[c] = w
				}
			}
		}
	} else {
		for c := range 256 {
			res.Widths[c] = missing
		}
	}

	// vertical metrics
	switch {
	case subtype == "Type3":
		bbox, err := pdf.GetArray(r, dict["FontBBox"])
		if err == nil && len(bbox) == 4 {
			lly, _ := pdf.GetNumber(r, bbox[1])
			ury, _ := pdf.GetNumber(r, bbox[3])
			res.ascent = toTextY(ury)
			res.descent = toTextY(lly)
		}
	case desc != nil && (desc.ascent != 0 || desc.descent != 0):
		res.ascent = toTextY(desc.ascent)
		res.descent = toTextY(desc.descent)
	case std != nil:
		res.ascent = std.Ascent()
		res.descent = std.Descent()
	default:
		res.ascent = goRegular.Ascent()
		res.descent = goRegular.Descent()
	}

	res.spaceWidth = simpleSpaceWidth(res)
	return res, nil
}

// simpleSpaceWidth returns the width of the first code which maps to a
// space, or the average glyph width if there is no such code.
func simpleSpaceWidth(f *Simple) float64 {
	if f.Text[' '] == " " && f.Widths[' '] > 0 {
		return f.Widths[' ']
	}
	for c, text := range f.Text {
		if text == " " && f.Widths[c] > 0 {
			return f.Widths[c]
		}
	}
	sum, n := 0.0, 0
	for _, w := range f.Widths {
		if w > 0 {
			sum += w
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// applyDifferences updates the text for the codes listed in a
// /Differences array.
func applyDifferences(r pdf.Getter, text *[256]string, differences pdf.Array) {
	code := -1
	for _, obj := range differences {
		switch x := resolveOrNil(r, obj).(type) {
		case pdf.Integer:
			code = int(x)
		case pdf.Real:
			code = int(x)
		case pdf.Name:
			if code >= 0 && code < 256 {
				text[code] = GlyphText(string(x))
				code++
			}
		}
	}
}

type encodingFunc func(c byte) string

func builtinEncoding(name pdf.Name) encodingFunc {
	switch name {
	case "WinAnsiEncoding":
		return charmapEncoding(charmap.Windows1252)
	case "MacRomanEncoding":
		return charmapEncoding(charmap.Macintosh)
	case "StandardEncoding":
		return standardText
	default:
		return nil
	}
}

// defaultEncoding returns the encoding used when a font dictionary has no
// /Encoding entry, or when the entry leaves the base encoding unspecified.
// Symbolic fonts use a built-in encoding which cannot be represented
// here, so no text is assigned.
func defaultEncoding(subtype pdf.Name, symbolic bool) encodingFunc {
	switch {
	case symbolic || subtype == "Type3":
		return nil
	case subtype == "TrueType":
		return charmapEncoding(charmap.Windows1252)
	default:
		return standardText
	}
}

func standardText(c byte) string {
	return GlyphText(standardEncoding[c])
}

func charmapEncoding(cm *charmap.Charmap) encodingFunc {
	return func(c byte) string {
		if c < 32 {
			return ""
		}
		r := cm.DecodeByte(c)
		if r == utf8.RuneError {
			return ""
		}
		return string(r)
	}
}

// resolveOrNil resolves obj, and returns nil if resolving fails.
func resolveOrNil(r pdf.Getter, obj pdf.Object) pdf.Object {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil
	}
	return obj
}
