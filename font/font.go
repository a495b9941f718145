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
	"errors"
	"strings"

	"seehuhn.de/go/pdfinterp/pdf"
)

// Font represents a PDF font, as used by the "Tf" operator.
//
// All lengths are given in text space units for a font size of 1.
type Font interface {
	// BaseFont returns the PostScript name of the font, without
	// subset tag.  The empty string is returned if the name is not known.
	BaseFont() string

	// Decode splits a PDF string into glyphs.
	Decode(s pdf.String) []Glyph

	// Vertical reports whether the font uses vertical writing mode.
	Vertical() bool

	// Ascent returns the height of the font above the baseline.
	Ascent() float64

	// Descent returns the depth of the font below the baseline.
	// This is normally a negative number.
	Descent() float64

	// SpaceWidth returns the width of a space character.
	// If the font has no space glyph, an estimate is returned.
	SpaceWidth() float64
}

// Glyph is a single character code within a PDF string.
type Glyph struct {
	// Code is the character code, as it appears in the string.
	Code pdf.String

	// Text is the Unicode text represented by the glyph, or the empty
	// string if the text is not known.
	Text string

	// Width is the displacement of the glyph.  For fonts in vertical
	// writing mode this is the vertical displacement, which is normally
	// negative.
	Width float64

	// IsSpace is true for the single-byte code 32.  Word spacing is
	// applied after these glyphs.
	IsSpace bool
}

var errNotFont = errors.New("not a font dictionary")

// Read constructs a font from a font dictionary.
func Read(r pdf.Getter, obj pdf.Object) (Font, error) {
	dict, err := pdf.GetDict(r, obj)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, &pdf.MalformedFileError{Err: errNotFont}
	}
	if tp, _ := pdf.GetName(r, dict["Type"]); tp != "" && tp != "Font" {
		return nil, &pdf.MalformedFileError{Err: errNotFont}
	}

	subtype, err := pdf.GetName(r, dict["Subtype"])
	if err != nil {
		return nil, err
	}
	switch subtype {
	case "Type0":
		return readComposite(r, dict)
	default:
		return readSimple(r, dict, subtype)
	}
}

// stripSubsetTag removes a subset tag of the form "ABCDEF+" from a font
// name.
func stripSubsetTag(name string) string {
	if len(name) > 7 && name[6] == '+' {
		for _, c := range name[:6] {
			if c < 'A' || c > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}

// descriptor holds the entries of a font descriptor dictionary which are
// used for text geometry.
type descriptor struct {
	ascent, descent float64
	missingWidth    float64
	symbolic        bool
}

func readDescriptor(r pdf.Getter, obj pdf.Object) *descriptor {
	dict, err := pdf.GetDict(r, obj)
	if err != nil || dict == nil {
		return nil
	}
	res := &descriptor{}
	res.ascent, _ = pdf.GetNumber(r, dict["Ascent"])
	res.descent, _ = pdf.GetNumber(r, dict["Descent"])
	res.missingWidth, _ = pdf.GetNumber(r, dict["MissingWidth"])
	flags, _ := pdf.GetInt(r, dict["Flags"])
	res.symbolic = flags&4 != 0
	return res
}

// geometry holds the vertical metrics shared by all font types.
type geometry struct {
	baseFont   string
	ascent     float64
	descent    float64
	spaceWidth float64
}

func (g *geometry) BaseFont() string { return g.baseFont }
func (g *geometry) Ascent() float64 { return g.ascent }
func (g *geometry) Descent() float64 { return g.descent }
func (g *geometry) SpaceWidth() float64 { return g.spaceWidth }

func baseFontName(r pdf.Getter, obj pdf.Object) string {
	name, _ := pdf.GetName(r, obj)
	return stripSubsetTag(strings.TrimSpace(string(name)))
}
