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
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// standardMetrics holds the glyph widths and vertical metrics of one of
// the standard 14 fonts, as given in the Adobe AFM files.  Widths are in
// glyph space units (1/1000 text space unit) and are keyed by the Unicode
// value of the glyph.
type standardMetrics struct {
	widths  map[rune]uint16
	ascent  int16
	descent int16
}

// latinExtra lists the non-ASCII glyphs of the Latin text fonts which
// are not composed of a base letter and an accent.  Accented letters take
// the width of their base letter.
var latinExtra = []rune{
	'‘', '’', '“', '”', '‚', '„',
	'–', '—', '•', '…', '†', '‡', '‰',
	'‹', '›', '«', '»', '¡', '¿',
	'¢', '£', '¥', '€', '§', '°', '©', '®', '™',
	'ﬁ', 'ﬂ', 'Æ', 'æ', 'Ø', 'ø', 'ß', 'Œ', 'œ',
	'×', '÷', '±', '·', '¶', 'µ', '½', '¼', '¾',
	'ª', 'º', '¦', 'ı', 'Ł', 'ł', 'ƒ', '¬',
	'Ð', 'ð', 'Þ', 'þ', '¤',
}

// latin builds the width table of a text font from the widths of the
// printable ASCII characters (starting at U+0020) and of the glyphs in
// latinExtra.
func latin(ascii [95]uint16, extra []uint16) map[rune]uint16 {
	if len(extra) != len(latinExtra) {
		panic("font: inconsistent width table")
	}
	res := make(map[rune]uint16, len(ascii)+len(extra))
	for i, w := range ascii {
		res[rune(' '+i)] = w
	}
	for i, w := range extra {
		res[latinExtra[i]] = w
	}
	return res
}

func monospaced(w uint16) map[rune]uint16 {
	var ascii [95]uint16
	for i := range ascii {
		ascii[i] = w
	}
	extra := make([]uint16, len(latinExtra))
	for i := range extra {
		extra[i] = w
	}
	return latin(ascii, extra)
}

var (
	courier = &standardMetrics{
		widths:  monospaced(600),
		ascent:  629,
		descent: -157,
	}
	helvetica = &standardMetrics{
		widths: latin([95]uint16{
			278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
			556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
			1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
			667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
			333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
			556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
		}, []uint16{
			222, 222, 333, 333, 222, 333,
			556, 1000, 350, 1000, 556, 556, 1000,
			333, 333, 556, 556, 333, 611,
			556, 556, 556, 556, 556, 400, 737, 737, 1000,
			500, 500, 1000, 889, 778, 611, 611, 1000, 944,
			584, 584, 584, 278, 537, 556, 834, 834, 834,
			370, 365, 260, 278, 556, 222, 556, 584,
			722, 556, 667, 556, 556,
		}),
		ascent:  718,
		descent: -207,
	}
	helveticaBold = &standardMetrics{
		widths: latin([95]uint16{
			278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
			556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
			975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
			667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
			333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
			611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
		}, []uint16{
			278, 278, 500, 500, 278, 500,
			556, 1000, 350, 1000, 556, 556, 1000,
			333, 333, 556, 556, 333, 611,
			556, 556, 556, 556, 556, 400, 737, 737, 1000,
			611, 611, 1000, 889, 778, 611, 611, 1000, 944,
			584, 584, 584, 278, 556, 611, 834, 834, 834,
			370, 365, 280, 278, 611, 278, 556, 584,
			722, 611, 667, 611, 556,
		}),
		ascent:  718,
		descent: -207,
	}
	timesRoman = &standardMetrics{
		widths: latin([95]uint16{
			250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
			500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
			921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
			556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
			333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
			500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
		}, []uint16{
			333, 333, 444, 444, 333, 444,
			500, 1000, 350, 1000, 500, 500, 1000,
			333, 333, 500, 500, 333, 444,
			500, 500, 500, 500, 500, 400, 760, 760, 980,
			556, 556, 889, 667, 722, 500, 500, 889, 722,
			564, 564, 564, 250, 453, 500, 750, 750, 750,
			276, 310, 200, 278, 611, 278, 500, 564,
			722, 500, 556, 500, 500,
		}),
		ascent:  683,
		descent: -217,
	}
	timesBold = &standardMetrics{
		widths: latin([95]uint16{
			250, 333, 555, 500, 500, 1000, 833, 278, 333, 333, 500, 570, 250, 333, 250, 278,
			500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
			930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
			611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
			333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
			556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
		}, []uint16{
			333, 333, 500, 500, 333, 500,
			500, 1000, 350, 1000, 500, 500, 1000,
			333, 333, 500, 500, 333, 500,
			500, 500, 500, 500, 500, 400, 747, 747, 1000,
			556, 556, 1000, 722, 778, 500, 556, 1000, 722,
			570, 570, 570, 250, 540, 556, 750, 750, 750,
			300, 330, 220, 278, 667, 278, 500, 570,
			722, 500, 611, 556, 500,
		}),
		ascent:  683,
		descent: -217,
	}
	timesItalic = &standardMetrics{
		widths: latin([95]uint16{
			250, 333, 420, 500, 500, 833, 778, 214, 333, 333, 500, 675, 250, 333, 250, 278,
			500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 675, 675, 675, 500,
			920, 611, 611, 667, 722, 611, 611, 722, 722, 333, 444, 667, 556, 833, 667, 722,
			611, 722, 611, 500, 556, 722, 611, 833, 611, 556, 556, 389, 278, 389, 422, 500,
			333, 500, 500, 444, 500, 444, 278, 500, 500, 278, 278, 444, 278, 722, 500, 500,
			500, 500, 389, 389, 278, 500, 444, 667, 444, 444, 389, 400, 275, 400, 541,
		}, []uint16{
			333, 333, 556, 556, 333, 556,
			500, 889, 350, 889, 500, 500, 1000,
			333, 333, 500, 500, 389, 500,
			500, 500, 500, 500, 500, 400, 760, 760, 980,
			500, 500, 889, 667, 722, 500, 500, 944, 667,
			675, 675, 675, 250, 523, 500, 750, 750, 750,
			276, 310, 275, 278, 556, 278, 500, 675,
			722, 500, 611, 500, 500,
		}),
		ascent:  683,
		descent: -217,
	}
	timesBoldItalic = &standardMetrics{
		widths: latin([95]uint16{
			250, 389, 555, 500, 500, 833, 778, 278, 333, 333, 500, 570, 250, 333, 250, 278,
			500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
			832, 667, 667, 667, 722, 667, 667, 722, 778, 389, 500, 667, 611, 889, 722, 722,
			611, 722, 667, 556, 611, 722, 667, 889, 667, 611, 611, 333, 278, 333, 570, 500,
			333, 500, 500, 444, 500, 444, 333, 500, 556, 278, 278, 500, 278, 778, 556, 500,
			500, 500, 389, 389, 278, 556, 444, 667, 500, 444, 389, 348, 220, 348, 570,
		}, []uint16{
			333, 333, 500, 500, 333, 500,
			500, 1000, 350, 1000, 500, 500, 1000,
			333, 333, 500, 500, 389, 500,
			500, 500, 500, 500, 500, 400, 747, 747, 1000,
			556, 556, 944, 722, 722, 500, 500, 944, 722,
			570, 570, 570, 250, 500, 576, 750, 750, 750,
			266, 300, 220, 278, 611, 278, 500, 606,
			722, 500, 611, 500, 500,
		}),
		ascent:  683,
		descent: -217,
	}
	symbol = &standardMetrics{
		widths: map[rune]uint16{
			' ': 250, '!': 333, '#': 500, '%': 833, '&': 778, '(': 333, ')': 333,
			'+': 549, ',': 250, '.': 250, '/': 278,
			'0': 500, '1': 500, '2': 500, '3': 500, '4': 500,
			'5': 500, '6': 500, '7': 500, '8': 500, '9': 500,
			':': 278, ';': 278, '<': 549, '=': 549, '>': 549, '?': 444,
			'[': 333, ']': 333, '_': 500, '{': 480, '|': 200, '}': 480,

			'Α': 722, 'Β': 667, 'Χ': 722, 'Δ': 612, 'Ε': 611, 'Φ': 763,
			'Γ': 603, 'Η': 722, 'Ι': 333, 'Κ': 722, 'Λ': 686, 'Μ': 889,
			'Ν': 722, 'Ο': 722, 'Π': 768, 'Θ': 741, 'Ρ': 556, 'Σ': 592,
			'Τ': 611, 'Υ': 690, 'Ω': 768, 'Ξ': 645, 'Ψ': 795, 'Ζ': 611,
			'α': 631, 'β': 549, 'χ': 549, 'δ': 494, 'ε': 439, 'φ': 521,
			'γ': 411, 'η': 603, 'ι': 329, 'κ': 549, 'λ': 549, 'μ': 576,
			'ν': 521, 'ο': 549, 'π': 549, 'θ': 521, 'ρ': 549, 'σ': 603,
			'τ': 439, 'υ': 576, 'ω': 686, 'ξ': 493, 'ψ': 686, 'ζ': 494,
			'ς': 439, 'ϑ': 631, 'ϕ': 603, 'ϖ': 713, 'ϒ': 620,

			'∀': 713, '∃': 549, '∋': 439, '∗': 500, '−': 549, '≅': 549,
			'∴': 863, '⊥': 658, '∼': 549, '′': 247, '″': 411, '≤': 549,
			'≥': 549, '∞': 713, 'ƒ': 500, '♣': 753, '♦': 753, '♥': 753,
			'♠': 753, '↔': 1042, '←': 987, '↑': 603, '→': 987, '↓': 603,
			'°': 400, '±': 549, '∝': 713, '∂': 494, '•': 460, '÷': 549,
			'≠': 549, '≡': 549, '≈': 549, '…': 1000, '×': 549, '∅': 823,
			'∩': 768, '∪': 768, '⊃': 713, '⊇': 713, '⊂': 713, '⊆': 713,
			'∈': 713, '∉': 713, '∇': 713, '∏': 823, '√': 549, '¬': 713,
			'∧': 603, '∨': 603, '⇔': 1042, '⇒': 987, '〈': 329, '〉': 329,
			'∑': 713, '∫': 274, '©': 790, '®': 790, '™': 890,
		},
		ascent:  1010,
		descent: -293,
	}
	zapfDingbats = &standardMetrics{
		widths:  map[rune]uint16{' ': 278},
		ascent:  820,
		descent: -143,
	}
)

var standardFonts = map[string]*standardMetrics{
	"Courier":             courier,
	"Courier-Bold":        courier,
	"Courier-BoldOblique": courier,
	"Courier-Oblique":     courier,

	"Helvetica":             helvetica,
	"Helvetica-Bold":        helveticaBold,
	"Helvetica-BoldOblique": helveticaBold,
	"Helvetica-Oblique":     helvetica,

	"Times-Roman":      timesRoman,
	"Times-Bold":       timesBold,
	"Times-BoldItalic": timesBoldItalic,
	"Times-Italic":     timesItalic,

	"Symbol":       symbol,
	"ZapfDingbats": zapfDingbats,
}

// aliases lists alternative names which are used for the standard fonts.
var aliases = map[string]string{
	"Arial":                        "Helvetica",
	"Arial,Bold":                   "Helvetica-Bold",
	"Arial,BoldItalic":             "Helvetica-BoldOblique",
	"Arial,Italic":                 "Helvetica-Oblique",
	"ArialMT":                      "Helvetica",
	"Arial-BoldMT":                 "Helvetica-Bold",
	"Arial-BoldItalicMT":           "Helvetica-BoldOblique",
	"Arial-ItalicMT":               "Helvetica-Oblique",
	"CourierNew":                   "Courier",
	"CourierNew,Bold":              "Courier-Bold",
	"CourierNew,BoldItalic":        "Courier-BoldOblique",
	"CourierNew,Italic":            "Courier-Oblique",
	"CourierNewPSMT":               "Courier",
	"Times":                        "Times-Roman",
	"TimesNewRoman":                "Times-Roman",
	"TimesNewRoman,Bold":           "Times-Bold",
	"TimesNewRoman,BoldItalic":     "Times-BoldItalic",
	"TimesNewRoman,Italic":         "Times-Italic",
	"TimesNewRomanPSMT":            "Times-Roman",
	"TimesNewRomanPS-BoldMT":       "Times-Bold",
	"TimesNewRomanPS-BoldItalicMT": "Times-BoldItalic",
	"TimesNewRomanPS-ItalicMT":     "Times-Italic",
}

// IsStandard reports whether name is one of the standard 14 fonts, or
// a common alias for one of these fonts.
func IsStandard(name string) bool {
	return lookupStandard(name) != nil
}

func lookupStandard(name string) *standardMetrics {
	name = stripSubsetTag(name)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if f, ok := standardFonts[name]; ok {
		return f
	}
	// "Helvetica,Bold" is sometimes used in place of "Helvetica-Bold"
	if strings.Contains(name, ",") {
		if f, ok := standardFonts[strings.Replace(name, ",", "-", 1)]; ok {
			return f
		}
	}
	return nil
}

// Width returns the advance width of the glyph for r, in text space units.
// If the font has no glyph for r, 0 is returned.
func (f *standardMetrics) Width(r rune) float64 {
	if w, ok := f.widths[r]; ok {
		return float64(w) / 1000
	}
	if w, ok := f.widths[baseRune(r)]; ok {
		return float64(w) / 1000
	}
	return 0
}

func (f *standardMetrics) Ascent() float64 {
	return float64(f.ascent) / 1000
}

func (f *standardMetrics) Descent() float64 {
	return float64(f.descent) / 1000
}

// baseRune maps r to a rune with the same glyph width: the base letter of
// an accented letter, or the ordinary form of a space or hyphen variant.
func baseRune(r rune) rune {
	switch r {
	case '\u00a0':
		return ' '
	case '\u00ad', '\u2010', '\u2011':
		return '-'
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	return base
}
