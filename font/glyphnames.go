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
	"strconv"
	"strings"
)

// glyphText maps glyph names to Unicode text.
//
// The table covers the glyph names used by the standard Latin encodings,
// together with a selection of names from the Adobe Glyph List which are
// common in PDF files.  Names of the form "uniXXXX", "uXXXX[XX]" and
// composite names are handled by [GlyphText].
var glyphText = map[string]rune{
	"A":              'A',
	"AE":             'Æ',
	"Aacute":         'Á',
	"Acircumflex":    'Â',
	"Adieresis":      'Ä',
	"Agrave":         'À',
	"Aogonek":        'Ą',
	"Aring":          'Å',
	"Atilde":         'Ã',
	"B":              'B',
	"C":              'C',
	"Cacute":         'Ć',
	"Ccaron":         'Č',
	"Ccedilla":       'Ç',
	"D":              'D',
	"Dcroat":         'Đ',
	"Delta":          '∆',
	"E":              'E',
	"Eacute":         'É',
	"Ecaron":         'Ě',
	"Ecircumflex":    'Ê',
	"Edieresis":      'Ë',
	"Egrave":         'È',
	"Eogonek":        'Ę',
	"Eth":            'Ð',
	"Euro":           '€',
	"F":              'F',
	"G":              'G',
	"Gbreve":         'Ğ',
	"H":              'H',
	"I":              'I',
	"Iacute":         'Í',
	"Icircumflex":    'Î',
	"Idieresis":      'Ï',
	"Idotaccent":     'İ',
	"Igrave":         'Ì',
	"J":              'J',
	"K":              'K',
	"L":              'L',
	"Lslash":         'Ł',
	"M":              'M',
	"N":              'N',
	"Nacute":         'Ń',
	"Ncaron":         'Ň',
	"Ntilde":         'Ñ',
	"O":              'O',
	"OE":             'Œ',
	"Oacute":         'Ó',
	"Ocircumflex":    'Ô',
	"Odblacute":      'Ő',
	"Odieresis":      'Ö',
	"Ograve":         'Ò',
	"Omega":          'Ω',
	"Oslash":         'Ø',
	"Otilde":         'Õ',
	"P":              'P',
	"Q":              'Q',
	"R":              'R',
	"Rcaron":         'Ř',
	"S":              'S',
	"Sacute":         'Ś',
	"Scaron":         'Š',
	"Scedilla":       'Ş',
	"T":              'T',
	"Tcaron":         'Ť',
	"Thorn":          'Þ',
	"U":              'U',
	"Uacute":         'Ú',
	"Ucircumflex":    'Û',
	"Udblacute":      'Ű',
	"Udieresis":      'Ü',
	"Ugrave":         'Ù',
	"Uring":          'Ů',
	"V":              'V',
	"W":              'W',
	"X":              'X',
	"Y":              'Y',
	"Yacute":         'Ý',
	"Ydieresis":      'Ÿ',
	"Z":              'Z',
	"Zacute":         'Ź',
	"Zcaron":         'Ž',
	"Zdotaccent":     'Ż',
	"a":              'a',
	"aacute":         'á',
	"acircumflex":    'â',
	"acute":          '´',
	"adieresis":      'ä',
	"ae":             'æ',
	"afii00208":      '―',
	"afii61352":      '№',
	"agrave":         'à',
	"alpha":          'α',
	"ampersand":      '&',
	"aogonek":        'ą',
	"aring":          'å',
	"arrowdown":      '↓',
	"arrowleft":      '←',
	"arrowright":     '→',
	"arrowup":        '↑',
	"asciicircum":    '^',
	"asciitilde":     '~',
	"asterisk":       '*',
	"at":             '@',
	"atilde":         'ã',
	"b":              'b',
	"backslash":      '\\',
	"bar":            '|',
	"beta":           'β',
	"braceleft":      '{',
	"braceright":     '}',
	"bracketleft":    '[',
	"bracketright":   ']',
	"breve":          '˘',
	"brokenbar":      '¦',
	"bullet":         '•',
	"c":              'c',
	"cacute":         'ć',
	"caron":          'ˇ',
	"ccaron":         'č',
	"ccedilla":       'ç',
	"cedilla":        '¸',
	"cent":           '¢',
	"checkmark":      '✓',
	"circumflex":     'ˆ',
	"colon":          ':',
	"comma":          ',',
	"copyright":      '©',
	"currency":       '¤',
	"d":              'd',
	"dagger":         '†',
	"daggerdbl":      '‡',
	"dcroat":         'đ',
	"degree":         '°',
	"delta":          'δ',
	"dieresis":       '¨',
	"divide":         '÷',
	"dollar":         '$',
	"dotaccent":      '˙',
	"dotlessi":       'ı',
	"dotlessj":       'ȷ',
	"e":              'e',
	"eacute":         'é',
	"ecaron":         'ě',
	"ecircumflex":    'ê',
	"edieresis":      'ë',
	"egrave":         'è',
	"eight":          '8',
	"ellipsis":       '…',
	"emdash":         '—',
	"endash":         '–',
	"eogonek":        'ę',
	"epsilon":        'ε',
	"equal":          '=',
	"eth":            'ð',
	"exclam":         '!',
	"exclamdown":     '¡',
	"f":              'f',
	"ff":             'ﬀ',
	"ffi":            'ﬃ',
	"ffl":            'ﬄ',
	"fi":             'ﬁ',
	"five":           '5',
	"fl":             'ﬂ',
	"florin":         'ƒ',
	"four":           '4',
	"fraction":       '⁄',
	"g":              'g',
	"gamma":          'γ',
	"gbreve":         'ğ',
	"germandbls":     'ß',
	"grave":          '`',
	"greater":        '>',
	"guillemotleft":  '«',
	"guillemotright": '»',
	"guilsinglleft":  '‹',
	"guilsinglright": '›',
	"h":              'h',
	"hungarumlaut":   '˝',
	"hyphen":         '-',
	"i":              'i',
	"iacute":         'í',
	"icircumflex":    'î',
	"idieresis":      'ï',
	"igrave":         'ì',
	"j":              'j',
	"k":              'k',
	"l":              'l',
	"lambda":         'λ',
	"less":           '<',
	"logicalnot":     '¬',
	"lslash":         'ł',
	"m":              'm',
	"macron":         '¯',
	"middot":         '·',
	"minus":          '−',
	"mu":             'µ',
	"multiply":       '×',
	"n":              'n',
	"nacute":         'ń',
	"nbspace":        '\u00a0',
	"ncaron":         'ň',
	"nine":           '9',
	"ntilde":         'ñ',
	"numbersign":     '#',
	"o":              'o',
	"oacute":         'ó',
	"ocircumflex":    'ô',
	"odblacute":      'ő',
	"odieresis":      'ö',
	"oe":             'œ',
	"ogonek":         '˛',
	"ograve":         'ò',
	"omega":          'ω',
	"one":            '1',
	"onehalf":        '½',
	"onequarter":     '¼',
	"onesuperior":    '¹',
	"ordfeminine":    'ª',
	"ordmasculine":   'º',
	"oslash":         'ø',
	"otilde":         'õ',
	"p":              'p',
	"paragraph":      '¶',
	"parenleft":      '(',
	"parenright":     ')',
	"percent":        '%',
	"period":         '.',
	"periodcentered": '·',
	"perthousand":    '‰',
	"phi":            'φ',
	"plus":           '+',
	"plusminus":      '±',
	"q":              'q',
	"question":       '?',
	"questiondown":   '¿',
	"quotedbl":       '"',
	"quotedblbase":   '„',
	"quotedblleft":   '“',
	"quotedblright":  '”',
	"quoteleft":      '‘',
	"quotereversed":  '‛',
	"quoteright":     '’',
	"quotesinglbase": '‚',
	"quotesingle":    '\'',
	"r":              'r',
	"rcaron":         'ř',
	"registered":     '®',
	"ring":           '˚',
	"s":              's',
	"sacute":         'ś',
	"scaron":         'š',
	"scedilla":       'ş',
	"section":        '§',
	"semicolon":      ';',
	"seven":          '7',
	"sfthyphen":      '\u00ad',
	"sigma":          'σ',
	"six":            '6',
	"slash":          '/',
	"space":          ' ',
	"sterling":       '£',
	"t":              't',
	"tau":            'τ',
	"tcaron":         'ť',
	"theta":          'θ',
	"thorn":          'þ',
	"three":          '3',
	"threequarters":  '¾',
	"threesuperior":  '³',
	"tilde":          '˜',
	"trademark":      '™',
	"two":            '2',
	"twosuperior":    '²',
	"u":              'u',
	"uacute":         'ú',
	"ucircumflex":    'û',
	"udblacute":      'ű',
	"udieresis":      'ü',
	"ugrave":         'ù',
	"underscore":     '_',
	"uni00A0":        '\u00a0',
	"uring":          'ů',
	"v":              'v',
	"w":              'w',
	"x":              'x',
	"y":              'y',
	"yacute":         'ý',
	"ydieresis":      'ÿ',
	"yen":            '¥',
	"z":              'z',
	"zacute":         'ź',
	"zcaron":         'ž',
	"zdotaccent":     'ż',
	"zero":           '0',
}

// GlyphText returns the Unicode text for a glyph name.
// If the name cannot be interpreted, the empty string is returned.
func GlyphText(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		// suffixes like ".sc" or ".alt" denote variants of a glyph
		name = name[:i]
	}
	if name == "" {
		return ""
	}
	if strings.Contains(name, "_") {
		var b strings.Builder
		for _, part := range strings.Split(name, "_") {
			b.WriteString(GlyphText(part))
		}
		return b.String()
	}

	if r, ok := glyphText[name]; ok {
		return string(r)
	}

	if strings.HasPrefix(name, "uni") && len(name) >= 7 && (len(name)-3)%4 == 0 {
		var b strings.Builder
		for s := name[3:]; s != ""; s = s[4:] {
			x, err := strconv.ParseUint(s[:4], 16, 16)
			if err != nil || x >= 0xD800 && x < 0xE000 {
				return ""
			}
			b.WriteRune(rune(x))
		}
		return b.String()
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		x, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil && x <= 0x10FFFF && (x < 0xD800 || x >= 0xE000) {
			return string(rune(x))
		}
	}
	return ""
}

// standardEncoding is the built-in encoding of the standard Latin fonts.
// Codes which are not listed map to ".notdef".
var standardEncoding = [256]string{
	0o40: "space",
	0o41: "exclam",
	0o42: "quotedbl",
	0o43: "numbersign",
	0o44: "dollar",
	0o45: "percent",
	0o46: "ampersand",
	0o47: "quoteright",
	0o50: "parenleft",
	0o51: "parenright",
	0o52: "asterisk",
	0o53: "plus",
	0o54: "comma",
	0o55: "hyphen",
	0o56: "period",
	0o57: "slash",
	0o60: "zero",
	0o61: "one",
	0o62: "two",
	0o63: "three",
	0o64: "four",
	0o65: "five",
	0o66: "six",
	0o67: "seven",
	0o70: "eight",
	0o71: "nine",
	0o72: "colon",
	0o73: "semicolon",
	0o74: "less",
	0o75: "equal",
	0o76: "greater",
	0o77: "question",
	0o100: "at",
	0o101: "A",
	0o102: "B",
	0o103: "C",
	0o104: "D",
	0o105: "E",
	0o106: "F",
	0o107: "G",
	0o110: "H",
	0o111: "I",
	0o112: "J",
	0o113: "K",
	0o114: "L",
	0o115: "M",
	0o116: "N",
	0o117: "O",
	0o120: "P",
	0o121: "Q",
	0o122: "R",
	0o123: "S",
	0o124: "T",
	0o125: "U",
	0o126: "V",
	0o127: "W",
	0o130: "X",
	0o131: "Y",
	0o132: "Z",
	0o133: "bracketleft",
	0o134: "backslash",
	0o135: "bracketright",
	0o136: "asciicircum",
	0o137: "underscore",
	0o140: "quoteleft",
	0o141: "a",
	0o142: "b",
	0o143: "c",
	0o144: "d",
	0o145: "e",
	0o146: "f",
	0o147: "g",
	0o150: "h",
	0o151: "i",
	0o152: "j",
	0o153: "k",
	0o154: "l",
	0o155: "m",
	0o156: "n",
	0o157: "o",
	0o160: "p",
	0o161: "q",
	0o162: "r",
	0o163: "s",
	0o164: "t",
	0o165: "u",
	0o166: "v",
	0o167: "w",
	0o170: "x",
	0o171: "y",
	0o172: "z",
	0o173: "braceleft",
	0o174: "bar",
	0o175: "braceright",
	0o176: "asciitilde",
	0o241: "exclamdown",
	0o242: "cent",
	0o243: "sterling",
	0o244: "fraction",
	0o245: "yen",
	0o246: "florin",
	0o247: "section",
	0o250: "currency",
	0o251: "quotesingle",
	0o252: "quotedblleft",
	0o253: "guillemotleft",
	0o254: "guilsinglleft",
	0o255: "guilsinglright",
	0o256: "fi",
	0o257: "fl",
	0o261: "endash",
	0o262: "dagger",
	0o263: "daggerdbl",
	0o264: "periodcentered",
	0o266: "paragraph",
	0o267: "bullet",
	0o270: "quotesinglbase",
	0o271: "quotedblbase",
	0o272: "quotedblright",
	0o273: "guillemotright",
	0o274: "ellipsis",
	0o275: "perthousand",
	0o277: "questiondown",
	0o301: "grave",
	0o302: "acute",
	0o303: "circumflex",
	0o304: "tilde",
	0o305: "macron",
	0o306: "breve",
	0o307: "dotaccent",
	0o310: "dieresis",
	0o312: "ring",
	0o313: "cedilla",
	0o315: "hungarumlaut",
	0o316: "ogonek",
	0o317: "caron",
	0o320: "emdash",
	0o341: "AE",
	0o343: "ordfeminine",
	0o350: "Lslash",
	0o351: "Oslash",
	0o352: "OE",
	0o353: "ordmasculine",
	0o361: "ae",
	0o365: "dotlessi",
	0o370: "lslash",
	0o371: "oslash",
	0o372: "oe",
	0o373: "germandbls",
}
