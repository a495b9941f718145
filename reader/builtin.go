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

// builtin returns the built-in implementation of a content stream
// operator, or nil for unknown operators.
//
// Operators are listed in the order of table 50 ("Operator categories") in
// ISO 32000-2:2020.
func builtin(op string) OperatorHandler {
	switch op {
	// general graphics state
	case "w", "J", "j", "M", "d", "ri", "i":
		return opLineStyle
	case "gs":
		return opExtGState
	case "q":
		return opPush
	case "Q":
		return opPop

	// special graphics state
	case "cm":
		return opTransform

	// path construction
	case "m", "l", "c", "v", "y", "h", "re":
		return opPathConstruct

	// path painting
	case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n":
		return opPathPaint

	// clipping paths
	case "W", "W*":
		return opClip

	// text objects
	case "BT":
		return opBeginText
	case "ET":
		return opEndText

	// text state
	case "Tc", "Tw", "Tz", "TL", "Tr", "Ts":
		return opTextState
	case "Tf":
		return opFont

	// text positioning
	case "Td", "TD", "Tm", "T*":
		return opTextPosition

	// text showing
	case "Tj", "'", "\"":
		return opShowText
	case "TJ":
		return opShowTextArray

	// type 3 fonts
	case "d0", "d1":
		return opGlyphWidth

	// colour
	case "CS", "cs":
		return opColorSpace
	case "SC", "SCN", "sc", "scn":
		return opColor
	case "G", "g", "RG", "rg", "K", "k":
		return opDeviceColor

	// shading patterns
	case "sh":
		return opShading

	// inline images; the scanner reports "BI ... ID ... EI" as one "EI"
	case "EI":
		return opInlineImage

	// XObjects
	case "Do":
		return opXObject

	// marked content
	case "MP", "DP":
		return opMarkPoint
	case "BMC", "BDC":
		return opBeginMarked
	case "EMC":
		return opEndMarked

	// compatibility
	case "BX":
		return opBeginCompat
	case "EX":
		return opEndCompat
	}
	return nil
}
