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

// Package font provides the font information needed to interpret text in
// PDF content streams.
//
// A [Font] splits PDF strings into character codes, and gives the width
// and Unicode text for every code.  Simple fonts (Type1, MMType1, TrueType
// and Type3) and composite fonts (Type0) are supported.  When a simple font
// based on one of the standard 14 fonts does not specify glyph widths, the
// widths from the Adobe font metrics of that font are used.
//
// Fonts are immutable once constructed and can be shared between
// goroutines.  A [Loader] caches fonts by their object reference.
package font
