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

// Package graphics provides the geometry and graphics state types used
// while interpreting PDF content streams.
//
// The package contains the graphics state ([State]), paths ([Path],
// [Subpath], [Segment]), colors ([Color]), graphics state parameter
// dictionaries ([ExtGState]), and helpers for transformation matrices.
// Matrices use the matrix.Matrix type from seehuhn.de/go/geom, with the
// same element order as the "cm" operator.  Composition follows the PDF
// convention: A.Mul(B) first applies A and then B.
package graphics
