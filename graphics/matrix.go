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

package graphics

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/pdf"
)

// ErrSingular is returned when a transformation matrix cannot be inverted.
var ErrSingular = errors.New("singular matrix")

// Det returns the determinant of the linear part of M.
func Det(M matrix.Matrix) float64 {
	return M[0]*M[3] - M[1]*M[2]
}

// Invert computes the inverse of the transformation matrix M.
// If M is not invertible, [ErrSingular] is returned.
func Invert(M matrix.Matrix) (matrix.Matrix, error) {
	det := Det(M)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, ErrSingular
	}
	invDet := 1 / det
	return matrix.Matrix{
		M[3] * invDet, -M[1] * invDet,
		-M[2] * invDet, M[0] * invDet,
		(M[2]*M[5] - M[3]*M[4]) * invDet,
		(M[1]*M[4] - M[0]*M[5]) * invDet,
	}, nil
}

// ApplyLinear applies only the linear part of M to v, ignoring the
// translation.  This is used to transform distances and directions.
func ApplyLinear(M matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: M[0]*v.X + M[2]*v.Y,
		Y: M[1]*v.X + M[3]*v.Y,
	}
}

// MatrixFromArray converts the operands of a "cm" or "Tm" operator, or the
// value of a /Matrix entry, into a [matrix.Matrix].
func MatrixFromArray(r pdf.Getter, obj pdf.Object) (matrix.Matrix, error) {
	a, err := pdf.GetMatrix(r, obj)
	if err != nil {
		return matrix.Matrix{}, err
	}
	var M matrix.Matrix
	copy(M[:], a)
	return M, nil
}

// Dot returns the scalar product of a and b.
func Dot(a, b vec.Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z-component of the cross product of a and b.
func Cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
