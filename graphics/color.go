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
	"strconv"
	"strings"

	"seehuhn.de/go/pdfinterp/pdf"
)

// Names of the device color spaces.
const (
	DeviceGray pdf.Name = "DeviceGray"
	DeviceRGB  pdf.Name = "DeviceRGB"
	DeviceCMYK pdf.Name = "DeviceCMYK"
	Pattern    pdf.Name = "Pattern"
)

// A Color is a color value together with the name of its color space.
//
// For device color spaces, Space is one of [DeviceGray], [DeviceRGB] and
// [DeviceCMYK].  For color spaces defined in the resource dictionary, Space
// is the resource name and Family is the color space family (for example
// "ICCBased" or "Separation").  Colors are treated as immutable values.
//
// NumComponents is the number of numeric operands the color operators
// take in this color space.  For the Pattern color space this is the
// number of components of the underlying color space, or zero for
// colored patterns.
type Color struct {
	Space         pdf.Name
	Family        pdf.Name
	Values        []float64
	Pattern       pdf.Name // pattern name for the Pattern color space
	NumComponents int
}

// Gray returns a color in the DeviceGray color space.
func Gray(g float64) Color {
	return Color{Space: DeviceGray, Family: DeviceGray, Values: []float64{g}, NumComponents: 1}
}

// RGB returns a color in the DeviceRGB color space.
func RGB(r, g, b float64) Color {
	return Color{Space: DeviceRGB, Family: DeviceRGB, Values: []float64{r, g, b}, NumComponents: 3}
}

// CMYK returns a color in the DeviceCMYK color space.
func CMYK(c, m, y, k float64) Color {
	return Color{Space: DeviceCMYK, Family: DeviceCMYK, Values: []float64{c, m, y, k}, NumComponents: 4}
}

// Clone returns a copy of the color which shares no memory with c.
func (c Color) Clone() Color {
	c.Values = append([]float64(nil), c.Values...)
	return c
}

func (c Color) String() string {
	var parts []string
	for _, x := range c.Values {
		parts = append(parts, strconv.FormatFloat(x, 'g', 4, 64))
	}
	if c.Pattern != "" {
		parts = append(parts, "/"+string(c.Pattern))
	}
	return string(c.Space) + "(" + strings.Join(parts, " ") + ")"
}

// InitialColor returns the initial color for a color space family,
// as used by the "CS" and "cs" operators.
//
// See section 8.6.5.1 of ISO 32000-2:2020.
func InitialColor(space, family pdf.Name, numComponents int) Color {
	c := Color{Space: space, Family: family, NumComponents: numComponents}
	switch family {
	case DeviceCMYK:
		c.Values = []float64{0, 0, 0, 1}
	case Pattern:
		// no components
	case "Separation", "DeviceN":
		c.Values = make([]float64, numComponents)
		for i := range c.Values {
			c.Values[i] = 1
		}
	case "Lab":
		// the nearest valid value to 0 is used for each component
		c.Values = make([]float64, 3)
	default:
		c.Values = make([]float64, numComponents)
	}
	return c
}
