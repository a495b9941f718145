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
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// replacement holds a Go font which supplies vertical metrics for fonts
// which specify neither a font descriptor nor a glyph bounding box.  The
// font is parsed on first use.
type replacement struct {
	ttf []byte

	once    sync.Once
	ascent  float64
	descent float64
}

var goRegular = &replacement{ttf: goregular.TTF}

// ppem is the scale used for metrics queries.  With this scale, the
// results are in units of 1/1000 text space unit.
var ppem = fixed.I(1000)

func (f *replacement) load() {
	f.once.Do(func() {
		font, err := sfnt.Parse(f.ttf)
		if err != nil {
			// The Go fonts are known to be well-formed.
			panic(err)
		}

		var buf sfnt.Buffer
		m, err := font.Metrics(&buf, ppem, xfont.HintingNone)
		if err == nil {
			f.ascent = toTextSpace(m.Ascent)
			f.descent = -toTextSpace(m.Descent)
		}
	})
}

func (f *replacement) Ascent() float64 {
	f.load()
	return f.ascent
}

func (f *replacement) Descent() float64 {
	f.load()
	return f.descent
}

func toTextSpace(x fixed.Int26_6) float64 {
	return float64(x) / 64 / 1000
}
