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

import (
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

// Page holds the data needed to interpret the content of a page.
type Page struct {
	Content   []byte
	Resources *resource.Dict
	CropBox   rect.Rect
}

// letter is used if a page has neither a MediaBox nor a CropBox.
var letter = rect.Rect{URx: 612, URy: 792}

// ReadPage reads the content streams and the resources of a page object.
// Inheritable attributes are taken from the page tree if needed.
//
// See section 7.7.3 of ISO 32000-2:2020.
func ReadPage(r pdf.Getter, page pdf.Object) (*Page, error) {
	pageDict, err := pdf.GetDict(r, page)
	if err != nil {
		return nil, err
	}
	if pageDict == nil {
		return nil, &pdf.MalformedFileError{Err: errors.New("missing page dictionary")}
	}

	resObj, err := inherited(r, pageDict, "Resources")
	if err != nil {
		return nil, err
	}
	res, err := resource.New(r, resObj)
	if err != nil {
		return nil, err
	}

	box := letter
	for _, key := range []pdf.Name{"MediaBox", "CropBox"} {
		obj, err := inherited(r, pageDict, key)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			continue
		}
		b, err := readRect(r, obj)
		if err != nil {
			return nil, pdf.Wrap(err, string(key))
		}
		box = b
	}

	content, err := readContents(r, pageDict["Contents"])
	if err != nil {
		return nil, err
	}

	return &Page{Content: content, Resources: res, CropBox: box}, nil
}

// inherited looks up a page attribute, following the Parent links of the
// page tree.
func inherited(r pdf.Getter, dict pdf.Dict, key pdf.Name) (pdf.Object, error) {
	for range 32 {
		if obj, ok := dict[key]; ok {
			return obj, nil
		}
		var err error
		dict, err = pdf.GetDict(r, dict["Parent"])
		if err != nil {
			return nil, err
		}
		if dict == nil {
			return nil, nil
		}
	}
	return nil, &pdf.MalformedFileError{Err: errors.New("page tree too deep")}
}

func readRect(r pdf.Getter, obj pdf.Object) (rect.Rect, error) {
	a, err := pdf.GetArray(r, obj)
	if err != nil {
		return rect.Rect{}, err
	}
	if len(a) != 4 {
		return rect.Rect{}, &pdf.MalformedFileError{
			Err: fmt.Errorf("expected 4 numbers, got %d", len(a)),
		}
	}
	var x [4]float64
	for i, obj := range a {
		x[i], err = pdf.GetNumber(r, obj)
		if err != nil {
			return rect.Rect{}, err
		}
	}
	return rect.Rect{
		LLx: min(x[0], x[2]),
		LLy: min(x[1], x[3]),
		URx: max(x[0], x[2]),
		URy: max(x[1], x[3]),
	}, nil
}

// readContents decodes the content of a page.  Obj can be either a stream
// or an array of streams.  Streams in an array are separated by a newline.
func readContents(r pdf.Getter, obj pdf.Object) ([]byte, error) {
	contents, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch contents := contents.(type) {
	case nil:
		return nil, nil
	case *pdf.Stream:
		data, err := pdf.DecodeStream(r, contents)
		if err != nil {
			return nil, pdf.Wrap(err, "content stream")
		}
		return data, nil
	case pdf.Array:
		var buf bytes.Buffer
		for _, ref := range contents {
			stm, err := pdf.GetStream(r, ref)
			if err != nil {
				return nil, err
			}
			if stm == nil {
				continue
			}
			data, err := pdf.DecodeStream(r, stm)
			if err != nil {
				key := "content stream"
				if ref, ok := ref.(pdf.Reference); ok {
					key = fmt.Sprintf("content stream %s", ref)
				}
				return nil, pdf.Wrap(err, key)
			}
			buf.Write(data)
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("unexpected type %T for content stream", contents),
		}
	}
}

// InterpretPage interprets the content of a page.  The crop box of the page
// is used as the initial clipping path.
func (in *Interpreter) InterpretPage(r pdf.Getter, page pdf.Object, l event.Listener) error {
	p, err := ReadPage(r, page)
	if err != nil {
		return err
	}
	pageIn := *in
	pageIn.pageBox = p.CropBox
	pageIn.hasPageBox = true
	return pageIn.Interpret(p.Content, p.Resources, l)
}
