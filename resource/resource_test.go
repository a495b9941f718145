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

package resource

import (
	"errors"
	"testing"

	"seehuhn.de/go/pdfinterp/pdf"
)

func TestLookup(t *testing.T) {
	store := pdf.NewStore()
	gsRef := store.Put(pdf.Dict{"LW": pdf.Integer(3)})
	imgRef := store.Put(&pdf.Stream{Dict: pdf.Dict{"Subtype": pdf.Name("Image")}})
	xobjRef := store.Put(pdf.Dict{"Im1": imgRef})
	resRef := store.Put(pdf.Dict{
		"ExtGState": pdf.Dict{"GS1": gsRef},
		"XObject":   xobjRef,
		"Properties": pdf.Dict{
			"P1": pdf.Dict{"MCID": pdf.Integer(0)},
		},
	})

	s, err := New(store, resRef)
	if err != nil {
		t.Fatal(err)
	}

	gs, err := GetExtGState(s, "GS1")
	if err != nil || gs["LW"] != pdf.Integer(3) {
		t.Errorf("ExtGState: %v %v", gs, err)
	}

	stm, ref, err := GetXObject(s, "Im1")
	if err != nil || ref != imgRef || stm.Dict["Subtype"] != pdf.Name("Image") {
		t.Errorf("XObject: %v %v %v", stm, ref, err)
	}

	props, err := GetProperties(s, "P1")
	if err != nil || props["MCID"] != pdf.Integer(0) {
		t.Errorf("Properties: %v %v", props, err)
	}

	obj, err := s.Lookup(ExtGState, "GS1")
	if err != nil || obj != gsRef {
		t.Errorf("Lookup must not resolve references: %v %v", obj, err)
	}
}

func TestMissing(t *testing.T) {
	s, err := New(nil, pdf.Dict{"Font": pdf.Dict{}})
	if err != nil {
		t.Fatal(err)
	}
	for _, cat := range []Category{Font, ExtGState, XObject} {
		_, err := s.Lookup(cat, "F1")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: got %v", cat, err)
		}
		var missing *MissingError
		if !errors.As(err, &missing) || missing.Category != cat || missing.Name != "F1" {
			t.Errorf("%s: got %v", cat, err)
		}
	}
}

func TestEmptyScope(t *testing.T) {
	s, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GetResolved(s, ColorSpace, "CS0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestNotADict(t *testing.T) {
	if _, err := New(nil, pdf.Integer(7)); err == nil {
		t.Error("expected error")
	}
}
