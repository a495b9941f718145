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

// Package resource gives access to the named resources of a content
// stream.
//
// See section 7.8.3 of ISO 32000-2:2020.
package resource

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfinterp/pdf"
)

// Category is the name of a resource category, as used for the
// subdictionaries of a resource dictionary.
type Category pdf.Name

// These are the resource categories used by content stream operators.
const (
	ExtGState  Category = "ExtGState"
	ColorSpace Category = "ColorSpace"
	Pattern    Category = "Pattern"
	Shading    Category = "Shading"
	XObject    Category = "XObject"
	Font       Category = "Font"
	Properties Category = "Properties"
)

// ErrNotFound is returned (wrapped in a [*MissingError]) when a named
// resource does not exist.
var ErrNotFound = errors.New("resource not found")

// MissingError indicates that a named resource does not exist.
type MissingError struct {
	Category Category
	Name     pdf.Name
}

func (err *MissingError) Error() string {
	return fmt.Sprintf("%s resource %s not found", err.Category, pdf.Format(err.Name))
}

// Is makes the error match [ErrNotFound].
func (err *MissingError) Is(target error) bool {
	return target == ErrNotFound
}

// A Scope resolves resource names used in a content stream.
//
// Implementations must allow concurrent calls from several goroutines.
type Scope interface {
	// Getter returns the object store used to resolve indirect references.
	Getter() pdf.Getter

	// Lookup returns the object for a named resource.  The object is
	// returned as it appears in the resource dictionary, so that indirect
	// objects can be identified by their reference.  If the resource does
	// not exist, an error of type [*MissingError] is returned.
	Lookup(cat Category, name pdf.Name) (pdf.Object, error)
}

// Dict is a [Scope] backed by a resource dictionary.
type Dict struct {
	r    pdf.Getter
	dict pdf.Dict
}

var _ Scope = (*Dict)(nil)

// New returns a scope for the resource dictionary obj.  A missing (nil)
// dictionary gives an empty scope.
func New(r pdf.Getter, obj pdf.Object) (*Dict, error) {
	dict, err := pdf.GetDict(r, obj)
	if err != nil {
		return nil, pdf.Wrap(err, "Resources")
	}
	return &Dict{r: r, dict: dict}, nil
}

// Getter implements the [Scope] interface.
func (d *Dict) Getter() pdf.Getter {
	return d.r
}

// Lookup implements the [Scope] interface.
func (d *Dict) Lookup(cat Category, name pdf.Name) (pdf.Object, error) {
	sub, err := pdf.GetDict(d.r, d.dict[pdf.Name(cat)])
	if err != nil {
		return nil, pdf.Wrap(err, string(cat))
	}
	obj := sub[name]
	if obj == nil {
		return nil, &MissingError{Category: cat, Name: name}
	}
	return obj, nil
}

// GetExtGState looks up a graphics state parameter dictionary.
func GetExtGState(s Scope, name pdf.Name) (pdf.Dict, error) {
	return getDict(s, ExtGState, name)
}

// GetProperties looks up a property list for marked content.
func GetProperties(s Scope, name pdf.Name) (pdf.Dict, error) {
	return getDict(s, Properties, name)
}

// GetXObject looks up an external object.  The returned reference is zero
// if the object is stored directly in the resource dictionary.
func GetXObject(s Scope, name pdf.Name) (*pdf.Stream, pdf.Reference, error) {
	obj, err := s.Lookup(XObject, name)
	if err != nil {
		return nil, 0, err
	}
	ref, _ := obj.(pdf.Reference)
	stm, err := pdf.GetStream(s.Getter(), obj)
	if err != nil {
		return nil, 0, err
	}
	if stm == nil {
		return nil, 0, &MissingError{Category: XObject, Name: name}
	}
	return stm, ref, nil
}

// GetResolved looks up a resource of any category and resolves indirect
// references.
func GetResolved(s Scope, cat Category, name pdf.Name) (pdf.Object, error) {
	obj, err := s.Lookup(cat, name)
	if err != nil {
		return nil, err
	}
	obj, err = pdf.Resolve(s.Getter(), obj)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &MissingError{Category: cat, Name: name}
	}
	return obj, nil
}

func getDict(s Scope, cat Category, name pdf.Name) (pdf.Dict, error) {
	obj, err := s.Lookup(cat, name)
	if err != nil {
		return nil, err
	}
	dict, err := pdf.GetDict(s.Getter(), obj)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, &MissingError{Category: cat, Name: name}
	}
	return dict, nil
}
