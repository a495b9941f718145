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

package pdf

import (
	"errors"
	"fmt"
	"sync"
)

// Getter gives access to the indirect objects of a document.
//
// Implementations must allow concurrent calls to Get.
type Getter interface {
	// Get returns the object with the given reference.  If no such object
	// exists, Get returns nil without an error.
	Get(Reference) (Object, error)
}

// Resolve resolves references to indirect objects.
//
// If obj is a [Reference], the function reads the corresponding object from
// r and returns the result.  If obj is not a [Reference], it is returned
// unchanged.  The function recursively follows chains of references until it
// resolves to a non-reference object.
//
// If a reference loop is encountered, the function returns an error of type
// [MalformedFileError].
func Resolve(r Getter, obj Object) (Object, error) {
	origObj := obj

	count := 0
	for {
		ref, isReference := obj.(Reference)
		if !isReference {
			break
		}
		if r == nil {
			return nil, &MalformedFileError{
				Err: fmt.Errorf("cannot resolve %s without a document", ref),
			}
		}
		count++
		if count > 16 {
			return nil, &MalformedFileError{
				Err: errors.New("too many levels of indirection"),
				Loc: []string{"object " + origObj.(Reference).String()},
			}
		}

		var err error
		obj, err = r.Get(ref)
		if err != nil {
			return nil, err
		}
	}

	return obj, nil
}

func resolveAndCast[T Object](r Getter, obj Object) (x T, err error) {
	obj, err = Resolve(r, obj)
	if err != nil {
		return x, err
	}

	if obj == nil {
		return x, nil
	}

	x, isCorrectType := obj.(T)
	if isCorrectType {
		return x, nil
	}

	return x, &MalformedFileError{
		Err: fmt.Errorf("expected %T but got %T", x, obj),
	}
}

// Helper functions for getting objects of a specific type.  Each of these
// functions calls Resolve on the object before attempting to convert it to the
// desired type.  If the object is `null`, a zero object is returned without
// error.  If the object is of the wrong type, an error is returned.
//
// The signature of these functions is
//
//	func GetT(r Getter, obj Object) (x T, err error)
//
// where T is the type of the object to be returned.
var (
	GetArray  = resolveAndCast[Array]
	GetBool   = resolveAndCast[Bool]
	GetDict   = resolveAndCast[Dict]
	GetInt    = resolveAndCast[Integer]
	GetName   = resolveAndCast[Name]
	GetReal   = resolveAndCast[Real]
	GetStream = resolveAndCast[*Stream]
	GetString = resolveAndCast[String]
)

// GetNumber resolves obj and converts integers and reals to float64.
// A `null` object gives 0.
func GetNumber(r Getter, obj Object) (float64, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	switch x := obj.(type) {
	case Integer:
		return float64(x), nil
	case Real:
		return float64(x), nil
	case nil:
		return 0, nil
	default:
		return 0, &MalformedFileError{
			Err: fmt.Errorf("expected number but got %T", obj),
		}
	}
}

// GetMatrix resolves obj and converts an array of six numbers into
// a slice of float64 values.
func GetMatrix(r Getter, obj Object) ([]float64, error) {
	a, err := GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if len(a) != 6 {
		return nil, &MalformedFileError{
			Err: fmt.Errorf("expected 6 matrix elements but got %d", len(a)),
		}
	}
	res := make([]float64, 6)
	for i, x := range a {
		res[i], err = GetNumber(r, x)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Store is an in-memory collection of indirect objects.
//
// A Store can be read concurrently, but must not be modified while
// it is in use by readers.
type Store struct {
	mu   sync.RWMutex
	objs map[Reference]Object
	next uint32
}

// NewStore returns an empty object store.
func NewStore() *Store {
	return &Store{
		objs: make(map[Reference]Object),
		next: 1,
	}
}

// Get implements the [Getter] interface.
func (s *Store) Get(ref Reference) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objs[ref], nil
}

// Put adds a new object to the store and returns its reference.
func (s *Store) Put(obj Object) Reference {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		ref := NewReference(s.next, 0)
		s.next++
		if _, used := s.objs[ref]; !used {
			s.objs[ref] = obj
			return ref
		}
	}
}

// Set stores obj under the given reference, replacing any previous object.
func (s *Store) Set(ref Reference, obj Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objs[ref] = obj
}

// Len returns the number of objects in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objs)
}
