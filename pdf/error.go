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
	"strconv"
	"strings"
)

// MalformedFileError indicates that a PDF object could not be interpreted.
type MalformedFileError struct {
	Pos int64
	Loc []string
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	loc := ""
	if len(err.Loc) > 0 {
		loc = " (" + strings.Join(err.Loc, ", ") + ")"
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "malformed PDF object" + middle + loc + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// Wrap adds location information to an error.  If err is a
// [MalformedFileError], loc is prepended to the existing locations.
// Other errors are returned unchanged.
func Wrap(err error, loc string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*MalformedFileError); ok {
		return &MalformedFileError{
			Pos: e.Pos,
			Loc: append([]string{loc}, e.Loc...),
			Err: e.Err,
		}
	}
	return err
}
