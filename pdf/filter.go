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
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// DecodeStream returns the contents of a stream with all filters removed.
//
// The filters FlateDecode (without predictors) and ASCIIHexDecode are
// supported.  This covers the encodings commonly used for content streams
// and CMaps.
func DecodeStream(r Getter, s *Stream) ([]byte, error) {
	if s == nil {
		return nil, nil
	}

	filterObj, err := Resolve(r, s.Dict["Filter"])
	if err != nil {
		return nil, err
	}
	parmsObj, err := Resolve(r, s.Dict["DecodeParms"])
	if err != nil {
		return nil, err
	}

	var filters []Object
	var parms []Object
	switch f := filterObj.(type) {
	case nil:
		return s.Data, nil
	case Name:
		filters = []Object{f}
		parms = []Object{parmsObj}
	case Array:
		filters = f
		if p, ok := parmsObj.(Array); ok {
			parms = p
		}
	default:
		return nil, &MalformedFileError{
			Err: fmt.Errorf("invalid filter description %s", Format(filterObj)),
		}
	}

	data := s.Data
	for i, f := range filters {
		name, err := GetName(r, f)
		if err != nil {
			return nil, err
		}
		var parm Dict
		if i < len(parms) {
			parm, err = GetDict(r, parms[i])
			if err != nil {
				return nil, err
			}
		}
		data, err = applyFilter(data, name, parm)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func applyFilter(data []byte, name Name, parm Dict) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		if pred, ok := parm["Predictor"].(Integer); ok && pred > 1 {
			return nil, fmt.Errorf("unsupported predictor %d", pred)
		}
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		res, err := io.ReadAll(zr)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		return res, nil
	case "ASCIIHexDecode", "AHx":
		return decodeHex(data)
	default:
		return nil, fmt.Errorf("unsupported filter %q", name)
	}
}

func decodeHex(data []byte) ([]byte, error) {
	res := make([]byte, 0, len(data)/2)
	var hi int = -1
	for _, c := range data {
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'a' && c <= 'f':
			v = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = int(c-'A') + 10
		case c == '>':
			if hi >= 0 {
				res = append(res, byte(hi<<4))
			}
			return res, nil
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0:
			continue
		default:
			return nil, &MalformedFileError{
				Err: fmt.Errorf("invalid character %q in hex data", c),
			}
		}
		if hi < 0 {
			hi = v
		} else {
			res = append(res, byte(hi<<4|v))
			hi = -1
		}
	}
	if hi >= 0 {
		res = append(res, byte(hi<<4))
	}
	return res, nil
}
