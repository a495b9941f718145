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

package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfinterp/pdf"
)

type testOutput struct {
	Op   string
	Args []pdf.Object
}

func TestScanner(t *testing.T) {
	type testCase struct {
		in       string
		expected []testOutput
	}

	testCases := []testCase{
		{"1 2 3", nil},
		{"1 test 2", []testOutput{{"test", []pdf.Object{pdf.Integer(1)}}}},
		{"1 2.3 m",
			[]testOutput{{"m", []pdf.Object{pdf.Integer(1), pdf.Real(2.3)}}}},
		{"1 2 m 3 4 l",
			[]testOutput{
				{"m", []pdf.Object{pdf.Integer(1), pdf.Integer(2)}},
				{"l", []pdf.Object{pdf.Integer(3), pdf.Integer(4)}}}},
		{"-.5 +3 m",
			[]testOutput{{"m", []pdf.Object{pdf.Real(-0.5), pdf.Integer(3)}}}},
		{"<< /a 1 /b 2 >> test",
			[]testOutput{
				{"test", []pdf.Object{pdf.Dict{"a": pdf.Integer(1), "b": pdf.Integer(2)}}}},
		},
		{"[ 1 [2] 3 ] test",
			[]testOutput{
				{"test", []pdf.Object{pdf.Array{pdf.Integer(1), pdf.Array{pdf.Integer(2)}, pdf.Integer(3)}}}}},
		{"(hello (nested) world) test",
			[]testOutput{
				{"test", []pdf.Object{pdf.String("hello (nested) world")}}}},
		{`(\n\r\t\b\f\)\(\\\123\0053) test`,
			[]testOutput{
				{"test", []pdf.Object{pdf.String("\n\r\t\b\f)(\\S\0053")}}}},
		{"<68656c6c6f20776F726C64> test",
			[]testOutput{
				{"test", []pdf.Object{pdf.String("hello world")}}}},
		{"<5> test",
			[]testOutput{
				{"test", []pdf.Object{pdf.String("P")}}}},
		{"/he#6c#6Co test",
			[]testOutput{
				{"test", []pdf.Object{pdf.Name("hello")}}}},
		{"1 % comment\n2 test",
			[]testOutput{
				{"test", []pdf.Object{pdf.Integer(1), pdf.Integer(2)}}}},
		{"true false null x",
			[]testOutput{
				{"x", []pdf.Object{pdf.Bool(true), pdf.Bool(false), nil}}}},
		{`' " W*`, []testOutput{{"'", nil}, {"\"", nil}, {"W*", nil}}},
		{"[(AB) -250 (CD)] TJ",
			[]testOutput{
				{"TJ", []pdf.Object{pdf.Array{pdf.String("AB"), pdf.Integer(-250), pdf.String("CD")}}}}},
		{"/Span <</MCID 0>> BDC EMC",
			[]testOutput{
				{"BDC", []pdf.Object{pdf.Name("Span"), pdf.Dict{"MCID": pdf.Integer(0)}}},
				{"EMC", nil}}},
		{"1 0 R", []testOutput{{"R", []pdf.Object{pdf.Integer(1), pdf.Integer(0)}}}},
	}

	for testNo, tc := range testCases {
		var actual []testOutput

		s := New([]byte(tc.in))
		ok := s.Scan()(func(op string, args []pdf.Object) bool {
			actual = append(actual, testOutput{op, slices.Clone(args)})
			return true
		})
		if !ok {
			t.Errorf("%d: scan failed: %v", testNo, s.Err())
			continue
		}

		if d := cmp.Diff(tc.expected, actual); d != "" {
			t.Errorf("%d: unexpected output (-want +got):\n%s", testNo, d)
		}
	}
}

func TestOffset(t *testing.T) {
	in := "0 0 m\n10 10 l S"
	var offsets []int64
	s := New([]byte(in))
	s.Scan()(func(op string, args []pdf.Object) bool {
		offsets = append(offsets, s.Offset())
		return true
	})
	if d := cmp.Diff([]int64{4, 12, 14}, offsets); d != "" {
		t.Error(d)
	}
}

// TestNoOperands checks that operators without operands get a nil slice,
// also after the operand buffer has been used.
func TestNoOperands(t *testing.T) {
	s := New([]byte("q 1 0 0 1 5 5 cm Q"))
	var count int
	s.Scan()(func(op string, args []pdf.Object) bool {
		if op != "cm" && args != nil {
			t.Errorf("%s: got %#v, want nil", op, args)
		}
		count++
		return true
	})
	if count != 3 {
		t.Errorf("got %d statements", count)
	}
}

func TestInlineImage(t *testing.T) {
	in := "q BI /W 2 /H 1 /CS /G /BPC 8 /D [1 0] ID ab\xffEIc EI Q"
	var actual []testOutput
	s := New([]byte(in))
	ok := s.Scan()(func(op string, args []pdf.Object) bool {
		actual = append(actual, testOutput{op, slices.Clone(args)})
		return true
	})
	if !ok {
		t.Fatal(s.Err())
	}

	expected := []testOutput{
		{"q", nil},
		{"EI", []pdf.Object{&pdf.InlineImage{
			Dict: pdf.Dict{
				"W":   pdf.Integer(2),
				"H":   pdf.Integer(1),
				"CS":  pdf.Name("G"),
				"BPC": pdf.Integer(8),
				"D":   pdf.Array{pdf.Integer(1), pdf.Integer(0)},
			},
			Data: []byte("ab\xffEIc"),
		}}},
		{"Q", nil},
	}
	if d := cmp.Diff(expected, actual); d != "" {
		t.Errorf("unexpected output (-want +got):\n%s", d)
	}
}

func TestMalformed(t *testing.T) {
	cases := []string{
		"(unterminated",
		"<12 zz> Tj",
		"BI /W 1 ID xxx",
	}
	for _, in := range cases {
		s := New([]byte(in))
		ok := s.Scan()(func(string, []pdf.Object) bool { return true })
		if ok || s.Err() == nil {
			t.Errorf("%q: error not detected", in)
		}
	}
}

func TestStop(t *testing.T) {
	s := New([]byte("q q q"))
	count := 0
	ok := s.Scan()(func(string, []pdf.Object) bool {
		count++
		return count < 2
	})
	if ok || count != 2 {
		t.Errorf("got ok=%t count=%d, want false 2", ok, count)
	}
}

func TestParseObject(t *testing.T) {
	obj, err := ParseObject([]byte("<< /Font << /F1 5 0 R >> /X [1 2 R] >>"))
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := obj.(pdf.Dict)
	if !ok {
		t.Fatalf("got %T, want pdf.Dict", obj)
	}
	expected := pdf.Dict{
		"Font": pdf.Dict{"F1": pdf.NewReference(5, 0)},
		"X":    pdf.Array{pdf.NewReference(1, 2)},
	}
	if d := cmp.Diff(expected, dict); d != "" {
		t.Error(d)
	}

	for _, in := range []string{"1 2", "q", "[1 2"} {
		if _, err := ParseObject([]byte(in)); err == nil {
			t.Errorf("%q: error not detected", in)
		}
	}
}

func TestReadObjects(t *testing.T) {
	in := `1 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj
2 0 obj
<< /Length 8 >>
stream
0 0 m S
endstream
endobj
3 0 obj [1 0 R 2 0 R] endobj`

	store, err := ReadObjects([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 3 {
		t.Errorf("got %d objects, want 3", store.Len())
	}

	obj, _ := store.Get(pdf.NewReference(2, 0))
	stm, ok := obj.(*pdf.Stream)
	if !ok {
		t.Fatalf("object 2: got %T, want *pdf.Stream", obj)
	}
	if string(stm.Data) != "0 0 m S" {
		t.Errorf("stream data: got %q", stm.Data)
	}

	obj, _ = store.Get(pdf.NewReference(3, 0))
	if d := cmp.Diff(pdf.Array{pdf.NewReference(1, 0), pdf.NewReference(2, 0)}, obj); d != "" {
		t.Error(d)
	}
}
