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
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/font"
	"seehuhn.de/go/pdfinterp/graphics"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/resource"
)

type recorder struct {
	events []event.Event
	types  []event.Type
}

func (r *recorder) Event(e event.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) SupportedEvents() []event.Type {
	return r.types
}

func (r *recorder) ofType(t event.Type) []event.Event {
	var res []event.Event
	for _, e := range r.events {
		if e.Type() == t {
			res = append(res, e)
		}
	}
	return res
}

// testFontDict is a simple font where "A", "B", "C" and "D" have widths
// 500, 600, 700 and 800.
func testFontDict() pdf.Dict {
	return pdf.Dict{
		"Type":      pdf.Name("Font"),
		"Subtype":   pdf.Name("Type1"),
		"BaseFont":  pdf.Name("Test"),
		"FirstChar": pdf.Integer(65),
		"LastChar":  pdf.Integer(68),
		"Widths":    pdf.Array{pdf.Integer(500), pdf.Integer(600), pdf.Integer(700), pdf.Integer(800)},
	}
}

func newScope(t *testing.T, store *pdf.Store, res pdf.Dict) resource.Scope {
	t.Helper()
	scope, err := resource.New(store, res)
	if err != nil {
		t.Fatal(err)
	}
	return scope
}

func run(t *testing.T, in *Interpreter, content string, scope resource.Scope) *recorder {
	t.Helper()
	rec := &recorder{}
	err := in.Interpret([]byte(content), scope, rec)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestTranslatedRectangle(t *testing.T) {
	rec := run(t, New(), "1 0 0 1 10 20 cm 0 0 10 10 re f", nil)

	paths := rec.ofType(event.TypePath)
	if len(paths) != 1 {
		t.Fatalf("got %d path events", len(paths))
	}
	e := paths[0].(*event.Path)
	if got := e.BBox(); got != (rect.Rect{LLx: 10, LLy: 20, URx: 20, URy: 30}) {
		t.Errorf("bounding box %v", got)
	}
	if e.State.CTM[4] != 10 || e.State.CTM[5] != 20 {
		t.Errorf("CTM %v", e.State.CTM)
	}
	if e.Op != event.PaintFill || e.Rule != graphics.NonZero || e.Clip {
		t.Errorf("unexpected paint operation %v %v %v", e.Op, e.Rule, e.Clip)
	}
}

func TestShowText(t *testing.T) {
	store := pdf.NewStore()
	ref := store.Put(pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
	})
	scope := newScope(t, store, pdf.Dict{"Font": pdf.Dict{"F1": ref}})

	rec := run(t, New(), "BT /F1 12 Tf (Hello) Tj ET", scope)

	var types []event.Type
	for _, e := range rec.events {
		types = append(types, e.Type())
	}
	want := []event.Type{event.TypeClip, event.TypeBeginText, event.TypeText, event.TypeEndText}
	if d := cmp.Diff(want, types); d != "" {
		t.Fatal(d)
	}

	e := rec.events[2].(*event.Text)
	if e.State.FontSize != 12 || e.State.FontName != "F1" {
		t.Errorf("font %s %g", e.State.FontName, e.State.FontSize)
	}
	if string(e.String) != "Hello" || e.Text() != "Hello" {
		t.Errorf("text %q %q", e.String, e.Text())
	}
}

func TestRectangularClips(t *testing.T) {
	in := New(WithPageBox(rect.Rect{URx: 100, URy: 100}))
	rec := run(t, in, "10 10 50 50 re W n 30 20 60 60 re W n", nil)

	clips := rec.ofType(event.TypeClip)
	if len(clips) != 3 {
		t.Fatalf("got %d clip events", len(clips))
	}
	first := clips[0].(*event.Clip)
	if r, ok := first.Path.AsRect(); !ok || r != (rect.Rect{URx: 100, URy: 100}) {
		t.Errorf("initial clip %v", first.Path)
	}
	last := clips[2].(*event.Clip)
	want := rect.Rect{LLx: 30, LLy: 20, URx: 60, URy: 60}
	if got := last.DevicePath().BBox(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// "n" with a clipping operator still reports the path
	paths := rec.ofType(event.TypePath)
	if len(paths) != 2 || !paths[0].(*event.Path).Clip || paths[0].(*event.Path).Op != 0 {
		t.Errorf("unexpected path events %v", paths)
	}
}

func TestFormXObject(t *testing.T) {
	store := pdf.NewStore()
	form := store.Put(&pdf.Stream{
		Dict: pdf.Dict{
			"Type":      pdf.Name("XObject"),
			"Subtype":   pdf.Name("Form"),
			"BBox":      pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(10), pdf.Integer(10)},
			"Matrix":    pdf.Array{pdf.Integer(2), pdf.Integer(0), pdf.Integer(0), pdf.Integer(2), pdf.Integer(0), pdf.Integer(0)},
			"Resources": pdf.Dict{},
		},
		Data: []byte("5 5 m 6 6 l S"),
	})
	scope := newScope(t, store, pdf.Dict{"XObject": pdf.Dict{"X1": form}})

	rec := run(t, New(), "q /X1 Do Q 0 0 1 1 re f", scope)

	paths := rec.ofType(event.TypePath)
	if len(paths) != 2 {
		t.Fatalf("got %d path events", len(paths))
	}
	inner := paths[0].(*event.Path)
	if inner.State.CTM != (matrix.Matrix{2, 0, 0, 2, 0, 0}) {
		t.Errorf("CTM inside form: %v", inner.State.CTM)
	}
	if inner.Path.Subpaths[0].Start != (vec.Vec2{X: 5, Y: 5}) {
		t.Errorf("path %v", inner.Path)
	}
	if got := inner.BBox(); got != (rect.Rect{LLx: 10, LLy: 10, URx: 12, URy: 12}) {
		t.Errorf("device bbox %v", got)
	}

	outer := paths[1].(*event.Path)
	if outer.State.CTM != matrix.Identity {
		t.Errorf("CTM after form: %v", outer.State.CTM)
	}
}

func TestKerning(t *testing.T) {
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{"Font": pdf.Dict{"F1": testFontDict()}})

	rec := run(t, New(), "BT /F1 10 Tf [(AB) -250 (CD)] TJ ET", scope)

	texts := rec.ofType(event.TypeText)
	if len(texts) != 2 {
		t.Fatalf("got %d text events", len(texts))
	}
	t1 := texts[0].(*event.Text)
	t2 := texts[1].(*event.Text)
	if t1.TextMatrix != matrix.Identity {
		t.Errorf("first text matrix %v", t1.TextMatrix)
	}

	// 0.5*10 + 0.6*10 for "AB", then 250/1000*10*1 for the adjustment
	advance := t1.Advance().X
	if advance != 11 {
		t.Errorf("advance of AB: %g", advance)
	}
	gap := t2.TextMatrix[4] - t1.TextMatrix[4] - advance
	if math.Abs(gap-2.5) > 1e-12 {
		t.Errorf("gap %g, want 2.5", gap)
	}
}

// capture returns an operator handler which records deep copies of the
// graphics state and the text matrix.
func capture(states *[]*graphics.State, tms *[]matrix.Matrix) OperatorHandler {
	return func(c *Context, op string, args []pdf.Object) error {
		if states != nil {
			*states = append(*states, c.State().Clone())
		}
		if tms != nil {
			*tms = append(*tms, c.tm)
		}
		return nil
	}
}

func TestStackDiscipline(t *testing.T) {
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{
		"Font":      pdf.Dict{"F1": testFontDict()},
		"ExtGState": pdf.Dict{"G1": pdf.Dict{"LW": pdf.Integer(7), "D": pdf.Array{pdf.Array{pdf.Integer(2)}, pdf.Integer(0)}}},
	})

	var states []*graphics.State
	in := New(WithPageBox(rect.Rect{URx: 200, URy: 200}))
	in.RegisterOperator("capture", capture(&states, nil))
	body := "q 2 w 1 0 0 RG 0.5 g [3 1] 0 d 1 0 0 1 5 5 cm 0 0 10 10 re W n " +
		"/G1 gs BT /F1 9 Tf 3 Tc 50 Tz 2 Ts 1 Tr ET q 2 0 0 2 0 0 cm Q Q"
	run(t, in, "capture "+body+" capture", scope)

	if len(states) != 2 {
		t.Fatalf("got %d states", len(states))
	}
	if d := cmp.Diff(states[0], states[1]); d != "" {
		t.Errorf("state changed (-before +after):\n%s", d)
	}
}

func TestClipFullPage(t *testing.T) {
	page := rect.Rect{URx: 200, URy: 100}
	var states []*graphics.State
	in := New(WithPageBox(page))
	in.RegisterOperator("capture", capture(&states, nil))
	run(t, in, "0 0 200 100 re W n capture", nil)

	r, ok := states[0].ClipPath.AsRect()
	if !ok || r != page {
		t.Errorf("got %v, want %v", states[0].ClipPath, page)
	}
}

func TestTransformComposition(t *testing.T) {
	var states []*graphics.State
	in := New()
	in.RegisterOperator("capture", capture(&states, nil))

	M1 := matrix.Matrix{1, 2, 3, 4, 5, 6}
	M2 := matrix.Matrix{0.5, 0, 0.25, 2, -1, 3}
	M := M2.Mul(M1)
	content := fmt.Sprintf("q %s cm %s cm capture Q %s cm capture",
		matString(M1), matString(M2), matString(M))
	run(t, in, content, nil)

	if d := cmp.Diff(states[0].CTM, states[1].CTM, cmpopts.EquateApprox(1e-12, 1e-12)); d != "" {
		t.Error(d)
	}
}

func matString(M matrix.Matrix) string {
	return fmt.Sprintf("%g %g %g %g %g %g", M[0], M[1], M[2], M[3], M[4], M[5])
}

func TestNextLine(t *testing.T) {
	var tms []matrix.Matrix
	in := New()
	in.RegisterOperator("capture", capture(nil, &tms))
	run(t, in, "BT 3 4 Td 14.3 TL T* capture ET BT 3 4 Td 14.3 TL 0 -14.3 Td capture ET", nil)

	if tms[0] != tms[1] {
		t.Errorf("T* gives %v, Td gives %v", tms[0], tms[1])
	}
	if math.Abs(tms[0][5]+10.3) > 1e-12 || tms[0][4] != 3 {
		t.Errorf("unexpected matrix %v", tms[0])
	}
}

// TestSnapshotIndependence checks that later operators do not change
// events which were already delivered.
func TestSnapshotIndependence(t *testing.T) {
	type entry struct {
		e     *event.Path
		state *graphics.State
		path  *graphics.Path
	}
	var seen []entry
	l := event.ListenerFunc(func(e event.Event) error {
		if e, ok := e.(*event.Path); ok {
			seen = append(seen, entry{e, e.State.Clone(), e.Path.Clone()})
		}
		return nil
	})

	in := New(WithPageBox(rect.Rect{URx: 100, URy: 100}))
	content := "q 2 w [1 1] 0 d 10 10 20 20 re W f 3 w 1 0 0 1 4 4 cm 5 5 m 6 6 l S Q 0 0 1 1 re f"
	err := in.Interpret([]byte(content), nil, l)
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 {
		t.Fatalf("got %d path events", len(seen))
	}
	for i, s := range seen {
		if d := cmp.Diff(s.state, s.e.State); d != "" {
			t.Errorf("%d: state changed:\n%s", i, d)
		}
		if d := cmp.Diff(s.path, s.e.Path); d != "" {
			t.Errorf("%d: path changed:\n%s", i, d)
		}
	}
	if seen[0].e.State.LineWidth != 2 || seen[1].e.State.LineWidth != 3 || seen[2].e.State.LineWidth != 1 {
		t.Error("wrong line widths")
	}
}

func TestPopEmitsClip(t *testing.T) {
	in := New(WithPageBox(rect.Rect{URx: 100, URy: 100}))
	rec := run(t, in, "q 0 0 10 10 re W n Q", nil)

	clips := rec.ofType(event.TypeClip)
	if len(clips) != 3 {
		t.Fatalf("got %d clip events", len(clips))
	}
	r, ok := clips[2].(*event.Clip).Path.AsRect()
	if !ok || r != (rect.Rect{URx: 100, URy: 100}) {
		t.Errorf("clip after Q: %v", clips[2].(*event.Clip).Path)
	}
}

func TestClipFollowsCTM(t *testing.T) {
	var states []*graphics.State
	in := New(WithPageBox(rect.Rect{URx: 100, URy: 100}))
	in.RegisterOperator("capture", capture(&states, nil))
	run(t, in, "2 0 0 2 10 10 cm capture 0 0 0 0 0 0 cm capture", nil)

	// clip path in the new user space
	r, ok := states[0].ClipPath.AsRect()
	if !ok || r != (rect.Rect{LLx: -5, LLy: -5, URx: 45, URy: 45}) {
		t.Errorf("got %v", states[0].ClipPath)
	}
	// a singular matrix leaves the clipping path unchanged
	if d := cmp.Diff(states[0].ClipPath, states[1].ClipPath); d != "" {
		t.Error(d)
	}
	// every point is mapped to the previous origin
	if states[1].CTM != (matrix.Matrix{0, 0, 0, 0, 10, 10}) {
		t.Errorf("CTM %v", states[1].CTM)
	}
}

func TestFatalErrors(t *testing.T) {
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{"Font": pdf.Dict{"F1": testFontDict()}})

	cases := []struct {
		content string
		op      string
		offset  int64
		want    error
	}{
		{"1 2 m 3 l", "l", 8, ErrNotEnoughArgs},
		{"q 1 Q", "Q", 4, ErrTooManyArgs},
		{"0.5 0.5 sc", "sc", 8, ErrTooManyArgs},
		{"/DeviceRGB cs 1 0 sc", "sc", 18, ErrNotEnoughArgs},
		{"/DeviceCMYK CS 0 0 0 SCN", "SCN", 21, ErrNotEnoughArgs},
		{"/Pattern cs 1 /P1 scn", "scn", 18, ErrTooManyArgs},
		{"/G1 gs", "gs", 4, resource.ErrNotFound},
		{"/F2 12 Tf", "Tf", 7, resource.ErrNotFound},
		{"/X0 Do", "Do", 4, resource.ErrNotFound},
		{"/P /Missing BDC", "BDC", 12, resource.ErrNotFound},
		{"BT (x) Tj ET", "Tj", 7, errNoFont},
	}
	for _, c := range cases {
		err := New().Interpret([]byte(c.content), scope, &recorder{})
		if !errors.Is(err, c.want) {
			t.Errorf("%q: got %v, want %v", c.content, err, c.want)
			continue
		}
		var opErr *OperatorError
		if !errors.As(err, &opErr) {
			t.Errorf("%q: %v is not an OperatorError", c.content, err)
			continue
		}
		if opErr.Op != c.op || opErr.Offset != c.offset {
			t.Errorf("%q: got %s@%d, want %s@%d", c.content, opErr.Op, opErr.Offset, c.op, c.offset)
		}
	}
}

func TestRecoverable(t *testing.T) {
	rec := run(t, New(), "Q EMC ET EX 5 6 l 1 2 3 foo 0 0 1 1 re f", nil)
	if n := len(rec.ofType(event.TypePath)); n != 1 {
		t.Errorf("got %d path events", n)
	}
}

func TestListenerError(t *testing.T) {
	errStop := errors.New("stop")
	n := 0
	l := event.ListenerFunc(func(e event.Event) error {
		if e.Type() == event.TypePath {
			n++
			return errStop
		}
		return nil
	})

	store := pdf.NewStore()
	form := store.Put(&pdf.Stream{
		Dict: pdf.Dict{"Subtype": pdf.Name("Form")},
		Data: []byte("0 0 1 1 re f"),
	})
	scope := newScope(t, store, pdf.Dict{"XObject": pdf.Dict{"X": form}})

	err := New().Interpret([]byte("/X Do 0 0 2 2 re f"), scope, l)
	if err != errStop {
		t.Errorf("got %v, want %v", err, errStop)
	}
	if n != 1 {
		t.Errorf("listener called %d times", n)
	}
}

func TestRecursiveForm(t *testing.T) {
	store := pdf.NewStore()
	ref := pdf.NewReference(1, 0)
	store.Set(ref, &pdf.Stream{
		Dict: pdf.Dict{
			"Subtype":   pdf.Name("Form"),
			"Resources": pdf.Dict{"XObject": pdf.Dict{"Me": ref}},
		},
		Data: []byte("/Me Do"),
	})
	scope := newScope(t, store, pdf.Dict{"XObject": pdf.Dict{"Me": ref}})

	err := New(WithMaxDepth(5)).Interpret([]byte("/Me Do"), scope, &recorder{})
	if !errors.Is(err, ErrMaxDepth) {
		t.Errorf("got %v, want ErrMaxDepth", err)
	}
}

func TestImages(t *testing.T) {
	store := pdf.NewStore()
	img := store.Put(&pdf.Stream{
		Dict: pdf.Dict{
			"Subtype":          pdf.Name("Image"),
			"Width":            pdf.Integer(1),
			"Height":           pdf.Integer(1),
			"ColorSpace":       pdf.Name("CS0"),
			"BitsPerComponent": pdf.Integer(8),
		},
		Data: []byte{0, 0, 0},
	})
	cal := pdf.Array{pdf.Name("CalRGB"), pdf.Dict{}}
	scope := newScope(t, store, pdf.Dict{
		"XObject":    pdf.Dict{"Im1": img},
		"ColorSpace": pdf.Dict{"CS0": cal},
	})

	content := "q 20 0 0 10 5 5 cm /Im1 Do Q BI /W 1 /H 1 /CS /G /BPC 8 ID \x80 EI"
	rec := run(t, New(), content, scope)

	images := rec.ofType(event.TypeImage)
	if len(images) != 2 {
		t.Fatalf("got %d image events", len(images))
	}
	x := images[0].(*event.Image)
	if x.IsInline() || x.Name != "Im1" || x.Ref != img {
		t.Errorf("unexpected XObject event %v", x)
	}
	if x.CTM() != (matrix.Matrix{20, 0, 0, 10, 5, 5}) {
		t.Errorf("CTM %v", x.CTM())
	}
	if d := cmp.Diff(pdf.Object(cal), x.ColorSpace); d != "" {
		t.Error(d)
	}

	inline := images[1].(*event.Image)
	if !inline.IsInline() || inline.ColorSpace != graphics.DeviceGray {
		t.Errorf("unexpected inline image event %v", inline)
	}
	if inline.CTM() != matrix.Identity {
		t.Errorf("inline CTM %v", inline.CTM())
	}
}

func TestMarkedContent(t *testing.T) {
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{
		"Properties": pdf.Dict{"MC0": pdf.Dict{"MCID": pdf.Integer(7)}},
	})
	content := "/P <</MCID 3>> BDC /Span /MC0 BDC 0 0 1 1 re f EMC /X MP 0 0 1 1 re f EMC 0 0 1 1 re f"
	rec := run(t, New(), content, scope)

	paths := rec.ofType(event.TypePath)
	if len(paths) != 3 {
		t.Fatalf("got %d path events", len(paths))
	}
	nested := paths[0].(*event.Path).MarkedContent
	if len(nested) != 2 || nested[0].Tag != "P" || nested[1].Tag != "Span" {
		t.Fatalf("unexpected marked content %v", nested)
	}
	if id, _ := nested[1].MCID(); id != 7 {
		t.Errorf("MCID %d", id)
	}
	if mc := paths[1].(*event.Path).MarkedContent; len(mc) != 1 || mc[0].Tag != "P" {
		t.Errorf("unexpected marked content %v", mc)
	}
	if mc := paths[2].(*event.Path).MarkedContent; len(mc) != 0 {
		t.Errorf("unexpected marked content %v", mc)
	}
}

func TestExtGStateFont(t *testing.T) {
	store := pdf.NewStore()
	fontRef := store.Put(testFontDict())
	scope := newScope(t, store, pdf.Dict{
		"ExtGState": pdf.Dict{"G1": pdf.Dict{
			"Font": pdf.Array{fontRef, pdf.Integer(20)},
			"LW":   pdf.Real(0.5),
		}},
	})
	rec := run(t, New(), "BT /G1 gs (A) Tj ET", scope)

	texts := rec.ofType(event.TypeText)
	if len(texts) != 1 {
		t.Fatalf("got %d text events", len(texts))
	}
	e := texts[0].(*event.Text)
	if e.State.FontSize != 20 || e.State.LineWidth != 0.5 || e.Font() == nil {
		t.Errorf("font size %g, line width %g", e.State.FontSize, e.State.LineWidth)
	}
	if e.Advance().X != 10 {
		t.Errorf("advance %v", e.Advance())
	}
}

func TestColors(t *testing.T) {
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{
		"ColorSpace": pdf.Dict{
			"Spot": pdf.Array{pdf.Name("Separation"), pdf.Name("Gold"), pdf.Name("DeviceCMYK"), pdf.Dict{}},
		},
		"Pattern": pdf.Dict{"P1": pdf.Dict{}},
	})
	var states []*graphics.State
	in := New()
	in.RegisterOperator("capture", capture(&states, nil))
	run(t, in, "/Spot cs capture 0.3 scn /Pattern CS /P1 SCN 0.1 0.2 0.3 RG capture 0 0 0 1 k capture", scope)

	if got := states[0].FillColor; got.Family != "Separation" || got.Values[0] != 1 {
		t.Errorf("initial separation colour %v", got)
	}
	if got := states[1].FillColor; got.Space != "Spot" || got.Values[0] != 0.3 {
		t.Errorf("separation colour %v", got)
	}
	if got := states[1].StrokeColor; got.Family != graphics.DeviceRGB {
		t.Errorf("stroke colour %v", got)
	}
	if got := states[2].FillColor; got.String() != "DeviceCMYK(0 0 0 1)" {
		t.Errorf("CMYK colour: %v", got)
	}
}

func TestColorOperandCount(t *testing.T) {
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{
		"ColorSpace": pdf.Dict{
			"Inks":  pdf.Array{pdf.Name("DeviceN"), pdf.Array{pdf.Name("Cyan"), pdf.Name("Gold")}, pdf.Name("DeviceCMYK"), pdf.Dict{}},
			"Plain": pdf.Array{pdf.Name("Pattern"), pdf.Name("DeviceRGB")},
		},
		"Pattern": pdf.Dict{"P1": pdf.Dict{}},
	})
	var states []*graphics.State
	in := New()
	in.RegisterOperator("capture", capture(&states, nil))
	run(t, in, "/Inks cs 0.5 0.25 scn /Plain CS 1 0 0 /P1 SCN capture", scope)

	if got := states[0].FillColor; got.NumComponents != 2 || len(got.Values) != 2 {
		t.Errorf("DeviceN colour %v", got)
	}
	if got := states[0].StrokeColor; got.Pattern != "P1" || len(got.Values) != 3 {
		t.Errorf("uncoloured pattern %v", got)
	}

	for _, content := range []string{
		"/Inks cs 0.5 scn",
		"/Inks cs 0.5 0.5 0.5 sc",
		"/Plain CS /P1 SCN",
	} {
		err := New().Interpret([]byte(content), scope, &recorder{})
		if !errors.Is(err, ErrNotEnoughArgs) && !errors.Is(err, ErrTooManyArgs) {
			t.Errorf("%q: got %v", content, err)
		}
	}
}

func TestColorErrors(t *testing.T) {
	for _, content := range []string{"/Nope cs", "1 0 k", "/Dot sh", "/Pattern cs /P2 scn"} {
		err := New().Interpret([]byte(content), nil, &recorder{})
		if err == nil {
			t.Errorf("%q: no error", content)
		}
	}
}

func TestRegisterOperator(t *testing.T) {
	in := New()
	if prev := in.RegisterOperator("foo", capture(nil, nil)); prev != nil {
		t.Error("unknown operator has a handler")
	}

	count := 0
	var prev OperatorHandler
	prev = in.RegisterOperator("re", func(c *Context, op string, args []pdf.Object) error {
		count++
		return prev(c, op, args)
	})
	if prev == nil {
		t.Fatal("missing built-in handler for re")
	}
	rec := run(t, in, "0 0 1 1 re 2 2 1 1 re f", nil)
	if count != 2 {
		t.Errorf("handler called %d times", count)
	}
	if len(rec.ofType(event.TypePath)[0].(*event.Path).Path.Subpaths) != 2 {
		t.Error("built-in handler not called")
	}

	in.RegisterOperator("re", nil)
	run(t, in, "0 0 1 1 re f", nil)
	if count != 2 {
		t.Error("override not removed")
	}

	if prev := in.RegisterXObjectHandler("Image", nil); prev == nil {
		t.Error("missing image handler")
	}
	if prev := in.RegisterXObjectHandler("PS", nil); prev != nil {
		t.Error("unexpected PostScript handler")
	}
}

func TestSupportedEvents(t *testing.T) {
	rec := &recorder{types: []event.Type{event.TypeText}}
	store := pdf.NewStore()
	scope := newScope(t, store, pdf.Dict{"Font": pdf.Dict{"F1": testFontDict()}})
	err := New(WithPageBox(rect.Rect{URx: 10, URy: 10})).
		Interpret([]byte("0 0 1 1 re W f BT /F1 1 Tf (AB) Tj ET"), scope, rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 1 || rec.events[0].Type() != event.TypeText {
		t.Errorf("unexpected events %v", rec.events)
	}
}

// TestParallel runs several interpreters concurrently, sharing one font
// loader.
func TestParallel(t *testing.T) {
	loader := font.NewLoader()
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store := pdf.NewStore()
			fontRef := store.Put(testFontDict())
			scope, err := resource.New(store, pdf.Dict{"Font": pdf.Dict{"F1": fontRef}})
			if err != nil {
				errs[i] = err
				return
			}
			in := New(WithFontLoader(loader), WithPageBox(rect.Rect{URx: 100, URy: 100}))
			for range 20 {
				rec := &recorder{}
				content := fmt.Sprintf("q %d 0 0 1 0 0 cm 0 0 5 5 re W n BT /F1 10 Tf (ABCD) Tj ET Q", i+1)
				if err := in.Interpret([]byte(content), scope, rec); err != nil {
					errs[i] = err
					return
				}
				texts := rec.ofType(event.TypeText)
				if len(texts) != 1 || texts[0].(*event.Text).Advance().X != 26 {
					errs[i] = fmt.Errorf("unexpected text events %v", texts)
					return
				}
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("%d: %v", i, err)
		}
	}
	if loader.Len() != n {
		t.Errorf("loader has %d fonts, want %d", loader.Len(), n)
	}
}
