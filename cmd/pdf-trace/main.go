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

// Pdf-trace interprets a PDF content stream and prints the resulting
// render events, or the text extracted from them.
//
// The content is either read from a file containing the raw content stream,
// or from a page object in a file of indirect objects ("n g obj ... endobj").
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfinterp/event"
	"seehuhn.de/go/pdfinterp/extract"
	"seehuhn.de/go/pdfinterp/internal/buildinfo"
	"seehuhn.de/go/pdfinterp/internal/profile"
	"seehuhn.de/go/pdfinterp/pdf"
	"seehuhn.de/go/pdfinterp/reader"
	"seehuhn.de/go/pdfinterp/resource"
	"seehuhn.de/go/pdfinterp/scanner"
)

// config holds all command-line flag values.
type config struct {
	objects   string
	page      string
	resources string
	box       string
	mode      string
	maxDepth  int
	precision int
	verbose   bool
	color     bool
}

func main() {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	var cfg config
	flag.StringVar(&cfg.objects, "objects", "", "read indirect objects from `file`")
	flag.StringVar(&cfg.page, "page", "", "interpret the page object with reference `\"n g\"`")
	flag.StringVar(&cfg.resources, "res", "", "read the resource dictionary from `file`")
	flag.StringVar(&cfg.box, "box", "", "page box `llx,lly,urx,ury`, used as the initial clipping path")
	flag.StringVar(&cfg.mode, "mode", "events", "output `mode`: events, text, simple or margins")
	flag.IntVar(&cfg.maxDepth, "max-depth", reader.DefaultMaxDepth, "maximal nesting depth of form XObjects")
	flag.IntVar(&cfg.precision, "prec", 2, "number of digits after the decimal point")
	flag.BoolVar(&cfg.verbose, "v", false, "log recoverable problems in the content stream")
	help := flag.Bool("help", false, "show help information")

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "%s\n\n", buildinfo.Short("pdf-trace"))
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  pdf-trace [options] <content-file>\n")
		fmt.Fprintf(out, "  pdf-trace [options] -objects <file> -page \"n g\"\n\n")
		fmt.Fprintf(out, "Use - as the content file to read from standard input.\n\n")
		fmt.Fprintf(out, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if (cfg.page == "") == (flag.NArg() == 0) || flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}
	cfg.color = term.IsTerminal(int(os.Stdout.Fd()))

	log := logrus.New()
	log.Out = os.Stderr
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      term.IsTerminal(int(os.Stderr.Fd())),
	})
	log.SetLevel(logrus.WarnLevel)
	if cfg.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	stop, err := profile.Start(*cpuprofile, *memprofile, log)
	if err != nil {
		log.Fatal(err)
	}
	err = run(cfg, flag.Arg(0), os.Stdin, os.Stdout, log)
	stop()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// run interprets the content selected by cfg and writes the result to w.
// If cfg.page is empty, contentFile names the file holding the content
// stream.
func run(cfg config, contentFile string, stdin io.Reader, w io.Writer, log logrus.FieldLogger) error {
	opts := []reader.Option{
		reader.WithLogger(log),
		reader.WithMaxDepth(cfg.maxDepth),
	}
	if cfg.box != "" {
		box, err := parseBox(cfg.box)
		if err != nil {
			return err
		}
		opts = append(opts, reader.WithPageBox(box))
	}
	in := reader.New(opts...)

	var r pdf.Getter
	if cfg.objects != "" {
		data, err := os.ReadFile(cfg.objects)
		if err != nil {
			return err
		}
		store, err := scanner.ReadObjects(data)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.objects, err)
		}
		log.WithField("objects", store.Len()).Debug("object file loaded")
		r = store
	}

	out, err := newOutput(cfg, w)
	if err != nil {
		return err
	}

	if cfg.page != "" {
		if r == nil {
			return errors.New("-page requires -objects")
		}
		ref, err := parseRef(cfg.page)
		if err != nil {
			return err
		}
		err = in.InterpretPage(r, ref, out.listener)
		if err != nil {
			return err
		}
		return out.finish()
	}

	var res pdf.Object
	if cfg.resources != "" {
		data, err := os.ReadFile(cfg.resources)
		if err != nil {
			return err
		}
		res, err = scanner.ParseObject(data)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.resources, err)
		}
	}
	scope, err := resource.New(r, res)
	if err != nil {
		return err
	}

	var content []byte
	if contentFile == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(contentFile)
	}
	if err != nil {
		return err
	}

	err = in.Interpret(content, scope, out.listener)
	if err != nil {
		return err
	}
	return out.finish()
}

type output struct {
	listener event.Listener
	finish   func() error
}

func newOutput(cfg config, w io.Writer) (*output, error) {
	switch cfg.mode {
	case "events":
		p := &printer{w: w, prec: cfg.precision, color: cfg.color}
		return &output{listener: p, finish: func() error { return nil }}, nil
	case "text", "simple":
		var s interface {
			event.Listener
			Text() string
		}
		if cfg.mode == "text" {
			s = extract.NewLocationStrategy()
		} else {
			s = extract.NewSimpleStrategy()
		}
		finish := func() error {
			_, err := fmt.Fprintln(w, s.Text())
			return err
		}
		return &output{listener: s, finish: finish}, nil
	case "margins":
		m := &extract.MarginFinder{}
		finish := func() error {
			box, ok := m.TextBox()
			if !ok {
				_, err := fmt.Fprintln(w, "no text")
				return err
			}
			_, err := fmt.Fprintln(w, formatRect(box, cfg.precision))
			return err
		}
		return &output{listener: m, finish: finish}, nil
	}
	return nil, fmt.Errorf("unknown output mode %q", cfg.mode)
}

// parseBox parses a rectangle given as "llx,lly,urx,ury".
func parseBox(s string) (rect.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return rect.Rect{}, fmt.Errorf("invalid box %q", s)
	}
	var x [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return rect.Rect{}, fmt.Errorf("invalid box %q: %w", s, err)
		}
		x[i] = v
	}
	return rect.Rect{
		LLx: min(x[0], x[2]),
		LLy: min(x[1], x[3]),
		URx: max(x[0], x[2]),
		URy: max(x[1], x[3]),
	}, nil
}

// parseRef parses an object reference given as "n g" or "n g R".
func parseRef(s string) (pdf.Reference, error) {
	fields := strings.Fields(s)
	if len(fields) == 3 && fields[2] == "R" {
		fields = fields[:2]
	}
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid reference %q", s)
	}
	num, err1 := strconv.ParseUint(fields[0], 10, 32)
	gen, err2 := strconv.ParseUint(fields[1], 10, 16)
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("invalid reference %q", s)
	}
	return pdf.NewReference(uint32(num), uint16(gen)), nil
}
