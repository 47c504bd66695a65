// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qrgen generates QR codes.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"runtime"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/unixdj/qrgen"
)

var g = struct {
	size     int         // image size in pixels
	border   int         // quiet zone for text types
	desc     string      // SVG description
	fn       string      // filename
	fext     string      // filename suffix
	charset  string      // input character encoding
	lev      qrgen.Level // QR correction level
	format   int         // output file format
	upper    bool        // uppercase
	byteOnly bool        // byte mode only
	binary   bool        // binary data unless valid UTF-8
	batch    bool        // one code per input line
	verbose  bool        // print segments
}{
	desc:   qrgen.Description,
	border: 4,
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.  Text is split into numeric, alphanumeric and byte
mode segments of minimal length.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qrgen version 0.1.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{"png", "svg", "pgm", "pbm", "utf8", "ascii"}

var encoders = [...]func(*qrgen.Code, io.Writer) error{
	func(c *qrgen.Code, w io.Writer) error { return c.EncodePNG(w, g.size) },
	func(c *qrgen.Code, w io.Writer) error { return c.EncodeSVG(w, g.size, g.desc) },
	func(c *qrgen.Code, w io.Writer) error { return c.EncodePGM(w, g.size) },
	func(c *qrgen.Code, w io.Writer) error { return c.EncodePBM(w, g.size) },
	func(c *qrgen.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.Text(g.border, false))
		return err
	},
	func(c *qrgen.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.Text(g.border, true))
		return err
	},
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.upper, 'i', "ignore case, convert input to uppercase")
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.binary, 'x', "encode input as binary data "+
		"unless it is valid UTF-8")
	getopt.Flag(&g.batch, 'b', `encode each line of input as a `+
		`separate code; with -o, "-01", "-02" etc. is appended to `+
		`the filename before suffix`)
	getopt.Flag(&g.verbose, 'v', "print segments to standard error")
	getopt.Flag(&g.charset, 'e', "input character encoding, "+
		"converted to UTF-8", "charset")
	getopt.Flag(&g.desc, 'd', `SVG description; "" for none`, "text")
	getopt.Flag(&g.border, 'm', "quiet zone modules for types "+
		"utf8 and ascii", "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest; may be raised "+
			"if the data fits", "l|m|q|h")
	size := getopt.Unsigned('s', 256,
		&getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 32767 * 8},
		"image size in pixels; ignored for types utf8 and ascii",
		"size")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+`; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.byteOnly && g.binary {
		fmt.Fprintln(os.Stderr, "-8 and -x are incompatible")
		usage()
	}
	g.size = int(*size)
	g.lev = qrgen.Level(strings.Index("lmqhLMQH", *lev) & 3)
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

// decode converts s from the input encoding to UTF-8 and applies
// case conversion.
func decode(s string) (string, error) {
	if g.charset != "" {
		enc, err := htmlindex.Get(g.charset)
		if err != nil {
			return "", fmt.Errorf("%s: %w", g.charset, err)
		}
		if s, _, err = transform.String(enc.NewDecoder(), s); err != nil {
			return "", err
		}
	}
	if g.upper {
		s = cases.Upper(language.Und).String(s)
	}
	return s, nil
}

func encode(s string) (*qrgen.Code, error) {
	var (
		c   *qrgen.Code
		err error
	)
	switch {
	case g.byteOnly:
		c, err = qrgen.EncodeBinary([]byte(s), g.lev)
	case g.binary:
		c, err = qrgen.EncodeData([]byte(s), g.lev)
	default:
		c, err = qrgen.Encode(s, g.lev)
	}
	if err != nil {
		return nil, err
	}
	if g.verbose {
		var b strings.Builder
		fmt.Fprintf(&b, "version %v level %v mask %d size %d\n",
			c.Version, c.Level, c.Mask, c.Size)
		for _, seg := range c.Segments {
			fmt.Fprintf(&b, "  %v %q\n", seg.Mode, seg.Text)
		}
		log.Print(b.String())
	}
	return c, nil
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.charset != "" || g.upper {
		var err error
		if s, err = decode(s); err != nil {
			log.Fatalln(err)
		}
	}

	if !g.batch {
		c, err := encode(s)
		if err != nil {
			log.Fatalln(err)
		}
		write(-1, c)
		return
	}

	g.fext = path.Ext(g.fn)
	g.fn = g.fn[:len(g.fn)-len(g.fext)]
	lines := strings.Split(s, "\n")
	codes := make([]*qrgen.Code, len(lines))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i, line := range lines {
		i, line := i, line
		eg.Go(func() error {
			c, err := encode(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			codes[i] = c
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
	for i, c := range codes {
		write(i, c)
	}
}

// write writes c to the output file, or standard output.  In batch
// mode i is the line number from 0, otherwise -1.  A partially written
// file is removed.
func write(i int, c *qrgen.Code) {
	var buf bytes.Buffer
	if err := encoders[g.format](c, &buf); err != nil {
		log.Fatalln(err)
	}
	fn := g.fn
	if fn == "" && g.fext == "" {
		if _, err := buf.WriteTo(os.Stdout); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if i >= 0 {
		fn = fmt.Sprintf("%s-%02d%s", fn, i+1, g.fext)
	}
	w, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatalln(err)
	}
	_, err = buf.WriteTo(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(fn)
		log.Fatalln(err)
	}
}
