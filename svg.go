// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Description is the default description of SVG images.
const Description = "qrgen 0.1.0 by github.com/unixdj/qrgen"

var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SVG returns an SVG image of c, size pixels on a side, with the
// given description.  An empty description is omitted.
func (c *Code) SVG(size int, desc string) (string, error) {
	var b strings.Builder
	if err := c.EncodeSVG(&b, size, desc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeSVG writes an SVG image of c to w.  Each black module is drawn
// as a separate rectangle on a white background.  See SVG.
func (c *Code) EncodeSVG(w io.Writer, size int, desc string) error {
	point, margin, err := c.layout(size)
	if err != nil {
		return err
	}
	ss := strconv.Itoa(size)
	ps := strconv.Itoa(point)
	b := bufio.NewWriter(w)
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` +
		`<svg xmlns="http://www.w3.org/2000/svg" ` +
		`xmlns:xlink="http://www.w3.org/1999/xlink" ` +
		`width="` + ss + `" height="` + ss + `">`)
	if desc != "" {
		b.WriteString("<desc>")
		svgEscaper.WriteString(b, desc)
		b.WriteString("</desc>")
	}
	b.WriteString(`<rect width="` + ss + `" height="` + ss +
		`" fill="#FFFFFF" cx="0" cy="0" />`)
	var num []byte
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			num = strconv.AppendInt(num[:0], int64(x*point+margin), 10)
			b.WriteString(`<rect x="`)
			b.Write(num)
			num = strconv.AppendInt(num[:0], int64(y*point+margin), 10)
			b.WriteString(`" y="`)
			b.Write(num)
			b.WriteString(`" width="` + ps + `" height="` + ps +
				`" fill="#000000" shape-rendering="crispEdges" />`)
		}
	}
	b.WriteString("</svg>")
	return b.Flush()
}
