// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import "strings"

// String returns c as UTF-8 text with a quiet zone of 4 modules.
// See Text.
func (c *Code) String() string {
	return c.Text(4, false)
}

// Text returns c as text with a quiet zone of border modules.
//
// By default two rows of modules are printed per line using UTF-8
// half blocks, white modules being drawn, for terminals with light
// text on dark background.  If ascii is set, each module is printed
// as two characters, "##" for black and spaces for white.
func (c *Code) Text(border int, ascii bool) string {
	border = max(border, 0)
	pix := c.Size + 2*border
	var b strings.Builder
	if ascii {
		b.Grow((pix*2 + 1) * pix)
		for y := -border; y < c.Size+border; y++ {
			for x := -border; x < c.Size+border; x++ {
				if c.Black(x, y) {
					b.WriteString("##")
				} else {
					b.WriteString("  ")
				}
			}
			b.WriteByte('\n')
		}
		return b.String()
	}

	// Black returns false outside the code, so the quiet zone and the
	// missing bottom row of an odd height are white.
	halves := [4]string{"█", "▄", "▀", " "} // index: top black | bottom black<<1
	b.Grow((pix*3 + 1) * (pix + 1) / 2)
	for y := -border; y < c.Size+border; y += 2 {
		for x := -border; x < c.Size+border; x++ {
			i := 0
			if c.Black(x, y) {
				i |= 1
			}
			if c.Black(x, y+1) {
				i |= 2
			}
			b.WriteString(halves[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
