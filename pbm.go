// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePGM writes a binary Portable Gray Map image of c, size pixels
// on a side, to w.  The pixels are those returned by Raw.
func (c *Code) EncodePGM(w io.Writer, size int) error {
	pix, err := c.Raw(size)
	if err != nil {
		return err
	}
	ls := strconv.Itoa(size)
	b := bufio.NewWriter(w)
	b.WriteString("P5\n" + ls + " " + ls + "\n255\n")
	b.Write(pix)
	return b.Flush()
}

// EncodePBM writes a Portable Bit Map image of c, size pixels on a
// side, to w, for use with netpbm.  The layout is that of Raw.
func (c *Code) EncodePBM(w io.Writer, size int) error {
	pix, err := c.Raw(size)
	if err != nil {
		return err
	}
	ls := strconv.Itoa(size)
	b := bufio.NewWriter(w)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (size+7)/8)
	for len(pix) >= size {
		pbmRow(row, pix[:size])
		pix = pix[size:]
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow packs a row of grayscale pixels into bits, 1 being black.
func pbmRow(dst, src []byte) {
	clear(dst)
	for x, v := range src {
		if v == 0 {
			dst[x>>3] |= 0x80 >> (x & 7)
		}
	}
}
