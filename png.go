// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

// PNG returns an 8-bit grayscale PNG image of c, size pixels on a
// side.  The pixels are those returned by Raw.
func (c *Code) PNG(size int) ([]byte, error) {
	w, err := encodePNG(c, size)
	if err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// EncodePNG writes a PNG image of c to w.  See PNG.
func (c *Code) EncodePNG(w io.Writer, size int) error {
	pw, err := encodePNG(c, size)
	if err != nil {
		return err
	}
	_, err = pw.buf.WriteTo(w)
	return err
}

// A pngWriter assembles PNG chunks in a buffer.
type pngWriter struct {
	buf   bytes.Buffer
	tmp   [13]byte
	start int // offset of current chunk
}

const pngHeader = "\x89PNG\r\n\x1a\n"

func encodePNG(c *Code, size int) (*pngWriter, error) {
	pix, err := c.Raw(size)
	if err != nil {
		return nil, err
	}
	w := new(pngWriter)
	w.buf.Grow(size * size / 16)

	// Header
	w.buf.WriteString(pngHeader)

	// Header block
	binary.BigEndian.PutUint32(w.tmp[0:4], uint32(size))
	binary.BigEndian.PutUint32(w.tmp[4:8], uint32(size))
	w.tmp[8] = 8  // 8-bit
	w.tmp[9] = 0  // gray
	w.tmp[10] = 0 // deflate
	w.tmp[11] = 0 // adaptive filtering
	w.tmp[12] = 0 // no interlace
	w.writeChunk("IHDR", w.tmp[:13])

	// Data, rows unfiltered
	w.startChunk("IDAT")
	z, err := zlib.NewWriterLevel(&w.buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	var filter [1]byte // none
	for len(pix) >= size {
		z.Write(filter[:])
		z.Write(pix[:size])
		pix = pix[size:]
	}
	if err := z.Close(); err != nil {
		return nil, err
	}
	w.endChunk()

	// End
	w.writeChunk("IEND", nil)
	return w, nil
}

func (w *pngWriter) writeChunk(name string, data []byte) {
	w.startChunk(name)
	w.buf.Write(data)
	w.endChunk()
}

// startChunk writes the chunk name twice: the first copy is a
// placeholder for the length.
func (w *pngWriter) startChunk(name string) {
	w.start = w.buf.Len()
	w.buf.WriteString(name)
	w.buf.WriteString(name)
}

// endChunk sets the length and appends the CRC of the current chunk.
func (w *pngWriter) endChunk() {
	b := w.buf.Bytes()[w.start:]
	binary.BigEndian.PutUint32(b, uint32(len(b)-8))
	binary.BigEndian.PutUint32(w.tmp[0:4], crc32.ChecksumIEEE(b[4:]))
	w.buf.Write(w.tmp[0:4])
}
