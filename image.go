// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import (
	"errors"
	"image"
)

var ErrLargeImage = errors.New("qr: image too large")

const maxImageSize = 32767 * 8

// layout returns the width in pixels of a module and the offset of
// the code in a square image of size pixels.  The code is centred,
// with a quiet zone of at least one module.
func (c *Code) layout(size int) (point, margin int, err error) {
	if size > maxImageSize {
		return 0, 0, ErrLargeImage
	}
	if size <= 0 {
		return 0, 0, ErrImageSizeTooSmall
	}
	point = size / (c.Size + 2)
	if point == 0 {
		return 0, 0, ErrImageSizeTooSmall
	}
	return point, (size - point*c.Size) / 2, nil
}

// Raw returns a size×size grayscale image of c, one byte per pixel,
// rows top to bottom.  White is 255, black is 0.
func (c *Code) Raw(size int) ([]byte, error) {
	point, margin, err := c.layout(size)
	if err != nil {
		return nil, err
	}
	b := make([]byte, size*size)
	for i := range b {
		b[i] = 0xff
	}
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			off := (margin+y*point)*size + margin + x*point
			for i := 0; i < point; i++ {
				clear(b[off : off+point])
				off += size
			}
		}
	}
	return b, nil
}

// Image returns a size×size grayscale image of c.
func (c *Code) Image(size int) (*image.Gray, error) {
	b, err := c.Raw(size)
	if err != nil {
		return nil, err
	}
	return &image.Gray{Pix: b, Stride: size, Rect: image.Rect(0, 0, size, size)}, nil
}
