// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrgen generates QR codes.

Text is split into numeric, alphanumeric and byte mode segments of
minimal encoded length by package split, and encoded into a symbol by
rsc.io/qr/coding.  The error correction level is raised as long as the
data still fits the chosen version, and the mask with the lowest
penalty score is applied.

A Code can be rendered as SVG, PNG, PGM, PBM, a raw grayscale buffer or
text.
*/
package qrgen // import "github.com/unixdj/qrgen"

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"rsc.io/qr/coding"

	"github.com/unixdj/qrgen/split"
)

type (
	// A Level denotes a QR error correction level.
	Level = split.Level

	// A Version denotes a QR code version, from 1 to 40.
	Version = split.Version

	// A Segment is a run of data encoded in a single mode.
	Segment = split.Segment
)

// QR error correction levels.
const (
	L = split.L // 20% redundant
	M = split.M // 38% redundant
	Q = split.Q // 55% redundant
	H = split.H // 65% redundant
)

// Version range.
const (
	MinVersion = split.MinVersion
	MaxVersion = split.MaxVersion
)

var (
	ErrDataTooLong       = split.ErrDataTooLong
	ErrLevel             = errors.New("qr: invalid error correction level")
	ErrVersion           = errors.New("qr: invalid version range")
	ErrMask              = errors.New("qr: invalid mask")
	ErrNotEncodable      = errors.New("qr: segment not encodable in its mode")
	ErrImageSizeTooSmall = errors.New("qr: image size is too small to draw the whole QR code")
)

// Encode returns a QR code of text at the given error correction
// level, split into segments of minimal encoded length.
func Encode(text string, level Level) (*Code, error) {
	if level < L || level > H {
		return nil, ErrLevel
	}
	segs, _, err := split.Split(text, level)
	if err != nil {
		return nil, err
	}
	return EncodeSegments(segs, level)
}

// EncodeBinary returns a QR code of data in a single byte mode
// segment.
func EncodeBinary(data []byte, level Level) (*Code, error) {
	return EncodeSegments([]Segment{split.Bytes(data)}, level)
}

// EncodeData returns a QR code of data.  Valid UTF-8 is encoded as
// text by Encode, anything else by EncodeBinary.
func EncodeData(data []byte, level Level) (*Code, error) {
	if utf8.Valid(data) {
		return Encode(string(data), level)
	}
	return EncodeBinary(data, level)
}

// EncodeSegments returns a QR code of segs using the default Encoder.
func EncodeSegments(segs []Segment, level Level) (*Code, error) {
	var e Encoder
	return e.Encode(segs, level)
}

// An Encoder encodes segments into QR codes.
//
// The zero Encoder uses any version from 1 to 40, raises the error
// correction level when the data fits and chooses the mask with the
// smallest penalty.
type Encoder struct {
	MinVersion Version // smallest version; 0 means 1
	MaxVersion Version // largest version; 0 means 40
	Mask       int     // mask pattern 0-7, used if FixedMask is set
	FixedMask  bool    // use Mask instead of choosing
	FixedLevel bool    // don't raise the error correction level
}

// Encode returns a QR code of segs at the given error correction level,
// or higher unless e.FixedLevel is set.  The smallest version in the
// range that holds segs is used.
func (e *Encoder) Encode(segs []Segment, level Level) (*Code, error) {
	if level < L || level > H {
		return nil, ErrLevel
	}
	lo, hi := e.MinVersion, e.MaxVersion
	if lo == 0 {
		lo = MinVersion
	}
	if hi == 0 {
		hi = MaxVersion
	}
	if lo < MinVersion || hi > MaxVersion || lo > hi {
		return nil, ErrVersion
	}
	masks := [2]int{0, 8}
	if e.FixedMask {
		if e.Mask < 0 || e.Mask > 7 {
			return nil, ErrMask
		}
		masks = [2]int{e.Mask, e.Mask + 1}
	}
	for _, seg := range segs {
		if !seg.Valid() {
			return nil, ErrNotEncodable
		}
	}

	// Find the smallest version that fits.
	v := lo
	n, ok := split.TotalBits(segs, v)
	for !ok || n > v.DataBits(level) {
		if v == hi {
			return nil, ErrDataTooLong
		}
		v++
		n, ok = split.TotalBits(segs, v)
	}
	// Raise the level while the data fits.
	if !e.FixedLevel {
		for l := level + 1; l <= H; l++ {
			if n <= v.DataBits(l) {
				level = l
			}
		}
	}

	enc := emit(segs)
	var (
		best *coding.Code
		mask int
		pen  int
	)
	for m := masks[0]; m < masks[1]; m++ {
		plan, err := coding.NewPlan(coding.Version(v), coding.Level(level), coding.Mask(m))
		if err != nil {
			return nil, fmt.Errorf("qr: plan version %v level %v: %w", v, level, err)
		}
		cc, err := plan.Encode(enc...)
		if err != nil {
			return nil, fmt.Errorf("qr: encode version %v level %v: %w", v, level, err)
		}
		if p := penalty(cc); best == nil || p < pen {
			best, mask, pen = cc, m, p
		}
	}
	return &Code{
		Bitmap:   best.Bitmap,
		Size:     best.Size,
		Stride:   best.Stride,
		Version:  v,
		Level:    level,
		Mask:     mask,
		Segments: segs,
	}, nil
}

// emit converts segments into encodings of the same modes.
func emit(segs []Segment) []coding.Encoding {
	enc := make([]coding.Encoding, len(segs))
	for i, seg := range segs {
		switch seg.Mode {
		case split.Numeric:
			enc[i] = coding.Num(seg.Text)
		case split.Alphanumeric:
			enc[i] = coding.Alpha(seg.Text)
		default:
			enc[i] = coding.String(seg.Text)
		}
	}
	return enc
}

// A Code is a square grid of QR code modules.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row

	Version  Version   // QR code version
	Level    Level     // error correction level, may exceed requested
	Mask     int       // mask pattern
	Segments []Segment // encoded segments
}

// Black returns true if the module at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// Matrix returns the modules of c as rows of booleans,
// true being black.
func (c *Code) Matrix() [][]bool {
	m := make([][]bool, c.Size)
	for y := range m {
		m[y] = make([]bool, c.Size)
		for x := range m[y] {
			m[y][x] = c.Black(x, y)
		}
	}
	return m
}
