// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits text into QR code segments.

Split partitions text into numeric, alphanumeric and byte mode
segments with the smallest total encoded length, and finds the
smallest QR code version that holds them at a given error correction
level.  The package only computes segments; encoding them into a
symbol is left to the caller.
*/
package split // import "github.com/unixdj/qrgen/split"

import (
	"errors"
	"unicode/utf8"
)

var ErrDataTooLong = errors.New("qr: data does not fit any QR code version")

// A Segment is a run of data encoded in a single mode.
//
// Text holds the characters of a Numeric or Alphanumeric segment, or
// the bytes of a Byte segment.  In every mode the value of the
// character count field is len(Text).
type Segment struct {
	Mode Mode
	Text string
}

// Bits returns the encoded length of seg in bits, header included, at
// the given version size class.  ok is false if the character count
// does not fit in the count field.
func (seg Segment) Bits(class int) (n int, ok bool) {
	cb := seg.Mode.CountBits(class)
	return 4 + cb + seg.Mode.dataBits(len(seg.Text)), len(seg.Text) < 1<<cb
}

// Valid reports whether every character of seg is encodable in
// its mode.
func (seg Segment) Valid() bool {
	if seg.Mode >= modes {
		return false
	} else if seg.Mode == Byte {
		return true
	}
	for i := 0; i < len(seg.Text); i++ {
		if !seg.Mode.Accepts(rune(seg.Text[i])) {
			return false
		}
	}
	return true
}

// TotalBits returns the encoded length in bits of segs in a code of
// version v.  ok is false if any segment has too many characters for
// its count field.
func TotalBits(segs []Segment, v Version) (n int, ok bool) {
	v.check()
	class := v.SizeClass()
	for _, seg := range segs {
		b, fits := seg.Bits(class)
		if !fits {
			return 0, false
		}
		n += b
	}
	return n, true
}

/*
Split returns an optimal segmentation of text and the smallest QR code
version that holds it at the given error correction level.

The segmentation depends on the size class of the version, so it is
recomputed at versions 1, 10 and 27.  Within a class only the capacity
is checked.  If text doesn't fit in version 40, Split returns
ErrDataTooLong.  Split panics if level is invalid.

Invalid UTF-8 is encoded in byte mode as is.
*/
func Split(text string, level Level) ([]Segment, Version, error) {
	level.check()
	cs := chars(text)
	var segs []Segment
	for v := MinVersion; v <= MaxVersion; v++ {
		if v == MinVersion || v.SizeClass() != (v-1).SizeClass() {
			segs = optimal(text, cs, v.SizeClass())
		}
		if n, ok := TotalBits(segs, v); ok && n <= v.DataBits(level) {
			return segs, v, nil
		}
	}
	return nil, 0, ErrDataTooLong
}

// Optimal returns the segmentation of text with the smallest encoded
// length at the size class of version v.
func Optimal(text string, v Version) []Segment {
	v.check()
	return optimal(text, chars(text), v.SizeClass())
}

// MakeSegments returns a single segment in the narrowest mode that
// encodes all of text: numeric, alphanumeric or byte.  It returns nil
// for empty text.
func MakeSegments(text string) []Segment {
	if text == "" {
		return nil
	}
	seg := Segment{Numeric, text}
	for seg.Mode > Byte && !seg.Valid() {
		seg.Mode--
	}
	return []Segment{seg}
}

// Bytes returns a byte mode segment of data.
func Bytes(data []byte) Segment {
	return Segment{Byte, string(data)}
}

// A char is a character of the input: a rune, or a byte of invalid
// UTF-8.
type char struct {
	r   rune
	len int // length in bytes
}

func chars(text string) []char {
	cs := make([]char, 0, len(text))
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		cs = append(cs, char{r, n})
		i += n
	}
	return cs
}

/*
A cell of the cost table.

assign fills a table of cells, one row per character and one column
per mode.  Cell (i,m) holds the smallest cost of encoding the first
i+1 characters such that the next character may be appended in mode m
without a new header, and the mode character i is encoded in on that
path.  A cell of mode none is unreachable.

For each character i the row is filled in two passes:

  - For each mode m accepting the character, continue the segment:
    cost(i-1,m) plus the cost of the character in m.  Character i is
    encoded in m.
  - For each mode m, consider ending the segment of every mode k
    filled in the first pass and starting a new one in m: cost(i,k)
    rounded up to a whole bit, plus the header cost of m.  Character i
    is encoded in k.  The candidate replaces the cell if the cell is
    unreachable or the candidate is strictly cheaper.

The costs before the first character are the header costs, a segment
being opened for it.  The path ends in the cheapest cell of the last
row, the first mode winning ties, and is traced back through the cells.
*/
type cell struct {
	cost int  // in sixths of a bit
	mode Mode // mode of this character on the path
}

// assign returns the mode of each character on an optimal path.
func assign(cs []char, class int) []Mode {
	if len(cs) == 0 {
		return nil
	}
	var head [modes]int
	for m := Byte; m < modes; m++ {
		head[m] = m.headCost(class)
	}
	tab := make([][modes]cell, len(cs))
	prev := head
	for i, c := range cs {
		row := &tab[i]
		for m := Byte; m < modes; m++ {
			row[m] = cell{mode: none}
			if m.Accepts(c.r) {
				row[m] = cell{prev[m] + m.charCost(c.len), m}
			}
		}
		own := *row
		for m := Byte; m < modes; m++ {
			for k := Byte; k < modes; k++ {
				if own[k].mode == none {
					continue
				}
				cost := (own[k].cost+5)/6*6 + head[m]
				if row[m].mode == none || cost < row[m].cost {
					row[m] = cell{cost, k}
				}
			}
		}
		for m := range prev {
			prev[m] = row[m].cost
		}
	}

	last := &tab[len(tab)-1]
	end := Byte
	for m := Byte + 1; m < modes; m++ {
		if last[m].cost < last[end].cost {
			end = m
		}
	}
	ms := make([]Mode, len(cs))
	for i := len(cs) - 1; i >= 0; i-- {
		end = tab[i][end].mode
		ms[i] = end
	}
	return ms
}

// optimal assigns modes to cs, the characters of text, and collapses
// runs of the same mode into segments.
func optimal(text string, cs []char, class int) []Segment {
	ms := assign(cs, class)
	var segs []Segment
	start, off := 0, 0
	for i, c := range cs {
		off += c.len
		if i+1 == len(cs) || ms[i+1] != ms[i] {
			segs = append(segs, Segment{ms[i], text[start:off]})
			start = off
		}
	}
	return segs
}
