// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import "strconv"

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
// The ordinals match rsc.io/qr/coding.Level.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// A Version denotes a QR code version, from 1 to 40.
type Version int

const (
	MinVersion Version = 1
	MaxVersion Version = 40
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

// SizeClass returns the size class of v: 0 for versions 1 to 9,
// 1 for 10 to 26 and 2 for 27 to 40.  Character count fields have
// the same width within a size class.
func (v Version) SizeClass() int {
	return int(v+7) / 17
}

// Size returns the number of modules on a side of a code of
// version v.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// Error correction codewords per block and number of blocks,
// indexed by level and version.  Column 0 is padding.
var (
	eccCodewordsPerBlock = [4][41]int8{
		L: {-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
		M: {-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
		Q: {-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
		H: {-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	}

	numErrorCorrectionBlocks = [4][41]int8{
		L: {-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
		M: {-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
		Q: {-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
		H: {-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
	}
)

func (v Version) check() {
	if v < MinVersion || v > MaxVersion {
		panic("qr: invalid version " + v.String())
	}
}

func (l Level) check() {
	if l < L || l > H {
		panic("qr: invalid level " + l.String())
	}
}

// rawDataModules returns the number of modules available for data
// and error correction codewords, including remainder bits, after
// excluding finder, timing and alignment patterns, format and version
// information.
func (v Version) rawDataModules() int {
	v.check()
	n := int(v)
	r := (16*n+128)*n + 64
	if n >= 2 {
		a := n/7 + 2 // alignment patterns per side
		r -= (25*a-10)*a - 55
		if n >= 7 {
			r -= 36 // version information
		}
	}
	return r
}

// DataCodewords returns the number of 8-bit data codewords in a code
// of version v at level l.  It panics if v or l is out of range.
func (v Version) DataCodewords(l Level) int {
	l.check()
	return v.rawDataModules()/8 -
		int(eccCodewordsPerBlock[l][v])*int(numErrorCorrectionBlocks[l][v])
}

// DataBits returns the data capacity in bits of a code of version v
// at level l.
func (v Version) DataBits(l Level) int {
	return v.DataCodewords(l) * 8
}
