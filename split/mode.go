// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"sort"
	"strconv"
)

// A Mode is a QR code segment encoding mode.
//
// Modes are listed in the order the optimiser evaluates them.
// When two ways to encode a string have the same cost, the one
// found first wins.
type Mode uint8

const (
	Byte         Mode = iota // any data
	Alphanumeric             // 0-9, A-Z, space and $%*+-./:
	Numeric                  // 0-9
	modes                    // number of modes

	none = modes // unreachable DP cell
)

var modeTab = [modes]struct {
	name      string
	indicator int
	countBits [3]int // character count bits per size class
}{
	Byte:         {"byte", 4, [3]int{8, 16, 16}},
	Alphanumeric: {"alphanumeric", 2, [3]int{9, 11, 13}},
	Numeric:      {"numeric", 1, [3]int{10, 12, 14}},
}

func (m Mode) String() string {
	if m < modes {
		return modeTab[m].name
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Indicator returns the 4-bit mode indicator.
func (m Mode) Indicator() int {
	return modeTab[m].indicator
}

// CountBits returns the width of the character count field in
// a segment of mode m at the given version size class.
func (m Mode) CountBits(class int) int {
	return modeTab[m].countBits[class]
}

// Accepts reports whether r is encodable in mode m.
func (m Mode) Accepts(r rune) bool {
	switch m {
	case Numeric:
		return IsNumeric(r)
	case Alphanumeric:
		return IsAlphanumeric(r)
	}
	return true
}

// dataBits returns the length in bits of n characters (bytes in Byte
// mode) encoded in mode m, excluding the segment header.
func (m Mode) dataBits(n int) int {
	switch m {
	case Numeric:
		return n/3*10 + [3]int{0, 4, 7}[n%3]
	case Alphanumeric:
		return n/2*11 + n%2*6
	}
	return n * 8
}

// IsNumeric reports whether r is an ASCII digit.
func IsNumeric(r rune) bool {
	return '0' <= r && r <= '9'
}

// alphanumeric is the alphanumeric mode character set in byte order.
const alphanumeric = " $%*+-./0123456789:ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IsAlphanumeric reports whether r belongs to the 45 character
// alphanumeric mode set.
func IsAlphanumeric(r rune) bool {
	i := sort.Search(len(alphanumeric), func(i int) bool {
		return rune(alphanumeric[i]) >= r
	})
	return i < len(alphanumeric) && rune(alphanumeric[i]) == r
}

/*
Costs are measured in sixths of a bit, so that a numeric mode digit
(10 bits per 3 digits) costs a whole number of units.  Alphanumeric
characters (11 bits per 2) cost 5.5 bits each, and bytes 8 bits each.
*/
const (
	numericCost      = 20 // 10 bits / 3 digits
	alphanumericCost = 33 // 11 bits / 2 characters
	byteCost         = 48 // 8 bits
)

// headCost returns the cost of a segment header in mode m:
// mode indicator and character count field.
func (m Mode) headCost(class int) int {
	return (4 + m.CountBits(class)) * 6
}

// charCost returns the cost of appending a character of n bytes
// to a segment of mode m.
func (m Mode) charCost(n int) int {
	switch m {
	case Numeric:
		return numericCost
	case Alphanumeric:
		return alphanumericCost
	}
	return byteCost * n
}
