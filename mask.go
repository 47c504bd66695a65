// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrgen

import "rsc.io/qr/coding"

// penalty returns the penalty value for a QR code.  The value is used
// for choosing the mask.
//
// Total penalty is the sum of penalties for runs and boxes of
// same-colour modules, finder-like patterns and colour balance.
//
//   - RunP: for non-overlapping runs of n modules, n>=5 -> n-2
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for 1:1:3:1:1 dark-light patterns with four light modules
//     on one side and one on the other -> 40.  The quiet zone counts
//     as light.
//   - BalP: for n% of black modules -> 10*(ceiling(abs(n-50)/5)-1)
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
func penalty(c *coding.Code) int {
	const (
		MinRun = 5  // RunP: minimum run length
		RunPP  = 3  // RunP: points for a run of MinRun
		BoxPP  = 3  // BoxP: points per box
		FindPP = 40 // FindP: points per pattern
		BalPP  = 10 // BalP: points per 5% off balance
	)
	siz := c.Size
	p := 0

	// rows, then columns: RunP, FindP
	for dir := 0; dir < 2; dir++ {
		for i := 0; i < siz; i++ {
			h := runHistory{quiet: siz}
			black, r := false, 0
			for j := 0; j < siz; j++ {
				x, y := j, i
				if dir != 0 {
					x, y = i, j
				}
				if c.Black(x, y) == black {
					if r++; r == MinRun {
						p += RunPP
					} else if r > MinRun {
						p++
					}
					continue
				}
				h.add(r)
				if !black {
					p += h.count() * FindPP
				}
				black, r = !black, 1
			}
			p += h.end(black, r) * FindPP
		}
	}

	// BoxP and black modules for BalP
	dark := 0
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			b := c.Black(x, y)
			if b {
				dark++
			}
			if x+1 < siz && y+1 < siz && b == c.Black(x+1, y) &&
				b == c.Black(x, y+1) && b == c.Black(x+1, y+1) {
				p += BoxPP
			}
		}
	}

	// BalP
	total := siz * siz
	d := dark*20 - total*10
	if d < 0 {
		d = -d
	}
	p += ((d+total-1)/total - 1) * BalPP
	return p
}

// runHistory holds the lengths of the last seven runs in a line,
// latest first, for detecting finder-like patterns.
type runHistory struct {
	run   [7]int
	quiet int // light modules added before the first run
}

func (h *runHistory) add(n int) {
	if h.run[0] == 0 {
		n += h.quiet
	}
	copy(h.run[1:], h.run[:6])
	h.run[0] = n
}

// count returns the number of finder-like patterns ending at the
// latest light run, 0 to 2.
func (h *runHistory) count() int {
	r := &h.run
	n := r[1]
	if n == 0 || r[2] != n || r[3] != n*3 || r[4] != n || r[5] != n {
		return 0
	}
	c := 0
	if r[0] >= n*4 && r[6] >= n {
		c++
	}
	if r[6] >= n*4 && r[0] >= n {
		c++
	}
	return c
}

// end adds the last run of a line and the quiet zone after it, and
// returns the number of finder-like patterns found.
func (h *runHistory) end(black bool, r int) int {
	if black {
		h.add(r)
		r = 0
	}
	h.add(r + h.quiet)
	return h.count()
}
