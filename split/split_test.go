// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	n := 0
	for r := rune(0); r < 0x3000; r++ {
		if IsAlphanumeric(r) {
			n++
			assert.Contains(t, alphanumeric, string(r))
		}
		assert.Equal(t, r >= '0' && r <= '9', IsNumeric(r), "rune %q", r)
	}
	assert.Equal(t, 45, n)
	for _, r := range "abz#!?_~\x7fÄ中" {
		assert.False(t, IsAlphanumeric(r), "rune %q", r)
	}
	for _, r := range " $%*+-./:09AZ" {
		assert.True(t, IsAlphanumeric(r), "rune %q", r)
	}
}

func TestModeTable(t *testing.T) {
	assert.Equal(t, 1, Numeric.Indicator())
	assert.Equal(t, 2, Alphanumeric.Indicator())
	assert.Equal(t, 4, Byte.Indicator())
	for _, tc := range []struct {
		v     Version
		class int
		bits  [modes]int
	}{
		{1, 0, [modes]int{Byte: 8, Alphanumeric: 9, Numeric: 10}},
		{9, 0, [modes]int{Byte: 8, Alphanumeric: 9, Numeric: 10}},
		{10, 1, [modes]int{Byte: 16, Alphanumeric: 11, Numeric: 12}},
		{26, 1, [modes]int{Byte: 16, Alphanumeric: 11, Numeric: 12}},
		{27, 2, [modes]int{Byte: 16, Alphanumeric: 13, Numeric: 14}},
		{40, 2, [modes]int{Byte: 16, Alphanumeric: 13, Numeric: 14}},
	} {
		require.Equal(t, tc.class, tc.v.SizeClass(), "version %v", tc.v)
		for m := Byte; m < modes; m++ {
			assert.Equal(t, tc.bits[m], m.CountBits(tc.class), "%v at %v", m, tc.v)
			assert.Equal(t, 6*(4+tc.bits[m]), m.headCost(tc.class))
		}
	}
}

func TestSegmentBits(t *testing.T) {
	for _, tc := range []struct {
		seg  Segment
		bits int
	}{
		{Segment{Numeric, "1"}, 4 + 10 + 4},
		{Segment{Numeric, "12"}, 4 + 10 + 7},
		{Segment{Numeric, "123"}, 4 + 10 + 10},
		{Segment{Numeric, "1234567"}, 4 + 10 + 24},
		{Segment{Alphanumeric, "A"}, 4 + 9 + 6},
		{Segment{Alphanumeric, "AB"}, 4 + 9 + 11},
		{Segment{Alphanumeric, "ABCDEFG"}, 4 + 9 + 39},
		{Segment{Byte, "héllo"}, 4 + 8 + 48},
		{Segment{Byte, ""}, 4 + 8},
	} {
		n, ok := tc.seg.Bits(0)
		assert.True(t, ok)
		assert.Equal(t, tc.bits, n, "%v %q", tc.seg.Mode, tc.seg.Text)
	}

	long := []Segment{{Numeric, strings.Repeat("7", 1024)}}
	_, ok := TotalBits(long, 9)
	assert.False(t, ok, "1024 digits overflow a 10 bit count")
	n, ok := TotalBits(long, 10)
	assert.True(t, ok)
	assert.Equal(t, 4+12+(1024/3*10+4), n)
}

func TestValid(t *testing.T) {
	assert.True(t, Segment{Numeric, "0123456789"}.Valid())
	assert.False(t, Segment{Numeric, "12a"}.Valid())
	assert.True(t, Segment{Alphanumeric, "HTTPS://X.ORG/$%*+-."}.Valid())
	assert.False(t, Segment{Alphanumeric, "Hello"}.Valid())
	assert.False(t, Segment{Alphanumeric, "\xc1\x81"}.Valid())
	assert.True(t, Segment{Byte, "\xff\x00anything"}.Valid())
	assert.False(t, Segment{Mode(7), ""}.Valid())
}

func TestMakeSegments(t *testing.T) {
	assert.Nil(t, MakeSegments(""))
	assert.Equal(t, []Segment{{Numeric, "0042"}}, MakeSegments("0042"))
	assert.Equal(t, []Segment{{Alphanumeric, "AB 42"}}, MakeSegments("AB 42"))
	assert.Equal(t, []Segment{{Byte, "Ab 42"}}, MakeSegments("Ab 42"))
	assert.Equal(t, Segment{Byte, "\x00\xff"}, Bytes([]byte{0, 0xff}))
}

// join returns the concatenated text of segs.
func join(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}

var samples = []string{
	"",
	"0",
	"a",
	"Hello world!",
	"1234567ABCDEFG",
	"HTTPS://MAGICLEN.ORG/path/to/12345",
	"https://magiclen.org/path/to/12345",
	"0123456789abcdefghij0123456789ABCDEFGHIJ",
	"Ünïcödé 中文 123456789012 ABC:DEF",
	"\xff\xfe invalid \xc0 utf-8 12345678",
	"A1A1A1A1A1A1A1A1A1A1A1",
	"12345678901234567890 HELLO THERE 12345678901234567890",
	strings.Repeat("314159265358979", 40) + "pi",
	strings.Repeat("QR CODE 2024 ", 60),
}

func TestSplitProperties(t *testing.T) {
	for _, text := range samples {
		for l := L; l <= H; l++ {
			segs, v, err := Split(text, l)
			require.NoError(t, err, "%q at %v", text, l)

			// Deterministic.
			segs2, v2, err := Split(text, l)
			require.NoError(t, err)
			assert.Equal(t, segs, segs2)
			assert.Equal(t, v, v2)

			// Nothing lost or reordered.
			assert.Equal(t, text, join(segs))

			// Every segment valid and non-empty, adjacent modes differ.
			for i, seg := range segs {
				assert.True(t, seg.Valid(), "%q: %v %q", text, seg.Mode, seg.Text)
				assert.NotEmpty(t, seg.Text)
				if i > 0 {
					assert.NotEqual(t, segs[i-1].Mode, seg.Mode)
				}
			}

			// Fits, and is the smallest version that fits.
			n, ok := TotalBits(segs, v)
			require.True(t, ok)
			assert.LessOrEqual(t, n, v.DataBits(l))
			if v > MinVersion {
				prev := Optimal(text, v-1)
				n, ok := TotalBits(prev, v-1)
				assert.False(t, ok && n <= (v-1).DataBits(l),
					"%q fits version %v at %v", text, v-1, l)
			}

			// Never larger than a single byte segment.
			bseg := []Segment{{Byte, text}}
			bv := MinVersion
			for ; bv < MaxVersion; bv++ {
				if n, ok := TotalBits(bseg, bv); ok && n <= bv.DataBits(l) {
					break
				}
			}
			assert.LessOrEqual(t, v, bv, "%q at %v", text, l)
		}
	}
}

// bruteForce returns the smallest encoded length of text at the given
// size class over every assignment of modes to characters.
func bruteForce(text string, v Version) int {
	cs := chars(text)
	ms := make([]Mode, len(cs))
	best := -1
	var walk func(i int)
	walk = func(i int) {
		if i == len(cs) {
			var segs []Segment
			start, off := 0, 0
			for j, c := range cs {
				off += c.len
				if j+1 == len(cs) || ms[j+1] != ms[j] {
					segs = append(segs, Segment{ms[j], text[start:off]})
					start = off
				}
			}
			if n, _ := TotalBits(segs, v); best < 0 || n < best {
				best = n
			}
			return
		}
		for m := Byte; m < modes; m++ {
			if m.Accepts(cs[i].r) {
				ms[i] = m
				walk(i + 1)
			}
		}
	}
	walk(0)
	return best
}

func TestOptimalMatchesBruteForce(t *testing.T) {
	for _, text := range []string{
		"1",
		"A1",
		"aA1",
		"12345A",
		"123A456",
		"AB1234CD",
		"a1234567",
		"1a2b3c4d",
		"ABCDE123",
		"99:99:9A",
		"x12345678y",
		"HELLO1234",
	} {
		for _, v := range []Version{1, 10, 27} {
			segs := Optimal(text, v)
			n, ok := TotalBits(segs, v)
			require.True(t, ok)
			assert.Equal(t, bruteForce(text, v), n, "%q at version %v", text, v)
		}
	}
}

func TestSplitMixed(t *testing.T) {
	segs, v, err := Split("1234567ABCDEFG", L)
	require.NoError(t, err)
	assert.Equal(t, []Segment{
		{Numeric, "1234567"},
		{Alphanumeric, "ABCDEFG"},
	}, segs)
	assert.Equal(t, Version(1), v)
	n, _ := TotalBits(segs, v)
	b, _ := TotalBits([]Segment{{Byte, "1234567ABCDEFG"}}, v)
	assert.Equal(t, 90, n)
	assert.Less(t, n, b)
}

func TestSplitURL(t *testing.T) {
	segs, v, err := Split("HTTPS://MAGICLEN.ORG/path/to/12345", L)
	require.NoError(t, err)
	assert.Equal(t, Version(2), v)
	require.NotEmpty(t, segs)
	assert.Equal(t, Segment{Alphanumeric, "HTTPS://MAGICLEN.ORG/"}, segs[0])
	assert.Equal(t, Segment{Numeric, "12345"}, segs[len(segs)-1])

	// The same URL in lower case, as a single byte segment.
	bseg := []Segment{{Byte, "https://magiclen.org/path/to/12345"}}
	n, ok := TotalBits(bseg, 2)
	require.True(t, ok)
	assert.Greater(t, n, Version(2).DataBits(L))
	assert.Less(t, v.Size(), Version(3).Size())
}

func TestSplitCapacity(t *testing.T) {
	// 3057 digits fill version 40 at level H to the bit.
	digits := strings.Repeat("0123456789", 306)
	segs, v, err := Split(digits[:3057], H)
	require.NoError(t, err)
	assert.Equal(t, MaxVersion, v)
	assert.Equal(t, []Segment{{Numeric, digits[:3057]}}, segs)
	n, _ := TotalBits(segs, v)
	assert.Equal(t, v.DataBits(H), n)

	for _, tc := range []struct {
		text  string
		level Level
	}{
		{digits[:3058], H},
		{strings.Repeat("9", 7090), L},
		{strings.Repeat("A", 4297), L},
		{strings.Repeat("a", 2954), L},
		{strings.Repeat("ab12", 2000), M},
	} {
		assert.NotPanics(t, func() {
			segs, v, err := Split(tc.text, tc.level)
			assert.ErrorIs(t, err, ErrDataTooLong)
			assert.Nil(t, segs)
			assert.Zero(t, v)
		})
	}

	// Largest inputs that fit.
	for _, tc := range []struct {
		text  string
		level Level
	}{
		{strings.Repeat("9", 7089), L},
		{strings.Repeat("A", 4296), L},
		{strings.Repeat("a", 2953), L},
	} {
		_, v, err := Split(tc.text, tc.level)
		require.NoError(t, err)
		assert.Equal(t, MaxVersion, v)
	}
}

func TestSplitEmpty(t *testing.T) {
	segs, v, err := Split("", H)
	require.NoError(t, err)
	assert.Empty(t, segs)
	assert.Equal(t, MinVersion, v)
}

func TestInvalidArgs(t *testing.T) {
	assert.Panics(t, func() { Split("x", Level(4)) })
	assert.Panics(t, func() { Version(0).DataCodewords(L) })
	assert.Panics(t, func() { Version(41).DataCodewords(L) })
	assert.Panics(t, func() { Optimal("x", 0) })
}
