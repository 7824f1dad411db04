/*
NAME
  rle.go - VobSub 2-bit interlaced-field RLE codec.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vobsub

// nibbleReader walks a byte slice two bits... four bits (one nibble) at
// a time, tracking byte-alignment so a line can force-align to the
// next byte boundary at end-of-line.
type nibbleReader struct {
	data    []byte
	bytePos int
	highBit bool // true = about to read the high nibble of data[bytePos]
}

func newNibbleReader(data []byte) *nibbleReader {
	return &nibbleReader{data: data, highBit: true}
}

func (n *nibbleReader) done() bool { return n.bytePos >= len(n.data) }

// nibble reads the next 4-bit value, or 0 if exhausted.
func (n *nibbleReader) nibble() byte {
	if n.done() {
		return 0
	}
	b := n.data[n.bytePos]
	var v byte
	if n.highBit {
		v = b >> 4
		n.highBit = false
	} else {
		v = b & 0x0F
		n.highBit = true
		n.bytePos++
	}
	return v
}

// alignByte skips a pending low nibble so the next read starts at a
// byte boundary.
func (n *nibbleReader) alignByte() {
	if !n.highBit {
		n.highBit = true
		n.bytePos++
	}
}

// readCode reads one run-length code per §4.9's four-tier nibble
// scheme, returning (run length, 2-bit color index, progressed).
// progressed is false when the reader was already exhausted, letting
// the caller detect non-progress and fall back to transparent fill.
func readCode(n *nibbleReader) (run int, color byte, progressed bool) {
	if n.done() {
		return 0, 0, false
	}
	n0 := n.nibble()
	if n0 >= 0x4 {
		return int(n0 >> 2), n0 & 3, true
	}
	n1 := n.nibble()
	v8 := int(n0)<<4 | int(n1)
	if v8 >= 0x10 {
		return v8 >> 2, byte(v8 & 3), true
	}
	n2 := n.nibble()
	v12 := v8<<4 | int(n2)
	if v12 >= 0x040 {
		return v12 >> 2, byte(v12 & 3), true
	}
	n3 := n.nibble()
	v16 := v12<<4 | int(n3)
	return v16 >> 2, byte(v16 & 3), true
}

// decodeField decodes one interlaced field (even or odd) of a VobSub
// bitmap into dst, a width*height RGBA buffer where only the rows this
// field owns (stride 2, starting at rowOffset) are written. lut maps a
// 2-bit color index to its resolved RGBA value. Decoding stops cleanly
// on an exhausted or non-progressing input, filling the remainder of
// the current and subsequent owned lines with lut[0] (transparent).
func decodeField(data []byte, rowOffset, width, height int, lut [4][4]byte, dst [][4]byte) {
	r := newNibbleReader(data)
	row := rowOffset
	col := 0

	fillRestTransparent := func() {
		for row < height {
			for ; col < width; col++ {
				dst[row*width+col] = lut[0]
			}
			col = 0
			row += 2
		}
	}

	for row < height {
		run, color, progressed := readCode(r)
		if !progressed {
			fillRestTransparent()
			return
		}
		if run == 0 {
			// End of line: fill remainder with transparent, advance to
			// the next owned line, and force byte alignment.
			for ; col < width; col++ {
				dst[row*width+col] = lut[0]
			}
			col = 0
			row += 2
			r.alignByte()
			continue
		}
		px := lut[color]
		for i := 0; i < run && col < width; i++ {
			dst[row*width+col] = px
			col++
		}
		if col >= width {
			col = 0
			row += 2
			r.alignByte()
		}
	}
}
