/*
NAME
  rle.go - PGS run-length bitmap codec.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pgs

// DecodeRLEToIndexed fills dst with palette indices decoded from the
// PGS RLE-coded src, stopping when dst is full or src is exhausted.
// A non-zero byte is a literal palette index of run length 1. A zero
// byte starts a control code whose second byte's top two bits select
// a transparent or colored run, either 6-bit or 14-bit long; a 6-bit
// transparent run of length 0 is an end-of-line marker and produces no
// pixels. It returns the number of indices written.
func DecodeRLEToIndexed(src []byte, dst []byte) int {
	idx := 0
	pos := 0
	n := len(src)
	dstLen := len(dst)

	for pos < n && idx < dstLen {
		b1 := src[pos]
		pos++

		if b1 != 0 {
			dst[idx] = b1
			idx++
			continue
		}

		if pos >= n {
			break
		}
		b2 := src[pos]
		pos++

		if b2 == 0 {
			continue // end of line: no pixels
		}

		var count int
		var color byte
		switch {
		case b2&0xC0 == 0xC0:
			high := int(b2 & 0x3F)
			low := byteAt(src, pos)
			pos++
			color = byteAt(src, pos)
			pos++
			count = high<<8 | int(low)
		case b2&0x80 != 0:
			count = int(b2 & 0x3F)
			color = byteAt(src, pos)
			pos++
		case b2&0x40 != 0:
			high := int(b2 & 0x3F)
			low := byteAt(src, pos)
			pos++
			count = high<<8 | int(low)
			color = 0
		default:
			count = int(b2 & 0x3F)
			color = 0
		}

		end := idx + count
		if end > dstLen {
			end = dstLen
		}
		fillIndexed(dst[idx:end], color)
		idx = end
	}
	return idx
}

// DecodeRLEToRGBA decodes src directly to packed RGBA pixels via a
// palette lookup, fusing decode and palette application. Out-of-range
// indices (and any palette shorter than 256 entries) emit 0. It
// returns the number of pixels written.
func DecodeRLEToRGBA(src []byte, palette [][4]byte, dst [][4]byte) int {
	idx := 0
	pos := 0
	n := len(src)
	dstLen := len(dst)
	palLen := len(palette)

	var transparent [4]byte
	if palLen > 0 {
		transparent = palette[0]
	}

	lookup := func(i byte) [4]byte {
		if int(i) < palLen {
			return palette[i]
		}
		return [4]byte{}
	}

	for pos < n && idx < dstLen {
		b1 := src[pos]
		pos++

		if b1 != 0 {
			dst[idx] = lookup(b1)
			idx++
			continue
		}

		if pos >= n {
			break
		}
		b2 := src[pos]
		pos++

		if b2 == 0 {
			continue
		}

		var count int
		var color [4]byte
		switch {
		case b2&0xC0 == 0xC0:
			high := int(b2 & 0x3F)
			low := byteAt(src, pos)
			pos++
			ci := byteAt(src, pos)
			pos++
			count = high<<8 | int(low)
			color = lookup(ci)
		case b2&0x80 != 0:
			count = int(b2 & 0x3F)
			ci := byteAt(src, pos)
			pos++
			color = lookup(ci)
		case b2&0x40 != 0:
			high := int(b2 & 0x3F)
			low := byteAt(src, pos)
			pos++
			count = high<<8 | int(low)
			color = transparent
		default:
			count = int(b2 & 0x3F)
			color = transparent
		}

		end := idx + count
		if end > dstLen {
			end = dstLen
		}
		fillRGBA(dst[idx:end], color)
		idx = end
	}
	return idx
}

// ApplyPalette writes target[i] = palette[indexed[i]] for every i where
// indexed[i] is within range of both slices, else 0.
func ApplyPalette(indexed []byte, palette [][4]byte, target [][4]byte) {
	n := len(indexed)
	if len(target) < n {
		n = len(target)
	}
	palLen := len(palette)
	for i := 0; i < n; i++ {
		if int(indexed[i]) < palLen {
			target[i] = palette[indexed[i]]
		} else {
			target[i] = [4]byte{}
		}
	}
}

// byteAt returns src[i], or 0 if i is out of range, matching the
// source's tolerance for truncated control codes.
func byteAt(src []byte, i int) byte {
	if i < 0 || i >= len(src) {
		return 0
	}
	return src[i]
}

// fillIndexed sets every element of dst to v.
func fillIndexed(dst []byte, v byte) {
	for i := range dst {
		dst[i] = v
	}
}

// fillRGBA sets every element of dst to v.
func fillRGBA(dst [][4]byte, v [4]byte) {
	for i := range dst {
		dst[i] = v
	}
}
