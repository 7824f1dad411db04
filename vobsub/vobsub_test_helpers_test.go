/*
NAME
  vobsub_test_helpers_test.go - synthetic MPEG-PS/PES byte builders for tests.

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

// encodePTS33 encodes a 33-bit 90kHz PTS into the standard 5-byte
// "PTS only" field (leading nibble 0010) that github.com/Comcast/gots/pes
// expects.
func encodePTS33(pts uint32) [5]byte {
	p := uint64(pts)
	var b [5]byte
	b[0] = 0x20 | byte((p>>29)&0x0E) | 0x01
	b[1] = byte((p >> 22) & 0xFF)
	b[2] = byte(((p>>15)&0x7F)<<1) | 0x01
	b[3] = byte((p >> 7) & 0xFF)
	b[4] = byte((p&0x7F)<<1) | 0x01
	return b
}

// buildPESPacket assembles a standard PES packet carrying a single
// PTS-only timestamp, per the layout github.com/Comcast/gots/pes parses
// (matching container/mts/payload.go's NewPESHeader/PTS/Data usage).
func buildPESPacket(streamID byte, ptsTicks uint32, payload []byte) []byte {
	pts := encodePTS33(ptsTicks)
	headerDataLen := byte(len(pts))
	bodyLen := 1 + 1 + 1 + int(headerDataLen) + len(payload) // flags1+flags2+hdrlen+PTS+payload

	out := []byte{0x00, 0x00, 0x01, streamID}
	out = append(out, byte(bodyLen>>8), byte(bodyLen))
	out = append(out, 0x80, 0x80, headerDataLen)
	out = append(out, pts[:]...)
	out = append(out, payload...)
	return out
}

// buildSubtitleSPU assembles one minimal SPU carrying a solid-color
// rectangle: width*height pixels of RLE code 1 across both fields, a
// display area, palette/alpha selection for code 1, and explicit field
// offsets, terminated by a self-referencing control block.
func buildSubtitleSPU(x, y, width, height int, paletteSlot byte) []byte {
	lineCode := []byte{0x01, 0x91} // run=100 color=1 per the 16-bit tier
	fieldLines := (height + 1) / 2
	var even, odd []byte
	for i := 0; i < fieldLines; i++ {
		even = append(even, lineCode...)
		odd = append(odd, lineCode...)
	}

	dcsqOffset := 4 + len(even) + len(odd)
	blockStart := dcsqOffset

	x1, y1 := x, y
	x2, y2 := x+width-1, y+height-1
	area := []byte{
		byte(x1 >> 4),
		byte((x1&0x0F)<<4) | byte(x2>>8),
		byte(x2),
		byte(y1 >> 4),
		byte((y1&0x0F)<<4) | byte(y2>>8),
		byte(y2),
	}

	palette := []byte{0x00, paletteSlot << 4}       // sel1 = paletteSlot, others 0
	alpha := []byte{0x00, 0x0F << 4}                // sel1 = 15 (full), others 0
	fieldOff := []byte{0x00, 0x04, byte(len(even) >> 8), byte(4 + len(even))}

	block := []byte{0x00, 0x00, byte(blockStart >> 8), byte(blockStart)}
	block = append(block, cmdSetPalette)
	block = append(block, palette...)
	block = append(block, cmdSetAlpha)
	block = append(block, alpha...)
	block = append(block, cmdSetDisplayArea)
	block = append(block, area...)
	block = append(block, cmdSetFieldOffset)
	block = append(block, fieldOff...)
	block = append(block, cmdEndOfBlock)

	total := dcsqOffset + len(block)
	spu := []byte{byte(total >> 8), byte(total), byte(dcsqOffset >> 8), byte(dcsqOffset)}
	spu = append(spu, even...)
	spu = append(spu, odd...)
	spu = append(spu, block...)
	return spu
}
