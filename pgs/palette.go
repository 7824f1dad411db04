/*
NAME
  palette.go - Palette Definition Segment parsing.

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

import "github.com/ausocean/subtitle/sutil"

// paletteEntries is the maximum number of entries a palette may define.
const paletteEntries = 256

// Palette is a Palette Definition Segment: an id, a version, and up to
// 256 entries converted to packed RGBA at parse time. Entries never
// written by the bitstream remain the zero value, fully transparent.
type Palette struct {
	ID      byte
	Version byte
	RGBA    [paletteEntries][4]byte
}

// parsePalette reads a palette definition segment of the given declared
// length from r. Wire order per entry is (id, Y, Cr, Cb, A); note Cr
// precedes Cb on the wire, so entries are passed to sutil.YCbCrToRGBA
// in the (Y, Cb, Cr, A) order that function expects.
func parsePalette(r *sutil.Reader, length int) (Palette, bool) {
	var p Palette
	id, ok := r.U8()
	if !ok {
		return p, false
	}
	version, ok := r.U8()
	if !ok {
		return p, false
	}
	p.ID, p.Version = id, version

	if length < 2 {
		return p, true
	}
	count := (length - 2) / 5
	for i := 0; i < count; i++ {
		entryID, ok := r.U8()
		if !ok {
			break
		}
		y, ok := r.U8()
		if !ok {
			break
		}
		cr, ok := r.U8()
		if !ok {
			break
		}
		cb, ok := r.U8()
		if !ok {
			break
		}
		a, ok := r.U8()
		if !ok {
			break
		}
		p.RGBA[entryID] = sutil.YCbCrToRGBA(y, cb, cr, a)
	}
	return p, true
}
