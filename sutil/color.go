/*
NAME
  color.go - YCbCr to RGBA conversion shared by PGS and VobSub.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sutil

import "math"

// YCbCrToRGBA converts a BT.601 YCbCr+alpha pixel to packed RGBA bytes
// (R, G, B, A byte order, least-significant byte first). Channel values
// are clipped to [0,255] after rounding to the nearest integer.
func YCbCrToRGBA(y, cb, cr, a byte) [4]byte {
	fy := float64(y)
	fcb := float64(cb) - 128
	fcr := float64(cr) - 128

	r := clampRound(fy + 1.40200*fcr)
	g := clampRound(fy - 0.34414*fcb - 0.71414*fcr)
	b := clampRound(fy + 1.77200*fcb)

	return [4]byte{r, g, b, a}
}

// RGBToRGBA packs an 8-bit RGB triple plus alpha into RGBA byte order.
func RGBToRGBA(r, g, b, a byte) [4]byte { return [4]byte{r, g, b, a} }

func clampRound(v float64) byte {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
