/*
NAME
  rle_test.go - tests for the 2-bit interlaced-field RLE codec.

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

import "testing"

func TestReadCode0x45(t *testing.T) {
	n := newNibbleReader([]byte{0x45})
	run, color, progressed := readCode(n)
	if !progressed || run != 1 || color != 0 {
		t.Fatalf("first code = (%d,%d,%v), want (1,0,true)", run, color, progressed)
	}
	run, color, progressed = readCode(n)
	if !progressed || run != 1 || color != 1 {
		t.Fatalf("second code = (%d,%d,%v), want (1,1,true)", run, color, progressed)
	}
	if !n.done() {
		t.Error("reader not exhausted after two codes from one byte")
	}
}

func TestReadCodeExhausted(t *testing.T) {
	n := newNibbleReader(nil)
	_, _, progressed := readCode(n)
	if progressed {
		t.Error("readCode on empty input reported progress")
	}
}

func TestDecodeFieldSolidRun(t *testing.T) {
	lut := [4][4]byte{
		{0, 0, 0, 0},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	// Encode run=4 color=1 as an 8-bit code: n0=1 (forces the 8-bit
	// tier), n1=1, giving v8=0x11=17, run=17>>2=4, color=17&3=1.
	data := []byte{0x11}
	dst := make([][4]byte, 4*1)
	decodeField(data, 0, 4, 1, lut, dst)
	for i, px := range dst {
		if px != lut[1] {
			t.Errorf("dst[%d] = %v, want %v", i, px, lut[1])
		}
	}
}

func TestDecodeFieldExhaustedInputFillsTransparent(t *testing.T) {
	lut := [4][4]byte{
		{0, 0, 0, 0},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	dst := make([][4]byte, 4*4)
	for i := range dst {
		dst[i] = [4]byte{9, 9, 9, 9} // sentinel, should be overwritten
	}
	decodeField(nil, 0, 4, 4, lut, dst)
	for row := 0; row < 4; row += 2 {
		for col := 0; col < 4; col++ {
			if dst[row*4+col] != lut[0] {
				t.Errorf("row %d col %d = %v, want transparent", row, col, dst[row*4+col])
			}
		}
	}
}

func TestDecodeFieldOwnsOnlyItsRows(t *testing.T) {
	lut := [4][4]byte{
		{0, 0, 0, 0},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	dst := make([][4]byte, 2*2)
	for i := range dst {
		dst[i] = [4]byte{7, 7, 7, 7}
	}
	// Even field (rowOffset 0) only touches row 0.
	decodeField(nil, 0, 2, 2, lut, dst)
	if dst[0] != lut[0] || dst[1] != lut[0] {
		t.Errorf("row 0 not filled transparent: %v %v", dst[0], dst[1])
	}
	if dst[2] != ([4]byte{7, 7, 7, 7}) || dst[3] != ([4]byte{7, 7, 7, 7}) {
		t.Errorf("row 1 modified by even-field decode: %v %v", dst[2], dst[3])
	}
}
