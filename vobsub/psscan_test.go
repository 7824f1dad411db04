/*
NAME
  psscan_test.go - tests for the Program Stream scanner helpers.

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

func TestSkipPackHeaderMPEG2(t *testing.T) {
	buf := make([]byte, 0, 20)
	buf = append(buf, 0x00, 0x00, 0x01, streamIDPackHeader)
	buf = append(buf, 0x44) // top 2 bits '01' marks MPEG-2
	buf = append(buf, make([]byte, 9)...)
	buf[4+9] = 0x02 // 2 stuffing bytes, in the low 3 bits
	buf = append(buf, 0xFF, 0xFF)

	next, ok := skipPackHeader(buf, 0)
	if !ok {
		t.Fatal("skipPackHeader reported failure")
	}
	want := 4 + 10 + 2
	if next != want {
		t.Errorf("next = %d, want %d", next, want)
	}
}

func TestSkipPackHeaderMPEG1(t *testing.T) {
	buf := make([]byte, 0, 12)
	buf = append(buf, 0x00, 0x00, 0x01, streamIDPackHeader)
	buf = append(buf, 0x20) // top bits not '01' -> MPEG-1
	buf = append(buf, make([]byte, 7)...)

	next, ok := skipPackHeader(buf, 0)
	if !ok {
		t.Fatal("skipPackHeader reported failure")
	}
	if next != 4+8 {
		t.Errorf("next = %d, want %d", next, 4+8)
	}
}

func TestSkipPackHeaderTruncated(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x01, streamIDPackHeader, 0x44}
	_, ok := skipPackHeader(buf, 0)
	if ok {
		t.Error("skipPackHeader on truncated buffer reported success")
	}
}

func TestSkipLengthPrefixed(t *testing.T) {
	buf := []byte{0x00, 0x03, 0xAA, 0xBB, 0xCC, 0xDD}
	next, ok := skipLengthPrefixed(buf, 0)
	if !ok || next != 5 {
		t.Errorf("skipLengthPrefixed = %d,%v, want 5,true", next, ok)
	}
}

func TestSkipLengthPrefixedTruncated(t *testing.T) {
	buf := []byte{0x00, 0x10, 0xAA}
	_, ok := skipLengthPrefixed(buf, 0)
	if ok {
		t.Error("skipLengthPrefixed reported success past end of buffer")
	}
}

func TestParseSubtitlePacketAssemblesFullSPU(t *testing.T) {
	spu := buildSubtitleSPU(50, 400, 100, 20, 5)
	payload := append([]byte{0x20}, spu...)
	pes := buildPESPacket(streamIDPrivateStream, 90000, payload)

	ptsMs, got, ok := parseSubtitlePacket(pes, 0)
	if !ok {
		t.Fatal("parseSubtitlePacket reported failure")
	}
	if ptsMs != 1000 {
		t.Errorf("ptsMs = %d, want 1000", ptsMs)
	}
	if len(got) != len(spu) {
		t.Fatalf("len(spu) = %d, want %d", len(got), len(spu))
	}
	for i := range spu {
		if got[i] != spu[i] {
			t.Fatalf("spu[%d] = 0x%02x, want 0x%02x", i, got[i], spu[i])
		}
	}
}
