/*
NAME
  pgs_test_helpers_test.go - raw PGS byte stream builders shared by tests.

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

func putU16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
func putU24(v uint32) []byte { return []byte{byte(v >> 16), byte(v >> 8), byte(v)} }
func putU32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// buildSegment returns one PGS segment, including its repeated
// "PG"+PTS+DTS header, per the on-wire layout this package parses.
func buildSegment(pts, dts uint32, segType SegmentType, payload []byte) []byte {
	out := append([]byte{0x50, 0x47}, putU32(pts)...)
	out = append(out, putU32(dts)...)
	out = append(out, byte(segType))
	out = append(out, putU16(uint16(len(payload)))...)
	out = append(out, payload...)
	return out
}

// buildPaletteSegment builds a palette segment with one grayscale-ish
// ramp entry per index in ids.
func buildPaletteSegment(pts, dts uint32, id, version byte, ids []byte) []byte {
	payload := []byte{id, version}
	for _, entryID := range ids {
		payload = append(payload, entryID, entryID, 128, 128, 0xFF)
	}
	return buildSegment(pts, dts, SegPaletteDefinition, payload)
}

// buildObjectSegment builds a single-fragment (first+last) object
// definition segment carrying rle as its RLE payload.
func buildObjectSegment(pts, dts uint32, id uint16, version byte, width, height uint16, rle []byte) []byte {
	payload := append(putU16(id), version, seqFirst|seqLast)
	payload = append(payload, putU24(uint32(len(rle)+4))...)
	payload = append(payload, putU16(width)...)
	payload = append(payload, putU16(height)...)
	payload = append(payload, rle...)
	return buildSegment(pts, dts, SegObjectDefinition, payload)
}

// buildCompositionSegment builds a presentation composition segment
// with a single composition object at (x, y) bound to objectID.
func buildCompositionSegment(pts, dts uint32, width, height uint16, number uint16, state CompositionState, paletteID byte, objectID uint16, windowID byte, x, y uint16) []byte {
	payload := append(putU16(width), putU16(height)...)
	payload = append(payload, 0x20) // frame rate, arbitrary
	payload = append(payload, putU16(number)...)
	payload = append(payload, byte(state), 0x00, paletteID, 0x01)
	payload = append(payload, putU16(objectID)...)
	payload = append(payload, windowID, 0x00)
	payload = append(payload, putU16(x)...)
	payload = append(payload, putU16(y)...)
	return buildSegment(pts, dts, SegPresentationComposition, payload)
}

// buildWindowSegment builds a window definition segment with one window.
func buildWindowSegment(pts, dts uint32, id byte, x, y, w, h uint16) []byte {
	payload := []byte{0x01, id}
	payload = append(payload, putU16(x)...)
	payload = append(payload, putU16(y)...)
	payload = append(payload, putU16(w)...)
	payload = append(payload, putU16(h)...)
	return buildSegment(pts, dts, SegWindowDefinition, payload)
}

// buildEndSegment builds an End segment with an empty payload.
func buildEndSegment(pts, dts uint32) []byte {
	return buildSegment(pts, dts, SegEnd, nil)
}

// concatAll concatenates byte slices in order.
func concatAll(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
