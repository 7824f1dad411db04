/*
NAME
  psscan.go - MPEG-2 Program Stream scanner and PES reassembly.

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

import "github.com/Comcast/gots/pes"

// scanBound is the maximum number of bytes parseSubtitlePacket will
// scan forward from start before giving up, per §4.7's 256 KiB limit.
const scanBound = 256 * 1024

const (
	streamIDPackHeader    = 0xBA
	streamIDPadding       = 0xBE
	streamIDPrivateStream = 0xBD
)

// parseSubtitlePacket scans buf from start for an MPEG-2 Program Stream
// private-stream-1 payload (the SPU), reassembling it across however
// many PES packets it spans. It returns the PTS captured from the
// first PES packet that carried one, the assembled SPU bytes, and
// whether a complete (or at least non-empty) SPU was found before the
// scan bound or end of buffer.
func parseSubtitlePacket(buf []byte, start int) (ptsMs uint32, spu []byte, ok bool) {
	end := start + scanBound
	if end > len(buf) || end < start {
		end = len(buf)
	}

	pos := start
	var accum []byte
	var ptsCaptured bool
	declaredSize := -1

	for pos+3 < end {
		if buf[pos] != 0x00 || buf[pos+1] != 0x00 || buf[pos+2] != 0x01 {
			pos++
			continue
		}
		code := buf[pos+3]

		switch {
		case code == streamIDPackHeader:
			n, ok := skipPackHeader(buf, pos)
			if !ok {
				return ptsMs, accum, len(accum) > 0
			}
			pos = n
		case code == streamIDPadding:
			n, ok := skipLengthPrefixed(buf, pos+4)
			if !ok {
				return ptsMs, accum, len(accum) > 0
			}
			pos = n
		case code == streamIDPrivateStream:
			payload, pts, hasPTS, next, ok := readPESPacket(buf, pos)
			if !ok {
				return ptsMs, accum, len(accum) > 0
			}
			pos = next
			if hasPTS && !ptsCaptured {
				ptsMs = pts
				ptsCaptured = true
			}
			if len(payload) > 0 {
				// The first byte of a private-stream-1 payload is the
				// DVD substream id; the SPU bytes follow it.
				accum = append(accum, payload[1:]...)
				if declaredSize < 0 && len(accum) >= 2 {
					declaredSize = int(accum[0])<<8 | int(accum[1])
				}
				if declaredSize >= 0 && len(accum) >= declaredSize {
					return ptsMs, accum[:declaredSize], true
				}
			}
		case code >= 0xBC:
			n, ok := skipLengthPrefixed(buf, pos+4)
			if !ok {
				return ptsMs, accum, len(accum) > 0
			}
			if len(accum) > 0 {
				// A foreign stream interleaved after our payload has
				// started ends this packet's scan.
				return ptsMs, accum, true
			}
			pos = n
		default:
			pos++
		}
	}
	return ptsMs, accum, len(accum) > 0
}

// skipPackHeader advances past a pack_header (0xBA) starting at pos,
// including its MPEG-1/MPEG-2 stuffing bytes, returning the offset of
// the next start code candidate.
func skipPackHeader(buf []byte, pos int) (int, bool) {
	base := pos + 4
	if base >= len(buf) {
		return 0, false
	}
	if buf[base]&0xC0 == 0x40 {
		// MPEG-2: 9 fixed bytes, then a stuffing-length byte whose low
		// 3 bits give additional stuffing bytes to skip.
		if base+10 > len(buf) {
			return 0, false
		}
		stuffing := int(buf[base+9] & 0x07)
		next := base + 10 + stuffing
		if next > len(buf) {
			return 0, false
		}
		return next, true
	}
	// MPEG-1: fixed 8-byte pack header.
	next := base + 8
	if next > len(buf) {
		return 0, false
	}
	return next, true
}

// skipLengthPrefixed skips a 16-bit big-endian length field at pos
// plus that many following bytes, returning the new offset.
func skipLengthPrefixed(buf []byte, pos int) (int, bool) {
	if pos+2 > len(buf) {
		return 0, false
	}
	length := int(buf[pos])<<8 | int(buf[pos+1])
	next := pos + 2 + length
	if next > len(buf) {
		return 0, false
	}
	return next, true
}

// readPESPacket parses one PES packet (any stream id) starting at the
// "00 00 01" prefix at pos, via github.com/Comcast/gots/pes. It
// returns the packet's payload (gots' Data(), including the DVD
// substream id byte for private-stream-1), the PTS in milliseconds if
// present, and the offset of the next byte after this packet.
func readPESPacket(buf []byte, pos int) (payload []byte, ptsMs uint32, hasPTS bool, next int, ok bool) {
	if pos+6 > len(buf) {
		return nil, 0, false, 0, false
	}
	length := int(buf[pos+4])<<8 | int(buf[pos+5])
	end := pos + 6 + length
	if end > len(buf) {
		return nil, 0, false, 0, false
	}

	header, err := pes.NewPESHeader(buf[pos:end])
	if err != nil {
		return nil, 0, false, 0, false
	}

	pts := header.PTS()
	if pts != 0 {
		ptsMs = uint32(pts / 90)
		hasPTS = true
	}
	return header.Data(), ptsMs, hasPTS, end, true
}
