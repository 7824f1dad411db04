/*
NAME
  dcsq.go - DVD Display Control Sequence interpretation.

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

// DCSQ command identifiers.
const (
	cmdForcedDisplay  = 0x00
	cmdStartDisplay   = 0x01
	cmdStopDisplay    = 0x02
	cmdSetPalette     = 0x03
	cmdSetAlpha       = 0x04
	cmdSetDisplayArea = 0x05
	cmdSetFieldOffset = 0x06
	cmdEndOfBlock     = 0xFF
)

// maxChainBlocks bounds DCSQ control-block chain traversal per §5.
const maxChainBlocks = 1000

// dcsqResult is the decoded contents of an SPU's control chain.
type dcsqResult struct {
	durationMs            uint32
	colorIndices          [4]byte
	alphaValues           [4]byte
	x, y                  int
	width, height         int
	evenOffset, oddOffset int
}

// defaultColorIndices and defaultAlphaValues seed a dcsqResult before
// its control chain runs, matching the DVD spec's own defaults: an SPU
// with no explicit set-palette/set-alpha command still renders with
// increasing opacity rather than as fully transparent.
var (
	defaultColorIndices = [4]byte{0, 1, 2, 3}
	defaultAlphaValues  = [4]byte{0, 15, 15, 15}
)

// interpretDCSQ walks the control block chain of an SPU, starting at
// the offset declared in its 4-byte header (u16 total size, u16 offset
// to the first control block), per §4.8.
func interpretDCSQ(spu []byte) dcsqResult {
	res := dcsqResult{colorIndices: defaultColorIndices, alphaValues: defaultAlphaValues}
	if len(spu) < 4 {
		return res
	}
	firstOffset := int(spu[2])<<8 | int(spu[3])

	blockStart := firstOffset
	stopped := false
	for iter := 0; iter < maxChainBlocks && !stopped; iter++ {
		if blockStart < 0 || blockStart+4 > len(spu) {
			break
		}
		delay := int(spu[blockStart])<<8 | int(spu[blockStart+1])
		nextOffset := int(spu[blockStart+2])<<8 | int(spu[blockStart+3])

		pos := blockStart + 4
		endOfBlock := false
		for pos < len(spu) && !endOfBlock {
			cmd := spu[pos]
			pos++
			switch cmd {
			case cmdForcedDisplay:
				// Parsed, not applied.
			case cmdStartDisplay:
				// Implied: the packet's own PTS is the start time.
			case cmdStopDisplay:
				res.durationMs = uint32(delay) * 1024 / 90
				stopped = true
			case cmdSetPalette:
				if pos+2 > len(spu) {
					endOfBlock = true
					break
				}
				// Packed [3][2] [1][0]: color_indices[i] is the
				// selection for RLE code i, so unpack in reverse.
				res.colorIndices = [4]byte{
					spu[pos+1] & 0x0F, spu[pos+1] >> 4,
					spu[pos] & 0x0F, spu[pos] >> 4,
				}
				pos += 2
			case cmdSetAlpha:
				if pos+2 > len(spu) {
					endOfBlock = true
					break
				}
				res.alphaValues = [4]byte{
					spu[pos+1] & 0x0F, spu[pos+1] >> 4,
					spu[pos] & 0x0F, spu[pos] >> 4,
				}
				pos += 2
			case cmdSetDisplayArea:
				if pos+6 > len(spu) {
					endOfBlock = true
					break
				}
				x1 := int(spu[pos])<<4 | int(spu[pos+1])>>4
				x2 := (int(spu[pos+1]&0x0F) << 8) | int(spu[pos+2])
				y1 := int(spu[pos+3])<<4 | int(spu[pos+4])>>4
				y2 := (int(spu[pos+4]&0x0F) << 8) | int(spu[pos+5])
				res.x, res.y = x1, y1
				res.width = x2 - x1 + 1
				res.height = y2 - y1 + 1
				pos += 6
			case cmdSetFieldOffset:
				if pos+4 > len(spu) {
					endOfBlock = true
					break
				}
				res.evenOffset = int(spu[pos])<<8 | int(spu[pos+1])
				res.oddOffset = int(spu[pos+2])<<8 | int(spu[pos+3])
				pos += 4
			case cmdEndOfBlock:
				endOfBlock = true
			default:
				// Unknown command with no declared payload length.
				endOfBlock = true
			}
		}

		if stopped {
			break
		}
		if nextOffset < firstOffset || nextOffset <= blockStart {
			break
		}
		blockStart = nextOffset
	}
	return res
}

// fieldBounds resolves the even/odd field byte ranges within spu, per
// §4.8's offset defaulting rules. An empty (zero) odd offset extends
// the even field to cover the whole remaining payload and collapses
// the odd field to a zero-length range, rendering it transparent.
func fieldBounds(spu []byte, res dcsqResult) (evenStart, evenEnd, oddStart, oddEnd int) {
	top := res.evenOffset
	if top == 0 {
		top = 4
	}
	dcsqOffset := 4
	if len(spu) >= 4 {
		dcsqOffset = int(spu[2])<<8 | int(spu[3])
	}
	bottom := res.oddOffset
	if bottom == 0 {
		bottom = dcsqOffset
	}
	return top, bottom, bottom, dcsqOffset
}
