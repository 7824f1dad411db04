/*
NAME
  displayset.go - display-set parsing and top-level stream recovery.

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

// DisplaySet is all segments between two End segments, plus the PTS/DTS
// taken from the PGS header. It owns its palettes, objects, windows and
// at most one composition.
type DisplaySet struct {
	PTS, DTS    uint32
	Composition *Composition
	Palettes    []Palette
	Objects     []ObjectFragment
	Windows     []Window
}

// PTSMillis returns the presentation timestamp converted from the
// 90kHz PGS clock to milliseconds.
func (d DisplaySet) PTSMillis() uint32 { return d.PTS / 90 }

// parseDisplaySet parses one display set starting at the front of buf.
// It returns the display set and the number of bytes consumed, or
// ok=false if the very first segment header could not be read or no
// End segment was reached (the stream-level scanner in ParseStream uses
// this to trigger recovery).
func parseDisplaySet(buf []byte) (DisplaySet, int, bool) {
	r := sutil.NewReader(buf)
	var ds DisplaySet
	first := true

	for {
		m, ok := r.U16()
		if !ok || m != magic {
			if first {
				return ds, 0, false
			}
			break
		}
		pts, ok := r.U32()
		if !ok {
			break
		}
		dts, ok := r.U32()
		if !ok {
			break
		}
		if first {
			ds.PTS, ds.DTS = pts, dts
		}

		segType, ok := r.U8()
		if !ok {
			break
		}
		segSize, ok := r.U16()
		if !ok {
			break
		}
		size := int(segSize)
		if r.Remaining() < size {
			break
		}
		start := r.Position()

		switch SegmentType(segType) {
		case SegPaletteDefinition:
			if p, ok := parsePalette(r, size); ok {
				ds.Palettes = append(ds.Palettes, p)
			}
		case SegObjectDefinition:
			if o, ok := parseObject(r, size); ok {
				ds.Objects = append(ds.Objects, o)
			}
		case SegPresentationComposition:
			if c, ok := parseComposition(r); ok {
				ds.PTS, ds.DTS = pts, dts
				ds.Composition = &c
			}
		case SegWindowDefinition:
			if ws, ok := parseWindows(r); ok {
				ds.Windows = append(ds.Windows, ws...)
			}
		case SegEnd:
			// Ensure we consume the declared (possibly zero) size before
			// stopping, then stop: the display set is complete.
			consumed := r.Position() - start
			if consumed < size {
				r.Skip(size - consumed)
			}
			first = false
			return ds, r.Position(), true
		default:
			// Unknown segment type: skip, not an error.
			r.Skip(size)
		}

		// Enforce the declared segment size regardless of how much the
		// parser above actually consumed.
		consumed := r.Position() - start
		if consumed < size {
			r.Skip(size - consumed)
		}
		first = false
	}
	return ds, r.Position(), false
}

// ParseStream parses every display set in buf, recovering from
// corruption by forward-scanning for the next "PG" magic candidate.
// Per §4.3, a failed parse at offset o advances by 1 byte, then scans
// for the next 0x50 byte; if followed by 0x47 that becomes the new
// candidate start, otherwise scanning continues.
func ParseStream(buf []byte) []DisplaySet {
	var out []DisplaySet
	offset := 0
	n := len(buf)
	for offset < n {
		ds, consumed, ok := parseDisplaySet(buf[offset:])
		if ok && consumed > 0 {
			out = append(out, ds)
			offset += consumed
			continue
		}

		// Recovery: advance one byte, then scan for "PG".
		offset++
		for offset < n-1 {
			if buf[offset] == 0x50 && buf[offset+1] == 0x47 {
				break
			}
			offset++
		}
	}
	return out
}

// FindWindow returns the window with the given id, if any.
func (d DisplaySet) FindWindow(id byte) (Window, bool) {
	for _, w := range d.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

// FindPalette returns the palette with the given id, if any.
func (d DisplaySet) FindPalette(id byte) (Palette, bool) {
	for _, p := range d.Palettes {
		if p.ID == id {
			return p, true
		}
	}
	return Palette{}, false
}
