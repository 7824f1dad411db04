/*
NAME
  object.go - Object Definition Segment parsing and fragment reassembly.

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

// Sequence flag bits of an ObjectDefinition segment.
const (
	seqFirst = 0x80
	seqLast  = 0x40
)

// ObjectFragment is one ObjectDefinitionSegment: a fragment of an
// object's RLE bitmap. Only the first fragment of a sequence carries
// DataLength/Width/Height; continuations carry zero for all three.
type ObjectFragment struct {
	ID           uint16
	Version      byte
	SequenceFlag byte
	DataLength   uint32
	Width        uint16
	Height       uint16
	Data         []byte
}

// First reports whether this is the first fragment in its sequence.
func (f ObjectFragment) First() bool { return f.SequenceFlag&seqFirst != 0 }

// Last reports whether this is the last fragment in its sequence.
func (f ObjectFragment) Last() bool { return f.SequenceFlag&seqLast != 0 }

// parseObject reads an object definition segment of the given declared
// length. First fragments are 11 header bytes (id, version, flags,
// 3-byte length, width, height) plus length-11 RLE bytes; continuations
// are 4 header bytes (id, version, flags) plus length-4 RLE bytes.
func parseObject(r *sutil.Reader, length int) (ObjectFragment, bool) {
	var f ObjectFragment
	id, ok := r.U16()
	if !ok {
		return f, false
	}
	version, ok := r.U8()
	if !ok {
		return f, false
	}
	seqFlag, ok := r.U8()
	if !ok {
		return f, false
	}
	f.ID, f.Version, f.SequenceFlag = id, version, seqFlag

	if f.First() {
		if length < 11 {
			return f, false
		}
		dataLen, ok := r.U24()
		if !ok {
			return f, false
		}
		w, ok := r.U16()
		if !ok {
			return f, false
		}
		h, ok := r.U16()
		if !ok {
			return f, false
		}
		data, ok := r.Bytes(length - 11)
		if !ok {
			return f, false
		}
		f.DataLength, f.Width, f.Height, f.Data = dataLen, w, h, data
		return f, true
	}

	if length < 4 {
		return f, false
	}
	data, ok := r.Bytes(length - 4)
	if !ok {
		return f, false
	}
	f.Data = data
	return f, true
}

// AssembledObject is the concatenation of one first fragment plus its
// continuations, in receipt order, for one (id, version) pair.
type AssembledObject struct {
	ID      uint16
	Version byte
	Width   uint16
	Height  uint16
	Data    []byte
}

// assembleObject concatenates fragments (first-then-continuations
// order) into one RLE payload. fragments[0] must be a first fragment;
// callers are responsible for resetting the fragment list whenever a
// new first fragment for the same id arrives, per the PGS context
// reconstruction invariant.
func assembleObject(fragments []ObjectFragment) (AssembledObject, bool) {
	if len(fragments) == 0 || !fragments[0].First() {
		return AssembledObject{}, false
	}
	first := fragments[0]
	total := 0
	for _, frag := range fragments {
		total += len(frag.Data)
	}
	data := make([]byte, 0, total)
	for _, frag := range fragments {
		data = append(data, frag.Data...)
	}
	return AssembledObject{
		ID:      first.ID,
		Version: first.Version,
		Width:   first.Width,
		Height:  first.Height,
		Data:    data,
	}, true
}
