/*
NAME
  composition.go - Presentation Composition Segment parsing.

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

// croppedFlagMask is the bit of CompositionObject.CroppedFlag that
// indicates a crop rectangle follows.
const croppedFlagMask = 0x80

// paletteUpdateOnlyMask is the bit of Composition.PaletteUpdateFlag
// that marks a palette-only update. Per spec §9 this is parsed but not
// acted on: such compositions render identically to full updates.
const paletteUpdateOnlyMask = 0x80

// CompositionObject binds one object to one window at an absolute
// (X, Y), with an optional crop rectangle.
//
// TODO(cropping): CropX/CropY/CropWidth/CropHeight are parsed but never
// applied at render time; see spec §9 open question on cropping.
type CompositionObject struct {
	ObjectID    uint16
	WindowID    byte
	CroppedFlag byte
	X, Y        uint16
	CropX       uint16
	CropY       uint16
	CropWidth   uint16
	CropHeight  uint16
}

// Cropped reports whether this composition object carries a crop rect.
func (o CompositionObject) Cropped() bool { return o.CroppedFlag&croppedFlagMask != 0 }

// Composition is a Presentation Composition Segment: it declares one
// frame's screen dimensions, sequencing, palette selection and ordered
// list of objects to place.
type Composition struct {
	Width             uint16
	Height            uint16
	FrameRate         byte
	Number            uint16
	State             CompositionState
	PaletteUpdateFlag byte
	PaletteID         byte
	Objects           []CompositionObject
}

// PaletteUpdateOnly reports whether bit 7 of PaletteUpdateFlag is set.
func (c Composition) PaletteUpdateOnly() bool { return c.PaletteUpdateFlag&paletteUpdateOnlyMask != 0 }

// parseComposition reads a presentation composition segment.
func parseComposition(r *sutil.Reader) (Composition, bool) {
	var c Composition
	var ok bool
	if c.Width, ok = r.U16(); !ok {
		return c, false
	}
	if c.Height, ok = r.U16(); !ok {
		return c, false
	}
	if c.FrameRate, ok = r.U8(); !ok {
		return c, false
	}
	if c.Number, ok = r.U16(); !ok {
		return c, false
	}
	state, ok := r.U8()
	if !ok {
		return c, false
	}
	c.State = CompositionState(state)
	if c.PaletteUpdateFlag, ok = r.U8(); !ok {
		return c, false
	}
	if c.PaletteID, ok = r.U8(); !ok {
		return c, false
	}
	count, ok := r.U8()
	if !ok {
		return c, false
	}

	c.Objects = make([]CompositionObject, 0, count)
	for i := 0; i < int(count); i++ {
		var o CompositionObject
		if o.ObjectID, ok = r.U16(); !ok {
			return c, false
		}
		if o.WindowID, ok = r.U8(); !ok {
			return c, false
		}
		if o.CroppedFlag, ok = r.U8(); !ok {
			return c, false
		}
		if o.X, ok = r.U16(); !ok {
			return c, false
		}
		if o.Y, ok = r.U16(); !ok {
			return c, false
		}
		if o.Cropped() {
			if o.CropX, ok = r.U16(); !ok {
				return c, false
			}
			if o.CropY, ok = r.U16(); !ok {
				return c, false
			}
			if o.CropWidth, ok = r.U16(); !ok {
				return c, false
			}
			if o.CropHeight, ok = r.U16(); !ok {
				return c, false
			}
		}
		c.Objects = append(c.Objects, o)
	}
	return c, true
}
