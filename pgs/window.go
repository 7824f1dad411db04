/*
NAME
  window.go - Window Definition Segment parsing.

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

// Window describes an on-screen rectangle. Presently informational
// only; nothing in this package clips composition objects to it.
type Window struct {
	ID                  byte
	X, Y, Width, Height uint16
}

// parseWindows reads a window definition segment: a count byte followed
// by that many (id, x, y, width, height) records.
func parseWindows(r *sutil.Reader) ([]Window, bool) {
	count, ok := r.U8()
	if !ok {
		return nil, false
	}
	windows := make([]Window, 0, count)
	for i := 0; i < int(count); i++ {
		id, ok := r.U8()
		if !ok {
			return windows, false
		}
		x, ok := r.U16()
		if !ok {
			return windows, false
		}
		y, ok := r.U16()
		if !ok {
			return windows, false
		}
		w, ok := r.U16()
		if !ok {
			return windows, false
		}
		h, ok := r.U16()
		if !ok {
			return windows, false
		}
		windows = append(windows, Window{ID: id, X: x, Y: y, Width: w, Height: h})
	}
	return windows, true
}
