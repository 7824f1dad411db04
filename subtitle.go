/*
NAME
  subtitle.go - unified PGS/VobSub decoder façade.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package subtitle decodes and renders graphical subtitle streams: PGS
// (Blu-ray .sup) and VobSub (DVD .idx/.sub). It wraps the format-specific
// pgs and vobsub packages behind one Decoder that tracks which format is
// currently loaded and re-exposes their seek and render operations under
// a shared Frame/Composition shape.
package subtitle

import (
	"github.com/pkg/errors"

	"github.com/ausocean/subtitle/pgs"
	"github.com/ausocean/subtitle/vobsub"
)

// Format identifies which subtitle pipeline a Decoder currently holds.
type Format int

const (
	FormatNone Format = iota
	FormatPGS
	FormatVobSub
)

func (f Format) String() string {
	switch f {
	case FormatPGS:
		return "pgs"
	case FormatVobSub:
		return "vobsub"
	default:
		return "none"
	}
}

// Composition is one positioned RGBA rectangle within a Frame.
type Composition struct {
	X, Y          int
	Width, Height int
	RGBA          []byte
}

// Frame is a fully rendered display: screen dimensions plus an ordered
// list of compositions to blit onto it.
type Frame struct {
	ScreenWidth, ScreenHeight int
	Compositions              []Composition
}

// Logger is the minimal logging surface a Decoder needs, identical to
// pgs.Logger and vobsub.Logger so one adapter serves all three.
type Logger interface {
	SetLevel(int8)
	Log(level int8, message string, args ...interface{})
}

// Decoder holds at most one loaded subtitle track, PGS or VobSub, and
// dispatches every operation to whichever format-specific decoder is
// currently active.
type Decoder struct {
	log    Logger
	format Format
	pgs    *pgs.Decoder
	vob    *vobsub.Decoder
}

// Option configures a Decoder at construction.
type Option func(*Decoder)

// WithLogger sets the Decoder's logger. A nil Logger is ignored.
func WithLogger(l Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDecoder returns an empty Decoder with no format loaded.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: discardLogger{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LoadPGS parses buf as a PGS (.sup) byte stream and makes it the active
// track, discarding anything previously loaded.
func (d *Decoder) LoadPGS(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errors.New("subtitle: LoadPGS: empty input")
	}
	d.vob = nil
	d.pgs = pgs.NewDecoder(pgs.WithLogger(pgsLoggerAdapter{d.log}))
	n := d.pgs.Load(buf)
	d.format = FormatPGS
	return n, nil
}

// LoadVobSub parses a paired IDX text index and SUB byte stream and
// makes it the active track, discarding anything previously loaded.
func (d *Decoder) LoadVobSub(idxText string, subBytes []byte) (int, error) {
	if idxText == "" && len(subBytes) == 0 {
		return 0, errors.New("subtitle: LoadVobSub: empty input")
	}
	d.pgs = nil
	d.vob = vobsub.NewDecoder(vobsub.WithLogger(vobsubLoggerAdapter{d.log}))
	n := d.vob.LoadFromData(idxText, subBytes)
	d.format = FormatVobSub
	return n, nil
}

// LoadVobSubOnly discovers subtitle packets directly from a SUB byte
// stream with no paired IDX, and makes it the active track.
func (d *Decoder) LoadVobSubOnly(subBytes []byte) (int, error) {
	if len(subBytes) == 0 {
		return 0, errors.New("subtitle: LoadVobSubOnly: empty input")
	}
	d.pgs = nil
	d.vob = vobsub.NewDecoder(vobsub.WithLogger(vobsubLoggerAdapter{d.log}))
	n := d.vob.LoadFromSubOnly(subBytes)
	d.format = FormatVobSub
	return n, nil
}

// Format reports which pipeline is currently loaded.
func (d *Decoder) Format() Format { return d.format }

// Count returns the number of subtitle entries in the active track.
func (d *Decoder) Count() int {
	switch d.format {
	case FormatPGS:
		return d.pgs.Count()
	case FormatVobSub:
		return d.vob.Count()
	default:
		return 0
	}
}

// GetTimestamps returns every entry's start timestamp in milliseconds.
func (d *Decoder) GetTimestamps() []float64 {
	switch d.format {
	case FormatPGS:
		return d.pgs.Timestamps()
	case FormatVobSub:
		return d.vob.Timestamps()
	default:
		return nil
	}
}

// TrackIndex returns the VobSub IDX "index:" field of the active track,
// or -1 for a PGS track or when nothing is loaded.
func (d *Decoder) TrackIndex() int {
	if d.format != FormatVobSub {
		return -1
	}
	return d.vob.Metadata().TrackIndex
}

// FindIndexAtTimestamp returns the entry index visible at timeMs, or -1
// if none is.
func (d *Decoder) FindIndexAtTimestamp(timeMs float64) int {
	switch d.format {
	case FormatPGS:
		return d.pgs.FindIndexAtTimestamp(timeMs)
	case FormatVobSub:
		return d.vob.FindIndexAtTimestamp(timeMs)
	default:
		return -1
	}
}

// RenderAtIndex renders the entry at index.
func (d *Decoder) RenderAtIndex(index int) (Frame, bool) {
	switch d.format {
	case FormatPGS:
		f, ok := d.pgs.RenderAtIndex(index)
		return convertPGSFrame(f), ok
	case FormatVobSub:
		f, ok := d.vob.RenderAtIndex(index)
		return convertVobSubFrame(f), ok
	default:
		return Frame{}, false
	}
}

// RenderAtTimestamp finds the entry visible at the given time, in
// seconds, and renders it.
func (d *Decoder) RenderAtTimestamp(seconds float64) (Frame, bool) {
	switch d.format {
	case FormatPGS:
		f, ok := d.pgs.RenderAtTimestamp(seconds * 1000)
		return convertPGSFrame(f), ok
	case FormatVobSub:
		f, ok := d.vob.RenderAtTimestamp(seconds * 1000)
		return convertVobSubFrame(f), ok
	default:
		return Frame{}, false
	}
}

// ClearCache drops the active decoder's decoded-bitmap/packet cache.
func (d *Decoder) ClearCache() {
	switch d.format {
	case FormatPGS:
		d.pgs.ClearCache()
	case FormatVobSub:
		d.vob.ClearCache()
	}
}

// Dispose drops all loaded data and caches, and clears the active
// format.
func (d *Decoder) Dispose() {
	if d.pgs != nil {
		d.pgs.Dispose()
	}
	if d.vob != nil {
		d.vob.Dispose()
	}
	d.pgs, d.vob = nil, nil
	d.format = FormatNone
}

// SetDebandEnabled toggles the VobSub post-render debanding filter. It
// is a no-op when a PGS track (or nothing) is loaded.
func (d *Decoder) SetDebandEnabled(v bool) {
	if d.format == FormatVobSub {
		d.vob.SetDebandEnabled(v)
	}
}

// DebandEnabled reports whether the debanding filter is active for a
// loaded VobSub track.
func (d *Decoder) DebandEnabled() bool {
	return d.format == FormatVobSub && d.vob.DebandEnabled()
}

// SetDebandThreshold sets the debanding filter's difference threshold,
// expected in [0,255].
func (d *Decoder) SetDebandThreshold(v float32) {
	if d.format == FormatVobSub {
		d.vob.SetDebandThreshold(v)
	}
}

// SetDebandRange sets the debanding filter's sample radius in pixels,
// expected in [1,64].
func (d *Decoder) SetDebandRange(v uint32) {
	if d.format == FormatVobSub {
		d.vob.SetDebandRange(v)
	}
}

func convertPGSFrame(f pgs.Frame) Frame {
	out := Frame{ScreenWidth: f.ScreenWidth, ScreenHeight: f.ScreenHeight}
	for _, c := range f.Compositions {
		out.Compositions = append(out.Compositions, Composition{
			X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, RGBA: c.RGBA,
		})
	}
	return out
}

func convertVobSubFrame(f vobsub.Frame) Frame {
	out := Frame{ScreenWidth: f.ScreenWidth, ScreenHeight: f.ScreenHeight}
	for _, c := range f.Compositions {
		out.Compositions = append(out.Compositions, Composition{
			X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, RGBA: c.RGBA,
		})
	}
	return out
}

type discardLogger struct{}

func (discardLogger) SetLevel(int8)                    {}
func (discardLogger) Log(int8, string, ...interface{}) {}

// pgsLoggerAdapter and vobsubLoggerAdapter bridge the façade's Logger to
// the format packages' identically-shaped but distinct Logger types, so
// callers only ever implement one interface.
type pgsLoggerAdapter struct{ l Logger }

func (a pgsLoggerAdapter) SetLevel(lvl int8) { a.l.SetLevel(lvl) }
func (a pgsLoggerAdapter) Log(level int8, message string, args ...interface{}) {
	a.l.Log(level, message, args...)
}

type vobsubLoggerAdapter struct{ l Logger }

func (a vobsubLoggerAdapter) SetLevel(lvl int8) { a.l.SetLevel(lvl) }
func (a vobsubLoggerAdapter) Log(level int8, message string, args ...interface{}) {
	a.l.Log(level, message, args...)
}
