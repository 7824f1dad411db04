/*
NAME
  decoder.go - PGS epoch context replay, seek and render.

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

// Logger is the minimal logging surface a Decoder needs. It mirrors
// revid.Revid's local Logger interface rather than importing a
// concrete logging package, so callers can adapt whatever logger they
// already have (see github.com/ausocean/utils/logging for the
// reference implementation this corpus uses elsewhere).
type Logger interface {
	SetLevel(int8)
	Log(level int8, message string, args ...interface{})
}

// Log levels, matching github.com/ausocean/utils/logging's numbering.
const (
	LogDebug   int8 = -1
	LogInfo    int8 = 0
	LogWarning int8 = 1
	LogError   int8 = 2
	LogFatal   int8 = 3
)

type discardLogger struct{}

func (discardLogger) SetLevel(int8)                    {}
func (discardLogger) Log(int8, string, ...interface{}) {}

// objKey identifies one decoded bitmap in the indexed cache.
type objKey struct {
	id      uint16
	version byte
}

type indexedBitmap struct {
	indexed []byte
	width   uint16
	height  uint16
}

// Composition is one positioned RGBA rectangle within a Frame.
type Composition struct {
	X, Y          int
	Width, Height int
	RGBA          []byte // R,G,B,A byte order, len == 4*Width*Height
}

// Frame is a fully rendered PGS display set: screen dimensions plus an
// ordered list of compositions, ordered as declared in the
// PresentationComposition segment.
type Frame struct {
	ScreenWidth, ScreenHeight int
	Compositions              []Composition
}

// Decoder holds the parsed PGS display-set sequence and the transient
// rendering state (epoch boundary, decoded-bitmap cache, RGBA scratch
// buffer) needed to render an arbitrary display-set index.
type Decoder struct {
	log Logger

	displaySets []DisplaySet
	timestamps  []uint32 // milliseconds, one per display set

	boundaryKnown bool
	lastBoundary  int

	indexedCache map[objKey]indexedBitmap
	scratch      [][4]byte
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

// NewDecoder returns an empty Decoder ready to Load a PGS stream.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: discardLogger{}, indexedCache: make(map[objKey]indexedBitmap)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load parses buf as a PGS (.sup) byte stream, replacing any
// previously loaded data, and returns the number of display sets
// found.
func (d *Decoder) Load(buf []byte) int {
	d.Dispose()
	d.displaySets = ParseStream(buf)
	d.timestamps = make([]uint32, len(d.displaySets))
	for i, ds := range d.displaySets {
		d.timestamps[i] = ds.PTSMillis()
	}
	return len(d.displaySets)
}

// Count returns the number of parsed display sets.
func (d *Decoder) Count() int { return len(d.displaySets) }

// Timestamps returns every display set's PTS in milliseconds.
func (d *Decoder) Timestamps() []float64 {
	out := make([]float64, len(d.timestamps))
	for i, t := range d.timestamps {
		out[i] = float64(t)
	}
	return out
}

// FindIndexAtTimestamp returns the display-set index active at timeMs,
// or -1 if no display sets are loaded.
func (d *Decoder) FindIndexAtTimestamp(timeMs float64) int {
	if len(d.timestamps) == 0 {
		return -1
	}
	return sutil.BinarySearchTimestamp(d.timestamps, uint32(timeMs))
}

// ClearCache drops the decoded-bitmap cache and resets boundary
// tracking, without discarding the parsed display sets.
func (d *Decoder) ClearCache() {
	d.indexedCache = make(map[objKey]indexedBitmap)
	d.boundaryKnown = false
}

// Dispose drops all parsed data and caches.
func (d *Decoder) Dispose() {
	d.displaySets = nil
	d.timestamps = nil
	d.scratch = nil
	d.ClearCache()
}

// boundary walks backwards from index i to the most recent display set
// whose composition is an EpochStart or AcquisitionPoint, returning i
// itself when it is such a boundary and 0 if none is found.
func (d *Decoder) boundary(i int) int {
	for j := i; j >= 0; j-- {
		c := d.displaySets[j].Composition
		if c != nil && (c.State == StateEpochStart || c.State == StateAcquisitionPoint) {
			return j
		}
	}
	return 0
}

// epochContext is the replayed state from a boundary through a target
// index: per-id ordered fragment lists, assembled objects, and
// last-writer-wins palette/window maps.
type epochContext struct {
	fragments map[uint16][]ObjectFragment
	objects   map[uint16]AssembledObject
	palettes  map[byte]Palette
	windows   map[byte]Window
}

// buildContext replays display sets [from, to] to reconstruct render
// state, per the object fragment reset-or-append rule: a new first
// fragment for an id resets that id's list; a continuation with no
// preceding first fragment in the replay window is discarded.
func (d *Decoder) buildContext(from, to int) epochContext {
	ctx := epochContext{
		fragments: make(map[uint16][]ObjectFragment),
		objects:   make(map[uint16]AssembledObject),
		palettes:  make(map[byte]Palette),
		windows:   make(map[byte]Window),
	}

	for i := from; i <= to; i++ {
		ds := d.displaySets[i]

		for _, frag := range ds.Objects {
			if frag.First() {
				ctx.fragments[frag.ID] = []ObjectFragment{frag}
			} else if existing, ok := ctx.fragments[frag.ID]; ok {
				ctx.fragments[frag.ID] = append(existing, frag)
			}
			// Continuation with no prior first fragment: discarded.
		}

		for _, p := range ds.Palettes {
			ctx.palettes[p.ID] = p
		}
		for _, w := range ds.Windows {
			ctx.windows[w.ID] = w
		}
	}

	for id, frags := range ctx.fragments {
		if obj, ok := assembleObject(frags); ok {
			ctx.objects[id] = obj
		}
	}
	return ctx
}

// decodeIndexed decodes obj's RLE payload to indexed pixels, reusing
// the cached result for (obj.ID, obj.Version) when present.
func (d *Decoder) decodeIndexed(obj AssembledObject) indexedBitmap {
	key := objKey{id: obj.ID, version: obj.Version}
	if cached, ok := d.indexedCache[key]; ok {
		return cached
	}
	n := int(obj.Width) * int(obj.Height)
	indexed := make([]byte, n)
	DecodeRLEToIndexed(obj.Data, indexed)
	bmp := indexedBitmap{indexed: indexed, width: obj.Width, height: obj.Height}
	d.indexedCache[key] = bmp
	return bmp
}

// RenderAtIndex renders the display set at index i. It returns
// ok=false if i is out of range, the composition is missing or
// references an unknown palette, or the composition has no objects
// (a screen clear emits nothing, not an empty frame).
func (d *Decoder) RenderAtIndex(i int) (Frame, bool) {
	if i < 0 || i >= len(d.displaySets) {
		return Frame{}, false
	}

	b := d.boundary(i)
	if !d.boundaryKnown || b != d.lastBoundary {
		d.ClearCache()
		d.lastBoundary = b
		d.boundaryKnown = true
	}

	ds := d.displaySets[i]
	comp := ds.Composition
	if comp == nil || len(comp.Objects) == 0 {
		return Frame{}, false
	}

	ctx := d.buildContext(b, i)
	palette, ok := ctx.palettes[comp.PaletteID]
	if !ok {
		d.log.Log(LogDebug, "pgs: missing palette for composition", "palette_id", comp.PaletteID)
		return Frame{}, false
	}

	frame := Frame{ScreenWidth: int(comp.Width), ScreenHeight: int(comp.Height)}
	for _, co := range comp.Objects {
		obj, ok := ctx.objects[co.ObjectID]
		if !ok {
			d.log.Log(LogDebug, "pgs: missing object for composition object", "object_id", co.ObjectID)
			continue
		}

		bmp := d.decodeIndexed(obj)
		n := int(bmp.width) * int(bmp.height)
		if cap(d.scratch) < n {
			d.scratch = make([][4]byte, n)
		}
		scratch := d.scratch[:n]
		ApplyPalette(bmp.indexed, palette.RGBA[:], scratch)

		rgba := make([]byte, n*4)
		for i, px := range scratch {
			copy(rgba[i*4:i*4+4], px[:])
		}

		frame.Compositions = append(frame.Compositions, Composition{
			X: int(co.X), Y: int(co.Y),
			Width: int(bmp.width), Height: int(bmp.height),
			RGBA: rgba,
		})
	}
	return frame, true
}

// RenderAtTimestamp finds the display set active at timeMs and renders
// it, per RenderAtIndex.
func (d *Decoder) RenderAtTimestamp(timeMs float64) (Frame, bool) {
	i := d.FindIndexAtTimestamp(timeMs)
	if i < 0 {
		return Frame{}, false
	}
	return d.RenderAtIndex(i)
}
