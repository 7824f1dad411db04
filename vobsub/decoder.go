/*
NAME
  decoder.go - VobSub seek, lazy packet parse and render.

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

import (
	"github.com/ausocean/subtitle/deband"
	"github.com/ausocean/subtitle/sutil"
)

// Logger is the minimal logging surface a Decoder needs; see
// pgs.Logger for the identical pattern used by the PGS engine.
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

// defaultLastDurationMs is the trailing visibility window applied to
// the final subtitle when its explicit duration was never set; earlier
// subtitles without one end at the next entry's start. §9 documents
// this as an arbitrary but fixed constant.
const defaultLastDurationMs = 5000

// Composition and Frame mirror the pgs package's output shape. VobSub
// frames always carry at most one composition.
type Composition struct {
	X, Y          int
	Width, Height int
	RGBA          []byte
}

type Frame struct {
	ScreenWidth, ScreenHeight int
	Compositions              []Composition
}

// Decoder holds a loaded VobSub track: its IDX timestamp index, the
// backing SUB bytes, and the lazily-populated packet cache.
type Decoder struct {
	log Logger

	meta    Metadata
	entries []IdxEntry
	sub     []byte

	cache *PacketCache

	debandCfg deband.Config
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

// NewDecoder returns an empty Decoder ready to load IDX/SUB data.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: discardLogger{}, cache: NewPacketCache(), debandCfg: deband.DefaultConfig()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LoadFromData loads a paired IDX text index and SUB byte stream,
// replacing any previously loaded track. It returns the number of
// timestamp entries found.
func (d *Decoder) LoadFromData(idxText string, subBytes []byte) int {
	d.Dispose()
	d.meta, d.entries = ParseIdx(idxText)
	d.sub = subBytes
	d.cache = NewPacketCache()
	return len(d.entries)
}

// LoadFromSubOnly discovers subtitle packets directly from a SUB byte
// stream with no IDX, per §4.7's scan-only discovery: every pack
// header is a parse candidate, and candidates whose DCSQ declares a
// non-zero width and height are kept.
func (d *Decoder) LoadFromSubOnly(subBytes []byte) int {
	d.Dispose()
	d.meta = Metadata{Width: 720, Height: 480, Palette: defaultPalette(), TrackIndex: -1}
	d.sub = subBytes
	d.cache = NewPacketCache()

	for i := 0; i+3 < len(subBytes); i++ {
		if subBytes[i] == 0x00 && subBytes[i+1] == 0x00 && subBytes[i+2] == 0x01 && subBytes[i+3] == streamIDPackHeader {
			pts, spu, ok := parseSubtitlePacket(subBytes, i)
			if !ok {
				continue
			}
			res := interpretDCSQ(spu)
			if res.width > 0 && res.height > 0 {
				d.entries = append(d.entries, IdxEntry{TimestampMs: pts, FilePos: uint32(i)})
			}
		}
	}

	sortEntries(d.entries)
	return len(d.entries)
}

func sortEntries(e []IdxEntry) {
	for i := 1; i < len(e); i++ {
		for j := i; j > 0 && e[j].TimestampMs < e[j-1].TimestampMs; j-- {
			e[j], e[j-1] = e[j-1], e[j]
		}
	}
}

// Count returns the number of timestamp entries loaded.
func (d *Decoder) Count() int { return len(d.entries) }

// Timestamps returns every entry's start timestamp in milliseconds.
func (d *Decoder) Timestamps() []float64 {
	out := make([]float64, len(d.entries))
	for i, e := range d.entries {
		out[i] = float64(e.TimestampMs)
	}
	return out
}

// Metadata returns the parsed (or default) IDX metadata.
func (d *Decoder) Metadata() Metadata { return d.meta }

// SetDebandEnabled toggles the post-render debanding filter.
func (d *Decoder) SetDebandEnabled(v bool) { d.debandCfg.Enabled = v }

// DebandEnabled reports whether the debanding filter is active.
func (d *Decoder) DebandEnabled() bool { return d.debandCfg.Enabled }

// SetDebandThreshold sets the filter's primary difference threshold.
func (d *Decoder) SetDebandThreshold(v float32) { d.debandCfg.Threshold = v }

// SetDebandRange sets the filter's sample radius in pixels.
func (d *Decoder) SetDebandRange(v uint32) { d.debandCfg.Range = v }

// ClearCache drops the decoded-packet cache.
func (d *Decoder) ClearCache() { d.cache.Clear() }

// Dispose drops all loaded data and caches.
func (d *Decoder) Dispose() {
	d.entries = nil
	d.sub = nil
	d.cache = NewPacketCache()
}

// packetAt returns the decoded packet for index, parsing and caching
// it on first access. A nil result (cache hit or miss) means no usable
// SPU could be found at that entry's file position.
func (d *Decoder) packetAt(index int) *SubtitlePacket {
	if p, ok := d.cache.Get(index); ok {
		return p
	}
	if index < 0 || index >= len(d.entries) {
		d.cache.Set(index, nil)
		return nil
	}

	entry := d.entries[index]
	_, spu, ok := parseSubtitlePacket(d.sub, int(entry.FilePos))
	if !ok {
		d.log.Log(LogDebug, "vobsub: failed to parse SPU", "index", index)
		d.cache.Set(index, nil)
		return nil
	}

	res := interpretDCSQ(spu)
	p := &SubtitlePacket{
		PTSMs:       entry.TimestampMs,
		DurationMs:  res.durationMs,
		X:           res.x,
		Y:           res.y,
		Width:       res.width,
		Height:      res.height,
		ColorIdx:    res.colorIndices,
		AlphaValues: res.alphaValues,
	}
	evenStart, evenEnd, oddStart, oddEnd := fieldBounds(spu, res)
	p.EvenField = sliceBounded(spu, evenStart, evenEnd)
	p.OddField = sliceBounded(spu, oddStart, oddEnd)

	d.cache.Set(index, p)
	return p
}

func sliceBounded(buf []byte, start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(buf) {
		end = len(buf)
	}
	if start >= end {
		return nil
	}
	return buf[start:end]
}

// FindIndexAtTimestamp resolves timeMs to the subtitle index visible
// at that time, per §4.10's end-time/visibility rule. It returns -1 if
// no subtitle is visible.
func (d *Decoder) FindIndexAtTimestamp(timeMs float64) int {
	if len(d.entries) == 0 {
		return -1
	}
	ts := make([]uint32, len(d.entries))
	for i, e := range d.entries {
		ts[i] = e.TimestampMs
	}
	i := sutil.BinarySearchTimestamp(ts, uint32(timeMs))
	if float64(d.entries[i].TimestampMs) > timeMs {
		return -1
	}

	end := d.endTimeMs(i)
	if timeMs < end {
		return i
	}
	return -1
}

// endTimeMs computes when subtitle i stops being visible, consulting
// the next entry's start time and, when relevant, i's own explicit
// duration (which may trigger a lazy packet parse).
func (d *Decoder) endTimeMs(i int) float64 {
	start := float64(d.entries[i].TimestampMs)
	if i+1 < len(d.entries) {
		next := float64(d.entries[i+1].TimestampMs)
		if p := d.packetAt(i); p != nil && p.DurationMs > 0 {
			explicitEnd := start + float64(p.DurationMs)
			if explicitEnd < next {
				return explicitEnd
			}
		}
		return next
	}

	duration := float64(defaultLastDurationMs)
	if p := d.packetAt(i); p != nil && p.DurationMs > 0 {
		duration = float64(p.DurationMs)
	}
	return start + duration
}

// RenderAtIndex renders the subtitle at index, decoding its RLE fields
// on demand and applying the debanding filter if enabled.
func (d *Decoder) RenderAtIndex(index int) (Frame, bool) {
	p := d.packetAt(index)
	if p == nil || p.Width <= 0 || p.Height <= 0 {
		return Frame{}, false
	}

	lut := buildLUT(d.meta.Palette, p.ColorIdx, p.AlphaValues)
	pixels := make([][4]byte, p.Width*p.Height)
	for i := range pixels {
		pixels[i] = lut[0]
	}
	decodeField(p.EvenField, 0, p.Width, p.Height, lut, pixels)
	decodeField(p.OddField, 1, p.Width, p.Height, lut, pixels)

	rgba := make([]byte, len(pixels)*4)
	for i, px := range pixels {
		copy(rgba[i*4:i*4+4], px[:])
	}
	if d.debandCfg.Enabled {
		rgba = deband.Apply(rgba, p.Width, p.Height, d.debandCfg)
	}

	return Frame{
		ScreenWidth:  d.meta.Width,
		ScreenHeight: d.meta.Height,
		Compositions: []Composition{{
			X: p.X, Y: p.Y, Width: p.Width, Height: p.Height, RGBA: rgba,
		}},
	}, true
}

// RenderAtTimestamp finds the subtitle visible at timeMs and renders
// it, per RenderAtIndex.
func (d *Decoder) RenderAtTimestamp(timeMs float64) (Frame, bool) {
	i := d.FindIndexAtTimestamp(timeMs)
	if i < 0 {
		return Frame{}, false
	}
	return d.RenderAtIndex(i)
}

// buildLUT resolves the 4 two-bit color codes to packed RGBA via the
// 16-entry palette and the linear 4-bit-to-8-bit alpha scale.
func buildLUT(palette Palette16, colorIdx, alphaValues [4]byte) [4][4]byte {
	var lut [4][4]byte
	for i := 0; i < 4; i++ {
		rgb := palette[colorIdx[i]&0x0F]
		a := byte((int(alphaValues[i]) * 255) / 15)
		lut[i] = [4]byte{rgb[0], rgb[1], rgb[2], a}
	}
	return lut
}
