/*
NAME
  packet.go - decoded SPU packet representation and cache.

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

// SubtitlePacket is one decoded SPU: its display geometry, palette and
// alpha selections, and raw per-field RLE payloads. The RLE payloads
// are decoded lazily by the renderer, not at parse time.
type SubtitlePacket struct {
	PTSMs       uint32
	DurationMs  uint32
	X, Y        int
	Width       int
	Height      int
	ColorIdx    [4]byte
	AlphaValues [4]byte
	EvenField   []byte
	OddField    []byte
}

// PacketCache maps a subtitle index to its decoded SubtitlePacket,
// negatively caching indices with no parseable packet.
type PacketCache struct {
	entries map[int]*SubtitlePacket
}

// NewPacketCache returns an empty PacketCache.
func NewPacketCache() *PacketCache {
	return &PacketCache{entries: make(map[int]*SubtitlePacket)}
}

// Get returns the cached packet for index, and whether that index has
// been resolved before (a nil packet with ok=true is a negative cache
// hit: previously attempted and found unparseable).
func (c *PacketCache) Get(index int) (*SubtitlePacket, bool) {
	p, ok := c.entries[index]
	return p, ok
}

// Set records the resolution (possibly nil) for index.
func (c *PacketCache) Set(index int, p *SubtitlePacket) {
	c.entries[index] = p
}

// Clear drops every cached entry.
func (c *PacketCache) Clear() {
	c.entries = make(map[int]*SubtitlePacket)
}

// Len returns the number of cached entries, including negative ones.
func (c *PacketCache) Len() int { return len(c.entries) }
