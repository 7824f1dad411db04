/*
NAME
  idx.go - VobSub IDX text index parser.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vobsub decodes DVD VobSub graphical subtitles: an IDX text
// index paired with a SUB file of MPEG-2 Program Stream SPUs, DCSQ
// command interpretation, the 2-bit interlaced RLE codec and
// timestamp-based seek with visibility resolution.
package vobsub

import (
	"sort"
	"strconv"
	"strings"
)

// Palette16 holds 16 RGBA palette entries, either parsed from an IDX
// "palette:" line or the default palette.
type Palette16 [16][4]byte

// defaultPalette is used when an IDX carries no palette line: entry 0
// transparent black, entry 1 white, entry 2 black, entry 3 gray, the
// remainder opaque black.
func defaultPalette() Palette16 {
	p := Palette16{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{0, 0, 0, 255},
		{128, 128, 128, 255},
	}
	for i := 4; i < 16; i++ {
		p[i] = [4]byte{0, 0, 0, 255}
	}
	return p
}

// IdxEntry is one subtitle's start timestamp and file offset into the
// paired SUB file.
type IdxEntry struct {
	TimestampMs uint32
	FilePos     uint32
}

// Metadata is the non-timestamp content of an IDX file.
type Metadata struct {
	Width, Height int
	Palette       Palette16
	Language      string
	TrackIndex    int
}

// ParseIdx parses the UTF-8 text of a VobSub .idx file per the
// line-oriented grammar: "size:", "palette:", "id:", "timestamp:".
// Malformed or unrecognized lines are silently ignored; timestamps are
// returned sorted ascending by ms, as callers depend on sorted input
// for binary search.
func ParseIdx(text string) (Metadata, []IdxEntry) {
	meta := Metadata{Width: 720, Height: 480, Palette: defaultPalette(), TrackIndex: -1}
	var entries []IdxEntry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "size:"):
			parseSizeLine(line, &meta)
		case strings.HasPrefix(line, "palette:"):
			parsePaletteLine(line, &meta)
		case strings.HasPrefix(line, "id:"):
			parseIDLine(line, &meta)
		case strings.HasPrefix(line, "timestamp:"):
			if e, ok := parseTimestampLine(line); ok {
				entries = append(entries, e)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].TimestampMs < entries[j].TimestampMs })
	return meta, entries
}

func parseSizeLine(line string, meta *Metadata) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "size:"))
	parts := strings.SplitN(rest, "x", 2)
	if len(parts) != 2 {
		return
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return
	}
	meta.Width, meta.Height = w, h
}

func parsePaletteLine(line string, meta *Metadata) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "palette:"))
	parts := strings.Split(rest, ",")
	var p Palette16
	for i := 0; i < 16 && i < len(parts); i++ {
		hex := strings.TrimSpace(parts[i])
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			return // malformed palette line: ignore entirely
		}
		p[i] = [4]byte{byte(v >> 16), byte(v >> 8), byte(v), 255}
	}
	meta.Palette = p
}

func parseIDLine(line string, meta *Metadata) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "id:"))
	parts := strings.SplitN(rest, ",", 2)
	meta.Language = strings.TrimSpace(parts[0])
	if len(parts) != 2 {
		return
	}
	idxPart := strings.TrimSpace(parts[1])
	idxPart = strings.TrimPrefix(idxPart, "index:")
	if n, err := strconv.Atoi(strings.TrimSpace(idxPart)); err == nil {
		meta.TrackIndex = n
	}
}

func parseTimestampLine(line string) (IdxEntry, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "timestamp:"))
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		return IdxEntry{}, false
	}
	ts, ok := parseTimecode(strings.TrimSpace(parts[0]))
	if !ok {
		return IdxEntry{}, false
	}
	posPart := strings.TrimSpace(parts[1])
	posPart = strings.TrimPrefix(posPart, "filepos:")
	pos, err := strconv.ParseUint(strings.TrimSpace(posPart), 16, 32)
	if err != nil {
		return IdxEntry{}, false
	}
	return IdxEntry{TimestampMs: ts, FilePos: uint32(pos)}, true
}

// parseTimecode parses "HH:MM:SS:mmm" into milliseconds.
func parseTimecode(s string) (uint32, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return 0, false
	}
	var nums [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, false
		}
		nums[i] = n
	}
	h, m, sec, ms := nums[0], nums[1], nums[2], nums[3]
	total := ((h*3600+m*60+sec)*1000 + ms)
	if total < 0 {
		return 0, false
	}
	return uint32(total), true
}
