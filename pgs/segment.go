/*
NAME
  segment.go - PGS segment type identifiers and composition states.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pgs decodes the Blu-ray Presentation Graphic Stream subtitle
// format (.sup): segment parsing, multi-segment object reassembly,
// epoch/acquisition boundary tracking and RLE bitmap decode.
package pgs

// SegmentType tags a record within a display set.
type SegmentType byte

// Segment type identifiers, per the PGS bitstream specification.
const (
	SegPaletteDefinition       SegmentType = 0x14
	SegObjectDefinition        SegmentType = 0x15
	SegPresentationComposition SegmentType = 0x16
	SegWindowDefinition        SegmentType = 0x17
	SegEnd                     SegmentType = 0x80
)

// CompositionState indicates how a composition relates to decoder state.
type CompositionState byte

// Composition states, per the PGS bitstream specification.
const (
	StateNormal           CompositionState = 0x00
	StateAcquisitionPoint CompositionState = 0x40
	StateEpochStart       CompositionState = 0x80
)

// magic is the two leading bytes ("PG") that precede every segment's
// PTS/DTS header in the bitstream.
const magic = 0x5047
