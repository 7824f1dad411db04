/*
NAME
  displayset_test.go - tests for display-set parsing and stream recovery.

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

import "testing"

func buildSimpleDisplaySet(pts, dts uint32) []byte {
	return concatAll(
		buildPaletteSegment(pts, dts, 0, 1, []byte{0, 1}),
		buildObjectSegment(pts, dts, 1, 1, 2, 1, []byte{1, 1}),
		buildCompositionSegment(pts, dts, 640, 480, 0, StateEpochStart, 0, 1, 0, 10, 20),
		buildEndSegment(pts, dts),
	)
}

func TestParseStreamSingleDisplaySet(t *testing.T) {
	buf := buildSimpleDisplaySet(9000, 9000)
	sets := ParseStream(buf)
	if len(sets) != 1 {
		t.Fatalf("len(sets) = %d, want 1", len(sets))
	}
	ds := sets[0]
	if ds.PTSMillis() != 100 {
		t.Errorf("PTSMillis() = %d, want 100", ds.PTSMillis())
	}
	if ds.Composition == nil {
		t.Fatal("Composition is nil")
	}
	if ds.Composition.State != StateEpochStart {
		t.Errorf("State = %v, want StateEpochStart", ds.Composition.State)
	}
	if len(ds.Palettes) != 1 || len(ds.Objects) != 1 {
		t.Fatalf("got %d palettes, %d objects", len(ds.Palettes), len(ds.Objects))
	}
	if _, ok := ds.FindPalette(0); !ok {
		t.Error("FindPalette(0) not found")
	}
}

func TestParseStreamMultipleDisplaySets(t *testing.T) {
	buf := concatAll(buildSimpleDisplaySet(9000, 9000), buildSimpleDisplaySet(18000, 18000))
	sets := ParseStream(buf)
	if len(sets) != 2 {
		t.Fatalf("len(sets) = %d, want 2", len(sets))
	}
	if sets[1].PTSMillis() != 200 {
		t.Errorf("second PTSMillis() = %d, want 200", sets[1].PTSMillis())
	}
}

func TestParseStreamRecoversFromCorruption(t *testing.T) {
	good := buildSimpleDisplaySet(9000, 9000)
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x00}
	buf := concatAll(garbage, good)
	sets := ParseStream(buf)
	if len(sets) != 1 {
		t.Fatalf("len(sets) = %d, want 1", len(sets))
	}
	if sets[0].PTSMillis() != 100 {
		t.Errorf("PTSMillis() = %d, want 100", sets[0].PTSMillis())
	}
}

func TestParseStreamTruncatedTrailingSegmentYieldsNothing(t *testing.T) {
	good := buildSimpleDisplaySet(9000, 9000)
	truncated := good[:len(good)-3]
	sets := ParseStream(truncated)
	if len(sets) != 0 {
		t.Fatalf("len(sets) = %d, want 0", len(sets))
	}
}

func TestParseStreamEmptyInput(t *testing.T) {
	sets := ParseStream(nil)
	if len(sets) != 0 {
		t.Fatalf("len(sets) = %d, want 0", len(sets))
	}
}
