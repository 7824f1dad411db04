/*
NAME
  subtitle_test.go - tests for the unified PGS/VobSub façade.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package subtitle

import "testing"

func TestDecoderLoadVobSubReportsFormat(t *testing.T) {
	d := NewDecoder()
	idx := "timestamp: 00:00:01:000, filepos: 00000000\n"
	n, err := d.LoadVobSub(idx, nil)
	if err != nil {
		t.Fatalf("LoadVobSub returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("LoadVobSub returned %d entries, want 1", n)
	}
	if d.Format() != FormatVobSub {
		t.Errorf("Format() = %v, want FormatVobSub", d.Format())
	}
	if d.TrackIndex() != -1 {
		t.Errorf("TrackIndex() = %d, want -1 (no id: line)", d.TrackIndex())
	}
}

func TestDecoderLoadPGSRejectsEmptyInput(t *testing.T) {
	d := NewDecoder()
	if _, err := d.LoadPGS(nil); err == nil {
		t.Error("LoadPGS(nil) did not return an error")
	}
	if d.Format() != FormatNone {
		t.Errorf("Format() after failed load = %v, want FormatNone", d.Format())
	}
}

func TestDecoderFailedLoadPreservesPreviousTrack(t *testing.T) {
	d := NewDecoder()
	d.LoadVobSub("timestamp: 00:00:01:000, filepos: 00000000\n", nil)
	if _, err := d.LoadPGS(nil); err == nil {
		t.Fatal("expected LoadPGS(nil) to fail")
	}
	// A rejected load is validated before any existing state is touched,
	// so the previously loaded VobSub track remains active.
	if d.Format() != FormatVobSub {
		t.Errorf("Format() = %v, want FormatVobSub preserved after rejected load", d.Format())
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (previous track intact)", d.Count())
	}
}

func TestDecoderDebandKnobsNoopWithoutVobSub(t *testing.T) {
	d := NewDecoder()
	d.SetDebandEnabled(true) // must not panic with no track loaded
	if d.DebandEnabled() {
		t.Error("DebandEnabled() true with no track loaded")
	}
}

func TestDecoderRenderAtTimestampConvertsSecondsToMs(t *testing.T) {
	d := NewDecoder()
	idx := "timestamp: 00:00:01:000, filepos: 00000000\n"
	d.LoadVobSub(idx, nil)
	// No SUB bytes to back the entry, so rendering must fail cleanly
	// rather than panic, but the index must still resolve.
	if i := d.FindIndexAtTimestamp(1000); i != 0 {
		t.Errorf("FindIndexAtTimestamp(1000) = %d, want 0", i)
	}
	if _, ok := d.RenderAtTimestamp(1.0); ok {
		t.Error("RenderAtTimestamp succeeded with no backing SUB data")
	}
}

func TestDecoderDisposeResetsFormat(t *testing.T) {
	d := NewDecoder()
	d.LoadVobSub("timestamp: 00:00:01:000, filepos: 00000000\n", nil)
	d.Dispose()
	if d.Format() != FormatNone {
		t.Errorf("Format() after Dispose = %v, want FormatNone", d.Format())
	}
	if d.Count() != 0 {
		t.Errorf("Count() after Dispose = %d, want 0", d.Count())
	}
}

func TestFormatString(t *testing.T) {
	cases := map[Format]string{FormatNone: "none", FormatPGS: "pgs", FormatVobSub: "vobsub"}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", f, got, want)
		}
	}
}
