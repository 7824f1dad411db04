/*
NAME
  deband.go - cross-sample debanding filter for subtitle RGBA output.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package deband implements a neo_f3kdb-style debanding post-filter for
// decoded subtitle bitmaps: a cross-shaped sample of four neighbors at
// a deterministic pseudo-random offset, blended in proportion to how
// close the pixel already is to its neighborhood average.
package deband

import "math"

// Config controls the filter. The zero value has Enabled false, so a
// caller that never touches deband gets a pass-through Apply.
type Config struct {
	Enabled   bool
	Threshold float32 // 0-255
	Range     uint32  // sample radius in pixels, >=1
	Seed      uint32
}

// DefaultConfig returns the filter's baseline tuning: disabled, a
// threshold of 64 and a 15-pixel sample range.
func DefaultConfig() Config {
	return Config{Enabled: false, Threshold: 64, Range: 15, Seed: 0x1337}
}

// Apply filters rgba (width*height RGBA pixels, R,G,B,A byte order) and
// returns a new buffer of the same shape. A disabled config, or a zero
// width or height, returns an unmodified copy of the input. Fully
// transparent pixels pass through untouched and alpha is always
// preserved.
func Apply(rgba []byte, width, height int, cfg Config) []byte {
	out := make([]byte, len(rgba))
	copy(out, rgba)
	if !cfg.Enabled || width <= 0 || height <= 0 {
		return out
	}

	rng := int32(cfg.Range)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4
			if idx+4 > len(rgba) {
				continue
			}
			src := [4]byte{rgba[idx], rgba[idx+1], rgba[idx+2], rgba[idx+3]}
			if src[3] == 0 {
				continue // already copied verbatim above
			}

			ox, oy := sampleOffset(cfg.Seed, uint32(x), uint32(y), rng)
			refs := sampleCross(rgba, width, height, x, y, ox, oy)
			blended := blendDeband(src, refs, cfg.Threshold)
			copy(out[idx:idx+4], blended[:])
		}
	}
	return out
}

func sampleOffset(seed, x, y uint32, rng int32) (int32, int32) {
	hash := seed*0x9E3779B9 + x*0x85EBCA6B + y*0xC2B2AE35
	mod := rng*2 + 1
	ox := int32(hash&0xFFFF)%mod - rng
	oy := int32((hash>>16)&0xFFFF)%mod - rng
	return maxInt32(ox, 1), maxInt32(oy, 1)
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func sampleCross(rgba []byte, width, height, x, y int, ox, oy int32) [4][4]byte {
	sampleAt := func(dx, dy int32) [4]byte {
		nx := clampInt(x+int(dx), 0, width-1)
		ny := clampInt(y+int(dy), 0, height-1)
		idx := (ny*width + nx) * 4
		if idx+4 > len(rgba) {
			return [4]byte{}
		}
		return [4]byte{rgba[idx], rgba[idx+1], rgba[idx+2], rgba[idx+3]}
	}
	return [4][4]byte{
		sampleAt(0, -oy), // up
		sampleAt(0, oy),  // down
		sampleAt(-ox, 0), // left
		sampleAt(ox, 0),  // right
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func blendDeband(src [4]byte, refs [4][4]byte, threshold float32) [4]byte {
	var result [4]byte
	for c := 0; c < 3; c++ {
		s := float32(src[c])
		r := [4]float32{float32(refs[0][c]), float32(refs[1][c]), float32(refs[2][c]), float32(refs[3][c])}

		avg := (r[0] + r[1] + r[2] + r[3]) * 0.25
		avgDif := float32(math.Abs(float64(avg - s)))
		maxDif := float32(0)
		for _, v := range r {
			if d := float32(math.Abs(float64(v - s))); d > maxDif {
				maxDif = d
			}
		}
		midDifV := float32(math.Abs(float64((r[0]+r[1])*0.5 - s)))
		midDifH := float32(math.Abs(float64((r[2]+r[3])*0.5 - s)))

		factor := computeFactor(avgDif, maxDif, midDifV, midDifH, threshold)
		blended := s + (avg-s)*factor
		result[c] = clampByte(blended)
	}
	result[3] = src[3]
	return result
}

func computeFactor(avgDif, maxDif, midV, midH, thresh float32) float32 {
	saturate := func(x float32) float32 {
		if x < 0 {
			return 0
		}
		if x > 1 {
			return 1
		}
		return x
	}

	t1 := thresh
	t2 := thresh * 0.75

	f1 := saturate(3.0 * (1.0 - avgDif/t1))
	f2 := saturate(3.0 * (1.0 - maxDif/t1))
	f3 := saturate(3.0 * (1.0 - midV/t2))
	f4 := saturate(3.0 * (1.0 - midH/t2))

	return float32(math.Pow(float64(f1*f2*f3*f4), 0.1))
}

func clampByte(v float32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
