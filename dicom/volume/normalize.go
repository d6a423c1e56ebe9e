package volume

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dcmkit/radx/dicom/pixel"
)

// normalizeToI16 decodes a slice's raw samples into the i16 buffer an
// ImageVolume stores, dispatching on (BitsAllocated, samples per pixel).
// It also reports the slice's own min/max, ignoring any PixelPaddingValue
// sentinel for monochrome data.
func normalizeToI16(pd *pixel.PixelData, pixelPad *int64) (samples []int16, min, max int16, err error) {
	raw := pd.RawBytes()
	signed := pd.PixelRepresentation == 1
	rgb := pd.SamplesPerPixel == 3

	switch pd.BitsAllocated {
	case 8:
		samples, err = normalize8(raw, signed, rgb)
	case 16:
		samples, err = normalize16(raw, signed, rgb)
	case 32:
		samples, err = normalize32(raw, signed, rgb)
	default:
		return nil, 0, 0, fmt.Errorf("unsupported BitsAllocated %d", pd.BitsAllocated)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	min, max = sliceMinMax(samples, rgb, pixelPad)
	return samples, min, max, nil
}

func normalize8(raw []byte, signed, rgb bool) ([]int16, error) {
	out := make([]int16, len(raw))
	for i, b := range raw {
		if signed && !rgb {
			out[i] = int16(int8(b))
		} else {
			out[i] = int16(b)
		}
	}
	return out, nil
}

func normalize16(raw []byte, signed, rgb bool) ([]int16, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("16-bit sample buffer has odd length %d", len(raw))
	}
	n := len(raw) / 2
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		u := binary.LittleEndian.Uint16(raw[i*2:])
		switch {
		case rgb && signed:
			shifted := int32(int16(u)) + 1 + math.MaxInt16
			out[i] = int16(uint16(shifted))
		case rgb:
			out[i] = int16(uint16(u))
		case signed:
			out[i] = int16(u)
		default:
			if u > math.MaxInt16 {
				out[i] = math.MaxInt16
			} else {
				out[i] = int16(u)
			}
		}
	}
	return out, nil
}

func normalize32(raw []byte, signed, rgb bool) ([]int16, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("32-bit sample buffer has odd length %d", len(raw))
	}
	n := len(raw) / 4
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		u := binary.LittleEndian.Uint32(raw[i*4:])
		switch {
		case rgb && signed:
			shifted := int64(int32(u)) + 1 + math.MaxInt16
			out[i] = clampToInt16(shifted)
		case rgb:
			out[i] = clampToInt16(int64(u))
		case signed:
			out[i] = clampToInt16(int64(int32(u)))
		default:
			if u > math.MaxInt32 {
				out[i] = math.MaxInt16
			} else {
				out[i] = clampToInt16(int64(u))
			}
		}
	}
	return out, nil
}

func clampToInt16(v int64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// sliceMinMax scans normalized monochrome samples for the value range,
// skipping any sample equal to the pixel-padding sentinel. RGB slices report
// a zero range since window/level applies only to monochrome data.
func sliceMinMax(samples []int16, rgb bool, pixelPad *int64) (min, max int16) {
	if rgb || len(samples) == 0 {
		return 0, 0
	}
	first := true
	for _, s := range samples {
		if pixelPad != nil && int64(s) == *pixelPad {
			continue
		}
		if first {
			min, max = s, s
			first = false
			continue
		}
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}
