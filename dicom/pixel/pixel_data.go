package pixel

import (
	"fmt"
)

// PixelData represents decompressed DICOM pixel data with associated metadata.
type PixelData struct {
	// Dimensional attributes
	Rows    uint16 // Number of rows (height)
	Columns uint16 // Number of columns (width)

	// Pixel representation attributes
	BitsAllocated       uint16 // Number of bits allocated for each pixel sample
	BitsStored          uint16 // Number of bits actually stored for each pixel sample
	HighBit             uint16 // Most significant bit for pixel sample value
	PixelRepresentation uint16 // 0 = unsigned, 1 = signed (2's complement)

	// Color attributes
	SamplesPerPixel           uint16 // Number of samples per pixel (1 = grayscale, 3 = RGB)
	PhotometricInterpretation string // Color space (MONOCHROME1, MONOCHROME2, RGB, YBR_FULL, etc.)
	PlanarConfiguration       uint16 // 0 = interleaved (RGBRGB...), 1 = planar (RRR...GGG...BBB...)

	// Multi-frame attributes
	NumberOfFrames int // Number of frames in the dataset (1 for single-frame)

	// Decompressed pixel values
	data []byte // Raw pixel data bytes

	// Transfer syntax
	TransferSyntaxUID string // Transfer syntax used for decompression
}

// Frame represents a single frame from a multi-frame pixel data.
type Frame struct {
	Index               int    // Frame index (0-based)
	Rows                uint16 // Frame height
	Columns             uint16 // Frame width
	BitsAllocated       uint16
	BitsStored          uint16
	PixelRepresentation uint16
	SamplesPerPixel     uint16
	data                []byte // Frame pixel data
}

// Array returns the pixel data as a typed slice based on BitsAllocated and PixelRepresentation.
//
// Returns:
//   - []uint8 for BitsAllocated <= 8, unsigned
//   - []int8 for BitsAllocated <= 8, signed
//   - []uint16 for 9 <= BitsAllocated <= 16, unsigned
//   - []int16 for 9 <= BitsAllocated <= 16, signed
//
// For multi-frame datasets, this returns all frames concatenated.
func (p *PixelData) Array() interface{} {
	if p.PixelRepresentation == 1 {
		// Signed pixel data
		if p.BitsAllocated <= 8 {
			// Convert bytes to int8
			result := make([]int8, len(p.data))
			for i, b := range p.data {
				result[i] = int8(b)
			}
			return result
		}
		// Convert to int16
		result := make([]int16, len(p.data)/2)
		for i := 0; i < len(result); i++ {
			result[i] = int16(uint16(p.data[i*2]) | uint16(p.data[i*2+1])<<8)
		}
		return result
	}

	// Unsigned pixel data
	if p.BitsAllocated <= 8 {
		return p.data
	}

	// Convert to uint16
	result := make([]uint16, len(p.data)/2)
	for i := 0; i < len(result); i++ {
		result[i] = uint16(p.data[i*2]) | uint16(p.data[i*2+1])<<8
	}
	return result
}

// Frames returns individual frames from a multi-frame dataset.
//
// For single-frame datasets, returns a slice with one frame.
func (p *PixelData) Frames() []Frame {
	if p.NumberOfFrames <= 1 {
		return []Frame{{
			Index:               0,
			Rows:                p.Rows,
			Columns:             p.Columns,
			BitsAllocated:       p.BitsAllocated,
			BitsStored:          p.BitsStored,
			PixelRepresentation: p.PixelRepresentation,
			SamplesPerPixel:     p.SamplesPerPixel,
			data:                p.data,
		}}
	}

	// Calculate frame size in bytes
	bytesPerSample := int(p.BitsAllocated+7) / 8
	frameSize := int(p.Rows) * int(p.Columns) * int(p.SamplesPerPixel) * bytesPerSample

	frames := make([]Frame, p.NumberOfFrames)
	for i := 0; i < p.NumberOfFrames; i++ {
		start := i * frameSize
		end := start + frameSize
		if end > len(p.data) {
			end = len(p.data)
		}

		frames[i] = Frame{
			Index:               i,
			Rows:                p.Rows,
			Columns:             p.Columns,
			BitsAllocated:       p.BitsAllocated,
			BitsStored:          p.BitsStored,
			PixelRepresentation: p.PixelRepresentation,
			SamplesPerPixel:     p.SamplesPerPixel,
			data:                p.data[start:end],
		}
	}

	return frames
}

// Array returns the frame's pixel data as a typed slice.
func (f *Frame) Array() interface{} {
	if f.PixelRepresentation == 1 {
		// Signed pixel data
		if f.BitsAllocated <= 8 {
			result := make([]int8, len(f.data))
			for i, b := range f.data {
				result[i] = int8(b)
			}
			return result
		}
		// Convert to int16
		result := make([]int16, len(f.data)/2)
		for i := 0; i < len(result); i++ {
			result[i] = int16(uint16(f.data[i*2]) | uint16(f.data[i*2+1])<<8)
		}
		return result
	}

	// Unsigned pixel data
	if f.BitsAllocated <= 8 {
		return f.data
	}

	// Convert to uint16
	result := make([]uint16, len(f.data)/2)
	for i := 0; i < len(result); i++ {
		result[i] = uint16(f.data[i*2]) | uint16(f.data[i*2+1])<<8
	}
	return result
}

// RawBytes returns the raw pixel data bytes.
//
// This provides direct access to the underlying pixel data for performance-sensitive
// operations like benchmarking or custom processing.
func (p *PixelData) RawBytes() []byte {
	return p.data
}

// String returns a human-readable description of the pixel data.
func (p *PixelData) String() string {
	return fmt.Sprintf("PixelData{%dx%dx%d, %d bits, %s, %d frames}",
		p.Columns, p.Rows, p.SamplesPerPixel, p.BitsStored,
		p.PhotometricInterpretation, p.NumberOfFrames)
}

// String returns a human-readable description of the frame.
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{%d: %dx%d, %d bits}",
		f.Index, f.Columns, f.Rows, f.BitsStored)
}
