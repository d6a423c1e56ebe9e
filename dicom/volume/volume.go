// Package volume assembles decoded 2-D slices from a single DICOM series
// into a sorted, geometry-consistent 3-D voxel buffer.
//
// DICOM Standard Reference (Image Plane Module, PS3.3 C.7.6.2):
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.7.6.2
package volume

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dcmkit/radx/dicom"
	"github.com/dcmkit/radx/dicom/pixel"
)

// geometryEpsilon is the tolerance (in millimeters) used when comparing a
// candidate slice's voxel spacing against the volume's; x/y counts must
// match exactly.
const geometryEpsilon = 0.01

// Axis names a reslicing direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "unknown"
	}
}

// Dims holds the geometry shared by every slice in a volume: in-plane pixel
// counts and physical spacing (mm per voxel) along x and y.
type Dims struct {
	CountX, CountY int
	SpacingX       float64
	SpacingY       float64
}

// Matches reports whether two Dims describe the same in-plane geometry,
// allowing up to geometryEpsilon millimeters of spacing drift.
func (d Dims) Matches(other Dims) bool {
	return d.CountX == other.CountX &&
		d.CountY == other.CountY &&
		math.Abs(d.SpacingX-other.SpacingX) <= geometryEpsilon &&
		math.Abs(d.SpacingY-other.SpacingY) <= geometryEpsilon
}

// Slice is one decoded 2-D image, normalized to i16 samples, plus the
// per-instance geometry load_slice verified against the volume.
type Slice struct {
	SOPInstanceUID string
	Position       [3]float64 // ImagePositionPatient (mm)
	Min, Max       int16
	Samples        []int16 // row-major, SamplesPerPixel interleaved/planar per stride
}

func (s *Slice) z() float64 { return s.Position[2] }

// ImageVolume aggregates slices from one series into a sorted 3-D buffer.
// The zero value is an empty volume ready for LoadSlice.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.7.6.3
type ImageVolume struct {
	mu sync.RWMutex

	SeriesInstanceUID string

	Dims             Dims
	Origin           [3]float64 // lowest-z slice's ImagePositionPatient
	CountZ           int
	Stride           int // 1 = interleaved samples, total/3 = planar
	RGB              bool
	SamplesPerPixel  int
	RescaleSlope     float64
	RescaleIntercept float64
	PixelPadValue    *int64
	Photometric      string

	Min, Max int16 // volume-wide value range across all monochrome slices

	// WindowLevels holds the series' VOI windows: those declared by the
	// first slice's WindowCenter/WindowWidth attributes, plus a
	// synthesized full-range "Min/Max" entry maintained as slices load.
	WindowLevels []WindowLevel

	slices []*Slice
}

// New returns an empty volume. Geometry is adopted from the first slice
// passed to LoadSlice.
func New() *ImageVolume {
	return &ImageVolume{}
}

// LoadSlice decodes ds's pixel data and inserts it into the volume,
// sorted by ImagePositionPatient.z. The first slice loaded establishes the
// volume's geometry; every subsequent slice must agree with it or the call
// returns an *InconsistentSliceFormatError and the volume is left unchanged.
func (v *ImageVolume) LoadSlice(ds *dicom.DataSet) error {
	geom, err := extractSliceGeometry(ds)
	if err != nil {
		return fmt.Errorf("extract slice geometry: %w", err)
	}

	pd, err := pixel.Extract(ds)
	if err != nil {
		return fmt.Errorf("extract pixel data: %w", err)
	}

	samples, min, max, err := normalizeToI16(pd, geom.PixelPaddingValue)
	if err != nil {
		return fmt.Errorf("normalize pixel data: %w", err)
	}

	stride := 1
	if geom.PhotometricIsRGB && geom.PlanarConfiguration == 1 {
		stride = geom.Rows * geom.Columns
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	dims := Dims{CountX: geom.Columns, CountY: geom.Rows, SpacingX: geom.PixelSpacingX, SpacingY: geom.PixelSpacingY}

	if len(v.slices) == 0 {
		v.SeriesInstanceUID = geom.SeriesInstanceUID
		v.Dims = dims
		v.Stride = stride
		v.RGB = geom.PhotometricIsRGB
		v.SamplesPerPixel = geom.SamplesPerPixel
		v.RescaleSlope = geom.RescaleSlope
		v.RescaleIntercept = geom.RescaleIntercept
		v.PixelPadValue = geom.PixelPaddingValue
		v.Photometric = geom.Photometric
		v.WindowLevels = windowLevelsFromDataSet(ds)
	} else if reason := v.conflictsWith(geom, dims, stride); reason != "" {
		logrus.WithFields(logrus.Fields{
			"series_uid": v.SeriesInstanceUID,
			"sop_uid":    geom.SOPInstanceUID,
			"reason":     reason,
		}).Warn("rejecting slice with inconsistent geometry")
		return &InconsistentSliceFormatError{SOPInstanceUID: geom.SOPInstanceUID, Reason: reason}
	}

	slice := &Slice{
		SOPInstanceUID: geom.SOPInstanceUID,
		Position:       geom.Position,
		Min:            min,
		Max:            max,
		Samples:        samples,
	}

	if err := v.insertSorted(slice); err != nil {
		return err
	}

	v.CountZ = len(v.slices)
	v.Origin = v.slices[0].Position
	if !v.RGB {
		if v.CountZ == 1 {
			v.Min, v.Max = slice.Min, slice.Max
		} else {
			if slice.Min < v.Min {
				v.Min = slice.Min
			}
			if slice.Max > v.Max {
				v.Max = slice.Max
			}
		}

		// Keep exactly one synthesized full-range window tracking the
		// observed range; declared windows are left untouched.
		declared := v.WindowLevels[:0:0]
		for _, wl := range v.WindowLevels {
			if wl.Name != "Min/Max" {
				declared = append(declared, wl)
			}
		}
		v.WindowLevels = synthesizeMinMaxWindow(declared, v.Min, v.Max)
	}

	return nil
}

// conflictsWith reports the first geometry mismatch between a candidate
// slice and the volume's established geometry, or "" if none.
func (v *ImageVolume) conflictsWith(geom *sliceGeometry, dims Dims, stride int) string {
	switch {
	case geom.SeriesInstanceUID != v.SeriesInstanceUID:
		return "series instance UID does not match volume"
	case !dims.Matches(v.Dims):
		return "row/column counts or pixel spacing do not match volume"
	case stride != v.Stride:
		return "pixel stride does not match volume"
	case geom.PhotometricIsRGB != v.RGB:
		return "photometric interpretation (RGB vs monochrome) does not match volume"
	case geom.SamplesPerPixel != v.SamplesPerPixel:
		return "samples per pixel does not match volume"
	case geom.RescaleSlope != v.RescaleSlope:
		return "rescale slope does not match volume"
	case geom.RescaleIntercept != v.RescaleIntercept:
		return "rescale intercept does not match volume"
	case !pixelPadEqual(geom.PixelPaddingValue, v.PixelPadValue):
		return "pixel padding value does not match volume"
	default:
		return ""
	}
}

func pixelPadEqual(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// insertSorted places slice into v.slices keeping the list sorted by z,
// rejecting a second slice at the same z position.
func (v *ImageVolume) insertSorted(slice *Slice) error {
	z := slice.z()
	idx := sort.Search(len(v.slices), func(i int) bool { return v.slices[i].z() >= z })
	if idx < len(v.slices) && v.slices[idx].z() == z {
		return &DuplicateSlicePositionError{SOPInstanceUID: slice.SOPInstanceUID, Z: z}
	}
	v.slices = append(v.slices, nil)
	copy(v.slices[idx+1:], v.slices[idx:])
	v.slices[idx] = slice
	return nil
}

// Len returns the number of slices currently loaded.
func (v *ImageVolume) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.slices)
}

// SliceAt returns the z-sorted slice at the given index.
func (v *ImageVolume) SliceAt(z int) (*Slice, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if z < 0 || z >= len(v.slices) {
		return nil, &InvalidDimsError{Axis: AxisZ, Index: z, Bound: len(v.slices)}
	}
	return v.slices[z], nil
}

// Coordinate maps a voxel index (i, j, k) to patient-space millimeters:
// origin + voxel_dims ∘ (i, j, k).
func (v *ImageVolume) Coordinate(i, j, k int) [3]float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return [3]float64{
		v.Origin[0] + float64(i)*v.Dims.SpacingX,
		v.Origin[1] + float64(j)*v.Dims.SpacingY,
		v.Origin[2] + float64(k)*sliceSpacingZ(v),
	}
}

func sliceSpacingZ(v *ImageVolume) float64 {
	if len(v.slices) < 2 {
		return 0
	}
	return v.slices[1].z() - v.slices[0].z()
}

// Plane produces a row-major iterator over one oriented cross-section of the
// volume: for AxisZ the native (cols, rows) slice at the given index; for
// AxisX the (y_count, z_count) plane at a fixed column; for AxisY the
// (x_count, z_count) plane at a fixed row.
func (v *ImageVolume) Plane(axis Axis, index int) ([]int16, int, int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	switch axis {
	case AxisZ:
		if index < 0 || index >= len(v.slices) {
			return nil, 0, 0, &InvalidDimsError{Axis: axis, Index: index, Bound: len(v.slices)}
		}
		return v.slices[index].Samples, v.Dims.CountX, v.Dims.CountY, nil

	case AxisX:
		if index < 0 || index >= v.Dims.CountX {
			return nil, 0, 0, &InvalidDimsError{Axis: axis, Index: index, Bound: v.Dims.CountX}
		}
		out := make([]int16, v.Dims.CountY*len(v.slices))
		for k, s := range v.slices {
			for row := 0; row < v.Dims.CountY; row++ {
				out[k*v.Dims.CountY+row] = s.Samples[row*v.Dims.CountX+index]
			}
		}
		return out, v.Dims.CountY, len(v.slices), nil

	case AxisY:
		if index < 0 || index >= v.Dims.CountY {
			return nil, 0, 0, &InvalidDimsError{Axis: axis, Index: index, Bound: v.Dims.CountY}
		}
		out := make([]int16, v.Dims.CountX*len(v.slices))
		for k, s := range v.slices {
			copy(out[k*v.Dims.CountX:(k+1)*v.Dims.CountX], s.Samples[index*v.Dims.CountX:(index+1)*v.Dims.CountX])
		}
		return out, v.Dims.CountX, len(v.slices), nil

	default:
		return nil, 0, 0, &InvalidDimsError{Axis: axis, Index: index, Bound: 0}
	}
}

// SliceRange reports the SOP Instance UIDs of the source slices that
// contribute to the plane Plane(axis, index) returns: a single slice for
// AxisZ, every loaded slice for the resliced X and Y orientations. This
// lets a viewer map a resliced pixel row back to the instance it came from.
func (v *ImageVolume) SliceRange(axis Axis, index int) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	switch axis {
	case AxisZ:
		if index < 0 || index >= len(v.slices) {
			return nil, &InvalidDimsError{Axis: axis, Index: index, Bound: len(v.slices)}
		}
		return []string{v.slices[index].SOPInstanceUID}, nil

	case AxisX:
		if index < 0 || index >= v.Dims.CountX {
			return nil, &InvalidDimsError{Axis: axis, Index: index, Bound: v.Dims.CountX}
		}
	case AxisY:
		if index < 0 || index >= v.Dims.CountY {
			return nil, &InvalidDimsError{Axis: axis, Index: index, Bound: v.Dims.CountY}
		}
	default:
		return nil, &InvalidDimsError{Axis: axis, Index: index, Bound: 0}
	}

	uids := make([]string, len(v.slices))
	for i, s := range v.slices {
		uids[i] = s.SOPInstanceUID
	}
	return uids, nil
}
