package volume

import (
	"fmt"
	"strings"

	"github.com/dcmkit/radx/dicom"
	"github.com/dcmkit/radx/dicom/tag"
	"github.com/dcmkit/radx/dicom/value"
)

// geometry-only tags not already declared by the tag package's well-known
// registry (these carry VM > 1 DS/IS payloads specific to volume assembly).
var (
	tagImagePositionPatient    = tag.New(0x0020, 0x0032)
	tagImageOrientationPatient = tag.New(0x0020, 0x0037)
	tagPixelSpacing            = tag.New(0x0028, 0x0030)
	tagSliceThickness          = tag.New(0x0018, 0x0050)
	tagSpacingBetweenSlices    = tag.New(0x0018, 0x0088)
	tagPixelPaddingValue       = tag.New(0x0028, 0x0120)
)

// sliceGeometry is the subset of a slice's attributes load_slice needs to
// check consistency against the rest of the volume and to place the slice
// along z.
type sliceGeometry struct {
	SeriesInstanceUID    string
	SOPInstanceUID       string
	Position             [3]float64
	Orientation          [6]float64
	PixelSpacingX        float64
	PixelSpacingY        float64
	SliceSpacingZ        float64
	RescaleSlope         float64
	RescaleIntercept     float64
	PixelPaddingValue    *int64
	SamplesPerPixel      int
	PhotometricIsRGB     bool
	Photometric          string
	PlanarConfiguration  int
	Rows, Columns        int
}

func extractSliceGeometry(ds *dicom.DataSet) (*sliceGeometry, error) {
	seriesUID, err := getRequiredUID(ds, tag.SeriesInstanceUID, "SeriesInstanceUID")
	if err != nil {
		return nil, err
	}
	sopUID, err := getRequiredUID(ds, tag.SOPInstanceUID, "SOPInstanceUID")
	if err != nil {
		return nil, err
	}

	position, err := getFloats(ds, tagImagePositionPatient, 3)
	if err != nil {
		return nil, fmt.Errorf("ImagePositionPatient: %w", err)
	}

	var orientation [6]float64
	if vals, err := getFloats(ds, tagImageOrientationPatient, 6); err == nil {
		copy(orientation[:], vals)
	}

	spacing, err := getFloats(ds, tagPixelSpacing, 2)
	if err != nil {
		return nil, fmt.Errorf("PixelSpacing: %w", err)
	}

	sliceZ, err := sliceSpacing(ds)
	if err != nil {
		return nil, err
	}

	slope, intercept := rescaleValues(ds)

	geom := &sliceGeometry{
		SeriesInstanceUID: seriesUID,
		SOPInstanceUID:    sopUID,
		Orientation:       orientation,
		PixelSpacingX:     spacing[0],
		PixelSpacingY:     spacing[1],
		SliceSpacingZ:      sliceZ,
		RescaleSlope:       slope,
		RescaleIntercept:   intercept,
		PixelPaddingValue:  pixelPaddingValue(ds),
	}
	copy(geom.Position[:], position)

	rows, err := getUint(ds, tag.Rows, "Rows")
	if err != nil {
		return nil, err
	}
	cols, err := getUint(ds, tag.Columns, "Columns")
	if err != nil {
		return nil, err
	}
	samples, err := getUint(ds, tag.SamplesPerPixel, "SamplesPerPixel")
	if err != nil {
		return nil, err
	}
	geom.Rows, geom.Columns, geom.SamplesPerPixel = int(rows), int(cols), int(samples)

	photometric, err := getString(ds, tag.PhotometricInterpretation, "PhotometricInterpretation")
	if err != nil {
		return nil, err
	}
	geom.Photometric = photometric
	geom.PhotometricIsRGB = strings.HasPrefix(strings.ToUpper(photometric), "RGB")

	if planar, err := getUint(ds, tag.PlanarConfiguration, "PlanarConfiguration"); err == nil {
		geom.PlanarConfiguration = int(planar)
	}

	return geom, nil
}

// sliceSpacing resolves the z-axis voxel spacing: SliceThickness, falling
// back to SpacingBetweenSlices. Either must be a valid positive value.
func sliceSpacing(ds *dicom.DataSet) (float64, error) {
	if vals, err := getFloats(ds, tagSliceThickness, 1); err == nil && vals[0] > 0 {
		return vals[0], nil
	}
	if vals, err := getFloats(ds, tagSpacingBetweenSlices, 1); err == nil && vals[0] > 0 {
		return vals[0], nil
	}
	return 0, fmt.Errorf("neither SliceThickness nor SpacingBetweenSlices is a valid positive value")
}

func rescaleValues(ds *dicom.DataSet) (slope, intercept float64) {
	slope, intercept = 1.0, 0.0
	if vals, err := getFloats(ds, tag.New(0x0028, 0x1053), 1); err == nil {
		slope = vals[0]
	}
	if vals, err := getFloats(ds, tag.New(0x0028, 0x1052), 1); err == nil {
		intercept = vals[0]
	}
	return slope, intercept
}

func pixelPaddingValue(ds *dicom.DataSet) *int64 {
	elem, err := ds.Get(tagPixelPaddingValue)
	if err != nil {
		return nil
	}
	intVal, ok := elem.Value().(*value.IntValue)
	if !ok {
		return nil
	}
	ints := intVal.Ints()
	if len(ints) == 0 {
		return nil
	}
	v := ints[0]
	return &v
}

func getRequiredUID(ds *dicom.DataSet, t tag.Tag, name string) (string, error) {
	return getString(ds, t, name)
}

// getFloatList reads a DS-encoded element and parses however many values
// it carries.
func getFloatList(ds *dicom.DataSet, t tag.Tag) ([]float64, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return nil, err
	}
	strs := stringList(elem.Value())
	out := make([]float64, 0, len(strs))
	for i, s := range strs {
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &f); err != nil {
			return nil, fmt.Errorf("%s value %d (%q) is not a decimal: %w", t.String(), i, s, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// stringList returns a value's string slice, or nil for non-string values.
func stringList(v value.Value) []string {
	strVal, ok := v.(*value.StringValue)
	if !ok {
		return nil
	}
	return strVal.Strings()
}

func getString(ds *dicom.DataSet, t tag.Tag, name string) (string, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return "", fmt.Errorf("%s (%s) not present: %w", name, t.String(), err)
	}
	strVal, ok := elem.Value().(*value.StringValue)
	if !ok {
		return "", fmt.Errorf("%s (%s) is not a string value", name, t.String())
	}
	strs := strVal.Strings()
	if len(strs) == 0 {
		return "", fmt.Errorf("%s (%s) has no values", name, t.String())
	}
	return strs[0], nil
}

func getUint(ds *dicom.DataSet, t tag.Tag, name string) (uint32, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return 0, fmt.Errorf("%s (%s) not present: %w", name, t.String(), err)
	}
	intVal, ok := elem.Value().(*value.IntValue)
	if !ok {
		return 0, fmt.Errorf("%s (%s) is not an integer value", name, t.String())
	}
	ints := intVal.Ints()
	if len(ints) == 0 {
		return 0, fmt.Errorf("%s (%s) has no values", name, t.String())
	}
	return uint32(ints[0]), nil
}

// getFloats reads a DS-encoded (backslash-separated decimal string) element
// and parses exactly want values from it.
func getFloats(ds *dicom.DataSet, t tag.Tag, want int) ([]float64, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return nil, err
	}
	strVal, ok := elem.Value().(*value.StringValue)
	if !ok {
		return nil, fmt.Errorf("%s is not a string-encoded (DS) value", t.String())
	}
	strs := strVal.Strings()
	if len(strs) < want {
		return nil, fmt.Errorf("%s expected %d values, got %d", t.String(), want, len(strs))
	}
	out := make([]float64, want)
	for i := 0; i < want; i++ {
		if _, err := fmt.Sscanf(strings.TrimSpace(strs[i]), "%f", &out[i]); err != nil {
			return nil, fmt.Errorf("%s value %d (%q) is not a decimal: %w", t.String(), i, strs[i], err)
		}
	}
	return out, nil
}
