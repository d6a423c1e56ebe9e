package volume

import (
	"github.com/dcmkit/radx/dicom"
	"github.com/dcmkit/radx/dicom/tag"
)

var (
	tagWindowCenter            = tag.New(0x0028, 0x1050)
	tagWindowWidth             = tag.New(0x0028, 0x1051)
	tagWindowCenterExplanation = tag.New(0x0028, 0x1055)
)

// WindowLevel is one VOI window: a center/width pair mapping stored sample
// values into a display range.
type WindowLevel struct {
	Name   string
	Center float64
	Width  float64
}

// Apply maps a sample value through the window into [outMin, outMax]
// using the VOI LUT function of PS3.3 C.11.2.1.2.1: with c = Center - 0.5
// and w = Width - 1, values at or below c - w/2 clamp to outMin, values
// above c + w/2 clamp to outMax, and the span in between maps linearly.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.11.2.1.2.1
func (wl WindowLevel) Apply(v, outMin, outMax float64) float64 {
	c := wl.Center - 0.5
	w := wl.Width - 1
	switch {
	case v <= c-w/2:
		return outMin
	case v > c+w/2:
		return outMax
	default:
		return ((v-c)/w+0.5)*(outMax-outMin) + outMin
	}
}

// windowLevelsFromDataSet reads the (possibly multi-valued) WindowCenter
// and WindowWidth attributes, pairing them index-wise with any
// WindowCenterWidthExplanation values as names. Pairs with a missing
// counterpart are dropped.
func windowLevelsFromDataSet(ds *dicom.DataSet) []WindowLevel {
	centers, errC := getFloatList(ds, tagWindowCenter)
	widths, errW := getFloatList(ds, tagWindowWidth)
	if errC != nil || errW != nil {
		return nil
	}

	n := len(centers)
	if len(widths) < n {
		n = len(widths)
	}

	var names []string
	if elem, err := ds.Get(tagWindowCenterExplanation); err == nil {
		names = stringList(elem.Value())
	}

	levels := make([]WindowLevel, 0, n)
	for i := 0; i < n; i++ {
		wl := WindowLevel{Center: centers[i], Width: widths[i]}
		if i < len(names) {
			wl.Name = names[i]
		}
		levels = append(levels, wl)
	}
	return levels
}

// synthesizeMinMaxWindow appends a full-range "Min/Max" window derived
// from the volume's observed sample range, unless an equal center/width
// pair is already present.
func synthesizeMinMaxWindow(levels []WindowLevel, min, max int16) []WindowLevel {
	center := (float64(min) + float64(max)) / 2
	width := float64(max) - float64(min) + 1

	for _, wl := range levels {
		if wl.Center == center && wl.Width == width {
			return levels
		}
	}
	return append(levels, WindowLevel{Name: "Min/Max", Center: center, Width: width})
}
