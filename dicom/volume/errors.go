package volume

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistentSliceFormat indicates a slice's geometry disagrees with
	// the volume it is being inserted into.
	ErrInconsistentSliceFormat = errors.New("inconsistent slice format")

	// ErrInvalidDims indicates an out-of-range axis or index was requested
	// when reslicing a volume.
	ErrInvalidDims = errors.New("invalid dims")

	// ErrDuplicateSlicePosition indicates two slices share the same z position.
	ErrDuplicateSlicePosition = errors.New("duplicate slice position")
)

// InconsistentSliceFormatError wraps ErrInconsistentSliceFormat with the
// offending instance and a human-readable reason.
type InconsistentSliceFormatError struct {
	SOPInstanceUID string
	Reason         string
}

func (e *InconsistentSliceFormatError) Error() string {
	return fmt.Sprintf("%s: instance %s: %s", ErrInconsistentSliceFormat.Error(), e.SOPInstanceUID, e.Reason)
}

func (e *InconsistentSliceFormatError) Unwrap() error {
	return ErrInconsistentSliceFormat
}

// InvalidDimsError wraps ErrInvalidDims with the offending axis and index.
type InvalidDimsError struct {
	Axis  Axis
	Index int
	Bound int
}

func (e *InvalidDimsError) Error() string {
	return fmt.Sprintf("%s: axis %s index %d (bound %d)", ErrInvalidDims.Error(), e.Axis, e.Index, e.Bound)
}

func (e *InvalidDimsError) Unwrap() error {
	return ErrInvalidDims
}

// DuplicateSlicePositionError wraps ErrDuplicateSlicePosition with the
// conflicting z position.
type DuplicateSlicePositionError struct {
	SOPInstanceUID string
	Z              float64
}

func (e *DuplicateSlicePositionError) Error() string {
	return fmt.Sprintf("%s: instance %s at z=%.4f", ErrDuplicateSlicePosition.Error(), e.SOPInstanceUID, e.Z)
}

func (e *DuplicateSlicePositionError) Unwrap() error {
	return ErrDuplicateSlicePosition
}
