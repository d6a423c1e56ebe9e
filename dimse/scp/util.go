package scp

import (
	"fmt"

	"github.com/dcmkit/radx/dicom"
	"github.com/dcmkit/radx/dicom/tag"
)

// getStringFromDataSet extracts a string value from a DICOM dataset.
func getStringFromDataSet(ds *dicom.DataSet, t tag.Tag) (string, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return "", fmt.Errorf("get tag %s: %w", t, err)
	}

	value := elem.Value()
	if value == nil {
		return "", fmt.Errorf("tag %s has nil value", t)
	}

	return value.String(), nil
}
