package scp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dcmkit/radx/dicom"
	"github.com/dcmkit/radx/dicom/element"
	"github.com/dcmkit/radx/dicom/tag"
	"github.com/dcmkit/radx/dicom/value"
	"github.com/dcmkit/radx/dicom/vr"
	"github.com/dcmkit/radx/dimse/dimse"
)

// QueryIndex answers C-FIND identifier queries against some backing store
// of instance records. Implementations group their records according to the
// Query/Retrieve Level in the identifier and return one result dataset per
// group.
type QueryIndex interface {
	Search(ctx context.Context, query *dicom.DataSet) ([]*dicom.DataSet, error)
}

// InstanceRecord is one SOP instance's queryable attributes. The index
// stores one record per instance; PATIENT/STUDY/SERIES level queries group
// records by the level's key attribute.
type InstanceRecord struct {
	PatientName      string
	PatientID        string
	PatientBirthDate string
	PatientSex       string

	StudyInstanceUID string
	StudyDate        string
	StudyTime        string
	StudyDescription string
	AccessionNumber  string

	SeriesInstanceUID string
	SeriesNumber      string
	SeriesDescription string
	Modality          string

	SOPInstanceUID string
	SOPClassUID    string
	InstanceNumber string
}

// MemoryIndex is an in-memory QueryIndex. It is safe for concurrent use;
// a C-FIND search takes a read lock while new instances may be registered
// from concurrent C-STORE associations under the write lock.
type MemoryIndex struct {
	mu      sync.RWMutex
	records []InstanceRecord
}

// NewMemoryIndex creates an empty in-memory query index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add registers one instance record.
func (ix *MemoryIndex) Add(rec InstanceRecord) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.records = append(ix.records, rec)
}

// AddDataSet registers the instance described by a parsed dataset, e.g. one
// just received by a C-STORE SCP. Attributes absent from the dataset are
// indexed as empty strings.
func (ix *MemoryIndex) AddDataSet(ds *dicom.DataSet) error {
	sopUID := stringOrEmpty(ds, tag.SOPInstanceUID)
	if sopUID == "" {
		return fmt.Errorf("dataset has no SOPInstanceUID, cannot index")
	}

	ix.Add(InstanceRecord{
		PatientName:      stringOrEmpty(ds, tag.PatientName),
		PatientID:        stringOrEmpty(ds, tag.PatientID),
		PatientBirthDate: stringOrEmpty(ds, tag.PatientBirthDate),
		PatientSex:       stringOrEmpty(ds, tag.PatientSex),

		StudyInstanceUID: stringOrEmpty(ds, tag.StudyInstanceUID),
		StudyDate:        stringOrEmpty(ds, tag.StudyDate),
		StudyTime:        stringOrEmpty(ds, tag.StudyTime),
		StudyDescription: stringOrEmpty(ds, tag.StudyDescription),
		AccessionNumber:  stringOrEmpty(ds, tag.AccessionNumber),

		SeriesInstanceUID: stringOrEmpty(ds, tag.SeriesInstanceUID),
		SeriesNumber:      stringOrEmpty(ds, tag.SeriesNumber),
		SeriesDescription: stringOrEmpty(ds, tag.SeriesDescription),
		Modality:          stringOrEmpty(ds, tag.Modality),

		SOPInstanceUID: sopUID,
		SOPClassUID:    stringOrEmpty(ds, tag.SOPClassUID),
		InstanceNumber: stringOrEmpty(ds, tag.InstanceNumber),
	})
	return nil
}

// Len returns the number of indexed instance records.
func (ix *MemoryIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

// queryAttribute binds a query tag to its VR and record accessor.
type queryAttribute struct {
	tag tag.Tag
	vr  vr.VR
	get func(*InstanceRecord) string
}

var queryAttributes = []queryAttribute{
	{tag.PatientName, vr.PersonName, func(r *InstanceRecord) string { return r.PatientName }},
	{tag.PatientID, vr.LongString, func(r *InstanceRecord) string { return r.PatientID }},
	{tag.PatientBirthDate, vr.Date, func(r *InstanceRecord) string { return r.PatientBirthDate }},
	{tag.PatientSex, vr.CodeString, func(r *InstanceRecord) string { return r.PatientSex }},
	{tag.StudyInstanceUID, vr.UniqueIdentifier, func(r *InstanceRecord) string { return r.StudyInstanceUID }},
	{tag.StudyDate, vr.Date, func(r *InstanceRecord) string { return r.StudyDate }},
	{tag.StudyTime, vr.Time, func(r *InstanceRecord) string { return r.StudyTime }},
	{tag.StudyDescription, vr.LongString, func(r *InstanceRecord) string { return r.StudyDescription }},
	{tag.AccessionNumber, vr.ShortString, func(r *InstanceRecord) string { return r.AccessionNumber }},
	{tag.SeriesInstanceUID, vr.UniqueIdentifier, func(r *InstanceRecord) string { return r.SeriesInstanceUID }},
	{tag.SeriesNumber, vr.IntegerString, func(r *InstanceRecord) string { return r.SeriesNumber }},
	{tag.SeriesDescription, vr.LongString, func(r *InstanceRecord) string { return r.SeriesDescription }},
	{tag.Modality, vr.CodeString, func(r *InstanceRecord) string { return r.Modality }},
	{tag.SOPInstanceUID, vr.UniqueIdentifier, func(r *InstanceRecord) string { return r.SOPInstanceUID }},
	{tag.SOPClassUID, vr.UniqueIdentifier, func(r *InstanceRecord) string { return r.SOPClassUID }},
	{tag.InstanceNumber, vr.IntegerString, func(r *InstanceRecord) string { return r.InstanceNumber }},
}

// criterion is one identifier attribute with the match pattern the query
// supplied for it (possibly empty, meaning universal matching).
type criterion struct {
	attr    queryAttribute
	pattern string
}

// groupKey returns the attribute that uniquely identifies a record at the
// given Query/Retrieve Level.
func groupKey(level string, r *InstanceRecord) (string, error) {
	switch level {
	case "PATIENT":
		return r.PatientID, nil
	case "STUDY":
		return r.StudyInstanceUID, nil
	case "SERIES":
		return r.SeriesInstanceUID, nil
	case "IMAGE":
		return r.SOPInstanceUID, nil
	default:
		return "", fmt.Errorf("unsupported QueryRetrieveLevel %q", level)
	}
}

// Search evaluates a C-FIND identifier against the index.
//
// Matching follows PS3.4 C.2.2.2 single-value and wildcard matching: an
// empty (universal) query value matches every record, "*" and "?" perform
// wildcard matching, and any other value must match exactly. Records that
// pass every non-empty key are grouped by the level key; one result dataset
// per group is returned, populated with the attributes the identifier
// requested plus the level key itself.
func (ix *MemoryIndex) Search(ctx context.Context, query *dicom.DataSet) ([]*dicom.DataSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	level := strings.ToUpper(stringOrEmpty(query, tag.QueryRetrieveLevel))
	if level == "" {
		return nil, fmt.Errorf("identifier has no QueryRetrieveLevel")
	}

	// Which attributes did the identifier carry, and with what values?
	var criteria []criterion
	for _, attr := range queryAttributes {
		elem, err := query.Get(attr.tag)
		if err != nil {
			continue
		}
		criteria = append(criteria, criterion{attr, elem.Value().String()})
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	seen := make(map[string]bool)
	var results []*dicom.DataSet

	for i := range ix.records {
		rec := &ix.records[i]

		matched := true
		for _, c := range criteria {
			if !matchValue(c.pattern, c.attr.get(rec)) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		key, err := groupKey(level, rec)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		result, err := buildResult(level, rec, criteria)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// buildResult assembles one response identifier: the Query/Retrieve Level
// plus every attribute the query asked for, filled from the record.
func buildResult(level string, rec *InstanceRecord, criteria []criterion) (*dicom.DataSet, error) {
	ds := dicom.NewDataSet()

	levelVal, err := value.NewStringValue(vr.CodeString, []string{level})
	if err != nil {
		return nil, err
	}
	levelElem, err := element.NewElement(tag.QueryRetrieveLevel, vr.CodeString, levelVal)
	if err != nil {
		return nil, err
	}
	if err := ds.Add(levelElem); err != nil {
		return nil, err
	}

	for _, c := range criteria {
		val, err := value.NewStringValue(c.attr.vr, []string{c.attr.get(rec)})
		if err != nil {
			return nil, err
		}
		elem, err := element.NewElement(c.attr.tag, c.attr.vr, val)
		if err != nil {
			return nil, err
		}
		if err := ds.Add(elem); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

// matchValue implements single-value and wildcard matching. An empty
// pattern is universal matching and accepts anything.
func matchValue(pattern, v string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return pattern == v
	}
	return wildcardMatch(pattern, v)
}

// wildcardMatch matches v against pattern where '*' matches any run of
// characters and '?' matches exactly one.
func wildcardMatch(pattern, v string) bool {
	p, s := 0, 0
	star, mark := -1, 0
	for s < len(v) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == v[s]):
			p++
			s++
		case p < len(pattern) && pattern[p] == '*':
			star, mark = p, s
			p++
		case star >= 0:
			p = star + 1
			mark++
			s = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// IndexFindHandler adapts a QueryIndex to the FindHandler interface.
type IndexFindHandler struct {
	index QueryIndex
}

// NewIndexFindHandler creates a FindHandler that answers queries from the
// given index.
func NewIndexFindHandler(index QueryIndex) *IndexFindHandler {
	return &IndexFindHandler{index: index}
}

// HandleFind implements FindHandler.
func (h *IndexFindHandler) HandleFind(ctx context.Context, req *FindRequest) *FindResponse {
	if req.Query == nil {
		return &FindResponse{Status: dimse.StatusSuccess}
	}

	results, err := h.index.Search(ctx, req.Query)
	if err != nil {
		return &FindResponse{Status: dimse.StatusProcessingFailure}
	}

	return &FindResponse{
		Results: results,
		Status:  dimse.StatusSuccess,
	}
}

func stringOrEmpty(ds *dicom.DataSet, t tag.Tag) string {
	elem, err := ds.Get(t)
	if err != nil {
		return ""
	}
	return elem.Value().String()
}
