package dicom

import (
	"fmt"
	"strings"

	"github.com/dcmkit/radx/dicom/tag"
	"github.com/dcmkit/radx/dicom/value"
	"github.com/dcmkit/radx/dicom/vr"
)

// TagNode names one step of a location inside a dataset's element tree: a
// tag, plus a 1-based item index when the step descends into a sequence
// item rather than a plain child element.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type TagNode struct {
	Tag       tag.Tag
	ItemIndex int // 0 means "this step addresses the element itself, not an item"
}

// TagPath is an ordered sequence of TagNodes naming a location in the tree
// rooted at a DataSet: top-level tag, then optionally (sequence tag, item
// index, nested tag, item index, ...).
type TagPath []TagNode

// String renders a path as e.g. "(0040,A730)[1].(0008,0100)".
func (p TagPath) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		if n.ItemIndex > 0 {
			parts[i] = fmt.Sprintf("%s[%d]", n.Tag, n.ItemIndex)
		} else {
			parts[i] = n.Tag.String()
		}
	}
	return strings.Join(parts, ".")
}

// FlatElement is one entry produced by Flatten: a leaf or sequence element
// paired with the full TagPath locating it in the tree.
type FlatElement struct {
	Path  TagPath
	Tag   tag.Tag
	VR    vr.VR
	Value value.Value
}

// Resolve walks the dataset's element tree along path and returns the
// (tag, VR, value) triple found there. Descending through a sequence
// requires the preceding node's ItemIndex to select which occurrence of
// the item to enter; item indices are 1-based.
func (ds *DataSet) Resolve(path TagPath) (tag.Tag, vr.VR, value.Value, error) {
	if len(path) == 0 {
		return tag.Tag{}, 0, nil, fmt.Errorf("empty tag path")
	}

	elem, err := ds.Get(path[0].Tag)
	if err != nil {
		return tag.Tag{}, 0, nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	t, v, val := elem.Tag(), elem.VR(), elem.Value()

	rest := path[1:]
	for len(rest) > 0 {
		seq, ok := val.(*value.SequenceValue)
		if !ok {
			return tag.Tag{}, 0, nil, fmt.Errorf("resolve %s: %s is not a sequence", path, t)
		}
		idx := path[len(path)-len(rest)-1].ItemIndex
		if idx < 1 || idx > seq.Len() {
			return tag.Tag{}, 0, nil, fmt.Errorf("resolve %s: item index %d out of range (%d items)", path, idx, seq.Len())
		}
		item := seq.Items()[idx-1]

		entry, found := item.Get(rest[0].Tag)
		if !found {
			return tag.Tag{}, 0, nil, fmt.Errorf("resolve %s: tag %s not found in item %d", path, rest[0].Tag, idx)
		}
		t, v, val = entry.Tag, entry.VR, entry.Value
		rest = rest[1:]
	}

	return t, v, val, nil
}

// Flatten produces a pre-order linearization of every element and nested
// sequence entry in the dataset, each paired with the TagPath that locates
// it. Top-level elements are visited in tag order; within a sequence,
// items are visited in occurrence order (1-based) and each item's entries
// in insertion order.
func (ds *DataSet) Flatten() []FlatElement {
	var out []FlatElement
	for _, elem := range ds.Elements() {
		appendFlat(&out, TagPath{{Tag: elem.Tag()}}, elem.Tag(), elem.VR(), elem.Value())
	}
	return out
}

func appendFlat(out *[]FlatElement, path TagPath, t tag.Tag, v vr.VR, val value.Value) {
	pathCopy := make(TagPath, len(path))
	copy(pathCopy, path)
	*out = append(*out, FlatElement{Path: pathCopy, Tag: t, VR: v, Value: val})

	seq, ok := val.(*value.SequenceValue)
	if !ok {
		return
	}
	for i, item := range seq.Items() {
		itemIdx := i + 1
		// Stamp the item index onto the sequence step we just appended for.
		withIdx := make(TagPath, len(path))
		copy(withIdx, path)
		withIdx[len(withIdx)-1].ItemIndex = itemIdx

		for _, entry := range item.Entries {
			childPath := append(append(TagPath{}, withIdx...), TagNode{Tag: entry.Tag})
			appendFlat(out, childPath, entry.Tag, entry.VR, entry.Value)
		}
	}
}
