package value

import (
	"fmt"
	"strings"

	"github.com/dcmkit/radx/dicom/tag"
	"github.com/dcmkit/radx/dicom/vr"
)

// Entry is a single data element nested inside a sequence Item.
//
// Entry intentionally mirrors element.Element's (Tag, VR, Value) shape rather
// than importing the element package, since element already imports value
// and Go forbids the reverse import.
type Entry struct {
	Tag   tag.Tag
	VR    vr.VR
	Value Value
}

// Item represents one occurrence of a sequence (one (FFFE,E000) Item) as an
// ordered list of nested entries.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type Item struct {
	Entries []Entry
}

// Get returns the entry for the given tag within this item, in insertion order.
// If the tag appears more than once (malformed input), the last occurrence wins,
// matching the replace-on-duplicate rule used elsewhere in the package.
func (it *Item) Get(t tag.Tag) (Entry, bool) {
	var found Entry
	ok := false
	for _, e := range it.Entries {
		if e.Tag.Equals(t) {
			found = e
			ok = true
		}
	}
	return found, ok
}

// SequenceValue represents the value of an SQ (Sequence of Items) element.
//
// Unlike the other Value implementations, SequenceValue does not carry a flat
// byte encoding: its content is a nested tree of Items, each holding its own
// Entries (which may themselves be sequences). Re-encoding a dataset that
// contains sequences is the responsibility of a sequence-aware writer.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type SequenceValue struct {
	items []*Item
}

// NewSequenceValue creates a SequenceValue from already-parsed items.
// A nil slice is treated as zero items (a present but empty sequence).
func NewSequenceValue(items []*Item) *SequenceValue {
	if items == nil {
		items = []*Item{}
	}
	return &SequenceValue{items: items}
}

// VR returns vr.SequenceOfItems.
func (s *SequenceValue) VR() vr.VR {
	return vr.SequenceOfItems
}

// Items returns the sequence's items in encounter order.
func (s *SequenceValue) Items() []*Item {
	return s.items
}

// Len returns the number of items in the sequence.
func (s *SequenceValue) Len() int {
	return len(s.items)
}

// Bytes is not implemented for sequences; callers that need wire encoding of
// a sequence must walk Items()/Entries() and re-encode each nested element
// themselves. Returns nil.
func (s *SequenceValue) Bytes() []byte {
	return nil
}

// String returns a short human-readable summary, e.g. "Sequence with 3 item(s)".
func (s *SequenceValue) String() string {
	return fmt.Sprintf("Sequence with %d item(s)", len(s.items))
}

// Equals returns true if both sequences have the same number of items whose
// entries are pairwise equal (by tag, VR, and nested value equality).
func (s *SequenceValue) Equals(other Value) bool {
	otherSeq, ok := other.(*SequenceValue)
	if !ok {
		return false
	}
	if len(s.items) != len(otherSeq.items) {
		return false
	}
	for i, item := range s.items {
		otherItem := otherSeq.items[i]
		if len(item.Entries) != len(otherItem.Entries) {
			return false
		}
		for j, entry := range item.Entries {
			otherEntry := otherItem.Entries[j]
			if !entry.Tag.Equals(otherEntry.Tag) || entry.VR != otherEntry.VR {
				return false
			}
			if !entry.Value.Equals(otherEntry.Value) {
				return false
			}
		}
	}
	return true
}

// Verify SequenceValue implements Value interface at compile time
var _ Value = (*SequenceValue)(nil)

// describeEntries renders entries for debugging/logging, indenting nested
// sequences by depth. Used by higher-level packages that print dataset trees.
func describeEntries(entries []Entry, depth int) string {
	indent := strings.Repeat("  ", depth)
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(indent)
		sb.WriteString(e.Tag.String())
		sb.WriteString(" ")
		sb.WriteString(e.VR.String())
		if seq, ok := e.Value.(*SequenceValue); ok {
			sb.WriteString(fmt.Sprintf(" [%d item(s)]\n", seq.Len()))
			for i, item := range seq.Items() {
				sb.WriteString(fmt.Sprintf("%s  Item %d:\n", indent, i+1))
				sb.WriteString(describeEntries(item.Entries, depth+2))
			}
		} else {
			sb.WriteString(" = ")
			sb.WriteString(e.Value.String())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Describe renders the sequence and all nested items as an indented tree,
// useful for dump-style CLI output.
func (s *SequenceValue) Describe() string {
	var sb strings.Builder
	for i, item := range s.items {
		sb.WriteString(fmt.Sprintf("Item %d:\n", i+1))
		sb.WriteString(describeEntries(item.Entries, 1))
	}
	return sb.String()
}
