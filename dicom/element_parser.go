// Package dicom provides DICOM file parsing and manipulation.
package dicom

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/bits"
	"strings"

	"github.com/dcmkit/radx/dicom/charset"
	"github.com/dcmkit/radx/dicom/element"
	"github.com/dcmkit/radx/dicom/tag"
	"github.com/dcmkit/radx/dicom/value"
	"github.com/dcmkit/radx/dicom/vr"
)

// ElementParser reads individual DICOM data elements from a binary stream.
//
// It handles both Explicit VR and Implicit VR encoding based on the Transfer Syntax.
// Element structure varies by VR:
//   - Explicit VR (most VRs): Tag(4) + VR(2) + Length(2) + Value(n)
//   - Explicit VR (OB/OW/SQ/etc): Tag(4) + VR(2) + Reserved(2) + Length(4) + Value(n)
//   - Implicit VR: Tag(4) + Length(4) + Value(n), VR looked up in dictionary
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
type ElementParser struct {
	reader *Reader
	ts     *TransferSyntax

	// cs is the active character repertoire. It starts as the default
	// repertoire, is replaced when a Specific Character Set (0008,0005)
	// element is read, and is saved/restored around sequence items so an
	// item-local (0008,0005) only affects that item's entries.
	cs      charset.Decoder
	csLossy bool

	// stop, when set, is consulted with each top-level tag before its VR
	// and value are read. Returning true terminates the stream with
	// ErrParseStopped without consuming the element's remaining bytes.
	stop       func(tag.Tag) bool
	stoppedTag *tag.Tag
}

// NewElementParser creates a new element parser with the specified reader and transfer syntax.
func NewElementParser(reader *Reader, ts *TransferSyntax) *ElementParser {
	return &ElementParser{
		reader: reader,
		ts:     ts,
		cs:     charset.Default,
	}
}

// CharacterSet returns the character repertoire currently in effect.
func (p *ElementParser) CharacterSet() charset.Decoder {
	return p.cs
}

// SetStopCondition registers a predicate evaluated against each top-level
// tag as soon as it has been read. When it returns true, ReadElement
// returns ErrParseStopped; the stream is abandoned mid-element, so the
// parser must not be pulled again afterwards.
func (p *ElementParser) SetStopCondition(fn func(tag.Tag) bool) {
	p.stop = fn
}

// ReadElement reads the next data element from the stream.
//
// For SQ elements this recursively parses every Item and its nested entries,
// building a *value.SequenceValue rather than skipping the sequence's bytes.
// Nesting depth follows the dataset's own sequence nesting, which in
// practice is always shallow.
//
// Returns an error if the element cannot be parsed or if the stream ends unexpectedly.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
func (p *ElementParser) ReadElement() (*element.Element, error) {
	t, err := p.readTag()
	if err != nil {
		return nil, fmt.Errorf("failed to read tag: %w", err)
	}

	if p.stop != nil && p.stop(t) {
		p.stoppedTag = &t
		return nil, ErrParseStopped
	}

	return p.readEntryBody(t)
}

// StoppedTag returns the tag that triggered the stop condition, if any.
// Its 4 bytes have already been consumed from the stream; a caller that
// wants to resume parsing under different rules (e.g. the transition out
// of the File Meta group) passes it back via ReadElementAt.
func (p *ElementParser) StoppedTag() (tag.Tag, bool) {
	if p.stoppedTag == nil {
		return tag.Tag{}, false
	}
	return *p.stoppedTag, true
}

// ReadElementAt reads the VR, length and value for a tag whose 4 bytes
// were already consumed from the stream.
func (p *ElementParser) ReadElementAt(t tag.Tag) (*element.Element, error) {
	return p.readEntryBody(t)
}

// readEntryBody reads the VR, length and value for a tag that has already
// been read from the stream, and wraps the result in an *element.Element.
// Shared by ReadElement (top level / dataset) and readItemEntries (elements
// nested inside a sequence item), so sequences and nested sequences use
// exactly the same VR/length/value dispatch as flat elements.
func (p *ElementParser) readEntryBody(t tag.Tag) (*element.Element, error) {
	v, length, err := p.readVRAndLength(t)
	if err != nil {
		return nil, err
	}

	val, err := p.readValueDispatch(t, v, length)
	if err != nil {
		return nil, fmt.Errorf("failed to read value for tag %s: %w", t, err)
	}

	elem, err := element.NewElement(t, v, val)
	if err != nil {
		return nil, fmt.Errorf("failed to create element for tag %s: %w", t, err)
	}

	// A Specific Character Set element switches the repertoire for all
	// subsequent text elements at this nesting level. Unrecognized defined
	// terms fall back to the default repertoire; readStringValue marks the
	// affected values as lossy rather than failing the parse.
	if t.Equals(tag.SpecificCharacterSet) {
		if sv, ok := val.(*value.StringValue); ok {
			p.cs, p.csLossy = charset.Parse(sv.Strings())
		}
	}

	return elem, nil
}

// readVRAndLength reads the VR (explicit or looked up for implicit) and the
// value length field for a tag already read from the stream.
func (p *ElementParser) readVRAndLength(t tag.Tag) (vr.VR, uint32, error) {
	var v vr.VR
	var length uint32
	var err error

	if p.ts.ExplicitVR {
		v, err = p.readVRExplicit()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read VR for tag %s: %w", t, err)
		}

		length, err = p.readLength(v)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read length for tag %s: %w", t, err)
		}
	} else {
		v, err = p.readVRImplicit(t)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to look up VR for tag %s: %w", t, err)
		}

		length, err = p.reader.ReadUint32()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read length for tag %s: %w", t, err)
		}
	}

	return v, length, nil
}

// readTag reads a DICOM tag (group and element).
func (p *ElementParser) readTag() (tag.Tag, error) {
	// Read group (2 bytes)
	group, err := p.reader.ReadUint16()
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to read tag group: %w", err)
	}

	// Read element (2 bytes)
	elem, err := p.reader.ReadUint16()
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to read tag element: %w", err)
	}

	// Item and delimitation tags are always little-endian on the wire
	// regardless of the transfer syntax, so under Explicit VR Big Endian
	// their group reads byte-swapped as 0xFEFF. Normalize them back.
	if group == 0xFEFF && p.ts.ByteOrder == binary.BigEndian {
		group = 0xFFFE
		elem = bits.ReverseBytes16(elem)
	}

	return tag.New(group, elem), nil
}

// readVRExplicit reads a 2-byte VR in Explicit VR encoding.
func (p *ElementParser) readVRExplicit() (vr.VR, error) {
	// Read 2-byte VR string
	vrStr, err := p.reader.ReadString(2)
	if err != nil {
		return 0, fmt.Errorf("failed to read VR: %w", err)
	}

	// Parse VR string
	v, err := vr.Parse(vrStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVR, vrStr)
	}

	return v, nil
}

// readVRImplicit looks up the VR for a tag from the DICOM data dictionary.
// This is used for Implicit VR transfer syntaxes where VR is not encoded in the file.
//
// For tags with multiple possible VRs (e.g., PixelData can be "OB or OW"),
// this returns the first VR in the list as the default.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (p *ElementParser) readVRImplicit(t tag.Tag) (vr.VR, error) {
	// Look up tag in dictionary
	info, err := tag.Find(t)
	if err != nil {
		// Tag not in dictionary - use UN (Unknown) as fallback
		return vr.Unknown, nil
	}

	// Return first VR (for tags with multiple VRs like "OB or OW", use the first one)
	if len(info.VRs) == 0 {
		return vr.Unknown, nil
	}

	return info.VRs[0], nil
}

// readLength reads the value length field.
//
// Length encoding depends on VR:
//   - Most VRs: 2-byte uint16
//   - OB, OD, OF, OL, OV, OW, SQ, UC, UN, UR, UT: 2-byte reserved (0x0000) + 4-byte uint32
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (p *ElementParser) readLength(v vr.VR) (uint32, error) {
	// Check if this VR uses 32-bit length field
	if v.UsesExplicitLength32() {
		// Read 2-byte reserved field (must be 0x0000)
		reserved, err := p.reader.ReadUint16()
		if err != nil {
			return 0, fmt.Errorf("failed to read reserved field: %w", err)
		}
		if reserved != 0x0000 {
			// Not strictly an error per standard, but log for debugging
			// Standard says it "should" be 0x0000 but implementations may vary
		}

		// Read 4-byte length
		length, err := p.reader.ReadUint32()
		if err != nil {
			return 0, fmt.Errorf("failed to read 32-bit length: %w", err)
		}

		return length, nil
	}

	// Read 2-byte length for standard VRs
	length16, err := p.reader.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("failed to read 16-bit length: %w", err)
	}

	return uint32(length16), nil
}

// readValueDispatch reads and parses the value field based on VR type.
//
// SQ elements and encapsulated (undefined-length) PixelData are parsed in
// full rather than skipped: SQ produces a *value.SequenceValue holding every
// nested Item and its Entries, recursively.
func (p *ElementParser) readValueDispatch(t tag.Tag, v vr.VR, length uint32) (value.Value, error) {
	// Handle empty values
	if length == 0 {
		if v == vr.SequenceOfItems {
			return value.NewSequenceValue(nil), nil
		}
		return p.createEmptyValue(v)
	}

	// Handle undefined length (0xFFFFFFFF)
	if length == 0xFFFFFFFF {
		// Sequences with undefined length are terminated by a Sequence
		// Delimitation Item (FFFE,E0DD).
		if v == vr.SequenceOfItems {
			return p.readSequenceUndefinedLength(t)
		}

		// Encapsulated pixel data (OB/OW with undefined length) is used for
		// compressed transfer syntaxes (JPEG, JPEG 2000, RLE, etc.) and uses
		// Basic Offset Table + fragment Items, terminated by a Sequence
		// Delimitation Item. In normal operation this branch is unreachable
		// because detectTransferSyntax rejects those transfer syntaxes
		// before the dataset is parsed; it remains reachable when an
		// ElementParser is driven directly against raw encapsulated bytes.
		//
		// DICOM Standard Reference:
		// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
		if (v == vr.OtherByte || v == vr.OtherWord) && t.Equals(tag.PixelData) {
			return p.readEncapsulatedPixelData(t, v)
		}

		return nil, fmt.Errorf("%w: undefined length for non-sequence VR %s", ErrUndefinedLength, v.String())
	}

	// Dispatch to VR-specific reader
	// Check sequences first, then float types before numeric types (floats are also numeric)
	switch {
	case v == vr.SequenceOfItems:
		return p.readSequenceDefinedLength(t, length)
	case v.IsStringType():
		return p.readStringValue(v, length)
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return p.readFloatValue(v, length)
	case v.IsNumericType() || v == vr.AttributeTag:
		return p.readIntValue(v, length)
	case v.IsBinaryType():
		return p.readBytesValue(v, length)
	default:
		// Unknown VR, read as bytes
		return p.readBytesValue(vr.Unknown, length)
	}
}

// createEmptyValue creates an empty value for the given VR.
func (p *ElementParser) createEmptyValue(v vr.VR) (value.Value, error) {
	switch {
	case v == vr.SequenceOfItems:
		return value.NewBytesValue(vr.SequenceOfItems, []byte{})
	case v.IsStringType():
		return value.NewStringValue(v, []string{})
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return value.NewFloatValue(v, []float64{})
	case v.IsNumericType() || v == vr.AttributeTag:
		return value.NewIntValue(v, []int64{})
	case v.IsBinaryType():
		return value.NewBytesValue(v, []byte{})
	default:
		return value.NewBytesValue(vr.Unknown, []byte{})
	}
}

// readStringValue reads a string-based VR value.
//
// DICOM strings may contain multiple values separated by backslash (\).
// String values are space-padded for even length and may have trailing nulls for UI.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementParser) readStringValue(v vr.VR, length uint32) (*value.StringValue, error) {
	// Read raw bytes
	data, err := p.reader.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read string data: %w", err)
	}

	// Text VRs are interpreted under the active Specific Character Set;
	// the remaining string VRs (UI, CS, DA, ...) are default-repertoire
	// only and pass through untouched.
	str := string(data)
	lossy := false
	if v.UsesCharacterRepertoire() {
		var decodeLossy bool
		str, decodeLossy = p.cs.Decode(data)
		lossy = p.csLossy || decodeLossy
	}

	// Trim trailing null and space padding
	str = strings.TrimRight(str, "\x00 ")

	// Split by backslash for multi-valued elements
	var values []string
	if str == "" {
		values = []string{}
	} else {
		values = strings.Split(str, "\\")
	}

	// Create string value
	val, err := value.NewStringValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create string value: %w", err)
	}
	if lossy {
		val.MarkCharsetLossy()
	}

	return val, nil
}

// readIntValue reads an integer VR value.
//
// Handles: SS (int16), US (uint16), SL (int32), UL (uint32), SV (int64), UV (uint64), AT (tag)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementParser) readIntValue(v vr.VR, length uint32) (*value.IntValue, error) {
	var values []int64

	// Determine bytes per value
	var bytesPerValue int
	switch v {
	case vr.SignedShort, vr.UnsignedShort:
		bytesPerValue = 2
	case vr.SignedLong, vr.UnsignedLong, vr.AttributeTag:
		bytesPerValue = 4
	case vr.SignedVeryLong, vr.UnsignedVeryLong:
		bytesPerValue = 8
	default:
		return nil, fmt.Errorf("unsupported integer VR: %s", v.String())
	}

	// Calculate number of values
	numValues := int(length) / bytesPerValue
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("invalid length %d for VR %s (not multiple of %d)", length, v.String(), bytesPerValue)
	}

	// Read each value
	for i := 0; i < numValues; i++ {
		var val int64

		switch v {
		case vr.SignedShort:
			u16, err := p.reader.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(int16(u16))

		case vr.UnsignedShort:
			u16, err := p.reader.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(u16)

		case vr.SignedLong:
			u32, err := p.reader.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(int32(u32))

		case vr.UnsignedLong:
			u32, err := p.reader.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(u32)

		case vr.AttributeTag:
			u32, err := p.reader.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(u32)

		case vr.SignedVeryLong:
			data, err := p.reader.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			val = int64(p.ts.ByteOrder.Uint64(data))

		case vr.UnsignedVeryLong:
			data, err := p.reader.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			val = int64(p.ts.ByteOrder.Uint64(data))
		}

		values = append(values, val)
	}

	// Create int value
	intVal, err := value.NewIntValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create int value: %w", err)
	}

	return intVal, nil
}

// readFloatValue reads a floating-point VR value.
//
// Handles: FL (float32), FD (float64)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementParser) readFloatValue(v vr.VR, length uint32) (*value.FloatValue, error) {
	var values []float64

	// Determine bytes per value
	var bytesPerValue int
	switch v {
	case vr.FloatingPointSingle:
		bytesPerValue = 4
	case vr.FloatingPointDouble:
		bytesPerValue = 8
	default:
		return nil, fmt.Errorf("unsupported float VR: %s", v.String())
	}

	// Calculate number of values
	numValues := int(length) / bytesPerValue
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("invalid length %d for VR %s (not multiple of %d)", length, v.String(), bytesPerValue)
	}

	// Read each value
	for i := 0; i < numValues; i++ {
		if v == vr.FloatingPointSingle {
			// Read float32
			data, err := p.reader.ReadBytes(4)
			if err != nil {
				return nil, err
			}
			bits := p.ts.ByteOrder.Uint32(data)
			f32 := math.Float32frombits(bits)
			values = append(values, float64(f32))
		} else {
			// Read float64
			data, err := p.reader.ReadBytes(8)
			if err != nil {
				return nil, err
			}
			bits := p.ts.ByteOrder.Uint64(data)
			f64 := math.Float64frombits(bits)
			values = append(values, f64)
		}
	}

	// Create float value
	floatVal, err := value.NewFloatValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("failed to create float value: %w", err)
	}

	return floatVal, nil
}

// readBytesValue reads a binary VR value.
//
// Handles: OB, OD, OF, OL, OV, OW, UN
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (p *ElementParser) readBytesValue(v vr.VR, length uint32) (*value.BytesValue, error) {
	// Read raw bytes
	data, err := p.reader.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("failed to read binary data: %w", err)
	}

	// Create bytes value
	bytesVal, err := value.NewBytesValue(v, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create bytes value: %w", err)
	}

	return bytesVal, nil
}

// readSequenceDefinedLength parses a sequence whose length is known in
// advance: it reads Items until exactly `length` bytes have been consumed.
// Defined-length sequences and defined-length items never carry their own
// delimiter; the byte count alone marks their end.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementParser) readSequenceDefinedLength(sequenceTag tag.Tag, length uint32) (value.Value, error) {
	endPos := p.reader.Position() + int64(length)

	var items []*value.Item
	for p.reader.Position() < endPos {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF reading sequence %s: %w", sequenceTag, err)
		}
		if !t.Equals(tag.Item) {
			return nil, fmt.Errorf("%w: expected Item inside sequence %s, got %s", ErrUnexpectedTag, sequenceTag, t)
		}

		itemLength, err := p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read item length in sequence %s: %w", sequenceTag, err)
		}

		item, err := p.readItemContent(itemLength)
		if err != nil {
			return nil, fmt.Errorf("failed to read item in sequence %s: %w", sequenceTag, err)
		}
		items = append(items, item)
	}

	return value.NewSequenceValue(items), nil
}

// readSequenceUndefinedLength parses a sequence terminated by a Sequence
// Delimitation Item (FFFE,E0DD), reading one Item at a time.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
func (p *ElementParser) readSequenceUndefinedLength(sequenceTag tag.Tag) (value.Value, error) {
	var items []*value.Item

	for {
		t, err := p.readTag()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: sequence %s missing its delimitation item", ErrUnexpectedEOF, sequenceTag)
			}
			return nil, fmt.Errorf("unexpected error reading sequence %s: %w", sequenceTag, err)
		}

		if t.Equals(tag.SequenceDelimitationItem) {
			if _, err := p.reader.ReadUint32(); err != nil {
				return nil, fmt.Errorf("failed to read sequence delimitation length: %w", err)
			}
			return value.NewSequenceValue(items), nil
		}

		if !t.Equals(tag.Item) {
			return nil, fmt.Errorf("%w: expected Item or SequenceDelimitationItem in sequence %s, got %s", ErrUnexpectedTag, sequenceTag, t)
		}

		itemLength, err := p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read item length in sequence %s: %w", sequenceTag, err)
		}

		item, err := p.readItemContent(itemLength)
		if err != nil {
			return nil, fmt.Errorf("failed to read item in sequence %s: %w", sequenceTag, err)
		}
		items = append(items, item)
	}
}

// readItemContent reads one Item's nested entries, given the item length
// already read from its header (may be 0xFFFFFFFF for undefined length,
// terminated by an Item Delimitation Item).
func (p *ElementParser) readItemContent(itemLength uint32) (*value.Item, error) {
	var entries []value.Entry

	// An item may carry its own Specific Character Set, which overrides
	// the parent's repertoire only for that item's lifetime.
	parentCS, parentLossy := p.cs, p.csLossy
	defer func() {
		p.cs, p.csLossy = parentCS, parentLossy
	}()

	if itemLength == 0xFFFFFFFF {
		for {
			t, err := p.readTag()
			if err != nil {
				if err == io.EOF {
					return nil, fmt.Errorf("%w: item missing its delimitation item", ErrUnexpectedEOF)
				}
				return nil, err
			}

			if t.Equals(tag.ItemDelimitationItem) {
				if _, err := p.reader.ReadUint32(); err != nil {
					return nil, fmt.Errorf("failed to read item delimitation length: %w", err)
				}
				return &value.Item{Entries: entries}, nil
			}

			elem, err := p.readEntryBody(t)
			if err != nil {
				return nil, err
			}
			entries = append(entries, value.Entry{Tag: elem.Tag(), VR: elem.VR(), Value: elem.Value()})
		}
	}

	endPos := p.reader.Position() + int64(itemLength)
	for p.reader.Position() < endPos {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF reading item content: %w", err)
		}

		elem, err := p.readEntryBody(t)
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.Entry{Tag: elem.Tag(), VR: elem.VR(), Value: elem.Value()})
	}

	return &value.Item{Entries: entries}, nil
}

// readEncapsulatedPixelData reads encapsulated pixel data with undefined length.
//
// Encapsulated pixel data is used for compressed transfer syntaxes (JPEG, JPEG 2000, RLE, etc.)
// and uses a structure similar to sequences:
//   - Basic Offset Table: Item (FFFE,E000) + length + data (may be empty)
//   - Pixel Data Fragments: One or more Item (FFFE,E000) + length + compressed data
//   - Sequence Delimitation Item (FFFE,E0DD) with length 0
//
// The fragments (including the Basic Offset Table item) are retained verbatim
// as item-framed bytes; pixel.ParseEncapsulatedPixelData splits them back
// into individual fragments before decompression.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func (p *ElementParser) readEncapsulatedPixelData(pixelDataTag tag.Tag, pixelVR vr.VR) (value.Value, error) {
	var encapsulatedData []byte

	for {
		t, err := p.readTag()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF while reading encapsulated pixel data %s: %w", pixelDataTag, err)
		}

		if t.Equals(tag.SequenceDelimitationItem) {
			if _, err := p.reader.ReadUint32(); err != nil {
				return nil, fmt.Errorf("failed to read sequence delimitation length: %w", err)
			}

			encapsulatedData = append(encapsulatedData, 0xFE, 0xFF, 0xDD, 0xE0)
			encapsulatedData = append(encapsulatedData, 0x00, 0x00, 0x00, 0x00) // length = 0

			return value.NewBytesValue(pixelVR, encapsulatedData)
		}

		if !t.Equals(tag.Item) {
			return nil, fmt.Errorf("unexpected tag %s while reading encapsulated pixel data (expected Item or Sequence Delimitation)", t)
		}

		itemLength, err := p.reader.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("failed to read item length: %w", err)
		}

		encapsulatedData = append(encapsulatedData, 0xFE, 0xFF, 0x00, 0xE0)
		encapsulatedData = append(encapsulatedData,
			byte(itemLength&0xFF),
			byte((itemLength>>8)&0xFF),
			byte((itemLength>>16)&0xFF),
			byte((itemLength>>24)&0xFF))

		if itemLength > 0 {
			itemData, err := p.reader.ReadBytes(int(itemLength))
			if err != nil {
				return nil, fmt.Errorf("failed to read item data (%d bytes): %w", itemLength, err)
			}
			encapsulatedData = append(encapsulatedData, itemData...)
		}
	}
}
