// Package dicom provides DICOM file parsing implementation.
package dicom

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dcmkit/radx/dicom/tag"
	"github.com/dcmkit/radx/dicom/value"
	"github.com/dcmkit/radx/dicom/vr"
)

// Parser handles parsing of DICOM files.
//
// The parser reads DICOM files according to DICOM Part 10 File Format:
// 1. 128-byte preamble
// 2. "DICM" prefix (4 bytes)
// 3. File Meta Information (Group 0x0002, always Explicit VR Little Endian)
// 4. Dataset (encoding per Transfer Syntax UID)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7
type Parser struct {
	reader       *Reader
	rawReader    io.Reader // Original io.Reader for decompression wrapping
	ts   *TransferSyntax
	opts ParseOptions

	// pendingTag is a dataset tag whose 4 bytes were consumed while
	// scanning for the end of a File Meta group that lacked its group
	// length element; readDataset resumes from it.
	pendingTag *tag.Tag
}

// ParseOptions limits how much of a DICOM stream is consumed. The zero
// value parses everything.
type ParseOptions struct {
	// FileMetaOnly stops after the File Meta Information group; the
	// returned dataset holds only group 0x0002 elements.
	FileMetaOnly bool

	// StopBeforePixelData ends the dataset just before PixelData
	// (7FE0,0010), leaving the (typically dominant) bulk value unread.
	// Useful for metadata-only scans of large archives.
	StopBeforePixelData bool

	// StopAtTag ends the dataset at the first top-level element whose tag
	// is >= StopAtTag. That element is not included in the result.
	StopAtTag *tag.Tag
}

// ParseFile reads and parses a DICOM file from the filesystem.
//
// This is the main entry point for parsing DICOM files. It handles:
//   - Reading the file preamble and validating the DICM prefix
//   - Parsing File Meta Information to determine transfer syntax
//   - Parsing the main dataset with the appropriate encoding
//
// Returns a DataSet containing all parsed DICOM elements, or an error if parsing fails.
//
// Example:
//
//	ds, err := dicom.ParseFile("image.dcm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Parsed %d elements\n", ds.Len())
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7
func ParseFile(path string) (*DataSet, error) {
	return ParseFileWithOptions(path, ParseOptions{})
}

// ParseFileWithOptions parses a DICOM file honoring the given parse stop
// options.
func ParseFileWithOptions(path string, opts ParseOptions) (*DataSet, error) {
	// Open file
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Parse from reader
	return ParseReaderWithOptions(file, opts)
}

// ParseReader reads and parses a DICOM file from an io.Reader.
//
// This allows parsing DICOM data from any source (files, network, memory, etc.).
// The reader must provide a complete DICOM file starting with the preamble.
//
// Returns a DataSet containing all parsed DICOM elements, or an error if parsing fails.
//
// Example:
//
//	file, _ := os.Open("image.dcm")
//	defer file.Close()
//	ds, err := dicom.ParseReader(file)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7
func ParseReader(r io.Reader) (*DataSet, error) {
	return ParseReaderWithOptions(r, ParseOptions{})
}

// ParseReaderWithOptions reads and parses a DICOM stream honoring the
// given parse stop options.
//
// The first 132 bytes decide the layout: a "DICM" prefix at offset 128
// means a standard Part 10 file (preamble + File Meta + dataset). Anything
// else is treated as a bare dataset starting at offset 0 — the buffered
// header bytes are replayed so no seeking is required — with the transfer
// syntax sniffed from the first element's layout.
func ParseReaderWithOptions(r io.Reader, opts ParseOptions) (*DataSet, error) {
	header := make([]byte, 132)
	n, herr := io.ReadFull(r, header)
	if herr != nil && herr != io.EOF && herr != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read DICOM header: %w", herr)
	}

	if n == len(header) && string(header[128:132]) == "DICM" {
		// Standard DICOM file; the preamble content is recorded nowhere
		// and never validated (non-zero preambles are legal).
		reader := NewReader(r, binary.LittleEndian)
		parser := &Parser{
			reader:    reader,
			rawReader: r,
			opts:      opts,
		}
		return parser.parsePart10()
	}

	// No DICM prefix: bare dataset beginning at offset 0.
	logrus.WithField("header_bytes", n).
		Warn("no DICM prefix found; parsing input as a bare dataset")

	ts := sniffBareTransferSyntax(header[:n])
	combined := io.MultiReader(bytes.NewReader(header[:n]), r)
	parser := &Parser{
		reader:    NewReader(combined, ts.ByteOrder),
		rawReader: combined,
		ts:        ts,
		opts:      opts,
	}
	return parser.readDataset()
}

// parsePart10 parses File Meta Information and the main dataset of a
// standard Part 10 stream positioned just past the "DICM" prefix.
func (p *Parser) parsePart10() (*DataSet, error) {
	// Read File Meta Information (Group 0x0002)
	metaInfo, err := p.readFileMetaInformation()
	if err != nil {
		return nil, fmt.Errorf("failed to read File Meta Information: %w", err)
	}

	if p.opts.FileMetaOnly {
		return metaInfo, nil
	}

	// Detect and configure transfer syntax
	ts, err := p.detectTransferSyntax(metaInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to detect transfer syntax: %w", err)
	}
	p.ts = ts

	// Update reader byte order for main dataset
	p.reader.SetByteOrder(ts.ByteOrder)

	// Handle deflated transfer syntax
	// If the dataset is deflated, wrap the reader in a DEFLATE decompressor.
	// The File Meta Information is never compressed, so we apply decompression
	// only to the main dataset which follows. At this point, rawReader is positioned
	// right at the start of the compressed data.
	//
	// DICOM uses raw DEFLATE (RFC 1951) compression, not zlib format (RFC 1950).
	if ts.Deflated {
		// Create a flate reader that decompresses from the current position
		// flate.NewReader returns io.ReadCloser for raw DEFLATE streams
		flateReader := flate.NewReader(p.rawReader)
		defer flateReader.Close()

		// Create a new Reader wrapping the decompressed stream
		// Keep the same byte order that was configured for the dataset
		decompressedReader := NewReader(flateReader, ts.ByteOrder)
		p.reader = decompressedReader
	}

	// Read main dataset
	mainDS, err := p.readDataset()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	// Merge File Meta and main dataset
	// Add all File Meta elements to the main dataset
	for _, elem := range metaInfo.Elements() {
		mainDS.Add(elem)
	}

	return mainDS, nil
}

// sniffBareTransferSyntax guesses the encoding of a headerless dataset
// from its first element. If bytes 4-5 spell a registered VR code the
// stream is read as Explicit VR Little Endian, otherwise Implicit VR
// Little Endian (the DICOM default). Big-endian bare datasets are not
// distinguishable without a dictionary pass and are read as little-endian.
func sniffBareTransferSyntax(header []byte) *TransferSyntax {
	explicit := false
	if len(header) >= 6 {
		if _, err := vr.Parse(string(header[4:6])); err == nil {
			explicit = true
		}
	}
	return &TransferSyntax{
		ExplicitVR: explicit,
		ByteOrder:  binary.LittleEndian,
	}
}

// readFileMetaInformation reads the File Meta Information (Group 0x0002).
//
// File Meta Information is always encoded as Explicit VR Little Endian,
// regardless of the transfer syntax used for the main dataset.
//
// It contains critical metadata including:
//   - (0002,0000) File Meta Information Group Length
//   - (0002,0010) Transfer Syntax UID (required)
//   - Other metadata like Media Storage SOP Class UID, etc.
//
// Returns a DataSet containing all File Meta Information elements.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
func (p *Parser) readFileMetaInformation() (*DataSet, error) {
	// File Meta is always Explicit VR Little Endian
	fileMetaTS := &TransferSyntax{
		ExplicitVR: true,
		ByteOrder:  binary.LittleEndian,
	}

	// Create element parser for File Meta
	elemParser := NewElementParser(p.reader, fileMetaTS)

	// Create dataset to store File Meta elements
	ds := NewDataSet()

	// Read first element which should be File Meta Information Group Length (0002,0000)
	firstElem, err := elemParser.ReadElement()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected EOF while reading File Meta Information")
		}
		return nil, fmt.Errorf("failed to read first File Meta element: %w", err)
	}

	ds.Add(firstElem)

	// Check if this is the Group Length element
	groupLengthTag := tag.FileMetaInformationGroupLength
	var fileMetaLength uint32
	hasGroupLength := false

	if firstElem.Tag().Equals(groupLengthTag) {
		// Extract group length value (should be UL - uint32)
		// Type assert to IntValue to access Ints() method
		if intVal, ok := firstElem.Value().(*value.IntValue); ok {
			intVals := intVal.Ints()
			if len(intVals) > 0 {
				fileMetaLength = uint32(intVals[0])
				hasGroupLength = true
			}
		}
	}

	// If we have a group length, use it to determine when to stop
	if hasGroupLength && fileMetaLength > 0 {
		// Track bytes read after the group length element
		// We need to read exactly fileMetaLength bytes
		bytesRead := uint32(0)
		startPos := p.reader.Position()

		for bytesRead < fileMetaLength {
			elem, err := elemParser.ReadElement()
			if err != nil {
				if err == io.EOF {
					// Unexpected EOF before reaching group length
					break
				}
				return nil, fmt.Errorf("failed to read File Meta element: %w", err)
			}

			ds.Add(elem)

			// Update bytes read
			currentPos := p.reader.Position()
			bytesRead = uint32(currentPos - startPos)
		}
	} else {
		logrus.WithField("first_tag", firstElem.Tag().String()).
			Warn("File Meta Information Group Length absent; scanning for end of group 0002 by tag")

		// Fallback: read until the first tag outside Group 0x0002. The
		// stop condition fires after the tag bytes but before the VR and
		// value, so the boundary element can be re-read by the dataset
		// parser under the dataset's own transfer syntax.
		elemParser.SetStopCondition(func(t tag.Tag) bool {
			return t.Group != 0x0002
		})
		for {
			elem, err := elemParser.ReadElement()
			if err != nil {
				if err == io.EOF {
					// A meta-only stream; nothing follows the group.
					break
				}
				if errors.Is(err, ErrParseStopped) {
					if t, ok := elemParser.StoppedTag(); ok {
						p.pendingTag = &t
					}
					break
				}
				return nil, fmt.Errorf("failed to read File Meta element: %w", err)
			}

			// Add element to dataset
			ds.Add(elem)
		}
	}

	return ds, nil
}

// detectTransferSyntax extracts the Transfer Syntax UID from File Meta Information
// and returns the corresponding TransferSyntax configuration.
//
// The Transfer Syntax UID (0002,0010) is required in File Meta Information and
// determines how the main dataset is encoded.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
func (p *Parser) detectTransferSyntax(metaInfo *DataSet) (*TransferSyntax, error) {
	// Get Transfer Syntax UID element (0002,0010)
	tsTag := tag.TransferSyntaxUID
	elem, err := metaInfo.Get(tsTag)
	if err != nil {
		return nil, fmt.Errorf("%w: Transfer Syntax UID not found in File Meta Information", ErrMissingTransferSyntax)
	}

	// Extract UID string
	tsUID := elem.Value().String()
	if tsUID == "" {
		return nil, fmt.Errorf("%w: Transfer Syntax UID is empty", ErrMissingTransferSyntax)
	}

	// Map UID to TransferSyntax properties
	// For now, support the most common transfer syntaxes
	switch tsUID {
	case "1.2.840.10008.1.2":
		// Implicit VR Little Endian
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: false,
			ByteOrder:  binary.LittleEndian,
			Compressed: false,
			Deflated:   false,
		}, nil

	case "1.2.840.10008.1.2.1":
		// Explicit VR Little Endian (default)
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: true,
			ByteOrder:  binary.LittleEndian,
			Compressed: false,
			Deflated:   false,
		}, nil

	case "1.2.840.10008.1.2.2":
		// Explicit VR Big Endian (RETIRED)
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: true,
			ByteOrder:  binary.BigEndian,
			Compressed: false,
			Deflated:   false,
		}, nil

	case "1.2.840.10008.1.2.1.99":
		// Deflated Explicit VR Little Endian
		return &TransferSyntax{
			UID:        tsUID,
			ExplicitVR: true,
			ByteOrder:  binary.LittleEndian,
			Compressed: false,
			Deflated:   true,
		}, nil

	// Encapsulated/compressed transfer syntaxes are rejected outright: this
	// parser decodes pixel data geometry and LUTs, not JPEG/JPEG 2000/RLE
	// bitstreams. Rejecting here, before the dataset is read, means callers
	// get one clear, early error instead of a partially-parsed dataset with
	// an opaque PixelData blob.
	case "1.2.840.10008.1.2.5":
		return nil, fmt.Errorf("%w: RLE Lossless (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.50":
		return nil, fmt.Errorf("%w: JPEG Baseline Process 1 (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.51":
		return nil, fmt.Errorf("%w: JPEG Extended Processes 2 & 4 (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.57":
		return nil, fmt.Errorf("%w: JPEG Lossless, Non-Hierarchical, Process 14 (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.70":
		return nil, fmt.Errorf("%w: JPEG Lossless, Non-Hierarchical, First-Order Prediction (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.90":
		return nil, fmt.Errorf("%w: JPEG 2000 Image Compression, Lossless Only (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.91":
		return nil, fmt.Errorf("%w: JPEG 2000 Image Compression (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.201":
		return nil, fmt.Errorf("%w: High-Throughput JPEG 2000 (HTJ2K), Lossless Only (%s)", ErrUnsupportedTransferSyntax, tsUID)

	case "1.2.840.10008.1.2.4.203":
		return nil, fmt.Errorf("%w: High-Throughput JPEG 2000 (HTJ2K) (%s)", ErrUnsupportedTransferSyntax, tsUID)

	default:
		// Unknown transfer syntax - return error
		return nil, fmt.Errorf("%w: Transfer Syntax UID %q not supported", ErrInvalidTransferSyntax, tsUID)
	}
}

// readDataset reads the main dataset elements using the detected transfer syntax.
//
// The main dataset follows the File Meta Information and uses the encoding
// specified by the Transfer Syntax UID.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
func (p *Parser) readDataset() (*DataSet, error) {
	// Create element parser with detected transfer syntax
	elemParser := NewElementParser(p.reader, p.ts)

	if p.opts.StopBeforePixelData || p.opts.StopAtTag != nil {
		elemParser.SetStopCondition(func(t tag.Tag) bool {
			if p.opts.StopBeforePixelData && t.Equals(tag.PixelData) {
				return true
			}
			return p.opts.StopAtTag != nil && t.Compare(*p.opts.StopAtTag) >= 0
		})
	}

	// Create dataset to store elements
	ds := NewDataSet()

	// Resume from a tag consumed during the File Meta group scan, reading
	// its body under the dataset transfer syntax.
	if p.pendingTag != nil {
		elem, err := elemParser.ReadElementAt(*p.pendingTag)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset element %s: %w", *p.pendingTag, err)
		}
		p.pendingTag = nil
		ds.Add(elem)
	}

	// Read elements until EOF
	for {
		elem, err := elemParser.ReadElement()
		if err != nil {
			if err == io.EOF || errors.Is(err, ErrParseStopped) {
				// Normal end of file, or a configured stop condition
				break
			}
			// Check if this is an EOF wrapped in other errors (e.g., from sequence parsing)
			// In that case, treat it as end of dataset rather than failure
			if errors.Is(err, io.EOF) {
				// EOF encountered during parsing (e.g., in sequence skipping)
				// This might indicate a truncated file, but we can return what we've parsed so far
				break
			}
			return nil, fmt.Errorf("failed to read dataset element: %w", err)
		}

		// Command-group elements only occur in DIMSE command streams; in a
		// file dataset they indicate corruption or a misframed stream.
		if elem.Tag().Group == 0x0000 {
			return nil, fmt.Errorf("%w: %s in dataset", ErrInvalidCommandTag, elem.Tag())
		}

		// Add element to dataset
		ds.Add(elem)
	}

	return ds, nil
}

// TransferSyntax describes the encoding of a DICOM dataset.
// TODO: Move to transfer_syntax.go once implemented
type TransferSyntax struct {
	UID        string           // Transfer Syntax UID
	ExplicitVR bool             // true = Explicit VR, false = Implicit VR
	ByteOrder  binary.ByteOrder // Little or Big Endian
	Compressed bool             // true if pixel data is compressed
	Deflated   bool             // true for deflated transfer syntax
}
