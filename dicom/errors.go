// Package dicom provides DICOM file parsing and manipulation.
package dicom

import "errors"

// ErrInvalidVR indicates an invalid or unknown VR was encountered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var ErrInvalidVR = errors.New("invalid or unknown VR")

// ErrInvalidTag indicates a malformed tag was encountered.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1
var ErrInvalidTag = errors.New("invalid or malformed tag")

// ErrInvalidTransferSyntax indicates an unsupported or invalid transfer syntax.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
var ErrInvalidTransferSyntax = errors.New("invalid or unsupported transfer syntax")

// ErrMissingTransferSyntax indicates the Transfer Syntax UID was not found in File Meta Information.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
var ErrMissingTransferSyntax = errors.New("missing Transfer Syntax UID in File Meta Information")

// ErrInvalidLength indicates an invalid value length was encountered.
var ErrInvalidLength = errors.New("invalid value length")

// ErrUndefinedLength indicates an undefined length (0xFFFFFFFF) was encountered.
// This is valid for sequences but requires special handling.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
var ErrUndefinedLength = errors.New("undefined length encountered")

// ErrUnsupportedTransferSyntax indicates that the Transfer Syntax UID names an
// encapsulated/compressed pixel encoding (JPEG, JPEG 2000, HTJ2K, RLE, ...)
// that this parser does not decode. Files encoded with these transfer
// syntaxes are rejected at File Meta Information parsing time rather than
// failing partway through the dataset.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#chapter_10
var ErrUnsupportedTransferSyntax = errors.New("unsupported (encapsulated/compressed) transfer syntax")

// ErrUnexpectedTag indicates a tag appeared where the sequence/item framing
// rules did not permit it (e.g. a non-Item tag directly inside a sequence).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
var ErrUnexpectedTag = errors.New("unexpected tag for current parse context")

// ErrUnexpectedEOF indicates the stream ended while a sequence, item, or
// element value was still open. Per the streaming parser's contract, this
// error is permanent: once returned, the parser must not be pulled again.
var ErrUnexpectedEOF = errors.New("unexpected end of stream inside open element")

// ErrParseStopped indicates element reading ended because a configured
// stop condition matched the next tag, not because of stream damage. The
// elements read so far are valid; the parser must not be pulled again
// because the matched element's value bytes were never consumed.
var ErrParseStopped = errors.New("element stream stopped by parse stop condition")

// ErrInvalidCommandTag indicates a DIMSE command-group (0000,eeee) tag was
// encountered in a context where only a dataset (not a command set) is
// expected, or vice versa.
var ErrInvalidCommandTag = errors.New("command tag is not valid in this context")
