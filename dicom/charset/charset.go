// Package charset maps DICOM Specific Character Set defined terms to byte
// string decoders.
//
// The Specific Character Set attribute (0008,0005) names the character
// repertoire used by text attributes (PN, LO, SH, ST, LT, UC, UT) in the
// dataset. Nested sequence items may carry their own (0008,0005) which
// overrides the parent's repertoire for that item's lifetime.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_C.12.1.1.2
package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Decoder converts raw element value bytes into a Go (UTF-8) string
// according to one DICOM character repertoire.
type Decoder struct {
	// Term is the DICOM defined term this decoder was resolved from,
	// e.g. "ISO_IR 100". The zero value decodes the default repertoire.
	Term string

	enc encoding.Encoding
}

// Default is the default character repertoire (ISO-IR 6, the DICOM subset
// of US-ASCII). It is used when no Specific Character Set is present and as
// the fallback for unrecognized defined terms.
var Default = Decoder{Term: "ISO_IR 6"}

// decoders maps Specific Character Set defined terms to their encodings.
// Both the ISO_IR form (single-byte, without code extensions) and the
// ISO 2022 IR form are accepted for repertoires that have both spellings.
//
// A nil encoding means the bytes are already valid in the target
// repertoire's Go representation (ASCII and UTF-8 pass through).
var decoders = map[string]encoding.Encoding{
	"":                nil, // default repertoire
	"ISO_IR 6":        nil,
	"ISO 2022 IR 6":   nil,
	"ISO_IR 100":      charmap.ISO8859_1, // Latin alphabet No. 1
	"ISO 2022 IR 100": charmap.ISO8859_1,
	"ISO_IR 101":      charmap.ISO8859_2, // Latin alphabet No. 2
	"ISO 2022 IR 101": charmap.ISO8859_2,
	"ISO_IR 109":      charmap.ISO8859_3, // Latin alphabet No. 3
	"ISO 2022 IR 109": charmap.ISO8859_3,
	"ISO_IR 110":      charmap.ISO8859_4, // Latin alphabet No. 4
	"ISO 2022 IR 110": charmap.ISO8859_4,
	"ISO_IR 144":      charmap.ISO8859_5, // Cyrillic
	"ISO 2022 IR 144": charmap.ISO8859_5,
	"ISO_IR 127":      charmap.ISO8859_6, // Arabic
	"ISO 2022 IR 127": charmap.ISO8859_6,
	"ISO_IR 126":      charmap.ISO8859_7, // Greek
	"ISO 2022 IR 126": charmap.ISO8859_7,
	"ISO_IR 138":      charmap.ISO8859_8, // Hebrew
	"ISO 2022 IR 138": charmap.ISO8859_8,
	"ISO_IR 148":      charmap.ISO8859_9, // Latin alphabet No. 5
	"ISO 2022 IR 148": charmap.ISO8859_9,
	"ISO_IR 166":      charmap.Windows874, // Thai (TIS 620-2533)
	"ISO 2022 IR 166": charmap.Windows874,
	"ISO_IR 13":       japanese.ShiftJIS, // Japanese katakana (JIS X 0201)
	"ISO 2022 IR 13":  japanese.ShiftJIS,
	"ISO 2022 IR 87":  japanese.ISO2022JP, // Japanese kanji (JIS X 0208)
	"ISO 2022 IR 159": japanese.ISO2022JP, // Japanese supplementary kanji
	"ISO 2022 IR 149": korean.EUCKR,          // Korean (KS X 1001)
	"ISO 2022 IR 58":  simplifiedchinese.GBK, // Simplified Chinese (GB 2312)
	"ISO_IR 192":      nil,                   // UTF-8 passes through
	"GB18030":         simplifiedchinese.GB18030,
	"GBK":             simplifiedchinese.GBK,
}

// Lookup resolves a single Specific Character Set defined term. The second
// return value reports whether the term was recognized.
func Lookup(term string) (Decoder, bool) {
	enc, ok := decoders[term]
	if !ok {
		return Default, false
	}
	if term == "" {
		return Default, true
	}
	return Decoder{Term: term, enc: enc}, true
}

// Parse resolves the value of a Specific Character Set element, which may
// be multi-valued when ISO 2022 code extensions are in use. The decoder for
// the first recognized value is returned; multi-valued code extension
// switching within a single string is not modeled, so the primary
// repertoire decides how the bytes are interpreted.
//
// lossy reports that no value was recognized, so the fallback (default
// repertoire) is returned and may misrender non-ASCII bytes. Unrecognized
// terms are not fatal; an unrecognized term followed by a recognized one is
// not reported as lossy.
func Parse(values []string) (dec Decoder, lossy bool) {
	if len(values) == 0 {
		return Default, false
	}
	for _, term := range values {
		if d, ok := Lookup(term); ok {
			return d, false
		}
	}
	return Default, true
}

// Decode converts raw value bytes into a Go string. For the default
// repertoire and UTF-8 the bytes pass through unchanged; otherwise the
// repertoire's decoder transcodes them. Transcoding failures fall back to
// the raw bytes so a malformed name never aborts dataset parsing; the
// second return value reports that the result is lossy.
func (d Decoder) Decode(b []byte) (string, bool) {
	if d.enc == nil {
		return string(b), false
	}
	decoded, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b), true
	}
	return string(decoded), false
}
