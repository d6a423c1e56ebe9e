package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownTerms(t *testing.T) {
	tests := []struct {
		term string
	}{
		{"ISO_IR 6"},
		{"ISO_IR 100"},
		{"ISO_IR 144"},
		{"ISO_IR 192"},
		{"ISO 2022 IR 87"},
		{"ISO 2022 IR 149"},
		{"GB18030"},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			_, ok := Lookup(tt.term)
			assert.True(t, ok, "term %q should be recognized", tt.term)
		})
	}
}

func TestLookupUnknownTermFallsBack(t *testing.T) {
	dec, ok := Lookup("ISO_IR 9999")
	assert.False(t, ok)
	assert.Equal(t, Default.Term, dec.Term)
}

func TestParseEmptyValueIsDefault(t *testing.T) {
	dec, lossy := Parse(nil)
	assert.False(t, lossy)
	assert.Equal(t, Default.Term, dec.Term)

	dec, lossy = Parse([]string{""})
	assert.False(t, lossy)
	assert.Equal(t, Default.Term, dec.Term)
}

func TestParseUnknownTermIsLossy(t *testing.T) {
	dec, lossy := Parse([]string{"KLINGON-8"})
	assert.True(t, lossy)
	assert.Equal(t, Default.Term, dec.Term)
}

func TestDecodeLatin1(t *testing.T) {
	dec, ok := Lookup("ISO_IR 100")
	assert.True(t, ok)

	// "Müller" in ISO 8859-1: 0xFC is u-umlaut.
	got, lossy := dec.Decode([]byte{'M', 0xFC, 'l', 'l', 'e', 'r'})
	assert.False(t, lossy)
	assert.Equal(t, "Müller", got)
}

func TestDecodeCyrillic(t *testing.T) {
	dec, ok := Lookup("ISO_IR 144")
	assert.True(t, ok)

	// ISO 8859-5: 0xBB 0xEE 0xDA = "Люк"
	got, lossy := dec.Decode([]byte{0xBB, 0xEE, 0xDA})
	assert.False(t, lossy)
	assert.Equal(t, "Люк", got)
}

func TestDecodeDefaultPassesThrough(t *testing.T) {
	got, lossy := Default.Decode([]byte("DOE^JOHN"))
	assert.False(t, lossy)
	assert.Equal(t, "DOE^JOHN", got)
}

func TestDecodeUTF8PassesThrough(t *testing.T) {
	dec, ok := Lookup("ISO_IR 192")
	assert.True(t, ok)

	got, lossy := dec.Decode([]byte("山田^太郎"))
	assert.False(t, lossy)
	assert.Equal(t, "山田^太郎", got)
}
