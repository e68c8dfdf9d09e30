package models

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	named := Contact{Name: "Anna", PhoneNumber: "+49123456789"}
	require.Equal(t, "Anna", named.DisplayName())

	unnamed := Contact{PhoneNumber: "+49123456789"}
	require.Equal(t, "+49123456789", unnamed.DisplayName())
}

func TestOverCapacity(t *testing.T) {
	require.False(t, Contact{DataSize: 60}.OverCapacity())
	require.False(t, Contact{DataSize: 504}.OverCapacity())
	require.True(t, Contact{DataSize: 505}.OverCapacity())
	require.True(t, Contact{DataSize: 600}.OverCapacity())
}

func TestSizeBadge(t *testing.T) {
	require.Equal(t, "60B", Contact{DataSize: 60}.SizeBadge())
	require.Equal(t, "600B", Contact{DataSize: 600}.SizeBadge())
}

func TestDecodePayload_RoundTrip(t *testing.T) {
	vcard := "BEGIN:VCARD\nVERSION:3.0\nFN:+49123456789\nTEL:+49123456789\nNOTE:Notfall\nEND:VCARD"
	contact := Contact{
		PhoneNumber: "+49123456789",
		NdefData:    base64.StdEncoding.EncodeToString([]byte(vcard)),
		DataSize:    len(vcard),
	}

	raw, err := contact.DecodePayload()
	require.NoError(t, err)
	require.Equal(t, vcard, string(raw))
	require.Len(t, raw, contact.DataSize)
}

func TestDecodePayload_Missing(t *testing.T) {
	_, err := Contact{ID: "abc"}.DecodePayload()
	require.ErrorIs(t, err, ErrPayloadMissing)
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := Contact{ID: "abc", NdefData: "not-base64!!!"}.DecodePayload()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPayloadMissing)
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    string
	}{
		{"named", Contact{Name: "Anna", PhoneNumber: "+49123"}, "Anna_nfc.vcf"},
		{"falls back to phone", Contact{PhoneNumber: "+49123"}, "+49123_nfc.vcf"},
		{"sanitizes separators", Contact{Name: "a/b\\c:d"}, "a_b_c_d_nfc.vcf"},
		{"spaces become underscores", Contact{Name: "Anna Schmidt"}, "Anna_Schmidt_nfc.vcf"},
		{"empty everything", Contact{}, "contact_nfc.vcf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.contact.ExportFilename())
		})
	}
}
