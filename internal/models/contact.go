package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"nfctag/nfcTerm/internal/utils"
)

// TagCapacityBytes is the usable storage of an NFC 215 tag. Records whose
// decoded payload exceeds it are flagged in the UI but never blocked; the
// store has the final word on writes.
const TagCapacityBytes = 504

// ErrPayloadMissing is returned when a record carries no encoded payload to
// decode.
var ErrPayloadMissing = errors.New("record has no encoded payload")

// Contact is a record owned by the remote store. NdefData is the
// base64-encoded vCard the store computed from the other fields and
// DataSize its decoded byte length; the client only displays and exports
// them.
type Contact struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Text        string    `json:"text"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	NdefData    string    `json:"ndef_data"`
	DataSize    int       `json:"data_size"`
}

// DisplayName returns the label shown in lists, falling back to the phone
// number for unnamed records.
func (c Contact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.PhoneNumber
}

// OverCapacity reports whether the record's payload no longer fits on an
// NFC 215 tag.
func (c Contact) OverCapacity() bool {
	return c.DataSize > TagCapacityBytes
}

// SizeBadge renders the capacity badge text, e.g. "60B".
func (c Contact) SizeBadge() string {
	return fmt.Sprintf("%dB", c.DataSize)
}

// DecodePayload decodes the store's base64 payload back into the raw vCard
// bytes. An absent or malformed payload fails loudly so the export pipeline
// never produces an empty or corrupt file.
func (c Contact) DecodePayload() ([]byte, error) {
	if c.NdefData == "" {
		return nil, ErrPayloadMissing
	}
	raw, err := base64.StdEncoding.DecodeString(c.NdefData)
	if err != nil {
		return nil, fmt.Errorf("decoding payload for contact %s: %w", c.ID, err)
	}
	return raw, nil
}

// ExportFilename is the name of the downloadable vCard artifact:
// <name-or-phone>_nfc.vcf, sanitized for the filesystem.
func (c Contact) ExportFilename() string {
	base := utils.SanitizeFilename(c.DisplayName())
	if base == "" {
		base = utils.SanitizeFilename(c.PhoneNumber)
	}
	if base == "" {
		base = "contact"
	}
	return base + "_nfc.vcf"
}
