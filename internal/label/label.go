// Package label models the service's label record and the integrity hash the
// checker stores in the flag identifier.
package label

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
)

// Label is the service-side representation of a planted flag.
type Label struct {
	Text string
	Font string
	Size int
}

// Record is a label as it appears on the wire. Fields are pointers so that
// absent and null values can be told apart from empty ones.
type Record struct {
	Text *string      `json:"Text"`
	Font *string      `json:"Font"`
	Size *json.Number `json:"Size"`
}

// DecodeList parses a list response into records. The response must be a
// JSON array; null is rejected rather than read as an empty list.
func DecodeList(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode label list: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("decode label list: %w", errs.ErrLabelListNotArray)
	}
	return records, nil
}

// Label converts the record, failing if any field is missing or the size is
// not an integer.
func (r Record) Label() (Label, error) {
	var missing []string
	if r.Text == nil {
		missing = append(missing, "Text")
	}
	if r.Font == nil {
		missing = append(missing, "Font")
	}
	if r.Size == nil {
		missing = append(missing, "Size")
	}
	if len(missing) > 0 {
		return Label{}, fmt.Errorf("%w: %v", errs.ErrMissingLabelField, missing)
	}

	size, err := r.Size.Int64()
	if err != nil {
		return Label{}, fmt.Errorf("%w: %q", errs.ErrInvalidLabelSize, r.Size.String())
	}
	return Label{Text: *r.Text, Font: *r.Font, Size: int(size)}, nil
}

// String renders the record fields for diagnostics, showing absent ones as <nil>.
func (r Record) String() string {
	show := func(s *string) string {
		if s == nil {
			return "<nil>"
		}
		return strconv.Quote(*s)
	}
	size := "<nil>"
	if r.Size != nil {
		size = r.Size.String()
	}
	return fmt.Sprintf("Label(text=%s, font=%s, size=%s)", show(r.Text), show(r.Font), size)
}

// Hash computes the verification hash of the label.
func (l Label) Hash() string {
	return ComputeHash(l.Text, l.Font, l.Size)
}

// ComputeHash returns the base64 SHA-256 digest of the canonical encoding of
// (text, font, size). Each component is prefixed with its length as a
// big-endian uint64, and size is encoded in decimal.
func ComputeHash(text, font string, size int) string {
	h := sha256.New()
	for _, part := range []string{text, font, strconv.Itoa(size)} {
		var lenBuf [8]byte
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(part)))
		h.Write(lenBuf[:])
		h.Write([]byte(part))
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Verify checks a listed label against the stored hash and the expected flag.
// The text comparison runs even when the hash matches.
func Verify(expectedHash, expectedText string, l Label) error {
	if got := l.Hash(); got != expectedHash {
		return fmt.Errorf("%w: %s real hash=%q, expected hash=%q", errs.ErrLabelHashMismatch, l, got, expectedHash)
	}
	if l.Text != expectedText {
		return fmt.Errorf("%w: %s, expected text=%q", errs.ErrLabelTextMismatch, l, expectedText)
	}
	return nil
}

func (l Label) String() string {
	return fmt.Sprintf("Label(text=%q, font=%q, size=%d)", l.Text, l.Font, l.Size)
}
