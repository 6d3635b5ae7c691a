// Package flagid encodes the state carried from put to get.
package flagid

import (
	"fmt"
	"strings"

	consts "github.com/khanhnv2901/laberator-checker/internal/shared/constants"
	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
)

// ID is the decoded form of a flag identifier.
type ID struct {
	Login    string
	Password string
	Hash     string
}

// Encode joins the fields with the separator. Fields are expected to be
// separator-free; this is guaranteed by the generator and not checked here.
func (id ID) Encode() string {
	return strings.Join([]string{id.Login, id.Password, id.Hash}, consts.FlagIDSeparator)
}

func (id ID) String() string {
	return id.Encode()
}

// Decode splits an identifier into its three fields.
func Decode(s string) (ID, error) {
	parts := strings.Split(s, consts.FlagIDSeparator)
	if len(parts) != 3 {
		return ID{}, fmt.Errorf("%w: expected 3 fields, got %d", errs.ErrMalformedFlagID, len(parts))
	}
	return ID{Login: parts[0], Password: parts[1], Hash: parts[2]}, nil
}
