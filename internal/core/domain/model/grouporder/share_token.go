package grouporder

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"grouporder/internal/pkg/errs"
)

// shareTokenBytes is the raw entropy of a share token. 16 bytes gives 128 bits,
// enough to make guessing a live token infeasible.
const shareTokenBytes = 16

// shareTokenEncodedLen is the length of a minted token string
// (base64url without padding).
var shareTokenEncodedLen = base64.RawURLEncoding.EncodedLen(shareTokenBytes)

// ErrShareTokenIsInvalid is returned when a token string has the wrong shape.
var ErrShareTokenIsInvalid = errs.NewValueIsInvalidError("share token")

// ShareToken is an opaque, unguessable credential that lets a second party join
// a group order without prior invitation state. A token is bound to exactly one
// group order for that order's whole life; it is never reissued or reused.
//
// The token itself carries no identity or expiry. Resolution always consults the
// backing group order, whose expires_at is authoritative.
type ShareToken struct {
	value string
}

// MintShareToken generates a fresh token from cryptographically strong randomness.
func MintShareToken() (ShareToken, error) {
	raw := make([]byte, shareTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return ShareToken{}, fmt.Errorf("minting share token: %w", err)
	}
	return ShareToken{value: base64.RawURLEncoding.EncodeToString(raw)}, nil
}

// ShareTokenFromString reconstructs a token from its string form, rejecting
// values that could not have been minted here.
func ShareTokenFromString(s string) (ShareToken, error) {
	if len(s) != shareTokenEncodedLen {
		return ShareToken{}, ErrShareTokenIsInvalid
	}
	if _, err := base64.RawURLEncoding.DecodeString(s); err != nil {
		return ShareToken{}, ErrShareTokenIsInvalid
	}
	return ShareToken{value: s}, nil
}

// String returns the opaque token string.
func (t ShareToken) String() string {
	return t.value
}

// IsEqual reports whether two tokens are the same credential.
func (t ShareToken) IsEqual(other ShareToken) bool {
	return t.value == other.value
}

// Validate returns ErrShareTokenIsInvalid for the zero value.
func (t ShareToken) Validate() error {
	if t.value == "" {
		return ErrShareTokenIsInvalid
	}
	return nil
}
