package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	PeerIDSize    = 512
	PublicKeySize = 64
	SignatureSize = 64

	// IdentitySize is the length of the flat identity layout:
	// peer id, then public key, then signature.
	IdentitySize = PeerIDSize + PublicKeySize + SignatureSize
)

// Identity is the fixed-size credential record naming a wallet owner.
//
// The all-zero value is the "unset" sentinel. There is no partial update:
// an identity is replaced wholesale.
type Identity struct {
	PeerID    [PeerIDSize]byte
	PublicKey [PublicKeySize]byte
	Signature [SignatureSize]byte
}

// ZeroIdentity returns the all-zero sentinel identity.
func ZeroIdentity() Identity { return Identity{} }

// ParseIdentity decodes the 640-byte identity layout.
//
// Inputs shorter than IdentitySize fail with KindMalformedIdentity.
// Bytes past IdentitySize are ignored.
func ParseIdentity(b []byte) (Identity, error) {
	var id Identity
	if len(b) < IdentitySize {
		return id, newError(KindMalformedIdentity, "ZW-ID-001",
			fmt.Sprintf("identity needs %d bytes, got %d", IdentitySize, len(b)))
	}
	n := copy(id.PeerID[:], b)
	n += copy(id.PublicKey[:], b[n:])
	copy(id.Signature[:], b[n:])
	return id, nil
}

// Bytes returns the flat 640-byte layout.
func (id Identity) Bytes() []byte {
	out := make([]byte, 0, IdentitySize)
	out = append(out, id.PeerID[:]...)
	out = append(out, id.PublicKey[:]...)
	out = append(out, id.Signature[:]...)
	return out
}

// Commitment is the message covered by Signature: peer id followed by public key.
func (id Identity) Commitment() []byte {
	out := make([]byte, 0, PeerIDSize+PublicKeySize)
	out = append(out, id.PeerID[:]...)
	out = append(out, id.PublicKey[:]...)
	return out
}

// IsZero reports whether every buffer is zero-filled (the unset sentinel).
func (id Identity) IsZero() bool {
	return allZero(id.PeerID[:]) && allZero(id.PublicKey[:]) && allZero(id.Signature[:])
}

// WellFormed reports whether none of the three buffers is entirely zero.
func (id Identity) WellFormed() bool {
	return !allZero(id.PeerID[:]) && !allZero(id.PublicKey[:]) && !allZero(id.Signature[:])
}

// Equal is structural equality over all three buffers.
func (id Identity) Equal(other Identity) bool {
	return id == other
}

// DID returns the peer id with its zero padding removed.
func (id Identity) DID() string {
	return string(bytes.TrimRight(id.PeerID[:], "\x00"))
}

func (id Identity) String() string {
	if id.IsZero() {
		return "<unset identity>"
	}
	if did := id.DID(); did != "" {
		return did
	}
	return "<opaque identity>"
}

type identityJSON struct {
	PeerID    []byte `json:"peer_id"`
	PublicKey []byte `json:"public_key"`
	Signature []byte `json:"signature"`
}

// MarshalJSON encodes every buffer at its full width.
func (id Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(identityJSON{
		PeerID:    id.PeerID[:],
		PublicKey: id.PublicKey[:],
		Signature: id.Signature[:],
	})
}

func (id *Identity) UnmarshalJSON(b []byte) error {
	var raw identityJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return encodingError("invalid identity json", err)
	}
	var out Identity
	if err := copyExact(out.PeerID[:], raw.PeerID, "peer_id"); err != nil {
		return err
	}
	if err := copyExact(out.PublicKey[:], raw.PublicKey, "public_key"); err != nil {
		return err
	}
	if err := copyExact(out.Signature[:], raw.Signature, "signature"); err != nil {
		return err
	}
	*id = out
	return nil
}

// copyExact fills dst from src, requiring identical widths.
func copyExact(dst, src []byte, field string) error {
	if len(src) != len(dst) {
		return newError(KindEncoding, "ZW-ENC-001",
			fmt.Sprintf("%s must be %d bytes, got %d", field, len(dst), len(src)))
	}
	copy(dst, src)
	return nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// encodingError keeps structured errors raised by nested fields intact.
func encodingError(msg string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return wrapError(KindEncoding, "ZW-ENC-002", msg, err)
}
