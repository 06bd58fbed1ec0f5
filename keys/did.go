package keys

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58/base58"
)

// DIDKeyPrefix starts every did:key identifier; "z" marks base58btc.
const DIDKeyPrefix = "did:key:z"

// ed25519-pub multicodec, varint encoded.
var ed25519Multicodec = []byte{0xed, 0x01}

// DIDFromPublicKey encodes an Ed25519 public key as a did:key identifier.
func DIDFromPublicKey(pub ed25519.PublicKey) (string, error) {
	if l := len(pub); l != ed25519.PublicKeySize {
		return "", fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, l)
	}
	buf := make([]byte, 0, len(ed25519Multicodec)+len(pub))
	buf = append(buf, ed25519Multicodec...)
	buf = append(buf, pub...)
	return DIDKeyPrefix + base58.Encode(buf), nil
}

// PublicKeyFromDID reverses DIDFromPublicKey.
func PublicKeyFromDID(did string) (ed25519.PublicKey, error) {
	enc, ok := strings.CutPrefix(did, DIDKeyPrefix)
	if !ok {
		return nil, fmt.Errorf("not a base58 did:key: %q", did)
	}
	raw, err := base58.Decode(enc)
	if err != nil {
		return nil, fmt.Errorf("invalid did:key base58: %w", err)
	}
	if !bytes.HasPrefix(raw, ed25519Multicodec) {
		return nil, fmt.Errorf("did:key is not an ed25519 key")
	}
	pub := raw[len(ed25519Multicodec):]
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("did:key carries %d key bytes, want %d", len(pub), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(pub), nil
}
