package keys

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"xdao.co/zerowallet/wallet"
)

// Identity buffer conventions for Ed25519 owners:
//   - PeerID holds the did:key identifier, zero padded.
//   - PublicKey holds the 32-byte key in its first half; the rest is zero.
//   - Signature is SignEd25519SHA256 over Identity.Commitment().

// NewIdentity issues a self-signed wallet identity for priv.
func NewIdentity(priv ed25519.PrivateKey) (wallet.Identity, error) {
	var id wallet.Identity
	if len(priv) != ed25519.PrivateKeySize {
		return id, fmt.Errorf("ed25519 private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(priv))
	}
	pub := priv.Public().(ed25519.PublicKey)
	did, err := DIDFromPublicKey(pub)
	if err != nil {
		return id, err
	}
	if len(did) > wallet.PeerIDSize {
		return id, fmt.Errorf("did %q exceeds %d bytes", did, wallet.PeerIDSize)
	}
	copy(id.PeerID[:], did)
	copy(id.PublicKey[:], pub)
	copy(id.Signature[:], SignEd25519SHA256(id.Commitment(), priv))
	return id, nil
}

// IdentityFromRootSeed derives the identity role key from rootSeed and issues an identity for it.
func IdentityFromRootSeed(rootSeed []byte) (wallet.Identity, ed25519.PrivateKey, error) {
	priv, err := DeriveRoleKey(rootSeed, RoleIdentity)
	if err != nil {
		return wallet.Identity{}, nil, err
	}
	id, err := NewIdentity(priv)
	if err != nil {
		return wallet.Identity{}, nil, err
	}
	return id, priv, nil
}

// PublicKeyOf extracts the Ed25519 key from id and checks it against the peer id.
func PublicKeyOf(id wallet.Identity) (ed25519.PublicKey, error) {
	pub := ed25519.PublicKey(bytes.Clone(id.PublicKey[:ed25519.PublicKeySize]))
	for _, b := range id.PublicKey[ed25519.PublicKeySize:] {
		if b != 0 {
			return nil, errors.New("public key padding is not zero")
		}
	}
	want, err := PublicKeyFromDID(id.DID())
	if err != nil {
		return nil, err
	}
	if !pub.Equal(want) {
		return nil, errors.New("public key does not match peer id")
	}
	return pub, nil
}

// SignAs signs message for the owner of priv in the layout VerifySignature expects.
func SignAs(priv ed25519.PrivateKey, message []byte) [wallet.SignatureSize]byte {
	var out [wallet.SignatureSize]byte
	copy(out[:], SignEd25519SHA256(message, priv))
	return out
}
