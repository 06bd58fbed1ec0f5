package attest

import (
	"xdao.co/zerowallet/keys"
	"xdao.co/zerowallet/wallet"
)

// Verifier checks wallet signatures against did:key Ed25519 identities and
// proof payloads as sealed envelopes.
type Verifier struct {
	// Statement, when set, additionally inspects each opened envelope.
	Statement func(env *Envelope) error
}

var _ wallet.Verifier = Verifier{}

// VerifySignature checks signature over message by the key bound to id.
func (v Verifier) VerifySignature(id wallet.Identity, message, signature []byte) bool {
	pub, err := keys.PublicKeyOf(id)
	if err != nil {
		return false
	}
	return keys.VerifyEd25519SHA256(pub, message, signature)
}

// VerifyProof reports whether payload is a correctly signed envelope.
func (v Verifier) VerifyProof(payload []byte) bool {
	env, err := Verify(payload)
	if err != nil {
		return false
	}
	if v.Statement != nil && v.Statement(env) != nil {
		return false
	}
	return true
}
