package wallet

// Verifier is the cryptographic collaborator the validity hierarchy consults.
//
// VerifySignature checks signature over message against the key carried by
// id. VerifyProof checks an attestation proof's opaque payload.
type Verifier interface {
	VerifySignature(id Identity, message, signature []byte) bool
	VerifyProof(payload []byte) bool
}

// NopVerifier accepts every signature and payload, leaving only the
// structural zero and timestamp checks in force.
type NopVerifier struct{}

func (NopVerifier) VerifySignature(Identity, []byte, []byte) bool { return true }
func (NopVerifier) VerifyProof([]byte) bool                       { return true }

var _ Verifier = NopVerifier{}
