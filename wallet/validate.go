package wallet

import (
	"fmt"
	"sort"
)

// Validator evaluates wallet validity bottom-up: identity, then each proof,
// then each occupied asset slot, then the whole store.
//
// With NopVerifier the checks reduce to the structural ones: no identity
// buffer entirely zero, and every proof timestamp positive.
type Validator struct {
	Verifier Verifier
}

// NewValidator returns a Validator backed by v; a nil v means NopVerifier.
func NewValidator(v Verifier) Validator {
	if v == nil {
		v = NopVerifier{}
	}
	return Validator{Verifier: v}
}

func (v Validator) verifier() Verifier {
	if v.Verifier == nil {
		return NopVerifier{}
	}
	return v.Verifier
}

// ValidIdentity reports whether id is well-formed and its signature covers
// its own commitment.
func (v Validator) ValidIdentity(id Identity) bool {
	if !id.WellFormed() {
		return false
	}
	return v.verifier().VerifySignature(id, id.Commitment(), id.Signature[:])
}

// ValidProof reports whether p has a timestamp and an acceptable payload.
func (v Validator) ValidProof(p Proof) bool {
	if !p.WellFormed() {
		return false
	}
	return v.verifier().VerifyProof(p.Payload)
}

// ValidAsset reports whether rec is present, its owner is valid, and the
// owner's signature covers the content hash.
func (v Validator) ValidAsset(rec *AssetRecord) bool {
	if rec == nil || !v.ValidIdentity(rec.Owner) {
		return false
	}
	return v.verifier().VerifySignature(rec.Owner, rec.ContentHash[:], rec.Signature[:])
}

func (v Validator) ValidProofs(proofs map[string]Proof) bool {
	for _, p := range proofs {
		if !v.ValidProof(p) {
			return false
		}
	}
	return true
}

// ValidAssets checks occupied slots only; nil entries are skipped.
func (v Validator) ValidAssets(slots []*AssetRecord) bool {
	for _, rec := range slots {
		if rec != nil && !v.ValidAsset(rec) {
			return false
		}
	}
	return true
}

// Valid reports whether the whole store is valid.
func (v Validator) Valid(s *Store) bool {
	return v.Validate(s) == nil
}

// Validate is Valid with the first failing check reported as a
// KindInvalid error. Proofs are checked in key order so the report is
// deterministic.
func (v Validator) Validate(s *Store) error {
	if !v.ValidIdentity(s.identity) {
		return newError(KindInvalid, "ZW-VAL-001", "wallet identity is invalid: "+s.identity.String())
	}
	keys := make([]string, 0, len(s.proofs))
	for k := range s.proofs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !v.ValidProof(s.proofs[k]) {
			return newError(KindInvalid, "ZW-VAL-002", fmt.Sprintf("proof %q is invalid", k))
		}
	}
	for i, rec := range s.assets.slots {
		if rec != nil && !v.ValidAsset(rec) {
			return newError(KindInvalid, "ZW-VAL-003", fmt.Sprintf("asset in slot %d is invalid", i))
		}
	}
	return nil
}
