// Package keys provides key-related helpers for wallet identities.
//
// Stable:
//   - Role-seed derivation, digest selection and raw Ed25519/Dilithium3 signing.
//   - did:key encoding of Ed25519 public keys.
//
// NewIdentity fixes how an Ed25519 key is laid out inside wallet.Identity;
// attest.Verifier reads identities back through PublicKeyOf.
package keys
