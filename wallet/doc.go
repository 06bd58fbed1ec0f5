// Package wallet is the in-memory wallet: one owner Identity, a mapping of
// attestation proofs keyed by timestamp, and MaxAssets slots of AssetRecord.
//
// Store holds the state and implements every operation for a single
// goroutine. Manager wraps a Store with a read/write lock. Validator
// composes the validity checks on top of a Verifier; NopVerifier keeps them
// structural, attest.Verifier makes them cryptographic.
//
// Failure reporting:
//   - ParseIdentity on a short buffer: KindMalformedIdentity (ZW-ID-001).
//   - AddAsset on a full wallet: KindCapacityExceeded (ZW-CAP-001), store unchanged.
//   - RemoveProof / RemoveAsset with no match: KindNotFound, store unchanged.
//   - AddProof on an existing key: last write wins, reported via its bool result.
package wallet
