// Package attest seals attestation statements into signed envelopes and
// verifies wallets built from them.
//
// An envelope is the JSON payload of a wallet.Proof. It carries the signer's
// public key, so a verifier needs no external key lookup; the signature
// covers a domain tag, both algorithm names and the statement.
//
// Verifier is the wallet.Verifier used outside tests.
package attest
