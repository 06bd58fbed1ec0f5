package storage

import "github.com/ipfs/go-cid"

// CAS stores asset content keyed by its CIDv1 (raw, sha2-256).
//
// An AssetRecord only carries the CID of its content; the bytes live in a CAS.
//
// Contract:
// - Put is idempotent and returns the CID derived from the bytes written.
// - Stored objects are immutable; a second Put of different bytes under the same CID fails with ErrImmutable.
// - Get returns ErrNotFound when the CID is absent and ErrCIDMismatch when stored bytes no longer hash to it.
// - Undefined CIDs are rejected with ErrInvalidCID.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
