// Package memcas is an in-memory content store for asset bytes.
package memcas

import (
	"bytes"
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/zerowallet/cidutil"
	"xdao.co/zerowallet/storage"
)

// CAS keeps objects in a map guarded by a RWMutex. Stored and returned
// slices are copies.
type CAS struct {
	mu      sync.RWMutex
	objects map[cid.Cid][]byte

	// MaxObjectBytes rejects larger objects with storage.ErrTooLarge when non-zero.
	MaxObjectBytes int
}

var _ storage.CAS = (*CAS)(nil)

func New() *CAS {
	return &CAS{objects: make(map[cid.Cid][]byte)}
}

func (c *CAS) Put(data []byte) (cid.Cid, error) {
	if c.MaxObjectBytes > 0 && len(data) > c.MaxObjectBytes {
		return cid.Undef, storage.ErrTooLarge
	}
	id, err := cidutil.CIDv1RawSHA256CID(data)
	if err != nil {
		return cid.Undef, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.objects[id]; ok {
		if !bytes.Equal(existing, data) {
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	}
	c.objects[id] = bytes.Clone(data)
	return id, nil
}

func (c *CAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	c.mu.RLock()
	b, ok := c.objects[id]
	c.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	if err := cidutil.VerifyContent(id, b); err != nil {
		return nil, storage.ErrCIDMismatch
	}
	return bytes.Clone(b), nil
}

func (c *CAS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.objects[id]
	return ok
}

// Len reports how many objects are stored.
func (c *CAS) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}
