package storage

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/zerowallet/cidutil"
)

// NamedCAS tags a content store with a name used in Mirror results.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// Mirror keeps asset content on several stores at once, for example a local
// directory plus a remote gRPC store.
//
// Put writes to every backend in order and fails on the first error or on any
// CID that differs from the one derived locally. With FirstOnly set, Put
// writes only to the first backend and the rest act as read fallbacks.
// Get and Has fall back in order.
type Mirror struct {
	Backends  []NamedCAS
	FirstOnly bool
}

var _ CAS = Mirror{}

// PutAll writes data to the write backends and returns the CID each one reported.
func (m Mirror) PutAll(data []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := cidutil.CIDv1RawSHA256CID(data)
	if err != nil {
		return cid.Undef, nil, err
	}
	if len(m.Backends) == 0 {
		return cid.Undef, nil, fmt.Errorf("storage: mirror has no backends")
	}

	targets := m.Backends
	if m.FirstOnly {
		targets = targets[:1]
	}
	out := make(map[string]cid.Cid, len(targets))
	for _, b := range targets {
		if b.CAS == nil {
			return cid.Undef, nil, fmt.Errorf("storage: nil CAS for backend %q", b.Name)
		}
		got, err := b.CAS.Put(data)
		if err != nil {
			return cid.Undef, out, fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
		out[b.Name] = got
		if got != want {
			return cid.Undef, out, ErrCIDMismatch
		}
	}
	return want, out, nil
}

func (m Mirror) Put(data []byte) (cid.Cid, error) {
	id, _, err := m.PutAll(data)
	return id, err
}

// Get returns the first backend hit. A mismatch on one backend does not hide
// a good copy on a later one.
func (m Mirror) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	var firstErr error
	for _, b := range m.Backends {
		if b.CAS == nil {
			continue
		}
		out, err := b.CAS.Get(id)
		if err == nil {
			return out, nil
		}
		if !IsNotFound(err) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNotFound
}

func (m Mirror) Has(id cid.Cid) bool {
	for _, b := range m.Backends {
		if b.CAS != nil && b.CAS.Has(id) {
			return true
		}
	}
	return false
}

// Missing lists the backends that do not hold id.
func (m Mirror) Missing(id cid.Cid) []string {
	var out []string
	for _, b := range m.Backends {
		if b.CAS == nil || !b.CAS.Has(id) {
			out = append(out, b.Name)
		}
	}
	return out
}
