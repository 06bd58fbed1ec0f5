// Package mint turns content bytes into signed wallet assets.
//
// The content goes into a storage.CAS. The asset's ContentHash holds the
// content CID, and its Signature is the owner's signature over that buffer.
package mint

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"xdao.co/zerowallet/cidutil"
	"xdao.co/zerowallet/keys"
	"xdao.co/zerowallet/storage"
	"xdao.co/zerowallet/wallet"
)

// Options configures a Minter.
type Options struct {
	// CAS receives asset content. Required.
	CAS storage.CAS

	// Key is the owner's identity key. Required.
	Key ed25519.PrivateKey

	// Owner is stamped on every asset. Zero means keys.NewIdentity(Key).
	Owner wallet.Identity

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

type Minter struct {
	cas   storage.CAS
	key   ed25519.PrivateKey
	owner wallet.Identity
	log   *slog.Logger
}

// New checks opts and returns a Minter. The owner identity must carry Key's
// public key.
func New(opts Options) (*Minter, error) {
	if opts.CAS == nil {
		return nil, errors.New("mint: CAS is required")
	}
	if len(opts.Key) != ed25519.PrivateKeySize {
		return nil, errors.New("mint: ed25519 key is required")
	}
	owner := opts.Owner
	if owner.IsZero() {
		id, err := keys.NewIdentity(opts.Key)
		if err != nil {
			return nil, fmt.Errorf("mint: %w", err)
		}
		owner = id
	}
	pub, err := keys.PublicKeyOf(owner)
	if err != nil {
		return nil, fmt.Errorf("mint: owner: %w", err)
	}
	if !pub.Equal(opts.Key.Public()) {
		return nil, errors.New("mint: key does not belong to owner")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Minter{cas: opts.CAS, key: opts.Key, owner: owner, log: log}, nil
}

// Owner returns the identity stamped on minted assets.
func (m *Minter) Owner() wallet.Identity { return m.owner }

// Mint stores content and returns a signed asset referencing it.
func (m *Minter) Mint(content []byte, category wallet.Category) (wallet.AssetRecord, error) {
	if !category.Valid() {
		return wallet.AssetRecord{}, fmt.Errorf("mint: unknown category %d", category)
	}
	id, err := m.cas.Put(content)
	if err != nil {
		return wallet.AssetRecord{}, fmt.Errorf("mint: store content: %w", err)
	}
	hash, err := cidutil.PackContentHash(id)
	if err != nil {
		return wallet.AssetRecord{}, fmt.Errorf("mint: %w", err)
	}
	rec := wallet.AssetRecord{
		Owner:       m.owner,
		ContentHash: hash,
		Category:    category,
	}
	rec.Signature = keys.SignAs(m.key, rec.ContentHash[:])
	m.log.Debug("asset minted", slog.String("cid", id.String()), slog.String("category", category.String()), slog.Int("bytes", len(content)))
	return rec, nil
}

// MintInto mints content and adds the asset to w. When w is full the error
// is the wallet's capacity error; the content stays in the CAS.
func (m *Minter) MintInto(w *wallet.Manager, content []byte, category wallet.Category) (int, wallet.AssetRecord, error) {
	rec, err := m.Mint(content, category)
	if err != nil {
		return -1, wallet.AssetRecord{}, err
	}
	slot, err := w.AddAsset(rec)
	if err != nil {
		return -1, rec, err
	}
	return slot, rec, nil
}

// Fetch returns the content an asset refers to.
func (m *Minter) Fetch(rec wallet.AssetRecord) ([]byte, error) {
	return Fetch(m.cas, rec)
}

// Fetch loads rec's content from cas.
func Fetch(cas storage.CAS, rec wallet.AssetRecord) ([]byte, error) {
	id, err := cidutil.UnpackContentHash(rec.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("mint: content hash: %w", err)
	}
	b, err := cas.Get(id)
	if err != nil {
		return nil, fmt.Errorf("mint: fetch %s: %w", id, err)
	}
	return b, nil
}
