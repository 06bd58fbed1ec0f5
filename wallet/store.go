package wallet

import (
	"encoding/json"
	"fmt"
)

// MaxAssets is the number of asset slots in every wallet.
const MaxAssets = 10

// Store is the wallet aggregate: one identity, a keyed proof mapping and a
// fixed arena of MaxAssets asset slots.
//
// Store is not safe for concurrent use; wrap it in a Manager when it is
// shared between goroutines.
type Store struct {
	identity Identity
	proofs   map[string]Proof
	assets   *Arena[AssetRecord]
}

// NewStore returns an empty wallet: unset identity, no proofs, all slots empty.
func NewStore() *Store {
	return &Store{
		proofs: make(map[string]Proof),
		assets: NewArena[AssetRecord](MaxAssets),
	}
}

func (s *Store) Identity() Identity { return s.identity }

// SetIdentity replaces the identity wholesale.
func (s *Store) SetIdentity(id Identity) { s.identity = id }

// AddAsset places rec in the first empty slot and returns its index.
// A full wallet is left unchanged and KindCapacityExceeded is returned.
func (s *Store) AddAsset(rec AssetRecord) (int, error) {
	i, ok := s.assets.Insert(rec)
	if !ok {
		return -1, newError(KindCapacityExceeded, "ZW-CAP-001",
			fmt.Sprintf("all %d asset slots are occupied", MaxAssets))
	}
	return i, nil
}

// RemoveAsset clears the first slot whose owner equals owner and returns
// the slot index. Only one slot is cleared even if several match.
func (s *Store) RemoveAsset(owner Identity) (int, error) {
	i, ok := s.assets.RemoveFunc(ownedBy(owner))
	if !ok {
		return -1, newError(KindNotFound, "ZW-KEY-002", "no asset owned by "+owner.String())
	}
	return i, nil
}

// RemoveAssetByID decodes raw as an identity layout and removes by it.
func (s *Store) RemoveAssetByID(raw []byte) (int, error) {
	owner, err := ParseIdentity(raw)
	if err != nil {
		return -1, err
	}
	return s.RemoveAsset(owner)
}

// GetAsset returns the first asset whose owner equals owner.
func (s *Store) GetAsset(owner Identity) (AssetRecord, bool) {
	_, rec, ok := s.assets.FindFunc(ownedBy(owner))
	return rec, ok
}

// GetAssetByID decodes raw as an identity layout and looks up by it.
func (s *Store) GetAssetByID(raw []byte) (AssetRecord, bool, error) {
	owner, err := ParseIdentity(raw)
	if err != nil {
		return AssetRecord{}, false, err
	}
	rec, ok := s.GetAsset(owner)
	return rec, ok, nil
}

// ListAssets returns the occupied slots in slot order.
func (s *Store) ListAssets() []AssetRecord { return s.assets.Values() }

// Slots returns all MaxAssets slots, nil where empty.
func (s *Store) Slots() []*AssetRecord { return s.assets.Slots() }

// SetAssets replaces slot contents positionally. Slots past len(slots) are
// emptied. More than MaxAssets entries fail and leave the store unchanged.
func (s *Store) SetAssets(slots []*AssetRecord) error {
	if len(slots) > MaxAssets {
		return newError(KindCapacityExceeded, "ZW-CAP-002",
			fmt.Sprintf("%d slots given, capacity is %d", len(slots), MaxAssets))
	}
	s.assets.Clear()
	for i, rec := range slots {
		s.assets.Set(i, rec)
	}
	return nil
}

func (s *Store) ClearAssets() { s.assets.Clear() }

// AddProofs upserts every entry of batch under its given key.
func (s *Store) AddProofs(batch map[string]Proof) {
	for k, p := range batch {
		s.proofs[k] = p.clone()
	}
}

// AddProof stores p under p.Key(). A proof already stored under the same
// key is overwritten; replaced reports that it happened.
func (s *Store) AddProof(p Proof) (key string, replaced bool) {
	key = p.Key()
	_, replaced = s.proofs[key]
	s.proofs[key] = p.clone()
	return key, replaced
}

// RemoveProof deletes the proof stored under key.
func (s *Store) RemoveProof(key string) error {
	if _, ok := s.proofs[key]; !ok {
		return newError(KindNotFound, "ZW-KEY-001", fmt.Sprintf("no proof under key %q", key))
	}
	delete(s.proofs, key)
	return nil
}

func (s *Store) GetProof(key string) (Proof, bool) {
	p, ok := s.proofs[key]
	if !ok {
		return Proof{}, false
	}
	return p.clone(), true
}

// ListProofs returns every stored proof in no particular order.
func (s *Store) ListProofs() []Proof {
	out := make([]Proof, 0, len(s.proofs))
	for _, p := range s.proofs {
		out = append(out, p.clone())
	}
	return out
}

// Proofs returns a copy of the proof mapping.
func (s *Store) Proofs() map[string]Proof {
	out := make(map[string]Proof, len(s.proofs))
	for k, p := range s.proofs {
		out[k] = p.clone()
	}
	return out
}

// SetProofs replaces the proof mapping wholesale.
func (s *Store) SetProofs(proofs map[string]Proof) {
	s.proofs = make(map[string]Proof, len(proofs))
	s.AddProofs(proofs)
}

func (s *Store) ClearProofs() { s.proofs = make(map[string]Proof) }

// Clear returns the store to its freshly constructed state.
func (s *Store) Clear() {
	s.ClearProofs()
	s.ClearAssets()
	s.identity = ZeroIdentity()
}

// IsEmpty reports whether no slot is occupied and no proof is stored.
func (s *Store) IsEmpty() bool { return len(s.proofs) == 0 && s.assets.Empty() }

// IsFull reports whether every asset slot is occupied. Proofs are unbounded.
func (s *Store) IsFull() bool { return s.assets.Full() }

// State classifies the store for callers that track its lifecycle.
func (s *Store) State() State {
	switch {
	case s.IsFull():
		return StateFull
	case s.IsEmpty():
		return StateEmpty
	default:
		return StatePartial
	}
}

// Clone returns a deep copy.
func (s *Store) Clone() *Store {
	c := NewStore()
	c.identity = s.identity
	c.AddProofs(s.proofs)
	for i, rec := range s.assets.slots {
		c.assets.Set(i, rec)
	}
	return c
}

// State is the coarse lifecycle position of a store.
type State string

const (
	StateEmpty   State = "empty"
	StatePartial State = "partial"
	StateFull    State = "full"
)

func ownedBy(owner Identity) func(*AssetRecord) bool {
	return func(r *AssetRecord) bool { return r.Owner.Equal(owner) }
}

type storeJSON struct {
	Identity Identity         `json:"identity"`
	Proofs   map[string]Proof `json:"proofs"`
	Assets   []*AssetRecord   `json:"assets"`
}

// MarshalJSON writes all MaxAssets slots, null where empty.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(storeJSON{
		Identity: s.identity,
		Proofs:   s.proofs,
		Assets:   s.assets.slots,
	})
}

func (s *Store) UnmarshalJSON(b []byte) error {
	var raw storeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return encodingError("invalid store json", err)
	}
	if len(raw.Assets) > MaxAssets {
		return newError(KindEncoding, "ZW-ENC-004",
			fmt.Sprintf("%d asset slots encoded, capacity is %d", len(raw.Assets), MaxAssets))
	}
	out := NewStore()
	out.identity = raw.Identity
	out.AddProofs(raw.Proofs)
	for i, rec := range raw.Assets {
		out.assets.Set(i, rec)
	}
	*s = *out
	return nil
}
