package wallet

import (
	"encoding/json"
	"errors"
	"testing"
)

func testAsset(owner byte, cat Category) AssetRecord {
	rec := AssetRecord{Owner: testIdentity(owner), Category: cat}
	rec.ContentHash[0] = owner
	rec.Signature[0] = owner
	return rec
}

func TestStore_NewIsEmpty(t *testing.T) {
	s := NewStore()
	if !s.IsEmpty() || s.IsFull() {
		t.Fatalf("fresh store must be empty and not full")
	}
	if s.State() != StateEmpty {
		t.Fatalf("fresh store state: %s", s.State())
	}
	if !s.Identity().IsZero() {
		t.Fatalf("fresh store must carry the zero identity")
	}
	if len(s.Slots()) != MaxAssets {
		t.Fatalf("expected %d slots, got %d", MaxAssets, len(s.Slots()))
	}
}

func TestStore_CapacityLaw(t *testing.T) {
	s := NewStore()
	for i := 0; i < MaxAssets; i++ {
		slot, err := s.AddAsset(testAsset(byte(i+1), CategoryImage))
		if err != nil {
			t.Fatalf("AddAsset #%d: %v", i, err)
		}
		if slot != i {
			t.Fatalf("AddAsset #%d landed in slot %d", i, slot)
		}
	}
	if !s.IsFull() || s.State() != StateFull {
		t.Fatalf("store should be full after %d inserts", MaxAssets)
	}

	before, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	slot, err := s.AddAsset(testAsset(0x60, CategoryArt))
	if slot != -1 {
		t.Fatalf("refused insert reported slot %d", slot)
	}
	if !errors.Is(err, ErrCapacityExceeded) || RuleID(err) != "ZW-CAP-001" {
		t.Fatalf("expected ZW-CAP-001 capacity error, got %v", err)
	}
	after, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("11th insert changed the store")
	}
	if n := len(s.ListAssets()); n != MaxAssets {
		t.Fatalf("expected %d assets, got %d", MaxAssets, n)
	}
}

func TestStore_FirstFitReusesFreedSlot(t *testing.T) {
	s := NewStore()
	a, b, c, d := testAsset(1, CategoryImage), testAsset(2, CategoryVideo), testAsset(3, CategoryAudio), testAsset(4, CategoryPost)
	for _, rec := range []AssetRecord{a, b, c} {
		if _, err := s.AddAsset(rec); err != nil {
			t.Fatalf("AddAsset: %v", err)
		}
	}
	removed, err := s.RemoveAsset(b.Owner)
	if err != nil {
		t.Fatalf("RemoveAsset: %v", err)
	}
	if removed != 1 {
		t.Fatalf("B should have been in slot 1, got %d", removed)
	}
	slot, err := s.AddAsset(d)
	if err != nil {
		t.Fatalf("AddAsset(D): %v", err)
	}
	if slot != removed {
		t.Fatalf("D should occupy B's former slot %d, got %d", removed, slot)
	}
	if got := s.Slots()[1]; got == nil || !got.Owner.Equal(d.Owner) {
		t.Fatalf("slot 1 does not hold D")
	}
}

func TestStore_RemoveAssetFirstMatchOnly(t *testing.T) {
	s := NewStore()
	dup := testAsset(5, CategoryImage)
	other := testAsset(6, CategoryDocument)
	s.AddAsset(dup)
	s.AddAsset(other)
	dup2 := dup
	dup2.Category = CategoryArt
	s.AddAsset(dup2)

	slot, err := s.RemoveAsset(dup.Owner)
	if err != nil || slot != 0 {
		t.Fatalf("RemoveAsset: got (%d, %v)", slot, err)
	}
	got, ok := s.GetAsset(dup.Owner)
	if !ok {
		t.Fatalf("second asset with the same owner should remain")
	}
	if got.Category != CategoryArt {
		t.Fatalf("wrong duplicate removed")
	}
}

func TestStore_RemoveAssetMissing(t *testing.T) {
	s := NewStore()
	s.AddAsset(testAsset(1, CategoryImage))
	_, err := s.RemoveAsset(testIdentity(9))
	if !errors.Is(err, ErrNotFound) || RuleID(err) != "ZW-KEY-002" {
		t.Fatalf("expected ZW-KEY-002, got %v", err)
	}
	if len(s.ListAssets()) != 1 {
		t.Fatalf("failed removal must not change the store")
	}
}

func TestStore_AssetByRawID(t *testing.T) {
	s := NewStore()
	rec := testAsset(3, CategoryVideo)
	s.AddAsset(rec)

	got, ok, err := s.GetAssetByID(rec.Owner.Bytes())
	if err != nil || !ok || got.Category != CategoryVideo {
		t.Fatalf("GetAssetByID: got (%v, %v)", ok, err)
	}
	if _, _, err := s.GetAssetByID([]byte("short")); !errors.Is(err, ErrMalformedIdentity) {
		t.Fatalf("expected ErrMalformedIdentity, got %v", err)
	}
	if _, err := s.RemoveAssetByID(rec.Owner.Bytes()); err != nil {
		t.Fatalf("RemoveAssetByID: %v", err)
	}
	if _, ok := s.GetAsset(rec.Owner); ok {
		t.Fatalf("asset still present after RemoveAssetByID")
	}
}

func TestStore_ListAssetsRestartable(t *testing.T) {
	s := NewStore()
	s.AddAsset(testAsset(1, CategoryImage))
	s.AddAsset(testAsset(2, CategoryImage))
	first := s.ListAssets()
	s.AddAsset(testAsset(3, CategoryImage))
	second := s.ListAssets()
	if len(first) != 2 || len(second) != 3 {
		t.Fatalf("ListAssets lengths: %d then %d", len(first), len(second))
	}
	if !second[2].Owner.Equal(testIdentity(3)) {
		t.Fatalf("ListAssets lost slot order")
	}
}

func TestStore_SetAssets(t *testing.T) {
	s := NewStore()
	a := testAsset(1, CategoryImage)
	b := testAsset(2, CategoryImage)
	if err := s.SetAssets([]*AssetRecord{nil, &a, nil, &b}); err != nil {
		t.Fatalf("SetAssets: %v", err)
	}
	slots := s.Slots()
	if slots[0] != nil || slots[1] == nil || slots[3] == nil {
		t.Fatalf("SetAssets did not place positionally")
	}

	tooMany := make([]*AssetRecord, MaxAssets+1)
	if err := s.SetAssets(tooMany); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if len(s.ListAssets()) != 2 {
		t.Fatalf("rejected SetAssets must not change the store")
	}
}

func TestStore_ProofUpsert(t *testing.T) {
	s := NewStore()
	key, replaced := s.AddProof(NewProof(100, []byte("first")))
	if key != "100" || replaced {
		t.Fatalf("first AddProof: got (%q, %v)", key, replaced)
	}
	key, replaced = s.AddProof(NewProof(100, []byte("second")))
	if key != "100" || !replaced {
		t.Fatalf("second AddProof: got (%q, %v)", key, replaced)
	}
	proofs := s.ListProofs()
	if len(proofs) != 1 {
		t.Fatalf("expected exactly one proof, got %d", len(proofs))
	}
	if string(proofs[0].Payload) != "second" {
		t.Fatalf("expected the later proof to win, got %q", proofs[0].Payload)
	}
}

func TestStore_AddProofsBatch(t *testing.T) {
	s := NewStore()
	s.AddProof(NewProof(1, []byte("old")))
	s.AddProofs(map[string]Proof{
		"1":      NewProof(1, []byte("new")),
		"custom": NewProof(2, nil),
	})
	if p, ok := s.GetProof("1"); !ok || string(p.Payload) != "new" {
		t.Fatalf("batch did not overwrite key 1")
	}
	if _, ok := s.GetProof("custom"); !ok {
		t.Fatalf("batch key not stored verbatim")
	}
	if len(s.Proofs()) != 2 {
		t.Fatalf("expected 2 proofs")
	}
}

func TestStore_RemoveProof(t *testing.T) {
	s := NewStore()
	s.AddProof(NewProof(42, nil))
	if err := s.RemoveProof("42"); err != nil {
		t.Fatalf("RemoveProof: %v", err)
	}
	if _, ok := s.GetProof("42"); ok {
		t.Fatalf("proof still present")
	}
	err := s.RemoveProof("42")
	if !errors.Is(err, ErrNotFound) || RuleID(err) != "ZW-KEY-001" {
		t.Fatalf("expected ZW-KEY-001, got %v", err)
	}
}

func TestStore_ProofCopiesAreIsolated(t *testing.T) {
	s := NewStore()
	payload := []byte("abc")
	s.AddProof(Proof{Timestamp: 7, Payload: payload})
	payload[0] = 'X'
	got, _ := s.GetProof("7")
	if string(got.Payload) != "abc" {
		t.Fatalf("stored payload aliased caller buffer")
	}
	got.Payload[1] = 'Y'
	again, _ := s.GetProof("7")
	if string(again.Payload) != "abc" {
		t.Fatalf("returned payload aliased stored buffer")
	}
}

func TestStore_ClearIsTotal(t *testing.T) {
	s := NewStore()
	s.SetIdentity(testIdentity(1))
	s.AddProof(NewProof(5, nil))
	for i := 0; i < MaxAssets; i++ {
		s.AddAsset(testAsset(byte(i+1), CategoryArt))
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Fatalf("IsEmpty false after Clear")
	}
	if len(s.ListAssets()) != 0 || len(s.ListProofs()) != 0 {
		t.Fatalf("collections not empty after Clear")
	}
	if !s.Identity().IsZero() {
		t.Fatalf("identity not reset after Clear")
	}
}

func TestStore_IsEmptyNeedsNoProofs(t *testing.T) {
	s := NewStore()
	s.AddProof(NewProof(1, nil))
	if s.IsEmpty() {
		t.Fatalf("store with a proof is not empty")
	}
	if s.State() != StatePartial {
		t.Fatalf("expected partial state, got %s", s.State())
	}
	s.ClearProofs()
	s.AddAsset(testAsset(1, CategoryImage))
	if s.IsEmpty() {
		t.Fatalf("store with an asset is not empty")
	}
	s.ClearAssets()
	if !s.IsEmpty() {
		t.Fatalf("expected empty after clearing both collections")
	}
}

func TestStore_JSONRoundTrip(t *testing.T) {
	s := NewStore()
	s.SetIdentity(testIdentity(1))
	s.AddProof(NewProof(10, []byte("p")))
	s.AddAsset(testAsset(2, CategoryDocument))
	s.AddAsset(testAsset(3, CategoryArt))
	s.RemoveAsset(testIdentity(2))

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw struct {
		Assets []json.RawMessage `json:"assets"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if len(raw.Assets) != MaxAssets || string(raw.Assets[0]) != "null" {
		t.Fatalf("expected %d slots with null for empty", MaxAssets)
	}

	back := NewStore()
	if err := json.Unmarshal(b, back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Identity().Equal(s.Identity()) {
		t.Fatalf("identity changed")
	}
	if p, ok := back.GetProof("10"); !ok || string(p.Payload) != "p" {
		t.Fatalf("proof lost")
	}
	slots := back.Slots()
	if slots[0] != nil || slots[1] == nil || slots[1].Category != CategoryArt {
		t.Fatalf("slot layout not preserved")
	}
}

func TestStore_JSONRejectsTooManySlots(t *testing.T) {
	assets := make([]*AssetRecord, MaxAssets+1)
	b, err := json.Marshal(map[string]any{
		"identity": ZeroIdentity(),
		"proofs":   map[string]Proof{},
		"assets":   assets,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := NewStore()
	if err := json.Unmarshal(b, s); RuleID(err) != "ZW-ENC-004" {
		t.Fatalf("expected ZW-ENC-004, got %v", err)
	}
}

func TestCategory_Text(t *testing.T) {
	for _, c := range Categories() {
		b, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", c, err)
		}
		var back Category
		if err := back.UnmarshalText(b); err != nil || back != c {
			t.Fatalf("category %s did not round trip", c)
		}
	}
	if _, err := ParseCategory("Sculpture"); !IsKind(err, KindEncoding) {
		t.Fatalf("expected encoding error for unknown name, got %v", err)
	}
	if _, err := Category(42).MarshalText(); err == nil {
		t.Fatalf("expected error for out-of-range category")
	}

	rec := testAsset(1, CategoryPost)
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if string(raw["category"]) != `"Post"` {
		t.Fatalf("category not encoded by name: %s", raw["category"])
	}
}
