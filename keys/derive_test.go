package keys

import (
	"crypto/ed25519"
	"testing"
)

func TestDeriveRoleSeedDeterministic(t *testing.T) {
	root := make([]byte, ed25519.SeedSize)
	for i := range root {
		root[i] = byte(i)
	}

	a, err := DeriveRoleSeed(root, RoleAssets)
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	b, err := DeriveRoleSeed(root, RoleAssets)
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("expected deterministic derivation")
	}

	c, err := DeriveRoleSeed(root, RoleIdentity)
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("expected different roles to derive different seeds")
	}
}

func TestDeriveRoleSeedRejectsBadInput(t *testing.T) {
	if _, err := DeriveRoleSeed(make([]byte, 16), RoleAssets); err == nil {
		t.Fatalf("expected error for short root seed")
	}
	if _, err := DeriveRoleSeed(make([]byte, ed25519.SeedSize), "bad role"); err == nil {
		t.Fatalf("expected error for invalid role")
	}
	if err := CheckRole(""); err == nil {
		t.Fatalf("expected error for empty role")
	}
}

func TestDIDRoundTrip(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = 0x42
	}
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)

	did, err := DIDFromPublicKey(pub)
	if err != nil {
		t.Fatalf("DIDFromPublicKey: %v", err)
	}
	if did[:len(DIDKeyPrefix)+3] != DIDKeyPrefix+"6Mk" {
		t.Fatalf("expected ed25519 did:key to start with z6Mk, got %q", did)
	}
	back, err := PublicKeyFromDID(did)
	if err != nil {
		t.Fatalf("PublicKeyFromDID: %v", err)
	}
	if !back.Equal(pub) {
		t.Fatalf("did round trip changed the key")
	}

	if _, err := DIDFromPublicKey(pub[:10]); err == nil {
		t.Fatalf("expected error for short key")
	}
	for _, bad := range []string{"did:web:example.com", DIDKeyPrefix + "0OIl", DIDKeyPrefix + "2"} {
		if _, err := PublicKeyFromDID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
