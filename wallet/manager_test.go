package wallet

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestManager_ConcurrentCheckThenAdd(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, refused := 0, 0
	for i := 0; i < 3*MaxAssets; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := m.Update(func(s *Store) error {
				if s.IsFull() {
					return ErrCapacityExceeded
				}
				_, err := s.AddAsset(testAsset(byte(i+1), CategoryImage))
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
			} else if errors.Is(err, ErrCapacityExceeded) {
				refused++
			} else {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if accepted != MaxAssets {
		t.Fatalf("expected %d accepted inserts, got %d", MaxAssets, accepted)
	}
	if refused != 2*MaxAssets {
		t.Fatalf("expected %d refusals, got %d", 2*MaxAssets, refused)
	}
	if !m.IsFull() || len(m.ListAssets()) != MaxAssets {
		t.Fatalf("manager should be full")
	}
}

func TestManager_ConcurrentReaders(t *testing.T) {
	m := NewManager()
	m.SetIdentity(testIdentity(1))
	for i := 0; i < 5; i++ {
		m.AddAsset(testAsset(byte(i+1), CategoryAudio))
		m.AddProof(NewProof(uint64(i+1), nil))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(m.ListAssets()) != 5 || len(m.ListProofs()) != 5 {
					t.Errorf("reader saw inconsistent state")
					return
				}
				if _, ok := m.GetProof("3"); !ok {
					t.Errorf("GetProof(3) missing")
					return
				}
				if _, ok := m.GetAsset(testIdentity(2)); !ok {
					t.Errorf("GetAsset missing")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestManager_ClearIsAtomic(t *testing.T) {
	m := NewManager()
	m.SetIdentity(testIdentity(1))
	m.AddProof(NewProof(9, nil))
	m.AddAsset(testAsset(2, CategoryArt))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = m.View(func(s *Store) error {
				cleared := s.Identity().IsZero()
				if cleared && !s.IsEmpty() {
					t.Errorf("observed identity reset with collections still populated")
				}
				return nil
			})
		}
	}()
	m.Clear()
	<-done

	if !m.IsEmpty() || !m.Identity().IsZero() {
		t.Fatalf("Clear did not reset the wallet")
	}
	if m.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", m.State())
	}
}

func TestManager_LogsOverwriteAndDrop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := NewManager(WithLogger(logger))

	m.AddProof(NewProof(100, []byte("a")))
	if _, replaced := m.AddProof(NewProof(100, []byte("b"))); !replaced {
		t.Fatalf("expected replaced=true")
	}
	for i := 0; i <= MaxAssets; i++ {
		m.AddAsset(testAsset(byte(i+1), CategoryImage))
	}

	out := buf.String()
	for _, want := range []string{"msg=\"proof overwritten\"", "key=100", "msg=\"asset dropped\"", "rule=ZW-CAP-001", "msg=\"asset added\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output:\n%s", want, out)
		}
	}
}

func TestManager_ValidityWithStore(t *testing.T) {
	s := validStore()
	m := NewManager(WithStore(s), WithVerifier(NopVerifier{}))
	if !m.IsValid() || m.Validate() != nil {
		t.Fatalf("expected valid wallet")
	}
	m.SetIdentity(ZeroIdentity())
	if m.IsValid() {
		t.Fatalf("expected invalid wallet after identity reset")
	}
	if !m.Validator().ValidProof(NewProof(1, nil)) {
		t.Fatalf("Validator should be usable directly")
	}
}

func TestManager_SnapshotIsDetached(t *testing.T) {
	m := NewManager()
	m.AddProof(NewProof(1, []byte("x")))
	snap := m.Snapshot()
	m.ClearProofs()
	if len(snap.ListProofs()) != 1 {
		t.Fatalf("snapshot followed later mutation")
	}
	if len(m.Proofs()) != 0 {
		t.Fatalf("ClearProofs did not clear")
	}

	m.SetProofs(map[string]Proof{"a": NewProof(3, nil)})
	if _, ok := m.GetProof("a"); !ok {
		t.Fatalf("SetProofs did not install mapping")
	}
	if err := m.RemoveProof("a"); err != nil {
		t.Fatalf("RemoveProof: %v", err)
	}
	if err := m.RemoveProof("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
