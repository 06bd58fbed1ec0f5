package wallet

import (
	"io"
	"log/slog"
	"sync"
)

// Manager guards a Store for concurrent callers.
//
// Reads share a lock; mutations take it exclusively. Sequences that must
// look atomic to other goroutines (for example "check IsFull, then
// AddAsset") belong inside Update.
type Manager struct {
	mu        sync.RWMutex
	store     *Store
	validator Validator
	log       *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithVerifier sets the cryptographic collaborator used by the validity checks.
func WithVerifier(v Verifier) Option {
	return func(m *Manager) { m.validator = NewValidator(v) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithStore manages an existing store instead of a fresh one.
func WithStore(s *Store) Option {
	return func(m *Manager) {
		if s != nil {
			m.store = s
		}
	}
}

// NewManager returns a Manager over a fresh empty store unless WithStore is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:     NewStore(),
		validator: NewValidator(nil),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// View runs fn under the read lock. fn must not mutate s.
func (m *Manager) View(fn func(s *Store) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(m.store)
}

// Update runs fn under the write lock.
func (m *Manager) Update(fn func(s *Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.store)
}

func (m *Manager) Identity() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Identity()
}

func (m *Manager) SetIdentity(id Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.SetIdentity(id)
	m.log.Debug("identity set", "identity", id.String())
}

func (m *Manager) AddAsset(rec AssetRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.store.AddAsset(rec)
	if err != nil {
		m.log.Warn("asset dropped", "owner", rec.Owner.String(), "category", rec.Category.String(), "rule", RuleID(err))
		return i, err
	}
	m.log.Debug("asset added", "slot", i, "owner", rec.Owner.String(), "category", rec.Category.String())
	return i, nil
}

func (m *Manager) RemoveAsset(owner Identity) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := m.store.RemoveAsset(owner)
	if err == nil {
		m.log.Debug("asset removed", "slot", i, "owner", owner.String())
	}
	return i, err
}

func (m *Manager) GetAsset(owner Identity) (AssetRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.GetAsset(owner)
}

func (m *Manager) ListAssets() []AssetRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ListAssets()
}

func (m *Manager) Slots() []*AssetRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Slots()
}

func (m *Manager) SetAssets(slots []*AssetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.SetAssets(slots)
}

func (m *Manager) AddProofs(batch map[string]Proof) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range batch {
		if _, ok := m.store.proofs[k]; ok {
			m.log.Warn("proof overwritten", "key", k)
		}
	}
	m.store.AddProofs(batch)
}

func (m *Manager) AddProof(p Proof) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, replaced := m.store.AddProof(p)
	if replaced {
		m.log.Warn("proof overwritten", "key", key)
	} else {
		m.log.Debug("proof added", "key", key)
	}
	return key, replaced
}

func (m *Manager) RemoveProof(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.RemoveProof(key)
}

func (m *Manager) GetProof(key string) (Proof, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.GetProof(key)
}

func (m *Manager) ListProofs() []Proof {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ListProofs()
}

func (m *Manager) Proofs() map[string]Proof {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Proofs()
}

func (m *Manager) SetProofs(proofs map[string]Proof) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.SetProofs(proofs)
}

func (m *Manager) ClearProofs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.ClearProofs()
}

func (m *Manager) ClearAssets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.ClearAssets()
}

// Clear resets identity, proofs and slots in one critical section.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Clear()
	m.log.Debug("wallet cleared")
}

func (m *Manager) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.IsEmpty()
}

func (m *Manager) IsFull() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.IsFull()
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.State()
}

// Validator exposes the per-entity predicates.
func (m *Manager) Validator() Validator { return m.validator }

func (m *Manager) IsValid() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.validator.Valid(m.store)
}

func (m *Manager) Validate() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.validator.Validate(m.store)
}

// Snapshot returns a deep copy of the managed store.
func (m *Manager) Snapshot() *Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Clone()
}

func (m *Manager) MarshalJSON() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.MarshalJSON()
}
