package metrics

import (
	"sync"
	"sync/atomic"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ProfilesCreated    uint64
	ProfilesUpdated    uint64
	Classifications    map[string]uint64
	AccountsRegistered uint64
	LoginSuccesses     uint64
	LoginFailures      uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	profilesCreated    uint64
	profilesUpdated    uint64
	accountsRegistered uint64
	loginSuccesses     uint64
	loginFailures      uint64

	mu              sync.Mutex
	classifications map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		classifications: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	classifications := make(map[string]uint64, len(m.classifications))
	for k, v := range m.classifications {
		classifications[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		ProfilesCreated:    atomic.LoadUint64(&m.profilesCreated),
		ProfilesUpdated:    atomic.LoadUint64(&m.profilesUpdated),
		Classifications:    classifications,
		AccountsRegistered: atomic.LoadUint64(&m.accountsRegistered),
		LoginSuccesses:     atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:      atomic.LoadUint64(&m.loginFailures),
	}
}

// IncProfileCreated increments the profile created counter.
func (m *InMemoryRecorder) IncProfileCreated() {
	atomic.AddUint64(&m.profilesCreated, 1)
}

// IncProfileUpdated increments the profile updated counter.
func (m *InMemoryRecorder) IncProfileUpdated() {
	atomic.AddUint64(&m.profilesUpdated, 1)
}

// IncClassification increments the counter for a classification outcome.
func (m *InMemoryRecorder) IncClassification(kind string) {
	m.mu.Lock()
	m.classifications[kind]++
	m.mu.Unlock()
}

// IncAccountRegistered increments the registration counter.
func (m *InMemoryRecorder) IncAccountRegistered() {
	atomic.AddUint64(&m.accountsRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}
